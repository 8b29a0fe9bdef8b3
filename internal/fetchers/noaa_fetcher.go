package fetchers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/config"
	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// fluxHistoryEntries is how many trailing magnetometer/X-ray samples are
// kept for display enrichment.
const fluxHistoryEntries = 6

// NOAAFetcher handles the NOAA SWPC feeds: the minute-resolution planetary
// Kp index, the 3-day text forecast, and the auxiliary GOES flux feeds.
type NOAAFetcher struct {
	client      *resty.Client
	kpURL       string
	forecastURL string
	magURL      string
	xrayURL     string
	log         *logger.Logger
	clock       clockwork.Clock
}

// NewNOAAFetcher creates a new NOAA fetcher instance
func NewNOAAFetcher(cfg *config.Config, log *logger.Logger, clock clockwork.Clock) *NOAAFetcher {
	client := resty.New()
	client.SetTimeout(cfg.NOAATimeout)
	client.SetHeader("User-Agent", userAgent)

	return &NOAAFetcher{
		client:      client,
		kpURL:       cfg.NOAAKpURL,
		forecastURL: cfg.NOAAForecastURL,
		magURL:      cfg.NOAAMagURL,
		xrayURL:     cfg.NOAAXRayURL,
		log:         log,
		clock:       clock,
	}
}

// Name identifies this provider in reconciliation results.
func (f *NOAAFetcher) Name() models.IndexSource {
	return models.SourceNOAA
}

// FetchCurrentIndex fetches the latest planetary Kp reading from NOAA.
// The entry is decoded loosely like the backup feeds, so quoted values
// parse and type drift degrades into a clean error instead of a decode
// failure.
func (f *NOAAFetcher) FetchCurrentIndex(ctx context.Context) (*models.IndexReading, error) {
	f.log.Debugf("fetching Kp index from %s", f.kpURL)

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(f.kpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch NOAA Kp index: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("NOAA Kp API returned status %d", resp.StatusCode())
	}

	var data []map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse NOAA Kp response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("NOAA Kp response has no data")
	}

	latest := data[len(data)-1]
	kp, ok := pickNumber(latest, "kp_index", "Kp", "kp")
	if !ok {
		return nil, fmt.Errorf("NOAA Kp entry value is not numeric")
	}

	timeTag, _ := pickString(latest, "time_tag")
	f.log.Debugf("NOAA Kp %.2f at %s", kp, timeTag)
	return &models.IndexReading{
		Kp:         kp,
		ObservedAt: parseTimestamp(timeTag, f.clock),
		Source:     models.SourceNOAA,
	}, nil
}

// FetchForecastText fetches the raw fixed-width 3-day geomagnetic forecast
func (f *NOAAFetcher) FetchForecastText(ctx context.Context) (string, error) {
	f.log.Debugf("fetching text forecast from %s", f.forecastURL)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.forecastURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch NOAA text forecast: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("NOAA forecast endpoint returned status %d", resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		return "", fmt.Errorf("NOAA forecast endpoint returned an empty body")
	}

	return string(resp.Body()), nil
}

// FetchMagnetometer fetches the trailing GOES magnetometer samples
func (f *NOAAFetcher) FetchMagnetometer(ctx context.Context) ([]models.FluxSample, error) {
	return f.fetchFluxFeed(ctx, f.magURL, "total")
}

// FetchXRayFlux fetches the trailing GOES X-ray flux samples
func (f *NOAAFetcher) FetchXRayFlux(ctx context.Context) ([]models.FluxSample, error) {
	return f.fetchFluxFeed(ctx, f.xrayURL, "flux")
}

func (f *NOAAFetcher) fetchFluxFeed(ctx context.Context, url, valueKey string) ([]models.FluxSample, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GOES feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("GOES feed returned status %d", resp.StatusCode())
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse GOES feed: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("GOES feed has no data")
	}

	if len(raw) > fluxHistoryEntries {
		raw = raw[len(raw)-fluxHistoryEntries:]
	}

	samples := make([]models.FluxSample, 0, len(raw))
	for _, entry := range raw {
		sample := models.FluxSample{}
		sample.TimeTag, _ = pickString(entry, "time_tag")
		sample.Value, _ = pickNumber(entry, valueKey)
		sample.Channel, _ = pickString(entry, "energy", "channel")
		samples = append(samples, sample)
	}
	return samples, nil
}
