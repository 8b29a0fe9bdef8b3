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

// ISGIFetcher handles the International Service of Geomagnetic Indices feed.
type ISGIFetcher struct {
	client *resty.Client
	url    string
	log    *logger.Logger
	clock  clockwork.Clock
}

// NewISGIFetcher creates a new ISGI fetcher instance
func NewISGIFetcher(cfg *config.Config, log *logger.Logger, clock clockwork.Clock) *ISGIFetcher {
	client := resty.New()
	client.SetTimeout(cfg.BackupTimeout)
	client.SetHeader("User-Agent", userAgent)

	return &ISGIFetcher{
		client: client,
		url:    cfg.ISGIKpURL,
		log:    log,
		clock:  clock,
	}
}

// Name identifies this provider in reconciliation results.
func (f *ISGIFetcher) Name() models.IndexSource {
	return models.SourceISGI
}

// FetchCurrentIndex fetches the latest Kp reading from ISGI
func (f *ISGIFetcher) FetchCurrentIndex(ctx context.Context) (*models.IndexReading, error) {
	f.log.Debugf("fetching Kp index from %s", f.url)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ISGI Kp index: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("ISGI API returned status %d", resp.StatusCode())
	}

	var data []map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse ISGI response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ISGI response has no data")
	}

	latest := data[len(data)-1]
	kp, _ := pickNumber(latest, "kp", "Kp")

	observedAt := f.clock.Now().UTC()
	if ts, ok := pickString(latest, "date", "time"); ok {
		observedAt = parseTimestamp(ts, f.clock)
	}

	f.log.Debugf("ISGI Kp %.2f", kp)
	return &models.IndexReading{
		Kp:         kp,
		ObservedAt: observedAt,
		Source:     models.SourceISGI,
	}, nil
}
