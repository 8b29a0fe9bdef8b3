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

// GFZFetcher handles the GFZ Potsdam Kp feed. The feed is a JSON array whose
// field names drift between deployments, so values are probed rather than
// decoded into a fixed struct.
type GFZFetcher struct {
	client *resty.Client
	url    string
	log    *logger.Logger
	clock  clockwork.Clock
}

// NewGFZFetcher creates a new GFZ Potsdam fetcher instance
func NewGFZFetcher(cfg *config.Config, log *logger.Logger, clock clockwork.Clock) *GFZFetcher {
	client := resty.New()
	client.SetTimeout(cfg.BackupTimeout)
	client.SetHeader("User-Agent", userAgent)

	return &GFZFetcher{
		client: client,
		url:    cfg.GFZKpURL,
		log:    log,
		clock:  clock,
	}
}

// Name identifies this provider in reconciliation results.
func (f *GFZFetcher) Name() models.IndexSource {
	return models.SourceGFZ
}

// FetchCurrentIndex fetches the latest Kp reading from GFZ Potsdam
func (f *GFZFetcher) FetchCurrentIndex(ctx context.Context) (*models.IndexReading, error) {
	f.log.Debugf("fetching Kp index from %s", f.url)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GFZ Kp index: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("GFZ API returned status %d", resp.StatusCode())
	}

	var data []map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse GFZ response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("GFZ response has no data")
	}

	latest := data[len(data)-1]
	// Missing index field yields a zero reading rather than an error; a zero
	// never wins reconciliation unless every source reports zero.
	kp, _ := pickNumber(latest, "Kp", "kp", "kp_index")

	observedAt := f.clock.Now().UTC()
	if ts, ok := pickString(latest, "TimeStamp", "time_tag"); ok {
		observedAt = parseTimestamp(ts, f.clock)
	}

	f.log.Debugf("GFZ Kp %.2f", kp)
	return &models.IndexReading{
		Kp:         kp,
		ObservedAt: observedAt,
		Source:     models.SourceGFZ,
	}, nil
}
