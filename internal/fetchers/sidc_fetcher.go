package fetchers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"github.com/mmcdole/gofeed"

	"github.com/nazarpelekh/legit-wearher-bot/internal/config"
	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// SIDCFetcher pulls the SIDC bulletin RSS feed for display enrichment.
type SIDCFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
	url    string
	log    *logger.Logger
	clock  clockwork.Clock
}

// NewSIDCFetcher creates a new SIDC RSS fetcher instance
func NewSIDCFetcher(cfg *config.Config, log *logger.Logger, clock clockwork.Clock) *SIDCFetcher {
	client := resty.New()
	client.SetTimeout(cfg.BackupTimeout)
	client.SetHeader("User-Agent", userAgent)

	return &SIDCFetcher{
		client: client,
		parser: gofeed.NewParser(),
		url:    cfg.SIDCRSSURL,
		log:    log,
		clock:  clock,
	}
}

// FetchBulletins fetches SIDC bulletins published in the last 24 hours,
// classified by severity keywords in the title.
func (f *SIDCFetcher) FetchBulletins(ctx context.Context) ([]models.Bulletin, error) {
	f.log.Debugf("fetching bulletins from %s", f.url)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch SIDC RSS: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("SIDC RSS returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SIDC RSS: %w", err)
	}

	cutoff := f.clock.Now().Add(-24 * time.Hour)
	var bulletins []models.Bulletin
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || !item.PublishedParsed.After(cutoff) {
			continue
		}
		bulletins = append(bulletins, models.Bulletin{
			Title:       item.Title,
			Severity:    classifySeverity(item.Title),
			PublishedAt: *item.PublishedParsed,
		})
	}
	return bulletins, nil
}

// classifySeverity maps bulletin title keywords to a severity label.
func classifySeverity(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "x-class") || strings.Contains(t, "extreme"):
		return "Extreme"
	case strings.Contains(t, "m-class") || strings.Contains(t, "major"):
		return "High"
	case strings.Contains(t, "c-class") || strings.Contains(t, "moderate"):
		return "Moderate"
	default:
		return "Low"
	}
}
