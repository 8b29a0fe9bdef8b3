package fetchers

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/config"
	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
)

// userAgent identifies the bot on every upstream request.
const userAgent = "Legit-Weather-Bot/1.0"

// timestampFormats covers the timestamp variants the upstream feeds emit.
var timestampFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// DataFetcher bundles the clients for all external sources
type DataFetcher struct {
	NOAA *NOAAFetcher
	GFZ  *GFZFetcher
	ISGI *ISGIFetcher
	SIDC *SIDCFetcher
}

// NewDataFetcher creates clients for every configured source
func NewDataFetcher(cfg *config.Config, log *logger.Logger, clock clockwork.Clock) *DataFetcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DataFetcher{
		NOAA: NewNOAAFetcher(cfg, log.WithComponent("noaa"), clock),
		GFZ:  NewGFZFetcher(cfg, log.WithComponent("gfz"), clock),
		ISGI: NewISGIFetcher(cfg, log.WithComponent("isgi"), clock),
		SIDC: NewSIDCFetcher(cfg, log.WithComponent("sidc"), clock),
	}
}

// parseTimestamp tries the known upstream timestamp layouts, falling back to
// the current time when none match.
func parseTimestamp(s string, clock clockwork.Clock) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return clock.Now().UTC()
}
