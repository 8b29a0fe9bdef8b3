package forecast

import (
	"context"
	"math"
	"math/rand"

	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
	"github.com/nazarpelekh/legit-wearher-bot/internal/observability"
)

// TextSource fetches the raw 3-day forecast table.
type TextSource interface {
	FetchForecastText(ctx context.Context) (string, error)
}

// KpSource supplies the current reconciled index for synthesis.
type KpSource interface {
	Reconcile(ctx context.Context) models.IndexReading
}

// Aggregator prefers the parsed NOAA text forecast and falls back to a
// synthesized 3-day forecast so the forecast surface never comes back empty.
type Aggregator struct {
	text    TextSource
	parser  *TextForecastParser
	kp      KpSource
	log     *logger.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	rnd     func() float64
}

// NewAggregator creates a forecast aggregator.
func NewAggregator(text TextSource, parser *TextForecastParser, kp KpSource, log *logger.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Aggregator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Aggregator{
		text:    text,
		parser:  parser,
		kp:      kp,
		log:     log,
		metrics: metrics,
		clock:   clock,
		rnd:     rand.Float64,
	}
}

// SetRandom swaps the random source used by synthesis; tests inject a
// deterministic one.
func (a *Aggregator) SetRandom(rnd func() float64) {
	a.rnd = rnd
}

// GetForecast returns the 3-day forecast. Parse failures are treated the
// same as fetch failures: both fall through to synthesis.
func (a *Aggregator) GetForecast(ctx context.Context) []models.ForecastDay {
	if days := a.parsedForecast(ctx); len(days) > 0 {
		a.log.Info("using parsed NOAA text forecast", logger.Fields{"days": len(days)})
		return days
	}

	current := a.kp.Reconcile(ctx)
	a.log.Info("text forecast unavailable, synthesizing", logger.Fields{"kp": current.Kp})
	a.metrics.ForecastSynthesized.Inc()
	return a.synthesize(current.Kp)
}

// ParsedForecast exposes the parsed text forecast (without synthesis) for
// callers that need the hourly intervals, like the current-conditions view.
func (a *Aggregator) ParsedForecast(ctx context.Context) []models.ForecastDay {
	return a.parsedForecast(ctx)
}

func (a *Aggregator) parsedForecast(ctx context.Context) []models.ForecastDay {
	raw, err := a.text.FetchForecastText(ctx)
	if err != nil {
		a.log.Warn("text forecast fetch failed", logger.Fields{"reason": err.Error()})
		return nil
	}

	days, err := a.parser.Parse(raw)
	if err != nil {
		a.log.Warn("text forecast parse failed", logger.Fields{"reason": err.Error()})
		return nil
	}
	return days
}

// synthesize builds a plausible 3-day forecast around the current index.
// The perturbation window widens with the day offset and the result is
// quantized to thirds, matching the Kp scale granularity.
func (a *Aggregator) synthesize(currentKp float64) []models.ForecastDay {
	confidences := []models.Confidence{
		models.ConfidenceHigh,
		models.ConfidenceModerate,
		models.ConfidenceLow,
	}

	today := a.clock.Now()
	days := make([]models.ForecastDay, 0, 3)
	for i := 0; i < 3; i++ {
		date := today.AddDate(0, 0, i)

		variation := (a.rnd() - 0.5) * float64(i+1)
		kp := math.Max(0, math.Min(9, currentKp+variation))
		kp = math.Round(kp*3) / 3

		days = append(days, models.ForecastDay{
			DateLabel:  date.Format("02.01.2006"),
			Month:      date.Format("Jan"),
			DayOfMonth: date.Day(),
			MaxKp:      kp,
			Confidence: confidences[min(i, len(confidences)-1)],
			Provenance: models.ProvenanceSynthesized,
		})
	}
	return days
}
