package forecast

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
	"github.com/nazarpelekh/legit-wearher-bot/internal/observability"
)

type fakeTextSource struct {
	text string
	err  error
}

func (f *fakeTextSource) FetchForecastText(_ context.Context) (string, error) {
	return f.text, f.err
}

type fakeKpSource struct {
	reading models.IndexReading
}

func (f *fakeKpSource) Reconcile(_ context.Context) models.IndexReading {
	return f.reading
}

func newTestAggregator(text *fakeTextSource, kp *fakeKpSource) *Aggregator {
	log := logger.New(logger.ERROR, logger.TextFormat, io.Discard)
	return NewAggregator(text, NewTextForecastParser(3), kp, log,
		observability.NewMetricsUnregistered(), clockwork.NewFakeClock())
}

func TestGetForecastPrefersParsedText(t *testing.T) {
	agg := newTestAggregator(
		&fakeTextSource{text: sampleForecast},
		&fakeKpSource{reading: models.IndexReading{Kp: 4.0, Source: models.SourceNOAA}},
	)

	days := agg.GetForecast(context.Background())
	if len(days) != 3 {
		t.Fatalf("Expected 3 days, got %d", len(days))
	}
	if days[0].Provenance != models.ProvenanceParsedText {
		t.Errorf("Expected parsed provenance, got %q", days[0].Provenance)
	}
}

func TestGetForecastSynthesizesOnFetchFailure(t *testing.T) {
	agg := newTestAggregator(
		&fakeTextSource{err: errors.New("upstream down")},
		&fakeKpSource{reading: models.IndexReading{Kp: 4.0, Source: models.SourceGFZ}},
	)

	days := agg.GetForecast(context.Background())
	if len(days) != 3 {
		t.Fatalf("Expected exactly 3 synthesized days, got %d", len(days))
	}
	for i, day := range days {
		if day.Provenance != models.ProvenanceSynthesized {
			t.Errorf("Day %d: expected synthesized provenance, got %q", i, day.Provenance)
		}
		if day.MaxKp < 0 || day.MaxKp > 9 {
			t.Errorf("Day %d: Kp %f out of range", i, day.MaxKp)
		}
		if len(day.Intervals) != 0 {
			t.Errorf("Day %d: synthesized days carry no intervals, got %d", i, len(day.Intervals))
		}
	}
}

func TestGetForecastSynthesizesOnParseFailure(t *testing.T) {
	agg := newTestAggregator(
		&fakeTextSource{text: "garbage without a header"},
		&fakeKpSource{reading: models.IndexReading{Kp: 2.0, Source: models.SourceNOAA}},
	)

	days := agg.GetForecast(context.Background())
	if len(days) != 3 {
		t.Fatalf("Expected 3 synthesized days, got %d", len(days))
	}
	if days[0].Provenance != models.ProvenanceSynthesized {
		t.Errorf("Expected synthesized provenance, got %q", days[0].Provenance)
	}
}

func TestSynthesizedConfidenceDegrades(t *testing.T) {
	agg := newTestAggregator(
		&fakeTextSource{err: errors.New("down")},
		&fakeKpSource{reading: models.IndexReading{Kp: 3.0}},
	)

	days := agg.GetForecast(context.Background())
	want := []models.Confidence{models.ConfidenceHigh, models.ConfidenceModerate, models.ConfidenceLow}
	for i, day := range days {
		if day.Confidence != want[i] {
			t.Errorf("Day %d: expected confidence %q, got %q", i, want[i], day.Confidence)
		}
	}
}

func TestSynthesisIsDeterministicWithFixedRandom(t *testing.T) {
	agg := newTestAggregator(
		&fakeTextSource{err: errors.New("down")},
		&fakeKpSource{reading: models.IndexReading{Kp: 4.0}},
	)
	// rnd() == 0.5 makes every perturbation zero.
	agg.SetRandom(func() float64 { return 0.5 })

	days := agg.GetForecast(context.Background())
	for i, day := range days {
		if day.MaxKp != 4.0 {
			t.Errorf("Day %d: expected Kp 4.0 with zero perturbation, got %f", i, day.MaxKp)
		}
	}
}

func TestSynthesisQuantizesToThirds(t *testing.T) {
	agg := newTestAggregator(
		&fakeTextSource{err: errors.New("down")},
		&fakeKpSource{reading: models.IndexReading{Kp: 4.0}},
	)
	agg.SetRandom(func() float64 { return 0.7 })

	days := agg.GetForecast(context.Background())
	for i, day := range days {
		scaled := day.MaxKp * 3
		if diff := scaled - float64(int(scaled+0.5)); diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Day %d: Kp %f is not quantized to thirds", i, day.MaxKp)
		}
	}
}

func TestSynthesisClampsToScale(t *testing.T) {
	agg := newTestAggregator(
		&fakeTextSource{err: errors.New("down")},
		&fakeKpSource{reading: models.IndexReading{Kp: 8.9}},
	)
	agg.SetRandom(func() float64 { return 1.0 }) // +0.5 * (i+1) perturbation

	days := agg.GetForecast(context.Background())
	for i, day := range days {
		if day.MaxKp > 9 {
			t.Errorf("Day %d: Kp %f exceeds the scale", i, day.MaxKp)
		}
	}
}
