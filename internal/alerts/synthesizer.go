package alerts

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
	"github.com/nazarpelekh/legit-wearher-bot/internal/observability"
)

// Alert thresholds on the Kp scale.
const (
	WarningThreshold = 5.0
	StormThreshold   = 7.0
)

// Synthesizer derives alert records from the reconciled index. There is no
// upstream alert feed and no alert lifecycle: every call regenerates alerts
// from the current reading.
type Synthesizer struct {
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewSynthesizer creates an alert synthesizer.
func NewSynthesizer(metrics *observability.Metrics, clock clockwork.Clock) *Synthesizer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Synthesizer{metrics: metrics, clock: clock}
}

// Derive evaluates the reading against the thresholds. Below the warning
// threshold no alerts are emitted; at storm level both records co-occur.
func (s *Synthesizer) Derive(reading models.IndexReading) []models.AlertRecord {
	now := s.clock.Now().UTC()
	var derived []models.AlertRecord

	if reading.Kp >= WarningThreshold {
		derived = append(derived, models.AlertRecord{
			ID:       uuid.NewString(),
			Kind:     models.AlertGeomagneticWarning,
			IssuedAt: now,
			Message: fmt.Sprintf(
				"Elevated geomagnetic activity (Kp=%.1f). GPS and radio disruptions are possible.",
				reading.Kp),
			Source: reading.Source,
		})
	}
	if reading.Kp >= StormThreshold {
		derived = append(derived, models.AlertRecord{
			ID:       uuid.NewString(),
			Kind:     models.AlertGeomagneticStorm,
			IssuedAt: now,
			Message: fmt.Sprintf(
				"Severe geomagnetic storm (Kp=%.1f). Expect serious technology disruptions and bright aurora.",
				reading.Kp),
			Source: reading.Source,
		})
	}

	for _, alert := range derived {
		s.metrics.AlertsDerived.WithLabelValues(string(alert.Kind)).Inc()
	}
	return derived
}
