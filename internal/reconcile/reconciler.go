package reconcile

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
	"github.com/nazarpelekh/legit-wearher-bot/internal/observability"
)

// Provider is one upstream Kp source. Implementations return an error for
// any transport, status, or payload problem; the reconciler turns that into
// "this provider contributed no reading".
type Provider interface {
	Name() models.IndexSource
	FetchCurrentIndex(ctx context.Context) (*models.IndexReading, error)
}

// Reconciler fans out to every provider, waits for all of them to settle,
// and selects the maximum reported Kp. Disturbance is deliberately reported
// over quiescence when sources disagree.
type Reconciler struct {
	providers []Provider // priority order; earlier wins ties
	log       *logger.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// NewReconciler creates a reconciler over the given providers. Provider
// order is the tie-break priority.
func NewReconciler(providers []Provider, log *logger.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Reconciler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Reconciler{
		providers: providers,
		log:       log,
		metrics:   metrics,
		clock:     clock,
	}
}

var errNoReading = errors.New("provider returned no reading")

// settled is the outcome of one provider call, failure included.
type settled struct {
	index   int
	reading *models.IndexReading
	err     error
}

// Reconcile queries all providers concurrently and merges whatever settled
// successfully. It never fails: when every provider is down it returns a
// fallback reading with Kp 0.
func (r *Reconciler) Reconcile(ctx context.Context) models.IndexReading {
	results := r.settleAll(ctx)

	var readings []*models.IndexReading
	for _, res := range results {
		if res.err != nil {
			r.log.Warn("provider contributed no reading", logger.Fields{
				"provider": string(r.providers[res.index].Name()),
				"reason":   res.err.Error(),
			})
			continue
		}
		readings = append(readings, res.reading)
	}

	if len(readings) == 0 {
		r.log.Warn("all providers unavailable, returning fallback reading")
		r.metrics.ReconcileFallbacks.Inc()
		return models.IndexReading{
			Kp:         0,
			ObservedAt: r.clock.Now().UTC(),
			Source:     models.SourceFallback,
		}
	}

	// Max-wins selection; the strict comparison keeps the earlier (higher
	// priority) provider on ties.
	winner := readings[0]
	for _, reading := range readings[1:] {
		if reading.Kp > winner.Kp {
			winner = reading
		}
	}

	selected := *winner
	selected.AvailableSources = len(readings)
	selected.HasBackup = len(readings) > 1
	for _, reading := range readings {
		if reading.Source == selected.Source {
			continue
		}
		selected.Alternatives = append(selected.Alternatives, models.AlternativeReading{
			Source: reading.Source,
			Kp:     reading.Kp,
		})
	}

	r.log.Info("reconciled Kp index", logger.Fields{
		"kp":      selected.Kp,
		"source":  string(selected.Source),
		"sources": selected.AvailableSources,
	})
	return selected
}

// ProviderHealth probes every provider and reports per-provider diagnostics.
func (r *Reconciler) ProviderHealth(ctx context.Context) map[string]models.ProviderHealth {
	results := r.settleAll(ctx)

	health := make(map[string]models.ProviderHealth, len(results))
	for _, res := range results {
		name := string(r.providers[res.index].Name())
		if res.err != nil {
			health[name] = models.ProviderHealth{Available: false, Error: res.err.Error()}
			continue
		}
		kp := res.reading.Kp
		health[name] = models.ProviderHealth{Available: true, LastKp: &kp}
	}
	return health
}

// settleAll runs every provider concurrently and waits for all of them to
// finish, success or failure. One slow or failing provider never blocks or
// cancels the others.
func (r *Reconciler) settleAll(ctx context.Context) []settled {
	ch := make(chan settled, len(r.providers))
	for i, provider := range r.providers {
		go func(i int, p Provider) {
			start := r.clock.Now()
			reading, err := p.FetchCurrentIndex(ctx)
			elapsed := r.clock.Since(start)

			outcome := "success"
			if err == nil && reading == nil {
				err = errNoReading
			}
			if err != nil {
				outcome = "error"
			}
			r.metrics.ProviderRequests.WithLabelValues(string(p.Name()), outcome).Inc()
			r.metrics.ProviderDuration.WithLabelValues(string(p.Name())).Observe(elapsed.Seconds())

			ch <- settled{index: i, reading: reading, err: err}
		}(i, provider)
	}

	results := make([]settled, len(r.providers))
	for range r.providers {
		res := <-ch
		results[res.index] = res
	}
	return results
}
