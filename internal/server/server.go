package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nazarpelekh/legit-wearher-bot/internal/alerts"
	"github.com/nazarpelekh/legit-wearher-bot/internal/config"
	"github.com/nazarpelekh/legit-wearher-bot/internal/forecast"
	"github.com/nazarpelekh/legit-wearher-bot/internal/geo"
	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
	"github.com/nazarpelekh/legit-wearher-bot/internal/queue"
	"github.com/nazarpelekh/legit-wearher-bot/internal/reconcile"
	"github.com/nazarpelekh/legit-wearher-bot/internal/reports"
	"github.com/nazarpelekh/legit-wearher-bot/internal/settings"
)

// BulletinSource supplies recent space-weather bulletins for the summary
// page. Optional; nil leaves the section out.
type BulletinSource interface {
	FetchBulletins(ctx context.Context) ([]models.Bulletin, error)
}

// Server wires the data pipeline behind the HTTP API. Publisher is optional;
// nil disables alert publishing.
type Server struct {
	Config     *config.Config
	Log        *logger.Logger
	Reconciler *reconcile.Reconciler
	Aggregator *forecast.Aggregator
	Alerts     *alerts.Synthesizer
	Geocoder   *geo.Geocoder
	Settings   settings.Store
	Reports    *reports.Builder
	Publisher  *queue.AlertPublisher
	Bulletins  BulletinSource

	Clock      clockwork.Clock
	DisplayLoc *time.Location
}

// Options carries the wired components for NewServer.
type Options struct {
	Config     *config.Config
	Log        *logger.Logger
	Reconciler *reconcile.Reconciler
	Aggregator *forecast.Aggregator
	Alerts     *alerts.Synthesizer
	Geocoder   *geo.Geocoder
	Settings   settings.Store
	Publisher  *queue.AlertPublisher
	Bulletins  BulletinSource
	Clock      clockwork.Clock
}

// NewServer creates the API server. The display location falls back to UTC
// when the configured zone is unknown.
func NewServer(opts Options) *Server {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	loc, err := time.LoadLocation(opts.Config.DisplayTimezone)
	if err != nil {
		opts.Log.Warn("unknown display timezone, using UTC", logger.Fields{
			"timezone": opts.Config.DisplayTimezone,
		})
		loc = time.UTC
	}

	return &Server{
		Config:     opts.Config,
		Log:        opts.Log,
		Reconciler: opts.Reconciler,
		Aggregator: opts.Aggregator,
		Alerts:     opts.Alerts,
		Geocoder:   opts.Geocoder,
		Settings:   opts.Settings,
		Reports:    reports.NewBuilder(),
		Publisher:  opts.Publisher,
		Bulletins:  opts.Bulletins,
		Clock:      clock,
		DisplayLoc: loc,
	}
}

// SetupRoutes configures HTTP routes for the server.
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/conditions", s.HandleConditions)
	mux.HandleFunc("/api/forecast", s.HandleForecast)
	mux.HandleFunc("/api/aurora", s.HandleAurora)
	mux.HandleFunc("/api/alerts", s.HandleAlerts)
	mux.HandleFunc("/api/providers", s.HandleProviders)
	mux.HandleFunc("/api/settings/", s.HandleSettings)
	mux.HandleFunc("/chart.png", s.HandleChart)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	// Root serves the HTML summary; registered last as the catch-all.
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}
