package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/alerts"
	"github.com/nazarpelekh/legit-wearher-bot/internal/config"
	"github.com/nazarpelekh/legit-wearher-bot/internal/fetchers"
	"github.com/nazarpelekh/legit-wearher-bot/internal/forecast"
	"github.com/nazarpelekh/legit-wearher-bot/internal/geo"
	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/observability"
	"github.com/nazarpelekh/legit-wearher-bot/internal/queue"
	"github.com/nazarpelekh/legit-wearher-bot/internal/reconcile"
	"github.com/nazarpelekh/legit-wearher-bot/internal/server"
	"github.com/nazarpelekh/legit-wearher-bot/internal/settings"
)

func main() {
	ctx := context.Background()

	// Optional .env for local development; the real environment wins.
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.NewDefault().Error("failed to load configuration", err)
		os.Exit(1)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel), logger.ParseFormat(cfg.LogFormat), os.Stdout)
	log.Info("starting space weather service", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	})

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()
	fetcher := fetchers.NewDataFetcher(cfg, log, clock)

	// Provider order is the reconciliation tie-break priority.
	reconciler := reconcile.NewReconciler([]reconcile.Provider{
		fetcher.NOAA,
		fetcher.GFZ,
		fetcher.ISGI,
	}, log.WithComponent("reconcile"), metrics, clock)

	parser := forecast.NewTextForecastParser(cfg.DisplayUTCOffset)
	aggregator := forecast.NewAggregator(fetcher.NOAA, parser, reconciler,
		log.WithComponent("forecast"), metrics, clock)

	store, closeStore := newSettingsStore(cfg, log)
	defer closeStore()

	var publisher *queue.AlertPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = queue.NewAlertPublisher(cfg.KafkaBrokers, cfg.KafkaAlertTopic)
		defer publisher.Close()
		log.Info("alert publishing enabled", logger.Fields{"topic": cfg.KafkaAlertTopic})
	}

	srv := server.NewServer(server.Options{
		Config:     cfg,
		Log:        log.WithComponent("server"),
		Reconciler: reconciler,
		Aggregator: aggregator,
		Alerts:     alerts.NewSynthesizer(metrics, clock),
		Geocoder:   geo.NewGeocoder(cfg.OpenCageURL, cfg.OpenCageAPIKey, log.WithComponent("geo")),
		Settings:   store,
		Publisher:  publisher,
		Bulletins:  fetcher.SIDC,
		Clock:      clock,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", logger.Fields{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("HTTP server error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", err)
	}
	log.Info("server stopped")
}

// newSettingsStore builds the configured settings backend and a cleanup
// function for it.
func newSettingsStore(cfg *config.Config, log *logger.Logger) (settings.Store, func()) {
	if cfg.SettingsBackend == "redis" {
		log.Info("using Redis settings store", logger.Fields{"addr": cfg.RedisAddr})
		store := settings.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn("failed to close Redis store", logger.Fields{"reason": err.Error()})
			}
		}
	}
	log.Info("using in-memory settings store")
	return settings.NewMemoryStore(), func() {}
}
