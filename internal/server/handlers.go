package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nazarpelekh/legit-wearher-bot/internal/charts"
	"github.com/nazarpelekh/legit-wearher-bot/internal/forecast"
	"github.com/nazarpelekh/legit-wearher-bot/internal/geo"
	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
	"github.com/nazarpelekh/legit-wearher-bot/internal/render"
	"github.com/nazarpelekh/legit-wearher-bot/internal/reports"
	"github.com/nazarpelekh/legit-wearher-bot/internal/settings"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// HandleConditions serves the reconciled current conditions, with the
// forecast interval covering "now" when the text forecast parsed.
func (s *Server) HandleConditions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	reading := s.Reconciler.Reconcile(ctx)
	now := s.Clock.Now().In(s.DisplayLoc)

	var currentInterval *models.ForecastInterval
	var remaining []models.ForecastInterval
	if days := s.Aggregator.ParsedForecast(ctx); len(days) > 0 {
		if iv, ok := forecast.CurrentIntervalKp(days, now); ok {
			currentInterval = &iv
		}
		remaining = forecast.TodayRemainingIntervals(days, now)
	}

	locationName := ""
	if lat, lon, ok := coordinates(r); ok {
		locationName = s.Geocoder.ResolveLocationName(ctx, lat, lon)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reading":             reading,
		"current_interval":    currentInterval,
		"remaining_intervals": remaining,
		"status":              render.StatusFor(reading.Kp).Status,
		"storm_probability":   render.StormProbability(reading.Kp),
		"message":             render.CurrentConditions(reading, currentInterval, remaining, locationName, now, s.DisplayLoc),
	})
}

// HandleForecast serves the 3-day forecast, synthesized when the upstream
// text feed is unavailable.
func (s *Server) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	days := s.Aggregator.GetForecast(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":    days,
		"message": render.Forecast(days),
	})
}

// HandleAurora evaluates aurora visibility for the lat/lon query coordinates.
func (s *Server) HandleAurora(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, lon, ok := coordinates(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "lat and lon query parameters are required")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}

	ctx := r.Context()
	reading := s.Reconciler.Reconcile(ctx)
	assessment := geo.AssessVisibility(lat, lon, reading.Kp)
	locationName := s.Geocoder.ResolveLocationName(ctx, lat, lon)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessment": assessment,
		"reading":    reading,
		"location":   locationName,
		"message":    render.Aurora(assessment, reading, locationName),
	})
}

// HandleAlerts derives alerts from the current reading and, when a publisher
// is configured, forwards them to the notification pipeline.
func (s *Server) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	reading := s.Reconciler.Reconcile(ctx)
	derived := s.Alerts.Derive(reading)

	if s.Publisher != nil && len(derived) > 0 {
		if err := s.Publisher.Publish(ctx, derived); err != nil {
			s.Log.Error("failed to publish alerts", err, logger.Fields{"count": len(derived)})
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts":  derived,
		"message": render.Alerts(derived, s.DisplayLoc),
	})
}

// HandleProviders serves per-provider health diagnostics.
func (s *Server) HandleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	health := s.Reconciler.ProviderHealth(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"providers": health,
		"message":   render.ProviderStatus(health),
	})
}

// HandleSettings serves and updates per-user settings at
// /api/settings/{user}. DELETE resets the user to defaults.
func (s *Server) HandleSettings(w http.ResponseWriter, r *http.Request) {
	idPart := strings.TrimPrefix(r.URL.Path, "/api/settings/")
	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		current, err := s.Settings.Get(ctx, userID)
		if err != nil {
			s.Log.Error("failed to load settings", err, logger.Fields{"user": userID})
			writeError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		writeJSON(w, http.StatusOK, current)

	case http.MethodPut:
		var updated settings.Settings
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			writeError(w, http.StatusBadRequest, "invalid settings payload")
			return
		}
		if updated.KpThreshold < 0 || updated.KpThreshold > 9 {
			writeError(w, http.StatusBadRequest, "kp_threshold must be between 0 and 9")
			return
		}
		if err := s.Settings.Set(ctx, userID, updated); err != nil {
			s.Log.Error("failed to save settings", err, logger.Fields{"user": userID})
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.Settings.Reset(ctx, userID); err != nil {
			s.Log.Error("failed to reset settings", err, logger.Fields{"user": userID})
			writeError(w, http.StatusInternalServerError, "failed to reset settings")
			return
		}
		writeJSON(w, http.StatusOK, settings.Defaults())

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// HandleChart renders the Kp trend PNG from the parsed forecast intervals
// around the current time.
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	days := s.Aggregator.GetForecast(ctx)
	intervals := trendWindow(days, s.Clock.Now().In(s.DisplayLoc))
	if len(intervals) < 2 {
		writeError(w, http.StatusNotFound, "not enough forecast intervals for a chart")
		return
	}

	png, err := charts.RenderKpTrend(intervals)
	if err != nil {
		s.Log.Error("failed to render chart", err)
		writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=600")
	w.Write(png)
}

// trendWindow picks the intervals around the current time for the trend
// chart: today's intervals from the one covering now, topped up from the
// following days.
func trendWindow(days []models.ForecastDay, now time.Time) []models.ForecastInterval {
	const maxIntervals = 6

	var window []models.ForecastInterval
	started := false
	for _, day := range days {
		for _, iv := range day.Intervals {
			if !started && day.DayOfMonth == now.Day() && iv.LocalStartHour+3 <= now.Hour() {
				continue // already over today
			}
			started = true
			window = append(window, iv)
			if len(window) == maxIntervals {
				return window
			}
		}
	}
	if len(window) < 2 {
		// synthesized forecasts carry no intervals; nothing to draw
		return nil
	}
	return window
}

// HandleRoot serves the HTML summary page.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	reading := s.Reconciler.Reconcile(ctx)
	days := s.Aggregator.GetForecast(ctx)
	derived := s.Alerts.Derive(reading)

	var bulletins []models.Bulletin
	if s.Bulletins != nil {
		var err error
		if bulletins, err = s.Bulletins.FetchBulletins(ctx); err != nil {
			s.Log.Warn("bulletin fetch failed", logger.Fields{"reason": err.Error()})
		}
	}

	page, err := s.Reports.BuildHTML(reports.ReportData{
		Reading:     reading,
		Forecast:    days,
		Alerts:      derived,
		Bulletins:   bulletins,
		GeneratedAt: s.Clock.Now(),
		Location:    s.DisplayLoc,
	})
	if err != nil {
		s.Log.Error("failed to build summary page", err)
		http.Error(w, "failed to build summary page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(page))
}

// HandleHealth provides the health check endpoint.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.Clock.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"config":   "ok",
			"settings": "ok",
		},
	})
}

// coordinates parses optional lat/lon query parameters.
func coordinates(r *http.Request) (lat, lon float64, ok bool) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
