package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// Chat-ready HTML fragments for the transport layer. The builders are pure:
// everything they show arrives as an argument.

var sourceLabels = map[models.IndexSource]string{
	models.SourceNOAA:         "🛰️ NOAA SWPC",
	models.SourceGFZ:          "🇩🇪 GFZ Potsdam",
	models.SourceISGI:         "🌐 ISGI",
	models.SourceTextForecast: "📋 NOAA SWPC (text forecast)",
	models.SourceFallback:     "⚠️ Fallback value",
}

// SourceLabel names an index source for display.
func SourceLabel(source models.IndexSource) string {
	if label, ok := sourceLabels[source]; ok {
		return label
	}
	return "📡 Unknown source"
}

// sourceInfo renders the provenance block, including the max-wins rule note
// when more than one provider answered.
func sourceInfo(reading models.IndexReading) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📡 <b>Source:</b> %s\n", SourceLabel(reading.Source))
	if reading.HasBackup {
		for _, alt := range reading.Alternatives {
			fmt.Fprintf(&b, "✅ <b>Backup:</b> %s (%.1f)\n", SourceLabel(alt.Source), alt.Kp)
		}
		b.WriteString("🔄 <b>Rule:</b> larger reported value wins\n")
	}
	return b.String()
}

// CurrentConditions renders the "current space weather" message.
func CurrentConditions(reading models.IndexReading, interval *models.ForecastInterval, remaining []models.ForecastInterval, locationName string, now time.Time, loc *time.Location) string {
	status := StatusFor(reading.Kp)

	var b strings.Builder
	b.WriteString("🌌 <b>Space weather</b>\n")
	fmt.Fprintf(&b, "🕐 Updated: %s\n", FormatTimestamp(now, loc))
	if locationName != "" {
		fmt.Fprintf(&b, "📍 <b>Location:</b> %s\n", locationName)
	}
	b.WriteString(sourceInfo(reading))

	b.WriteString("\n<b>🔸 Current geomagnetic activity:</b>\n")
	fmt.Fprintf(&b, "Kp index: %.1f %s", reading.Kp, status.Emoji)
	if interval != nil {
		fmt.Fprintf(&b, " (%s)", interval.LocalTimeRange)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Status: %s\n%s\n", status.Status, status.Description)

	if len(remaining) > 0 {
		b.WriteString("\n<b>🕐 Rest of today (local time):</b>\n")
		for _, iv := range remaining {
			fmt.Fprintf(&b, "%s: %.1f %s\n", iv.LocalTimeRange, iv.Kp, StatusFor(iv.Kp).Emoji)
		}
	} else {
		b.WriteString("\n<i>No more forecast intervals for today</i>\n")
	}
	return b.String()
}

// Forecast renders the 3-day forecast message.
func Forecast(days []models.ForecastDay) string {
	var b strings.Builder
	b.WriteString("🔮 <b>3-day space weather forecast</b>\n\n")

	if len(days) > 0 && days[0].Provenance == models.ProvenanceSynthesized {
		b.WriteString("🔧 <b>Source:</b> generated from the current index (upstream forecast unavailable)\n\n")
	} else {
		b.WriteString("📡 <b>Source:</b> NOAA SWPC (text forecast)\n\n")
	}

	for _, day := range days {
		status := StatusFor(day.MaxKp)
		fmt.Fprintf(&b, "📅 <b>%s</b>\n", day.DateLabel)
		fmt.Fprintf(&b, "Max Kp: %.1f %s\n", day.MaxKp, status.Emoji)
		fmt.Fprintf(&b, "Status: %s\n", status.Status)
		fmt.Fprintf(&b, "Storm probability: %s\n", StormProbability(day.MaxKp))
		if len(day.Intervals) > 0 {
			b.WriteString("\n<b>Hourly forecast (local time):</b>\n")
			for _, iv := range day.Intervals {
				fmt.Fprintf(&b, "%s: %.1f %s\n", iv.LocalTimeRange, iv.Kp, StatusFor(iv.Kp).Emoji)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Aurora renders the aurora visibility message.
func Aurora(assessment models.AuroraVisibilityAssessment, reading models.IndexReading, locationName string) string {
	var b strings.Builder
	b.WriteString("🌌 <b>Aurora forecast</b>\n\n")
	if locationName != "" {
		fmt.Fprintf(&b, "📍 <b>Location:</b> %s\n", locationName)
	}
	fmt.Fprintf(&b, "🧭 <b>Coordinates:</b> %.4f°, %.4f°\n", assessment.Latitude, assessment.Longitude)
	fmt.Fprintf(&b, "🧲 <b>Magnetic latitude:</b> %.1f°\n\n", assessment.MagneticLatitude)

	b.WriteString(sourceInfo(reading))
	b.WriteString("\n<b>🔸 Current conditions:</b>\n")
	fmt.Fprintf(&b, "Kp index: %.1f\n", reading.Kp)
	fmt.Fprintf(&b, "Auroral oval boundary: %.1f° magnetic latitude\n\n", assessment.AuroralBoundary)

	if assessment.Visible {
		b.WriteString("✅ <b>Aurora POSSIBLE!</b>\n")
		b.WriteString("🎯 You are inside the visibility zone\n")
		fmt.Fprintf(&b, "📏 Distance past the oval edge: %.1f°\n\n", assessment.DistanceToOval)
		b.WriteString("<b>👀 Viewing tips:</b>\n")
		b.WriteString("• Look north\n• Avoid light pollution\n• Wait for a dark sky\n")
	} else {
		b.WriteString("❌ <b>Aurora UNLIKELY</b>\n")
		fmt.Fprintf(&b, "📏 You are %.1f° south of the visibility zone\n\n", assessment.DistanceToOval)
		b.WriteString("<b>📈 Visibility would require:</b>\n")
		fmt.Fprintf(&b, "Kp ≥ %d (currently %.1f)\n", assessment.RequiredKp, reading.Kp)
	}
	return b.String()
}

// Alerts renders the active alert list, or the all-clear message.
func Alerts(alerts []models.AlertRecord, loc *time.Location) string {
	if len(alerts) == 0 {
		return "✅ <b>No active alerts</b>\n\nSpace weather is calm."
	}

	var b strings.Builder
	b.WriteString("⚠️ <b>Active alerts:</b>\n\n")
	for _, alert := range alerts {
		fmt.Fprintf(&b, "🚨 <b>%s</b> (%s)\n", alertTitle(alert.Kind), SourceLabel(alert.Source))
		fmt.Fprintf(&b, "🕐 %s\n", FormatTimestamp(alert.IssuedAt, loc))
		fmt.Fprintf(&b, "📝 %s\n\n", alert.Message)
	}
	return b.String()
}

func alertTitle(kind models.AlertKind) string {
	switch kind {
	case models.AlertGeomagneticStorm:
		return "Geomagnetic storm"
	case models.AlertGeomagneticWarning:
		return "Geomagnetic warning"
	default:
		return "Alert"
	}
}

// ProviderStatus renders the data source diagnostics message.
func ProviderStatus(health map[string]models.ProviderHealth) string {
	names := make([]string, 0, len(health))
	for name := range health {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("🛰️ <b>Data source status</b>\n\n")

	available := 0
	for _, name := range names {
		h := health[name]
		if h.Available {
			available++
			fmt.Fprintf(&b, "🟢 <b>%s:</b> available", name)
			if h.LastKp != nil {
				fmt.Fprintf(&b, " (Kp %.1f)", *h.LastKp)
			}
			b.WriteString("\n")
		} else {
			fmt.Fprintf(&b, "🔴 <b>%s:</b> unavailable\n❌ %s\n", name, h.Error)
		}
	}

	b.WriteString("\n")
	switch {
	case available == len(names) && available > 0:
		b.WriteString("✅ <b>Overall:</b> excellent — max-Kp rule active across all sources\n")
	case available > 0:
		b.WriteString("🟡 <b>Overall:</b> degraded — some sources down, backups in use\n")
	default:
		b.WriteString("🔴 <b>Overall:</b> all sources unavailable — synthesized data in use\n")
	}
	return b.String()
}
