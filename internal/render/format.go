package render

import "time"

// ActivityLevel buckets the Kp scale for advice selection.
type ActivityLevel string

const (
	LevelLow      ActivityLevel = "low"
	LevelMinor    ActivityLevel = "minor"
	LevelModerate ActivityLevel = "moderate"
	LevelStrong   ActivityLevel = "strong"
	LevelExtreme  ActivityLevel = "extreme"
)

// KpStatus describes one band of the Kp scale for display.
type KpStatus struct {
	Emoji       string
	Status      string
	Description string
	Level       ActivityLevel
}

// StatusFor maps a Kp value onto the display scale.
func StatusFor(kp float64) KpStatus {
	switch {
	case kp <= 2:
		return KpStatus{
			Emoji:       "🟢",
			Status:      "Quiet",
			Description: "Geomagnetic activity is minimal",
			Level:       LevelLow,
		}
	case kp <= 4:
		return KpStatus{
			Emoji:       "🟡",
			Status:      "Minor activity",
			Description: "Slight radio communication disturbances possible",
			Level:       LevelMinor,
		}
	case kp <= 6:
		return KpStatus{
			Emoji:       "🟠",
			Status:      "Moderate geomagnetic storm",
			Description: "GPS and radio disruptions possible",
			Level:       LevelModerate,
		}
	case kp <= 8:
		return KpStatus{
			Emoji:       "🔴",
			Status:      "Strong geomagnetic storm",
			Description: "Serious technology disruptions, aurora likely",
			Level:       LevelStrong,
		}
	default:
		return KpStatus{
			Emoji:       "🚨",
			Status:      "Extreme storm",
			Description: "Critical infrastructure disruptions!",
			Level:       LevelExtreme,
		}
	}
}

// StormProbability labels the chance of storm conditions for a Kp value.
func StormProbability(kp float64) string {
	switch {
	case kp < 5:
		return "Low (<25%)"
	case kp < 7:
		return "Moderate (25-50%)"
	case kp < 8:
		return "High (50-75%)"
	default:
		return "Very high (>75%)"
	}
}

// RegionalAdvice picks the advice line for the activity level, adjusted for
// high-latitude locations where aurora becomes relevant earlier.
func RegionalAdvice(level ActivityLevel, highLatitude bool) string {
	switch level {
	case LevelLow:
		return "✅ All systems operating normally"
	case LevelMinor:
		return "📡 Minor GPS issues possible"
	case LevelModerate:
		if highLatitude {
			return "🌌 Aurora possible! Check GPS accuracy"
		}
		return "📡 Checking GPS accuracy is recommended"
	case LevelStrong:
		if highLatitude {
			return "🚨 Bright aurora expected! Careful with GPS and radio"
		}
		return "⚠️ Serious navigation and communication disruptions possible"
	case LevelExtreme:
		return "🚨 Critical situation! Power outages possible"
	default:
		return ""
	}
}

// FormatTimestamp renders a timestamp in the display location, or a
// placeholder when the time is unknown.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "time unknown"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006 15:04 MST")
}
