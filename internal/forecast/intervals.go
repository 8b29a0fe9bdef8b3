package forecast

import (
	"time"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// CurrentIntervalKp finds the parsed interval covering the given local time,
// so the presentation layer can show the forecast value for "right now".
func CurrentIntervalKp(days []models.ForecastDay, now time.Time) (models.ForecastInterval, bool) {
	today, ok := dayFor(days, now)
	if !ok {
		return models.ForecastInterval{}, false
	}

	hour := now.Hour()
	for _, iv := range today.Intervals {
		start := iv.LocalStartHour
		end := (start + 3) % 24
		inRange := hour >= start && hour < end
		if end <= start {
			// interval wraps past midnight
			inRange = hour >= start || hour < end
		}
		if inRange {
			return iv, true
		}
	}
	return models.ForecastInterval{}, false
}

// TodayRemainingIntervals returns today's intervals that start after the
// given local time, in chronological order.
func TodayRemainingIntervals(days []models.ForecastDay, now time.Time) []models.ForecastInterval {
	today, ok := dayFor(days, now)
	if !ok {
		return nil
	}

	var remaining []models.ForecastInterval
	for _, iv := range today.Intervals {
		if iv.LocalStartHour > now.Hour() {
			remaining = append(remaining, iv)
		}
	}
	return remaining
}

func dayFor(days []models.ForecastDay, now time.Time) (models.ForecastDay, bool) {
	for _, day := range days {
		if day.DayOfMonth == now.Day() {
			return day, true
		}
	}
	return models.ForecastDay{}, false
}
