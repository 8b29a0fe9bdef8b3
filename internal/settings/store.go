package settings

import "context"

// Settings holds one user's notification preferences. The core stays
// stateless; only the presentation layer reads and writes these.
type Settings struct {
	Notifications       bool    `json:"notifications"`
	KpThreshold         float64 `json:"kp_threshold"`
	AuroraNotifications bool    `json:"aurora_notifications"`
	DailyForecast       bool    `json:"daily_forecast"`
	Timezone            string  `json:"timezone"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
}

// Defaults returns the settings a user gets before changing anything.
func Defaults() Settings {
	return Settings{
		Notifications:       false,
		KpThreshold:         5.0,
		AuroraNotifications: true,
		DailyForecast:       false,
		Timezone:            "Europe/Kiev",
	}
}

// Store keeps per-user settings keyed by user id. Get returns Defaults for
// unknown users.
type Store interface {
	Get(ctx context.Context, userID int64) (Settings, error)
	Set(ctx context.Context, userID int64, s Settings) error
	Reset(ctx context.Context, userID int64) error
}
