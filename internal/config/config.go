package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the space weather bot backend
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Data source URLs
	NOAAKpURL       string `env:"NOAA_KP_URL,default=https://services.swpc.noaa.gov/json/planetary_k_index_1m.json"`
	NOAAForecastURL string `env:"NOAA_FORECAST_URL,default=https://services.swpc.noaa.gov/text/3-day-geomag-forecast.txt"`
	NOAAMagURL      string `env:"NOAA_MAG_URL,default=https://services.swpc.noaa.gov/json/goes/primary/magnetometers-1-day.json"`
	NOAAXRayURL     string `env:"NOAA_XRAY_URL,default=https://services.swpc.noaa.gov/json/goes/primary/xrays-1-day.json"`
	GFZKpURL        string `env:"GFZ_KP_URL,default=https://kp.gfz-potsdam.de/app/json"`
	ISGIKpURL       string `env:"ISGI_KP_URL,default=https://isgi.unistra.fr/data_download.php?type=kp&format=json&period=latest"`
	SIDCRSSURL      string `env:"SIDC_RSS_URL,default=https://www.sidc.be/products/meu"`

	// Per-source request timeouts. NOAA gets the longer budget because the
	// text forecast endpoint is noticeably slower than the JSON feeds.
	NOAATimeout   time.Duration `env:"NOAA_TIMEOUT,default=15s"`
	BackupTimeout time.Duration `env:"BACKUP_TIMEOUT,default=10s"`

	// Display zone: the NOAA table is UTC, users see Kyiv time
	DisplayTimezone  string `env:"DISPLAY_TIMEZONE,default=Europe/Kiev"`
	DisplayUTCOffset int    `env:"DISPLAY_UTC_OFFSET,default=3"`

	// Reverse geocoding (optional, coordinate-box fallback without a key)
	OpenCageAPIKey string `env:"OPENCAGE_API_KEY"`
	OpenCageURL    string `env:"OPENCAGE_URL,default=https://api.opencagedata.com/geocode/v1/json"`

	// Settings store backend: "memory" or "redis"
	SettingsBackend string `env:"SETTINGS_BACKEND,default=memory"`
	RedisAddr       string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB,default=0"`

	// Optional Kafka publisher for derived alerts (empty brokers disables it)
	KafkaBrokers    []string `env:"KAFKA_BROKERS"`
	KafkaAlertTopic string   `env:"KAFKA_ALERT_TOPIC,default=space-weather-alerts"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
