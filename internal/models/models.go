package models

import "time"

// IndexSource identifies where a Kp reading came from.
type IndexSource string

const (
	SourceNOAA         IndexSource = "noaa"
	SourceGFZ          IndexSource = "gfz-potsdam"
	SourceISGI         IndexSource = "isgi"
	SourceTextForecast IndexSource = "noaa-forecast"
	SourceFallback     IndexSource = "fallback"
)

// AlternativeReading records a value reported by a provider that lost the
// max-wins selection.
type AlternativeReading struct {
	Source IndexSource `json:"source"`
	Kp     float64     `json:"kp"`
}

// IndexReading is the reconciled planetary Kp index for a single request.
// It is built fresh on every reconciliation and never mutated afterwards.
type IndexReading struct {
	Kp               float64              `json:"kp"`
	ObservedAt       time.Time            `json:"observed_at"`
	Source           IndexSource          `json:"source"`
	Alternatives     []AlternativeReading `json:"alternatives,omitempty"`
	AvailableSources int                  `json:"available_sources"`
	// HasBackup is true when more than one provider contributed a value,
	// so the presentation layer can show the cross-check.
	HasBackup bool `json:"has_backup"`
}

// ForecastProvenance records whether a forecast day was observed or made up.
type ForecastProvenance string

const (
	ProvenanceParsedText  ForecastProvenance = "noaa"
	ProvenanceSynthesized ForecastProvenance = "generated"
)

// Confidence labels how reliable a forecast day is.
type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceLow      Confidence = "low"
)

// ForecastInterval is one 3-hour slot of a forecast day, expressed in the
// display time zone. SourceUTCRange keeps the original table slot.
type ForecastInterval struct {
	LocalTimeRange string  `json:"local_time_range"` // "12:00-15:00"
	LocalStartHour int     `json:"local_start_hour"`
	Kp             float64 `json:"kp"`
	SourceUTCRange string  `json:"source_utc_range"` // "09-12"
}

// ForecastDay is one day of the 3-day geomagnetic forecast. Intervals are
// ordered by local start hour; MaxKp is the maximum over the intervals when
// the day was parsed from the text feed.
type ForecastDay struct {
	DateLabel  string             `json:"date_label"`
	Month      string             `json:"month,omitempty"` // source month token, e.g. "Sep"
	DayOfMonth int                `json:"day_of_month,omitempty"`
	MaxKp      float64            `json:"max_kp"`
	Confidence Confidence         `json:"confidence"`
	Intervals  []ForecastInterval `json:"intervals,omitempty"`
	Provenance ForecastProvenance `json:"provenance"`
}

// AuroraVisibilityAssessment is the result of evaluating a location against
// the index-dependent auroral oval.
type AuroraVisibilityAssessment struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	MagneticLatitude  float64 `json:"magnetic_latitude"`
	AuroralBoundary   float64 `json:"auroral_boundary"`
	Visible           bool    `json:"visible"`
	DistanceToOval    float64 `json:"distance_to_oval"`
	RequiredKp        int     `json:"required_kp,omitempty"` // set when not visible; intentionally unclamped
	ApproximateMagLat bool    `json:"approximate_mag_lat,omitempty"`
}

// AlertKind classifies derived geomagnetic alerts.
type AlertKind string

const (
	AlertGeomagneticWarning AlertKind = "geomagnetic_warning"
	AlertGeomagneticStorm   AlertKind = "geomagnetic_storm"
)

// AlertRecord is a transient alert derived from the current reconciled
// reading. Alerts are regenerated on every call and never stored.
type AlertRecord struct {
	ID       string      `json:"id"`
	Kind     AlertKind   `json:"kind"`
	IssuedAt time.Time   `json:"issued_at"`
	Message  string      `json:"message"`
	Source   IndexSource `json:"source"`
}

// ProviderHealth reports the outcome of a diagnostic probe of one upstream.
type ProviderHealth struct {
	Available bool     `json:"available"`
	LastKp    *float64 `json:"last_kp,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// FluxSample is one entry of the auxiliary GOES magnetometer or X-ray feeds,
// kept for display enrichment only.
type FluxSample struct {
	TimeTag string  `json:"time_tag"`
	Value   float64 `json:"value"`
	Channel string  `json:"channel,omitempty"`
}

// Bulletin is a recent SIDC space-weather bulletin item.
type Bulletin struct {
	Title       string    `json:"title"`
	Severity    string    `json:"severity"` // Low/Moderate/High/Extreme
	PublishedAt time.Time `json:"published_at"`
}
