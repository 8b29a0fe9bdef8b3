package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
)

// Geocoder resolves coordinates to a human-readable place name. Without an
// OpenCage API key it falls back to coarse coordinate-box heuristics, so the
// resolver always returns something displayable.
type Geocoder struct {
	client *resty.Client
	url    string
	apiKey string
	log    *logger.Logger
}

// NewGeocoder creates a geocoder; an empty apiKey disables the remote lookup.
func NewGeocoder(url, apiKey string, log *logger.Logger) *Geocoder {
	client := resty.New()
	client.SetTimeout(10 * time.Second)

	return &Geocoder{
		client: client,
		url:    url,
		apiKey: apiKey,
		log:    log,
	}
}

type openCageResponse struct {
	Results []struct {
		Formatted  string `json:"formatted"`
		Components struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"components"`
	} `json:"results"`
}

// ResolveLocationName returns a display name for the coordinates. Lookup
// failures degrade to the coordinate-box fallback, never to an error.
func (g *Geocoder) ResolveLocationName(ctx context.Context, lat, lon float64) string {
	if g.apiKey == "" {
		return boxedLocationName(lat, lon)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     fmt.Sprintf("%f,%f", lat, lon),
			"key":   g.apiKey,
			"limit": "1",
		}).
		Get(g.url)
	if err != nil || resp.StatusCode() != 200 {
		g.log.Warn("reverse geocoding failed, using coordinate fallback")
		return boxedLocationName(lat, lon)
	}

	var data openCageResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil || len(data.Results) == 0 {
		return boxedLocationName(lat, lon)
	}

	result := data.Results[0]
	c := result.Components

	name := ""
	switch {
	case c.City != "":
		name = c.City
	case c.Town != "":
		name = c.Town
	case c.Village != "":
		name = c.Village
	}
	if c.State != "" {
		if name != "" {
			name += ", "
		}
		name += c.State
	}
	if c.Country != "" {
		if name != "" {
			name += ", "
		}
		name += c.Country
	}
	if name == "" {
		name = result.Formatted
	}
	if name == "" {
		name = coordinateLabel(lat, lon)
	}
	return name
}

// boxedLocationName places the coordinates with coarse bounding boxes for
// the regions most of the bot's audience lives in.
func boxedLocationName(lat, lon float64) string {
	switch {
	case lat >= 44 && lat <= 53 && lon >= 22 && lon <= 41:
		switch {
		case lat >= 49 && lat <= 51 && lon >= 23 && lon <= 26:
			return "Lviv region, Ukraine"
		case lat >= 50.3 && lat <= 50.6 && lon >= 30.2 && lon <= 30.8:
			return "Kyiv, Ukraine"
		case lat >= 46.3 && lat <= 46.6 && lon >= 30.6 && lon <= 31.0:
			return "Odesa, Ukraine"
		case lat >= 49.9 && lat <= 50.1 && lon >= 36.1 && lon <= 36.4:
			return "Kharkiv, Ukraine"
		}
		return "Ukraine"
	case lat >= 49 && lat <= 56 && lon >= 14 && lon <= 25:
		return "Poland"
	default:
		return coordinateLabel(lat, lon)
	}
}

func coordinateLabel(lat, lon float64) string {
	return fmt.Sprintf("%.4f°, %.4f°", lat, lon)
}
