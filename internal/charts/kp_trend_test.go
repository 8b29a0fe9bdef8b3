package charts

import (
	"bytes"
	"testing"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G'}

func TestRenderKpTrend(t *testing.T) {
	intervals := []models.ForecastInterval{
		{LocalTimeRange: "09:00-12:00", LocalStartHour: 9, Kp: 2},
		{LocalTimeRange: "12:00-15:00", LocalStartHour: 12, Kp: 3.33},
		{LocalTimeRange: "15:00-18:00", LocalStartHour: 15, Kp: 5},
		{LocalTimeRange: "18:00-21:00", LocalStartHour: 18, Kp: 7.67},
	}

	png, err := RenderKpTrend(intervals)
	if err != nil {
		t.Fatalf("RenderKpTrend failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngSignature) {
		t.Error("Expected a PNG payload")
	}
}

func TestRenderKpTrendNeedsTwoIntervals(t *testing.T) {
	_, err := RenderKpTrend([]models.ForecastInterval{{LocalStartHour: 9, Kp: 2}})
	if err == nil {
		t.Fatal("Expected an error for a single interval")
	}

	if _, err := RenderKpTrend(nil); err == nil {
		t.Fatal("Expected an error for no intervals")
	}
}

func TestKpZoneColors(t *testing.T) {
	quiet := kpZoneColor(1)
	minor := kpZoneColor(3)
	moderate := kpZoneColor(5.5)
	severe := kpZoneColor(8)

	colors := []interface{}{quiet, minor, moderate, severe}
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			if colors[i] == colors[j] {
				t.Errorf("Zones %d and %d share a color", i, j)
			}
		}
	}
}
