package render

import (
	"testing"
	"time"
)

func TestStatusForScaleBoundaries(t *testing.T) {
	tests := []struct {
		kp     float64
		status string
		level  ActivityLevel
	}{
		{0, "Quiet", LevelLow},
		{2, "Quiet", LevelLow},
		{2.33, "Minor activity", LevelMinor},
		{4, "Minor activity", LevelMinor},
		{4.1, "Moderate geomagnetic storm", LevelModerate},
		{6, "Moderate geomagnetic storm", LevelModerate},
		{6.5, "Strong geomagnetic storm", LevelStrong},
		{8, "Strong geomagnetic storm", LevelStrong},
		{8.1, "Extreme storm", LevelExtreme},
		{9, "Extreme storm", LevelExtreme},
	}

	for _, tt := range tests {
		got := StatusFor(tt.kp)
		if got.Status != tt.status {
			t.Errorf("Kp %.2f: expected status %q, got %q", tt.kp, tt.status, got.Status)
		}
		if got.Level != tt.level {
			t.Errorf("Kp %.2f: expected level %q, got %q", tt.kp, tt.level, got.Level)
		}
	}
}

func TestStormProbabilityBoundaries(t *testing.T) {
	tests := []struct {
		kp   float64
		want string
	}{
		{0, "Low (<25%)"},
		{4.9, "Low (<25%)"},
		{5, "Moderate (25-50%)"},
		{6.9, "Moderate (25-50%)"},
		{7, "High (50-75%)"},
		{7.9, "High (50-75%)"},
		{8, "Very high (>75%)"},
	}

	for _, tt := range tests {
		if got := StormProbability(tt.kp); got != tt.want {
			t.Errorf("Kp %.1f: expected %q, got %q", tt.kp, tt.want, got)
		}
	}
}

func TestRegionalAdviceHighLatitude(t *testing.T) {
	normal := RegionalAdvice(LevelModerate, false)
	high := RegionalAdvice(LevelModerate, true)
	if normal == high {
		t.Error("Expected different advice for high-latitude locations at moderate activity")
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)

	got := FormatTimestamp(ts, time.UTC)
	if got != "20.09.2025 12:00 UTC" {
		t.Errorf("Unexpected format: %q", got)
	}
}

func TestFormatTimestampZeroTime(t *testing.T) {
	if got := FormatTimestamp(time.Time{}, time.UTC); got != "time unknown" {
		t.Errorf("Expected placeholder for zero time, got %q", got)
	}
}
