package forecast

import (
	"errors"
	"testing"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

const sampleForecast = `:Product: 3-Day Forecast
:Issued: 2025 Sep 20 0030 UTC
# Prepared by the U.S. Dept. of Commerce, NOAA, Space Weather Prediction Center

NOAA Kp index breakdown Sep 20-Sep 22 2025

             Sep 20    Sep 21    Sep 22
00-03UT        2         3         2
03-06UT        1         2         2
06-09UT        2         2         3
09-12UT        2         3         4
12-15UT        3         3         3
15-18UT        2         4         3
18-21UT        3         5         2
21-00UT        3         4         5
`

func TestParseHeaderDates(t *testing.T) {
	parser := NewTextForecastParser(3)

	days, err := parser.Parse(sampleForecast)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("Expected 3 forecast days, got %d", len(days))
	}

	if days[0].DateLabel != "20 September" {
		t.Errorf("Expected date label '20 September', got %q", days[0].DateLabel)
	}
	if days[0].DayOfMonth != 20 || days[1].DayOfMonth != 21 || days[2].DayOfMonth != 22 {
		t.Errorf("Wrong day-of-month sequence: %d, %d, %d",
			days[0].DayOfMonth, days[1].DayOfMonth, days[2].DayOfMonth)
	}
	for i, day := range days {
		if day.Confidence != "high" {
			t.Errorf("Day %d: parsed days carry high confidence, got %q", i, day.Confidence)
		}
		if day.Provenance != "noaa" {
			t.Errorf("Day %d: expected provenance 'noaa', got %q", i, day.Provenance)
		}
	}
}

func TestParseShiftsIntervalsToLocalTime(t *testing.T) {
	parser := NewTextForecastParser(3)

	days, err := parser.Parse(sampleForecast)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 09-12UT shifts to 12:00-15:00 local at +3
	var found bool
	for _, iv := range days[0].Intervals {
		if iv.SourceUTCRange == "09-12" {
			found = true
			if iv.LocalTimeRange != "12:00-15:00" {
				t.Errorf("Expected local range '12:00-15:00', got %q", iv.LocalTimeRange)
			}
			if iv.LocalStartHour != 12 {
				t.Errorf("Expected local start hour 12, got %d", iv.LocalStartHour)
			}
			if iv.Kp != 2 {
				t.Errorf("Expected Kp 2 for day 0, got %f", iv.Kp)
			}
		}
	}
	if !found {
		t.Fatal("Interval 09-12UT not found on day 0")
	}
}

func TestParseReassignsMidnightCrossingIntervals(t *testing.T) {
	parser := NewTextForecastParser(3)

	days, err := parser.Parse(sampleForecast)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 21-00UT becomes 00:00-03:00 local and belongs to the next local day:
	// day 0's column moves to day 1, day 1's to day 2, and day 2's value
	// stays on day 2 because there is no fourth column.
	if got := countUTCRange(days[0], "21-00"); got != 0 {
		t.Errorf("Day 0 should have no 21-00UT intervals after reassignment, got %d", got)
	}
	if got := countUTCRange(days[1], "21-00"); got != 1 {
		t.Errorf("Day 1 should have 1 reassigned 21-00UT interval, got %d", got)
	}
	if got := countUTCRange(days[2], "21-00"); got != 2 {
		t.Errorf("Day 2 should have 2 intervals (own + clamped), got %d", got)
	}

	for _, iv := range days[1].Intervals {
		if iv.SourceUTCRange == "21-00" {
			if iv.LocalTimeRange != "00:00-03:00" {
				t.Errorf("Expected local range '00:00-03:00', got %q", iv.LocalTimeRange)
			}
			if iv.Kp != 3 {
				t.Errorf("Reassigned interval should carry day 0's value 3, got %f", iv.Kp)
			}
		}
	}
}

func TestParseIntervalsSortedByLocalStart(t *testing.T) {
	parser := NewTextForecastParser(3)

	days, err := parser.Parse(sampleForecast)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for d, day := range days {
		for i := 1; i < len(day.Intervals); i++ {
			if day.Intervals[i-1].LocalStartHour > day.Intervals[i].LocalStartHour {
				t.Errorf("Day %d: intervals not sorted at position %d", d, i)
			}
		}
	}
}

func TestParseTracksMaxKpPerDay(t *testing.T) {
	parser := NewTextForecastParser(3)

	days, err := parser.Parse(sampleForecast)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Day 1 keeps its own values (max 5 from 18-21UT) even though its 21-00UT
	// value 4 moved to day 2.
	if days[1].MaxKp != 5 {
		t.Errorf("Expected day 1 max Kp 5, got %f", days[1].MaxKp)
	}
	// Day 2 receives the clamped 21-00UT values (4 and 5).
	if days[2].MaxKp != 5 {
		t.Errorf("Expected day 2 max Kp 5, got %f", days[2].MaxKp)
	}
}

func TestParseSkipsMissingValues(t *testing.T) {
	parser := NewTextForecastParser(3)

	text := `             Oct 01    Oct 02    Oct 03
00-03UT        2         -         x
03-06UT        -         3         1
`
	days, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(days[0].Intervals) != 1 {
		t.Errorf("Day 0: expected 1 interval, got %d", len(days[0].Intervals))
	}
	if len(days[1].Intervals) != 1 {
		t.Errorf("Day 1: expected 1 interval, got %d", len(days[1].Intervals))
	}
	if len(days[2].Intervals) != 1 {
		t.Errorf("Day 2: expected 1 interval, got %d", len(days[2].Intervals))
	}
}

func TestParseNoHeader(t *testing.T) {
	parser := NewTextForecastParser(3)

	days, err := parser.Parse("no dates in here\n00-03UT  2  3  4\n")
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("Expected ErrNoHeader, got %v", err)
	}
	if days != nil {
		t.Errorf("Expected nil days on header failure, got %d", len(days))
	}
}

func TestParseSingleDateIsNotAHeader(t *testing.T) {
	parser := NewTextForecastParser(3)

	// A line with one date (like the :Issued: line) must not qualify.
	_, err := parser.Parse(":Issued: 2025 Sep 20 0030 UTC\n")
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("Expected ErrNoHeader for single-date line, got %v", err)
	}
}

func countUTCRange(day models.ForecastDay, utcRange string) int {
	count := 0
	for _, iv := range day.Intervals {
		if iv.SourceUTCRange == utcRange {
			count++
		}
	}
	return count
}
