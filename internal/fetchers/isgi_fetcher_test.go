package fetchers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestISGIFetchCurrentIndex(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date":"2025-09-20 09:00:00","kp":2.0},
			{"date":"2025-09-20 12:00:00","kp":4.33}
		]`))
	})

	f := NewISGIFetcher(testConfig(srv.URL), testLogger(), clockwork.NewFakeClock())
	reading, err := f.FetchCurrentIndex(context.Background())
	if err != nil {
		t.Fatalf("FetchCurrentIndex failed: %v", err)
	}

	if reading.Kp != 4.33 {
		t.Errorf("Expected the last entry's Kp 4.33, got %f", reading.Kp)
	}
	if reading.Source != "isgi" {
		t.Errorf("Expected source 'isgi', got %q", reading.Source)
	}
	if reading.ObservedAt.Hour() != 12 {
		t.Errorf("Expected the entry timestamp, got %v", reading.ObservedAt)
	}
}

func TestISGIMissingTimestampUsesClock(t *testing.T) {
	now := time.Date(2025, 9, 20, 15, 30, 0, 0, time.UTC)
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Kp":3.0}]`))
	})

	f := NewISGIFetcher(testConfig(srv.URL), testLogger(), clockwork.NewFakeClockAt(now))
	reading, err := f.FetchCurrentIndex(context.Background())
	if err != nil {
		t.Fatalf("FetchCurrentIndex failed: %v", err)
	}
	if !reading.ObservedAt.Equal(now) {
		t.Errorf("Expected the clock time %v, got %v", now, reading.ObservedAt)
	}
	if reading.Kp != 3.0 {
		t.Errorf("Expected the capitalized field to be probed, got %f", reading.Kp)
	}
}
