package fetchers

import (
	"context"
	"net/http"
	"testing"

	"github.com/jonboulle/clockwork"
)

func TestGFZFetchCurrentIndexProbesFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"capitalized field", `[{"Kp":3.67,"TimeStamp":"2025-09-20 12:00:00"}]`, 3.67},
		{"lowercase field", `[{"kp":2.33,"time_tag":"2025-09-20T12:00:00"}]`, 2.33},
		{"kp_index field", `[{"kp_index":5.0}]`, 5.0},
		{"quoted value", `[{"kp":"4.33"}]`, 4.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			f := NewGFZFetcher(testConfig(srv.URL), testLogger(), clockwork.NewFakeClock())
			reading, err := f.FetchCurrentIndex(context.Background())
			if err != nil {
				t.Fatalf("FetchCurrentIndex failed: %v", err)
			}
			if reading.Kp != tt.want {
				t.Errorf("Expected Kp %f, got %f", tt.want, reading.Kp)
			}
			if reading.Source != "gfz-potsdam" {
				t.Errorf("Expected source 'gfz-potsdam', got %q", reading.Source)
			}
		})
	}
}

func TestGFZMissingIndexFieldYieldsZeroReading(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"TimeStamp":"2025-09-20 12:00:00"}]`))
	})

	f := NewGFZFetcher(testConfig(srv.URL), testLogger(), clockwork.NewFakeClock())
	reading, err := f.FetchCurrentIndex(context.Background())
	if err != nil {
		t.Fatalf("Expected a zero reading, not an error: %v", err)
	}
	if reading.Kp != 0 {
		t.Errorf("Expected Kp 0 for a missing field, got %f", reading.Kp)
	}
}

func TestGFZEmptyResponseIsAnError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	f := NewGFZFetcher(testConfig(srv.URL), testLogger(), clockwork.NewFakeClock())
	if _, err := f.FetchCurrentIndex(context.Background()); err == nil {
		t.Fatal("Expected an error for an empty array")
	}
}

func TestGFZServerErrorIsAnError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	f := NewGFZFetcher(testConfig(srv.URL), testLogger(), clockwork.NewFakeClock())
	if _, err := f.FetchCurrentIndex(context.Background()); err == nil {
		t.Fatal("Expected an error for HTTP 502")
	}
}
