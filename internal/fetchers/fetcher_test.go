package fetchers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nazarpelekh/legit-wearher-bot/internal/config"
	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.ERROR, logger.TextFormat, io.Discard)
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		NOAAKpURL:       baseURL + "/kp",
		NOAAForecastURL: baseURL + "/forecast",
		NOAAMagURL:      baseURL + "/mag",
		NOAAXRayURL:     baseURL + "/xray",
		GFZKpURL:        baseURL + "/gfz",
		ISGIKpURL:       baseURL + "/isgi",
		SIDCRSSURL:      baseURL + "/rss",
		NOAATimeout:     5 * time.Second,
		BackupTimeout:   5 * time.Second,
	}
}

func TestParseTimestampKnownLayouts(t *testing.T) {
	clock := clockwork.NewFakeClock()

	cases := map[string]string{
		"2025-09-20T12:34:56":     "ISO without zone",
		"2025-09-20 12:34:56.000": "space separated with millis",
		"2025-09-20 12:34:56":     "space separated",
		"2025-09-20 12:34":        "minute resolution",
	}
	for input, label := range cases {
		got := parseTimestamp(input, clock)
		if got.Year() != 2025 || got.Month() != time.September || got.Day() != 20 {
			t.Errorf("%s: parsed wrong date from %q: %v", label, input, got)
		}
	}
}

func TestParseTimestampFallsBackToClock(t *testing.T) {
	now := time.Date(2025, 9, 20, 15, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	got := parseTimestamp("not a timestamp", clock)
	if !got.Equal(now) {
		t.Errorf("Expected clock fallback %v, got %v", now, got)
	}
}

func TestNewDataFetcherWiresAllSources(t *testing.T) {
	f := NewDataFetcher(testConfig("http://localhost"), testLogger(), clockwork.NewFakeClock())

	if f.NOAA == nil || f.GFZ == nil || f.ISGI == nil || f.SIDC == nil {
		t.Fatal("Expected all source clients to be constructed")
	}
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}
