package ndbc

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/buoy-fetch/internal/domain"
	"github.com/couchcryptid/buoy-fetch/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stdmetBody = `#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE
#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi  hPa    ft
2024 04 26 15 10 200  5.0  8.0   1.5   8.0   6.1 190 1013.2  14.1  15.0   9.8   MM   MM    MM
`

func testClient(timeout time.Duration) (*Client, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, m
}

func TestReportURL(t *testing.T) {
	assert.Equal(t, "https://www.ndbc.noaa.gov/data/realtime2/44097.txt",
		ReportURL("https://www.ndbc.noaa.gov/data/realtime2/", "44097", domain.ReportStandard))
	assert.Equal(t, "https://www.ndbc.noaa.gov/data/realtime2/44097.spec",
		ReportURL("https://www.ndbc.noaa.gov/data/realtime2", "44097", domain.ReportSpectral))
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/realtime2/44097.txt", r.URL.Path)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, stdmetBody)
	}))
	defer srv.Close()

	c, m := testClient(5 * time.Second)
	url := ReportURL(srv.URL+"/realtime2/", "44097", domain.ReportStandard)

	raw, err := c.Fetch(context.Background(), domain.ReportStandard, url)
	require.NoError(t, err)

	assert.Equal(t, stdmetBody, raw.Body)
	assert.Equal(t, url, raw.URL)
	assert.Equal(t, domain.ReportStandard, raw.Kind)
	assert.False(t, raw.FetchedAt.IsZero())
	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchRequests.WithLabelValues("stdmet", "success")), 0)
}

func TestClient_Fetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusServiceUnavailable, http.StatusMovedPermanently} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, "not here")
			}))
			defer srv.Close()

			c, m := testClient(5 * time.Second)
			_, err := c.Fetch(context.Background(), domain.ReportSpectral, srv.URL+"/44097.spec")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unexpected status")
			assert.InDelta(t, 1, testutil.ToFloat64(m.FetchRequests.WithLabelValues("spectral", "error")), 0)
		})
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := testClient(50 * time.Millisecond)
	_, err := c.Fetch(context.Background(), domain.ReportStandard, srv.URL+"/44097.txt")
	require.Error(t, err)
}

func TestClient_Fetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/44097.txt"
	srv.Close()

	c, _ := testClient(time.Second)
	_, err := c.Fetch(context.Background(), domain.ReportStandard, url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch ")
}

func TestClient_Fetch_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, stdmetBody)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := testClient(5 * time.Second)
	_, err := c.Fetch(ctx, domain.ReportStandard, srv.URL+"/44097.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
