package ndbc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/buoy-fetch/internal/domain"
	"github.com/couchcryptid/buoy-fetch/internal/observability"
)

// maxBodyBytes caps a report download. Realtime files hold 45 days of rows, a
// few hundred KB; only the first three lines are parsed.
const maxBodyBytes = 8 << 20

const userAgent = "buoy-fetch/1.0 (+https://www.ndbc.noaa.gov/)"

// Client retrieves NDBC realtime text reports over HTTP.
// It implements pipeline.Fetcher.
type Client struct {
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NDBC client whose requests give up after timeout.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// ReportURL returns the realtime2 URL of a station's report,
// e.g. https://www.ndbc.noaa.gov/data/realtime2/44097.spec.
func ReportURL(baseURL, stationID string, kind domain.ReportKind) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + stationID + kind.Extension()
}

// Fetch downloads the report at url. Transport errors, timeouts and non-2xx
// responses are returned as errors; the caller decides how to degrade.
func (c *Client) Fetch(ctx context.Context, kind domain.ReportKind, url string) (domain.RawReport, error) {
	start := time.Now()
	body, err := c.get(ctx, url)
	c.metrics.FetchDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(string(kind), "error").Inc()
		return domain.RawReport{}, err
	}
	c.metrics.FetchRequests.WithLabelValues(string(kind), "success").Inc()

	c.logger.Debug("fetched report", "report", kind, "url", url, "bytes", len(body))
	return domain.RawReport{
		Kind:      kind,
		URL:       url,
		Body:      body,
		FetchedAt: start.UTC(),
	}, nil
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(data), nil
}
