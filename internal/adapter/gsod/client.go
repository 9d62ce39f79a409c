package gsod

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/gsod-seasons/internal/observability"
)

// ErrYearNotPublished is returned when NOAA has no file for a station and year.
var ErrYearNotPublished = errors.New("gsod year not published")

// Client downloads yearly GSOD station files from the NCEI archive.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an archive client rooted at baseURL, e.g.
// "https://www.ncei.noaa.gov/pub/data/gsod".
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// YearURL is the archive location of one station-year file.
func (c *Client) YearURL(stationID string, year int) string {
	return fmt.Sprintf("%s/%d/%s-%d.op.gz", c.baseURL, year, stationID, year)
}

// FetchYear downloads and decompresses one station-year file and returns its
// daily lines without the header.
func (c *Client) FetchYear(ctx context.Context, stationID string, year int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.YearURL(stationID, year), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch %s %d: %w", stationID, year, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.metrics.FetchRequests.WithLabelValues("missing").Inc()
		return nil, fmt.Errorf("%w: %s %d", ErrYearNotPublished, stationID, year)
	case resp.StatusCode != http.StatusOK:
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("gsod archive error: status %d: %s", resp.StatusCode, body)
	}

	lines, err := readGzipLines(resp.Body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode %s %d: %w", stationID, year, err)
	}
	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.logger.Debug("downloaded gsod year", "station", stationID, "year", year, "lines", len(lines))
	return lines, nil
}

func readGzipLines(r io.Reader) ([]string, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var lines []string
	sc := bufio.NewScanner(zr)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
