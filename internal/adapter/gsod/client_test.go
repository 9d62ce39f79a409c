package gsod

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gsod-seasons/internal/observability"
)

func gzipBody(t *testing.T, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newTestClient(url string) *Client {
	return NewClient(url, 5*time.Second, observability.NewMetricsForTesting(), discardLogger())
}

func TestClient_YearURL(t *testing.T) {
	c := newTestClient("https://www.ncei.noaa.gov/pub/data/gsod/")
	assert.Equal(t,
		"https://www.ncei.noaa.gov/pub/data/gsod/2024/160800-99999-2024.op.gz",
		c.YearURL("160800-99999", 2024))
}

func TestClient_FetchYear(t *testing.T) {
	body := gzipBody(t, testHeader, gsodLine("20240101", "39.2", "28.4"), gsodLine("20240102", "41.0*", "30.2"))
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(body) //nolint:errcheck // test server
	}))
	defer srv.Close()

	lines, err := newTestClient(srv.URL).FetchYear(context.Background(), "160800-99999", 2024)

	require.NoError(t, err)
	assert.Equal(t, "/2024/160800-99999-2024.op.gz", gotPath)
	require.Len(t, lines, 2)
	assert.Equal(t, "20240101", dateField(lines[0]))
	assert.Equal(t, "20240102", dateField(lines[1]))
}

func TestClient_FetchYear_NotPublished(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchYear(context.Background(), "160800-99999", 2031)
	assert.ErrorIs(t, err, ErrYearNotPublished)
}

func TestClient_FetchYear_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchYear(context.Background(), "160800-99999", 2024)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrYearNotPublished)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_FetchYear_NotGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("plain text")) //nolint:errcheck // test server
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchYear(context.Background(), "160800-99999", 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_FetchYear_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(gzipBody(t, testHeader)) //nolint:errcheck // test server
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(srv.URL).FetchYear(ctx, "160800-99999", 2024)
	assert.ErrorIs(t, err, context.Canceled)
}
