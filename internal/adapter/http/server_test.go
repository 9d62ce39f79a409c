package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/gsod-seasons/internal/adapter/http"
	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockStore struct {
	reports []domain.SeasonReport
}

func (m *mockStore) Reports() []domain.SeasonReport { return m.reports }

func (m *mockStore) Report(s domain.Season) (domain.SeasonReport, bool) {
	for _, r := range m.reports {
		if r.Season == s {
			return r, true
		}
	}
	return domain.SeasonReport{}, false
}

func newTestServer(readyErr error, reports ...domain.SeasonReport) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, &mockStore{reports: reports}, slog.Default())
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(newTestServer(nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(newTestServer(nil), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(newTestServer(fmt.Errorf("analysis has not completed")), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestReportsEndpoint(t *testing.T) {
	srv := newTestServer(nil,
		domain.SeasonReport{Station: "160800-99999", Season: domain.Spring, Mins: domain.YearSeries{domain.Some(3.5)}},
		domain.SeasonReport{Station: "160800-99999", Season: domain.Winter, Mins: domain.YearSeries{domain.None()}},
	)

	rec := get(srv, "/reports")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body []domain.SeasonReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, domain.Spring, body[0].Season)
	assert.Equal(t, domain.Some(3.5), body[0].Mins[0])
	assert.False(t, body[1].Mins[0].Valid)
}

func TestReportsEndpoint_EmptyBeforeRun(t *testing.T) {
	rec := get(newTestServer(nil), "/reports")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSeasonEndpoint(t *testing.T) {
	srv := newTestServer(nil, domain.SeasonReport{Station: "160800-99999", Season: domain.Autumn, Period: "Sep-Nov"})

	tests := []struct {
		name string
		path string
		code int
	}{
		{"found", "/reports/autumn", http.StatusOK},
		{"case insensitive", "/reports/Autumn", http.StatusOK},
		{"no report", "/reports/summer", http.StatusNotFound},
		{"unknown season", "/reports/monsoon", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(srv, tt.path)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	var body domain.SeasonReport
	require.NoError(t, json.Unmarshal(get(srv, "/reports/autumn").Body.Bytes(), &body))
	assert.Equal(t, "Sep-Nov", body.Period)
}
