package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_RegistersOnFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	require.NoError(t, reg.Register(m.RecordsLoaded))
	require.NoError(t, reg.Register(m.SentinelsDropped))
	require.NoError(t, reg.Register(m.WindowsMissing))
	require.NoError(t, reg.Register(m.GapsFilled))
	require.NoError(t, reg.Register(m.SeasonsNoData))
	require.NoError(t, reg.Register(m.ReportsEmitted))
	require.NoError(t, reg.Register(m.SinkErrors))
	require.NoError(t, reg.Register(m.RunDuration))
	require.NoError(t, reg.Register(m.LastRunSuccess))
	require.NoError(t, reg.Register(m.FetchRequests))
	require.NoError(t, reg.Register(m.LinesAppended))

	m.WindowsMissing.WithLabelValues("winter").Inc()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "gsod_seasons_season_windows_missing_total")
	assert.Contains(t, names, "gsod_seasons_records_loaded_total")
}
