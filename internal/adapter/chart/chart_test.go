package chart

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

func testReport(r domain.Reducer) domain.SeasonReport {
	return domain.SeasonReport{
		Station:     "160800-99999",
		StationName: "MILANO/LINATE",
		Season:      domain.Winter,
		Period:      domain.Winter.Period(),
		Reducer:     r,
		Years:       []int{2000, 2001, 2002},
		Ticks:       []string{"00/01", "01/02", "02/03"},
		Mins:        domain.YearSeries{domain.Some(-1), domain.None(), domain.Some(0.5)},
		Maxs:        domain.YearSeries{domain.Some(7), domain.Some(8), domain.None()},
		SmoothMins:  []float64{-0.8, -0.4, 0.1},
		SmoothMaxs:  []float64{7.2, 7.6, 7.8},
		WindowLen:   3,
		WindowShape: "flat",
	}
}

func TestTitle(t *testing.T) {
	mean := testReport(domain.ReducerMean)
	assert.Equal(t,
		"Average of min/max temperature-values over Dec-Feb for every year (MILANO/LINATE)",
		Title(mean))

	swing := testReport(domain.ReducerSwing)
	swing.SwingDays = 7
	swing.StationName = ""
	assert.Equal(t,
		"7-day variability of min/max temperature-values over Dec-Feb for every year (160800-99999)",
		Title(swing))
}

func TestYLabel(t *testing.T) {
	assert.Equal(t, "Temperature (°C)", YLabel(domain.ReducerMean))
	assert.Equal(t, "Variability index (spectral centroid)", YLabel(domain.ReducerSwing))
}

func TestBarValues_MissingIsZero(t *testing.T) {
	vals := barValues(domain.YearSeries{domain.Some(3), domain.None(), domain.Some(-2)})
	assert.Equal(t, []float64{3, 0, -2}, []float64(vals))
}

func TestBuild(t *testing.T) {
	for _, r := range []domain.Reducer{domain.ReducerMean, domain.ReducerSwing} {
		t.Run(r.String(), func(t *testing.T) {
			p, err := Build(testReport(r))
			require.NoError(t, err)
			assert.Equal(t, Title(testReport(r)), p.Title.Text)
			assert.Equal(t, YLabel(r), p.Y.Label.Text)
		})
	}
}

func TestBuild_AllMissingWithoutSmoothing(t *testing.T) {
	rep := testReport(domain.ReducerMean)
	rep.Mins = domain.YearSeries{domain.None(), domain.None(), domain.None()}
	rep.SmoothMins, rep.SmoothMaxs = nil, nil

	_, err := Build(rep)
	assert.NoError(t, err)
}

func TestRenderer_Emit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	r := NewRenderer(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	spring := testReport(domain.ReducerMean)
	spring.Season = domain.Spring
	spring.Period = domain.Spring.Period()
	spring.Ticks = []string{"00", "01", "02"}

	err := r.Emit(context.Background(), []domain.SeasonReport{spring, testReport(domain.ReducerMean)})
	require.NoError(t, err)

	for _, s := range []domain.Season{domain.Spring, domain.Winter} {
		assert.Equal(t, filepath.Join(dir, s.String()+".svg"), r.Path(s))
		b, err := os.ReadFile(r.Path(s))
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "<svg"), "%s chart is not SVG", s)
	}
}

func TestRenderer_EmitCancelled(t *testing.T) {
	r := NewRenderer(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Emit(ctx, []domain.SeasonReport{testReport(domain.ReducerMean)})
	assert.ErrorIs(t, err, context.Canceled)
}
