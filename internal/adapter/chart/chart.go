// Package chart renders season reports as SVG bar charts with the smoothed
// trend drawn on top.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

// bandHalfWidth is the half height, in °C, of the shaded band drawn around
// the mean of a mean-reducer series.
const bandHalfWidth = 2.0

const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var (
	minColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	maxColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	minBand  = color.RGBA{R: 31, G: 119, B: 180, A: 40}
	maxBand  = color.RGBA{R: 214, G: 39, B: 40, A: 40}
	barWidth = vg.Points(4)
)

// Renderer writes one <season>.svg per report into a directory.
type Renderer struct {
	dir    string
	logger *slog.Logger
}

// NewRenderer creates a Renderer writing to dir. The directory is created on
// first use.
func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (r *Renderer) Name() string { return "chart" }

// Path returns the file a season's chart is written to.
func (r *Renderer) Path(s domain.Season) string {
	return filepath.Join(r.dir, s.String()+".svg")
}

// Emit renders every report.
func (r *Renderer) Emit(ctx context.Context, reports []domain.SeasonReport) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	for _, rep := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := Build(rep)
		if err != nil {
			return fmt.Errorf("build %s chart: %w", rep.Season, err)
		}
		path := r.Path(rep.Season)
		if err := p.Save(chartWidth, chartHeight, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		r.logger.Info("chart written", "season", rep.Season.String(), "path", path)
	}
	return nil
}

// Build lays out the chart of one report without writing it.
func Build(rep domain.SeasonReport) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title(rep)
	p.Y.Label.Text = YLabel(rep.Reducer)
	p.Legend.Top = true
	p.NominalX(rep.Ticks...)

	if rep.Reducer == domain.ReducerMean {
		if err := addBand(p, rep.Maxs, maxBand); err != nil {
			return nil, err
		}
		if err := addBand(p, rep.Mins, minBand); err != nil {
			return nil, err
		}
	}

	if err := addBars(p, "min", rep.Mins, minColor, -barWidth/2); err != nil {
		return nil, err
	}
	if err := addBars(p, "max", rep.Maxs, maxColor, barWidth/2); err != nil {
		return nil, err
	}

	if rep.HasSmoothed() {
		if err := addTrend(p, "min (smoothed)", rep.SmoothMins, minColor); err != nil {
			return nil, err
		}
		if err := addTrend(p, "max (smoothed)", rep.SmoothMaxs, maxColor); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Title returns the chart heading of a report.
func Title(rep domain.SeasonReport) string {
	station := rep.Station
	if rep.StationName != "" {
		station = rep.StationName
	}
	if rep.Reducer == domain.ReducerSwing {
		return fmt.Sprintf("%d-day variability of min/max temperature-values over %s for every year (%s)",
			rep.SwingDays, rep.Period, station)
	}
	return fmt.Sprintf("Average of min/max temperature-values over %s for every year (%s)", rep.Period, station)
}

// YLabel returns the y axis label for a reducer.
func YLabel(r domain.Reducer) string {
	if r == domain.ReducerSwing {
		return "Variability index (spectral centroid)"
	}
	return "Temperature (°C)"
}

// barValues draws undefined aggregates as zero height bars.
func barValues(series domain.YearSeries) plotter.Values {
	vals := make(plotter.Values, len(series))
	for i, v := range series {
		if v.Valid {
			vals[i] = v.V
		}
	}
	return vals
}

func addBars(p *plot.Plot, label string, series domain.YearSeries, c color.Color, offset vg.Length) error {
	if len(series) == 0 {
		return nil
	}
	bars, err := plotter.NewBarChart(barValues(series), barWidth)
	if err != nil {
		return fmt.Errorf("%s bars: %w", label, err)
	}
	bars.Color = c
	bars.LineStyle.Width = 0
	bars.Offset = offset
	p.Add(bars)
	p.Legend.Add(label, bars)
	return nil
}

func addTrend(p *plot.Plot, label string, ys []float64, c color.Color) error {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i] = plotter.XY{X: float64(i), Y: y}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s line: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// addBand shades mean±bandHalfWidth across the whole x range. Series without
// a defined value get no band.
func addBand(p *plot.Plot, series domain.YearSeries, c color.Color) error {
	valid := make([]float64, 0, len(series))
	for _, v := range series {
		if v.Valid {
			valid = append(valid, v.V)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	m := stat.Mean(valid, nil)
	x0, x1 := -0.5, float64(len(series))-0.5
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: x0, Y: m - bandHalfWidth},
		{X: x1, Y: m - bandHalfWidth},
		{X: x1, Y: m + bandHalfWidth},
		{X: x0, Y: m + bandHalfWidth},
	})
	if err != nil {
		return fmt.Errorf("band: %w", err)
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	p.Add(poly)
	return nil
}
