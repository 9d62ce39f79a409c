package domain

import (
	"errors"
	"time"
)

// AnalysisParams configures one season analysis.
type AnalysisParams struct {
	Reducer     Reducer
	SwingDays   int
	WindowLen   int
	WindowShape WindowShape
}

// SeasonReport is everything a renderer needs for one season chart.
type SeasonReport struct {
	Station     string     `json:"station"`
	StationName string     `json:"station_name,omitempty"`
	Season      Season     `json:"season"`
	Period      string     `json:"period"`
	Reducer     Reducer    `json:"reducer"`
	SwingDays   int        `json:"swing_days,omitempty"`
	Years       []int      `json:"years"`
	Ticks       []string   `json:"ticks"`
	Mins        YearSeries `json:"mins"`
	Maxs        YearSeries `json:"maxs"`
	SmoothMins  []float64  `json:"smooth_mins"`
	SmoothMaxs  []float64  `json:"smooth_maxs"`
	WindowLen   int        `json:"window_len"`
	WindowShape string     `json:"window_shape"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Key identifies the report of one station and season, e.g. "160800-99999-winter".
func (r SeasonReport) Key() string {
	return r.Station + "-" + r.Season.String()
}

// HasSmoothed reports whether the smoothed series are available.
func (r SeasonReport) HasSmoothed() bool {
	return len(r.SmoothMins) == len(r.Years) && len(r.SmoothMaxs) == len(r.Years) && len(r.Years) > 0
}

// AnalyzeSeason runs aggregation, gap filling, and smoothing for one season.
// When either aggregate series has no valid value the report is returned
// without smoothed series together with ErrNoData. Validation errors from the
// smoother abort the analysis.
func AnalyzeSeason(t *Table, windows Windows, years []int, s Season, p AnalysisParams) (SeasonReport, error) {
	mins, maxs := AggregateSeason(t.Records, windows.For(s, years), p.Reducer, p.SwingDays)

	ticks := make([]string, len(years))
	for i, y := range years {
		ticks[i] = s.TickLabel(y)
	}

	report := SeasonReport{
		Season:      s,
		Period:      s.Period(),
		Reducer:     p.Reducer,
		Years:       append([]int(nil), years...),
		Ticks:       ticks,
		Mins:        mins,
		Maxs:        maxs,
		WindowLen:   p.WindowLen,
		WindowShape: p.WindowShape.String(),
		GeneratedAt: clock.Now(),
	}
	if p.Reducer == ReducerSwing {
		report.SwingDays = max(p.SwingDays, 1)
	}

	smoothMins, errMins := movingAverage(mins, p)
	smoothMaxs, errMaxs := movingAverage(maxs, p)
	if err := errors.Join(errMins, errMaxs); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return SeasonReport{}, verr
		}
		return report, ErrNoData
	}
	report.SmoothMins = smoothMins
	report.SmoothMaxs = smoothMaxs
	return report, nil
}

func movingAverage(series YearSeries, p AnalysisParams) ([]float64, error) {
	filled, err := FillGaps(series)
	if err != nil {
		return nil, err
	}
	return Smooth(filled, p.WindowLen, p.WindowShape)
}
