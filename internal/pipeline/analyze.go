package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
	"github.com/couchcryptid/gsod-seasons/internal/observability"
)

// SeasonAnalyzer implements Analyzer using the domain season functions and
// records per-season data quality in metrics.
type SeasonAnalyzer struct {
	params  domain.AnalysisParams
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAnalyzer creates a SeasonAnalyzer with the given analysis settings.
func NewAnalyzer(params domain.AnalysisParams, logger *slog.Logger, metrics *observability.Metrics) *SeasonAnalyzer {
	return &SeasonAnalyzer{params: params, logger: logger, metrics: metrics}
}

// Analyze builds the report of one season. A season without any valid
// aggregate is returned without smoothed series together with
// domain.ErrNoData.
func (a *SeasonAnalyzer) Analyze(_ context.Context, t *domain.Table, windows domain.Windows, years []int, s domain.Season) (domain.SeasonReport, error) {
	a.observeWindows(t, windows.For(s, years))

	report, err := domain.AnalyzeSeason(t, windows, years, s, a.params)
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		return domain.SeasonReport{}, err
	}

	if gaps := countGaps(report.Mins) + countGaps(report.Maxs); gaps > 0 && report.HasSmoothed() {
		a.metrics.GapsFilled.WithLabelValues(s.String()).Add(float64(gaps))
		a.logger.Debug("filled undefined season values", "season", s.String(), "gaps", gaps)
	}
	return report, err
}

// observeWindows counts absent season windows and sentinel values inside the
// matched ones.
func (a *SeasonAnalyzer) observeWindows(t *domain.Table, windows []domain.SeasonWindow) {
	for _, w := range windows {
		if !w.Matched() {
			a.metrics.WindowsMissing.WithLabelValues(w.Season.String()).Inc()
			a.logger.Debug("season window incomplete", "season", w.Season.String(), "year", w.Year)
			continue
		}
		mins, maxs := domain.ExtractSeries(t.Records, w)
		dropped := len(mins) - len(domain.ValidValues(mins)) + len(maxs) - len(domain.ValidValues(maxs))
		if dropped > 0 {
			a.metrics.SentinelsDropped.Add(float64(dropped))
		}
	}
}

func countGaps(s domain.YearSeries) int {
	return len(s) - s.ValidCount()
}
