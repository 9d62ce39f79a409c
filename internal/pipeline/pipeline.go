package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
	"github.com/couchcryptid/gsod-seasons/internal/observability"
)

const (
	defaultRetryBackoff = 200 * time.Millisecond
	maxRetryBackoff     = 5 * time.Second
	maxSinkAttempts     = 3
)

// TableLoader reads the daily records of a station.
type TableLoader interface {
	Load(ctx context.Context) (*domain.Table, error)
}

// Analyzer builds the report of one season from the loaded table.
type Analyzer interface {
	Analyze(ctx context.Context, t *domain.Table, windows domain.Windows, years []int, s domain.Season) (domain.SeasonReport, error)
}

// ReportSink delivers the season reports of a run.
type ReportSink interface {
	Name() string
	Emit(ctx context.Context, reports []domain.SeasonReport) error
}

// Settings identifies the analysed station and tunes sink retries.
type Settings struct {
	StationID   string
	StationName string
	// RetryBackoff is the wait before the second sink attempt. Zero uses 200ms.
	RetryBackoff time.Duration
}

// Pipeline orchestrates the load-analyze-emit run.
type Pipeline struct {
	loader   TableLoader
	analyzer Analyzer
	sinks    []ReportSink
	settings Settings
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool

	mu      sync.RWMutex
	reports []domain.SeasonReport
}

// New creates a Pipeline with the given stages and observability.
func New(l TableLoader, a Analyzer, sinks []ReportSink, settings Settings, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if settings.RetryBackoff <= 0 {
		settings.RetryBackoff = defaultRetryBackoff
	}
	return &Pipeline{
		loader:   l,
		analyzer: a,
		sinks:    sinks,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once a run has produced reports, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("season analysis has not completed yet")
	}
	return nil
}

// Reports returns the reports of the last completed run in season order.
func (p *Pipeline) Reports() []domain.SeasonReport {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.SeasonReport(nil), p.reports...)
}

// Report returns the report of one season from the last completed run.
func (p *Pipeline) Report(s domain.Season) (domain.SeasonReport, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, r := range p.reports {
		if r.Season == s {
			return r, true
		}
	}
	return domain.SeasonReport{}, false
}

// Run loads the station table, analyses every season, and emits the reports
// to all sinks. Analysis errors abort the run; sink errors are retried and
// reported after every sink had its turn.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	defer func() { p.metrics.RunDuration.Observe(time.Since(start).Seconds()) }()
	p.logger.Info("season analysis started", "station", p.settings.StationID)

	reports, err := p.analyze(ctx)
	if err != nil {
		p.metrics.LastRunSuccess.Set(0)
		p.logger.Error("season analysis failed", "station", p.settings.StationID, "error", err)
		return err
	}

	p.mu.Lock()
	p.reports = reports
	p.mu.Unlock()
	p.ready.Store(true)

	emitErr := p.emit(ctx, reports)
	if emitErr != nil {
		p.metrics.LastRunSuccess.Set(0)
		return emitErr
	}
	p.metrics.LastRunSuccess.Set(1)
	p.logger.Info("season analysis finished", "station", p.settings.StationID,
		"seasons", len(reports), "duration", time.Since(start))
	return nil
}

func (p *Pipeline) analyze(ctx context.Context) ([]domain.SeasonReport, error) {
	table, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load station data: %w", err)
	}
	p.metrics.RecordsLoaded.Add(float64(table.Len()))

	start, end, err := table.YearRange()
	if err != nil {
		return nil, fmt.Errorf("station %s: %w", p.settings.StationID, err)
	}
	years := domain.Years(start, end)
	windows := domain.ResolveWindows(table.Dates(), start, end)
	p.logger.Info("station data loaded", "station", p.settings.StationID,
		"records", table.Len(), "first_year", start, "last_year", end)

	reports := make([]domain.SeasonReport, 0, len(domain.Seasons))
	for _, s := range domain.Seasons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := p.analyzer.Analyze(ctx, table, windows, years, s)
		switch {
		case errors.Is(err, domain.ErrNoData):
			p.metrics.SeasonsNoData.Inc()
			p.logger.Warn("season has no valid data, skipping smoothing", "season", s.String())
		case err != nil:
			return nil, fmt.Errorf("analyze %s: %w", s, err)
		}
		report.Station = p.settings.StationID
		report.StationName = p.settings.StationName
		reports = append(reports, report)
	}
	return reports, nil
}

func (p *Pipeline) emit(ctx context.Context, reports []domain.SeasonReport) error {
	var errs []error
	for _, sink := range p.sinks {
		if err := p.emitWithRetry(ctx, sink, reports); err != nil {
			p.metrics.SinkErrors.WithLabelValues(sink.Name()).Inc()
			p.logger.Error("emit reports failed", "sink", sink.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s sink: %w", sink.Name(), err))
			continue
		}
		p.metrics.ReportsEmitted.WithLabelValues(sink.Name()).Add(float64(len(reports)))
	}
	return errors.Join(errs...)
}

// emitWithRetry backs off exponentially between attempts, doubling from
// RetryBackoff and capped at 5s.
func (p *Pipeline) emitWithRetry(ctx context.Context, sink ReportSink, reports []domain.SeasonReport) error {
	backoff := p.settings.RetryBackoff
	var err error
	for attempt := 1; attempt <= maxSinkAttempts; attempt++ {
		if err = sink.Emit(ctx, reports); err == nil {
			return nil
		}
		if attempt == maxSinkAttempts || ctx.Err() != nil {
			break
		}
		p.logger.Warn("emit reports failed, retrying", "sink", sink.Name(), "attempt", attempt, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = retry.NextBackoff(backoff, maxRetryBackoff)
	}
	return err
}
