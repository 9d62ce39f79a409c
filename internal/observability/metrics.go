package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges of a season analysis run.
type Metrics struct {
	RecordsLoaded    prometheus.Counter
	SentinelsDropped prometheus.Counter
	WindowsMissing   *prometheus.CounterVec // labels: season
	GapsFilled       *prometheus.CounterVec // labels: season
	SeasonsNoData    prometheus.Counter
	ReportsEmitted   *prometheus.CounterVec // labels: sink
	SinkErrors       *prometheus.CounterVec // labels: sink
	RunDuration      prometheus.Histogram
	LastRunSuccess   prometheus.Gauge

	// Updater metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,missing,error}
	LinesAppended prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsLoaded,
		m.SentinelsDropped,
		m.WindowsMissing,
		m.GapsFilled,
		m.SeasonsNoData,
		m.ReportsEmitted,
		m.SinkErrors,
		m.RunDuration,
		m.LastRunSuccess,
		m.FetchRequests,
		m.LinesAppended,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "records_loaded_total",
			Help:      "Daily records read from the station data file.",
		}),
		SentinelsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "sentinel_values_dropped_total",
			Help:      "MIN/MAX values equal to the 9999.9 missing sentinel inside season windows.",
		}),
		WindowsMissing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "season_windows_missing_total",
			Help:      "Season years whose first or last day is absent from the data.",
		}, []string{"season"}),
		GapsFilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "gaps_filled_total",
			Help:      "Undefined season aggregates replaced by their nearest neighbour.",
		}, []string{"season"}),
		SeasonsNoData: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "seasons_without_data_total",
			Help:      "Seasons with no valid aggregate in any year.",
		}),
		ReportsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "reports_emitted_total",
			Help:      "Season reports delivered per sink.",
		}, []string{"sink"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "sink_errors_total",
			Help:      "Failed season report deliveries per sink.",
		}, []string{"sink"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gsod_seasons",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-analyze-emit run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gsod_seasons",
			Name:      "last_run_success",
			Help:      "1 when the last run completed without errors, 0 otherwise.",
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "fetch_requests_total",
			Help:      "Yearly GSOD file downloads by outcome.",
		}, []string{"outcome"}),
		LinesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gsod_seasons",
			Name:      "lines_appended_total",
			Help:      "Daily lines appended to the station data file by the updater.",
		}),
	}
}
