// Command seasons computes per-season temperature trends of a GSOD station
// and delivers the reports to the configured sinks.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/gsod-seasons/internal/adapter/chart"
	"github.com/couchcryptid/gsod-seasons/internal/adapter/console"
	"github.com/couchcryptid/gsod-seasons/internal/adapter/gsod"
	httpadapter "github.com/couchcryptid/gsod-seasons/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/gsod-seasons/internal/adapter/kafka"
	"github.com/couchcryptid/gsod-seasons/internal/config"
	"github.com/couchcryptid/gsod-seasons/internal/observability"
	"github.com/couchcryptid/gsod-seasons/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	stationName, err := gsod.LookupStationName(cfg.StationsDB, cfg.StationID)
	if err != nil {
		logger.Warn("station name lookup failed, using station id", "station", cfg.StationID, "error", err)
	}

	sinks := []pipeline.ReportSink{console.NewSummary(os.Stdout)}
	if cfg.ChartsEnabled {
		sinks = append(sinks, chart.NewRenderer(cfg.OutDir, logger))
	} else {
		logger.Info("chart rendering disabled")
	}

	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, writer)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	}

	p := pipeline.New(
		gsod.NewFileLoader(cfg.DataFile()),
		pipeline.NewAnalyzer(cfg.AnalysisParams(), logger, metrics),
		sinks,
		pipeline.Settings{StationID: cfg.StationID, StationName: stationName},
		logger,
		metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := p.Run(ctx)

	// With a server configured the reports stay available until shutdown.
	if srv != nil && runErr == nil {
		<-ctx.Done()
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	if runErr != nil {
		os.Exit(1)
	}
}
