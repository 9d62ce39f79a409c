// Command gsodupdate appends the days NOAA published since the last line of a
// station's GSOD file.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/gsod-seasons/internal/adapter/gsod"
	"github.com/couchcryptid/gsod-seasons/internal/config"
	"github.com/couchcryptid/gsod-seasons/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gsod.NewClient(cfg.GSODBaseURL, cfg.FetchTimeout, metrics, logger)
	updater := gsod.NewUpdater(client, nil, metrics, logger)

	res, err := updater.Update(ctx, cfg.DataFile(), cfg.StationID)
	if err != nil {
		logger.Error("update failed", "station", cfg.StationID, "file", cfg.DataFile(), "error", err)
		os.Exit(1)
	}
	logger.Info("update complete",
		"station", cfg.StationID,
		"previous_last_date", res.LastDate,
		"appended", res.Appended,
		"missing_years", res.MissingYears,
	)
}
