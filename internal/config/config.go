package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	StationID  string
	DataDir    string
	StationsDB string
	OutDir     string

	Reducer         domain.Reducer
	SwingDays       int
	SmoothingWindow int
	SmoothingShape  domain.WindowShape
	ChartsEnabled   bool

	LogLevel        string
	LogFormat       string
	HTTPAddr        string // empty disables the report server
	ShutdownTimeout time.Duration

	KafkaBrokers   []string
	KafkaSinkTopic string // empty disables the Kafka sink

	// GSOD updater configuration.
	GSODBaseURL  string
	FetchTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is read first and never
// overrides variables already set.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "30s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	reducer, err := parseReducer()
	if err != nil {
		return nil, err
	}

	shape, err := domain.ParseWindowShape(sharedcfg.EnvOrDefault("SMOOTHING_SHAPE", "flat"))
	if err != nil {
		return nil, fmt.Errorf("SMOOTHING_SHAPE: %w", err)
	}

	swingDays, err := parsePositiveInt("SWING_DAYS", 1)
	if err != nil {
		return nil, err
	}
	window, err := parsePositiveInt("SMOOTHING_WINDOW", 5)
	if err != nil {
		return nil, err
	}

	dataDir := sharedcfg.EnvOrDefault("DATA_DIR", "data")
	cfg := &Config{
		StationID:  sharedcfg.EnvOrDefault("STATION_ID", "160800-99999"),
		DataDir:    dataDir,
		StationsDB: sharedcfg.EnvOrDefault("STATIONS_DB", filepath.Join(dataDir, "isd-history.txt")),
		OutDir:     sharedcfg.EnvOrDefault("OUT_DIR", "output"),

		Reducer:         reducer,
		SwingDays:       swingDays,
		SmoothingWindow: window,
		SmoothingShape:  shape,
		ChartsEnabled:   sharedcfg.EnvOrDefault("CHARTS_ENABLED", "true") == "true",

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: os.Getenv("KAFKA_SINK_TOPIC"),

		GSODBaseURL:  sharedcfg.EnvOrDefault("GSOD_BASE_URL", "https://www.ncei.noaa.gov/pub/data/gsod"),
		FetchTimeout: fetchTimeout,
	}

	if cfg.StationID == "" {
		return nil, errors.New("STATION_ID is required")
	}
	if cfg.KafkaEnabled() && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_SINK_TOPIC is set but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

// DataFile is the concatenated GSOD file of the configured station.
func (c *Config) DataFile() string {
	return filepath.Join(c.DataDir, c.StationID+".full")
}

// KafkaEnabled reports whether season reports are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return c.KafkaSinkTopic != ""
}

// AnalysisParams returns the per-season analysis settings.
func (c *Config) AnalysisParams() domain.AnalysisParams {
	return domain.AnalysisParams{
		Reducer:     c.Reducer,
		SwingDays:   c.SwingDays,
		WindowLen:   c.SmoothingWindow,
		WindowShape: c.SmoothingShape,
	}
}

// parseReducer prefers REDUCER; otherwise any non-empty PLOT_VAR selects the
// swing reducer.
func parseReducer() (domain.Reducer, error) {
	if v := os.Getenv("REDUCER"); v != "" {
		r, err := domain.ParseReducer(v)
		if err != nil {
			return 0, fmt.Errorf("REDUCER: %w", err)
		}
		return r, nil
	}
	if os.Getenv("PLOT_VAR") != "" {
		return domain.ReducerSwing, nil
	}
	return domain.ReducerMean, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
