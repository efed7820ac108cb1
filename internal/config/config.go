package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	HTTPTimeoutSecs  int    `envconfig:"HTTP_TIMEOUT_SECONDS" default:"15"`
	LogLevelName     string `envconfig:"LOG_LEVEL" default:"info"`
	MaxUploadBytes   int64  `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	ColumnsFile      string `envconfig:"COLUMNS_CONFIG"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	GeminiModel      string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	InsightMaxRows   int    `envconfig:"INSIGHT_MAX_ROWS" default:"500"`
	InsightCacheSize int    `envconfig:"INSIGHT_CACHE_SIZE" default:"16"`
	InsightRetries   int    `envconfig:"INSIGHT_RETRIES" default:"1"`

	HTTPTimeout time.Duration `ignored:"true"`
	LogLevel    slog.Level    `ignored:"true"`
	Columns     Columns       `ignored:"true"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg = cfg.withDerived()
	cols, err := LoadColumns(cfg.ColumnsFile)
	if err != nil {
		return Config{}, err
	}
	cfg.Columns = cols
	return cfg, nil
}

func (c Config) withDerived() Config {
	c.HTTPTimeout = 15 * time.Second
	if c.HTTPTimeoutSecs > 0 {
		c.HTTPTimeout = time.Duration(c.HTTPTimeoutSecs) * time.Second
	}
	c.LogLevel = parseLevel(c.LogLevelName)
	c.Columns = DefaultColumns()
	return c
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
