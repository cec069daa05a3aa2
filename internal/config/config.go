package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Analyzer AnalyzerConfig
	LogLevel slog.Level
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type AnalyzerConfig struct {
	// MaxRetries bounds how many times an unresolved reference may defer
	// the current file before failing.
	MaxRetries int

	// Extensions lists the file extensions picked up when a directory is
	// analyzed.
	Extensions []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "127.0.0.1"),
			Port:         getEnvInt("SERVER_PORT", 8089),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECS", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECS", 30)) * time.Second,
		},
		Analyzer: AnalyzerConfig{
			MaxRetries: getEnvInt("ANALYZER_MAX_RETRIES", 1),
			Extensions: []string{".rb"},
		},
	}

	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL: %s", os.Getenv("LOG_LEVEL"))
	}

	if cfg.Analyzer.MaxRetries < 0 {
		return nil, fmt.Errorf("ANALYZER_MAX_RETRIES must be >= 0")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
