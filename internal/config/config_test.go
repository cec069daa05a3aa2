package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "ANALYZER_MAX_RETRIES", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:8089" {
		t.Errorf("addr = %s", cfg.Server.Addr())
	}
	if cfg.Analyzer.MaxRetries != 1 {
		t.Errorf("max retries = %d", cfg.Analyzer.MaxRetries)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ANALYZER_MAX_RETRIES", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:9000" {
		t.Errorf("addr = %s", cfg.Server.Addr())
	}
	if cfg.Analyzer.MaxRetries != 3 {
		t.Errorf("max retries = %d", cfg.Analyzer.MaxRetries)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		if _, err := Load(); err == nil {
			t.Error("expected error for invalid LOG_LEVEL")
		}
	})
	t.Run("negative retries", func(t *testing.T) {
		t.Setenv("ANALYZER_MAX_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Error("expected error for negative ANALYZER_MAX_RETRIES")
		}
	})
}
