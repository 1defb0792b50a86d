package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"skeyedit/internal/logger"
	"skeyedit/internal/store"
)

func logLevel(cfg *Config) logger.Level {
	level, _ := logger.ParseLevel(cfg.LogLevel)
	return level
}

func stderrLogger(cfg *Config) *logger.Logger {
	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		log := logger.Default()
		log.Warn("unknown log level %q, using info", cfg.LogLevel)
		return log
	}
	return logger.New(os.Stderr, level, "")
}

// openLogFile logs to the configured file; the editor owns the terminal.
func openLogFile(cfg *Config) (*logger.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	return logger.New(f, logLevel(cfg), ""), func() { f.Close() }, nil
}

func openStore(ctx context.Context, cfg *Config) (*store.Repository, *sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
		return nil, nil, fmt.Errorf("database directory: %w", err)
	}
	return store.Open(ctx, cfg.Database, cfg.User)
}
