// Package logging builds the categorized zap loggers used across msgrisk.
// Output goes to a single file (or stderr); each subsystem gets a named
// child logger that can be switched off from the logging.categories map.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"msgrisk/internal/config"
)

// Category names a subsystem.
type Category string

const (
	CategoryBoot    Category = "boot"    // startup, config, shutdown
	CategoryAPI     Category = "api"     // scoring service calls
	CategoryCounter Category = "counter" // daily counter, watcher, rollover
	CategoryUI      Category = "ui"      // controller and terminal view
	CategoryStore   Category = "store"   // KV backends
)

// Categories lists every category in a stable order.
var Categories = []Category{CategoryBoot, CategoryAPI, CategoryCounter, CategoryUI, CategoryStore}

// Logger owns the root zap logger and hands out category children.
type Logger struct {
	root *zap.Logger
	cfg  config.LoggingConfig

	mu       sync.Mutex
	children map[Category]*zap.Logger
}

// New builds a Logger from cfg. An empty File logs to stderr.
func New(cfg config.LoggingConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Format == "console" {
		zcfg.Encoding = "console"
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		zcfg.OutputPaths = []string{cfg.File}
		zcfg.ErrorOutputPaths = []string{cfg.File}
	}

	root, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return Wrap(root, cfg), nil
}

// Wrap adopts an existing zap logger, applying cfg's category filter.
func Wrap(root *zap.Logger, cfg config.LoggingConfig) *Logger {
	if root == nil {
		root = zap.NewNop()
	}
	return &Logger{root: root, cfg: cfg, children: make(map[Category]*zap.Logger)}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return Wrap(zap.NewNop(), config.LoggingConfig{})
}

// For returns the logger for category, or a no-op logger if the category
// is disabled.
func (l *Logger) For(category Category) *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	if z, ok := l.children[category]; ok {
		return z
	}
	z := zap.NewNop()
	if l.cfg.IsCategoryEnabled(string(category)) {
		z = l.root.Named(string(category))
	}
	l.children[category] = z
	return z
}

// Root returns the uncategorized logger.
func (l *Logger) Root() *zap.Logger {
	return l.root
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	return l.root.Sync()
}

// ParseLevel maps a config level string to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}
