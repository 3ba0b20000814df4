// Package logging builds the process logger.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level string
	File  string
}

// New builds a production JSON logger writing to cfg.File, or stderr when no
// file is set. If the configured sink cannot be opened it falls back to the
// stock production logger.
func New(cfg Config) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(cfg.Level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	if cfg.File != "" {
		_ = os.MkdirAll(filepath.Dir(cfg.File), 0o755)
		config.OutputPaths = []string{cfg.File}
		config.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func Nop() *zap.Logger { return zap.NewNop() }
