package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"arcane/internal/config"
)

// New builds the process logger. JSON output uses zap's production config,
// otherwise the console development encoder. verbose forces debug level.
// Logs go to stderr so command output stays clean.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.JSON {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("arc"), nil
}
