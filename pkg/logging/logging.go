// Package logging builds the process-wide ectologger backed by zap
package logging

import (
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap-backed ectologger. Pretty selects the human-readable
// development encoder; otherwise output is production JSON.
func New(level string, pretty bool) (ectologger.Logger, error) {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return zapadapter.NewZapEctoLogger(zapLogger, nil), nil
}
