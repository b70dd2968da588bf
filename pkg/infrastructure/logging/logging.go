// Package logging builds the structured logger used by the CLI and the
// application services.
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap-backed logr.Logger. Verbose mode uses the development
// encoder and enables V(1) messages; otherwise only warnings and above from
// a production JSON encoder reach stderr.
func New(verbose bool) (logr.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-1))
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Sampling = nil
	}
	cfg.OutputPaths = []string{"stderr"}

	zapLog, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("failed to build logger: %w", err)
	}

	return zapr.NewLogger(zapLog), nil
}

// Sync flushes buffered entries of a logger built by New. Loggers with other
// sinks are left alone.
func Sync(logger logr.Logger) error {
	underlier, ok := logger.GetSink().(zapr.Underlier)
	if !ok {
		return nil
	}
	return underlier.GetUnderlying().Sync()
}
