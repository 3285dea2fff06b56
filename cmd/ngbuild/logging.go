package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ngbuild/internal/buildlog"
	"ngbuild/internal/diag"
)

// newBuildLogger wires the build log front end to a zap console logger on
// stderr. The zap logger is the externally supplied sink; the Logger in
// front of it applies the build's own level and trace policy.
func newBuildLogger(level diag.Severity, showTraces bool, colorize bool) (*buildlog.Logger, func(), error) {
	zapLevel := zapcore.InfoLevel
	switch level {
	case diag.SevFine:
		zapLevel = zapcore.DebugLevel
	case diag.SevInfo:
		zapLevel = zapcore.InfoLevel
	case diag.SevWarning:
		zapLevel = zapcore.WarnLevel
	case diag.SevSevere:
		zapLevel = zapcore.ErrorLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.DisableStacktrace = true // build errors carry their own stacks
	cfg.DisableCaller = true
	if colorize {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	log := buildlog.New(buildlog.ZapSink{L: zl},
		buildlog.WithLevel(level),
		buildlog.WithInternalTraces(showTraces),
	)
	flush := func() { _ = zl.Sync() }
	return log, flush, nil
}
