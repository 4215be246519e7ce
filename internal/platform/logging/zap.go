package logging

import (
	"go.uber.org/zap"
)

// Format selects zap's encoder: human-readable text or structured JSON.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a Logger writing to stderr at the given verbosity: 0 -> warn,
// 1 -> info, 2+ -> debug.
func New(format Format, verbosity int) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if format == FormatText {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	switch {
	case verbosity >= 2:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case verbosity == 1:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	core, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: core.Sugar()}, nil
}

func (l *zapLogger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *zapLogger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *zapLogger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *zapLogger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }
func (l *zapLogger) Sync() error                 { return l.sugar.Sync() }
