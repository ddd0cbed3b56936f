package api

import (
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-stac-bridge/catalog"
)

// catalogLogger adapts a zap logger to the catalog client's logging
// interface.
type catalogLogger struct {
	sugar *zap.SugaredLogger
}

// NewCatalogLogger wraps a zap logger for use with catalog.WithLogger.
func NewCatalogLogger(log *zap.Logger) catalog.Logger {
	return &catalogLogger{sugar: log.Sugar()}
}

func (l *catalogLogger) Debugf(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *catalogLogger) Errorf(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}
