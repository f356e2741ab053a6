package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// NewLogger builds a development-friendly logr.Logger backed by zap, for
// callers who want to see what the walker skips.
func NewLogger(opts ...zap.Option) logr.Logger {
	zl, err := zap.NewDevelopment(opts...)
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}
