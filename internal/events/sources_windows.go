//go:build windows

package events

import (
	"time"

	"go.uber.org/zap"
)

func SystemSources(log *zap.Logger) []Source {
	return []Source{
		foregroundSource{},
		processExitSource{pollTimeout: time.Second},
	}
}
