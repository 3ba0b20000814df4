//go:build !windows

package events

import "go.uber.org/zap"

// SystemSources is empty off Windows; callers fall back to polling.
func SystemSources(log *zap.Logger) []Source {
	log.Debug("no system event sources on this platform")
	return nil
}
