//go:build !windows

package foreground

func DefaultSource() Source { return GopsutilSource }
