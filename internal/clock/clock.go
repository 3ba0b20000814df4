// Package clock converts wall-clock time to the Unix millisecond values
// exchanged with the host layer.
package clock

import "time"

// Func returns the current time in milliseconds since the Unix epoch.
type Func func() uint64

// FILETIME counts 100ns ticks since 1601-01-01.
const filetimeEpochDifference uint64 = 116444736000000000

// FiletimeToUnixMillis converts a FILETIME tick count to Unix milliseconds.
// Values before the Unix epoch collapse to 0.
func FiletimeToUnixMillis(ticks uint64) uint64 {
	if ticks < filetimeEpochDifference {
		return 0
	}
	return (ticks - filetimeEpochDifference) / 10000
}

// Time converts Unix milliseconds back to a time.Time. Zero maps to the zero Time.
func Time(ms uint64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms))
}
