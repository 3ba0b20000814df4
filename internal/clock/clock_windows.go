//go:build windows

package clock

import "golang.org/x/sys/windows"

// NowMillis reads the system time as FILETIME, matching the timestamps the
// OS hands out in input and window events.
func NowMillis() uint64 {
	var ft windows.Filetime
	windows.GetSystemTimeAsFileTime(&ft)
	return FiletimeToUnixMillis(uint64(ft.HighDateTime)<<32 | uint64(ft.LowDateTime))
}
