//go:build !windows

package hittest

// routedProc stands in for the callback address where there is no Win32
// window procedure to install.
const routedProc uintptr = 0xC0DE

func procAddress() uintptr { return routedProc }
