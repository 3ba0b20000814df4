//go:build !windows

package foreground

import "github.com/ringotypowriter/ringotrack/internal/win32"

// OSSystem has no desktop to read outside Windows; every capture reports
// ErrorNoForegroundWindow.
type OSSystem struct{}

func (OSSystem) ForegroundWindow() uintptr           { return 0 }
func (OSSystem) WindowProcessID(uintptr) uint32      { return 0 }
func (OSSystem) CloseProcess(uintptr)                {}
func (OSSystem) OpenProcess(uint32) (uintptr, error) { return 0, win32.ErrNotSupported }

func (OSSystem) ImagePath(uintptr, []uint16) (int, error) { return 0, win32.ErrNotSupported }

func (OSSystem) WindowText(uintptr, []uint16) (int, error) { return 0, win32.ErrNotSupported }
