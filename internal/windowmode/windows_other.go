//go:build !windows

package windowmode

import "github.com/ringotypowriter/ringotrack/internal/win32"

type OSWindows struct{}

func (OSWindows) ActiveWindow() uintptr     { return 0 }
func (OSWindows) ForegroundWindow() uintptr { return 0 }

func (OSWindows) Placement(uintptr) (win32.WindowPlacement, error) {
	return win32.WindowPlacement{}, win32.ErrNotSupported
}

func (OSWindows) WindowLong(uintptr, int32) uintptr { return 0 }

func (OSWindows) SetWindowLong(uintptr, int32, uintptr) error { return win32.ErrNotSupported }

func (OSWindows) SetWindowPos(uintptr, uintptr, win32.Rect, uint32) error {
	return win32.ErrNotSupported
}

func (OSWindows) SystemWorkArea() (win32.Rect, bool)         { return win32.Rect{}, false }
func (OSWindows) MonitorWorkArea(uintptr) (win32.Rect, bool) { return win32.Rect{}, false }
func (OSWindows) WindowRect(uintptr) (win32.Rect, bool)      { return win32.Rect{}, false }
func (OSWindows) SetCornerPreference(uintptr, uint32) error  { return win32.ErrNotSupported }
func (OSWindows) IsWindow(uintptr) bool                      { return false }
