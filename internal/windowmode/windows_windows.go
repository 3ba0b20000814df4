//go:build windows

package windowmode

import "github.com/ringotypowriter/ringotrack/internal/win32"

// OSWindows drives real top-level windows.
type OSWindows struct{}

func (OSWindows) ActiveWindow() uintptr     { return win32.ActiveWindow() }
func (OSWindows) ForegroundWindow() uintptr { return win32.ForegroundWindow() }

func (OSWindows) Placement(hwnd uintptr) (win32.WindowPlacement, error) {
	return win32.GetWindowPlacement(hwnd)
}

func (OSWindows) WindowLong(hwnd uintptr, index int32) uintptr {
	return win32.GetWindowLongPtr(hwnd, index)
}

func (OSWindows) SetWindowLong(hwnd uintptr, index int32, value uintptr) error {
	_, err := win32.SetWindowLongPtr(hwnd, index, value)
	return err
}

func (OSWindows) SetWindowPos(hwnd, insertAfter uintptr, r win32.Rect, flags uint32) error {
	return win32.SetWindowPos(hwnd, insertAfter, r.Left, r.Top, r.Width(), r.Height(), flags)
}

func (OSWindows) SystemWorkArea() (win32.Rect, bool) { return win32.SystemWorkArea() }

func (OSWindows) MonitorWorkArea(hwnd uintptr) (win32.Rect, bool) {
	return win32.MonitorWorkArea(hwnd)
}

func (OSWindows) WindowRect(hwnd uintptr) (win32.Rect, bool) { return win32.GetWindowRect(hwnd) }

func (OSWindows) SetCornerPreference(hwnd uintptr, pref uint32) error {
	return win32.SetCornerPreference(hwnd, pref)
}

func (OSWindows) IsWindow(hwnd uintptr) bool { return win32.IsWindow(hwnd) }
