//go:build windows

package hittest

import "github.com/ringotypowriter/ringotrack/internal/win32"

type OSWindow struct{}

func (OSWindow) Style(hwnd uintptr) uintptr { return win32.GetWindowLongPtr(hwnd, win32.GWL_STYLE) }

func (OSWindow) ScreenToClient(hwnd uintptr, p win32.Point) (win32.Point, bool) {
	return win32.ScreenToClient(hwnd, p)
}

func (OSWindow) ClientToScreen(hwnd uintptr, p win32.Point) (win32.Point, bool) {
	return win32.ClientToScreen(hwnd, p)
}

func (OSWindow) ClientRect(hwnd uintptr) (win32.Rect, bool) { return win32.GetClientRect(hwnd) }

func (OSWindow) DPI(hwnd uintptr) uint32 { return win32.WindowDPI(hwnd) }

func (OSWindow) ReleaseCapture() { win32.ReleaseCapture() }

func (OSWindow) SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	return win32.SendMessage(hwnd, msg, wParam, lParam)
}

func (OSWindow) IsWindow(hwnd uintptr) bool { return win32.IsWindow(hwnd) }

func (OSWindow) WindowProc(hwnd uintptr) uintptr {
	return win32.GetWindowLongPtr(hwnd, win32.GWLP_WNDPROC)
}

func (OSWindow) SetWindowProc(hwnd, proc uintptr) (uintptr, error) {
	return win32.SetWindowLongPtr(hwnd, win32.GWLP_WNDPROC, proc)
}

func (OSWindow) CallWindowProc(proc, hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	return win32.CallWindowProc(proc, hwnd, msg, wParam, lParam)
}

func (OSWindow) ContentWindow(owner uintptr) uintptr { return win32.OwnChildWindow(owner) }
