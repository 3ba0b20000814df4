//go:build !windows

package hittest

import "github.com/ringotypowriter/ringotrack/internal/win32"

type OSWindow struct{}

func (OSWindow) Style(uintptr) uintptr { return 0 }

func (OSWindow) ScreenToClient(uintptr, win32.Point) (win32.Point, bool) {
	return win32.Point{}, false
}

func (OSWindow) ClientToScreen(uintptr, win32.Point) (win32.Point, bool) {
	return win32.Point{}, false
}

func (OSWindow) ClientRect(uintptr) (win32.Rect, bool)                 { return win32.Rect{}, false }
func (OSWindow) DPI(uintptr) uint32                                    { return 0 }
func (OSWindow) ReleaseCapture()                                       {}
func (OSWindow) SendMessage(uintptr, uint32, uintptr, uintptr) uintptr { return 0 }

func (OSWindow) IsWindow(uintptr) bool      { return false }
func (OSWindow) WindowProc(uintptr) uintptr { return 0 }

func (OSWindow) SetWindowProc(uintptr, uintptr) (uintptr, error) {
	return 0, win32.ErrNotSupported
}

func (OSWindow) CallWindowProc(uintptr, uintptr, uint32, uintptr, uintptr) uintptr { return 0 }
func (OSWindow) ContentWindow(uintptr) uintptr                                     { return 0 }
