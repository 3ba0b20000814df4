//go:build windows

package hittest

import (
	"sync"

	"golang.org/x/sys/windows"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

var (
	wndProcCallback uintptr
	wndProcOnce     sync.Once
)

func wndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	if r, err := route(hwnd, uint32(msg), wParam, lParam); err == nil {
		return r
	}
	return win32.DefWindowProc(hwnd, uint32(msg), wParam, lParam)
}

func procAddress() uintptr {
	wndProcOnce.Do(func() { wndProcCallback = windows.NewCallback(wndProc) })
	return wndProcCallback
}
