//go:build windows

package foreground

import (
	"golang.org/x/sys/windows"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

// OSSystem reads the live desktop.
type OSSystem struct{}

func (OSSystem) ForegroundWindow() uintptr { return win32.ForegroundWindow() }

func (OSSystem) WindowProcessID(hwnd uintptr) uint32 { return win32.WindowProcessID(hwnd) }

func (OSSystem) OpenProcess(pid uint32) (uintptr, error) {
	h, err := win32.OpenProcessQuery(pid)
	return uintptr(h), err
}

func (OSSystem) ImagePath(process uintptr, buf []uint16) (int, error) {
	return win32.ProcessImagePath(windows.Handle(process), buf)
}

func (OSSystem) CloseProcess(process uintptr) {
	_ = windows.CloseHandle(windows.Handle(process))
}

func (OSSystem) WindowText(hwnd uintptr, buf []uint16) (int, error) {
	return win32.WindowText(hwnd, buf)
}
