//go:build windows

package backdrop

import (
	"unsafe"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

type OSCompositor struct{}

func (OSCompositor) Supported() bool { return win32.CompositionSupported() }

func (OSCompositor) FindWindow(class string) uintptr { return win32.FindWindow(class) }

func (OSCompositor) IsWindow(hwnd uintptr) bool { return win32.IsWindow(hwnd) }

func (OSCompositor) SetAccent(hwnd uintptr, p AccentPolicy) error {
	return win32.SetWindowCompositionAttribute(hwnd, unsafe.Pointer(&p), unsafe.Sizeof(p))
}
