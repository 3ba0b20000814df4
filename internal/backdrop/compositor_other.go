//go:build !windows

package backdrop

import "github.com/ringotypowriter/ringotrack/internal/win32"

type OSCompositor struct{}

func (OSCompositor) Supported() bool                       { return false }
func (OSCompositor) FindWindow(string) uintptr             { return 0 }
func (OSCompositor) IsWindow(uintptr) bool                 { return false }
func (OSCompositor) SetAccent(uintptr, AccentPolicy) error { return win32.ErrNotSupported }
