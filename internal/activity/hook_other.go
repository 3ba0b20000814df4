//go:build !windows

package activity

import "github.com/ringotypowriter/ringotrack/internal/win32"

type unsupportedHook struct{}

func NewSystemHook() Hook { return unsupportedHook{} }

func (unsupportedHook) Install(func(Event)) error { return win32.ErrNotSupported }
func (unsupportedHook) Uninstall() error          { return nil }
