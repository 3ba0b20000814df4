//go:build !windows

package services

import "github.com/ringotypowriter/ringotrack/internal/win32"

func IsAutostartEnabled() bool { return false }

func SetAutostart(bool) error { return win32.ErrNotSupported }
