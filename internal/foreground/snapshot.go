// Package foreground captures which application currently owns the
// foreground window.
package foreground

import (
	"errors"
	"time"

	"github.com/ringotypowriter/ringotrack/internal/clock"
	"github.com/ringotypowriter/ringotrack/internal/win32"
)

// ErrorCode identifies the first failure met while capturing a Snapshot. It
// is diagnostic detail; Snapshot.IsError is the control-flow signal.
type ErrorCode int32

const (
	ErrorNone ErrorCode = iota
	ErrorNoForegroundWindow
	ErrorOpenProcessFailed
	ErrorQueryPathFailed
	ErrorGetWindowTitleFailed
)

var (
	ErrNoForegroundWindow   = errors.New("no foreground window")
	ErrOpenProcessFailed    = errors.New("open process failed")
	ErrQueryPathFailed      = errors.New("query image path failed")
	ErrGetWindowTitleFailed = errors.New("get window title failed")
)

func (c ErrorCode) Err() error {
	switch c {
	case ErrorNoForegroundWindow:
		return ErrNoForegroundWindow
	case ErrorOpenProcessFailed:
		return ErrOpenProcessFailed
	case ErrorQueryPathFailed:
		return ErrQueryPathFailed
	case ErrorGetWindowTitleFailed:
		return ErrGetWindowTitleFailed
	}
	return nil
}

func (c ErrorCode) String() string {
	switch c {
	case ErrorNone:
		return "none"
	case ErrorNoForegroundWindow:
		return "no-foreground-window"
	case ErrorOpenProcessFailed:
		return "open-process-failed"
	case ErrorQueryPathFailed:
		return "query-path-failed"
	case ErrorGetWindowTitleFailed:
		return "get-window-title-failed"
	}
	return "unknown"
}

// Snapshot has the exact memory layout handed across the C boundary, so field
// order and widths must not change.
type Snapshot struct {
	TimestampMillis uint64
	ProcessID       uint32
	IsError         int32
	ErrorCode       ErrorCode
	ExePath         [win32.MaxPath]uint16
	WindowTitle     [win32.MaxPath]uint16
}

func (s *Snapshot) Path() string  { return win32.UTF16ToString(s.ExePath[:]) }
func (s *Snapshot) Title() string { return win32.UTF16ToString(s.WindowTitle[:]) }

func (s *Snapshot) Time() time.Time { return clock.Time(s.TimestampMillis) }

// Failed reports whether any step of the capture failed.
func (s *Snapshot) Failed() bool { return s.IsError != 0 }

// fail records code unless an earlier step already failed.
func (s *Snapshot) fail(code ErrorCode) {
	if s.IsError != 0 {
		return
	}
	s.IsError = 1
	s.ErrorCode = code
}
