//go:build windows

package foreground

import (
	"fmt"
	"path/filepath"

	"github.com/StackExchange/wmi"
)

type win32Process struct {
	ProcessID      uint32
	ExecutablePath *string
	CommandLine    *string
}

// WMISource queries Win32_Process, which also sees elevated processes that
// refuse a limited-information handle.
func WMISource(pid uint32) (ProcessDetails, error) {
	var dst []win32Process
	q := fmt.Sprintf("SELECT ProcessID, ExecutablePath, CommandLine FROM Win32_Process WHERE ProcessID=%d", pid)
	if err := wmi.Query(q, &dst); err != nil {
		return ProcessDetails{}, err
	}
	if len(dst) == 0 {
		return ProcessDetails{}, fmt.Errorf("pid %d: not found", pid)
	}
	var d ProcessDetails
	if p := dst[0]; p.ExecutablePath != nil {
		d.ExecutablePath = *p.ExecutablePath
	}
	if p := dst[0]; p.CommandLine != nil {
		d.CommandLine = *p.CommandLine
	}
	if d.ExecutablePath != "" {
		d.WorkingDir = filepath.Dir(d.ExecutablePath)
	}
	return d, nil
}

func DefaultSource() Source { return FirstOf(WMISource, GopsutilSource) }
