//go:build windows

package events

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// processExitSource subscribes to Win32_ProcessStopTrace so cached process
// details can be evicted as soon as a process goes away.
type processExitSource struct {
	pollTimeout time.Duration
}

func (processExitSource) Name() string { return "wmi-process-stop" }

func (s processExitSource) Run(emit func(SystemEvent), stop <-chan struct{}) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// S_FALSE from an already initialised apartment surfaces as an error too.
	_ = ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)
	defer ole.CoUninitialize()

	locatorObj, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return fmt.Errorf("create locator: %w", err)
	}
	defer locatorObj.Release()

	locator, err := locatorObj.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("query locator: %w", err)
	}
	defer locator.Release()

	svcRaw, err := oleutil.CallMethod(locator, "ConnectServer", nil, `root\cimv2`)
	if err != nil {
		return fmt.Errorf("connect wmi: %w", err)
	}
	svc := svcRaw.ToIDispatch()
	defer svc.Release()

	srcRaw, err := oleutil.CallMethod(svc, "ExecNotificationQuery", "SELECT ProcessID, ProcessName FROM Win32_ProcessStopTrace")
	if err != nil {
		return fmt.Errorf("subscribe process stop trace: %w", err)
	}
	src := srcRaw.ToIDispatch()
	defer src.Release()

	timeout := s.pollTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	for {
		select {
		case <-stop:
			return nil
		default:
		}
		evRaw, err := oleutil.CallMethod(src, "NextEvent", int(timeout/time.Millisecond))
		if err != nil {
			continue
		}
		ev := evRaw.ToIDispatch()
		if ev == nil {
			continue
		}
		pidV, _ := oleutil.GetProperty(ev, "ProcessID")
		nameV, _ := oleutil.GetProperty(ev, "ProcessName")
		var pid int
		if pidV != nil {
			pid = int(pidV.Val)
		}
		name := ""
		if nameV != nil {
			name = nameV.ToString()
		}
		ev.Release()
		if pid > 0 {
			emit(SystemEvent{
				Type:      EventProcessExited,
				Timestamp: time.Now().UTC().UnixMilli(),
				PID:       pid,
				Metadata:  map[string]any{"name": name},
			})
		}
	}
}
