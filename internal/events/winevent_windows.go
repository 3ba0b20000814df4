//go:build windows

package events

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/windows"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

const (
	eventSystemForeground  = 0x0003
	eventObjectNameChange  = 0x800C
	objIDWindow            = 0
	winEventOutOfContext   = 0x0000
	winEventSkipOwnProcess = 0x0002
)

var (
	winEventSink     atomic.Pointer[func(SystemEvent)]
	winEventCallback uintptr
	winEventOnce     sync.Once
)

func winEventProc(hook uintptr, event uint32, hwnd uintptr, idObject, idChild int32, thread, at uint32) uintptr {
	if idObject != objIDWindow || idChild != 0 || hwnd == 0 {
		return 0
	}
	emit := winEventSink.Load()
	if emit == nil {
		return 0
	}
	ev := SystemEvent{
		Timestamp: time.Now().UTC().UnixMilli(),
		PID:       int(win32.WindowProcessID(hwnd)),
		HWND:      hwnd,
	}
	switch event {
	case eventSystemForeground:
		ev.Type = EventForegroundChanged
	case eventObjectNameChange:
		if hwnd != win32.ForegroundWindow() {
			return 0
		}
		ev.Type = EventTitleChanged
	default:
		return 0
	}
	(*emit)(ev)
	return 0
}

// foregroundSource reports foreground switches and title changes of the
// foreground window. WinEvent callbacks arrive on the hooking thread, which
// therefore keeps a message loop running until stop closes.
type foregroundSource struct{}

func (foregroundSource) Name() string { return "win-event" }

func (foregroundSource) Run(emit func(SystemEvent), stop <-chan struct{}) error {
	winEventOnce.Do(func() { winEventCallback = windows.NewCallback(winEventProc) })

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win32.EnsureMessageQueue()
	winEventSink.Store(&emit)
	defer winEventSink.Store(nil)

	flags := uint32(winEventOutOfContext | winEventSkipOwnProcess)
	fg, err := win32.SetWinEventHook(eventSystemForeground, eventSystemForeground, winEventCallback, flags)
	if err != nil {
		return err
	}
	defer win32.UnhookWinEvent(fg)
	name, err := win32.SetWinEventHook(eventObjectNameChange, eventObjectNameChange, winEventCallback, flags)
	if err == nil {
		defer win32.UnhookWinEvent(name)
	}

	tid := windows.GetCurrentThreadId()
	go func() {
		<-stop
		_ = win32.PostThreadMessage(tid, win32.WM_QUIT, 0, 0)
	}()
	win32.PumpMessages()
	return nil
}
