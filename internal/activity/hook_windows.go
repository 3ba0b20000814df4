//go:build windows

package activity

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/windows"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

// The OS offers no context pointer for low-level hooks, so the active sink is
// process-wide. Only one LowLevelHook may be installed at a time.
var (
	hookSink     atomic.Pointer[func(Event)]
	hookCallback uintptr
	callbackOnce sync.Once
)

func mouseProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == win32.HC_ACTION {
		if sink := hookSink.Load(); sink != nil {
			switch uint32(wParam) {
			case win32.WM_LBUTTONDOWN:
				(*sink)(PrimaryDown)
			case win32.WM_LBUTTONUP:
				(*sink)(PrimaryUp)
			}
		}
	}
	return win32.CallNextHookEx(nCode, wParam, lParam)
}

// LowLevelHook runs WH_MOUSE_LL on a dedicated OS thread with its own message
// loop. Low-level hooks are called on the installing thread, so that thread
// must keep pumping messages while the hook is live.
type LowLevelHook struct {
	mu       sync.Mutex
	threadID uint32
	done     chan struct{}
}

func NewSystemHook() Hook { return &LowLevelHook{} }

type hookStarted struct {
	threadID uint32
	err      error
}

func (h *LowLevelHook) Install(sink func(Event)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done != nil {
		return nil
	}
	callbackOnce.Do(func() { hookCallback = windows.NewCallback(mouseProc) })

	started := make(chan hookStarted, 1)
	done := make(chan struct{})
	go h.run(sink, started, done)

	res := <-started
	if res.err != nil {
		<-done
		return res.err
	}
	h.threadID = res.threadID
	h.done = done
	return nil
}

func (h *LowLevelHook) run(sink func(Event), started chan<- hookStarted, done chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	win32.EnsureMessageQueue()
	hookSink.Store(&sink)
	hhk, err := win32.SetWindowsHookEx(win32.WH_MOUSE_LL, hookCallback, win32.ModuleHandle(), 0)
	if err != nil {
		hookSink.Store(nil)
		started <- hookStarted{err: err}
		return
	}
	started <- hookStarted{threadID: windows.GetCurrentThreadId()}

	win32.PumpMessages()

	_ = win32.UnhookWindowsHookEx(hhk)
	hookSink.Store(nil)
}

func (h *LowLevelHook) Uninstall() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done == nil {
		return nil
	}
	// The hook thread keeps running when the post fails, so its state stays
	// for a retry.
	if err := win32.PostThreadMessage(h.threadID, win32.WM_QUIT, 0, 0); err != nil {
		return err
	}
	<-h.done
	h.done = nil
	h.threadID = 0
	return nil
}
