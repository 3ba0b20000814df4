package hittest

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

type subclass struct {
	hwnd  uintptr
	win   Window
	prev  atomic.Uintptr
	chain Chain
}

// subclasses maps hwnd to *subclass. Window procedures look it up on every
// message, so it is a sync.Map.
var subclasses sync.Map

func lookup(hwnd uintptr) (*subclass, bool) {
	v, ok := subclasses.Load(hwnd)
	if !ok {
		return nil, false
	}
	return v.(*subclass), true
}

func Subclassed(hwnd uintptr) bool {
	_, ok := lookup(hwnd)
	return ok
}

// install routes hwnd's messages through links before its original window
// procedure. The original procedure is recorded before the swap.
func install(win Window, hwnd uintptr, links []Link) error {
	if !win.IsWindow(hwnd) {
		return fmt.Errorf("subclass %#x: invalid window", hwnd)
	}
	if Subclassed(hwnd) {
		return nil
	}
	prev := win.WindowProc(hwnd)
	if prev == 0 {
		return fmt.Errorf("subclass %#x: no window procedure", hwnd)
	}

	sc := &subclass{hwnd: hwnd, win: win}
	sc.prev.Store(prev)
	sc.chain = Chain{
		Links: links,
		Next: func(m Message) uintptr {
			return win.CallWindowProc(sc.prev.Load(), m.HWnd, m.Msg, m.WParam, m.LParam)
		},
	}
	subclasses.Store(hwnd, sc)

	old, err := win.SetWindowProc(hwnd, procAddress())
	if err != nil {
		subclasses.Delete(hwnd)
		return fmt.Errorf("subclass %#x: %w", hwnd, err)
	}
	if old != 0 && old != prev {
		sc.prev.Store(old)
	}
	return nil
}

// uninstall puts the original window procedure back.
func uninstall(hwnd uintptr) error {
	sc, ok := lookup(hwnd)
	if !ok {
		return nil
	}
	defer subclasses.Delete(hwnd)
	if !sc.win.IsWindow(hwnd) {
		return nil
	}
	if _, err := sc.win.SetWindowProc(hwnd, sc.prev.Load()); err != nil {
		return fmt.Errorf("unsubclass %#x: %w", hwnd, err)
	}
	return nil
}

var errNotRouted = errors.New("window not routed")

// route delivers one message to the chain of a subclassed window.
// WM_NCDESTROY restores the original procedure and drops the entry.
func route(hwnd uintptr, msg uint32, wParam, lParam uintptr) (uintptr, error) {
	sc, ok := lookup(hwnd)
	if !ok {
		return 0, errNotRouted
	}
	prev := sc.prev.Load()
	if msg == win32.WM_NCDESTROY {
		_, _ = sc.win.SetWindowProc(hwnd, prev)
		subclasses.Delete(hwnd)
		return sc.win.CallWindowProc(prev, hwnd, msg, wParam, lParam), nil
	}
	return sc.chain.Dispatch(Message{HWnd: hwnd, Msg: msg, WParam: wParam, LParam: lParam}), nil
}
