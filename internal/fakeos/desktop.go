// Package fakeos is an in-memory desktop used by tests of the window and
// input components.
package fakeos

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ringotypowriter/ringotrack/internal/backdrop"
	"github.com/ringotypowriter/ringotrack/internal/win32"
)

var ErrDenied = errors.New("access denied")

type Window struct {
	Rect    win32.Rect
	Style   uintptr
	ExStyle uintptr
	Topmost bool
	Corner  uint32
	Class   string
	Title   string
	PID     uint32
	DPI     uint32
	Accent  backdrop.AccentPolicy
	// Parent makes the window a child; Foreign marks a child owned by
	// another process.
	Parent  uintptr
	Foreign bool
	Proc    uintptr
}

// ClassProc is the window procedure every window starts with unless one is
// given.
const ClassProc uintptr = 0x7000

type Process struct {
	Path   string
	Denied bool
}

type Message struct {
	HWnd   uintptr
	Msg    uint32
	WParam uintptr
	LParam uintptr
}

// Desktop fakes the window manager. The client area of every window starts
// at its window rect origin.
type Desktop struct {
	mu        sync.Mutex
	windows   map[uintptr]*Window
	processes map[uint32]Process
	active    uintptr
	fg        uintptr

	systemArea  *win32.Rect
	monitorArea *win32.Rect

	composition  bool
	rejectAccent map[backdrop.AccentState]bool
	failSetPos   error

	calls    []string
	sent     []Message
	released int
	open     map[uintptr]uint32
	nextProc uintptr
}

func NewDesktop() *Desktop {
	return &Desktop{
		windows:      map[uintptr]*Window{},
		processes:    map[uint32]Process{},
		composition:  true,
		rejectAccent: map[backdrop.AccentState]bool{},
		open:         map[uintptr]uint32{},
		nextProc:     0x9000,
	}
}

func (d *Desktop) AddWindow(hwnd uintptr, w Window) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := w
	if cp.Proc == 0 {
		cp.Proc = ClassProc
	}
	d.windows[hwnd] = &cp
}

func (d *Desktop) DestroyWindow(hwnd uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.windows, hwnd)
	if d.active == hwnd {
		d.active = 0
	}
	if d.fg == hwnd {
		d.fg = 0
	}
}

// Window returns a copy of the window state.
func (d *Desktop) Window(hwnd uintptr) (Window, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[hwnd]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

func (d *Desktop) AddProcess(pid uint32, p Process) {
	d.mu.Lock()
	d.processes[pid] = p
	d.mu.Unlock()
}

func (d *Desktop) SetActive(hwnd uintptr) {
	d.mu.Lock()
	d.active = hwnd
	d.mu.Unlock()
}

func (d *Desktop) SetForeground(hwnd uintptr) {
	d.mu.Lock()
	d.fg = hwnd
	d.mu.Unlock()
}

// SetWorkAreas configures the system and monitor work areas; nil makes the
// corresponding query fail.
func (d *Desktop) SetWorkAreas(system, monitor *win32.Rect) {
	d.mu.Lock()
	d.systemArea, d.monitorArea = system, monitor
	d.mu.Unlock()
}

func (d *Desktop) SetComposition(supported bool) {
	d.mu.Lock()
	d.composition = supported
	d.mu.Unlock()
}

func (d *Desktop) RejectAccent(state backdrop.AccentState) {
	d.mu.Lock()
	d.rejectAccent[state] = true
	d.mu.Unlock()
}

// FailSetWindowPos makes every SetWindowPos call return err.
func (d *Desktop) FailSetWindowPos(err error) {
	d.mu.Lock()
	d.failSetPos = err
	d.mu.Unlock()
}

func (d *Desktop) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *Desktop) Sent() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Message(nil), d.sent...)
}

func (d *Desktop) OpenHandles() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.open)
}

func (d *Desktop) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *Desktop) ForegroundWindow() uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fg
}

func (d *Desktop) ActiveWindow() uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Desktop) IsWindow(hwnd uintptr) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.windows[hwnd]
	return ok
}
