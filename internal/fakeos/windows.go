package fakeos

import (
	"fmt"

	"github.com/ringotypowriter/ringotrack/internal/backdrop"
	"github.com/ringotypowriter/ringotrack/internal/win32"
)

func (d *Desktop) Placement(hwnd uintptr) (win32.WindowPlacement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[hwnd]
	if !ok {
		return win32.WindowPlacement{}, fmt.Errorf("placement %#x: invalid window", hwnd)
	}
	return win32.WindowPlacement{ShowCmd: 1, RcNormalPosition: w.Rect}, nil
}

func (d *Desktop) WindowLong(hwnd uintptr, index int32) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[hwnd]
	if !ok {
		return 0
	}
	switch index {
	case win32.GWL_STYLE:
		return w.Style
	case win32.GWL_EXSTYLE:
		return w.ExStyle
	}
	return 0
}

func (d *Desktop) SetWindowLong(hwnd uintptr, index int32, value uintptr) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("SetWindowLong(%d, %#x)", index, value)
	w, ok := d.windows[hwnd]
	if !ok {
		return fmt.Errorf("set window long %#x: invalid window", hwnd)
	}
	switch index {
	case win32.GWL_STYLE:
		w.Style = value
	case win32.GWL_EXSTYLE:
		w.ExStyle = value
	}
	return nil
}

func (d *Desktop) SetWindowPos(hwnd, insertAfter uintptr, r win32.Rect, flags uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("SetWindowPos(%v, %#x)", r, flags)
	if d.failSetPos != nil {
		return d.failSetPos
	}
	w, ok := d.windows[hwnd]
	if !ok {
		return fmt.Errorf("set window pos %#x: invalid window", hwnd)
	}
	if flags&win32.SWP_NOMOVE == 0 {
		width, height := w.Rect.Width(), w.Rect.Height()
		w.Rect.Left, w.Rect.Top = r.Left, r.Top
		w.Rect.Right, w.Rect.Bottom = r.Left+width, r.Top+height
	}
	if flags&win32.SWP_NOSIZE == 0 {
		w.Rect.Right = w.Rect.Left + r.Width()
		w.Rect.Bottom = w.Rect.Top + r.Height()
	}
	if flags&win32.SWP_NOZORDER == 0 {
		switch insertAfter {
		case win32.HWND_TOPMOST:
			w.Topmost = true
		case win32.HWND_NOTOPMOST:
			w.Topmost = false
		}
	}
	return nil
}

func (d *Desktop) SystemWorkArea() (win32.Rect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.systemArea == nil {
		return win32.Rect{}, false
	}
	return *d.systemArea, true
}

func (d *Desktop) MonitorWorkArea(uintptr) (win32.Rect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.monitorArea == nil {
		return win32.Rect{}, false
	}
	return *d.monitorArea, true
}

func (d *Desktop) WindowRect(hwnd uintptr) (win32.Rect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[hwnd]
	if !ok || w.Rect.Empty() {
		return win32.Rect{}, false
	}
	return w.Rect, true
}

func (d *Desktop) SetCornerPreference(hwnd uintptr, pref uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[hwnd]
	if !ok {
		return fmt.Errorf("corner preference %#x: invalid window", hwnd)
	}
	w.Corner = pref
	return nil
}

func (d *Desktop) Supported() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.composition
}

func (d *Desktop) FindWindow(class string) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	for hwnd, w := range d.windows {
		if w.Class == class {
			return hwnd
		}
	}
	return 0
}

func (d *Desktop) SetAccent(hwnd uintptr, p backdrop.AccentPolicy) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("SetAccent(%s, %#08x)", p.State, p.GradientColor)
	if d.rejectAccent[p.State] {
		return fmt.Errorf("accent %s rejected", p.State)
	}
	w, ok := d.windows[hwnd]
	if !ok {
		return fmt.Errorf("set accent %#x: invalid window", hwnd)
	}
	w.Accent = p
	return nil
}

func (d *Desktop) Style(hwnd uintptr) uintptr { return d.WindowLong(hwnd, win32.GWL_STYLE) }

func (d *Desktop) ScreenToClient(hwnd uintptr, p win32.Point) (win32.Point, bool) {
	r, ok := d.WindowRect(hwnd)
	if !ok {
		return win32.Point{}, false
	}
	return win32.Point{X: p.X - r.Left, Y: p.Y - r.Top}, true
}

func (d *Desktop) ClientToScreen(hwnd uintptr, p win32.Point) (win32.Point, bool) {
	r, ok := d.WindowRect(hwnd)
	if !ok {
		return win32.Point{}, false
	}
	return win32.Point{X: p.X + r.Left, Y: p.Y + r.Top}, true
}

func (d *Desktop) ClientRect(hwnd uintptr) (win32.Rect, bool) {
	r, ok := d.WindowRect(hwnd)
	if !ok {
		return win32.Rect{}, false
	}
	return win32.Rect{Right: r.Width(), Bottom: r.Height()}, true
}

func (d *Desktop) DPI(hwnd uintptr) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.windows[hwnd]; ok {
		return w.DPI
	}
	return 0
}

func (d *Desktop) ReleaseCapture() {
	d.mu.Lock()
	d.released++
	d.mu.Unlock()
}

func (d *Desktop) SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	d.mu.Lock()
	d.sent = append(d.sent, Message{HWnd: hwnd, Msg: msg, WParam: wParam, LParam: lParam})
	d.mu.Unlock()
	return 0
}

func (d *Desktop) WindowProc(hwnd uintptr) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.windows[hwnd]; ok {
		return w.Proc
	}
	return 0
}

func (d *Desktop) SetWindowProc(hwnd, proc uintptr) (uintptr, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[hwnd]
	if !ok {
		return 0, fmt.Errorf("set window proc %#x: invalid window", hwnd)
	}
	old := w.Proc
	w.Proc = proc
	return old, nil
}

// CallWindowProc stands in for the class procedure, which answers client for
// every hit-test.
func (d *Desktop) CallWindowProc(_, _ uintptr, msg uint32, _, _ uintptr) uintptr {
	if msg == win32.WM_NCHITTEST {
		return win32.HTCLIENT
	}
	return 0
}

// ContentWindow returns the lowest-numbered in-process child of owner.
func (d *Desktop) ContentWindow(owner uintptr) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	var found uintptr
	for hwnd, w := range d.windows {
		if w.Parent != owner || owner == 0 || w.Foreign {
			continue
		}
		if found == 0 || hwnd < found {
			found = hwnd
		}
	}
	return found
}
