package foreground

import "github.com/ringotypowriter/ringotrack/internal/clock"

// System is the slice of the OS the probe reads from. Handles are opaque.
type System interface {
	ForegroundWindow() uintptr
	WindowProcessID(hwnd uintptr) uint32
	OpenProcess(pid uint32) (uintptr, error)
	ImagePath(process uintptr, buf []uint16) (int, error)
	CloseProcess(process uintptr)
	WindowText(hwnd uintptr, buf []uint16) (int, error)
}

// Probe owns a single reusable Snapshot slot. The pointer returned by Capture
// stays valid until the next Capture; a Probe must not be shared between
// goroutines without external locking.
type Probe struct {
	sys  System
	now  clock.Func
	slot Snapshot
}

func NewProbe(sys System, now clock.Func) *Probe {
	if now == nil {
		now = clock.NowMillis
	}
	return &Probe{sys: sys, now: now}
}

func (p *Probe) Capture() *Snapshot {
	s := &p.slot
	*s = Snapshot{TimestampMillis: p.now()}

	hwnd := p.sys.ForegroundWindow()
	if hwnd == 0 {
		s.fail(ErrorNoForegroundWindow)
		return s
	}
	s.ProcessID = p.sys.WindowProcessID(hwnd)

	if h, err := p.sys.OpenProcess(s.ProcessID); err != nil || h == 0 {
		s.fail(ErrorOpenProcessFailed)
	} else {
		if n, err := p.sys.ImagePath(h, s.ExePath[:]); err != nil || n == 0 {
			s.ExePath = [len(s.ExePath)]uint16{}
			s.fail(ErrorQueryPathFailed)
		}
		p.sys.CloseProcess(h)
	}

	if n, err := p.sys.WindowText(hwnd, s.WindowTitle[:]); err != nil || n == 0 {
		s.WindowTitle = [len(s.WindowTitle)]uint16{}
		s.fail(ErrorGetWindowTitleFailed)
	}
	return s
}
