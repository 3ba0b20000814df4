// Package hittest lets a borderless window be dragged from its content while
// small control zones stay clickable.
package hittest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

// Window is the window-manager surface the links query.
type Window interface {
	Style(hwnd uintptr) uintptr
	ScreenToClient(hwnd uintptr, p win32.Point) (win32.Point, bool)
	ClientToScreen(hwnd uintptr, p win32.Point) (win32.Point, bool)
	ClientRect(hwnd uintptr) (win32.Rect, bool)
	DPI(hwnd uintptr) uint32
	ReleaseCapture()
	SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr

	IsWindow(hwnd uintptr) bool
	WindowProc(hwnd uintptr) uintptr
	// SetWindowProc installs proc and returns the procedure it replaced.
	SetWindowProc(hwnd, proc uintptr) (uintptr, error)
	CallWindowProc(proc, hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr
	// ContentWindow returns the in-process child hosting owner's content,
	// or 0.
	ContentWindow(owner uintptr) uintptr
}

// LockState reports the locked sub-state of pinned mode.
type LockState interface {
	IsLocked() bool
}

// Strategy selects how content-surface drags are produced.
type Strategy string

const (
	// StrategyHitTest answers transparent outside the safe zones so the
	// owner's caption hit-test takes over.
	StrategyHitTest Strategy = "hittest"
	// StrategyDrag turns a primary-button press into a caption press on the
	// owner.
	StrategyDrag Strategy = "drag"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyHitTest, StrategyDrag:
		return st, nil
	case "":
		return StrategyHitTest, nil
	}
	return "", fmt.Errorf("unknown hit-test strategy %q", s)
}

// gate is the shared precondition: the owner shows no native caption and the
// overlay is not locked.
type gate struct {
	win   Window
	owner uintptr
	lock  LockState
}

func (g gate) open() bool {
	captionless := uint32(g.win.Style(g.owner))&win32.WS_CAPTION != win32.WS_CAPTION
	return captionless && (g.lock == nil || !g.lock.IsLocked())
}

// inZone reports whether the client point p of hwnd falls in any zone.
func inZone(win Window, hwnd uintptr, p win32.Point, zones []SafeZone) bool {
	client, ok := win.ClientRect(hwnd)
	if !ok {
		return false
	}
	scale := ScaleFactor(win.DPI(hwnd))
	for _, z := range zones {
		if contains(z.Rect(client, scale), p) {
			return true
		}
	}
	return false
}

// HitTestLink runs on the content surface.
type HitTestLink struct {
	gate
	Zones []SafeZone
}

func (l *HitTestLink) Handle(m Message) (uintptr, bool) {
	if m.Msg != win32.WM_NCHITTEST || !l.open() {
		return 0, false
	}
	screen := win32.Point{X: win32.GetXLParam(m.LParam), Y: win32.GetYLParam(m.LParam)}
	p, ok := l.win.ScreenToClient(m.HWnd, screen)
	if !ok {
		return 0, false
	}
	if inZone(l.win, m.HWnd, p, l.Zones) {
		return 0, false
	}
	return win32.HTTRANSPARENT, true
}

// DragLink runs on the content surface.
type DragLink struct {
	gate
	Zones []SafeZone
}

func (l *DragLink) Handle(m Message) (uintptr, bool) {
	if m.Msg != win32.WM_LBUTTONDOWN || !l.open() {
		return 0, false
	}
	p := win32.Point{X: win32.GetXLParam(m.LParam), Y: win32.GetYLParam(m.LParam)}
	if inZone(l.win, m.HWnd, p, l.Zones) {
		return 0, false
	}
	screen, ok := l.win.ClientToScreen(m.HWnd, p)
	if !ok {
		return 0, false
	}
	l.win.ReleaseCapture()
	l.win.SendMessage(l.owner, win32.WM_NCLBUTTONDOWN, win32.HTCAPTION, win32.MakeLParam(screen.X, screen.Y))
	return 0, true
}

// CaptionLink runs on the owner and answers caption for its client area
// outside the safe zones, so transparent content resolves to a native drag.
type CaptionLink struct {
	gate
	Zones []SafeZone
}

func (l *CaptionLink) Handle(m Message) (uintptr, bool) {
	if m.Msg != win32.WM_NCHITTEST || !l.open() {
		return 0, false
	}
	screen := win32.Point{X: win32.GetXLParam(m.LParam), Y: win32.GetYLParam(m.LParam)}
	p, ok := l.win.ScreenToClient(m.HWnd, screen)
	if !ok {
		return 0, false
	}
	client, ok := l.win.ClientRect(m.HWnd)
	if !ok || !contains(client, p) {
		return 0, false
	}
	if inZone(l.win, m.HWnd, p, l.Zones) {
		return 0, false
	}
	return win32.HTCAPTION, true
}

// Config sizes the safe zones and picks the strategy.
type Config struct {
	Strategy Strategy
	PinDIP   int32
	LockDIP  int32
}

func DefaultConfig() Config {
	return Config{Strategy: StrategyHitTest, PinDIP: DefaultZoneDIP, LockDIP: DefaultZoneDIP}
}

// Router builds the link chains for one owner window.
type Router struct {
	win  Window
	lock LockState
	cfg  Config
}

func NewRouter(win Window, lock LockState, cfg Config) *Router {
	def := DefaultConfig()
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.PinDIP <= 0 {
		cfg.PinDIP = def.PinDIP
	}
	if cfg.LockDIP <= 0 {
		cfg.LockDIP = def.LockDIP
	}
	return &Router{win: win, lock: lock, cfg: cfg}
}

func (r *Router) Config() Config { return r.cfg }

func (r *Router) zones() []SafeZone {
	return []SafeZone{PinZone(r.cfg.PinDIP), LockZone(r.cfg.LockDIP)}
}

// ContentLinks returns the links for the content surface hosted by owner.
// The drag strategy only protects the pin zone.
func (r *Router) ContentLinks(owner uintptr) []Link {
	g := gate{win: r.win, owner: owner, lock: r.lock}
	if r.cfg.Strategy == StrategyDrag {
		return []Link{&DragLink{gate: g, Zones: []SafeZone{PinZone(r.cfg.PinDIP)}}}
	}
	return []Link{&HitTestLink{gate: g, Zones: r.zones()}}
}

// OwnerLinks returns the links for the owner itself.
func (r *Router) OwnerLinks(owner uintptr) []Link {
	g := gate{win: r.win, owner: owner, lock: r.lock}
	return []Link{&CaptionLink{gate: g, Zones: r.zones()}}
}

// Attach subclasses owner and, when non-zero, content. A content window in
// another process cannot be subclassed; the owner links still apply then and
// the error is returned for logging.
func (r *Router) Attach(owner, content uintptr) error {
	if err := install(r.win, owner, r.OwnerLinks(owner)); err != nil {
		return fmt.Errorf("subclass owner: %w", err)
	}
	if content == 0 || content == owner {
		return nil
	}
	if err := install(r.win, content, r.ContentLinks(owner)); err != nil {
		return fmt.Errorf("subclass content: %w", err)
	}
	return nil
}

func (r *Router) Detach(owner, content uintptr) error {
	var errs []error
	if content != 0 && content != owner {
		errs = append(errs, uninstall(content))
	}
	errs = append(errs, uninstall(owner))
	return errors.Join(errs...)
}

// ContentWindow finds the content surface hosted by owner.
func (r *Router) ContentWindow(owner uintptr) uintptr { return r.win.ContentWindow(owner) }

// Attached reports whether hwnd is currently routed.
func (r *Router) Attached(hwnd uintptr) bool { return Subclassed(hwnd) }
