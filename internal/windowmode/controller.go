// Package windowmode switches a top-level window between its normal
// presentation and a small borderless always-on-top overlay.
package windowmode

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

var (
	ErrResolveTarget  = errors.New("resolve target window")
	ErrNoActiveTarget = errors.New("no active target window")
	ErrNotPinned      = errors.New("window is not pinned")
)

type State int

const (
	Normal State = iota
	Pinned
)

func (s State) String() string {
	if s == Pinned {
		return "pinned"
	}
	return "normal"
}

// Windows is the window-manager surface the controller drives.
type Windows interface {
	ActiveWindow() uintptr
	ForegroundWindow() uintptr
	IsWindow(hwnd uintptr) bool
	Placement(hwnd uintptr) (win32.WindowPlacement, error)
	WindowLong(hwnd uintptr, index int32) uintptr
	SetWindowLong(hwnd uintptr, index int32, value uintptr) error
	SetWindowPos(hwnd, insertAfter uintptr, r win32.Rect, flags uint32) error
	SystemWorkArea() (win32.Rect, bool)
	MonitorWorkArea(hwnd uintptr) (win32.Rect, bool)
	WindowRect(hwnd uintptr) (win32.Rect, bool)
	SetCornerPreference(hwnd uintptr, pref uint32) error
}

type Options struct {
	Width  int32
	Height int32
	Margin int32
	Anchor Anchor
}

func DefaultOptions() Options {
	return Options{Width: 360, Height: 220, Margin: 16, Anchor: AnchorTopRight}
}

// SavedGeometry is what Enter captured and Exit puts back.
type SavedGeometry struct {
	Rect    win32.Rect
	Style   uintptr
	ExStyle uintptr
}

const pinnedStripStyle = uintptr(win32.WS_CAPTION | win32.WS_THICKFRAME | win32.WS_MINIMIZEBOX | win32.WS_MAXIMIZEBOX)

const frameChangedFlags = win32.SWP_NOMOVE | win32.SWP_NOSIZE | win32.SWP_NOZORDER | win32.SWP_FRAMECHANGED | win32.SWP_NOACTIVATE

// Controller is the single per-process owner of the pinned target. Enter and
// Exit are serialized; IsPinned and IsLocked never block so window procedures
// may call them while a transition is in progress on the same thread.
type Controller struct {
	win  Windows
	opts Options
	log  *zap.Logger

	mu      sync.Mutex
	tracked uintptr
	target  uintptr
	saved   SavedGeometry
	cycled  bool

	pinned atomic.Bool
	locked atomic.Bool
}

func New(win Windows, opts Options, log *zap.Logger) *Controller {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Margin < 0 {
		opts.Margin = def.Margin
	}
	if opts.Anchor == "" {
		opts.Anchor = def.Anchor
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{win: win, opts: opts, log: log}
}

// Track makes hwnd the preferred target for the next Enter, ahead of the
// active and foreground windows.
func (c *Controller) Track(hwnd uintptr) {
	c.mu.Lock()
	c.tracked = hwnd
	c.mu.Unlock()
}

// resolveTarget drops a tracked window that has since been destroyed.
func (c *Controller) resolveTarget() uintptr {
	if c.tracked != 0 {
		if c.win.IsWindow(c.tracked) {
			return c.tracked
		}
		c.log.Info("tracked window gone", zap.Uintptr("hwnd", c.tracked))
		c.tracked = 0
	}
	if h := c.win.ActiveWindow(); h != 0 {
		return h
	}
	return c.win.ForegroundWindow()
}

// Enter pins the target window. Once geometry has been captured the
// remaining steps are best-effort: their failures are logged and the window
// is still considered pinned, possibly partially applied.
func (c *Controller) Enter() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinned.Load() {
		return nil
	}

	hwnd := c.resolveTarget()
	if hwnd == 0 {
		return ErrResolveTarget
	}
	wp, err := c.win.Placement(hwnd)
	if err != nil {
		return fmt.Errorf("%w: placement of %#x: %w", ErrResolveTarget, hwnd, err)
	}
	style := c.win.WindowLong(hwnd, win32.GWL_STYLE)
	exStyle := c.win.WindowLong(hwnd, win32.GWL_EXSTYLE)

	c.target = hwnd
	c.saved = SavedGeometry{Rect: wp.RcNormalPosition, Style: style, ExStyle: exStyle}

	work, src := resolveWorkArea(c.win, hwnd)
	dest := Destination(work, c.opts)

	var errs []error
	if err := c.win.SetWindowPos(hwnd, win32.HWND_TOPMOST, dest, win32.SWP_SHOWWINDOW|win32.SWP_NOACTIVATE); err != nil {
		errs = append(errs, fmt.Errorf("move to overlay: %w", err))
	}
	if err := c.win.SetWindowLong(hwnd, win32.GWL_STYLE, style&^pinnedStripStyle); err != nil {
		errs = append(errs, fmt.Errorf("strip frame style: %w", err))
	}
	if err := c.win.SetWindowPos(hwnd, 0, win32.Rect{}, frameChangedFlags); err != nil {
		errs = append(errs, fmt.Errorf("repaint frame: %w", err))
	}
	if err := c.win.SetCornerPreference(hwnd, win32.DWMWCP_ROUNDSMALL); err != nil {
		c.log.Debug("rounded corners unavailable", zap.Error(err))
	}

	c.pinned.Store(true)
	c.locked.Store(false)
	if err := errors.Join(errs...); err != nil {
		c.log.Warn("pinned mode partially applied", zap.Uintptr("hwnd", hwnd), zap.Error(err))
	}
	c.log.Info("entered pinned mode",
		zap.Uintptr("hwnd", hwnd),
		zap.String("workArea", string(src)),
		zap.Int32("x", dest.Left),
		zap.Int32("y", dest.Top),
	)
	return nil
}

// Exit restores what the matching Enter captured. Exit while normal succeeds
// once a pin cycle has happened; before any Enter there is no target to
// restore and it fails.
func (c *Controller) Exit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pinned.Load() {
		if !c.cycled {
			return ErrNoActiveTarget
		}
		return nil
	}
	hwnd := c.target
	if hwnd == 0 {
		c.pinned.Store(false)
		c.locked.Store(false)
		return ErrNoActiveTarget
	}

	var errs []error
	if err := c.win.SetWindowPos(hwnd, win32.HWND_NOTOPMOST, c.saved.Rect, win32.SWP_SHOWWINDOW); err != nil {
		errs = append(errs, fmt.Errorf("restore rect: %w", err))
	}
	if err := c.win.SetWindowLong(hwnd, win32.GWL_STYLE, c.saved.Style); err != nil {
		errs = append(errs, fmt.Errorf("restore style: %w", err))
	}
	if err := c.win.SetWindowLong(hwnd, win32.GWL_EXSTYLE, c.saved.ExStyle); err != nil {
		errs = append(errs, fmt.Errorf("restore ex-style: %w", err))
	}
	if err := c.win.SetWindowPos(hwnd, 0, win32.Rect{}, frameChangedFlags); err != nil {
		errs = append(errs, fmt.Errorf("repaint frame: %w", err))
	}
	if err := c.win.SetCornerPreference(hwnd, win32.DWMWCP_DEFAULT); err != nil {
		c.log.Debug("corner preference reset unavailable", zap.Error(err))
	}

	c.target = 0
	c.saved = SavedGeometry{}
	c.cycled = true
	c.pinned.Store(false)
	c.locked.Store(false)
	if err := errors.Join(errs...); err != nil {
		c.log.Warn("normal mode partially restored", zap.Uintptr("hwnd", hwnd), zap.Error(err))
	}
	c.log.Info("exited pinned mode", zap.Uintptr("hwnd", hwnd))
	return nil
}

// Toggle enters when normal and exits when pinned.
func (c *Controller) Toggle() error {
	if c.IsPinned() {
		return c.Exit()
	}
	return c.Enter()
}

func (c *Controller) IsPinned() bool { return c.pinned.Load() }

func (c *Controller) IsLocked() bool { return c.locked.Load() }

func (c *Controller) State() State {
	if c.pinned.Load() {
		return Pinned
	}
	return Normal
}

// SetLocked toggles the locked sub-state. Locking requires pinned mode;
// unlocking always succeeds.
func (c *Controller) SetLocked(locked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if locked && !c.pinned.Load() {
		return ErrNotPinned
	}
	c.locked.Store(locked)
	return nil
}

// Saved returns the captured geometry and the pinned target. ok is false
// while normal.
func (c *Controller) Saved() (SavedGeometry, uintptr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pinned.Load() {
		return SavedGeometry{}, 0, false
	}
	return c.saved, c.target, true
}

func (c *Controller) Options() Options { return c.opts }
