// Package backdrop composes a translucent tinted backdrop behind the host
// window.
package backdrop

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrLocateWindow         = errors.New("host window not found")
	ErrNoCompositionSupport = errors.New("window composition not supported")
	ErrCompositionRejected  = errors.New("no accent state accepted")
)

type AccentState int32

const (
	AccentDisabled          AccentState = 0
	AccentBlurBehind        AccentState = 3
	AccentAcrylicBlurBehind AccentState = 4
)

func (s AccentState) String() string {
	switch s {
	case AccentDisabled:
		return "disabled"
	case AccentBlurBehind:
		return "blur"
	case AccentAcrylicBlurBehind:
		return "acrylic"
	}
	return fmt.Sprintf("accent(%d)", int32(s))
}

// AccentPolicy mirrors ACCENT_POLICY.
type AccentPolicy struct {
	State         AccentState
	Flags         int32
	GradientColor uint32
	AnimationID   int32
}

// accentFlags extends the blur over the border and client area.
const accentFlags = 2

// fallbackChain lists accent states from richest to simplest.
var fallbackChain = []AccentState{AccentAcrylicBlurBehind, AccentBlurBehind}

// DefaultHostClass is the window class of the Wails main window.
const DefaultHostClass = "wailsWindow"

type Compositor interface {
	Supported() bool
	FindWindow(class string) uintptr
	IsWindow(hwnd uintptr) bool
	SetAccent(hwnd uintptr, p AccentPolicy) error
}

// Controller holds no tint state; every call re-issues the request. Only the
// host handle is cached and it is revalidated before each use.
type Controller struct {
	comp  Compositor
	class string
	log   *zap.Logger

	mu     sync.Mutex
	cached uintptr
}

func New(comp Compositor, hostClass string, log *zap.Logger) *Controller {
	if hostClass == "" {
		hostClass = DefaultHostClass
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{comp: comp, class: hostClass, log: log}
}

// Host returns the host window handle, or 0 when no window of the class
// exists.
func (c *Controller) Host() uintptr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != 0 && c.comp.IsWindow(c.cached) {
		return c.cached
	}
	c.cached = c.comp.FindWindow(c.class)
	return c.cached
}

// Apply tries each accent state in order until one is accepted.
func (c *Controller) Apply(t Tint) error {
	hwnd := c.Host()
	if hwnd == 0 {
		return fmt.Errorf("%w: class %q", ErrLocateWindow, c.class)
	}
	if !c.comp.Supported() {
		return ErrNoCompositionSupport
	}
	var errs []error
	for _, state := range fallbackChain {
		err := c.comp.SetAccent(hwnd, AccentPolicy{State: state, Flags: accentFlags, GradientColor: t.ABGR()})
		if err == nil {
			c.log.Info("backdrop applied", zap.Stringer("accent", state), zap.String("tint", t.Hex()))
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", state, err))
	}
	err := fmt.Errorf("%w: %w", ErrCompositionRejected, errors.Join(errs...))
	c.log.Warn("backdrop not applied", zap.Error(err))
	return err
}

// Reset disables the accent on the host window.
func (c *Controller) Reset() error {
	hwnd := c.Host()
	if hwnd == 0 {
		return fmt.Errorf("%w: class %q", ErrLocateWindow, c.class)
	}
	if !c.comp.Supported() {
		return ErrNoCompositionSupport
	}
	if err := c.comp.SetAccent(hwnd, AccentPolicy{State: AccentDisabled}); err != nil {
		return fmt.Errorf("%w: %w", ErrCompositionRejected, err)
	}
	c.log.Info("backdrop reset")
	return nil
}
