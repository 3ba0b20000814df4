// Package bridge is the fixed-signature boundary consumed by the UI host. It
// owns one instance of every controller for the lifetime of the process.
// No method panics and no method allocates on the caller's behalf: results
// are plain integers or the probe's reusable snapshot.
package bridge

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/activity"
	"github.com/ringotypowriter/ringotrack/internal/backdrop"
	"github.com/ringotypowriter/ringotrack/internal/clock"
	"github.com/ringotypowriter/ringotrack/internal/foreground"
	"github.com/ringotypowriter/ringotrack/internal/hittest"
	"github.com/ringotypowriter/ringotrack/internal/policy"
	"github.com/ringotypowriter/ringotrack/internal/windowmode"
)

// Deps are the OS surfaces behind the boundary. Zero fields fall back to the
// live OS implementations.
type Deps struct {
	System     foreground.System
	Source     foreground.Source
	Hook       activity.Hook
	Windows    windowmode.Windows
	Compositor backdrop.Compositor
	HitTest    hittest.Window
	Clock      clock.Func
	Config     *policy.Config
	Log        *zap.Logger
}

func (d *Deps) fill() {
	if d.System == nil {
		d.System = foreground.OSSystem{}
	}
	if d.Source == nil {
		d.Source = foreground.DefaultSource()
	}
	if d.Hook == nil {
		d.Hook = activity.NewSystemHook()
	}
	if d.Windows == nil {
		d.Windows = windowmode.OSWindows{}
	}
	if d.Compositor == nil {
		d.Compositor = backdrop.OSCompositor{}
	}
	if d.HitTest == nil {
		d.HitTest = hittest.OSWindow{}
	}
	if d.Clock == nil {
		d.Clock = clock.NowMillis
	}
	if d.Config == nil {
		d.Config = policy.DefaultConfig()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
}

type Bridge struct {
	session uuid.UUID
	log     *zap.Logger
	cfg     *policy.Config
	now     clock.Func

	probeMu   sync.Mutex
	probe     *foreground.Probe
	fallback  foreground.Snapshot
	inspector *foreground.Inspector

	monitor  *activity.Monitor
	mode     *windowmode.Controller
	backdrop *backdrop.Controller
	router   *hittest.Router

	attachMu sync.Mutex
	owner    uintptr
	content  uintptr

	closeOnce sync.Once
}

// New builds a Bridge over the live OS.
func New(cfg *policy.Config, log *zap.Logger) *Bridge {
	return NewWithDeps(Deps{Config: cfg, Log: log})
}

func NewWithDeps(d Deps) *Bridge {
	d.fill()
	session := uuid.New()
	log := d.Log.With(zap.String("session", session.String()))

	b := &Bridge{
		session:   session,
		log:       log,
		cfg:       d.Config,
		now:       d.Clock,
		probe:     foreground.NewProbe(d.System, d.Clock),
		inspector: foreground.NewInspector(d.Source),
		monitor:   activity.NewMonitor(d.Hook, d.Clock, log.Named("activity")),
		mode:      windowmode.New(d.Windows, d.Config.WindowMode(), log.Named("windowmode")),
		backdrop:  backdrop.New(d.Compositor, d.Config.Backdrop.HostClass, log.Named("backdrop")),
	}
	b.router = hittest.NewRouter(d.HitTest, b.mode, d.Config.HitTestConfig())
	b.fallback = foreground.Snapshot{IsError: 1, ErrorCode: foreground.ErrorNoForegroundWindow}
	return b
}

func (b *Bridge) SessionID() string { return b.session.String() }

func (b *Bridge) Config() *policy.Config { return b.cfg }

func (b *Bridge) Log() *zap.Logger { return b.log }

// guard turns a panic in fn into fail.
func guard[T any](b *Bridge, op string, fail T, fn func() T) (ret T) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("boundary call panicked", zap.String("op", op), zap.Any("panic", r), zap.Stack("stack"))
			ret = fail
		}
	}()
	return fn()
}

func boolToInt32(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
