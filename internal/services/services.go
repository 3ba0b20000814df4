// Package services runs the background loop that turns foreground probes
// and pointer activity into UI events.
package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/events"
	"github.com/ringotypowriter/ringotrack/internal/foreground"
	"github.com/ringotypowriter/ringotrack/internal/ipcapi"
	"github.com/ringotypowriter/ringotrack/internal/plugins"
	"github.com/ringotypowriter/ringotrack/internal/policy"
)

// Tracker is the slice of the boundary the loop reads from.
type Tracker interface {
	ForegroundApp() foreground.AppInfo
	ForgetProcess(pid uint32)
	PruneProcessCache()
	LastClickTimeMillis() uint64
	IdleFor() time.Duration
}

type Dependencies struct {
	Tracker   Tracker
	Bus       *events.Bus
	EmitEvent func(name string, data any)
	Activity  policy.Activity
	Rules     policy.Rules
	Plugins   *plugins.Registry
	Log       *zap.Logger
	Now       func() time.Time
	// PruneInterval paces the expiry of cached process details.
	PruneInterval time.Duration
}

const defaultPruneInterval = time.Minute

type Services struct {
	deps Dependencies

	mu         sync.Mutex
	last       foreground.AppInfo
	seen       bool
	idle       bool
	trackingOn bool

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(deps Dependencies) *Services {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.EmitEvent == nil {
		deps.EmitEvent = func(string, any) {}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Plugins == nil {
		deps.Plugins = plugins.DefaultRegistry()
	}
	if deps.PruneInterval <= 0 {
		deps.PruneInterval = defaultPruneInterval
	}
	def := policy.DefaultConfig().Activity
	if deps.Activity.PollInterval <= 0 {
		deps.Activity.PollInterval = def.PollInterval
	}
	if deps.Activity.IdleThreshold <= 0 {
		deps.Activity.IdleThreshold = def.IdleThreshold
	}
	return &Services{deps: deps, trackingOn: true, stopCh: make(chan struct{})}
}

// Start runs the loop until ctx is done or Stop is called.
func (s *Services) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

func (s *Services) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Services) loop(ctx context.Context) {
	ticker := time.NewTicker(s.deps.Activity.PollInterval)
	defer ticker.Stop()
	prune := time.NewTicker(s.deps.PruneInterval)
	defer prune.Stop()

	var busEvents <-chan events.SystemEvent
	if s.deps.Bus != nil {
		busEvents = s.deps.Bus.Events()
	}
	s.Poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Poll()
		case <-prune.C:
			s.deps.Tracker.PruneProcessCache()
		case ev := <-busEvents:
			s.HandleSystemEvent(ev)
		}
	}
}

// HandleSystemEvent reacts to one bus event.
func (s *Services) HandleSystemEvent(ev events.SystemEvent) {
	switch ev.Type {
	case events.EventForegroundChanged, events.EventTitleChanged:
		s.pollForeground()
	case events.EventProcessExited:
		if ev.PID > 0 {
			s.deps.Tracker.ForgetProcess(uint32(ev.PID))
		}
	}
}

// Poll runs one foreground and one idle check.
func (s *Services) Poll() {
	s.pollForeground()
	s.pollIdle()
}

func (s *Services) PauseTracking() {
	s.mu.Lock()
	s.trackingOn = false
	s.mu.Unlock()
	s.deps.Log.Info("foreground tracking paused")
}

func (s *Services) ResumeTracking() {
	s.mu.Lock()
	s.trackingOn = true
	s.seen = false
	s.mu.Unlock()
	s.deps.Log.Info("foreground tracking resumed")
}

func (s *Services) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackingOn
}

func (s *Services) pollForeground() {
	app := s.deps.Tracker.ForegroundApp()

	s.mu.Lock()
	if !s.trackingOn || (s.seen && sameForeground(s.last, app)) {
		s.mu.Unlock()
		return
	}
	s.last, s.seen = app, true
	s.mu.Unlock()

	if app.ErrorCode == foreground.ErrorNoForegroundWindow {
		return
	}
	if app.ExecutablePath != "" && !s.deps.Rules.Allow(app.ExecutablePath) {
		s.deps.Log.Debug("foreground excluded by rules", zap.String("path", app.ExecutablePath))
		return
	}
	ev := ipcapi.ForegroundChangedEvent{
		AppID:          app.AppID,
		Name:           app.Name,
		PID:            app.ProcessID,
		ExecutablePath: app.ExecutablePath,
		Title:          app.Title,
		Context:        s.deps.Plugins.Describe(&app),
		AtUTC:          s.deps.Now().UTC().UnixMilli(),
	}
	if app.ErrorCode != foreground.ErrorNone {
		ev.ErrorCode = app.ErrorCode.String()
	}
	s.deps.EmitEvent(ipcapi.EventForegroundChanged, ev)
}

func (s *Services) pollIdle() {
	last := s.deps.Tracker.LastClickTimeMillis()
	if last == 0 {
		return
	}
	idleFor := s.deps.Tracker.IdleFor()
	idle := idleFor >= s.deps.Activity.IdleThreshold

	s.mu.Lock()
	changed := idle != s.idle
	s.idle = idle
	s.mu.Unlock()
	if !changed {
		return
	}
	s.deps.Log.Info("idle state changed", zap.Bool("idle", idle), zap.Duration("idle_for", idleFor))
	s.deps.EmitEvent(ipcapi.EventIdleStateChanged, ipcapi.IdleStateChangedEvent{
		Idle:            idle,
		IdleForMillis:   idleFor.Milliseconds(),
		LastClickMillis: int64(last),
		AtUTC:           s.deps.Now().UTC().UnixMilli(),
	})
}

func (s *Services) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idle
}

func sameForeground(a, b foreground.AppInfo) bool {
	return a.ProcessID == b.ProcessID &&
		a.ExecutablePath == b.ExecutablePath &&
		a.Title == b.Title &&
		a.ErrorCode == b.ErrorCode
}
