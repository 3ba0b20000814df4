// Package activity tracks global primary-button activity for idle detection.
package activity

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/clock"
)

type Event uint8

const (
	PrimaryDown Event = iota + 1
	PrimaryUp
)

// Hook delivers pointer events to sink from whatever thread the OS chooses.
// sink must not block.
type Hook interface {
	Install(sink func(Event)) error
	Uninstall() error
}

// Monitor holds the last click time and the button state. Both fields are
// written only by the hook sink and read lock-free; they are not updated
// together atomically.
type Monitor struct {
	hook Hook
	now  clock.Func
	log  *zap.Logger

	mu        sync.Mutex
	installed bool

	lastClick atomic.Uint64
	down      atomic.Bool
}

func NewMonitor(hook Hook, now clock.Func, log *zap.Logger) *Monitor {
	if now == nil {
		now = clock.NowMillis
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{hook: hook, now: now, log: log}
}

// Install registers the hook once; later calls are no-ops. On failure the
// state stays zero, which readers see as idle since the epoch.
func (m *Monitor) Install() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.installed {
		return nil
	}
	if err := m.hook.Install(m.record); err != nil {
		m.log.Warn("pointer hook install failed, idle detection degraded", zap.Error(err))
		return fmt.Errorf("install pointer hook: %w", err)
	}
	m.lastClick.Store(m.now())
	m.down.Store(false)
	m.installed = true
	m.log.Info("pointer hook installed")
	return nil
}

func (m *Monitor) Uninstall() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.installed {
		return nil
	}
	if err := m.hook.Uninstall(); err != nil {
		return fmt.Errorf("uninstall pointer hook: %w", err)
	}
	m.installed = false
	m.log.Info("pointer hook removed")
	return nil
}

func (m *Monitor) Installed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.installed
}

// record runs on the hook thread: stores only.
func (m *Monitor) record(ev Event) {
	switch ev {
	case PrimaryDown:
		m.down.Store(true)
		m.lastClick.Store(m.now())
	case PrimaryUp:
		m.down.Store(false)
		m.lastClick.Store(m.now())
	}
}

func (m *Monitor) LastClickMillis() uint64 { return m.lastClick.Load() }

func (m *Monitor) IsButtonDown() bool { return m.down.Load() }

// IdleFor is the time since the last primary-button transition, measured
// against nowMillis. A held button is never idle.
func (m *Monitor) IdleFor(nowMillis uint64) time.Duration {
	if m.down.Load() {
		return 0
	}
	last := m.lastClick.Load()
	if nowMillis <= last {
		return 0
	}
	return time.Duration(nowMillis-last) * time.Millisecond
}
