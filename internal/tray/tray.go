// Package tray owns the notification-area menu and the global pin hotkey.
package tray

import (
	"sync"

	"go.uber.org/zap"
)

// Dependencies are callbacks into the rest of the app. Nil callbacks hide
// nothing; their items simply do nothing.
type Dependencies struct {
	TogglePinned    func()
	SetLocked       func(bool)
	ResetTint       func()
	PauseTracking   func()
	ResumeTracking  func()
	SetAutostart    func(bool) error
	Exit            func()
	IsPinned        func() bool
	IsLocked        func() bool
	IsTracking      func() bool
	AutostartActive func() bool
	Log             *zap.Logger
}

// MenuState is what the menu should show right now.
type MenuState struct {
	PinLabel      string
	LockChecked   bool
	LockEnabled   bool
	TrackLabel    string
	AutostartOn   bool
	ShowAutostart bool
}

func currentState(d Dependencies) MenuState {
	pinned := call(d.IsPinned)
	st := MenuState{
		PinLabel:      "Pin window",
		LockChecked:   pinned && call(d.IsLocked),
		LockEnabled:   pinned,
		TrackLabel:    "Pause tracking",
		AutostartOn:   call(d.AutostartActive),
		ShowAutostart: d.SetAutostart != nil,
	}
	if pinned {
		st.PinLabel = "Unpin window"
	}
	if d.IsTracking != nil && !d.IsTracking() {
		st.TrackLabel = "Resume tracking"
	}
	return st
}

func call(f func() bool) bool { return f != nil && f() }

func run(f func()) {
	if f != nil {
		f()
	}
}

type Manager struct {
	deps Dependencies
	once sync.Once
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewManager(deps Dependencies) *Manager {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Manager{deps: deps, stop: make(chan struct{})}
}

// State reports the menu as it would be rendered now.
func (m *Manager) State() MenuState { return currentState(m.deps) }

// toggleTracking flips between paused and active.
func (m *Manager) toggleTracking() {
	if m.deps.IsTracking != nil && !m.deps.IsTracking() {
		run(m.deps.ResumeTracking)
		return
	}
	run(m.deps.PauseTracking)
}

func (m *Manager) toggleLock() {
	if m.deps.SetLocked == nil || !call(m.deps.IsPinned) {
		return
	}
	m.deps.SetLocked(!call(m.deps.IsLocked))
}

func (m *Manager) toggleAutostart() {
	if m.deps.SetAutostart == nil {
		return
	}
	want := !call(m.deps.AutostartActive)
	if err := m.deps.SetAutostart(want); err != nil {
		m.deps.Log.Warn("autostart change failed", zap.Bool("enabled", want), zap.Error(err))
	}
}
