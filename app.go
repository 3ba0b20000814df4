package main

import (
	"context"
	"errors"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/backdrop"
	"github.com/ringotypowriter/ringotrack/internal/bridge"
	"github.com/ringotypowriter/ringotrack/internal/events"
	"github.com/ringotypowriter/ringotrack/internal/foreground"
	"github.com/ringotypowriter/ringotrack/internal/ipcapi"
	"github.com/ringotypowriter/ringotrack/internal/policy"
	"github.com/ringotypowriter/ringotrack/internal/services"
	"github.com/ringotypowriter/ringotrack/internal/tray"
)

var errBackendNotReady = errors.New("backend not ready")

type App struct {
	ctx context.Context
	cfg *policy.Config
	log *zap.Logger

	br   *bridge.Bridge
	bus  *events.Bus
	svc  *services.Services
	tray *tray.Manager

	start sync.Once
	stop  sync.Once
}

func NewApp(cfg *policy.Config, log *zap.Logger) *App {
	return &App{cfg: cfg, log: log}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.start.Do(func() {
		a.br = bridge.New(a.cfg, a.log)
		a.br.InstallActivityHook()

		a.bus = events.NewBus(256, a.log.Named("events"))
		a.bus.StartSystemSources()

		a.svc = services.New(services.Dependencies{
			Tracker:   a.br,
			Bus:       a.bus,
			EmitEvent: a.emit,
			Activity:  a.cfg.Activity,
			Rules:     a.cfg.Rules,
			Log:       a.log.Named("services"),
		})
		a.svc.Start(ctx)

		a.tray = tray.NewManager(tray.Dependencies{
			TogglePinned:    func() { _, _ = a.TogglePinnedMode() },
			SetLocked:       func(v bool) { _ = a.SetLocked(v) },
			ResetTint:       func() { _ = a.ResetBackdropTint() },
			PauseTracking:   func() { _ = a.PauseTracking() },
			ResumeTracking:  func() { _ = a.ResumeTracking() },
			SetAutostart:    a.SetAutostart,
			Exit:            a.ExitApp,
			IsPinned:        func() bool { return a.br.IsPinned() == 1 },
			IsLocked:        func() bool { return a.br.IsLocked() == 1 },
			IsTracking:      a.svc.Tracking,
			AutostartActive: services.IsAutostartEnabled,
			Log:             a.log.Named("tray"),
		})
		a.tray.Start()
	})
}

// domReady runs once the host window exists, so it can be located by class.
func (a *App) domReady(ctx context.Context) {
	if a.br == nil {
		return
	}
	if a.br.AttachDefaultHost() == 0 {
		a.log.Warn("host window not found, pinned mode will follow the active window")
	}
	if a.cfg.Backdrop.Tint != "" {
		a.br.ApplyTint(a.cfg.DefaultTint())
	}
}

func (a *App) shutdown(ctx context.Context) {
	a.stop.Do(func() {
		if a.tray != nil {
			a.tray.Stop()
		}
		if a.svc != nil {
			a.svc.Stop()
		}
		if a.bus != nil {
			a.bus.Stop()
		}
		if a.br != nil {
			_ = a.br.Close()
		}
		_ = a.log.Sync()
	})
}

func (a *App) emit(name string, data any) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, name, data)
}

func (a *App) emitPinned() {
	a.emit(ipcapi.EventPinnedChanged, ipcapi.PinnedChangedEvent{
		Pinned: a.br.IsPinned() == 1,
		Locked: a.br.IsLocked() == 1,
		AtUTC:  ipcapi.NowUTC(),
	})
}

func (a *App) GetForegroundApp() (foreground.AppInfo, error) {
	if a.br == nil {
		return foreground.AppInfo{}, errBackendNotReady
	}
	return a.br.ForegroundApp(), nil
}

func (a *App) GetStatus() (ipcapi.StatusDTO, error) {
	if a.br == nil {
		return ipcapi.StatusDTO{}, errBackendNotReady
	}
	st := a.br.Status()
	return ipcapi.StatusDTO{
		Session:         st.Session,
		Pinned:          st.Pinned,
		Locked:          st.Locked,
		HookInstalled:   st.HookInstalled,
		ButtonDown:      st.ButtonDown,
		LastClickMillis: int64(st.LastClickMillis),
		IdleForMillis:   st.Idle.Milliseconds(),
	}, nil
}

func (a *App) EnterPinnedMode() (bool, error) {
	if a.br == nil {
		return false, errBackendNotReady
	}
	ok := a.br.EnterPinnedMode() == 1
	a.emitPinned()
	return ok, nil
}

func (a *App) ExitPinnedMode() (bool, error) {
	if a.br == nil {
		return false, errBackendNotReady
	}
	ok := a.br.ExitPinnedMode() == 1
	a.emitPinned()
	return ok, nil
}

func (a *App) TogglePinnedMode() (bool, error) {
	if a.br == nil {
		return false, errBackendNotReady
	}
	ok := a.br.TogglePinnedMode() == 1
	a.emitPinned()
	return ok, nil
}

func (a *App) SetLocked(locked bool) error {
	if a.br == nil {
		return errBackendNotReady
	}
	v := int32(0)
	if locked {
		v = 1
	}
	if a.br.SetLocked(v) == 0 {
		return errors.New("lock requires pinned mode")
	}
	a.emitPinned()
	return nil
}

// SetBackdropTint takes "#rrggbb" or "#rrggbbaa".
func (a *App) SetBackdropTint(hex string) error {
	if a.br == nil {
		return errBackendNotReady
	}
	t, err := backdrop.ParseTint(hex, a.cfg.Backdrop.Alpha)
	if err != nil {
		return err
	}
	if a.br.ApplyTint(t) == 0 {
		return errors.New("backdrop tint not applied")
	}
	return nil
}

func (a *App) ResetBackdropTint() error {
	if a.br == nil {
		return errBackendNotReady
	}
	if a.br.ResetBackdropTint() == 0 {
		return errors.New("backdrop reset failed")
	}
	return nil
}

func (a *App) PauseTracking() error {
	if a.svc == nil {
		return errBackendNotReady
	}
	a.svc.PauseTracking()
	return nil
}

func (a *App) ResumeTracking() error {
	if a.svc == nil {
		return errBackendNotReady
	}
	a.svc.ResumeTracking()
	return nil
}

func (a *App) GetAutostart() bool {
	return services.IsAutostartEnabled()
}

func (a *App) SetAutostart(enabled bool) error {
	return services.SetAutostart(enabled)
}

func (a *App) ExitApp() {
	a.emit(ipcapi.EventExitRequested, nil)
	a.shutdown(a.ctx)
	if a.ctx != nil {
		runtime.Quit(a.ctx)
	}
}
