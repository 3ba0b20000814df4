package bridge

import (
	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/backdrop"
	"github.com/ringotypowriter/ringotrack/internal/foreground"
)

// ProbeForeground captures the foreground application into the probe's
// reusable slot. The result is never nil and is valid until the next call.
func (b *Bridge) ProbeForeground() *foreground.Snapshot {
	return guard(b, "probe_foreground", &b.fallback, func() *foreground.Snapshot {
		b.probeMu.Lock()
		defer b.probeMu.Unlock()
		return b.probe.Capture()
	})
}

// ForegroundApp captures under the slot lock and copies the snapshot out.
// The process-details lookup runs after the lock is released, so a slow
// lookup never holds up ProbeForeground.
func (b *Bridge) ForegroundApp() foreground.AppInfo {
	return guard(b, "foreground_app", foreground.AppInfo{ErrorCode: foreground.ErrorNoForegroundWindow}, func() foreground.AppInfo {
		snap := b.captureCopy()
		return foreground.Describe(&snap, b.inspector)
	})
}

func (b *Bridge) captureCopy() foreground.Snapshot {
	b.probeMu.Lock()
	defer b.probeMu.Unlock()
	return *b.probe.Capture()
}

// ForgetProcess drops cached details of an exited process.
func (b *Bridge) ForgetProcess(pid uint32) { b.inspector.Forget(pid) }

// PruneProcessCache drops process details that have outlived their age limit.
func (b *Bridge) PruneProcessCache() { b.inspector.Cleanup() }

func (b *Bridge) InstallActivityHook() {
	guard(b, "install_activity_hook", struct{}{}, func() struct{} {
		if err := b.monitor.Install(); err != nil {
			b.log.Warn("activity hook unavailable", zap.Error(err))
		}
		return struct{}{}
	})
}

func (b *Bridge) UninstallActivityHook() {
	guard(b, "uninstall_activity_hook", struct{}{}, func() struct{} {
		if err := b.monitor.Uninstall(); err != nil {
			b.log.Warn("activity hook removal failed", zap.Error(err))
		}
		return struct{}{}
	})
}

func (b *Bridge) LastClickTimeMillis() uint64 { return b.monitor.LastClickMillis() }

func (b *Bridge) IsButtonDown() uint32 {
	if b.monitor.IsButtonDown() {
		return 1
	}
	return 0
}

func (b *Bridge) EnterPinnedMode() int32 {
	return guard(b, "enter_pinned_mode", 0, func() int32 {
		if err := b.mode.Enter(); err != nil {
			b.log.Warn("enter pinned mode failed", zap.Error(err))
			return 0
		}
		return 1
	})
}

func (b *Bridge) ExitPinnedMode() int32 {
	return guard(b, "exit_pinned_mode", 0, func() int32 {
		if err := b.mode.Exit(); err != nil {
			b.log.Warn("exit pinned mode failed", zap.Error(err))
			return 0
		}
		return 1
	})
}

// TogglePinnedMode is the tray and hotkey action.
func (b *Bridge) TogglePinnedMode() int32 {
	if b.mode.IsPinned() {
		return b.ExitPinnedMode()
	}
	return b.EnterPinnedMode()
}

func (b *Bridge) IsPinned() int32 { return boolToInt32(b.mode.IsPinned()) }

func (b *Bridge) IsLocked() int32 { return boolToInt32(b.mode.IsLocked()) }

func (b *Bridge) SetLocked(locked int32) int32 {
	return guard(b, "set_locked", 0, func() int32 {
		if err := b.mode.SetLocked(locked != 0); err != nil {
			b.log.Debug("lock rejected", zap.Error(err))
			return 0
		}
		return 1
	})
}

func (b *Bridge) SetBackdropTint(r, g, bl uint8) int32 {
	return b.ApplyTint(backdrop.Tint{R: r, G: g, B: bl, A: backdrop.DefaultAlpha})
}

// ApplyTint is SetBackdropTint with an explicit alpha.
func (b *Bridge) ApplyTint(t backdrop.Tint) int32 {
	return guard(b, "set_backdrop_tint", 0, func() int32 {
		if err := b.backdrop.Apply(t); err != nil {
			b.log.Warn("backdrop tint failed", zap.Error(err))
			return 0
		}
		return 1
	})
}

func (b *Bridge) ResetBackdropTint() int32 {
	return guard(b, "reset_backdrop_tint", 0, func() int32 {
		if err := b.backdrop.Reset(); err != nil {
			b.log.Warn("backdrop reset failed", zap.Error(err))
			return 0
		}
		return 1
	})
}
