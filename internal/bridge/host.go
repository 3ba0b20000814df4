package bridge

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// AttachHost makes owner the pinned-mode target and routes its messages, and
// those of content when non-zero, through the hit-test links. Attaching
// again replaces the previous windows. It returns 1 when at least the owner
// is routed.
func (b *Bridge) AttachHost(owner, content uintptr) int32 {
	return guard(b, "attach_host", 0, func() int32 {
		if owner == 0 {
			return 0
		}
		b.attachMu.Lock()
		defer b.attachMu.Unlock()
		if b.owner != 0 {
			_ = b.router.Detach(b.owner, b.content)
		}
		b.mode.Track(owner)
		b.owner, b.content = owner, 0

		err := b.router.Attach(owner, content)
		if err == nil {
			b.content = content
			b.log.Info("host attached", zap.Uintptr("owner", owner), zap.Uintptr("content", content))
			return 1
		}
		b.log.Warn("hit-test routing degraded", zap.Error(err))
		if b.router.Attached(owner) {
			return 1
		}
		b.owner = 0
		return 0
	})
}

// AttachDefaultHost locates the host window by its class and attaches it
// together with its in-process content child.
func (b *Bridge) AttachDefaultHost() int32 {
	host := b.backdrop.Host()
	if host == 0 {
		return 0
	}
	return b.AttachHost(host, b.router.ContentWindow(host))
}

// Status is a consistent-enough view for diagnostics; fields are read
// independently.
type Status struct {
	Session         string
	Pinned          bool
	Locked          bool
	HookInstalled   bool
	ButtonDown      bool
	LastClickMillis uint64
	Idle            time.Duration
}

func (b *Bridge) Status() Status {
	return Status{
		Session:         b.SessionID(),
		Pinned:          b.mode.IsPinned(),
		Locked:          b.mode.IsLocked(),
		HookInstalled:   b.monitor.Installed(),
		ButtonDown:      b.monitor.IsButtonDown(),
		LastClickMillis: b.monitor.LastClickMillis(),
		Idle:            b.monitor.IdleFor(b.now()),
	}
}

// IdleFor is the time since the last click as of now.
func (b *Bridge) IdleFor() time.Duration { return b.monitor.IdleFor(b.now()) }

// Close restores the host window, removes the message routing and the
// pointer hook. Later boundary calls still succeed or fail cleanly.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		var errs []error
		if b.mode.IsPinned() {
			errs = append(errs, b.mode.Exit())
		}
		b.attachMu.Lock()
		if b.owner != 0 {
			errs = append(errs, b.router.Detach(b.owner, b.content))
			b.owner, b.content = 0, 0
		}
		b.attachMu.Unlock()
		errs = append(errs, b.monitor.Uninstall())
		err = errors.Join(errs...)
		if err != nil {
			b.log.Warn("bridge closed with errors", zap.Error(err))
		}
	})
	return err
}
