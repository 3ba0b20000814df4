package fakeos

import (
	"sync"

	"github.com/ringotypowriter/ringotrack/internal/activity"
)

// Hook is an activity.Hook driven by Press and Release.
type Hook struct {
	mu         sync.Mutex
	sink       func(activity.Event)
	err        error
	installs   int
	uninstalls int
}

// FailWith makes later Install calls return err.
func (h *Hook) FailWith(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

func (h *Hook) Install(sink func(activity.Event)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.installs++
	if h.err != nil {
		return h.err
	}
	h.sink = sink
	return nil
}

func (h *Hook) Uninstall() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uninstalls++
	h.sink = nil
	return nil
}

func (h *Hook) Installs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.installs
}

func (h *Hook) Press()   { h.deliver(activity.PrimaryDown) }
func (h *Hook) Release() { h.deliver(activity.PrimaryUp) }

func (h *Hook) deliver(ev activity.Event) {
	h.mu.Lock()
	sink := h.sink
	h.mu.Unlock()
	if sink != nil {
		sink(ev)
	}
}
