// Package events fans OS notifications that should trigger a fresh
// foreground probe into one buffered channel.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type EventType string

const (
	EventForegroundChanged EventType = "foreground_changed"
	EventTitleChanged      EventType = "title_changed"
	EventProcessExited     EventType = "process_exited"
)

type SystemEvent struct {
	Type      EventType      `json:"type"`
	Timestamp int64          `json:"timestampUTC"`
	PID       int            `json:"pid"`
	HWND      uintptr        `json:"hwnd"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Source produces events until stop is closed. Run blocks; an error
// returned before stop closes means the source never came up.
type Source interface {
	Name() string
	Run(emit func(SystemEvent), stop <-chan struct{}) error
}

type Bus struct {
	ch      chan SystemEvent
	stopCh  chan struct{}
	once    sync.Once
	dropped atomic.Uint64

	log *zap.Logger
	wg  sync.WaitGroup
}

func NewBus(buffer int, log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		ch:     make(chan SystemEvent, buffer),
		stopCh: make(chan struct{}),
		log:    log,
	}
}

func (b *Bus) Events() <-chan SystemEvent { return b.ch }

// Emit never blocks; events beyond the buffer are counted and dropped.
func (b *Bus) Emit(ev SystemEvent) {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().UTC().UnixMilli()
	}
	select {
	case b.ch <- ev:
	default:
		b.dropped.Add(1)
	}
}

func (b *Bus) Dropped() uint64 { return b.dropped.Load() }

// Start runs every source on its own goroutine. Sources that fail are
// logged and skipped.
func (b *Bus) Start(sources ...Source) {
	for _, src := range sources {
		b.wg.Add(1)
		go func(src Source) {
			defer b.wg.Done()
			if err := src.Run(b.Emit, b.stopCh); err != nil {
				b.log.Warn("event source unavailable", zap.String("source", src.Name()), zap.Error(err))
			}
		}(src)
	}
}

// StartSystemSources starts the platform's default sources.
func (b *Bus) StartSystemSources() {
	b.Start(SystemSources(b.log)...)
}

// Stop signals every source and waits for them to return.
func (b *Bus) Stop() {
	b.once.Do(func() {
		close(b.stopCh)
	})
	b.wg.Wait()
}

func (b *Bus) Done() <-chan struct{} { return b.stopCh }
