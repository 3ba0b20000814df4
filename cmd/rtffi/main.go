//go:build windows && cgo

// Command rtffi builds the C ABI of the desktop integration core:
//
//	go build -buildmode=c-shared -o ringotrack.dll ./cmd/rtffi
//
// Every export is safe to call from any thread and never unwinds into the
// caller.
package main

/*
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	uint64_t timestamp;
	uint32_t process_id;
	int32_t  is_error;
	int32_t  error_code;
	uint16_t exe_path[260];
	uint16_t window_title[260];
} rt_foreground_snapshot;

_Static_assert(offsetof(rt_foreground_snapshot, exe_path) == 20, "exe_path offset");
_Static_assert(offsetof(rt_foreground_snapshot, window_title) == 540, "window_title offset");
_Static_assert(sizeof(rt_foreground_snapshot) == 1064, "snapshot size");
*/
import "C"

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/bridge"
	"github.com/ringotypowriter/ringotrack/internal/foreground"
	"github.com/ringotypowriter/ringotrack/internal/logging"
	"github.com/ringotypowriter/ringotrack/internal/policy"
)

// The C ABI carries no context argument, so the library owns one bridge.
var (
	initOnce sync.Once
	core     *bridge.Bridge
	slot     *C.rt_foreground_snapshot
)

func instance() *bridge.Bridge {
	initOnce.Do(func() {
		cfg, err := policy.Load("")
		if err != nil {
			cfg = policy.DefaultConfig()
		}
		log := logging.New(cfg.Logging()).Named("rtffi")
		if err != nil {
			log.Warn("config unreadable, using defaults", zap.Error(err))
		}
		core = bridge.New(cfg, log)
		slot = (*C.rt_foreground_snapshot)(C.calloc(1, C.sizeof_rt_foreground_snapshot))
	})
	return core
}

//export rt_get_foreground_app
func rt_get_foreground_app() *C.rt_foreground_snapshot {
	b := instance()
	s := b.ProbeForeground()
	copySnapshot(slot, s)
	return slot
}

func copySnapshot(dst *C.rt_foreground_snapshot, s *foreground.Snapshot) {
	C.memcpy(unsafe.Pointer(dst), unsafe.Pointer(s), C.sizeof_rt_foreground_snapshot)
}

//export rt_init_stroke_hook
func rt_init_stroke_hook() { instance().InstallActivityHook() }

//export rt_shutdown_stroke_hook
func rt_shutdown_stroke_hook() { instance().UninstallActivityHook() }

//export rt_get_last_left_click_millis
func rt_get_last_left_click_millis() C.uint64_t {
	return C.uint64_t(instance().LastClickTimeMillis())
}

//export rt_is_left_button_down
func rt_is_left_button_down() C.uint32_t {
	return C.uint32_t(instance().IsButtonDown())
}

//export rt_enter_pinned_mode
func rt_enter_pinned_mode() C.int32_t { return C.int32_t(instance().EnterPinnedMode()) }

//export rt_exit_pinned_mode
func rt_exit_pinned_mode() C.int32_t { return C.int32_t(instance().ExitPinnedMode()) }

//export rt_is_pinned
func rt_is_pinned() C.int32_t { return C.int32_t(instance().IsPinned()) }

//export rt_is_locked
func rt_is_locked() C.int32_t { return C.int32_t(instance().IsLocked()) }

//export rt_set_locked
func rt_set_locked(locked C.int32_t) C.int32_t {
	return C.int32_t(instance().SetLocked(int32(locked)))
}

//export rt_set_glass_tint
func rt_set_glass_tint(r, g, b C.uint8_t) C.int32_t {
	return C.int32_t(instance().SetBackdropTint(uint8(r), uint8(g), uint8(b)))
}

//export rt_reset_glass_tint
func rt_reset_glass_tint() C.int32_t { return C.int32_t(instance().ResetBackdropTint()) }

// rt_attach_host hands over the host's top-level window and, optionally, its
// content child so pinned mode and drag routing target them.
//
//export rt_attach_host
func rt_attach_host(owner, content C.uintptr_t) C.int32_t {
	return C.int32_t(instance().AttachHost(uintptr(owner), uintptr(content)))
}

//export rt_shutdown
func rt_shutdown() {
	if err := instance().Close(); err != nil {
		instance().Log().Warn("shutdown incomplete", zap.Error(err))
	}
	_ = instance().Log().Sync()
}

func main() {}
