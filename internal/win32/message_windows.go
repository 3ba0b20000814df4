//go:build windows

package win32

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procSetWinEventHook     = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent      = user32.NewProc("UnhookWinEvent")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPeekMessageW        = user32.NewProc("PeekMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procRegisterHotKey      = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey    = user32.NewProc("UnregisterHotKey")
)

func SetWindowsHookEx(idHook int32, fn uintptr, mod windows.Handle, threadID uint32) (uintptr, error) {
	r1, _, e1 := procSetWindowsHookExW.Call(uintptr(idHook), fn, uintptr(mod), uintptr(threadID))
	if r1 == 0 {
		return 0, e1
	}
	return r1, nil
}

func UnhookWindowsHookEx(hhk uintptr) error {
	r1, _, e1 := procUnhookWindowsHookEx.Call(hhk)
	if r1 == 0 {
		return e1
	}
	return nil
}

func CallNextHookEx(nCode, wParam, lParam uintptr) uintptr {
	r1, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return r1
}

func SetWinEventHook(eventMin, eventMax uint32, fn uintptr, flags uint32) (uintptr, error) {
	r1, _, e1 := procSetWinEventHook.Call(
		uintptr(eventMin),
		uintptr(eventMax),
		0,
		fn,
		0,
		0,
		uintptr(flags),
	)
	if r1 == 0 {
		return 0, e1
	}
	return r1, nil
}

func UnhookWinEvent(h uintptr) error {
	r1, _, e1 := procUnhookWinEvent.Call(h)
	if r1 == 0 {
		return e1
	}
	return nil
}

// GetMessage blocks for the next message of the calling thread. It reports
// false on WM_QUIT.
func GetMessage(msg *Msg) (bool, error) {
	r1, _, e1 := procGetMessageW.Call(uintptr(unsafe.Pointer(msg)), 0, 0, 0)
	if int32(r1) == -1 {
		return false, e1
	}
	return r1 != 0, nil
}

// EnsureMessageQueue forces creation of the calling thread's message queue so
// PostThreadMessage can target it before the first GetMessage.
func EnsureMessageQueue() {
	var msg Msg
	_, _, _ = procPeekMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0, uintptr(PM_NOREMOVE))
}

func TranslateMessage(msg *Msg) {
	_, _, _ = procTranslateMessage.Call(uintptr(unsafe.Pointer(msg)))
}

func DispatchMessage(msg *Msg) {
	_, _, _ = procDispatchMessageW.Call(uintptr(unsafe.Pointer(msg)))
}

func PostThreadMessage(threadID uint32, msg uint32, wParam, lParam uintptr) error {
	r1, _, e1 := procPostThreadMessageW.Call(uintptr(threadID), uintptr(msg), wParam, lParam)
	if r1 == 0 {
		return e1
	}
	return nil
}

// PumpMessages runs a GetMessage loop on the calling thread until WM_QUIT.
func PumpMessages() {
	var msg Msg
	for {
		ok, err := GetMessage(&msg)
		if !ok || err != nil {
			return
		}
		TranslateMessage(&msg)
		DispatchMessage(&msg)
	}
}

func RegisterHotKey(id int32, modifiers, vk uint32) error {
	r1, _, e1 := procRegisterHotKey.Call(0, uintptr(id), uintptr(modifiers), uintptr(vk))
	if r1 == 0 {
		return e1
	}
	return nil
}

func UnregisterHotKey(id int32) {
	_, _, _ = procUnregisterHotKey.Call(0, uintptr(id))
}
