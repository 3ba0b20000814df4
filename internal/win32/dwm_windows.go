//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	procDwmSetWindowAttribute         = dwmapi.NewProc("DwmSetWindowAttribute")
	procSetWindowCompositionAttribute = user32.NewProc("SetWindowCompositionAttribute")
)

// SetCornerPreference sets DWMWA_WINDOW_CORNER_PREFERENCE. Systems older than
// Windows 11 reject the attribute.
func SetCornerPreference(hwnd uintptr, pref uint32) error {
	if err := procDwmSetWindowAttribute.Find(); err != nil {
		return err
	}
	hr, _, _ := procDwmSetWindowAttribute.Call(
		hwnd,
		uintptr(DWMWA_WINDOW_CORNER_PREFERENCE),
		uintptr(unsafe.Pointer(&pref)),
		unsafe.Sizeof(pref),
	)
	if hr != 0 {
		return fmt.Errorf("DwmSetWindowAttribute: hresult 0x%08x", uint32(hr))
	}
	return nil
}

const wcaAccentPolicy = 19

type windowCompositionAttribData struct {
	Attribute  uint32
	Data       unsafe.Pointer
	SizeOfData uintptr
}

// CompositionSupported reports whether the undocumented
// SetWindowCompositionAttribute entry point exists.
func CompositionSupported() bool {
	return procSetWindowCompositionAttribute.Find() == nil
}

// SetWindowCompositionAttribute applies a WCA_ACCENT_POLICY payload. policy
// must point at a struct with the ACCENT_POLICY layout.
func SetWindowCompositionAttribute(hwnd uintptr, policy unsafe.Pointer, size uintptr) error {
	if err := procSetWindowCompositionAttribute.Find(); err != nil {
		return err
	}
	data := windowCompositionAttribData{
		Attribute:  wcaAccentPolicy,
		Data:       policy,
		SizeOfData: size,
	}
	r1, _, e1 := procSetWindowCompositionAttribute.Call(hwnd, uintptr(unsafe.Pointer(&data)))
	if r1 == 0 {
		return e1
	}
	return nil
}
