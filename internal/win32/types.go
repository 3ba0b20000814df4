// Package win32 holds the Win32 structures, constants and bindings shared by
// the window and input components. Types and helpers in this file compile on
// every platform so component logic can be tested anywhere; the bindings
// themselves live in the _windows.go files.
package win32

import "errors"

// ErrNotSupported is returned by every binding on platforms without Win32.
var ErrNotSupported = errors.New("not supported")

// MaxPath is the capacity, in UTF-16 units, of the fixed path and title buffers.
const MaxPath = 260

type Rect struct {
	Left, Top, Right, Bottom int32
}

func (r Rect) Width() int32  { return r.Right - r.Left }
func (r Rect) Height() int32 { return r.Bottom - r.Top }

func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// PickDPI prefers the monitor's effective DPI and falls back to the window's
// own report when the monitor query is unavailable.
func PickDPI(monitor, window uint32) uint32 {
	if monitor != 0 {
		return monitor
	}
	return window
}

type Point struct {
	X, Y int32
}

type WindowPlacement struct {
	Length           uint32
	Flags            uint32
	ShowCmd          uint32
	PtMinPosition    Point
	PtMaxPosition    Point
	RcNormalPosition Rect
}

type MonitorInfo struct {
	CbSize    uint32
	RcMonitor Rect
	RcWork    Rect
	DwFlags   uint32
}

type Msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      Point
}

const (
	GWLP_WNDPROC int32 = -4
	GWL_STYLE    int32 = -16
	GWL_EXSTYLE  int32 = -20
)

const (
	WS_CAPTION     uint32 = 0x00C00000
	WS_THICKFRAME  uint32 = 0x00040000
	WS_MINIMIZEBOX uint32 = 0x00020000
	WS_MAXIMIZEBOX uint32 = 0x00010000
)

var (
	HWND_TOPMOST   = ^uintptr(0) // (HWND)-1
	HWND_NOTOPMOST = ^uintptr(1) // (HWND)-2
)

const (
	SWP_NOSIZE       uint32 = 0x0001
	SWP_NOMOVE       uint32 = 0x0002
	SWP_NOZORDER     uint32 = 0x0004
	SWP_NOACTIVATE   uint32 = 0x0010
	SWP_FRAMECHANGED uint32 = 0x0020
	SWP_SHOWWINDOW   uint32 = 0x0040
)

const (
	WM_DESTROY       uint32 = 0x0002
	WM_QUIT          uint32 = 0x0012
	WM_NCDESTROY     uint32 = 0x0082
	WM_NCHITTEST     uint32 = 0x0084
	WM_NCLBUTTONDOWN uint32 = 0x00A1
	WM_LBUTTONDOWN   uint32 = 0x0201
	WM_LBUTTONUP     uint32 = 0x0202
	WM_HOTKEY        uint32 = 0x0312
)

// Hit-test codes as returned from a window procedure.
var HTTRANSPARENT = ^uintptr(0) // -1

const (
	HTCLIENT  uintptr = 1
	HTCAPTION uintptr = 2
)

const (
	MOD_ALT      uint32 = 0x0001
	MOD_CONTROL  uint32 = 0x0002
	MOD_NOREPEAT uint32 = 0x4000
	VK_P         uint32 = 0x50
)

const (
	WH_MOUSE_LL int32  = 14
	HC_ACTION   int32  = 0
	PM_NOREMOVE uint32 = 0x0000
)

const (
	SPI_GETWORKAREA          = 0x0030
	MONITOR_DEFAULTTONEAREST = 2
	GA_ROOT                  = 2
	USER_DEFAULT_SCREEN_DPI  = 96
)

const (
	DWMWA_WINDOW_CORNER_PREFERENCE uint32 = 33

	DWMWCP_DEFAULT    uint32 = 0
	DWMWCP_DONOTROUND uint32 = 1
	DWMWCP_ROUND      uint32 = 2
	DWMWCP_ROUNDSMALL uint32 = 3
)

const PROCESS_QUERY_LIMITED_INFORMATION = 0x1000

// GetXLParam extracts the signed x coordinate packed into an LPARAM.
func GetXLParam(lParam uintptr) int32 { return int32(int16(lParam & 0xffff)) }

// GetYLParam extracts the signed y coordinate packed into an LPARAM.
func GetYLParam(lParam uintptr) int32 { return int32(int16((lParam >> 16) & 0xffff)) }

// MakeLParam packs two signed 16-bit coordinates into an LPARAM.
func MakeLParam(x, y int32) uintptr {
	return uintptr(uint16(int16(x))) | uintptr(uint16(int16(y)))<<16
}
