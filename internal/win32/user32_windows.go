//go:build windows

package win32

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	k32    = windows.NewLazySystemDLL("kernel32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")

	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetActiveWindow          = user32.NewProc("GetActiveWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowPlacement       = user32.NewProc("GetWindowPlacement")
	procGetWindowLongPtrW        = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW        = user32.NewProc("SetWindowLongPtrW")
	procSetWindowPos             = user32.NewProc("SetWindowPos")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetClientRect            = user32.NewProc("GetClientRect")
	procScreenToClient           = user32.NewProc("ScreenToClient")
	procClientToScreen           = user32.NewProc("ClientToScreen")
	procSystemParametersInfoW    = user32.NewProc("SystemParametersInfoW")
	procMonitorFromWindow        = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW          = user32.NewProc("GetMonitorInfoW")
	procGetDpiForWindow          = user32.NewProc("GetDpiForWindow")
	procGetDpiForMonitor         = shcore.NewProc("GetDpiForMonitor")
	procIsWindow                 = user32.NewProc("IsWindow")
	procFindWindowW              = user32.NewProc("FindWindowW")
	procFindWindowExW            = user32.NewProc("FindWindowExW")
	procGetAncestor              = user32.NewProc("GetAncestor")
	procReleaseCapture           = user32.NewProc("ReleaseCapture")
	procSendMessageW             = user32.NewProc("SendMessageW")
	procCallWindowProcW          = user32.NewProc("CallWindowProcW")
	procDefWindowProcW           = user32.NewProc("DefWindowProcW")
	procGetModuleHandleW         = k32.NewProc("GetModuleHandleW")
	procSetLastError             = k32.NewProc("SetLastError")
)

func ForegroundWindow() uintptr {
	r1, _, _ := procGetForegroundWindow.Call()
	return r1
}

// ActiveWindow returns the active window attached to the calling thread's
// message queue, or 0.
func ActiveWindow() uintptr {
	r1, _, _ := procGetActiveWindow.Call()
	return r1
}

func WindowProcessID(hwnd uintptr) uint32 {
	var pid uint32
	_, _, _ = procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return pid
}

// OpenProcessQuery opens a limited-information handle suitable for image
// path queries.
func OpenProcessQuery(pid uint32) (windows.Handle, error) {
	return windows.OpenProcess(PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
}

// ProcessImagePath writes the full image path of process into buf and
// returns the number of UTF-16 units written.
func ProcessImagePath(process windows.Handle, buf []uint16) (int, error) {
	if len(buf) == 0 {
		return 0, windows.ERROR_INSUFFICIENT_BUFFER
	}
	n := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(process, 0, &buf[0], &n); err != nil {
		buf[0] = 0
		return 0, err
	}
	return int(n), nil
}

// WindowText copies the window title into buf. A zero-length title is not an
// error at this level.
func WindowText(hwnd uintptr, buf []uint16) (int, error) {
	if len(buf) == 0 {
		return 0, windows.ERROR_INSUFFICIENT_BUFFER
	}
	r1, _, e1 := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r1 == 0 {
		buf[0] = 0
		if errno, ok := e1.(windows.Errno); ok && errno != 0 {
			return 0, errno
		}
	}
	return int(r1), nil
}

func GetWindowPlacement(hwnd uintptr) (WindowPlacement, error) {
	var wp WindowPlacement
	wp.Length = uint32(unsafe.Sizeof(wp))
	r1, _, e1 := procGetWindowPlacement.Call(hwnd, uintptr(unsafe.Pointer(&wp)))
	if r1 == 0 {
		return WindowPlacement{}, e1
	}
	return wp, nil
}

func GetWindowLongPtr(hwnd uintptr, index int32) uintptr {
	r1, _, _ := procGetWindowLongPtrW.Call(hwnd, uintptr(index))
	return r1
}

// SetWindowLongPtr returns the previous value. A zero previous value is only
// an error when the thread's last error is set.
func SetWindowLongPtr(hwnd uintptr, index int32, value uintptr) (uintptr, error) {
	_, _, _ = procSetLastError.Call(0)
	r1, _, e1 := procSetWindowLongPtrW.Call(hwnd, uintptr(index), value)
	if r1 == 0 {
		if errno, ok := e1.(windows.Errno); ok && errno != 0 {
			return 0, errno
		}
	}
	return r1, nil
}

func SetWindowPos(hwnd, insertAfter uintptr, x, y, cx, cy int32, flags uint32) error {
	r1, _, e1 := procSetWindowPos.Call(
		hwnd,
		insertAfter,
		uintptr(x),
		uintptr(y),
		uintptr(cx),
		uintptr(cy),
		uintptr(flags),
	)
	if r1 == 0 {
		return e1
	}
	return nil
}

func GetWindowRect(hwnd uintptr) (Rect, bool) {
	var r Rect
	r1, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return r, r1 != 0
}

func GetClientRect(hwnd uintptr) (Rect, bool) {
	var r Rect
	r1, _, _ := procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return r, r1 != 0
}

func ScreenToClient(hwnd uintptr, p Point) (Point, bool) {
	r1, _, _ := procScreenToClient.Call(hwnd, uintptr(unsafe.Pointer(&p)))
	return p, r1 != 0
}

func ClientToScreen(hwnd uintptr, p Point) (Point, bool) {
	r1, _, _ := procClientToScreen.Call(hwnd, uintptr(unsafe.Pointer(&p)))
	return p, r1 != 0
}

// SystemWorkArea is the primary work area, excluding the taskbar.
func SystemWorkArea() (Rect, bool) {
	var r Rect
	r1, _, _ := procSystemParametersInfoW.Call(SPI_GETWORKAREA, 0, uintptr(unsafe.Pointer(&r)), 0)
	return r, r1 != 0
}

// MonitorWorkArea is the work area of the monitor nearest to hwnd.
func MonitorWorkArea(hwnd uintptr) (Rect, bool) {
	hmon, _, _ := procMonitorFromWindow.Call(hwnd, MONITOR_DEFAULTTONEAREST)
	if hmon == 0 {
		return Rect{}, false
	}
	var mi MonitorInfo
	mi.CbSize = uint32(unsafe.Sizeof(mi))
	r1, _, _ := procGetMonitorInfoW.Call(hmon, uintptr(unsafe.Pointer(&mi)))
	if r1 == 0 {
		return Rect{}, false
	}
	return mi.RcWork, true
}

// WindowDPI returns the effective DPI of the monitor hosting hwnd, or 0 when
// neither GetDpiForMonitor nor GetDpiForWindow is available.
func WindowDPI(hwnd uintptr) uint32 {
	var window uint32
	if procGetDpiForWindow.Find() == nil {
		r1, _, _ := procGetDpiForWindow.Call(hwnd)
		window = uint32(r1)
	}
	return PickDPI(monitorDPI(hwnd), window)
}

func monitorDPI(hwnd uintptr) uint32 {
	if procGetDpiForMonitor.Find() != nil {
		return 0
	}
	hmon, _, _ := procMonitorFromWindow.Call(hwnd, MONITOR_DEFAULTTONEAREST)
	if hmon == 0 {
		return 0
	}
	const mdtEffectiveDPI = 0
	var dpiX, dpiY uint32
	hr, _, _ := procGetDpiForMonitor.Call(hmon, mdtEffectiveDPI, uintptr(unsafe.Pointer(&dpiX)), uintptr(unsafe.Pointer(&dpiY)))
	if hr != 0 {
		return 0
	}
	return dpiX
}

func IsWindow(hwnd uintptr) bool {
	if hwnd == 0 {
		return false
	}
	r1, _, _ := procIsWindow.Call(hwnd)
	return r1 != 0
}

// FindWindow looks up a top-level window by class name.
func FindWindow(class string) uintptr {
	cls, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0
	}
	r1, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(cls)), 0)
	return r1
}

// OwnChildWindow returns the first direct child of parent created by this
// process, or 0. Children owned by other processes cannot be subclassed.
func OwnChildWindow(parent uintptr) uintptr {
	self := windows.GetCurrentProcessId()
	var child uintptr
	for {
		r1, _, _ := procFindWindowExW.Call(parent, child, 0, 0)
		if r1 == 0 {
			return 0
		}
		child = r1
		if WindowProcessID(child) == self {
			return child
		}
	}
}

// RootWindow returns the top-level ancestor of hwnd.
func RootWindow(hwnd uintptr) uintptr {
	r1, _, _ := procGetAncestor.Call(hwnd, GA_ROOT)
	return r1
}

func ReleaseCapture() {
	_, _, _ = procReleaseCapture.Call()
}

func SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	r1, _, _ := procSendMessageW.Call(hwnd, uintptr(msg), wParam, lParam)
	return r1
}

func CallWindowProc(prev, hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	r1, _, _ := procCallWindowProcW.Call(prev, hwnd, uintptr(msg), wParam, lParam)
	return r1
}

func DefWindowProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	r1, _, _ := procDefWindowProcW.Call(hwnd, uintptr(msg), wParam, lParam)
	return r1
}

func ModuleHandle() windows.Handle {
	r1, _, _ := procGetModuleHandleW.Call(0)
	return windows.Handle(r1)
}
