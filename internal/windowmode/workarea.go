package windowmode

import (
	"fmt"
	"strings"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

// Anchor is the work-area corner the pinned overlay sticks to.
type Anchor string

const (
	AnchorTopRight    Anchor = "top-right"
	AnchorTopLeft     Anchor = "top-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorBottomLeft  Anchor = "bottom-left"
)

func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(strings.ToLower(strings.TrimSpace(s))); a {
	case AnchorTopRight, AnchorTopLeft, AnchorBottomRight, AnchorBottomLeft:
		return a, nil
	case "":
		return AnchorTopRight, nil
	}
	return "", fmt.Errorf("unknown anchor %q", s)
}

// DefaultWorkArea is used when no OS source can describe the screen. It
// matches the host's default window size.
var DefaultWorkArea = win32.Rect{Left: 0, Top: 0, Right: 1280, Bottom: 720}

type workAreaSource string

const (
	sourceSystem  workAreaSource = "system"
	sourceMonitor workAreaSource = "monitor"
	sourceWindow  workAreaSource = "window"
	sourceDefault workAreaSource = "default"
)

// resolveWorkArea walks the probe chain in order: primary work area, work
// area of the nearest monitor, the window's own rectangle, the default.
func resolveWorkArea(w Windows, hwnd uintptr) (win32.Rect, workAreaSource) {
	if r, ok := w.SystemWorkArea(); ok {
		return r, sourceSystem
	}
	if r, ok := w.MonitorWorkArea(hwnd); ok {
		return r, sourceMonitor
	}
	if r, ok := w.WindowRect(hwnd); ok {
		return r, sourceWindow
	}
	return DefaultWorkArea, sourceDefault
}

// Destination places a width x height box in the anchor corner of work,
// inset by margin on both edges.
func Destination(work win32.Rect, opts Options) win32.Rect {
	x := work.Right - opts.Width - opts.Margin
	y := work.Top + opts.Margin
	switch opts.Anchor {
	case AnchorTopLeft:
		x = work.Left + opts.Margin
	case AnchorBottomRight:
		y = work.Bottom - opts.Height - opts.Margin
	case AnchorBottomLeft:
		x = work.Left + opts.Margin
		y = work.Bottom - opts.Height - opts.Margin
	}
	return win32.Rect{Left: x, Top: y, Right: x + opts.Width, Bottom: y + opts.Height}
}
