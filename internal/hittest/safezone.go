package hittest

import "github.com/ringotypowriter/ringotrack/internal/win32"

// Corner of the client rectangle a SafeZone hangs from.
type Corner int

const (
	TopRight Corner = iota
	BottomRight
	TopLeft
	BottomLeft
)

// SafeZone is a DIP-sized rectangle reserved for controls, kept out of drag
// handling.
type SafeZone struct {
	Width, Height int32
	Corner        Corner
}

// DefaultZoneDIP is the edge of the pin and lock controls.
const DefaultZoneDIP = 80

func PinZone(dip int32) SafeZone  { return SafeZone{Width: dip, Height: dip, Corner: TopRight} }
func LockZone(dip int32) SafeZone { return SafeZone{Width: dip, Height: dip, Corner: BottomRight} }

// ScaleFactor converts a monitor DPI into a DIP-to-pixel ratio. An unknown
// DPI counts as the 96 DPI baseline.
func ScaleFactor(dpi uint32) float64 {
	if dpi == 0 {
		return 1
	}
	return float64(dpi) / win32.USER_DEFAULT_SCREEN_DPI
}

// ScaleToDPI converts DIPs to whole pixels, never below one.
func ScaleToDPI(dip int32, scale float64) int32 {
	px := int32(float64(dip) * scale)
	if px < 1 {
		return 1
	}
	return px
}

// Rect places the zone inside client, in client pixels.
func (z SafeZone) Rect(client win32.Rect, scale float64) win32.Rect {
	w := ScaleToDPI(z.Width, scale)
	h := ScaleToDPI(z.Height, scale)
	var r win32.Rect
	switch z.Corner {
	case TopRight, BottomRight:
		r.Right = client.Right
		r.Left = client.Right - w
	default:
		r.Left = client.Left
		r.Right = client.Left + w
	}
	switch z.Corner {
	case TopRight, TopLeft:
		r.Top = client.Top
		r.Bottom = client.Top + h
	default:
		r.Bottom = client.Bottom
		r.Top = client.Bottom - h
	}
	return r
}

// contains treats every edge as inside.
func contains(r win32.Rect, p win32.Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}
