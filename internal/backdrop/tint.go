package backdrop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultAlpha keeps the tint readable without hiding the blur.
const DefaultAlpha uint8 = 0x99

type Tint struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Tint { return Tint{R: r, G: g, B: b, A: DefaultAlpha} }

// ABGR packs the tint the way the accent policy reads its gradient color.
func (t Tint) ABGR() uint32 {
	return uint32(t.A)<<24 | uint32(t.B)<<16 | uint32(t.G)<<8 | uint32(t.R)
}

func (t Tint) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", t.R, t.G, t.B, t.A)
}

// ParseTint reads #rgb, #rrggbb or #rrggbbaa. Without an alpha component
// alpha is used.
func ParseTint(s string, alpha uint8) (Tint, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Tint{}, fmt.Errorf("parse tint alpha %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Tint{}, fmt.Errorf("parse tint %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Tint{R: r, G: g, B: b, A: alpha}, nil
}
