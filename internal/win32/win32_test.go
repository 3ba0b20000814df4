package win32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLParamRoundTrip(t *testing.T) {
	cases := []Point{{0, 0}, {120, 45}, {-5, 300}, {1919, -1}, {-32768, 32767}}
	for _, p := range cases {
		l := MakeLParam(p.X, p.Y)
		assert.Equal(t, p.X, GetXLParam(l), "x of %v", p)
		assert.Equal(t, p.Y, GetYLParam(l), "y of %v", p)
	}
}

func TestRectDimensions(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 370, Bottom: 240}
	assert.Equal(t, int32(360), r.Width())
	assert.Equal(t, int32(220), r.Height())
	assert.False(t, r.Empty())
	assert.True(t, Rect{}.Empty())
}

func TestPickDPIPrefersMonitor(t *testing.T) {
	// A DPI-unaware thread sees 96 from the window while the monitor runs at 144.
	assert.Equal(t, uint32(144), PickDPI(144, 96))
	assert.Equal(t, uint32(120), PickDPI(0, 120))
	assert.Equal(t, uint32(0), PickDPI(0, 0))
}

func TestCopyUTF16(t *testing.T) {
	buf := make([]uint16, 8)
	n := CopyUTF16(buf, "notepad")
	assert.Equal(t, 7, n)
	assert.Equal(t, "notepad", UTF16ToString(buf))

	n = CopyUTF16(buf, "C:\\Windows\\explorer.exe")
	assert.Equal(t, 7, n)
	assert.Equal(t, uint16(0), buf[7])
	assert.Equal(t, "C:\\Wind", UTF16ToString(buf))
}

func TestCopyUTF16Surrogates(t *testing.T) {
	buf := make([]uint16, 4)
	n := CopyUTF16(buf, "a😀b")
	assert.Equal(t, 3, n)
	assert.Equal(t, "a😀", UTF16ToString(buf))

	// a pair never gets split at the end of the buffer
	small := make([]uint16, 3)
	n = CopyUTF16(small, "a😀")
	assert.Equal(t, 1, n)
	assert.Equal(t, "a", UTF16ToString(small))
}

func TestUTF16ToStringWithoutTerminator(t *testing.T) {
	assert.Equal(t, "hi", UTF16ToString([]uint16{'h', 'i'}))
	assert.Equal(t, "", UTF16ToString(nil))
}
