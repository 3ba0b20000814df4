package backdrop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompositor struct {
	supported bool
	windows   map[string]uintptr
	alive     map[uintptr]bool
	reject    map[AccentState]bool

	finds   int
	applied []AccentPolicy
}

func newFakeCompositor() *fakeCompositor {
	return &fakeCompositor{
		supported: true,
		windows:   map[string]uintptr{DefaultHostClass: 0x42},
		alive:     map[uintptr]bool{0x42: true},
		reject:    map[AccentState]bool{},
	}
}

func (f *fakeCompositor) Supported() bool { return f.supported }

func (f *fakeCompositor) FindWindow(class string) uintptr {
	f.finds++
	return f.windows[class]
}

func (f *fakeCompositor) IsWindow(hwnd uintptr) bool { return f.alive[hwnd] }

func (f *fakeCompositor) SetAccent(_ uintptr, p AccentPolicy) error {
	if f.reject[p.State] {
		return errors.New("rejected")
	}
	f.applied = append(f.applied, p)
	return nil
}

func TestTintABGR(t *testing.T) {
	tint := Tint{R: 0x11, G: 0x22, B: 0x33, A: 0x99}
	assert.Equal(t, uint32(0x99332211), tint.ABGR())
	assert.Equal(t, DefaultAlpha, RGB(1, 2, 3).A)
}

func TestParseTint(t *testing.T) {
	tint, err := ParseTint("#ff8000", 0x99)
	require.NoError(t, err)
	assert.Equal(t, Tint{R: 0xff, G: 0x80, B: 0x00, A: 0x99}, tint)

	tint, err = ParseTint("336699c0", 0x99)
	require.NoError(t, err)
	assert.Equal(t, Tint{R: 0x33, G: 0x66, B: 0x99, A: 0xc0}, tint)

	tint, err = ParseTint("#fff", 0x10)
	require.NoError(t, err)
	assert.Equal(t, Tint{R: 0xff, G: 0xff, B: 0xff, A: 0x10}, tint)

	_, err = ParseTint("not-a-color", 0)
	assert.Error(t, err)
	_, err = ParseTint("#336699zz", 0)
	assert.Error(t, err)
}

func TestApplyPrefersAcrylic(t *testing.T) {
	comp := newFakeCompositor()
	c := New(comp, "", nil)

	require.NoError(t, c.Apply(RGB(0x10, 0x20, 0x30)))
	require.Len(t, comp.applied, 1)
	assert.Equal(t, AccentAcrylicBlurBehind, comp.applied[0].State)
	assert.Equal(t, int32(2), comp.applied[0].Flags)
	assert.Equal(t, uint32(0x99302010), comp.applied[0].GradientColor)
}

func TestApplyFallsBackToBlur(t *testing.T) {
	comp := newFakeCompositor()
	comp.reject[AccentAcrylicBlurBehind] = true
	c := New(comp, "", nil)

	require.NoError(t, c.Apply(RGB(1, 2, 3)))
	require.Len(t, comp.applied, 1)
	assert.Equal(t, AccentBlurBehind, comp.applied[0].State)
}

func TestApplyFailures(t *testing.T) {
	comp := newFakeCompositor()
	comp.reject[AccentAcrylicBlurBehind] = true
	comp.reject[AccentBlurBehind] = true
	assert.ErrorIs(t, New(comp, "", nil).Apply(RGB(1, 2, 3)), ErrCompositionRejected)

	comp = newFakeCompositor()
	comp.supported = false
	assert.ErrorIs(t, New(comp, "", nil).Apply(RGB(1, 2, 3)), ErrNoCompositionSupport)

	comp = newFakeCompositor()
	assert.ErrorIs(t, New(comp, "OtherClass", nil).Apply(RGB(1, 2, 3)), ErrLocateWindow)
	assert.ErrorIs(t, New(comp, "OtherClass", nil).Reset(), ErrLocateWindow)
}

func TestResetDisablesAccent(t *testing.T) {
	comp := newFakeCompositor()
	c := New(comp, "", nil)

	require.NoError(t, c.Reset())
	require.Len(t, comp.applied, 1)
	assert.Equal(t, AccentPolicy{State: AccentDisabled}, comp.applied[0])
}

func TestHostHandleIsRevalidated(t *testing.T) {
	comp := newFakeCompositor()
	c := New(comp, "", nil)

	assert.Equal(t, uintptr(0x42), c.Host())
	assert.Equal(t, uintptr(0x42), c.Host())
	assert.Equal(t, 1, comp.finds)

	comp.alive[0x42] = false
	comp.windows[DefaultHostClass] = 0x43
	comp.alive[0x43] = true
	assert.Equal(t, uintptr(0x43), c.Host())
	assert.Equal(t, 2, comp.finds)
}
