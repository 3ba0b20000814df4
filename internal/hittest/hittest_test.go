package hittest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

const (
	ownerHWND   uintptr = 0x100
	contentHWND uintptr = 0x200
)

type sentMessage struct {
	hwnd           uintptr
	msg            uint32
	wParam, lParam uintptr
}

// fakeWindow puts the client origin of every window at screen (1000, 500).
type fakeWindow struct {
	styles   map[uintptr]uintptr
	client   win32.Rect
	dpi      uint32
	released int
	sent     []sentMessage

	procs   map[uintptr]uintptr
	called  []uintptr
	content uintptr
	// onSwap runs inside SetWindowProc, before the new procedure is returned.
	onSwap func(hwnd uintptr)
}

func newFakeWindow(dpi uint32) *fakeWindow {
	return &fakeWindow{
		styles: map[uintptr]uintptr{ownerHWND: 0},
		client: win32.Rect{Right: 360, Bottom: 220},
		dpi:    dpi,
		procs:  map[uintptr]uintptr{ownerHWND: 0xA1, contentHWND: 0xA2},
	}
}

func (f *fakeWindow) IsWindow(hwnd uintptr) bool      { _, ok := f.procs[hwnd]; return ok }
func (f *fakeWindow) WindowProc(hwnd uintptr) uintptr { return f.procs[hwnd] }
func (f *fakeWindow) ContentWindow(uintptr) uintptr   { return f.content }

func (f *fakeWindow) SetWindowProc(hwnd, proc uintptr) (uintptr, error) {
	old := f.procs[hwnd]
	f.procs[hwnd] = proc
	if f.onSwap != nil {
		f.onSwap(hwnd)
	}
	return old, nil
}

func (f *fakeWindow) CallWindowProc(proc, _ uintptr, _ uint32, _, _ uintptr) uintptr {
	f.called = append(f.called, proc)
	return win32.HTCLIENT
}

func (f *fakeWindow) Style(hwnd uintptr) uintptr { return f.styles[hwnd] }

func (f *fakeWindow) ScreenToClient(_ uintptr, p win32.Point) (win32.Point, bool) {
	return win32.Point{X: p.X - 1000, Y: p.Y - 500}, true
}

func (f *fakeWindow) ClientToScreen(_ uintptr, p win32.Point) (win32.Point, bool) {
	return win32.Point{X: p.X + 1000, Y: p.Y + 500}, true
}

func (f *fakeWindow) ClientRect(uintptr) (win32.Rect, bool) { return f.client, true }
func (f *fakeWindow) DPI(uintptr) uint32                    { return f.dpi }
func (f *fakeWindow) ReleaseCapture()                       { f.released++ }

func (f *fakeWindow) SendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	f.sent = append(f.sent, sentMessage{hwnd, msg, wParam, lParam})
	return 0
}

type lockFlag bool

func (l *lockFlag) IsLocked() bool { return bool(*l) }

func nchittest(hwnd uintptr, clientX, clientY int32) Message {
	return Message{HWnd: hwnd, Msg: win32.WM_NCHITTEST, LParam: win32.MakeLParam(clientX+1000, clientY+500)}
}

func lbuttondown(clientX, clientY int32) Message {
	return Message{HWnd: contentHWND, Msg: win32.WM_LBUTTONDOWN, LParam: win32.MakeLParam(clientX, clientY)}
}

func contentChain(t *testing.T, win *fakeWindow, lock LockState, strategy Strategy) (*Chain, *[]Message) {
	t.Helper()
	var forwarded []Message
	r := NewRouter(win, lock, Config{Strategy: strategy})
	return &Chain{
		Links: r.ContentLinks(ownerHWND),
		Next: func(m Message) uintptr {
			forwarded = append(forwarded, m)
			return win32.HTCLIENT
		},
	}, &forwarded
}

func TestScaling(t *testing.T) {
	assert.Equal(t, 1.0, ScaleFactor(0))
	assert.Equal(t, 1.0, ScaleFactor(96))
	assert.Equal(t, 1.5, ScaleFactor(144))
	assert.Equal(t, int32(120), ScaleToDPI(80, 1.5))
	assert.Equal(t, int32(80), ScaleToDPI(80, 1.0))
	assert.Equal(t, int32(1), ScaleToDPI(0, 2))
	assert.Equal(t, int32(1), ScaleToDPI(1, 0.5))
}

func TestSafeZoneRect(t *testing.T) {
	client := win32.Rect{Right: 360, Bottom: 220}

	pin := PinZone(80).Rect(client, ScaleFactor(144))
	assert.Equal(t, win32.Rect{Left: 240, Top: 0, Right: 360, Bottom: 120}, pin)
	assert.Equal(t, int32(120), pin.Width())

	lock := LockZone(80).Rect(client, 1)
	assert.Equal(t, win32.Rect{Left: 280, Top: 140, Right: 360, Bottom: 220}, lock)

	tl := SafeZone{Width: 10, Height: 20, Corner: TopLeft}.Rect(client, 1)
	assert.Equal(t, win32.Rect{Left: 0, Top: 0, Right: 10, Bottom: 20}, tl)
	bl := SafeZone{Width: 10, Height: 20, Corner: BottomLeft}.Rect(client, 2)
	assert.Equal(t, win32.Rect{Left: 0, Top: 180, Right: 20, Bottom: 220}, bl)

	assert.True(t, contains(pin, win32.Point{X: 240, Y: 120}))
	assert.False(t, contains(pin, win32.Point{X: 239, Y: 0}))
}

func TestHitTestStrategy(t *testing.T) {
	win := newFakeWindow(144)
	chain, forwarded := contentChain(t, win, nil, StrategyHitTest)

	assert.Equal(t, win32.HTTRANSPARENT, chain.Dispatch(nchittest(contentHWND, 100, 100)))
	assert.Empty(t, *forwarded)

	// Inside the 120px pin zone at 150% scale.
	assert.Equal(t, win32.HTCLIENT, chain.Dispatch(nchittest(contentHWND, 245, 10)))
	// Inside the lock zone.
	assert.Equal(t, win32.HTCLIENT, chain.Dispatch(nchittest(contentHWND, 300, 200)))
	// Just outside the scaled pin zone.
	assert.Equal(t, win32.HTTRANSPARENT, chain.Dispatch(nchittest(contentHWND, 239, 10)))
	assert.Len(t, *forwarded, 2)
}

func TestHitTestGate(t *testing.T) {
	win := newFakeWindow(96)
	locked := lockFlag(false)
	chain, forwarded := contentChain(t, win, &locked, StrategyHitTest)

	win.styles[ownerHWND] = uintptr(win32.WS_CAPTION)
	assert.Equal(t, win32.HTCLIENT, chain.Dispatch(nchittest(contentHWND, 10, 100)))

	win.styles[ownerHWND] = 0
	locked = true
	assert.Equal(t, win32.HTCLIENT, chain.Dispatch(nchittest(contentHWND, 10, 100)))

	locked = false
	assert.Equal(t, win32.HTTRANSPARENT, chain.Dispatch(nchittest(contentHWND, 10, 100)))
	assert.Len(t, *forwarded, 2)
}

func TestOtherMessagesForwardUnchanged(t *testing.T) {
	for _, strategy := range []Strategy{StrategyHitTest, StrategyDrag} {
		win := newFakeWindow(96)
		chain, forwarded := contentChain(t, win, nil, strategy)
		m := Message{HWnd: contentHWND, Msg: win32.WM_LBUTTONUP, WParam: 7, LParam: 9}

		chain.Dispatch(m)
		require.Len(t, *forwarded, 1, string(strategy))
		assert.Equal(t, m, (*forwarded)[0])
	}
}

func TestDragStrategy(t *testing.T) {
	win := newFakeWindow(96)
	chain, forwarded := contentChain(t, win, nil, StrategyDrag)

	assert.Equal(t, uintptr(0), chain.Dispatch(lbuttondown(50, 60)))
	assert.Empty(t, *forwarded)
	assert.Equal(t, 1, win.released)
	require.Len(t, win.sent, 1)
	sent := win.sent[0]
	assert.Equal(t, ownerHWND, sent.hwnd)
	assert.Equal(t, win32.WM_NCLBUTTONDOWN, sent.msg)
	assert.Equal(t, win32.HTCAPTION, sent.wParam)
	assert.Equal(t, int32(1050), win32.GetXLParam(sent.lParam))
	assert.Equal(t, int32(560), win32.GetYLParam(sent.lParam))
}

func TestDragStrategySparesPinZone(t *testing.T) {
	win := newFakeWindow(96)
	chain, forwarded := contentChain(t, win, nil, StrategyDrag)

	chain.Dispatch(lbuttondown(300, 20))
	assert.Len(t, *forwarded, 1)
	assert.Empty(t, win.sent)

	// Only the pin zone is protected in drag mode.
	chain.Dispatch(lbuttondown(300, 200))
	assert.Len(t, win.sent, 1)

	win.styles[ownerHWND] = uintptr(win32.WS_CAPTION | win32.WS_THICKFRAME)
	chain.Dispatch(lbuttondown(10, 10))
	assert.Len(t, win.sent, 1)
	assert.Len(t, *forwarded, 2)
}

func TestCaptionLink(t *testing.T) {
	win := newFakeWindow(96)
	r := NewRouter(win, nil, DefaultConfig())
	chain := &Chain{Links: r.OwnerLinks(ownerHWND), Next: func(Message) uintptr { return win32.HTCLIENT }}

	assert.Equal(t, win32.HTCAPTION, chain.Dispatch(nchittest(ownerHWND, 20, 20)))
	assert.Equal(t, win32.HTCLIENT, chain.Dispatch(nchittest(ownerHWND, 350, 10)))
	// Outside the client rect the original procedure decides.
	assert.Equal(t, win32.HTCLIENT, chain.Dispatch(nchittest(ownerHWND, 400, 10)))

	win.styles[ownerHWND] = uintptr(win32.WS_CAPTION)
	assert.Equal(t, win32.HTCLIENT, chain.Dispatch(nchittest(ownerHWND, 20, 20)))
}

func TestChainWithoutNext(t *testing.T) {
	c := &Chain{Links: []Link{LinkFunc(func(Message) (uintptr, bool) { return 0, false })}}
	assert.Equal(t, uintptr(0), c.Dispatch(Message{Msg: win32.WM_DESTROY}))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyHitTest, s)
	s, err = ParseStrategy(" Drag ")
	require.NoError(t, err)
	assert.Equal(t, StrategyDrag, s)
	_, err = ParseStrategy("swipe")
	assert.Error(t, err)
}

func TestRouterDefaults(t *testing.T) {
	r := NewRouter(newFakeWindow(96), nil, Config{})
	assert.Equal(t, DefaultConfig(), r.Config())
}

func TestSubclassRegistry(t *testing.T) {
	sc := &subclass{hwnd: 0x777}
	subclasses.Store(uintptr(0x777), sc)
	defer subclasses.Delete(uintptr(0x777))

	r := NewRouter(newFakeWindow(96), nil, Config{})
	assert.True(t, r.Attached(0x777))
	assert.False(t, r.Attached(0x778))

	got, ok := lookup(0x777)
	require.True(t, ok)
	assert.Same(t, sc, got)
}

func TestAttachRoutesOwnerAndContent(t *testing.T) {
	win := newFakeWindow(96)
	r := NewRouter(win, nil, DefaultConfig())
	require.NoError(t, r.Attach(ownerHWND, contentHWND))
	defer func() { require.NoError(t, r.Detach(ownerHWND, contentHWND)) }()

	assert.True(t, r.Attached(ownerHWND))
	assert.True(t, r.Attached(contentHWND))
	assert.Equal(t, procAddress(), win.procs[ownerHWND])
	assert.Equal(t, procAddress(), win.procs[contentHWND])

	got, err := route(contentHWND, win32.WM_NCHITTEST, 0, win32.MakeLParam(1000+100, 500+100))
	require.NoError(t, err)
	assert.Equal(t, win32.HTTRANSPARENT, got)

	got, err = route(ownerHWND, win32.WM_NCHITTEST, 0, win32.MakeLParam(1000+100, 500+100))
	require.NoError(t, err)
	assert.Equal(t, win32.HTCAPTION, got)
}

func TestAttachRecordsPreviousProcBeforeSwap(t *testing.T) {
	win := newFakeWindow(96)
	var during uintptr
	win.onSwap = func(hwnd uintptr) {
		// A message delivered while the procedure is being swapped.
		_, err := route(hwnd, win32.WM_DESTROY, 0, 0)
		require.NoError(t, err)
		during = win.called[len(win.called)-1]
	}
	r := NewRouter(win, nil, DefaultConfig())
	require.NoError(t, r.Attach(ownerHWND, 0))
	defer func() { require.NoError(t, r.Detach(ownerHWND, 0)) }()

	assert.Equal(t, uintptr(0xA1), during)
	assert.False(t, r.Attached(contentHWND))
}

func TestDetachRestoresProcs(t *testing.T) {
	win := newFakeWindow(96)
	r := NewRouter(win, nil, DefaultConfig())
	require.NoError(t, r.Attach(ownerHWND, contentHWND))
	require.NoError(t, r.Detach(ownerHWND, contentHWND))

	assert.Equal(t, uintptr(0xA1), win.procs[ownerHWND])
	assert.Equal(t, uintptr(0xA2), win.procs[contentHWND])
	assert.False(t, r.Attached(ownerHWND))
	assert.False(t, r.Attached(contentHWND))
}

func TestNCDestroyRestoresProc(t *testing.T) {
	win := newFakeWindow(96)
	r := NewRouter(win, nil, DefaultConfig())
	require.NoError(t, r.Attach(ownerHWND, 0))

	_, err := route(ownerHWND, win32.WM_NCDESTROY, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uintptr(0xA1), win.procs[ownerHWND])
	assert.Equal(t, []uintptr{0xA1}, win.called)
	assert.False(t, r.Attached(ownerHWND))

	_, err = route(ownerHWND, win32.WM_DESTROY, 0, 0)
	assert.ErrorIs(t, err, errNotRouted)
}

func TestAttachInvalidContent(t *testing.T) {
	win := newFakeWindow(96)
	r := NewRouter(win, nil, DefaultConfig())
	err := r.Attach(ownerHWND, 0x999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subclass content")
	// The owner stays routed so caption drags still work.
	assert.True(t, r.Attached(ownerHWND))
	require.NoError(t, r.Detach(ownerHWND, 0))
}
