package foreground

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

type fakeSystem struct {
	hwnd     uintptr
	pid      uint32
	openErr  error
	path     string
	pathErr  error
	title    string
	titleErr error

	opened []uint32
	closed []uintptr
}

func (f *fakeSystem) ForegroundWindow() uintptr { return f.hwnd }

func (f *fakeSystem) WindowProcessID(uintptr) uint32 { return f.pid }

func (f *fakeSystem) OpenProcess(pid uint32) (uintptr, error) {
	f.opened = append(f.opened, pid)
	if f.openErr != nil {
		return 0, f.openErr
	}
	return 0x500, nil
}

func (f *fakeSystem) ImagePath(_ uintptr, buf []uint16) (int, error) {
	if f.pathErr != nil {
		buf[0] = 'X'
		return 0, f.pathErr
	}
	return win32.CopyUTF16(buf, f.path), nil
}

func (f *fakeSystem) CloseProcess(h uintptr) { f.closed = append(f.closed, h) }

func (f *fakeSystem) WindowText(_ uintptr, buf []uint16) (int, error) {
	if f.titleErr != nil {
		return 0, f.titleErr
	}
	return win32.CopyUTF16(buf, f.title), nil
}

func fixedNow() uint64 { return 1_700_000_000_123 }

func TestCaptureHappyPath(t *testing.T) {
	sys := &fakeSystem{hwnd: 0x10, pid: 4242, path: `C:\Tools\paint.exe`, title: "Canvas - Paint"}
	p := NewProbe(sys, fixedNow)

	s := p.Capture()
	require.NotNil(t, s)
	assert.False(t, s.Failed())
	assert.Equal(t, ErrorNone, s.ErrorCode)
	assert.Equal(t, uint64(1_700_000_000_123), s.TimestampMillis)
	assert.Equal(t, uint32(4242), s.ProcessID)
	assert.Equal(t, `C:\Tools\paint.exe`, s.Path())
	assert.Equal(t, "Canvas - Paint", s.Title())
	assert.Equal(t, []uintptr{0x500}, sys.closed)
}

func TestCaptureNoForegroundWindow(t *testing.T) {
	sys := &fakeSystem{pid: 99, path: "ignored", title: "ignored"}
	s := NewProbe(sys, fixedNow).Capture()

	assert.Equal(t, int32(1), s.IsError)
	assert.Equal(t, ErrorNoForegroundWindow, s.ErrorCode)
	assert.Zero(t, s.ProcessID)
	assert.Equal(t, uint64(1_700_000_000_123), s.TimestampMillis)
	assert.Empty(t, s.Path())
	assert.Empty(t, s.Title())
	assert.Empty(t, sys.opened)
}

func TestCaptureOpenFailureKeepsPidAndTitle(t *testing.T) {
	sys := &fakeSystem{hwnd: 1, pid: 7, openErr: errors.New("access denied"), title: "Admin Console"}
	s := NewProbe(sys, fixedNow).Capture()

	assert.Equal(t, ErrorOpenProcessFailed, s.ErrorCode)
	assert.Equal(t, uint32(7), s.ProcessID)
	assert.Empty(t, s.Path())
	assert.Equal(t, "Admin Console", s.Title())
	assert.Empty(t, sys.closed)
}

func TestCapturePathFailureClearsPath(t *testing.T) {
	sys := &fakeSystem{hwnd: 1, pid: 7, pathErr: errors.New("partial copy"), title: "Editor"}
	s := NewProbe(sys, fixedNow).Capture()

	assert.Equal(t, ErrorQueryPathFailed, s.ErrorCode)
	assert.Empty(t, s.Path())
	assert.Equal(t, "Editor", s.Title())
	assert.Len(t, sys.closed, 1)
}

func TestCaptureErrorPriority(t *testing.T) {
	cases := []struct {
		name string
		sys  *fakeSystem
		want ErrorCode
	}{
		{"open beats title", &fakeSystem{hwnd: 1, pid: 2, openErr: errors.New("x")}, ErrorOpenProcessFailed},
		{"path beats title", &fakeSystem{hwnd: 1, pid: 2, pathErr: errors.New("x")}, ErrorQueryPathFailed},
		{"empty title", &fakeSystem{hwnd: 1, pid: 2, path: `C:\a.exe`}, ErrorGetWindowTitleFailed},
		{"title error", &fakeSystem{hwnd: 1, pid: 2, path: `C:\a.exe`, titleErr: errors.New("x")}, ErrorGetWindowTitleFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewProbe(tc.sys, fixedNow).Capture()
			assert.Equal(t, int32(1), s.IsError)
			assert.Equal(t, tc.want, s.ErrorCode)
		})
	}
}

func TestCaptureReusesSlot(t *testing.T) {
	sys := &fakeSystem{hwnd: 1, pid: 3, path: `C:\long\path\first.exe`, title: "first"}
	p := NewProbe(sys, fixedNow)

	first := p.Capture()
	sys.hwnd = 0
	second := p.Capture()

	assert.Same(t, first, second)
	assert.Empty(t, second.Path(), "previous capture must not leak into the slot")
	assert.Equal(t, ErrorNoForegroundWindow, second.ErrorCode)
}

func TestErrorCodeErr(t *testing.T) {
	assert.NoError(t, ErrorNone.Err())
	assert.ErrorIs(t, ErrorNoForegroundWindow.Err(), ErrNoForegroundWindow)
	assert.ErrorIs(t, ErrorOpenProcessFailed.Err(), ErrOpenProcessFailed)
	assert.ErrorIs(t, ErrorQueryPathFailed.Err(), ErrQueryPathFailed)
	assert.ErrorIs(t, ErrorGetWindowTitleFailed.Err(), ErrGetWindowTitleFailed)
	assert.Equal(t, "query-path-failed", ErrorQueryPathFailed.String())
}

func TestSnapshotLayout(t *testing.T) {
	var s Snapshot
	assert.Equal(t, uintptr(0), unsafe.Offsetof(s.TimestampMillis))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(s.ProcessID))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(s.IsError))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(s.ErrorCode))
	assert.Equal(t, uintptr(20), unsafe.Offsetof(s.ExePath))
	assert.Equal(t, uintptr(540), unsafe.Offsetof(s.WindowTitle))
	assert.Equal(t, uintptr(1064), unsafe.Sizeof(s))
}
