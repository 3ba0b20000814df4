package windowmode_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ringotypowriter/ringotrack/internal/fakeos"
	"github.com/ringotypowriter/ringotrack/internal/win32"
	"github.com/ringotypowriter/ringotrack/internal/windowmode"
)

const (
	hostHWND  uintptr = 0x1001
	otherHWND uintptr = 0x2002

	hostStyle   uintptr = 0x14CF0000 // WS_OVERLAPPEDWINDOW | WS_VISIBLE | WS_CLIPCHILDREN
	hostExStyle uintptr = 0x00000100
)

var _ = Describe("Controller", func() {
	var (
		desk     *fakeos.Desktop
		ctrl     *windowmode.Controller
		hostRect win32.Rect
		work     win32.Rect
	)

	BeforeEach(func() {
		hostRect = win32.Rect{Left: 120, Top: 80, Right: 1400, Bottom: 800}
		work = win32.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1040}

		desk = fakeos.NewDesktop()
		desk.AddWindow(hostHWND, fakeos.Window{Rect: hostRect, Style: hostStyle, ExStyle: hostExStyle})
		desk.AddWindow(otherHWND, fakeos.Window{Rect: win32.Rect{Right: 10, Bottom: 10}})
		desk.SetActive(hostHWND)
		desk.SetForeground(otherHWND)
		desk.SetWorkAreas(&work, nil)

		ctrl = windowmode.New(desk, windowmode.DefaultOptions(), nil)
	})

	It("starts normal", func() {
		Expect(ctrl.State()).To(Equal(windowmode.Normal))
		Expect(ctrl.IsPinned()).To(BeFalse())
		_, _, ok := ctrl.Saved()
		Expect(ok).To(BeFalse())
	})

	Describe("Enter", func() {
		It("shrinks the active window into the top-right corner", func() {
			Expect(ctrl.Enter()).To(Succeed())

			w, _ := desk.Window(hostHWND)
			Expect(w.Rect).To(Equal(win32.Rect{Left: 1544, Top: 16, Right: 1904, Bottom: 236}))
			Expect(w.Topmost).To(BeTrue())
			Expect(w.Corner).To(Equal(win32.DWMWCP_ROUNDSMALL))
			Expect(uint32(w.Style) & win32.WS_CAPTION).To(BeZero())
			Expect(uint32(w.Style) & win32.WS_THICKFRAME).To(BeZero())
			Expect(uint32(w.Style) & (win32.WS_MINIMIZEBOX | win32.WS_MAXIMIZEBOX)).To(BeZero())
			Expect(w.ExStyle).To(Equal(hostExStyle))
			Expect(ctrl.IsPinned()).To(BeTrue())
		})

		It("forces a non-client repaint after changing the style", func() {
			Expect(ctrl.Enter()).To(Succeed())
			calls := desk.Calls()
			Expect(calls).To(HaveLen(3))
			Expect(calls[1]).To(HavePrefix("SetWindowLong(-16,"))
			Expect(calls[2]).To(ContainSubstring("0x37"))
		})

		It("is idempotent and keeps the first saved geometry", func() {
			Expect(ctrl.Enter()).To(Succeed())
			first, target, ok := ctrl.Saved()
			Expect(ok).To(BeTrue())
			Expect(target).To(Equal(hostHWND))

			Expect(ctrl.Enter()).To(Succeed())
			second, _, _ := ctrl.Saved()
			Expect(second).To(Equal(first))
			Expect(second.Rect).To(Equal(hostRect))
			Expect(second.Style).To(Equal(hostStyle))
			Expect(desk.Calls()).To(HaveLen(3))
		})

		It("falls back to the foreground window", func() {
			desk.SetActive(0)
			Expect(ctrl.Enter()).To(Succeed())
			_, target, _ := ctrl.Saved()
			Expect(target).To(Equal(otherHWND))
		})

		It("prefers a tracked window", func() {
			ctrl.Track(otherHWND)
			Expect(ctrl.Enter()).To(Succeed())
			_, target, _ := ctrl.Saved()
			Expect(target).To(Equal(otherHWND))
		})

		It("forgets a tracked window once it is destroyed", func() {
			ctrl.Track(otherHWND)
			desk.DestroyWindow(otherHWND)
			Expect(ctrl.Enter()).To(Succeed())
			_, target, _ := ctrl.Saved()
			Expect(target).To(Equal(hostHWND))
			Expect(ctrl.Exit()).To(Succeed())

			desk.AddWindow(otherHWND, fakeos.Window{Rect: win32.Rect{Right: 10, Bottom: 10}})
			Expect(ctrl.Enter()).To(Succeed())
			_, target, _ = ctrl.Saved()
			Expect(target).To(Equal(hostHWND))
		})

		It("fails when no window can be resolved", func() {
			desk.SetActive(0)
			desk.SetForeground(0)
			Expect(ctrl.Enter()).To(MatchError(windowmode.ErrResolveTarget))
			Expect(ctrl.IsPinned()).To(BeFalse())
		})

		It("fails when the placement cannot be read", func() {
			desk.SetActive(0xdead)
			err := ctrl.Enter()
			Expect(errors.Is(err, windowmode.ErrResolveTarget)).To(BeTrue())
			Expect(ctrl.IsPinned()).To(BeFalse())
			Expect(ctrl.Exit()).To(MatchError(windowmode.ErrNoActiveTarget))
		})

		It("still pins when repositioning fails", func() {
			desk.FailSetWindowPos(errors.New("denied"))
			Expect(ctrl.Enter()).To(Succeed())
			Expect(ctrl.IsPinned()).To(BeTrue())
			w, _ := desk.Window(hostHWND)
			Expect(w.Rect).To(Equal(hostRect))
			Expect(uint32(w.Style) & win32.WS_CAPTION).To(BeZero())
		})

		DescribeTable("work area fallback chain",
			func(system, monitor *win32.Rect, window bool, want win32.Rect) {
				desk.SetWorkAreas(system, monitor)
				if !window {
					desk.DestroyWindow(hostHWND)
					desk.AddWindow(0x3003, fakeos.Window{})
					desk.SetActive(0x3003)
				}
				Expect(ctrl.Enter()).To(Succeed())
				_, target, _ := ctrl.Saved()
				w, _ := desk.Window(target)
				Expect(w.Rect).To(Equal(want))
			},
			Entry("system work area", &win32.Rect{Right: 1000, Bottom: 700}, &win32.Rect{Right: 500, Bottom: 500}, true,
				win32.Rect{Left: 624, Top: 16, Right: 984, Bottom: 236}),
			Entry("monitor work area", nil, &win32.Rect{Left: 1920, Right: 3840, Bottom: 1080}, true,
				win32.Rect{Left: 3464, Top: 16, Right: 3824, Bottom: 236}),
			Entry("window rect", nil, nil, true,
				win32.Rect{Left: 1024, Top: 96, Right: 1384, Bottom: 316}),
			Entry("default region", nil, nil, false,
				win32.Rect{Left: 904, Top: 16, Right: 1264, Bottom: 236}),
		)
	})

	Describe("Exit", func() {
		It("fails without a prior enter and stays normal", func() {
			Expect(ctrl.Exit()).To(MatchError(windowmode.ErrNoActiveTarget))
			Expect(ctrl.State()).To(Equal(windowmode.Normal))
		})

		It("restores rect and styles bit for bit", func() {
			Expect(ctrl.Enter()).To(Succeed())
			Expect(ctrl.Exit()).To(Succeed())

			w, _ := desk.Window(hostHWND)
			Expect(w.Rect).To(Equal(hostRect))
			Expect(w.Style).To(Equal(hostStyle))
			Expect(w.ExStyle).To(Equal(hostExStyle))
			Expect(w.Topmost).To(BeFalse())
			Expect(w.Corner).To(Equal(win32.DWMWCP_DEFAULT))
			Expect(ctrl.State()).To(Equal(windowmode.Normal))
			_, _, ok := ctrl.Saved()
			Expect(ok).To(BeFalse())
		})

		It("is a no-op success when already normal after a cycle", func() {
			Expect(ctrl.Enter()).To(Succeed())
			Expect(ctrl.Exit()).To(Succeed())
			n := len(desk.Calls())
			Expect(ctrl.Exit()).To(Succeed())
			Expect(desk.Calls()).To(HaveLen(n))
		})

		It("re-resolves the target on the next enter", func() {
			Expect(ctrl.Enter()).To(Succeed())
			Expect(ctrl.Exit()).To(Succeed())
			desk.SetActive(otherHWND)
			Expect(ctrl.Enter()).To(Succeed())
			_, target, _ := ctrl.Saved()
			Expect(target).To(Equal(otherHWND))
		})
	})

	Describe("locked sub-state", func() {
		It("requires pinned mode", func() {
			Expect(ctrl.SetLocked(true)).To(MatchError(windowmode.ErrNotPinned))
			Expect(ctrl.IsLocked()).To(BeFalse())
		})

		It("is cleared by exit", func() {
			Expect(ctrl.Enter()).To(Succeed())
			Expect(ctrl.SetLocked(true)).To(Succeed())
			Expect(ctrl.IsLocked()).To(BeTrue())
			Expect(ctrl.Exit()).To(Succeed())
			Expect(ctrl.IsLocked()).To(BeFalse())
		})
	})

	It("toggles between modes", func() {
		Expect(ctrl.Toggle()).To(Succeed())
		Expect(ctrl.IsPinned()).To(BeTrue())
		Expect(ctrl.Toggle()).To(Succeed())
		Expect(ctrl.IsPinned()).To(BeFalse())
	})
})
