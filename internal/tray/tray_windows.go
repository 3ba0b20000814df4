//go:build windows

package tray

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/getlantern/systray"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

const hotkeyID = 0xA11

func (m *Manager) Start() {
	m.once.Do(func() {
		go systray.Run(m.onReady, m.onExit)
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.hotkeyLoop()
		}()
	})
}

func (m *Manager) Stop() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	systray.Quit()
	m.wg.Wait()
}

func (m *Manager) setTrayIcon() {
	exePath, err := os.Executable()
	if err != nil {
		return
	}
	exeDir := filepath.Dir(exePath)
	for _, p := range []string{
		filepath.Join(exeDir, "icon.ico"),
		filepath.Join(exeDir, "build", "windows", "icon.ico"),
		filepath.Join(exeDir, "..", "build", "windows", "icon.ico"),
	} {
		data, err := os.ReadFile(filepath.Clean(p))
		if err == nil {
			systray.SetIcon(data)
			return
		}
	}
}

func (m *Manager) onReady() {
	systray.SetTitle("ringotrack")
	systray.SetTooltip("ringotrack (Ctrl+Alt+P pins the window)")
	m.setTrayIcon()

	itemPin := systray.AddMenuItem("Pin window", "Toggle the pinned overlay")
	itemLock := systray.AddMenuItemCheckbox("Lock position", "Ignore drags while pinned", false)
	itemTint := systray.AddMenuItem("Reset tint", "Remove the backdrop tint")
	systray.AddSeparator()
	itemTrack := systray.AddMenuItem("Pause tracking", "Pause foreground notifications")
	itemAuto := systray.AddMenuItemCheckbox("Start with Windows", "Launch at sign-in", false)
	systray.AddSeparator()
	itemExit := systray.AddMenuItem("Exit", "Exit")

	refresh := func() {
		st := currentState(m.deps)
		itemPin.SetTitle(st.PinLabel)
		itemTrack.SetTitle(st.TrackLabel)
		setChecked(itemLock, st.LockChecked)
		if st.LockEnabled {
			itemLock.Enable()
		} else {
			itemLock.Disable()
		}
		setChecked(itemAuto, st.AutostartOn)
		if !st.ShowAutostart {
			itemAuto.Hide()
		}
	}
	refresh()

	go func() {
		for {
			select {
			case <-m.stop:
				return
			case <-itemPin.ClickedCh:
				run(m.deps.TogglePinned)
			case <-itemLock.ClickedCh:
				m.toggleLock()
			case <-itemTint.ClickedCh:
				run(m.deps.ResetTint)
			case <-itemTrack.ClickedCh:
				m.toggleTracking()
			case <-itemAuto.ClickedCh:
				m.toggleAutostart()
			case <-itemExit.ClickedCh:
				run(m.deps.Exit)
				return
			}
			refresh()
		}
	}()
}

func setChecked(item *systray.MenuItem, on bool) {
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (m *Manager) onExit() {}

// hotkeyLoop owns the thread the hotkey is registered on; WM_HOTKEY is
// posted to that thread's queue.
func (m *Manager) hotkeyLoop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win32.EnsureMessageQueue()
	if err := win32.RegisterHotKey(hotkeyID, win32.MOD_CONTROL|win32.MOD_ALT|win32.MOD_NOREPEAT, win32.VK_P); err != nil {
		m.deps.Log.Warn("pin hotkey unavailable", zap.Error(err))
		return
	}
	defer win32.UnregisterHotKey(hotkeyID)

	tid := windows.GetCurrentThreadId()
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		select {
		case <-m.stop:
			_ = win32.PostThreadMessage(tid, win32.WM_QUIT, 0, 0)
		case <-quit:
		}
	}()

	var msg win32.Msg
	for {
		ok, err := win32.GetMessage(&msg)
		if !ok || err != nil {
			return
		}
		if msg.Message == win32.WM_HOTKEY && msg.WParam == hotkeyID {
			run(m.deps.TogglePinned)
		}
	}
}
