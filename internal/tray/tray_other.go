//go:build !windows

package tray

// Start is a no-op without a Windows notification area.
func (m *Manager) Start() {
	m.once.Do(func() {
		m.deps.Log.Debug("tray unavailable on this platform")
	})
}

func (m *Manager) Stop() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	m.wg.Wait()
}
