package fakeos

import "github.com/ringotypowriter/ringotrack/internal/win32"

func (d *Desktop) WindowProcessID(hwnd uintptr) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.windows[hwnd]; ok {
		return w.PID
	}
	return 0
}

func (d *Desktop) OpenProcess(pid uint32) (uintptr, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.processes[pid]
	if !ok || p.Denied {
		return 0, ErrDenied
	}
	d.nextProc++
	d.open[d.nextProc] = pid
	return d.nextProc, nil
}

func (d *Desktop) ImagePath(process uintptr, buf []uint16) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pid, ok := d.open[process]
	if !ok {
		return 0, ErrDenied
	}
	path := d.processes[pid].Path
	if path == "" {
		return 0, ErrDenied
	}
	return win32.CopyUTF16(buf, path), nil
}

func (d *Desktop) CloseProcess(process uintptr) {
	d.mu.Lock()
	delete(d.open, process)
	d.mu.Unlock()
}

func (d *Desktop) WindowText(hwnd uintptr, buf []uint16) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[hwnd]
	if !ok {
		return 0, ErrDenied
	}
	return win32.CopyUTF16(buf, w.Title), nil
}
