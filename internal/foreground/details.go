package foreground

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

const (
	detailsTTL    = 30 * time.Second
	detailsMaxAge = 5 * time.Minute
)

// AppInfo is a Snapshot copied out of the reusable slot and enriched with
// process details.
type AppInfo struct {
	AppID          string    `json:"appID"`
	Name           string    `json:"name"`
	ProcessID      uint32    `json:"pid"`
	ExecutablePath string    `json:"executablePath"`
	CommandLine    string    `json:"commandLine,omitempty"`
	WorkingDir     string    `json:"workingDir,omitempty"`
	Title          string    `json:"title"`
	CapturedAt     time.Time `json:"capturedAt"`
	ErrorCode      ErrorCode `json:"errorCode"`
}

// ProcessDetails are the fields a Source can recover from a pid.
type ProcessDetails struct {
	ExecutablePath string
	CommandLine    string
	WorkingDir     string
}

// Source looks up process details for a pid.
type Source func(pid uint32) (ProcessDetails, error)

// FirstOf tries each source in order and returns the first result carrying an
// executable path.
func FirstOf(sources ...Source) Source {
	return func(pid uint32) (ProcessDetails, error) {
		var lastErr error
		for _, src := range sources {
			d, err := src(pid)
			if err != nil {
				lastErr = err
				continue
			}
			if d.ExecutablePath != "" {
				return d, nil
			}
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("pid %d: no details", pid)
		}
		return ProcessDetails{}, lastErr
	}
}

// GopsutilSource reads process details through gopsutil.
func GopsutilSource(pid uint32) (ProcessDetails, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ProcessDetails{}, err
	}
	exe, err := p.Exe()
	if err != nil {
		return ProcessDetails{}, err
	}
	d := ProcessDetails{ExecutablePath: exe}
	d.CommandLine, _ = p.Cmdline()
	if cwd, err := p.Cwd(); err == nil && cwd != "" {
		d.WorkingDir = cwd
	} else {
		d.WorkingDir = filepath.Dir(exe)
	}
	return d, nil
}

type cachedDetails struct {
	ProcessDetails
	at time.Time
}

// Inspector caches Source lookups per pid. Failed lookups are not cached.
type Inspector struct {
	src Source
	now func() time.Time

	mu   sync.Mutex
	last map[uint32]cachedDetails
}

func NewInspector(src Source) *Inspector {
	return &Inspector{src: src, now: time.Now, last: map[uint32]cachedDetails{}}
}

func (in *Inspector) Lookup(pid uint32) (ProcessDetails, bool) {
	if pid == 0 || in.src == nil {
		return ProcessDetails{}, false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if v, ok := in.last[pid]; ok && in.now().Sub(v.at) < detailsTTL {
		return v.ProcessDetails, true
	}
	d, err := in.src(pid)
	if err != nil || d.ExecutablePath == "" {
		return ProcessDetails{}, false
	}
	in.last[pid] = cachedDetails{ProcessDetails: d, at: in.now()}
	return d, true
}

// Forget drops the cached entry for a pid that has exited.
func (in *Inspector) Forget(pid uint32) {
	in.mu.Lock()
	delete(in.last, pid)
	in.mu.Unlock()
}

// Cleanup drops entries older than five minutes.
func (in *Inspector) Cleanup() {
	in.mu.Lock()
	defer in.mu.Unlock()
	now := in.now()
	for pid, d := range in.last {
		if now.Sub(d.at) > detailsMaxAge {
			delete(in.last, pid)
		}
	}
}

func (in *Inspector) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.last)
}

// Describe copies s into an AppInfo. The snapshot path wins over the
// inspector's; the inspector fills in what the snapshot could not read.
func Describe(s *Snapshot, in *Inspector) AppInfo {
	info := AppInfo{
		ProcessID:      s.ProcessID,
		ExecutablePath: s.Path(),
		Title:          s.Title(),
		CapturedAt:     s.Time(),
		ErrorCode:      s.ErrorCode,
	}
	if in != nil {
		if d, ok := in.Lookup(s.ProcessID); ok {
			if info.ExecutablePath == "" {
				info.ExecutablePath = d.ExecutablePath
			}
			info.CommandLine = d.CommandLine
			info.WorkingDir = d.WorkingDir
		}
	}
	if info.WorkingDir == "" && info.ExecutablePath != "" {
		info.WorkingDir = dirOf(info.ExecutablePath)
	}
	info.AppID = stableAppID(info.ExecutablePath)
	info.Name = baseName(info.ExecutablePath)
	return info
}

func stableAppID(exePath string) string {
	if exePath == "" {
		return "unknown"
	}
	base := strings.ToLower(baseName(exePath))
	sum := sha256.Sum256([]byte(strings.ToLower(exePath)))
	return fmt.Sprintf("%s:%s", base, hex.EncodeToString(sum[:8]))
}

// baseName splits on both separators so Windows paths resolve on any host.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, `\/`); i >= 0 {
		return p[i+1:]
	}
	return p
}

func dirOf(p string) string {
	if i := strings.LastIndexAny(p, `\/`); i > 0 {
		return p[:i]
	}
	return ""
}
