package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ringotypowriter/ringotrack/internal/backdrop"
	"github.com/ringotypowriter/ringotrack/internal/hittest"
	"github.com/ringotypowriter/ringotrack/internal/logging"
	"github.com/ringotypowriter/ringotrack/internal/windowmode"
)

// Config is read once at startup. It is never written back.
type Config struct {
	Pinned   Pinned   `yaml:"pinned"`
	HitTest  HitTest  `yaml:"hitTest"`
	Backdrop Backdrop `yaml:"backdrop"`
	Activity Activity `yaml:"activity"`
	Rules    Rules    `yaml:"rules"`
	Log      Log      `yaml:"log"`
}

type Pinned struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Margin int32  `yaml:"margin"`
	Anchor string `yaml:"anchor"`
}

type HitTest struct {
	Strategy    string `yaml:"strategy"`
	PinZoneDIP  int32  `yaml:"pinZoneDIP"`
	LockZoneDIP int32  `yaml:"lockZoneDIP"`
}

type Backdrop struct {
	HostClass string `yaml:"hostClass"`
	Tint      string `yaml:"tint"`
	Alpha     uint8  `yaml:"alpha"`
}

type Activity struct {
	IdleThreshold time.Duration `yaml:"idleThreshold"`
	PollInterval  time.Duration `yaml:"pollInterval"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Rules keep matching applications out of foreground notifications.
type Rules struct {
	ExcludeExeNames   []string `yaml:"excludeExeNames"`
	ExcludePathSubstr []string `yaml:"excludePathSubstr"`
}

func (r Rules) Allow(exePath string) bool {
	pathLower := strings.ToLower(exePath)
	exeLower := pathLower
	if i := strings.LastIndexAny(pathLower, `\/`); i >= 0 {
		exeLower = pathLower[i+1:]
	}
	for _, n := range r.ExcludeExeNames {
		if exeLower == strings.ToLower(n) {
			return false
		}
	}
	for _, s := range r.ExcludePathSubstr {
		if s == "" {
			continue
		}
		if strings.Contains(pathLower, strings.ToLower(s)) {
			return false
		}
	}
	return true
}

func DefaultConfig() *Config {
	wm := windowmode.DefaultOptions()
	ht := hittest.DefaultConfig()
	return &Config{
		Pinned: Pinned{
			Width:  wm.Width,
			Height: wm.Height,
			Margin: wm.Margin,
			Anchor: string(wm.Anchor),
		},
		HitTest: HitTest{
			Strategy:    string(ht.Strategy),
			PinZoneDIP:  ht.PinDIP,
			LockZoneDIP: ht.LockDIP,
		},
		Backdrop: Backdrop{
			HostClass: backdrop.DefaultHostClass,
			Tint:      "#ffffff",
			Alpha:     backdrop.DefaultAlpha,
		},
		Activity: Activity{
			IdleThreshold: 5 * time.Minute,
			PollInterval:  time.Second,
		},
		Rules: Rules{
			ExcludeExeNames: []string{"keepass.exe"},
		},
		Log: Log{
			Level: "info",
			File:  filepath.Join(defaultDir(), "ringotrack.log"),
		},
	}
}

// DefaultPath is %APPDATA%\ringotrack\config.yaml.
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

func defaultDir() string {
	if v := os.Getenv("APPDATA"); v != "" {
		return filepath.Join(v, "ringotrack")
	}
	if v := os.Getenv("LOCALAPPDATA"); v != "" {
		return filepath.Join(v, "ringotrack")
	}
	return filepath.Join(".", "ringotrack")
}

// Load overlays the YAML file at path on the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown enumerations and resets non-positive sizes to the
// defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.Pinned.Width <= 0 {
		c.Pinned.Width = def.Pinned.Width
	}
	if c.Pinned.Height <= 0 {
		c.Pinned.Height = def.Pinned.Height
	}
	if c.Pinned.Margin < 0 {
		c.Pinned.Margin = def.Pinned.Margin
	}
	if c.HitTest.PinZoneDIP <= 0 {
		c.HitTest.PinZoneDIP = def.HitTest.PinZoneDIP
	}
	if c.HitTest.LockZoneDIP <= 0 {
		c.HitTest.LockZoneDIP = def.HitTest.LockZoneDIP
	}
	if c.Backdrop.HostClass == "" {
		c.Backdrop.HostClass = def.Backdrop.HostClass
	}
	if c.Activity.IdleThreshold <= 0 {
		c.Activity.IdleThreshold = def.Activity.IdleThreshold
	}
	if c.Activity.PollInterval <= 0 {
		c.Activity.PollInterval = def.Activity.PollInterval
	}

	var errs []error
	if _, err := windowmode.ParseAnchor(c.Pinned.Anchor); err != nil {
		errs = append(errs, err)
	}
	if _, err := hittest.ParseStrategy(c.HitTest.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.Backdrop.Tint != "" {
		if _, err := backdrop.ParseTint(c.Backdrop.Tint, c.Backdrop.Alpha); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Config) WindowMode() windowmode.Options {
	anchor, _ := windowmode.ParseAnchor(c.Pinned.Anchor)
	return windowmode.Options{
		Width:  c.Pinned.Width,
		Height: c.Pinned.Height,
		Margin: c.Pinned.Margin,
		Anchor: anchor,
	}
}

func (c *Config) HitTestConfig() hittest.Config {
	strategy, _ := hittest.ParseStrategy(c.HitTest.Strategy)
	return hittest.Config{
		Strategy: strategy,
		PinDIP:   c.HitTest.PinZoneDIP,
		LockDIP:  c.HitTest.LockZoneDIP,
	}
}

// DefaultTint is the tint applied by the tray and the CLI when no color is
// given.
func (c *Config) DefaultTint() backdrop.Tint {
	t, err := backdrop.ParseTint(c.Backdrop.Tint, c.Backdrop.Alpha)
	if err != nil {
		return backdrop.Tint{R: 0xff, G: 0xff, B: 0xff, A: backdrop.DefaultAlpha}
	}
	return t
}

func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, File: c.Log.File}
}
