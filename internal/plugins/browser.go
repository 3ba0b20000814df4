package plugins

import (
	"strings"

	"github.com/ringotypowriter/ringotrack/internal/foreground"
)

// BrowserPlugin covers the Chromium family.
type BrowserPlugin struct{}

func NewBrowserPlugin() *BrowserPlugin { return &BrowserPlugin{} }

func (p *BrowserPlugin) ID() string { return "browser" }

var browserSuffixes = map[string][]string{
	"chrome.exe": {"Google Chrome"},
	"msedge.exe": {"Microsoft\u200b Edge", "Microsoft Edge"},
	"brave.exe":  {"Brave"},
}

func (p *BrowserPlugin) CanHandle(app *foreground.AppInfo) bool {
	_, ok := browserSuffixes[exeBase(app)]
	return ok
}

func (p *BrowserPlugin) Describe(app *foreground.AppInfo) map[string]string {
	base := exeBase(app)
	tab, _ := trimTitleSuffix(app.Title, browserSuffixes[base]...)
	return map[string]string{
		"name":        strings.TrimSuffix(base, ".exe"),
		"tab":         tab,
		"userDataDir": extractFlagValue(app.CommandLine, "--user-data-dir"),
		"profile":     extractFlagValue(app.CommandLine, "--profile-directory"),
	}
}

func extractFlagValue(cmd string, flag string) string {
	i := strings.Index(cmd, flag)
	if i == -1 {
		return ""
	}
	rest := strings.TrimSpace(cmd[i+len(flag):])
	if strings.HasPrefix(rest, "=") {
		rest = strings.TrimSpace(rest[1:])
	}
	if strings.HasPrefix(rest, "\"") {
		rest = rest[1:]
		j := strings.Index(rest, "\"")
		if j == -1 {
			return ""
		}
		return rest[:j]
	}
	if k := strings.IndexAny(rest, " \t"); k >= 0 {
		return rest[:k]
	}
	return rest
}
