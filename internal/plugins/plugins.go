// Package plugins derives application-specific context (open document,
// workspace, browser profile) from a foreground capture.
package plugins

import (
	"path/filepath"
	"strings"

	"github.com/ringotypowriter/ringotrack/internal/foreground"
)

type AppPlugin interface {
	ID() string
	CanHandle(app *foreground.AppInfo) bool
	Describe(app *foreground.AppInfo) map[string]string
}

type Registry struct {
	list []AppPlugin
}

func DefaultRegistry() *Registry {
	return &Registry{
		list: []AppPlugin{
			NewVSCodePlugin(),
			NewBrowserPlugin(),
			NewOfficePlugin(),
		},
	}
}

// Describe merges the context of every plugin that handles app. Keys are
// prefixed with the plugin id. It returns nil when nothing applies.
func (r *Registry) Describe(app *foreground.AppInfo) map[string]string {
	var out map[string]string
	for _, p := range r.list {
		if !p.CanHandle(app) {
			continue
		}
		for k, v := range p.Describe(app) {
			if v == "" {
				continue
			}
			if out == nil {
				out = map[string]string{}
			}
			out[p.ID()+"."+k] = v
		}
	}
	return out
}

func exeBase(app *foreground.AppInfo) string {
	p := strings.ReplaceAll(app.ExecutablePath, `\`, "/")
	return strings.ToLower(filepath.Base(p))
}

// trimTitleSuffix strips " - <suffix>" variants applications append to
// their window titles.
func trimTitleSuffix(title string, suffixes ...string) (string, bool) {
	for _, s := range suffixes {
		for _, sep := range []string{" - ", " \u2014 "} {
			if strings.HasSuffix(title, sep+s) {
				return strings.TrimSpace(strings.TrimSuffix(title, sep+s)), true
			}
		}
	}
	return title, false
}
