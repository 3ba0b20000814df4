package plugins

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ringotypowriter/ringotrack/internal/foreground"
)

type VSCodePlugin struct{}

func NewVSCodePlugin() *VSCodePlugin { return &VSCodePlugin{} }

func (p *VSCodePlugin) ID() string { return "vscode" }

func (p *VSCodePlugin) CanHandle(app *foreground.AppInfo) bool {
	base := exeBase(app)
	return base == "code.exe" || base == "code - insiders.exe" || base == "cursor.exe"
}

// Describe reads "<file> - <workspace> - Visual Studio Code" titles and any
// paths passed on the command line.
func (p *VSCodePlugin) Describe(app *foreground.AppInfo) map[string]string {
	out := map[string]string{}
	rest, ok := trimTitleSuffix(app.Title, "Visual Studio Code", "Visual Studio Code - Insiders", "Cursor")
	if ok {
		parts := strings.Split(rest, " - ")
		switch len(parts) {
		case 1:
			out["workspace"] = strings.TrimSpace(parts[0])
		default:
			out["file"] = strings.TrimLeft(strings.TrimSpace(parts[0]), "● ")
			out["workspace"] = strings.TrimSpace(parts[len(parts)-1])
		}
	}
	if paths := extractWindowsPaths(app.CommandLine); len(paths) > 0 {
		out["paths"] = strings.Join(paths, ";")
	}
	return out
}

var reWinPath = regexp.MustCompile(`(?i)([a-z]:\\[^"'\s]+)`)

// extractWindowsPaths returns the drive-rooted paths in s, deduplicated
// case-insensitively, skipping the executable itself.
func extractWindowsPaths(s string) []string {
	m := reWinPath.FindAllString(s, -1)
	seen := map[string]struct{}{}
	var out []string
	for _, p := range m {
		low := strings.ToLower(p)
		if strings.HasSuffix(low, ".exe") {
			continue
		}
		if _, ok := seen[low]; ok {
			continue
		}
		seen[low] = struct{}{}
		out = append(out, filepath.Clean(p))
	}
	return out
}
