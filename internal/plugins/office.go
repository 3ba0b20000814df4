package plugins

import (
	"strings"

	"github.com/ringotypowriter/ringotrack/internal/foreground"
)

type OfficePlugin struct{}

func NewOfficePlugin() *OfficePlugin { return &OfficePlugin{} }

func (p *OfficePlugin) ID() string { return "office" }

var officeApps = map[string]string{
	"winword.exe":  "Word",
	"excel.exe":    "Excel",
	"powerpnt.exe": "PowerPoint",
}

func (p *OfficePlugin) CanHandle(app *foreground.AppInfo) bool {
	_, ok := officeApps[exeBase(app)]
	return ok
}

// Describe takes the document from "<doc> - Word" style titles. Newer
// builds append a status such as "Saved" after the document name.
func (p *OfficePlugin) Describe(app *foreground.AppInfo) map[string]string {
	product := officeApps[exeBase(app)]
	doc, ok := trimTitleSuffix(app.Title, product)
	if !ok {
		return map[string]string{"product": product}
	}
	for _, status := range []string{" - Saved", " - Saving…", " - AutoRecovered", " • Saved"} {
		doc = strings.TrimSuffix(doc, status)
	}
	return map[string]string{"product": product, "document": doc}
}
