package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// funcs are the helpers available to every template.
var funcs = template.FuncMap{
	"yen":   Yen,
	"ratio": Ratio,
	"cell":  cell,
}

// RenderReport renders the run report to a markdown string.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_sources":     "report_sources.md",
		"report_partitions":  "report_partitions.md",
		"report_allocation":  "report_allocation.md",
		"report_diagnostics": "report_diagnostics.md",
	}
	// Nothing was allocated: show a one-line note instead of an empty table.
	if len(r.Allocations) == 0 {
		partials["report_allocation"] = "report_allocation_empty.md"
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderRatioTable renders a ratio table to a markdown string.
func RenderRatioTable(t *RatioTable) string {
	return renderTemplate("ratio", "ratio.md", nil, t)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
