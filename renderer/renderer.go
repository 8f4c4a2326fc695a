// Package renderer formats book views as markdown, ready for the terminal
// renderer or for piping into files.
package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/tracker"
)

// funcs are the formatting helpers shared by every template. Monetary cells
// render as a fixed two-decimal number followed by the currency code, so
// columns stay aligned across currencies and fonts.
var funcs = template.FuncMap{
	"money": func(m tracker.Money) string {
		return m.Decimal().StringFixed(2) + " " + m.Currency()
	},
	"signed": func(m tracker.Money) string {
		if m.IsZero() {
			return "-"
		}
		s := m.Decimal().StringFixed(2) + " " + m.Currency()
		if m.IsPositive() {
			return "+" + s
		}
		return s
	},
	"percent": func(p float64) string { return fmt.Sprintf("%.2f%%", p) },
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
