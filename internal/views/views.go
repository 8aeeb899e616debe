// Package views holds the HTML templates of the catalog.
//
// Templates are embedded into the binary. Setting TEMPLATES_PATH loads them
// from disk instead, which is handy while editing markup.
package views

import (
	"embed"
	"html"
	"html/template"
	"path/filepath"

	"github.com/mrlokans/locallibrary/internal/entities"
)

//go:embed templates/*.html
var files embed.FS

// FuncMap returns the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// Stored text is already entity-escaped by the form sanitizers.
		"unescape":    html.UnescapeString,
		"isoDate":     entities.FormatISODate,
		"statusClass": StatusClass,
	}
}

// Load parses the template set. An empty dir selects the embedded templates.
func Load(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(FuncMap())
	if dir == "" {
		return tmpl.ParseFS(files, "templates/*.html")
	}
	return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
}

// StatusClass maps a copy status to its CSS class.
func StatusClass(status entities.BookInstanceStatus) string {
	switch status {
	case entities.BookInstanceAvailable:
		return "text-success"
	case entities.BookInstanceMaintenance:
		return "text-danger"
	default:
		return "text-warning"
	}
}
