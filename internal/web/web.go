// Package web holds the HTML pages served by the dashboard.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded pages. Each page is addressed by its file
// name, e.g. "login.html".
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}
