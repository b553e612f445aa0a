// Package web holds the HTML templates compiled into the binary.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed template/*.html
var templates embed.FS

// FuncMap are the helpers available to every template.
var FuncMap = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
	"sub": func(a, b int) int {
		return a - b
	},
	"safeHTML": func(s string) template.HTML {
		// content is sanitized with bluemonday before it is stored
		return template.HTML(s)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
}

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(templates, "template/*.html")
}
