package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"appfiy/backoffice/internal/logging"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcMap = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"join": strings.Join,
}

// StaticFS serves the page scripts and styles under /static/.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// RenderTemplate renders a template with the base layout
func RenderTemplate(w http.ResponseWriter, templateName string, data map[string]interface{}) error {
	t, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS,
		"templates/layouts/base.html",
		"templates/"+templateName,
	)
	if err != nil {
		logging.Error("Template parse failed", "template", templateName, "error", err.Error())
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		logging.Error("Template render failed", "template", templateName, "error", err.Error())
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return err
	}
	return nil
}
