package ui

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"sirms/console/internal/logging"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcMap = template.FuncMap{
	"upper": strings.ToUpper,
}

// Renderer holds the console templates parsed once at startup
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/ against the base layout
func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS,
			"templates/layouts/base.html",
			page,
		)
		if err != nil {
			return nil, err
		}
		r.pages[strings.TrimPrefix(page, "templates/")] = t
	}
	return r, nil
}

// RenderTemplate renders a page with the base layout. The page is rendered
// to a buffer first so a template error never leaves a half-written response.
func (r *Renderer) RenderTemplate(w http.ResponseWriter, templateName string, data any) error {
	t, ok := r.pages[templateName]
	if !ok {
		http.Error(w, "Unknown template: "+templateName, http.StatusInternalServerError)
		return fs.ErrNotExist
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		logging.Error("Error rendering template", "template", templateName, "error", err.Error())
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded stylesheet and scripts
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
