// Package web holds the HTML views and the gin renderer that serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/base.html"

// Renderer pairs every page with the shared layout. It implements
// render.HTMLRender.
type Renderer struct {
	pages   map[string]*template.Template
	missing *template.Template
}

// NewRenderer parses the embedded layout and pages
func NewRenderer() (*Renderer, error) {
	pageFiles, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range pageFiles {
		if file == layoutFile {
			continue
		}
		tmpl, err := template.New(path.Base(file)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[path.Base(file)] = tmpl
	}

	r.missing = template.Must(template.New("base").Parse(`template not found`))
	return r, nil
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		tmpl = r.missing
	}
	return render.HTML{
		Template: tmpl,
		Name:     "base",
		Data:     data,
	}
}
