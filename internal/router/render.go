package router

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"time"

	"github.com/DjordjeVuckovic/bench-viewer/pkg/utils"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout.html"

// Renderer executes one page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		page := path.Base(name)
		if page == layoutTemplate {
			continue
		}
		t, err := template.New(page).Funcs(funcMap()).ParseFS(templateFS, "templates/"+layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"score": func(v float64) float64 {
			return utils.RoundDecimal(v, 2)
		},
		"percent": func(v float64) int {
			return int(utils.RoundDecimal(v*100, 0))
		},
		"timestamp": func(t time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return t.Format(time.DateTime)
		},
		"runURL": func(name string) string {
			return "/benchmark_run/" + url.PathEscape(name)
		},
		"compareURL": func(name, other string) string {
			return "/compare/" + url.PathEscape(name) + "/" + url.PathEscape(other)
		},
		"curveURL": curveURL,
	}
}

func curveURL(name, envID, other string) string {
	u := "/benchmark_run/" + url.PathEscape(name) + "/tasks/" + url.PathEscape(envID) + "/learning_curve.svg"
	if other != "" {
		u += "?compare=" + url.QueryEscape(other)
	}
	return u
}
