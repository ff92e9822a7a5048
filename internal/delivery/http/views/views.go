package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"plannr/internal/domain"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "layout.html"

// Page is what every template receives.
type Page struct {
	Title     string
	Session   *domain.Session
	CSRFField template.HTML
	// Notice is a one-off confirmation, such as "Invite Sent".
	Notice string
	// Error is the message shown inline when a form or fetch failed.
	Error string
	Data  any
}

// User returns the signed-in user, or nil.
func (p Page) User() *domain.User {
	if p.Session.IsAuthenticated() {
		return p.Session.User
	}
	return nil
}

// Renderer executes pages from the embedded templates folder. Each page is parsed together
// with the layout once, at construction.
type Renderer struct {
	pages map[string]*template.Template
	loc   *time.Location
}

// md renders event descriptions. Raw HTML in the input is escaped because WithUnsafe is not set.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// NewRenderer parses every page template. Times are shown in loc.
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	r := &Renderer{pages: make(map[string]*template.Template), loc: loc}

	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		base := path.Base(name)
		if base == layoutFile {
			continue
		}
		t, err := template.New(layoutFile).Funcs(r.funcs()).ParseFS(templateFS, "templates/"+layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		r.pages[strings.TrimSuffix(base, ".html")] = t
	}
	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": func(s string) template.HTML {
			var buf bytes.Buffer
			if err := md.Convert([]byte(s), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(s))
			}
			return template.HTML(buf.String())
		},
		// formatTime is for reading, inputTime fills datetime-local inputs.
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(r.loc).Format("Jan 2, 2006, 3:04 PM")
		},
		"inputTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(r.loc).Format(InputTimeLayout)
		},
		"errorText": func(err error, fallback string) string {
			return domain.UserMessage(err, fallback)
		},
	}
}

// InputTimeLayout is the value format of an HTML datetime-local input.
const InputTimeLayout = "2006-01-02T15:04"

// Location is the zone times are shown and parsed in.
func (r *Renderer) Location() *time.Location {
	return r.loc
}

// Render writes the named page with status. The page is executed into a buffer first so a
// template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
