package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"libraryhub/internal/cart"
	"libraryhub/internal/catalog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	pageHome      = "home"
	pageBooks     = "books"
	pageCart      = "cart"
	pageContact   = "contact"
	pageDashboard = "dashboard"
	pageProfile   = "profile"
	pageNotFound  = "not_found"
)

var pageNames = []string{pageHome, pageBooks, pageCart, pageContact, pageDashboard, pageProfile, pageNotFound}

var funcs = template.FuncMap{
	"date":    func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"isodate": func(t time.Time) string { return t.Format("2006-01-02") },
	"books":   cart.Books,
	"rating":  func(r float64) string { return fmt.Sprintf("%.1f", r) },
	"abs":     abs,
	"card":    newCard,
	"navHref": navHref,
}

// navHref marks links followed from the open menu so the menu closes.
func navHref(path string, menuOpen bool) string {
	if menuOpen {
		return path + "?via=menu"
	}
	return path
}

// card is the input of the "book_card" partial.
type card struct {
	Book   catalog.Book
	InCart bool
	Return string
}

func newCard(b catalog.Book, inCart bool, ret string) card {
	return card{Book: b, InCart: inCart, Return: ret}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Renderer executes the shared "base" layout around one page template.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/base.tmpl",
			"templates/partials.tmpl",
			"templates/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the layout for page name into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
