// Package web serves the server-rendered pages of the library site. Every
// state change is a POST that redirects back to a page (post/redirect/get);
// outcomes are shown as toasts on the next render.
package web

import (
	"bytes"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"libraryhub/internal/cart"
	"libraryhub/internal/catalog"
	"libraryhub/internal/contact"
	"libraryhub/internal/dashboard"
	"libraryhub/internal/httpx"
	"libraryhub/internal/nav"
	"libraryhub/internal/notify"
	"libraryhub/internal/profile"
	"libraryhub/internal/session"
)

// FeaturedCount is how many books the home page shows.
const FeaturedCount = 4

type Handler struct {
	books     *catalog.Service
	carts     *cart.Service
	contact   *contact.Service
	profiles  *profile.Service
	dashboard *dashboard.Service
	render    *Renderer
	logger    *zap.Logger
}

type Services struct {
	Books     *catalog.Service
	Carts     *cart.Service
	Contact   *contact.Service
	Profiles  *profile.Service
	Dashboard *dashboard.Service
}

func NewHandler(svc Services, render *Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		books:     svc.Books,
		carts:     svc.Carts,
		contact:   svc.Contact,
		profiles:  svc.Profiles,
		dashboard: svc.Dashboard,
		render:    render,
		logger:    logger,
	}
}

// Register mounts every page and form action on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /books", h.Books)
	mux.HandleFunc("GET /cart", h.Cart)
	mux.HandleFunc("GET /contact", h.Contact)
	mux.HandleFunc("GET /dashboard", h.Dashboard)
	mux.HandleFunc("GET /profile", h.Profile)

	mux.HandleFunc("POST /books/filter", h.Filter)
	mux.HandleFunc("POST /cart/items", h.AddToCart)
	mux.HandleFunc("POST /cart/items/{id}/remove", h.RemoveFromCart)
	mux.HandleFunc("POST /cart/checkout", h.Checkout)
	mux.HandleFunc("POST /contact", h.SendMessage)
	mux.HandleFunc("POST /profile/edit", h.EditProfile)
	mux.HandleFunc("POST /profile", h.SaveProfile)
	mux.HandleFunc("POST /dashboard/loans/{id}/renew", h.RenewLoan)
	mux.HandleFunc("POST /dashboard/loans/{id}/return", h.ReturnLoan)
	mux.HandleFunc("POST /nav/menu", h.ToggleMenu)

	mux.HandleFunc("/", h.NotFound)
}

// layout is the data every page shares.
type layout struct {
	Title     string
	Path      string
	Nav       nav.Bar
	Toasts    []notify.Toast
	CartCount int
	Content   any
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		h.logger.Error("request without session", zap.String("request_id", httpx.RequestIDFrom(r)), zap.String("path", r.URL.Path))
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

// page renders name inside the layout. Toasts queued so far are drained.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, s *session.Session, status int, name, title string, content any) {
	if r.URL.Query().Get("via") == "menu" {
		s.Menu().Close()
	}
	data := layout{
		Title:     title,
		Path:      r.URL.Path,
		Nav:       nav.Build(r.URL.Path, s.Menu().Open()),
		Toasts:    s.Toasts(),
		CartCount: s.Cart().Len(),
		Content:   content,
	}
	var buf bytes.Buffer
	if err := h.render.Render(&buf, name, data); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("page handler failed",
		zap.String("request_id", httpx.RequestIDFrom(r)),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// redirect sends the browser back to a page after a form action.
func redirect(w http.ResponseWriter, r *http.Request, fallback string) {
	http.Redirect(w, r, returnPath(r.FormValue("return"), fallback), http.StatusSeeOther)
}

// returnPath accepts only local absolute paths.
func returnPath(p, fallback string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return fallback
	}
	return p
}
