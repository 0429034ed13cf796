package web

import (
	"net/http"

	"libraryhub/internal/cart"
	"libraryhub/internal/catalog"
	"libraryhub/internal/contact"
	"libraryhub/internal/dashboard"
	"libraryhub/internal/form"
	"libraryhub/internal/notify"
	"libraryhub/internal/profile"
	"libraryhub/internal/session"
)

type stat struct {
	Label string
	Value string
}

var homeStats = []stat{
	{Label: "Books Available", Value: "10,000+"},
	{Label: "Active Members", Value: "2,500+"},
	{Label: "Operating Hours", Value: "24/7"},
	{Label: "Books Borrowed", Value: "50,000+"},
}

type homeContent struct {
	Stats    []stat
	Featured []catalog.Book
	InCart   map[int]bool
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	featured, err := h.books.Featured(r.Context(), FeaturedCount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.page(w, r, s, http.StatusOK, pageHome, "Home", homeContent{
		Stats:    homeStats,
		Featured: featured,
		InCart:   inCart(s.Cart()),
	})
}

// categoryOptions feeds the category selector; "all" comes first.
var categoryOptions = append([]catalog.Category{catalog.CategoryAll}, catalog.Categories...)

type booksContent struct {
	Filter     catalog.FilterState
	Categories []catalog.Category
	Result     catalog.Result
	InCart     map[int]bool
}

// Books renders the catalog with the session's filter. Query parameters q and
// category replace the stored filter, so filtered views can be linked.
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	if q.Has("q") || q.Has("category") {
		applyFilter(s, q.Get("q"), q.Get("category"))
	}

	f := s.Filter()
	res, err := h.books.Search(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.page(w, r, s, http.StatusOK, pageBooks, "Books", booksContent{
		Filter:     f,
		Categories: categoryOptions,
		Result:     res,
		InCart:     inCart(s.Cart()),
	})
}

type cartContent struct {
	Entries    []cart.Entry
	Summary    cart.Summary
	Membership string
}

func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	c := s.Cart()
	h.page(w, r, s, http.StatusOK, pageCart, "Your Cart", cartContent{
		Entries:    c.Entries(),
		Summary:    c.Summary(),
		Membership: "FREE",
	})
}

type contactContent struct {
	Details []contact.Info
	Fields  []form.Field
	Values  form.Values
	Busy    bool
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	f := s.Contact()
	h.page(w, r, s, http.StatusOK, pageContact, "Contact Us", contactContent{
		Details: contact.Details,
		Fields:  f.Fields(),
		Values:  f.Values(),
		Busy:    f.Busy(),
	})
}

type dashboardContent struct {
	Summary dashboard.Summary
	Profile profile.Details
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	sum, err := h.dashboard.Summary(r.Context(), s.ID())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.page(w, r, s, http.StatusOK, pageDashboard, "My Dashboard", dashboardContent{
		Summary: sum,
		Profile: s.Profile().Details(),
	})
}

type profileContent struct {
	Details profile.Details
	Fields  []form.Field
	Draft   form.Values
	Stats   dashboard.Stats
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	sum, err := h.dashboard.Summary(r.Context(), s.ID())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p := s.Profile()
	h.page(w, r, s, http.StatusOK, pageProfile, "My Profile", profileContent{
		Details: p.Details(),
		Fields:  profile.Fields,
		Draft:   p.Draft(),
		Stats:   sum.Stats,
	})
}

// NotFound renders every unmodeled route, including /login.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.page(w, r, s, http.StatusNotFound, pageNotFound, "Page Not Found", nil)
}

func inCart(c *cart.Cart) map[int]bool {
	entries := c.Entries()
	out := make(map[int]bool, len(entries))
	for _, e := range entries {
		out[e.BookID] = true
	}
	return out
}

func applyFilter(s *session.Session, search, category string) {
	cat, err := catalog.ParseCategory(category)
	if err != nil {
		s.Notify(notify.Destructive("Unknown Category", "Showing all categories instead"))
		cat = catalog.CategoryAll
	}
	s.SetFilter(catalog.FilterState{Search: search, Category: cat})
}
