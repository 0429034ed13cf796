package web

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"libraryhub/internal/httpx"
	"libraryhub/internal/notify"
	"libraryhub/internal/profile"
)

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	applyFilter(s, r.FormValue("q"), r.FormValue("category"))
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(r.FormValue("book_id"))
	if err != nil || id <= 0 {
		s.Notify(notify.Destructive("Book Not Found", "That book is not in our catalog"))
		redirect(w, r, "/books")
		return
	}
	if _, err := h.carts.Add(r.Context(), s.Cart(), s, id); err != nil {
		h.logger.Debug("add to cart rejected", zap.Int("book_id", id), zap.Error(err))
	}
	redirect(w, r, "/books")
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err == nil {
		_, err = h.carts.Remove(r.Context(), s.Cart(), s, id)
	}
	if err != nil {
		h.logger.Debug("remove from cart rejected", zap.String("book_id", r.PathValue("id")), zap.Error(err))
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	receipt, err := h.carts.Checkout(r.Context(), s.ID(), s.Cart(), s)
	if err != nil {
		h.logger.Debug("checkout rejected", zap.Error(err))
	} else {
		h.logger.Info("checkout completed",
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.String("session_id", s.ID()),
			zap.Int("books", receipt.Count),
		)
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// SendMessage waits for the simulated delivery. If the browser gives up
// first the message is still delivered and its toast waits in the session.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	values := map[string]string{
		"name":    r.FormValue("name"),
		"email":   r.FormValue("email"),
		"subject": r.FormValue("subject"),
		"message": r.FormValue("message"),
	}
	if err := h.contact.Send(r.Context(), s.ID(), s.Contact(), s, values); err != nil {
		h.logger.Debug("contact message not sent", zap.Error(err))
	}
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Profile().Edit()
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// SaveProfile applies the submitted inputs. action=cancel discards them.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	p := s.Profile()
	if r.FormValue("action") == "cancel" {
		p.Cancel()
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	if p.Editing() {
		for _, fd := range profile.Fields {
			if v, ok := r.PostForm[fd.Name]; ok && len(v) > 0 {
				_ = p.Set(fd.Name, v[0])
			}
		}
	}
	if err := h.profiles.Save(p, s); err != nil {
		h.logger.Debug("profile not saved", zap.Error(err))
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *Handler) RenewLoan(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := h.dashboard.Renew(r.Context(), s.ID(), r.PathValue("id"), s); err != nil {
		h.logger.Debug("renew rejected", zap.Error(err))
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := h.dashboard.Return(r.Context(), s.ID(), r.PathValue("id"), s); err != nil {
		h.logger.Debug("return rejected", zap.Error(err))
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ToggleMenu opens or closes the small-viewport menu and returns to the page.
func (h *Handler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Menu().Toggle()
	redirect(w, r, "/")
}
