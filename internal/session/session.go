// Package session keeps the per-visitor state shared by every page: the cart,
// the catalog filter, form drafts, the menu and pending toasts.
package session

import (
	"context"
	"sync"
	"time"

	"libraryhub/internal/cart"
	"libraryhub/internal/catalog"
	"libraryhub/internal/form"
	"libraryhub/internal/nav"
	"libraryhub/internal/notify"
	"libraryhub/internal/profile"
)

type Session struct {
	id        string
	createdAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	filter   catalog.FilterState

	cart    *cart.Cart
	contact *form.Form
	profile *profile.Profile
	menu    *nav.Menu
	outbox  *notify.Outbox
}

func (s *Session) ID() string                { return s.id }
func (s *Session) CreatedAt() time.Time      { return s.createdAt }
func (s *Session) Cart() *cart.Cart          { return s.cart }
func (s *Session) Contact() *form.Form       { return s.contact }
func (s *Session) Profile() *profile.Profile { return s.profile }
func (s *Session) Menu() *nav.Menu           { return s.menu }

// Notify queues a toast for the next page render.
func (s *Session) Notify(t notify.Toast) {
	s.outbox.Notify(t)
}

// Toasts drains the queued toasts.
func (s *Session) Toasts() []notify.Toast {
	return s.outbox.Drain()
}

func (s *Session) Filter() catalog.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Session) SetFilter(f catalog.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

type contextKey struct{}

// NewContext returns a context carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session installed by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
