package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"libraryhub/internal/cart"
	"libraryhub/internal/catalog"
	"libraryhub/internal/contact"
	"libraryhub/internal/nav"
	"libraryhub/internal/notify"
	"libraryhub/internal/profile"
)

const (
	DefaultTTL           = 24 * time.Hour
	DefaultSweepInterval = time.Minute
)

// Seeder prepares a freshly created session.
type Seeder func(ctx context.Context, s *Session) error

// Config controls how sessions are built and how long they live.
type Config struct {
	TTL          time.Duration
	BorrowPeriod time.Duration
	SubmitDelay  time.Duration
	Now          func() time.Time
}

// Store keeps sessions in memory. Idle sessions expire after TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cfg      Config
	logger   *zap.Logger
	seeders  []Seeder
	onExpire []func(id string)
}

type StoreOption func(*Store)

// WithSeeder runs fn on every new session.
func WithSeeder(fn Seeder) StoreOption {
	return func(st *Store) { st.seeders = append(st.seeders, fn) }
}

// WithExpiryHook runs fn with the id of every expired session.
func WithExpiryHook(fn func(id string)) StoreOption {
	return func(st *Store) { st.onExpire = append(st.onExpire, fn) }
}

func NewStore(cfg Config, logger *zap.Logger, opts ...StoreOption) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.BorrowPeriod <= 0 {
		cfg.BorrowPeriod = cart.DefaultBorrowPeriod
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	st := &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Create starts a new session. Seeder failures are logged and leave the
// session usable.
func (st *Store) Create(ctx context.Context) *Session {
	now := st.cfg.Now()
	s := &Session{
		id:        uuid.New().String(),
		createdAt: now,
		lastSeen:  now,
		filter:    catalog.FilterState{Category: catalog.CategoryAll},
		cart:      cart.New(cart.WithClock(st.cfg.Now), cart.WithBorrowPeriod(st.cfg.BorrowPeriod)),
		contact:   contact.NewForm(st.cfg.SubmitDelay),
		profile:   profile.New(),
		menu:      &nav.Menu{},
		outbox:    notify.NewOutbox(),
	}
	for _, seed := range st.seeders {
		if err := seed(ctx, s); err != nil {
			st.logger.Warn("session seed failed", zap.String("session_id", s.id), zap.Error(err))
		}
	}

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s
}

// Get returns a live session and marks it as seen.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := st.cfg.Now()
	if st.expired(s, now) {
		return nil, false
	}
	s.touch(now)
	return s, true
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		st.expire(id)
	}
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes every session idle for longer than TTL and returns how many
// were dropped.
func (st *Store) Sweep() int {
	now := st.cfg.Now()
	var dead []string

	st.mu.Lock()
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			dead = append(dead, id)
		}
	}
	st.mu.Unlock()

	for _, id := range dead {
		st.expire(id)
	}
	return len(dead)
}

// Run sweeps expired sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				st.logger.Info("expired sessions swept", zap.Int("count", n), zap.Int("remaining", st.Len()))
			}
		}
	}
}

func (st *Store) expired(s *Session, now time.Time) bool {
	return now.Sub(s.LastSeen()) > st.cfg.TTL
}

func (st *Store) expire(id string) {
	for _, fn := range st.onExpire {
		fn(id)
	}
}
