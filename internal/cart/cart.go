package cart

import (
	"errors"
	"sync"
	"time"

	"libraryhub/internal/catalog"
)

var (
	ErrUnavailable   = errors.New("book is not available")
	ErrAlreadyInCart = errors.New("book is already in the cart")
	ErrNotInCart     = errors.New("book is not in the cart")
	ErrEmptyCart     = errors.New("cart is empty")
)

// DefaultBorrowPeriod is the loan length applied to new cart entries.
const DefaultBorrowPeriod = 14 * 24 * time.Hour

// LateFeePerDay is the fee in dollars charged per overdue day.
const LateFeePerDay = 1

// Entry is a book selected for borrowing.
type Entry struct {
	BookID  int       `json:"book_id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	DueDate time.Time `json:"due_date"`
}

// Summary is the borrowing summary shown beside the cart.
type Summary struct {
	TotalBooks    int `json:"total_books"`
	PeriodDays    int `json:"period_days"`
	LateFeePerDay int `json:"late_fee_per_day"`
}

// Cart is an ordered set of entries keyed by book id. It is safe for
// concurrent use.
type Cart struct {
	mu      sync.Mutex
	entries []Entry
	period  time.Duration
	now     func() time.Time
}

type Option func(*Cart)

// WithClock overrides the time source used to compute due dates.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) { c.now = now }
}

// WithBorrowPeriod overrides DefaultBorrowPeriod.
func WithBorrowPeriod(d time.Duration) Option {
	return func(c *Cart) {
		if d > 0 {
			c.period = d
		}
	}
}

func New(opts ...Option) *Cart {
	c := &Cart{period: DefaultBorrowPeriod, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DueDate returns the calendar date a book borrowed now must be returned by.
func (c *Cart) DueDate() time.Time {
	return DueDateFrom(c.now(), c.period)
}

// DueDateFrom truncates now to midnight in its own location and adds period.
// Whole days are added as calendar days.
func DueDateFrom(now time.Time, period time.Duration) time.Time {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	days := int(period / (24 * time.Hour))
	return start.AddDate(0, 0, days).Add(period % (24 * time.Hour))
}

// Add appends b unless it is unavailable or already present.
func (c *Cart) Add(b catalog.Book) (Entry, error) {
	if !b.Available {
		return Entry{}, ErrUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexLocked(b.ID) >= 0 {
		return Entry{}, ErrAlreadyInCart
	}
	e := Entry{
		BookID:  b.ID,
		Title:   b.Title,
		Author:  b.Author,
		DueDate: DueDateFrom(c.now(), c.period),
	}
	c.entries = append(c.entries, e)
	return e, nil
}

// Remove deletes the entry for bookID.
func (c *Cart) Remove(bookID int) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(bookID)
	if i < 0 {
		return Entry{}, ErrNotInCart
	}
	e := c.entries[i]
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return e, nil
}

// Checkout hands every entry to commit and empties the cart once commit
// succeeds. An empty cart fails with ErrEmptyCart; a commit error leaves the
// cart untouched. commit may be nil.
func (c *Cart) Checkout(commit func([]Entry) error) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return nil, ErrEmptyCart
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	if commit != nil {
		if err := commit(out); err != nil {
			return nil, err
		}
	}
	c.entries = nil
	return out, nil
}

// Entries returns a copy of the cart contents in insertion order.
func (c *Cart) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cart) Empty() bool {
	return c.Len() == 0
}

func (c *Cart) Contains(bookID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked(bookID) >= 0
}

func (c *Cart) Summary() Summary {
	return Summary{
		TotalBooks:    c.Len(),
		PeriodDays:    int(c.period / (24 * time.Hour)),
		LateFeePerDay: LateFeePerDay,
	}
}

func (c *Cart) indexLocked(bookID int) int {
	for i, e := range c.entries {
		if e.BookID == bookID {
			return i
		}
	}
	return -1
}
