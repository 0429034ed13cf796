package loan

import (
	"errors"
	"math"
	"time"
)

var (
	ErrNotFound     = errors.New("loan not found")
	ErrNotActive    = errors.New("loan is already returned")
	ErrRenewLimit   = errors.New("loan renewal limit reached")
	ErrInvalidBatch = errors.New("invalid loan batch")
)

// MaxRenewals caps how many times a single loan can be extended.
const MaxRenewals = 2

// Loan is one borrowed book. ReaderID identifies the browsing session that
// checked it out.
type Loan struct {
	ID         string     `json:"id"`
	ReaderID   string     `json:"-"`
	BookID     int        `json:"book_id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Renewals   int        `json:"renewals"`
}

func (l Loan) Active() bool {
	return l.ReturnedAt == nil
}

// DaysLeft counts calendar days from now until the due date. Overdue loans
// report a negative number.
func (l Loan) DaysLeft(now time.Time) int {
	due := l.DueDate.In(now.Location())
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dy, dm, dd := due.Date()
	dueDay := time.Date(dy, dm, dd, 0, 0, 0, 0, now.Location())
	return int(math.Round(dueDay.Sub(today).Hours() / 24))
}

// Item is a book handed over at checkout.
type Item struct {
	BookID  int
	Title   string
	Author  string
	DueDate time.Time
}
