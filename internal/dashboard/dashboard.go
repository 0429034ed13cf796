// Package dashboard assembles the reader's loans, history and stats.
package dashboard

import (
	"time"

	"libraryhub/internal/cart"
	"libraryhub/internal/loan"
)

// DueSoonDays is the threshold under which a loan is flagged as due soon.
const DueSoonDays = 7

// ActiveLoan is a borrowed book with its remaining time.
type ActiveLoan struct {
	loan.Loan
	DaysLeft int  `json:"days_left"`
	DueSoon  bool `json:"due_soon"`
	Overdue  bool `json:"overdue"`
}

type Stats struct {
	BooksBorrowed int `json:"books_borrowed"`
	BooksRead     int `json:"books_read"`
	LateFees      int `json:"late_fees"`
}

type Summary struct {
	Active  []ActiveLoan `json:"active"`
	History []loan.Loan  `json:"history"`
	Stats   Stats        `json:"stats"`
}

// Build derives the summary from active and returned loans as of now.
func Build(active, history []loan.Loan, now time.Time) Summary {
	s := Summary{
		Active:  make([]ActiveLoan, 0, len(active)),
		History: history,
	}
	if s.History == nil {
		s.History = []loan.Loan{}
	}
	for _, l := range active {
		days := l.DaysLeft(now)
		s.Active = append(s.Active, ActiveLoan{
			Loan:     l,
			DaysLeft: days,
			DueSoon:  days < DueSoonDays,
			Overdue:  days < 0,
		})
		if days < 0 {
			s.Stats.LateFees += -days * cart.LateFeePerDay
		}
	}
	s.Stats.BooksBorrowed = len(active)
	s.Stats.BooksRead = len(history)
	return s
}
