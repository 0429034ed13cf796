package session

import (
	"context"
	"errors"
	"time"

	"libraryhub/internal/catalog"
	"libraryhub/internal/loan"
)

var (
	// DemoCart holds the books a demo visitor finds in the cart.
	DemoCart = []int{1, 2}
	// DemoHistory holds the books a demo visitor has already read, newest first.
	DemoHistory = []int{3, 4, 5}
)

// DemoSeeder fills new sessions with a sample cart and reading history.
func DemoSeeder(books *catalog.Service, loans *loan.Service, now func() time.Time) Seeder {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, s *Session) error {
		var errs []error
		for _, id := range DemoCart {
			b, err := books.Get(ctx, id)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if _, err := s.Cart().Add(b); err != nil {
				errs = append(errs, err)
			}
		}

		today := now()
		history := make([]loan.Loan, 0, len(DemoHistory))
		for i, id := range DemoHistory {
			b, err := books.Get(ctx, id)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			returned := today.AddDate(0, 0, -7*(i+1))
			borrowed := returned.AddDate(0, 0, -10)
			history = append(history, loan.Loan{
				BookID:     b.ID,
				Title:      b.Title,
				Author:     b.Author,
				BorrowedAt: borrowed,
				DueDate:    borrowed.AddDate(0, 0, 14),
				ReturnedAt: &returned,
			})
		}
		if len(history) > 0 {
			if err := loans.Import(ctx, s.ID(), history); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
