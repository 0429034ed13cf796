package loan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Service records checkouts and manages their lifecycle.
type Service struct {
	repo   Repository
	period time.Duration
	now    func() time.Time
}

func NewService(repo Repository, period time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, period: period, now: now}
}

// Borrow turns checkout items into loans in a single batch.
func (s *Service) Borrow(ctx context.Context, readerID string, items []Item) ([]Loan, error) {
	if readerID == "" || len(items) == 0 {
		return nil, ErrInvalidBatch
	}
	borrowedAt := s.now()
	loans := make([]Loan, 0, len(items))
	for _, it := range items {
		loans = append(loans, Loan{
			ID:         uuid.New().String(),
			ReaderID:   readerID,
			BookID:     it.BookID,
			Title:      it.Title,
			Author:     it.Author,
			BorrowedAt: borrowedAt,
			DueDate:    it.DueDate,
		})
	}
	if err := s.repo.CreateBatch(ctx, loans); err != nil {
		return nil, fmt.Errorf("record loans: %w", err)
	}
	return loans, nil
}

// Import stores loans that were opened elsewhere, such as a seeded reading
// history. Missing IDs are generated.
func (s *Service) Import(ctx context.Context, readerID string, loans []Loan) error {
	if readerID == "" || len(loans) == 0 {
		return ErrInvalidBatch
	}
	batch := make([]Loan, len(loans))
	for i, l := range loans {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.ReaderID = readerID
		batch[i] = l
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return fmt.Errorf("import loans: %w", err)
	}
	return nil
}

// Active returns loans not yet returned, soonest due first.
func (s *Service) Active(ctx context.Context, readerID string) ([]Loan, error) {
	all, err := s.repo.ListByReader(ctx, readerID)
	if err != nil {
		return nil, err
	}
	out := make([]Loan, 0, len(all))
	for _, l := range all {
		if l.Active() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// History returns returned loans, most recently returned first.
func (s *Service) History(ctx context.Context, readerID string) ([]Loan, error) {
	all, err := s.repo.ListByReader(ctx, readerID)
	if err != nil {
		return nil, err
	}
	out := make([]Loan, 0, len(all))
	for _, l := range all {
		if !l.Active() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReturnedAt.After(*out[j].ReturnedAt) })
	return out, nil
}

// Renew pushes the due date of an active loan out by one borrowing period.
func (s *Service) Renew(ctx context.Context, readerID, id string) (Loan, error) {
	l, err := s.repo.Get(ctx, readerID, id)
	if err != nil {
		return Loan{}, err
	}
	if !l.Active() {
		return Loan{}, ErrNotActive
	}
	if l.Renewals >= MaxRenewals {
		return Loan{}, ErrRenewLimit
	}
	l.DueDate = addPeriod(l.DueDate, s.period)
	l.Renewals++
	if err := s.repo.Update(ctx, l); err != nil {
		return Loan{}, fmt.Errorf("renew loan: %w", err)
	}
	return l, nil
}

// Return closes an active loan.
func (s *Service) Return(ctx context.Context, readerID, id string) (Loan, error) {
	l, err := s.repo.Get(ctx, readerID, id)
	if err != nil {
		return Loan{}, err
	}
	if !l.Active() {
		return Loan{}, ErrNotActive
	}
	returnedAt := s.now()
	l.ReturnedAt = &returnedAt
	if err := s.repo.Update(ctx, l); err != nil {
		return Loan{}, fmt.Errorf("return loan: %w", err)
	}
	return l, nil
}

func addPeriod(t time.Time, period time.Duration) time.Time {
	days := int(period / (24 * time.Hour))
	return t.AddDate(0, 0, days).Add(period % (24 * time.Hour))
}
