package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryhub/internal/loan"
	"libraryhub/internal/notify"
)

type Service struct {
	loans *loan.Service
	now   func() time.Time
}

func NewService(loans *loan.Service, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{loans: loans, now: now}
}

func (s *Service) Summary(ctx context.Context, readerID string) (Summary, error) {
	active, err := s.loans.Active(ctx, readerID)
	if err != nil {
		return Summary{}, err
	}
	history, err := s.loans.History(ctx, readerID)
	if err != nil {
		return Summary{}, err
	}
	return Build(active, history, s.now()), nil
}

func (s *Service) Renew(ctx context.Context, readerID, id string, n notify.Notifier) (loan.Loan, error) {
	l, err := s.loans.Renew(ctx, readerID, id)
	if err != nil {
		notifyLoanError(n, "Renewal Failed", err)
		return loan.Loan{}, err
	}
	n.Notify(notify.Info("Loan Renewed", fmt.Sprintf("%q is now due %s", l.Title, l.DueDate.Format("Jan 2, 2006"))))
	return l, nil
}

func (s *Service) Return(ctx context.Context, readerID, id string, n notify.Notifier) (loan.Loan, error) {
	l, err := s.loans.Return(ctx, readerID, id)
	if err != nil {
		notifyLoanError(n, "Return Failed", err)
		return loan.Loan{}, err
	}
	n.Notify(notify.Info("Book Returned", fmt.Sprintf("Thanks for returning %q", l.Title)))
	return l, nil
}

func notifyLoanError(n notify.Notifier, title string, err error) {
	switch {
	case errors.Is(err, loan.ErrNotFound):
		n.Notify(notify.Destructive(title, "That loan could not be found"))
	case errors.Is(err, loan.ErrNotActive):
		n.Notify(notify.Destructive(title, "That book has already been returned"))
	case errors.Is(err, loan.ErrRenewLimit):
		n.Notify(notify.Destructive(title, fmt.Sprintf("Loans can be renewed at most %d times", loan.MaxRenewals)))
	default:
		n.Notify(notify.Destructive(title, "Something went wrong, please try again"))
	}
}
