package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"libraryhub/internal/form"
	"libraryhub/internal/notify"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Send copies values into f and submits them in one step. The message is stored and the
// "Message Sent" toast raised when the submission completes, even if the
// caller stops waiting first.
func (s *Service) Send(ctx context.Context, sessionID string, f *form.Form, n notify.Notifier, values map[string]string) error {
	err := f.SubmitValuesAndWait(ctx, values, func(ctx context.Context, v form.Values) error {
		m := Message{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Name:      v["name"],
			Email:     v["email"],
			Subject:   v["subject"],
			Body:      v["message"],
			CreatedAt: s.now(),
		}
		if err := s.repo.Create(ctx, m); err != nil {
			n.Notify(notify.Destructive("Message Not Sent", "Something went wrong, please try again"))
			return err
		}
		n.Notify(notify.Info("Message Sent", "We'll get back to you soon!"))
		return nil
	})

	var verrs form.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		n.Notify(notify.Destructive("Message Not Sent", verrs.Error()))
	case errors.Is(err, form.ErrSubmissionInFlight):
		n.Notify(notify.Destructive("Please Wait", "Your previous message is still being sent"))
	}
	return err
}

// Recent returns the latest delivered messages.
func (s *Service) Recent(ctx context.Context, limit int) ([]Message, error) {
	return s.repo.List(ctx, limit)
}
