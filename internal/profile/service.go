package profile

import (
	"errors"

	"libraryhub/internal/form"
	"libraryhub/internal/notify"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Update applies values to the saved profile and notifies the outcome. An
// edit session in progress keeps its own draft.
func (s *Service) Update(p *Profile, n notify.Notifier, values map[string]string) error {
	err := p.Apply(values)
	notifySave(n, err)
	return err
}

// Save commits the draft and notifies the outcome.
func (s *Service) Save(p *Profile, n notify.Notifier) error {
	err := p.Save()
	notifySave(n, err)
	return err
}

func notifySave(n notify.Notifier, err error) {
	var verrs form.ValidationErrors
	switch {
	case err == nil:
		n.Notify(notify.Info("Profile Updated", "Your changes have been saved successfully"))
	case errors.As(err, &verrs):
		n.Notify(notify.Destructive("Profile Not Saved", verrs.Error()))
	case errors.Is(err, ErrNotEditing):
		n.Notify(notify.Destructive("Profile Not Saved", "Click Edit Profile before making changes"))
	}
}
