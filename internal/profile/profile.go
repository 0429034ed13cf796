package profile

import (
	"errors"
	"sync"

	"libraryhub/internal/form"
)

var ErrNotEditing = errors.New("profile is not in edit mode")

// Fields are the editable profile inputs.
var Fields = []form.Field{
	{Name: "name", Label: "Full Name", Rules: "required,max=200"},
	{Name: "email", Label: "Email", Rules: "required,email"},
	{Name: "phone", Label: "Phone", Rules: "required,max=50"},
	{Name: "address", Label: "Address", Rules: "required,max=300"},
}

// Defaults is the profile every new visitor starts with.
var Defaults = form.Values{
	"name":    "John Doe",
	"email":   "john.doe@example.com",
	"phone":   "+1 (555) 123-4567",
	"address": "123 Library Street, Book City, BC 12345",
}

const DefaultMemberSince = "January 2024"

// Details is a read-only view of a profile.
type Details struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	MemberSince string `json:"member_since"`
	Editing     bool   `json:"editing"`
}

// Profile holds the visitor's account details. Inputs are locked until Edit
// is called; Save commits the draft and locks them again.
type Profile struct {
	mu          sync.Mutex
	draft       *form.Form
	saved       form.Values
	editing     bool
	memberSince string
}

func New() *Profile {
	saved := make(form.Values, len(Defaults))
	for k, v := range Defaults {
		saved[k] = v
	}
	return &Profile{
		draft:       form.New(Fields, form.WithInitial(saved)),
		saved:       saved,
		memberSince: DefaultMemberSince,
	}
}

func (p *Profile) Edit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editing = true
}

func (p *Profile) Editing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing
}

// Set updates one draft field.
func (p *Profile) Set(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.editing {
		return ErrNotEditing
	}
	return p.draft.Set(name, value)
}

// Cancel discards the draft and leaves edit mode.
func (p *Profile) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft.SetAll(p.saved)
	p.editing = false
}

// Save validates the draft and commits it. On failure the profile stays in
// edit mode with the draft intact.
func (p *Profile) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.editing {
		return ErrNotEditing
	}
	if err := p.draft.Validate(); err != nil {
		return err
	}
	p.saved = p.draft.Values()
	p.editing = false
	return nil
}

// Apply commits v over the saved values without going through the draft.
// Unsaved draft edits are neither committed nor discarded. On failure
// nothing changes.
func (p *Profile) Apply(v map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := form.New(Fields, form.WithInitial(p.saved))
	for name, value := range v {
		if err := next.Set(name, value); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	p.saved = next.Values()
	if !p.editing {
		p.draft.SetAll(p.saved)
	}
	return nil
}

// Draft returns the values currently shown in the inputs.
func (p *Profile) Draft() form.Values {
	return p.draft.Values()
}

func (p *Profile) Details() Details {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Details{
		Name:        p.saved["name"],
		Email:       p.saved["email"],
		Phone:       p.saved["phone"],
		Address:     p.saved["address"],
		MemberSince: p.memberSince,
		Editing:     p.editing,
	}
}
