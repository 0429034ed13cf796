package contact

import (
	"time"

	"libraryhub/internal/form"
)

// DefaultDelay is the simulated latency of sending a message.
const DefaultDelay = time.Second

// Fields are the inputs of the contact form.
var Fields = []form.Field{
	{Name: "name", Label: "Name", Rules: "required,max=200"},
	{Name: "email", Label: "Email", Rules: "required,email"},
	{Name: "subject", Label: "Subject", Rules: "required,max=200"},
	{Name: "message", Label: "Message", Rules: "required,max=5000"},
}

// NewForm returns an empty contact form that clears itself after sending.
func NewForm(delay time.Duration) *form.Form {
	return form.New(Fields, form.WithDelay(delay), form.WithResetOnSubmit())
}

// Info is one card of the library's contact details.
type Info struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
}

var Details = []Info{
	{Icon: "phone", Label: "Phone", Value: "+1 (555) 123-4567"},
	{Icon: "mail", Label: "Email", Value: "info@libraryhub.com"},
	{Icon: "map-pin", Label: "Address", Value: "123 Library Street, Book City, BC 12345"},
	{Icon: "clock", Label: "Hours", Value: "Mon-Fri: 9AM-8PM, Sat-Sun: 10AM-6PM"},
}

// Message is a delivered contact form submission.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
