// Package notify carries toast notifications from state transitions to the page
// that renders them. Delivery is fire-and-forget.
package notify

import "sync"

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Notifier receives toasts. Implementations must not block.
type Notifier interface {
	Notify(t Toast)
}

// Info builds a default toast.
func Info(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDefault}
}

// Destructive builds an error toast.
func Destructive(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDestructive}
}

const defaultOutboxCap = 16

// Outbox buffers toasts until the next page render drains them. When full the
// oldest toast is dropped.
type Outbox struct {
	mu     sync.Mutex
	toasts []Toast
	max    int
}

func NewOutbox() *Outbox {
	return &Outbox{max: defaultOutboxCap}
}

func (o *Outbox) Notify(t Toast) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.toasts) == o.max {
		o.toasts = o.toasts[1:]
	}
	o.toasts = append(o.toasts, t)
}

// Drain returns the pending toasts in arrival order and empties the outbox.
func (o *Outbox) Drain() []Toast {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.toasts
	o.toasts = nil
	return out
}

// Recorder captures toasts in memory. It is used where a caller needs the
// toast produced by a single operation, such as a JSON response.
type Recorder struct {
	mu     sync.Mutex
	Toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Toasts = append(r.Toasts, t)
}

// Last returns the most recent toast, if any.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Toasts) == 0 {
		return Toast{}, false
	}
	return r.Toasts[len(r.Toasts)-1], true
}

// Discard drops every toast.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Toast) {}
