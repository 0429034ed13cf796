// Package form holds controlled-input state for the site's forms and runs the
// simulated submission flow.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownField       = errors.New("unknown form field")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

var validate = validator.New()

// Field describes one input. Rules uses validator tag syntax, e.g. "required,email".
type Field struct {
	Name  string
	Label string
	Rules string
}

// FieldError reports a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned by Validate and Submit when any field fails.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Values is a snapshot of field values keyed by field name.
type Values map[string]string

// DeliverFunc receives the submitted values once the latency has elapsed.
type DeliverFunc func(ctx context.Context, v Values) error

type Form struct {
	mu      sync.Mutex
	fields  []Field
	values  Values
	busy    bool
	delay   time.Duration
	reset   bool
	initial Values
}

type Option func(*Form)

// WithDelay sets the simulated submission latency.
func WithDelay(d time.Duration) Option {
	return func(f *Form) { f.delay = d }
}

// WithResetOnSubmit clears every field after a successful submission.
func WithResetOnSubmit() Option {
	return func(f *Form) { f.reset = true }
}

// WithInitial seeds field values. Unknown names are ignored.
func WithInitial(v Values) Option {
	return func(f *Form) { f.initial = v }
}

func New(fields []Field, opts ...Option) *Form {
	f := &Form{fields: fields, values: make(Values, len(fields))}
	for _, opt := range opts {
		opt(f)
	}
	for _, fd := range fields {
		f.values[fd.Name] = f.initial[fd.Name]
	}
	return f
}

func (f *Form) Fields() []Field {
	return f.fields
}

func (f *Form) has(name string) bool {
	for _, fd := range f.fields {
		if fd.Name == name {
			return true
		}
	}
	return false
}

// Set updates one field.
func (f *Form) Set(name, value string) error {
	if !f.has(name) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	return nil
}

// SetAll applies every known key of v and ignores the rest.
func (f *Form) SetAll(v map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setAllLocked(v)
}

func (f *Form) setAllLocked(v map[string]string) {
	for _, fd := range f.fields {
		if val, ok := v[fd.Name]; ok {
			f.values[fd.Name] = val
		}
	}
}

func (f *Form) Get(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Values returns a copy of the current field values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Validate checks every field against its rules.
func (f *Form) Validate() error {
	return f.validate(f.Values())
}

func (f *Form) validate(v Values) error {
	var errs ValidationErrors
	for _, fd := range f.fields {
		if fd.Rules == "" {
			continue
		}
		err := validate.Var(strings.TrimSpace(v[fd.Name]), fd.Rules)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			errs = append(errs, FieldError{Field: fd.Name, Message: message(fd, verrs[0].Tag())})
			continue
		}
		return err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func message(fd Field, tag string) string {
	label := fd.Label
	if label == "" {
		label = fd.Name
	}
	switch tag {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	default:
		return label + " is invalid"
	}
}

// Submit validates the form and starts a submission. It returns immediately;
// the returned channel yields exactly one result after the configured delay,
// once deliver has run. The form stays busy until then and a concurrent Submit
// fails with ErrSubmissionInFlight. There is no cancellation: the callback
// fires once even if nobody reads the result.
func (f *Form) Submit(ctx context.Context, deliver DeliverFunc) (<-chan error, error) {
	return f.submit(ctx, nil, deliver)
}

// SubmitValues applies the known keys of v and submits them in one step.
// Nothing is written while another submission is in flight.
func (f *Form) SubmitValues(ctx context.Context, v map[string]string, deliver DeliverFunc) (<-chan error, error) {
	return f.submit(ctx, v, deliver)
}

func (f *Form) submit(ctx context.Context, v map[string]string, deliver DeliverFunc) (<-chan error, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	f.setAllLocked(v)
	snapshot := f.snapshotLocked()
	if err := f.validate(snapshot); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.busy = true
	f.mu.Unlock()

	done := make(chan error, 1)
	detached := context.WithoutCancel(ctx)
	go func() {
		time.Sleep(f.delay)

		var err error
		if deliver != nil {
			err = deliver(detached, snapshot)
		}

		f.mu.Lock()
		if err == nil && f.reset {
			for k := range f.values {
				f.values[k] = ""
			}
		}
		f.busy = false
		f.mu.Unlock()

		done <- err
		close(done)
	}()
	return done, nil
}

// SubmitAndWait runs Submit and blocks until the result is available or ctx
// is done. When ctx ends first the submission still completes in the background.
func (f *Form) SubmitAndWait(ctx context.Context, deliver DeliverFunc) error {
	done, err := f.Submit(ctx, deliver)
	return wait(ctx, done, err)
}

// SubmitValuesAndWait is SubmitValues followed by the wait of SubmitAndWait.
func (f *Form) SubmitValuesAndWait(ctx context.Context, v map[string]string, deliver DeliverFunc) error {
	done, err := f.SubmitValues(ctx, v, deliver)
	return wait(ctx, done, err)
}

func wait(ctx context.Context, done <-chan error, err error) error {
	if err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Form) snapshotLocked() Values {
	out := make(Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}
