// submit/controller.go
// Package submit runs the contact form's submit lifecycle: full-form
// validation, the loading state, the (simulated) transport call, and the
// switch to the success presentation.
package submit

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/contactform/form"
	"github.com/dalemusser/contactform/page"
	"go.uber.org/zap"
)

// DefaultGraceDelay separates revealing the success panel from fading it in.
const DefaultGraceDelay = 100 * time.Millisecond

// FailureNotice is shown when the transport reports an error.
const FailureNotice = "Произошла ошибка при отправке. Попробуйте еще раз."

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitter replaces the simulated transport.
func WithSubmitter(s Submitter) Option {
	return func(c *Controller) { c.submitter = s }
}

// WithGraceDelay sets the pause before the success panel fades in.
func WithGraceDelay(d time.Duration) Option {
	return func(c *Controller) { c.grace = d }
}

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller owns the submission state of one page. Field validation
// handlers and the submit handler all go through it.
type Controller struct {
	mu        sync.Mutex
	page      page.Page
	specs     []form.Spec
	submitter Submitter
	grace     time.Duration
	logger    *zap.Logger
	state     State
}

// New returns an Idle controller driving p. Without WithSubmitter it uses
// a Simulated transport with DefaultDelay.
func New(p page.Page, opts ...Option) *Controller {
	c := &Controller{
		page:   p,
		specs:  form.Specs(),
		grace:  DefaultGraceDelay,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.submitter == nil {
		c.submitter = NewSimulated(c.logger)
	}
	return c
}

// State returns the current lifecycle stage.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ValidateField validates one field against the page and updates its
// error display. It reports whether the field is valid.
func (c *Controller) ValidateField(f form.Field) bool {
	for _, s := range c.specs {
		if s.Field == f {
			return c.apply(s)
		}
	}
	return true
}

// ValidateAll validates every field in declared order without stopping at
// the first failure, so all error displays are current afterwards.
func (c *Controller) ValidateAll() bool {
	ok := true
	for _, s := range c.specs {
		if !c.apply(s) {
			ok = false
		}
	}
	return ok
}

func (c *Controller) apply(s form.Spec) bool {
	msg := form.MessageFor(s.Field, s.Rule(c.read(s.Field)))
	if msg != "" {
		c.page.SetErrorText(s.Field, msg)
		c.page.SetErrorFlag(s.Field, true)
		return false
	}
	c.hideError(s.Field)
	return true
}

func (c *Controller) read(f form.Field) form.Value {
	if f.IsCheckbox() {
		return form.Checked(c.page.Checked(f))
	}
	return form.Text(c.page.Value(f))
}

func (c *Controller) hideError(f form.Field) {
	c.page.SetErrorText(f, "")
	c.page.SetErrorFlag(f, false)
}

// OnBlur handles a field losing focus.
func (c *Controller) OnBlur(f form.Field) {
	c.ValidateField(f)
}

// OnEdit handles input on a text field or change on the checkbox: a shown
// error is cleared, nothing is re-validated.
func (c *Controller) OnEdit(f form.Field) {
	if c.page.ErrorText(f) != "" {
		c.hideError(f)
	}
}

// OnPhoneInput reformats the phone field in place.
func (c *Controller) OnPhoneInput() {
	c.page.SetValue(form.Phone, form.FormatPhone(c.page.Value(form.Phone)))
}

// OnSubmitAttempt runs a submit attempt. Validation, error focus and the
// switch into Loading happen before it returns; the transport is awaited
// on a separate goroutine. The returned channel yields the state the
// attempt settles in and is then closed.
//
// Attempts made while another one is in flight are ignored and settle
// immediately with the current state.
func (c *Controller) OnSubmitAttempt(ctx context.Context) <-chan State {
	done := make(chan State, 1)

	c.mu.Lock()
	if !c.state.accepting() {
		cur := c.state
		c.mu.Unlock()
		done <- cur
		close(done)
		return done
	}

	c.state = Validating
	if !c.ValidateAll() {
		c.focusFirstError()
		c.state = Idle
		c.mu.Unlock()
		done <- Idle
		close(done)
		return done
	}

	values := c.collect()
	c.setLoading(true)
	c.state = Loading
	fut := c.submitter.Submit(ctx, values)
	if fut == nil {
		fut = Rejected(ErrNoFuture)
	}
	c.mu.Unlock()

	go c.await(context.WithoutCancel(ctx), fut, done)
	return done
}

func (c *Controller) await(ctx context.Context, fut *Future, done chan<- State) {
	res, err := fut.Await(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	final := Idle
	switch {
	case err != nil:
		c.logger.Error("form submission failed", zap.Error(err))
		c.page.Notify(FailureNotice)
	case res.Success:
		c.showSuccess()
		final = Succeeded
	default:
		c.logger.Warn("form submission not accepted")
	}
	c.setLoading(false)
	c.state = final

	done <- final
	close(done)
}

func (c *Controller) focusFirstError() {
	for _, s := range c.specs {
		if c.page.ErrorText(s.Field) != "" {
			c.page.Focus(s.Field)
			return
		}
	}
}

func (c *Controller) collect() form.Values {
	values := make(form.Values, len(c.specs))
	for _, s := range c.specs {
		f := s.Field
		if f.IsCheckbox() {
			if c.page.Checked(f) {
				values[f.ID()] = form.CheckedValue
			}
			continue
		}
		values[f.ID()] = c.page.Value(f)
	}
	return values
}

func (c *Controller) setLoading(loading bool) {
	c.page.SetDisabled(page.SubmitButton, loading)
	c.page.SetVisible(page.SubmitLabel, !loading)
	c.page.SetVisible(page.SubmitLoader, loading)
}

func (c *Controller) showSuccess() {
	c.page.SetVisible(page.Form, false)
	c.page.SetVisible(page.SuccessPanel, true)
	p := c.page
	time.AfterFunc(c.grace, func() {
		p.SetOpacity(page.SuccessPanel, 1)
	})
}
