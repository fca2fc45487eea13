// Package submit drives the product form's submission, delete, view and edit
// flows against the catalog server.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tableflip.dev/catalog/pkg/events"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
)

// State of the submission controller.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInFlight is returned by Submit while another submission is running.
var ErrInFlight = errors.New("submit: a submission is already in flight")

// Result is the outcome of one submit, delete, view or edit attempt.
type Result struct {
	OK      bool
	Err     error
	Product *product.Product
}

func failed(err error) Result { return Result{Err: err} }

// Form is the form being submitted.
type Form interface {
	Validate() form.Errors
	Values() map[string]string
	Files() map[string]string
	Set(name, value string) bool
	Reset()
}

var _ Form = (*form.Form)(nil)

// Sender delivers forms to the creation and update endpoints.
type Sender interface {
	Create(ctx context.Context, values, files map[string]string) (*product.Product, error)
	Update(ctx context.Context, id string, values, files map[string]string) (*product.Product, error)
}

// Modal is the entry dialog hosting the form.
type Modal interface {
	Open()
	Close()
}

// Draft is the stored draft of the form.
type Draft interface {
	Clear()
}

// Options carries the collaborators shared by the controllers in this
// package. Nil fields fall back to no-ops.
type Options struct {
	Sink   notify.Sink
	Bus    events.Publisher
	Modal  Modal
	Draft  Draft
	Logger *slog.Logger

	// ClearDraft erases the stored draft after a successful submission.
	ClearDraft bool
}

func (o Options) withDefaults() Options {
	if o.Sink == nil {
		o.Sink = notify.Discard
	}
	if o.Bus == nil {
		o.Bus = events.Discard
	}
	if o.Modal == nil {
		o.Modal = noModal{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type noModal struct{}

func (noModal) Open()  {}
func (noModal) Close() {}

// Controller submits the form, creating a product or, in edit mode,
// updating one.
type Controller struct {
	form   Form
	sender Sender
	opts   Options
	log    *slog.Logger

	mu      sync.Mutex
	state   State
	editing string
}

// New returns an idle controller in create mode.
func New(f Form, sender Sender, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		form:   f,
		sender: sender,
		opts:   opts,
		log:    opts.Logger.With("component", "submit"),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Editing returns the id of the product being edited.
func (c *Controller) Editing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing, c.editing != ""
}

// Edit switches to edit mode for id and opens the modal.
func (c *Controller) Edit(id string) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrInFlight
	}
	c.editing = id
	c.mu.Unlock()
	c.opts.Modal.Open()
	return nil
}

// Open switches to create mode and opens the modal.
func (c *Controller) Open() error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrInFlight
	}
	wasEditing := c.editing != ""
	c.editing = ""
	c.mu.Unlock()
	if wasEditing {
		// The form still holds the edited product.
		c.form.Reset()
	}
	c.opts.Modal.Open()
	return nil
}

// Cancel closes the modal and leaves edit mode. Form values are kept.
func (c *Controller) Cancel() {
	c.mu.Lock()
	wasEditing := c.editing != ""
	c.editing = ""
	c.mu.Unlock()
	if wasEditing {
		c.form.Reset()
	}
	c.opts.Modal.Close()
}

// Submit validates the form and sends it. A submit while another one is in
// flight returns ErrInFlight without sending anything.
func (c *Controller) Submit(ctx context.Context) Result {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		c.log.Debug("submit ignored while in flight")
		return failed(ErrInFlight)
	}
	if errs := c.form.Validate(); errs != nil {
		c.mu.Unlock()
		c.opts.Sink.Notify(notify.New(notify.Error, notify.MsgInvalid))
		return failed(errs)
	}
	c.state = StateSubmitting
	id := c.editing
	values, files := c.form.Values(), c.form.Files()
	c.mu.Unlock()

	var (
		p   *product.Product
		err error
	)
	if id == "" {
		p, err = c.sender.Create(ctx, values, files)
	} else {
		p, err = c.sender.Update(ctx, id, values, files)
	}

	c.mu.Lock()
	c.state = StateIdle
	if err == nil {
		c.editing = ""
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("submit failed", "id", id, "error", err)
		msg := notify.MsgCreateFailed
		if id != "" {
			msg = notify.MsgUpdateFailed
		}
		c.opts.Sink.Notify(notify.New(notify.Error, msg))
		return failed(err)
	}

	kind, msg := events.Submitted, notify.MsgCreated
	if id != "" {
		kind, msg = events.Updated, notify.MsgUpdated
	}
	if p != nil && p.ID != "" {
		id = p.ID
	}
	c.log.Info("product saved", "kind", string(kind), "id", id)

	c.opts.Sink.Notify(notify.New(notify.Success, msg))
	c.form.Reset()
	if c.opts.ClearDraft && c.opts.Draft != nil {
		c.opts.Draft.Clear()
	}
	c.opts.Modal.Close()
	c.opts.Bus.Publish(events.Event{Kind: kind, ID: id, Product: p})
	return Result{OK: true, Product: p}
}
