// Package draft keeps an in-progress form in sync with the local store so it
// can be recovered after the program exits.
package draft

import (
	"log/slog"
	"time"

	"tableflip.dev/catalog/pkg/debounce"
	"tableflip.dev/catalog/pkg/store"
)

// DefaultDelay is how long input must be quiet before the draft is saved.
const DefaultDelay = time.Second

// Draft maps field names to their values.
type Draft map[string]string

// Fields is the form side of the binding.
type Fields interface {
	Has(name string) bool
	Values() map[string]string
	Set(name, value string) bool
}

// Store is where drafts are kept.
type Store interface {
	Set(key string, value any)
	Get(key string, target any) bool
	Erase(key string)
}

var _ Store = (*store.KV)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the autosave quiet period.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithKey stores the draft under key instead of store.DefaultDraftKey.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDebounceOptions passes options to the underlying debouncer.
func WithDebounceOptions(opts ...debounce.Option) Option {
	return func(c *Controller) { c.debounceOpts = append(c.debounceOpts, opts...) }
}

// Controller autosaves a form and restores it on construction.
type Controller struct {
	fields Fields
	store  Store
	key    string
	delay  time.Duration
	log    *slog.Logger

	debounceOpts []debounce.Option
	saver        *debounce.Debouncer
	restored     Draft
}

// New binds fields to st and restores any saved draft into fields. Draft
// keys the form does not know are skipped.
func New(fields Fields, st Store, opts ...Option) *Controller {
	c := &Controller{
		fields: fields,
		store:  st,
		key:    store.DefaultDraftKey,
		delay:  DefaultDelay,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "draft", "key", c.key)
	c.saver = debounce.New(c.Save, c.delay, c.debounceOpts...)
	c.restore()
	return c
}

func (c *Controller) restore() {
	var d Draft
	if !c.store.Get(c.key, &d) || len(d) == 0 {
		return
	}
	applied := make(Draft, len(d))
	for name, value := range d {
		if !c.fields.Has(name) {
			c.log.Debug("skipping unknown draft field", "field", name)
			continue
		}
		if c.fields.Set(name, value) {
			applied[name] = value
		}
	}
	c.restored = applied
	c.log.Debug("draft restored", "fields", len(applied))
}

// Reload applies the saved draft to the form again, after the form was
// used for something else. It returns the applied fields.
func (c *Controller) Reload() Draft {
	c.restored = nil
	c.restore()
	return c.restored
}

// Restored returns the fields applied from the saved draft, or nil.
func (c *Controller) Restored() Draft {
	return c.restored
}

// Key returns the store key of the draft.
func (c *Controller) Key() string {
	return c.key
}

// OnInput is called on every field input event.
func (c *Controller) OnInput() {
	c.saver.Trigger()
}

// Save writes the current field values now. The new draft replaces the
// stored one.
func (c *Controller) Save() {
	d := Draft(c.fields.Values())
	c.store.Set(c.key, d)
}

// Flush persists a pending autosave immediately.
func (c *Controller) Flush() bool {
	return c.saver.Flush()
}

// Pending reports whether an autosave is scheduled.
func (c *Controller) Pending() bool {
	return c.saver.Pending()
}

// Clear cancels a pending autosave and erases the stored draft.
func (c *Controller) Clear() {
	c.saver.Stop()
	c.store.Erase(c.key)
}

// Load reads the stored draft without touching the form.
func Load(st Store, key string) (Draft, bool) {
	var d Draft
	if !st.Get(key, &d) {
		return nil, false
	}
	return d, true
}
