// Package listing keeps the rendered product table in step with the server.
package listing

import (
	"context"
	"log/slog"
	"sync"

	"tableflip.dev/catalog/pkg/events"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
)

// Lister fetches the product list.
type Lister interface {
	List(ctx context.Context) ([]product.Product, error)
}

// Renderer displays rows.
type Renderer interface {
	Render(rows []product.Row)
}

// RenderFunc adapts a function to a Renderer.
type RenderFunc func(rows []product.Row)

func (f RenderFunc) Render(rows []product.Row) { f(rows) }

// Option configures a Refresher.
type Option func(*Refresher)

// WithSink reports list failures to s.
func WithSink(s notify.Sink) Option {
	return func(r *Refresher) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Refresher) {
		if l != nil {
			r.log = l
		}
	}
}

// Refresher lists products and renders them. Responses that arrive after a
// newer one was applied are dropped.
type Refresher struct {
	lister Lister
	render Renderer
	sink   notify.Sink
	log    *slog.Logger

	mu       sync.Mutex
	issued   uint64
	applied  uint64
	products []product.Product
}

// New returns a Refresher.
func New(l Lister, r Renderer, opts ...Option) *Refresher {
	rf := &Refresher{
		lister: l,
		render: r,
		sink:   notify.Discard,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(rf)
	}
	rf.log = rf.log.With("component", "listing")
	return rf
}

// Refresh lists and renders. It reports whether its response was applied.
func (r *Refresher) Refresh(ctx context.Context) (bool, error) {
	r.mu.Lock()
	r.issued++
	token := r.issued
	r.mu.Unlock()

	products, err := r.lister.List(ctx)
	if err != nil {
		r.log.Warn("list failed", "token", token, "error", err)
		r.sink.Notify(notify.New(notify.Error, notify.MsgListFailed))
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if token < r.applied {
		r.log.Debug("dropping stale list response", "token", token, "applied", r.applied)
		return false, nil
	}
	r.applied = token
	r.products = products
	// Render under the lock so a stale response can never be drawn after a
	// fresher one.
	r.render.Render(product.Rows(products))
	return true, nil
}

// Products returns the last applied product list.
func (r *Refresher) Products() []product.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]product.Product(nil), r.products...)
}

// Attach refreshes on every product change published on bus. The returned
// function detaches it.
func (r *Refresher) Attach(ctx context.Context, bus *events.Bus) func() {
	return bus.Subscribe(func(ev events.Event) {
		switch ev.Kind {
		case events.Submitted, events.Updated, events.Deleted:
			r.log.Debug("refresh on change", "event", ev.Describe())
			_, _ = r.Refresh(ctx)
		}
	})
}
