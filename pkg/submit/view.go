package submit

import (
	"context"
	"log/slog"

	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
)

// Loader fetches single products.
type Loader interface {
	Get(ctx context.Context, id string) (*product.Product, error)
}

// Presenter displays a product read-only.
type Presenter interface {
	Present(product.Product)
}

// PresenterFunc adapts a function to a Presenter.
type PresenterFunc func(product.Product)

func (f PresenterFunc) Present(p product.Product) { f(p) }

// Viewer runs the view and edit flows.
type Viewer struct {
	loader    Loader
	presenter Presenter
	form      Form
	ctrl      *Controller
	opts      Options
	log       *slog.Logger
}

// NewViewer returns a Viewer. Edit fills f and hands it to ctrl; either may be
// nil when only View is used.
func NewViewer(l Loader, p Presenter, f Form, ctrl *Controller, opts Options) *Viewer {
	opts = opts.withDefaults()
	if p == nil {
		p = PresenterFunc(func(product.Product) {})
	}
	return &Viewer{
		loader:    l,
		presenter: p,
		form:      f,
		ctrl:      ctrl,
		opts:      opts,
		log:       opts.Logger.With("component", "view"),
	}
}

func (v *Viewer) load(ctx context.Context, id string) (*product.Product, error) {
	p, err := v.loader.Get(ctx, id)
	if err != nil {
		v.log.Warn("load failed", "id", id, "error", err)
		v.opts.Sink.Notify(notify.New(notify.Error, notify.MsgLoadFailed))
		return nil, err
	}
	return p, nil
}

// View loads id and presents it.
func (v *Viewer) View(ctx context.Context, id string) Result {
	p, err := v.load(ctx, id)
	if err != nil {
		return failed(err)
	}
	v.presenter.Present(*p)
	return Result{OK: true, Product: p}
}

// Edit loads id, fills the form with it and puts the controller in edit
// mode for id.
func (v *Viewer) Edit(ctx context.Context, id string) Result {
	p, err := v.load(ctx, id)
	if err != nil {
		return failed(err)
	}
	if v.ctrl != nil {
		if st := v.ctrl.State(); st == StateSubmitting {
			return failed(ErrInFlight)
		}
	}
	if v.form != nil {
		v.form.Reset()
		for name, value := range p.FormValues() {
			v.form.Set(name, value)
		}
	}
	if v.ctrl != nil {
		if err := v.ctrl.Edit(id); err != nil {
			return failed(err)
		}
	}
	return Result{OK: true, Product: p}
}
