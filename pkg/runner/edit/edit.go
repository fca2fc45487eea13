// Package edit provides the CLI runner that updates an existing product.
package edit

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/printers"
	"tableflip.dev/catalog/pkg/submit"
)

// Client loads and updates products.
type Client interface {
	submit.Loader
	submit.Sender
}

// Edit loads product ID into the product form, applies Values over it and
// submits the result as an update. Fields not in Values keep their stored
// value.
type Edit struct {
	Client Client
	ID     string
	Values map[string]string
	Image  string

	Out    io.Writer
	Sink   notify.Sink
	Logger *slog.Logger
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Client == nil {
		return errors.New("can not edit, no catalog client")
	}
	if len(e.Values) == 0 && e.Image == "" {
		return errors.New("nothing to change, set at least one field flag")
	}

	opts := submit.Options{Sink: e.Sink, Logger: e.Logger}
	f := form.ProductForm()
	ctrl := submit.New(f, e.Client, opts)
	viewer := submit.NewViewer(e.Client, nil, f, ctrl, opts)
	if res := viewer.Edit(ctx, e.ID); res.Err != nil {
		return res.Err
	}

	for name, value := range e.Values {
		if f.Has(name) {
			f.Set(name, value)
		}
	}
	if e.Image != "" {
		f.SetFile(form.FieldImage, e.Image)
	}

	res := ctrl.Submit(ctx)
	if res.Err != nil {
		return res.Err
	}
	if res.Product != nil {
		out := e.Out
		if out == nil {
			out = color.Output
		}
		pp := printers.PrettyPrint{ShowID: true, Out: out}
		pp.NewLine()
		pp.Product(*res.Product)
	}
	return nil
}
