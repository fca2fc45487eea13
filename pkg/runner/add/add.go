// Package add provides the CLI runner that submits a new product through the
// product form.
package add

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/catalog/pkg/draft"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/printers"
	"tableflip.dev/catalog/pkg/submit"
)

type Add struct {
	Client submit.Sender
	// Values are form values keyed by field name; Image is a file path.
	Values map[string]string
	Image  string

	// Drafts and DraftKey locate the autosaved form draft. With FromDraft
	// the form starts from it; with ClearDraft it is erased once the
	// product is saved.
	Drafts     draft.Store
	DraftKey   string
	FromDraft  bool
	ClearDraft bool

	Out    io.Writer
	Sink   notify.Sink
	Logger *slog.Logger
}

func (n *Add) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not add, no catalog client")
	}

	f := form.ProductForm()
	if n.FromDraft {
		if n.Drafts == nil {
			return errors.New("can not read the draft, no store")
		}
		d, ok := draft.Load(n.Drafts, n.DraftKey)
		if !ok {
			return errors.New("no draft saved")
		}
		fill(f, d)
	}
	fill(f, n.Values)
	if n.Image != "" {
		f.SetFile(form.FieldImage, n.Image)
	}

	opts := submit.Options{Sink: n.Sink, Logger: n.Logger, ClearDraft: n.ClearDraft}
	if n.Drafts != nil {
		opts.Draft = clearer{store: n.Drafts, key: n.DraftKey}
	}
	res := submit.New(f, n.Client, opts).Submit(ctx)
	if res.Err != nil {
		return res.Err
	}
	if res.Product != nil {
		out := n.Out
		if out == nil {
			out = color.Output
		}
		pp := printers.PrettyPrint{ShowID: true, Out: out}
		pp.NewLine()
		pp.Product(*res.Product)
	}
	return nil
}

func fill(f *form.Form, values map[string]string) {
	for name, value := range values {
		if f.Has(name) {
			f.Set(name, value)
		}
	}
}

type clearer struct {
	store draft.Store
	key   string
}

func (c clearer) Clear() { c.store.Erase(c.key) }
