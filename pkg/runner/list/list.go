// Package list provides the CLI runner that prints the product catalog.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/catalog/pkg/listing"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/printers"
	"tableflip.dev/catalog/pkg/product"
)

// List prints every product, cheapest first.
type List struct {
	Client listing.Lister
	ShowID bool
	// AvailableOnly hides products not marked disponivel.
	AvailableOnly bool
	JSON          bool
	Out           io.Writer
	Sink          notify.Sink
	Logger        *slog.Logger
}

func (l *List) Do(ctx context.Context) error {
	if l.Client == nil {
		return errors.New("can not list, no catalog client")
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}
	sink := l.Sink
	if sink == nil {
		sink = notify.Discard
	}

	r := listing.New(l.Client, listing.RenderFunc(func([]product.Row) {}),
		listing.WithSink(sink),
		listing.WithLogger(l.Logger),
	)
	if _, err := r.Refresh(ctx); err != nil {
		return err
	}
	products := r.Products()
	if l.AvailableOnly {
		kept := products[:0:0]
		for _, p := range products {
			if p.Available {
				kept = append(kept, p)
			}
		}
		products = kept
	}

	if l.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: out}
	pp.NewLine()
	pp.TitleWithCount("Produtos", len(products))
	pp.Products(products...)
	return nil
}
