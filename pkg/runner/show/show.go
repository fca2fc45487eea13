// Package show provides the CLI runner that prints one product.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/printers"
	"tableflip.dev/catalog/pkg/product"
	"tableflip.dev/catalog/pkg/submit"
)

type Show struct {
	Client submit.Loader
	ID     string
	JSON   bool
	Out    io.Writer
	Sink   notify.Sink
	Logger *slog.Logger
}

func (s *Show) Do(ctx context.Context) error {
	if s.Client == nil {
		return errors.New("can not show, no catalog client")
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	var present submit.PresenterFunc
	if s.JSON {
		present = func(p product.Product) {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			_ = enc.Encode(p)
		}
	} else {
		pp := printers.PrettyPrint{ShowID: true, Out: out}
		present = func(p product.Product) {
			pp.NewLine()
			pp.Product(p)
		}
	}

	v := submit.NewViewer(s.Client, present, nil, nil, submit.Options{Sink: s.Sink, Logger: s.Logger})
	return v.View(ctx, s.ID).Err
}
