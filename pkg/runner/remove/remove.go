// Package remove provides the CLI runner that deletes a product after asking
// for confirmation.
package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/submit"
)

// ErrNotInteractive is returned when confirmation is needed but stdin is not
// a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal, pass --yes to delete without confirmation")

type Remove struct {
	Client submit.Remover
	ID     string
	// Yes skips the confirmation.
	Yes bool
	// Confirmer overrides the terminal prompt.
	Confirmer submit.Confirmer

	Sink   notify.Sink
	Logger *slog.Logger
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Client == nil {
		return errors.New("can not delete, no catalog client")
	}
	confirm := r.Confirmer
	switch {
	case r.Yes:
		confirm = submit.AlwaysConfirm
	case confirm == nil:
		if !Interactive(os.Stdin) {
			return ErrNotInteractive
		}
		confirm = Prompt{}
	}

	d := submit.NewDeleter(r.Client, submit.Options{Sink: r.Sink, Logger: r.Logger})
	return d.Delete(ctx, r.ID, confirm).Err
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Prompt asks for confirmation with a y/N promptui prompt.
type Prompt struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

func (p Prompt) Confirm(_ context.Context, label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.In,
		Stdout:    p.Out,
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, err
	}
}
