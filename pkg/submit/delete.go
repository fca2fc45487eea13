package submit

import (
	"context"
	"log/slog"

	"tableflip.dev/catalog/pkg/events"
	"tableflip.dev/catalog/pkg/notify"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves without asking.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Remover deletes products on the server.
type Remover interface {
	Delete(ctx context.Context, id string) error
}

// Deleter runs the delete flow.
type Deleter struct {
	remover Remover
	opts    Options
	log     *slog.Logger
}

// NewDeleter returns a Deleter. Only the Sink, Bus and Logger options are
// used.
func NewDeleter(r Remover, opts Options) *Deleter {
	opts = opts.withDefaults()
	return &Deleter{remover: r, opts: opts, log: opts.Logger.With("component", "delete")}
}

// Delete asks confirm and then deletes id. A declined confirmation returns a
// Result that is neither OK nor failed.
func (d *Deleter) Delete(ctx context.Context, id string, confirm Confirmer) Result {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	ok, err := confirm.Confirm(ctx, notify.MsgConfirm)
	if err != nil {
		d.log.Warn("confirmation failed", "id", id, "error", err)
		return failed(err)
	}
	if !ok {
		d.log.Debug("delete declined", "id", id)
		return Result{}
	}

	if err := d.remover.Delete(ctx, id); err != nil {
		d.log.Warn("delete failed", "id", id, "error", err)
		d.opts.Sink.Notify(notify.New(notify.Error, notify.MsgDeleteFailed))
		return failed(err)
	}
	d.log.Info("product deleted", "id", id)
	d.opts.Sink.Notify(notify.New(notify.Success, notify.MsgDeleted))
	d.opts.Bus.Publish(events.Event{Kind: events.Deleted, ID: id})
	return Result{OK: true}
}
