package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/catalog/pkg/draft"
	"tableflip.dev/catalog/pkg/tui/app"
)

// UI runs the full-screen catalog interface.
type UI struct {
	Client   app.Client
	Drafts   draft.Store
	DraftKey string

	Debounce   time.Duration
	Toast      time.Duration
	ClearDraft bool
	// ImageBase is the server URL product image paths are relative to.
	ImageBase string

	Logger *slog.Logger

	// Input and Output replace the terminal when set.
	Input  io.Reader
	Output io.Writer
}

func (u *UI) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := app.New(ctx, app.Options{
		Client:             u.Client,
		Drafts:             u.Drafts,
		DraftKey:           u.DraftKey,
		Debounce:           u.Debounce,
		ToastDuration:      u.Toast,
		ClearDraftOnSubmit: u.ClearDraft,
		ImageBase:          u.ImageBase,
		Logger:             u.Logger,
	})
	// Quitting closes the model too; this covers the program being killed.
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if u.Input != nil {
		opts = append(opts, tea.WithInput(u.Input))
	}
	if u.Output != nil {
		opts = append(opts, tea.WithOutput(u.Output))
	}
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
