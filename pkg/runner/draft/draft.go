// Package draft provides the CLI runners that inspect and clear the
// autosaved product form draft.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/catalog/pkg/draft"
	"tableflip.dev/catalog/pkg/printers"
	"tableflip.dev/catalog/pkg/store"
)

// Store is a draft store that can report changes.
type Store interface {
	draft.Store
	Watch(ctx context.Context) (<-chan store.Event, error)
}

var _ Store = (*store.KV)(nil)

// Show prints the draft stored under Key. With Follow it keeps printing it
// every time another process saves or clears it, until ctx is done.
type Show struct {
	Store  Store
	Key    string
	Follow bool
	JSON   bool
	Out    io.Writer
	Logger *slog.Logger
}

func (s *Show) Do(ctx context.Context) error {
	if s.Store == nil {
		return errors.New("can not show draft, no store")
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !s.Follow {
		return s.print()
	}

	events, err := s.Store.Watch(ctx)
	if err != nil {
		return err
	}
	if err := s.print(); err != nil {
		return err
	}
	for ev := range events {
		if ev.Key != s.Key {
			continue
		}
		logger.Debug("draft changed", "key", ev.Key, "type", ev.Type.String())
		if err := s.print(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Show) print() error {
	out := s.Out
	if out == nil {
		out = color.Output
	}
	d, ok := draft.Load(s.Store, s.Key)
	if s.JSON {
		if !ok {
			d = draft.Draft{}
		}
		return json.NewEncoder(out).Encode(d)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Draft(s.Key, d)
	return nil
}

// Clear erases the draft stored under Key.
type Clear struct {
	Store draft.Store
	Key   string
}

func (c *Clear) Do(ctx context.Context) error {
	if c.Store == nil {
		return errors.New("can not clear draft, no store")
	}
	c.Store.Erase(c.Key)
	return nil
}
