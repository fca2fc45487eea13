// Package serve provides the runner for the catalog HTTP server.
package serve

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"tableflip.dev/catalog/pkg/catalogdb"
	"tableflip.dev/catalog/pkg/server"
)

type Serve struct {
	Addr   string
	DBPath string
	Logger *slog.Logger
	// Ready receives the bound address once the listener is up.
	Ready func(net.Addr)
}

func (s *Serve) Do(ctx context.Context) error {
	if s.Addr == "" {
		return errors.New("can not serve, no listen address")
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := catalogdb.Open(s.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := db.ProductCount()
	if err != nil {
		return err
	}
	logger.Info("catalog database ready", "path", s.DBPath, "products", count)

	router := server.NewRouter(db, catalogdb.NewProductStore(db), logger)
	return server.Serve(ctx, s.Addr, router, logger, s.Ready)
}
