// Package server is the catalog HTTP server: the JSON API used by the
// client and a plain HTML index for browsers.
package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"tableflip.dev/catalog/pkg/catalogdb"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(db *catalogdb.DB, products *catalogdb.ProductStore, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := NewProductHandler(products, logger)

	r.Get("/health", NewHealthHandler(db).Health)
	r.Get("/", h.Index)
	r.Post("/cadastrar", h.Create)
	r.Post("/atualizar/{id}", h.Update)
	r.Get("/get-produtos", h.List)
	r.Get("/produto/{id}", h.Get)
	r.Delete("/deletar/{id}", h.Delete)
	r.Get("/imagem/{id}", h.Image)

	return r
}
