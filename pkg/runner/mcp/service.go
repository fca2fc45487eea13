// Package mcp provides the Model Context Protocol server integration for the
// catalog.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/catalog/pkg/draft"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/product"
)

// Catalog is the subset of the catalog client the MCP server needs.
type Catalog interface {
	List(ctx context.Context) ([]product.Product, error)
	Get(ctx context.Context, id string) (*product.Product, error)
	Create(ctx context.Context, values, files map[string]string) (*product.Product, error)
	Update(ctx context.Context, id string, values, files map[string]string) (*product.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service coordinates catalog operations that are shared by the MCP server.
type Service struct {
	Catalog Catalog
	// Drafts, when set, exposes the locally stored form draft.
	Drafts   draft.Store
	DraftKey string
}

// ProductDTO is a transport-friendly projection of a product.
type ProductDTO struct {
	product.Product
	PriceText string `json:"valorFormatado"`
}

// ProductOptions captures the parameters used to create or update a product.
type ProductOptions struct {
	Name        string
	Description string
	Price       float64
	Available   bool
	ImagePath   string
}

// NewService builds a service wrapper using the provided catalog client.
func NewService(c Catalog) *Service {
	return &Service{Catalog: c}
}

func toDTO(p product.Product) ProductDTO {
	return ProductDTO{Product: p, PriceText: product.FormatBRL(p.Price)}
}

func (s *Service) ready() error {
	if s.Catalog == nil {
		return errors.New("catalog client is not configured")
	}
	return nil
}

// ListProducts returns every product, cheapest first.
func (s *Service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	products, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toDTO(p))
	}
	return out, nil
}

// GetProduct loads one product.
func (s *Service) GetProduct(ctx context.Context, id string) (ProductDTO, error) {
	if err := s.ready(); err != nil {
		return ProductDTO{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ProductDTO{}, errors.New("id is required")
	}
	p, err := s.Catalog.Get(ctx, id)
	if err != nil {
		return ProductDTO{}, err
	}
	return toDTO(*p), nil
}

// formFor runs opts through the product form so the server receives the
// same payload the TUI would send.
func formFor(opts ProductOptions) (*form.Form, error) {
	f := form.ProductForm()
	f.Set(form.FieldName, strings.TrimSpace(opts.Name))
	f.Set(form.FieldDesc, strings.TrimSpace(opts.Description))
	if opts.Price < 0 {
		return nil, fmt.Errorf("valor must not be negative")
	}
	f.Set(form.FieldPrice, fmt.Sprintf("%.2f", opts.Price))
	available := form.No
	if opts.Available {
		available = form.Yes
	}
	f.Set(form.FieldAvailable, available)
	if opts.ImagePath != "" {
		f.SetFile(form.FieldImage, opts.ImagePath)
	}
	if errs := f.Validate(); errs != nil {
		return nil, errs
	}
	return f, nil
}

// CreateProduct submits a new product.
func (s *Service) CreateProduct(ctx context.Context, opts ProductOptions) (ProductDTO, error) {
	if err := s.ready(); err != nil {
		return ProductDTO{}, err
	}
	f, err := formFor(opts)
	if err != nil {
		return ProductDTO{}, err
	}
	p, err := s.Catalog.Create(ctx, f.Values(), f.Files())
	if err != nil {
		return ProductDTO{}, err
	}
	if p == nil {
		return ProductDTO{}, errors.New("server did not return the created product")
	}
	return toDTO(*p), nil
}

// UpdateProduct replaces product id.
func (s *Service) UpdateProduct(ctx context.Context, id string, opts ProductOptions) (ProductDTO, error) {
	if err := s.ready(); err != nil {
		return ProductDTO{}, err
	}
	if strings.TrimSpace(id) == "" {
		return ProductDTO{}, errors.New("id is required")
	}
	f, err := formFor(opts)
	if err != nil {
		return ProductDTO{}, err
	}
	p, err := s.Catalog.Update(ctx, id, f.Values(), f.Files())
	if err != nil {
		return ProductDTO{}, err
	}
	if p == nil {
		return ProductDTO{}, errors.New("server did not return the updated product")
	}
	return toDTO(*p), nil
}

// DeleteProduct removes product id.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return s.Catalog.Delete(ctx, id)
}

// Draft returns the locally stored form draft.
func (s *Service) Draft() (draft.Draft, bool) {
	if s.Drafts == nil {
		return nil, false
	}
	return draft.Load(s.Drafts, s.DraftKey)
}
