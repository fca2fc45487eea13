package catalogdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/catalog/pkg/product"
)

// ErrNotFound is returned for ids with no product.
var ErrNotFound = errors.New("catalogdb: product not found")

// Image is an uploaded product picture.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProductStore handles product persistence.
type ProductStore struct {
	db  *DB
	now func() time.Time
}

func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db, now: time.Now}
}

const productColumns = `p.id, p.nome, p.descricao, p.valor, p.disponivel, i.produto_id IS NOT NULL`

const productFrom = `FROM produtos p LEFT JOIN imagens i ON i.produto_id = p.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (product.Product, error) {
	var (
		p        product.Product
		hasImage bool
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Available, &hasImage); err != nil {
		return product.Product{}, err
	}
	if hasImage {
		p.ImageURL = ImagePath(p.ID)
	}
	return p, nil
}

// ImagePath is where the server serves the image of id.
func ImagePath(id string) string {
	return "/imagem/" + id
}

// Create stores p under a new id. img may be nil.
func (s *ProductStore) Create(ctx context.Context, p product.Product, img *Image) (product.Product, error) {
	p.ID = uuid.New().String()
	now := s.now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return product.Product{}, fmt.Errorf("create product: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO produtos (id, nome, descricao, valor, disponivel, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.Price, p.Available, now, now)
	if err != nil {
		return product.Product{}, fmt.Errorf("create product: %w", err)
	}
	if err := putImage(ctx, tx, p.ID, img); err != nil {
		return product.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return product.Product{}, fmt.Errorf("create product: %w", err)
	}
	if img != nil {
		p.ImageURL = ImagePath(p.ID)
	}
	return p, nil
}

// List returns every product, cheapest first.
func (s *ProductStore) List(ctx context.Context) ([]product.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` `+productFrom+`
		ORDER BY p.valor ASC, p.created_at ASC, p.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns the product id.
func (s *ProductStore) Get(ctx context.Context, id string) (product.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productColumns+` `+productFrom+` WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, ErrNotFound
	}
	if err != nil {
		return product.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update replaces the fields of product id. A nil img keeps the current
// image.
func (s *ProductStore) Update(ctx context.Context, id string, p product.Product, img *Image) (product.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return product.Product{}, fmt.Errorf("update product: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE produtos SET nome = ?, descricao = ?, valor = ?, disponivel = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.Available, s.now().Unix(), id)
	if err != nil {
		return product.Product{}, fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return product.Product{}, ErrNotFound
	}
	if err := putImage(ctx, tx, id, img); err != nil {
		return product.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return product.Product{}, fmt.Errorf("update product: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes product id and its image.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM produtos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	// foreign_keys is off by default; remove the image explicitly.
	if _, err := tx.ExecContext(ctx, `DELETE FROM imagens WHERE produto_id = ?`, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return tx.Commit()
}

// Image returns the image of product id.
func (s *ProductStore) Image(ctx context.Context, id string) (*Image, error) {
	var img Image
	err := s.db.QueryRowContext(ctx, `SELECT nome, content_type, data FROM imagens WHERE produto_id = ?`, id).
		Scan(&img.Name, &img.ContentType, &img.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return &img, nil
}

func putImage(ctx context.Context, tx *sql.Tx, id string, img *Image) error {
	if img == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO imagens (produto_id, nome, content_type, data) VALUES (?, ?, ?, ?)
		ON CONFLICT(produto_id) DO UPDATE SET nome = excluded.nome, content_type = excluded.content_type, data = excluded.data
	`, id, img.Name, img.ContentType, img.Data)
	if err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	return nil
}
