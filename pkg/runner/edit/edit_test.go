package edit

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/catalog/pkg/catalog"
	"tableflip.dev/catalog/pkg/catalogdb"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/product"
	"tableflip.dev/catalog/pkg/server"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newCatalog(t *testing.T) *catalog.Client {
	t.Helper()
	db, err := catalogdb.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	srv := httptest.NewServer(server.NewRouter(db, catalogdb.NewProductStore(db), discard))
	t.Cleanup(srv.Close)
	return catalog.New(srv.URL)
}

func TestEditKeepsUnchangedFields(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	p, err := c.Create(ctx, map[string]string{
		form.FieldName:      "Caneca",
		form.FieldDesc:      "Azul",
		form.FieldPrice:     "19.90",
		form.FieldAvailable: form.Yes,
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var out bytes.Buffer
	e := Edit{
		Client: c,
		ID:     p.ID,
		Values: map[string]string{form.FieldPrice: "25.00", form.FieldAvailable: form.No},
		Out:    &out,
		Logger: discard,
	}
	if err := e.Do(ctx); err != nil {
		t.Fatalf("Do: %v", err)
	}

	got, err := c.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := product.Product{ID: p.ID, Name: "Caneca", Description: "Azul", Price: 25, Available: false}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("product (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "R$ 25,00") {
		t.Fatalf("updated product not printed:\n%s", out.String())
	}
}

func TestEditNothingToChange(t *testing.T) {
	e := Edit{Client: newCatalog(t), ID: "x", Logger: discard}
	if err := e.Do(context.Background()); err == nil {
		t.Fatalf("expected error without changes")
	}
}

func TestEditUnknownProduct(t *testing.T) {
	e := Edit{
		Client: newCatalog(t),
		ID:     "missing",
		Values: map[string]string{form.FieldName: "Caneca"},
		Logger: discard,
	}
	err := e.Do(context.Background())
	if !catalog.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}
