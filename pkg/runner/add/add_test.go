package add

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/catalog/pkg/catalog"
	"tableflip.dev/catalog/pkg/catalogdb"
	"tableflip.dev/catalog/pkg/draft"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
	"tableflip.dev/catalog/pkg/server"
	"tableflip.dev/catalog/pkg/store"
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

func onlyProduct(t *testing.T, c *catalog.Client) product.Product {
	t.Helper()
	ps, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ps) != 1 {
		t.Fatalf("got %d products, want 1", len(ps))
	}
	return ps[0]
}

var saved = draft.Draft{
	form.FieldName:      "Caneca",
	form.FieldDesc:      "Azul",
	form.FieldPrice:     "19.90",
	form.FieldAvailable: form.Yes,
}

func TestAddFromValues(t *testing.T) {
	c := newCatalog(t)
	var out bytes.Buffer
	a := Add{
		Client: c,
		Values: map[string]string{form.FieldName: "Garrafa", form.FieldPrice: "45.00"},
		Out:    &out,
		Logger: discard,
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := onlyProduct(t, c)
	if got.Name != "Garrafa" || got.Price != 45 || !got.Available {
		t.Fatalf("created %+v", got)
	}
	if !strings.Contains(out.String(), "R$ 45,00") {
		t.Fatalf("product not printed:\n%s", out.String())
	}
}

func TestAddFlagsOverrideDraft(t *testing.T) {
	c := newCatalog(t)
	kv := store.Open(t.TempDir(), discard)
	kv.Set(store.DefaultDraftKey, saved)

	a := Add{
		Client:    c,
		Values:    map[string]string{form.FieldName: "Caneca grande"},
		Drafts:    kv,
		DraftKey:  store.DefaultDraftKey,
		FromDraft: true,
		Out:       &bytes.Buffer{},
		Logger:    discard,
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := onlyProduct(t, c)
	want := product.Product{ID: got.ID, Name: "Caneca grande", Description: "Azul", Price: 19.9, Available: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("product (-want +got):\n%s", diff)
	}
	// Without ClearDraft the draft stays.
	if d, ok := draft.Load(kv, store.DefaultDraftKey); !ok || d[form.FieldName] != "Caneca" {
		t.Fatalf("draft = %v, %v", d, ok)
	}
}

func TestAddClearsDraftAfterSuccess(t *testing.T) {
	c := newCatalog(t)
	kv := store.Open(t.TempDir(), discard)
	kv.Set(store.DefaultDraftKey, saved)

	a := Add{
		Client:     c,
		Drafts:     kv,
		DraftKey:   store.DefaultDraftKey,
		FromDraft:  true,
		ClearDraft: true,
		Out:        &bytes.Buffer{},
		Logger:     discard,
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if kv.Has(store.DefaultDraftKey) {
		t.Fatalf("draft kept after a successful submit")
	}
}

func TestAddKeepsDraftOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()
	kv := store.Open(t.TempDir(), discard)
	kv.Set(store.DefaultDraftKey, saved)

	var got []notify.Notification
	a := Add{
		Client:     catalog.New(srv.URL),
		Drafts:     kv,
		DraftKey:   store.DefaultDraftKey,
		FromDraft:  true,
		ClearDraft: true,
		Out:        &bytes.Buffer{},
		Sink:       notify.SinkFunc(func(n notify.Notification) { got = append(got, n) }),
		Logger:     discard,
	}
	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected error from the server")
	}
	if !kv.Has(store.DefaultDraftKey) {
		t.Fatalf("draft erased after a failed submit")
	}
	if len(got) != 1 || got[0].Message != notify.MsgCreateFailed {
		t.Fatalf("notifications = %+v", got)
	}
}

func TestAddFromMissingDraft(t *testing.T) {
	a := Add{
		Client:    newCatalog(t),
		Drafts:    store.Open(t.TempDir(), discard),
		DraftKey:  store.DefaultDraftKey,
		FromDraft: true,
		Logger:    discard,
	}
	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected error without a saved draft")
	}
}

func TestAddInvalidSendsNothing(t *testing.T) {
	c := newCatalog(t)
	a := Add{Client: c, Values: map[string]string{form.FieldPrice: "10.00"}, Logger: discard}
	err := a.Do(context.Background())
	var errs form.Errors
	if !errors.As(err, &errs) || errs[form.FieldName] != form.RequiredMessage {
		t.Fatalf("err = %v, want a required nome", err)
	}
	if ps, _ := c.List(context.Background()); len(ps) != 0 {
		t.Fatalf("invalid form created %v", ps)
	}
}
