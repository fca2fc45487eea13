package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tableflip.dev/catalog/pkg/catalog"
	"tableflip.dev/catalog/pkg/catalogdb"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/product"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := catalogdb.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(db, catalogdb.NewProductStore(db), logger))
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
}

func TestCreateBrowserRedirects(t *testing.T) {
	srv := newTestServer(t)

	resp, err := noRedirect().PostForm(srv.URL+"/cadastrar", url.Values{
		"nome": {"Caneta"}, "descricao": {"azul"}, "valor": {"19.90"}, "disponivel": {"sim"},
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("status %d location %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t)

	for name, values := range map[string]url.Values{
		"missing nome":  {"valor": {"1"}},
		"invalid valor": {"nome": {"x"}, "valor": {"abc"}},
		"negative":      {"nome": {"x"}, "valor": {"-1"}},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.PostForm(srv.URL+"/cadastrar", values)
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Fatalf("error body = %v, %v", body, err)
			}
		})
	}
}

func TestAPIThroughClient(t *testing.T) {
	srv := newTestServer(t)
	c := catalog.New(srv.URL)
	ctx := context.Background()

	img := filepath.Join(t.TempDir(), "foto.png")
	if err := os.WriteFile(img, []byte("\x89PNG\r\n\x1a\nrest"), 0o600); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	f := form.ProductForm()
	f.Set(form.FieldName, "Caderno")
	f.Set(form.FieldPrice, "3250")
	f.Set(form.FieldAvailable, form.No)
	f.SetFile(form.FieldImage, img)
	caderno, err := c.Create(ctx, f.Values(), f.Files())
	if err != nil {
		t.Fatalf("create caderno: %v", err)
	}
	if caderno == nil || caderno.ID == "" || caderno.Price != 32.5 || caderno.Available {
		t.Fatalf("created = %+v", caderno)
	}
	if caderno.ImageURL == "" {
		t.Fatal("image not stored")
	}

	if _, err := c.Create(ctx, map[string]string{"nome": "Lápis", "valor": "2,50", "disponivel": "sim"}, nil); err != nil {
		t.Fatalf("create lapis: %v", err)
	}

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := []string{}
	for _, p := range list {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"Lápis", "Caderno"}, names); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}

	got, err := c.Get(ctx, caderno.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(*caderno, *got); diff != "" {
		t.Fatalf("get (-want +got):\n%s", diff)
	}

	resp, err := http.Get(srv.URL + caderno.ImageURL)
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("image status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	updated, err := c.Update(ctx, caderno.ID, map[string]string{"nome": "Caderno grande", "valor": "40.00", "disponivel": "sim"}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := product.Product{ID: caderno.ID, Name: "Caderno grande", Price: 40, Available: true}
	if diff := cmp.Diff(want, *updated, cmpopts.IgnoreFields(product.Product{}, "ImageURL")); diff != "" {
		t.Fatalf("update (-want +got):\n%s", diff)
	}

	if err := c.Delete(ctx, caderno.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.Delete(ctx, caderno.ID); !catalog.IsNotFound(err) {
		t.Fatalf("second delete = %v", err)
	}
	if _, err := c.Get(ctx, caderno.ID); !catalog.IsNotFound(err) {
		t.Fatalf("get deleted = %v", err)
	}
	if _, err := c.Update(ctx, caderno.ID, map[string]string{"nome": "x", "valor": "1"}, nil); !catalog.IsNotFound(err) {
		t.Fatalf("update deleted = %v", err)
	}
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t)
	if _, err := catalog.New(srv.URL).Create(context.Background(), map[string]string{"nome": "Impressora", "valor": "1234.50"}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "R$ 1.234,50") || !strings.Contains(string(body), "Impressora") {
		t.Fatalf("index missing product:\n%s", body)
	}
}

func TestHealthAndMiddleware(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(resp.Header.Get("X-Request-ID")) != 8 {
		t.Fatalf("X-Request-ID = %q", resp.Header.Get("X-Request-ID"))
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("CORS header missing")
	}

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/cadastrar", nil)
	pre, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	pre.Body.Close()
	if pre.StatusCode != http.StatusNoContent {
		t.Fatalf("preflight status = %d", pre.StatusCode)
	}
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWantsJSON(t *testing.T) {
	tests := map[string]bool{
		"":                                  false,
		"text/html":                         false,
		"application/json":                  true,
		"text/html, application/json;q=0.9": true,
	}
	for accept, want := range tests {
		r := httptest.NewRequest(http.MethodPost, "/cadastrar", nil)
		r.Header.Set("Accept", accept)
		if got := wantsJSON(r); got != want {
			t.Errorf("wantsJSON(%q) = %v", accept, got)
		}
	}
}

func TestServeShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	addrc := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), logger, func(a net.Addr) { addrc <- a })
	}()

	addr := <-addrc
	resp, err := http.Get("http://" + addr.String() + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
