package server

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tableflip.dev/catalog/pkg/catalogdb"
	"tableflip.dev/catalog/pkg/product"
)

const maxUpload = 8 << 20

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"currency": product.FormatBRL}).
	ParseFS(templatesFS, "templates/index.html"))

type ProductHandler struct {
	products *catalogdb.ProductStore
	log      *slog.Logger
}

func NewProductHandler(products *catalogdb.ProductStore, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: logger}
}

// Index handles GET /
func (h *ProductHandler) Index(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]any{"Produtos": products}); err != nil {
		h.log.Error("render index", "error", err)
	}
}

// Create handles POST /cadastrar
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, img, err := parseProductForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.products.Create(r.Context(), p, img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.log.Info("product created", "id", created.ID, "nome", created.Name)
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles POST /atualizar/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, img, err := parseProductForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.products.Update(r.Context(), id, p, img)
	if errors.Is(err, catalogdb.ErrNotFound) {
		writeError(w, http.StatusNotFound, "produto não encontrado")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.log.Info("product updated", "id", id)
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// List handles GET /get-produtos
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /produto/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalogdb.ErrNotFound) {
		writeError(w, http.StatusNotFound, "produto não encontrado")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /deletar/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.products.Delete(r.Context(), id)
	if errors.Is(err, catalogdb.ErrNotFound) {
		writeError(w, http.StatusNotFound, "produto não encontrado")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.log.Info("product deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Image handles GET /imagem/{id}
func (h *ProductHandler) Image(w http.ResponseWriter, r *http.Request) {
	img, err := h.products.Image(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalogdb.ErrNotFound) {
		writeError(w, http.StatusNotFound, "imagem não encontrada")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	_, _ = w.Write(img.Data)
}

// parseProductForm reads a multipart or urlencoded product form.
func parseProductForm(w http.ResponseWriter, r *http.Request) (product.Product, *catalogdb.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+1<<20)
	if err := r.ParseMultipartForm(maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return product.Product{}, nil, errors.New("formulário inválido")
	}

	p := product.Product{
		Name:        strings.TrimSpace(r.FormValue("nome")),
		Description: strings.TrimSpace(r.FormValue("descricao")),
		Available:   r.FormValue("disponivel") == "sim",
	}
	if p.Name == "" {
		return product.Product{}, nil, errors.New("nome é obrigatório")
	}
	price, err := parsePrice(r.FormValue("valor"))
	if err != nil {
		return product.Product{}, nil, errors.New("valor inválido")
	}
	p.Price = price

	img, err := readImage(r)
	if err != nil {
		return product.Product{}, nil, err
	}
	return p, img, nil
}

// parsePrice accepts "19.90" and the Brazilian "19,90".
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("negative price")
	}
	return v, nil
}

func readImage(r *http.Request) (*catalogdb.Image, error) {
	f, hdr, err := r.FormFile("imagem")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("imagem inválida")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("imagem inválida")
	}
	if len(data) == 0 {
		// Browsers send an empty part when no file was chosen.
		return nil, nil
	}
	ctype := hdr.Header.Get("Content-Type")
	if ctype == "" || ctype == "application/octet-stream" {
		ctype = http.DetectContentType(data)
	}
	return &catalogdb.Image{Name: hdr.Filename, ContentType: ctype, Data: data}, nil
}
