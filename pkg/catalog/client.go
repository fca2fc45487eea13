// Package catalog is the HTTP client for the catalog server.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/product"
)

// Endpoint paths served by the catalog server.
const (
	PathCreate = "/cadastrar"
	PathList   = "/get-produtos"
	PathGet    = "/produto/"
	PathDelete = "/deletar/"
	PathUpdate = "/atualizar/"
)

// StatusError is returned when the server answers outside 2xx.
type StatusError struct {
	Op      string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog: %s: %d %s: %s", e.Op, e.Code, http.StatusText(e.Code), e.Message)
	}
	return fmt.Sprintf("catalog: %s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// Client talks to one catalog server.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// New returns a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: http.DefaultClient,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "catalog")
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.base
}

// Create submits a new product as a multipart form. files maps file fields to
// local paths. The returned product is nil when the server does not answer
// with JSON.
func (c *Client) Create(ctx context.Context, values, files map[string]string) (*product.Product, error) {
	return c.send(ctx, "create", PathCreate, values, files)
}

// Update replaces the product id with the submitted form.
func (c *Client) Update(ctx context.Context, id string, values, files map[string]string) (*product.Product, error) {
	return c.send(ctx, "update", PathUpdate+url.PathEscape(id), values, files)
}

func (c *Client) send(ctx context.Context, op, path string, values, files map[string]string) (*product.Product, error) {
	body, contentType, err := form.EncodeMultipart(values, files)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", op, err)
	}
	req, err := c.request(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	var p product.Product
	ok, err := c.do(req, op, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// List returns every product, in server order.
func (c *Client) List(ctx context.Context) ([]product.Product, error) {
	req, err := c.request(ctx, http.MethodGet, PathList, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	var out []product.Product
	if _, err := c.do(req, "list", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one product.
func (c *Client) Get(ctx context.Context, id string) (*product.Product, error) {
	req, err := c.request(ctx, http.MethodGet, PathGet+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: get: %w", err)
	}
	var p product.Product
	ok, err := c.do(req, "get", &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("catalog: get %s: response is not JSON", id)
	}
	return &p, nil
}

// Delete removes one product.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := c.request(ctx, http.MethodDelete, PathDelete+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	_, err = c.do(req, "delete", nil)
	return err
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req and decodes a JSON body into out. It reports whether a JSON
// body was decoded.
func (c *Client) do(req *http.Request, op string, out any) (bool, error) {
	if c.timeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "op", op, "url", req.URL.String(), "error", err)
		return false, fmt.Errorf("catalog: %s: %w", op, err)
	}
	defer resp.Body.Close()
	c.log.Debug("request", "op", op, "method", req.Method, "url", req.URL.String(),
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &StatusError{Op: op, Code: resp.StatusCode, Message: errorMessage(resp)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || !isJSON(resp.Header.Get("Content-Type")) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("catalog: %s: decode response: %w", op, err)
	}
	return true, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// errorMessage extracts {"error": "..."} from a failed response.
func errorMessage(resp *http.Response) string {
	if !isJSON(resp.Header.Get("Content-Type")) {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}
