package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/catalog/pkg/draft"
	catalogserver "tableflip.dev/catalog/pkg/server"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Catalog  Catalog
	Drafts   draft.Store
	DraftKey string
	Name     string
	Version  string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string

	Logger *slog.Logger
}

// Do serves until ctx is done, or until stdin closes on the stdio transport.
func (r Runner) Do(ctx context.Context) error {
	if r.Catalog == nil {
		return errors.New("mcp runner requires a catalog client")
	}
	name := r.Name
	if name == "" {
		name = "catalog"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "mcp")

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("List, inspect, create, update and delete catalog products. Prices are in reais (BRL)."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Catalog)
	svc.Drafts = r.Drafts
	svc.DraftKey = r.DraftKey
	registerResources(srv, svc)
	registerTools(srv, svc)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, logger)
	case TransportStdio:
		logger.Info("mcp server on stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// serveHTTP mounts the streamable HTTP transport on a Chi router next to a
// health check and serves it until ctx is done.
func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, logger *slog.Logger) error {
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}

	path := r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	router := chi.NewRouter()
	router.Use(catalogserver.RequestID)
	router.Use(catalogserver.Logger(logger))
	router.Use(catalogserver.Recovery(logger))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Handle(path, server.NewStreamableHTTPServer(srv))

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	// Serve closes ln itself; ServeTLS does not when the key pair fails to load.
	defer ln.Close()
	httpSrv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	logger.Info("mcp server starting", "addr", ln.Addr().String(), "path", path)
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	// Cancelled on return too, so the shutdown goroutine exits when Serve
	// fails on its own.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp shutdown", "error", err)
		}
		logger.Info("mcp server stopped")
	}()

	if r.HTTPServerCert != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
