package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pokemcp/pokemcp"
	"github.com/pokemcp/pokemcp/infrastructure/api/basic"
	apimiddleware "github.com/pokemcp/pokemcp/infrastructure/api/middleware"
)

// BasicAPIServer provides the raw-passthrough HTTP API.
type BasicAPIServer struct {
	client         *pokemcp.Client
	allowedOrigins []string
	server         *Server
	logger         *slog.Logger
}

// NewBasicAPIServer creates a new BasicAPIServer wired to the given Client.
func NewBasicAPIServer(client *pokemcp.Client, allowedOrigins []string) *BasicAPIServer {
	return &BasicAPIServer{
		client:         client,
		allowedOrigins: allowedOrigins,
		logger:         client.Logger(),
	}
}

func (b *BasicAPIServer) mountRoutes(router chi.Router) {
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(b.logger))

	basicRouter := basic.NewRouter(b.client.PokeAPI(), b.client.Generator(), b.logger)
	router.Mount("/", basicRouter.Routes())
}

// ListenAndServe starts the HTTP server on the given address.
func (b *BasicAPIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, b.allowedOrigins, b.logger)
	b.server = srv
	b.mountRoutes(srv.Router())
	return srv.Start()
}

// Shutdown gracefully shuts down the server.
func (b *BasicAPIServer) Shutdown(ctx context.Context) error {
	if b.server == nil {
		return nil
	}
	return b.server.Shutdown(ctx)
}

// Handler returns the route tree as an http.Handler for tests.
func (b *BasicAPIServer) Handler() http.Handler {
	router := chi.NewRouter()
	b.mountRoutes(router)
	return router
}
