package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pokemcp/pokemcp"
	apimiddleware "github.com/pokemcp/pokemcp/infrastructure/api/middleware"
	v1 "github.com/pokemcp/pokemcp/infrastructure/api/v1"
	mcpinternal "github.com/pokemcp/pokemcp/internal/mcp"
)

// APIServer provides the enriched HTTP API backed by a pokemcp Client.
type APIServer struct {
	client         *pokemcp.Client
	allowedOrigins []string
	server         *Server
	logger         *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given pokemcp Client.
func NewAPIServer(client *pokemcp.Client, allowedOrigins []string) *APIServer {
	return &APIServer{
		client:         client,
		allowedOrigins: allowedOrigins,
		logger:         client.Logger(),
	}
}

// mountRoutes wires up all routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))

	metaRouter := v1.NewMetaRouter(a.logger)
	pokemonRouter := v1.NewPokemonRouter(a.client.Strategy, a.logger)
	battleRouter := v1.NewBattleRouter(a.client.Strategy, a.logger)
	countersRouter := v1.NewCountersRouter(a.client.Strategy, a.logger)
	teamRouter := v1.NewTeamRouter(a.client.Strategy, a.logger)

	router.Get("/", metaRouter.Info)
	router.Get("/health", metaRouter.Health)
	router.Mount("/battle", battleRouter.Routes())
	router.Mount("/counters", countersRouter.Routes())
	router.Mount("/team", teamRouter.Routes())
	router.Get("/pokemon/{name}", pokemonRouter.Get)
	router.Get("/compare/{name1}/{name2}", pokemonRouter.Compare)

	// MCP endpoint. MCP uses streaming responses and manages its own session
	// state via response headers, so it stays outside the timeout middleware.
	mcpSrv := mcpinternal.NewServer(a.client.Strategy, v1.ServerVersion, a.logger)
	httpHandler := server.NewStreamableHTTPServer(mcpSrv.MCPServer())
	router.Mount("/mcp", httpHandler)
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, a.allowedOrigins, a.logger)
	a.server = srv
	a.mountRoutes(srv.Router())
	return srv.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the full route tree as an http.Handler for tests.
func (a *APIServer) Handler() http.Handler {
	router := chi.NewRouter()
	a.mountRoutes(router)
	return router
}
