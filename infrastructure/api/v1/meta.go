package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pokemcp/pokemcp/infrastructure/api/middleware"
)

// MetaRouter serves the capability descriptor and the health check.
type MetaRouter struct {
	logger *slog.Logger
}

// NewMetaRouter creates a new MetaRouter.
func NewMetaRouter(logger *slog.Logger) *MetaRouter {
	return &MetaRouter{logger: logger}
}

// Routes returns the chi router for the meta endpoints.
func (r *MetaRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.Info)
	router.Get("/health", r.Health)

	return router
}

// Info handles GET /. It describes the server for agent consumers.
func (r *MetaRouter) Info(w http.ResponseWriter, req *http.Request) {
	data := map[string]any{
		"server_type": "Pokemon Strategic Analysis MCP",
		"purpose":     "Middleware for AI agents to access strategic Pokemon data",
		"capabilities": []string{
			"Enhanced Pokemon data retrieval with AI descriptions",
			"Head-to-head battle analysis",
			"Counter Pokemon suggestions",
			"Strategic comparison analysis",
		},
		"endpoints": map[string]string{
			"pokemon_data":        "/pokemon/{name}",
			"pokemon_comparison":  "/compare/{pokemon1}/{pokemon2}",
			"battle_analysis":     "/battle/{pokemon1}/{pokemon2}",
			"counter_suggestions": "/counters/{pokemon_name}",
		},
	}

	envelope := NewEnvelope(data, "Use these endpoints to access Pokemon data with AI-enhanced features")
	middleware.WriteJSON(w, http.StatusOK, envelope)
}

// Health handles GET /health.
func (r *MetaRouter) Health(w http.ResponseWriter, req *http.Request) {
	data := map[string]any{
		"status":   "healthy",
		"services": []string{"PokeAPI", "Text Generation"},
	}

	envelope := NewEnvelope(data, "All systems operational")
	middleware.WriteJSON(w, http.StatusOK, envelope)
}
