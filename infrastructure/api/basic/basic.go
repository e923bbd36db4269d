// Package basic implements the raw-passthrough server variant: factual
// records without enrichment, and generated lists recovered by embedded-JSON
// extraction. There is no degradation pipeline here; a generation or parse
// failure is a plain 500.
package basic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pokemcp/pokemcp/domain/pokemon"
	"github.com/pokemcp/pokemcp/domain/prompt"
	"github.com/pokemcp/pokemcp/domain/strategy"
	"github.com/pokemcp/pokemcp/infrastructure/api/middleware"
	"github.com/pokemcp/pokemcp/infrastructure/api/v1/dto"
	"github.com/pokemcp/pokemcp/infrastructure/provider"
)

// Fetcher retrieves factual records from the upstream provider.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (pokemon.Pokemon, error)
}

// Router serves the basic variant's endpoints.
type Router struct {
	fetcher   Fetcher
	generator provider.TextGenerator
	logger    *slog.Logger
}

// NewRouter creates a new basic Router.
func NewRouter(fetcher Fetcher, generator provider.TextGenerator, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{fetcher: fetcher, generator: generator, logger: logger}
}

// Routes returns the chi router for the basic endpoints.
func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/pokemon/{name}", r.Get)
	router.Get("/compare/{name1}/{name2}", r.Compare)
	router.Post("/team/generate", r.GenerateTeam)
	router.Get("/counters/{name}", r.Counters)

	return router
}

// Get handles GET /pokemon/{name}: the factual record, no description.
func (r *Router) Get(w http.ResponseWriter, req *http.Request) {
	record, err := r.fetcher.Fetch(req.Context(), chi.URLParam(req, "name"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.FromPokemon(record))
}

// Compare handles GET /compare/{name1}/{name2}.
func (r *Router) Compare(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	p1, err := r.fetcher.Fetch(ctx, chi.URLParam(req, "name1"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	p2, err := r.fetcher.Fetch(ctx, chi.URLParam(req, "name2"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CompareResponse{
		Pokemon1: dto.FromPokemon(p1),
		Pokemon2: dto.FromPokemon(p2),
	})
}

// GenerateTeam handles POST /team/generate?description=... The model is
// asked for a JSON list and the reply is passed through as-is.
func (r *Router) GenerateTeam(w http.ResponseWriter, req *http.Request) {
	description := strings.TrimSpace(req.URL.Query().Get("description"))
	if description == "" {
		err := fmt.Errorf("%w: description query parameter is required", pokemon.ErrInvalidInput)
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	team, err := r.generateList(req.Context(), prompt.BasicTeam(description))
	if err != nil {
		r.logger.Error("team generation failed", "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, middleware.ErrorResponse{
			Detail: fmt.Sprintf("Team generation error: %v", err),
		})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]json.RawMessage{"team": team})
}

// Counters handles GET /counters/{name}.
func (r *Router) Counters(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	counters, err := r.generateList(req.Context(), prompt.BasicCounters(name))
	if err != nil {
		r.logger.Error("counter suggestion failed", "name", name, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, middleware.ErrorResponse{
			Detail: fmt.Sprintf("Counter suggestion error: %v", err),
		})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]json.RawMessage{"counters": counters})
}

// generateList runs one completion and extracts the embedded JSON list.
func (r *Router) generateList(ctx context.Context, promptText string) (json.RawMessage, error) {
	if r.generator == nil {
		return nil, provider.NewProviderError("complete", 0, "no text provider configured", nil)
	}

	resp, err := r.generator.Complete(ctx, provider.NewCompletionRequest([]provider.Message{
		provider.UserMessage(promptText),
	}))
	if err != nil {
		return nil, err
	}

	return strategy.ExtractJSONList(resp.Content())
}
