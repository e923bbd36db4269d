package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pokemcp/pokemcp/application/service"
	"github.com/pokemcp/pokemcp/infrastructure/api/middleware"
	"github.com/pokemcp/pokemcp/infrastructure/api/v1/dto"
)

// PokemonRouter handles single-record and comparison endpoints.
type PokemonRouter struct {
	strategy *service.Strategy
	logger   *slog.Logger
}

// NewPokemonRouter creates a new PokemonRouter.
func NewPokemonRouter(strategy *service.Strategy, logger *slog.Logger) *PokemonRouter {
	return &PokemonRouter{strategy: strategy, logger: logger}
}

// Routes returns the chi router for pokemon endpoints.
func (r *PokemonRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/pokemon/{name}", r.Get)
	router.Get("/compare/{name1}/{name2}", r.Compare)

	return router
}

// Get handles GET /pokemon/{name}: the enriched single record.
func (r *PokemonRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	name := chi.URLParam(req, "name")

	record, err := r.strategy.Pokemon(ctx, name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.FromPokemon(record))
}

// Compare handles GET /compare/{name1}/{name2}: two enriched records.
func (r *PokemonRouter) Compare(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	name1 := chi.URLParam(req, "name1")
	name2 := chi.URLParam(req, "name2")

	p1, p2, err := r.strategy.Compare(ctx, name1, name2)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CompareResponse{
		Pokemon1: dto.FromPokemon(p1),
		Pokemon2: dto.FromPokemon(p2),
	})
}
