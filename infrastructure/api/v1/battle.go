package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pokemcp/pokemcp/application/service"
	"github.com/pokemcp/pokemcp/infrastructure/api/middleware"
	"github.com/pokemcp/pokemcp/infrastructure/api/v1/dto"
)

// BattleRouter handles the head-to-head battle analysis endpoint.
type BattleRouter struct {
	strategy *service.Strategy
	logger   *slog.Logger
}

// NewBattleRouter creates a new BattleRouter.
func NewBattleRouter(strategy *service.Strategy, logger *slog.Logger) *BattleRouter {
	return &BattleRouter{strategy: strategy, logger: logger}
}

// Routes returns the chi router for the battle endpoint.
func (r *BattleRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{name1}/{name2}", r.Battle)

	return router
}

// Battle handles GET /battle/{name1}/{name2}. The combatant records are
// factual only; the verdict degrades to defaults when generation fails.
func (r *BattleRouter) Battle(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	name1 := chi.URLParam(req, "name1")
	name2 := chi.URLParam(req, "name2")

	result, err := r.strategy.Battle(ctx, name1, name2)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.BattleResponse{
		Pokemon1:     dto.FromPokemon(result.Pokemon1()),
		Pokemon2:     dto.FromPokemon(result.Pokemon2()),
		BattleResult: dto.FromBattleVerdict(result.Verdict()),
	})
}
