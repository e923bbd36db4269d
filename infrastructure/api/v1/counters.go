package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pokemcp/pokemcp/application/service"
	"github.com/pokemcp/pokemcp/infrastructure/api/middleware"
	"github.com/pokemcp/pokemcp/infrastructure/api/v1/dto"
)

// CountersRouter handles the counter-suggestion endpoint.
type CountersRouter struct {
	strategy *service.Strategy
	logger   *slog.Logger
}

// NewCountersRouter creates a new CountersRouter.
func NewCountersRouter(strategy *service.Strategy, logger *slog.Logger) *CountersRouter {
	return &CountersRouter{strategy: strategy, logger: logger}
}

// Routes returns the chi router for the counters endpoint.
func (r *CountersRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{name}", r.Counters)

	return router
}

// Counters handles GET /counters/{name}. Generation failure yields an empty
// counter list with a 200, not an error.
func (r *CountersRouter) Counters(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	name := chi.URLParam(req, "name")

	result, err := r.strategy.Counters(ctx, name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	counters := result.Counters()
	out := make([]dto.CounterResponse, len(counters))
	for i, c := range counters {
		out[i] = dto.FromCounter(c)
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CountersResponse{
		TargetPokemon: dto.FromPokemon(result.Target()),
		Counters:      out,
	})
}
