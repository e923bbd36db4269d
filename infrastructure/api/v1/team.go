package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pokemcp/pokemcp/application/service"
	"github.com/pokemcp/pokemcp/domain/pokemon"
	"github.com/pokemcp/pokemcp/infrastructure/api/middleware"
	"github.com/pokemcp/pokemcp/infrastructure/api/v1/dto"
)

// TeamRouter handles the team-generation endpoint.
type TeamRouter struct {
	strategy *service.Strategy
	logger   *slog.Logger
}

// NewTeamRouter creates a new TeamRouter.
func NewTeamRouter(strategy *service.Strategy, logger *slog.Logger) *TeamRouter {
	return &TeamRouter{strategy: strategy, logger: logger}
}

// Routes returns the chi router for the team endpoint.
func (r *TeamRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/generate", r.Generate)

	return router
}

// Generate handles POST /team/generate?description=... There is no factual
// subject to fall back on, so generation failure here is a 500.
func (r *TeamRouter) Generate(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	description := strings.TrimSpace(req.URL.Query().Get("description"))
	if description == "" {
		err := fmt.Errorf("%w: description query parameter is required", pokemon.ErrInvalidInput)
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	result, err := r.strategy.GenerateTeam(ctx, description)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	team := result.Team()
	out := make([]dto.TeamMemberResponse, len(team))
	for i, m := range team {
		out[i] = dto.FromTeamMember(m)
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TeamResponse{
		Team:        out,
		Analysis:    result.Analysis(),
		Description: description,
	})
}
