package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pokemcp/pokemcp"
	"github.com/pokemcp/pokemcp/infrastructure/provider"
	"github.com/stretchr/testify/require"
)

// upstreamPayload formats a minimal provider response for one Pokemon.
func upstreamPayload(name string, id int, typ string) string {
	return fmt.Sprintf(`{
		"name": %q,
		"id": %d,
		"height": 7,
		"weight": 69,
		"abilities": [{"ability": {"name": "overgrow"}}],
		"types": [{"type": {"name": %q}}],
		"stats": [
			{"base_stat": 45, "stat": {"name": "hp"}},
			{"base_stat": 49, "stat": {"name": "attack"}},
			{"base_stat": 45, "stat": {"name": "speed"}}
		],
		"sprites": {"front_default": "https://sprites.test/%s.png"}
	}`, name, id, typ, name)
}

// newFakeUpstream serves canned payloads for the given names and 404 for
// everything else.
func newFakeUpstream(t *testing.T, names map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/pokemon/")
		body, ok := names[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "Not Found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// scriptedGenerator returns queued replies in order.
type scriptedGenerator struct {
	replies []string
	calls   int
}

func (g *scriptedGenerator) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	g.calls++
	if len(g.replies) == 0 {
		return provider.CompletionResponse{}, provider.NewProviderError("chat_completion", 500, "no scripted reply", nil)
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return provider.NewCompletionResponse(reply, "stop"), nil
}

func (g *scriptedGenerator) ModelName() string { return "scripted" }
func (g *scriptedGenerator) Close() error      { return nil }

func newTestHandler(t *testing.T, gen provider.TextGenerator) http.Handler {
	t.Helper()
	upstream := newFakeUpstream(t, map[string]string{
		"bulbasaur":  upstreamPayload("bulbasaur", 1, "grass"),
		"charmander": upstreamPayload("charmander", 4, "fire"),
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := pokemcp.New(
		pokemcp.WithPokeAPIBaseURL(upstream.URL),
		pokemcp.WithTextProvider(gen),
		pokemcp.WithLogger(logger),
	)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewAPIServer(client, nil).Handler()
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAPIServer_Info(t *testing.T) {
	handler := newTestHandler(t, &scriptedGenerator{})

	rec := get(t, handler, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success  bool `json:"success"`
		Data     map[string]any
		Metadata struct {
			ServerVersion string   `json:"server_version"`
			DataSource    string   `json:"data_source"`
			Capabilities  []string `json:"capabilities"`
		} `json:"metadata"`
		Timestamp         string `json:"timestamp"`
		AgentInstructions string `json:"agent_instructions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	require.True(t, envelope.Success)
	require.Equal(t, "2.0.0", envelope.Metadata.ServerVersion)
	require.Equal(t, "PokeAPI + AI Strategic Analysis", envelope.Metadata.DataSource)
	require.Equal(t, []string{"pokemon_data", "ai_descriptions", "battle_analysis", "counter_suggestions"}, envelope.Metadata.Capabilities)
	require.NotEmpty(t, envelope.AgentInstructions)

	_, err := time.Parse(time.RFC3339, envelope.Timestamp)
	require.NoError(t, err)

	require.Equal(t, "Pokemon Strategic Analysis MCP", envelope.Data["server_type"])
}

func TestAPIServer_Health(t *testing.T) {
	handler := newTestHandler(t, &scriptedGenerator{})

	rec := get(t, handler, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "healthy", envelope.Data["status"])
}

func TestAPIServer_GetPokemon(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"A hardy seed Pokemon."}}
	handler := newTestHandler(t, gen)

	rec := get(t, handler, "/pokemon/Bulbasaur")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name        string   `json:"name"`
		ID          int      `json:"id"`
		Height      float64  `json:"height"`
		Weight      float64  `json:"weight"`
		Types       []string `json:"types"`
		Sprite      *string  `json:"sprite"`
		Description *string  `json:"description"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Bulbasaur", body.Name)
	require.Equal(t, 1, body.ID)
	require.InDelta(t, 0.7, body.Height, 1e-9)
	require.InDelta(t, 6.9, body.Weight, 1e-9)
	require.Equal(t, []string{"Grass"}, body.Types)
	require.NotNil(t, body.Sprite)
	require.NotNil(t, body.Description)
	require.Equal(t, "A hardy seed Pokemon.", *body.Description)

	// Stat keys must serialize in upstream order.
	require.Contains(t, rec.Body.String(), `"stats":{"Hp":45,"Attack":49,"Speed":45}`)
}

func TestAPIServer_GetPokemon_NotFound(t *testing.T) {
	handler := newTestHandler(t, &scriptedGenerator{})

	rec := get(t, handler, "/pokemon/missingno")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Detail, "missingno")
}

func TestAPIServer_GetPokemon_GenerationFailureStill200(t *testing.T) {
	// Empty script: the completion call fails and the fallback applies.
	handler := newTestHandler(t, &scriptedGenerator{})

	rec := get(t, handler, "/pokemon/bulbasaur")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Description *string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Description)
	require.Equal(t, "Bulbasaur is a Grass type Pokemon.", *body.Description)
}

func TestAPIServer_Compare(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"First.", "Second."}}
	handler := newTestHandler(t, gen)

	rec := get(t, handler, "/compare/bulbasaur/charmander")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pokemon1 struct {
			Name string `json:"name"`
		} `json:"pokemon1"`
		Pokemon2 struct {
			Name string `json:"name"`
		} `json:"pokemon2"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Bulbasaur", body.Pokemon1.Name)
	require.Equal(t, "Charmander", body.Pokemon2.Name)
	require.Equal(t, 2, gen.calls)
}

func TestAPIServer_Battle(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{
		"Winner: Charmander\nConfidence: High\nReasoning: Fire burns grass.\nKey Factors: Type matchup, Speed",
	}}
	handler := newTestHandler(t, gen)

	rec := get(t, handler, "/battle/bulbasaur/charmander")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pokemon1 struct {
			Name        string  `json:"name"`
			Description *string `json:"description"`
		} `json:"pokemon1"`
		BattleResult struct {
			Winner     string   `json:"winner"`
			Confidence string   `json:"confidence"`
			KeyFactors []string `json:"key_factors"`
		} `json:"battle_result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Bulbasaur", body.Pokemon1.Name)
	require.Nil(t, body.Pokemon1.Description, "battle records carry no description")
	require.Equal(t, "Charmander", body.BattleResult.Winner)
	require.Equal(t, "High", body.BattleResult.Confidence)
	require.Equal(t, []string{"Type matchup", "Speed"}, body.BattleResult.KeyFactors)
}

func TestAPIServer_Counters(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{
		"Name: Charmander\nType: Fire\nReason: Burns the grass.",
	}}
	handler := newTestHandler(t, gen)

	rec := get(t, handler, "/counters/bulbasaur")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TargetPokemon struct {
			Name string `json:"name"`
		} `json:"target_pokemon"`
		Counters []struct {
			Name   string  `json:"name"`
			Type   string  `json:"type"`
			Reason string  `json:"reason"`
			Sprite *string `json:"sprite"`
		} `json:"counters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Bulbasaur", body.TargetPokemon.Name)
	require.Len(t, body.Counters, 1)
	require.Equal(t, "Charmander", body.Counters[0].Name)
	require.NotNil(t, body.Counters[0].Sprite)
	require.Equal(t, "https://sprites.test/charmander.png", *body.Counters[0].Sprite)
}

func TestAPIServer_GenerateTeam(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{
		"Name: Bulbasaur\nType: Grass\nRole: Tank",
		"A sturdy core.",
	}}
	handler := newTestHandler(t, gen)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/team/generate?description=a+sturdy+team", nil)
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Team []struct {
			Name   string   `json:"name"`
			Role   string   `json:"role"`
			Sprite *string  `json:"sprite"`
			Types  []string `json:"types"`
		} `json:"team"`
		Analysis    string `json:"analysis"`
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Team, 1)
	require.Equal(t, "Bulbasaur", body.Team[0].Name)
	require.Equal(t, "Tank", body.Team[0].Role)
	require.NotNil(t, body.Team[0].Sprite)
	require.Equal(t, []string{"Grass"}, body.Team[0].Types)
	require.Equal(t, "A sturdy core.", body.Analysis)
	require.Equal(t, "a sturdy team", body.Description)
}

func TestAPIServer_GenerateTeam_MissingDescription(t *testing.T) {
	handler := newTestHandler(t, &scriptedGenerator{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/team/generate", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Detail, "description")
}

func TestAPIServer_GenerateTeam_GenerationFailureIs500(t *testing.T) {
	handler := newTestHandler(t, &scriptedGenerator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/team/generate?description=anything", nil)
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAPIServer_CorrelationIDHeader(t *testing.T) {
	handler := newTestHandler(t, &scriptedGenerator{})

	rec := get(t, handler, "/health")
	require.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
