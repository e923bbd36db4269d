// Package dto holds the JSON wire representations served by the API.
package dto

import (
	"bytes"
	"encoding/json"

	"github.com/pokemcp/pokemcp/domain/pokemon"
	"github.com/pokemcp/pokemcp/domain/strategy"
)

// StatsDTO serializes base stats as a JSON object whose keys appear in
// upstream order. A plain map would lose the ordering.
type StatsDTO struct {
	stats pokemon.Stats
}

// NewStatsDTO wraps a stats collection for serialization.
func NewStatsDTO(stats pokemon.Stats) StatsDTO {
	return StatsDTO{stats: stats}
}

// MarshalJSON implements json.Marshaler, preserving insertion order.
func (s StatsDTO) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, st := range s.stats {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(st.Name())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(st.Value())
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PokemonResponse is the wire form of a Pokemon record.
type PokemonResponse struct {
	Name        string   `json:"name"`
	ID          int      `json:"id"`
	Height      float64  `json:"height"`
	Weight      float64  `json:"weight"`
	Abilities   []string `json:"abilities"`
	Types       []string `json:"types"`
	Stats       StatsDTO `json:"stats"`
	Sprite      *string  `json:"sprite"`
	Description *string  `json:"description"`
}

// FromPokemon converts a domain record to its wire form.
func FromPokemon(p pokemon.Pokemon) PokemonResponse {
	return PokemonResponse{
		Name:        p.Name(),
		ID:          p.ID(),
		Height:      p.HeightM(),
		Weight:      p.WeightKG(),
		Abilities:   p.Abilities(),
		Types:       p.Types(),
		Stats:       NewStatsDTO(p.Stats()),
		Sprite:      nullable(p.Sprite()),
		Description: nullable(p.Description()),
	}
}

// CompareResponse pairs two enriched records.
type CompareResponse struct {
	Pokemon1 PokemonResponse `json:"pokemon1"`
	Pokemon2 PokemonResponse `json:"pokemon2"`
}

// BattleVerdictResponse is the wire form of a battle verdict.
type BattleVerdictResponse struct {
	Winner     string   `json:"winner"`
	Confidence string   `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	KeyFactors []string `json:"key_factors"`
}

// FromBattleVerdict converts a verdict to its wire form.
func FromBattleVerdict(v strategy.BattleVerdict) BattleVerdictResponse {
	return BattleVerdictResponse{
		Winner:     v.Winner(),
		Confidence: v.Confidence(),
		Reasoning:  v.Reasoning(),
		KeyFactors: v.KeyFactors(),
	}
}

// BattleResponse carries both contenders and the verdict.
type BattleResponse struct {
	Pokemon1     PokemonResponse       `json:"pokemon1"`
	Pokemon2     PokemonResponse       `json:"pokemon2"`
	BattleResult BattleVerdictResponse `json:"battle_result"`
}

// CounterResponse is the wire form of one counter suggestion.
type CounterResponse struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Reason string  `json:"reason"`
	Sprite *string `json:"sprite"`
}

// FromCounter converts a counter suggestion to its wire form.
func FromCounter(c strategy.CounterSuggestion) CounterResponse {
	return CounterResponse{
		Name:   c.Name(),
		Type:   c.Type(),
		Reason: c.Reason(),
		Sprite: nullable(c.Sprite()),
	}
}

// CountersResponse carries the target record and its counters.
type CountersResponse struct {
	TargetPokemon PokemonResponse   `json:"target_pokemon"`
	Counters      []CounterResponse `json:"counters"`
}

// TeamMemberResponse is the wire form of one generated team slot.
type TeamMemberResponse struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Role   string   `json:"role"`
	Sprite *string  `json:"sprite"`
	Stats  StatsDTO `json:"stats"`
	Types  []string `json:"types"`
}

// FromTeamMember converts a team member to its wire form.
func FromTeamMember(m strategy.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		Name:   m.Name(),
		Type:   m.Type(),
		Role:   m.Role(),
		Sprite: nullable(m.Sprite()),
		Stats:  NewStatsDTO(m.Stats()),
		Types:  m.Types(),
	}
}

// TeamResponse carries the generated team, its rationale and the request
// description.
type TeamResponse struct {
	Team        []TeamMemberResponse `json:"team"`
	Analysis    string               `json:"analysis"`
	Description string               `json:"description"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
