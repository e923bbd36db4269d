// Package service composes the upstream data client, the prompt templates,
// the text generation provider and the output parsers into the per-endpoint
// enrichment pipelines.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pokemcp/pokemcp/domain/pokemon"
	"github.com/pokemcp/pokemcp/domain/prompt"
	"github.com/pokemcp/pokemcp/domain/strategy"
	"github.com/pokemcp/pokemcp/infrastructure/provider"
)

// Fetcher retrieves factual Pokemon records from the upstream provider.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (pokemon.Pokemon, error)
}

// Strategy runs the fetch, prompt, parse, assemble pipeline for every
// endpoint. A failed primary fetch is fatal and propagates; generation and
// parse shortfalls degrade to documented fallbacks; a failed secondary fetch
// degrades only the list entry it was resolving.
type Strategy struct {
	fetcher   Fetcher
	generator provider.TextGenerator
	logger    *slog.Logger
}

// NewStrategy creates a Strategy service. The generator may be nil, in which
// case every enrichment degrades to its fallback.
func NewStrategy(fetcher Fetcher, generator provider.TextGenerator, logger *slog.Logger) *Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Strategy{
		fetcher:   fetcher,
		generator: generator,
		logger:    logger,
	}
}

// complete runs one single-shot completion and returns the trimmed text.
func (s *Strategy) complete(ctx context.Context, promptText string) (string, error) {
	if s.generator == nil {
		return "", provider.NewProviderError("complete", 0, "no text generation provider configured", nil)
	}

	req := provider.NewCompletionRequest([]provider.Message{
		provider.UserMessage(promptText),
	})

	resp, err := s.generator.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content()), nil
}

// Pokemon fetches one record and enriches it with a generated description.
// Generation failure substitutes the fixed fallback description.
func (s *Strategy) Pokemon(ctx context.Context, name string) (pokemon.Pokemon, error) {
	record, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return pokemon.Pokemon{}, err
	}

	description, err := s.complete(ctx, prompt.Description(record))
	if err != nil {
		s.logger.Warn("description generation failed", "name", record.Name(), "error", err)
		description = record.FallbackDescription()
	}

	return record.WithDescription(description), nil
}

// Compare runs two sequential enriched lookups.
func (s *Strategy) Compare(ctx context.Context, name1, name2 string) (pokemon.Pokemon, pokemon.Pokemon, error) {
	p1, err := s.Pokemon(ctx, name1)
	if err != nil {
		return pokemon.Pokemon{}, pokemon.Pokemon{}, err
	}
	p2, err := s.Pokemon(ctx, name2)
	if err != nil {
		return pokemon.Pokemon{}, pokemon.Pokemon{}, err
	}
	return p1, p2, nil
}

// BattleResult bundles the two factual records with the parsed verdict.
type BattleResult struct {
	pokemon1 pokemon.Pokemon
	pokemon2 pokemon.Pokemon
	verdict  strategy.BattleVerdict
}

// Pokemon1 returns the first combatant's record.
func (r BattleResult) Pokemon1() pokemon.Pokemon { return r.pokemon1 }

// Pokemon2 returns the second combatant's record.
func (r BattleResult) Pokemon2() pokemon.Pokemon { return r.pokemon2 }

// Verdict returns the battle verdict.
func (r BattleResult) Verdict() strategy.BattleVerdict { return r.verdict }

// Battle fetches both combatants (fatal if either fails), generates the
// matchup analysis and parses the verdict. Generation failure yields the
// full default verdict.
func (s *Strategy) Battle(ctx context.Context, name1, name2 string) (BattleResult, error) {
	p1, err := s.fetcher.Fetch(ctx, name1)
	if err != nil {
		return BattleResult{}, err
	}
	p2, err := s.fetcher.Fetch(ctx, name2)
	if err != nil {
		return BattleResult{}, err
	}

	verdict := strategy.NewBattleVerdict("", "", "", nil)
	if text, err := s.complete(ctx, prompt.Battle(p1, p2)); err != nil {
		s.logger.Warn("battle analysis failed", "pokemon1", p1.Name(), "pokemon2", p2.Name(), "error", err)
	} else {
		verdict = strategy.ParseBattleVerdict(text)
	}

	return BattleResult{pokemon1: p1, pokemon2: p2, verdict: verdict}, nil
}

// CounterResult bundles the target record with its counter suggestions.
type CounterResult struct {
	target   pokemon.Pokemon
	counters []strategy.CounterSuggestion
}

// Target returns the target Pokemon's record.
func (r CounterResult) Target() pokemon.Pokemon { return r.target }

// Counters returns the suggestions in parse order.
func (r CounterResult) Counters() []strategy.CounterSuggestion {
	c := make([]strategy.CounterSuggestion, len(r.counters))
	copy(c, r.counters)
	return c
}

// Counters fetches the target (fatal on failure), generates counter
// suggestions and resolves each suggestion's sprite with a secondary fetch.
// Generation failure yields an empty list; a failed secondary fetch leaves
// that one entry without a sprite.
func (s *Strategy) Counters(ctx context.Context, name string) (CounterResult, error) {
	target, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return CounterResult{}, err
	}

	var counters []strategy.CounterSuggestion
	if text, err := s.complete(ctx, prompt.Counters(target)); err != nil {
		s.logger.Warn("counter generation failed", "name", target.Name(), "error", err)
	} else {
		counters = strategy.ParseCounters(text)
	}

	for i, c := range counters {
		record, err := s.fetcher.Fetch(ctx, c.Name())
		if err != nil {
			s.logger.Debug("counter sprite lookup failed", "name", c.Name(), "error", err)
			continue
		}
		counters[i] = c.WithSprite(record.Sprite())
	}

	return CounterResult{target: target, counters: counters}, nil
}

// TeamResult bundles the generated team with its analysis text.
type TeamResult struct {
	team     []strategy.TeamMember
	analysis string
}

// Team returns the members in parse order.
func (r TeamResult) Team() []strategy.TeamMember {
	t := make([]strategy.TeamMember, len(r.team))
	copy(t, r.team)
	return t
}

// Analysis returns the rationale text.
func (r TeamResult) Analysis() string { return r.analysis }

// GenerateTeam builds a team from a free-text description. There is no
// primary fetch; generation failure here is fatal because without model
// output there is nothing to return. Each member is resolved with a
// secondary fetch (sprite, stats, types); resolution failure degrades that
// member only. Analysis generation failure substitutes a generic sentence.
func (s *Strategy) GenerateTeam(ctx context.Context, description string) (TeamResult, error) {
	text, err := s.complete(ctx, prompt.Team(description))
	if err != nil {
		return TeamResult{}, fmt.Errorf("generate team: %w", err)
	}

	team := strategy.ParseTeam(text)
	for i, m := range team {
		record, err := s.fetcher.Fetch(ctx, m.Name())
		if err != nil {
			s.logger.Debug("team member lookup failed", "name", m.Name(), "error", err)
			continue
		}
		team[i] = m.Resolve(record.Sprite(), record.Stats(), record.Types())
	}

	analysis, err := s.complete(ctx, prompt.TeamAnalysis(description, memberSummary(team)))
	if err != nil {
		s.logger.Warn("team analysis failed", "error", err)
		analysis = strategy.DefaultTeamAnalysis
	}

	return TeamResult{team: team, analysis: analysis}, nil
}

// memberSummary formats members as "Pikachu (Attacker), Snorlax (Tank)".
func memberSummary(team []strategy.TeamMember) string {
	parts := make([]string, len(team))
	for i, m := range team {
		parts[i] = fmt.Sprintf("%s (%s)", m.Name(), m.Role())
	}
	return strings.Join(parts, ", ")
}
