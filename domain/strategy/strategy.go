// Package strategy holds the AI-derived battle analysis records and the
// parsers that recover them from free-text model output.
package strategy

import "github.com/pokemcp/pokemcp/domain/pokemon"

// Fallback values substituted when model output omits a field.
const (
	DefaultWinner     = "Unknown"
	DefaultConfidence = "Medium"
	DefaultReasoning  = "Analysis unavailable"
)

// DefaultKeyFactors returns the fallback key-factor list.
func DefaultKeyFactors() []string {
	return []string{"Type matchup", "Stat comparison"}
}

// DefaultTeamAnalysis is the generic rationale substituted when the analysis
// generation call fails.
const DefaultTeamAnalysis = "This team provides a balanced combination of Pokemon that work well together to achieve your strategic goals."

// BattleVerdict is the outcome of a head-to-head battle analysis.
type BattleVerdict struct {
	winner     string
	confidence string
	reasoning  string
	keyFactors []string
}

// NewBattleVerdict creates a BattleVerdict, substituting defaults for any
// empty field.
func NewBattleVerdict(winner, confidence, reasoning string, keyFactors []string) BattleVerdict {
	if winner == "" {
		winner = DefaultWinner
	}
	if confidence == "" {
		confidence = DefaultConfidence
	}
	if reasoning == "" {
		reasoning = DefaultReasoning
	}
	if len(keyFactors) == 0 {
		keyFactors = DefaultKeyFactors()
	}
	kf := make([]string, len(keyFactors))
	copy(kf, keyFactors)
	return BattleVerdict{
		winner:     winner,
		confidence: confidence,
		reasoning:  reasoning,
		keyFactors: kf,
	}
}

// Winner returns the predicted winner's name.
func (v BattleVerdict) Winner() string { return v.winner }

// Confidence returns the confidence label (High, Medium or Low).
func (v BattleVerdict) Confidence() string { return v.confidence }

// Reasoning returns the explanation text.
func (v BattleVerdict) Reasoning() string { return v.reasoning }

// KeyFactors returns the deciding factors in parse order.
func (v BattleVerdict) KeyFactors() []string {
	kf := make([]string, len(v.keyFactors))
	copy(kf, v.keyFactors)
	return kf
}

// CounterSuggestion is one suggested counter Pokemon. The sprite is resolved
// by a secondary lookup after parsing; it stays empty when that lookup fails.
type CounterSuggestion struct {
	name   string
	typ    string
	reason string
	sprite string
}

// NewCounterSuggestion creates a CounterSuggestion without a sprite.
func NewCounterSuggestion(name, typ, reason string) CounterSuggestion {
	return CounterSuggestion{name: name, typ: typ, reason: reason}
}

// Name returns the counter's name.
func (c CounterSuggestion) Name() string { return c.name }

// Type returns the counter's type text; dual types appear as "A/B".
func (c CounterSuggestion) Type() string { return c.typ }

// Reason returns why this Pokemon counters the target.
func (c CounterSuggestion) Reason() string { return c.reason }

// Sprite returns the resolved sprite URL, or "" when unresolved.
func (c CounterSuggestion) Sprite() string { return c.sprite }

// WithSprite returns a copy with the sprite URL set.
func (c CounterSuggestion) WithSprite(url string) CounterSuggestion {
	c.sprite = url
	return c
}

// TeamMember is one generated team slot. Sprite, stats and types are resolved
// by a secondary lookup; when that lookup fails the sprite stays empty, stats
// stay empty and types degrade to the single generated type.
type TeamMember struct {
	name   string
	typ    string
	role   string
	sprite string
	stats  pokemon.Stats
	types  []string
}

// NewTeamMember creates a TeamMember before secondary resolution.
func NewTeamMember(name, typ, role string) TeamMember {
	return TeamMember{name: name, typ: typ, role: role}
}

// Name returns the member's name.
func (m TeamMember) Name() string { return m.name }

// Type returns the primary type as generated.
func (m TeamMember) Type() string { return m.typ }

// Role returns the free-text team role.
func (m TeamMember) Role() string { return m.role }

// Sprite returns the resolved sprite URL, or "" when unresolved.
func (m TeamMember) Sprite() string { return m.sprite }

// Stats returns the resolved base stats, empty when unresolved.
func (m TeamMember) Stats() pokemon.Stats {
	st := make(pokemon.Stats, len(m.stats))
	copy(st, m.stats)
	return st
}

// Types returns the resolved type list. When unresolved it holds the single
// generated type (or "Unknown" when even that is absent).
func (m TeamMember) Types() []string {
	if len(m.types) == 0 {
		typ := m.typ
		if typ == "" {
			typ = "Unknown"
		}
		return []string{typ}
	}
	t := make([]string, len(m.types))
	copy(t, m.types)
	return t
}

// Resolve returns a copy carrying the factual fields from a secondary lookup.
func (m TeamMember) Resolve(sprite string, stats pokemon.Stats, types []string) TeamMember {
	m.sprite = sprite
	st := make(pokemon.Stats, len(stats))
	copy(st, stats)
	m.stats = st
	t := make([]string, len(types))
	copy(t, types)
	m.types = t
	return m
}
