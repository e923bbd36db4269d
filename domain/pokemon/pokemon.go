// Package pokemon holds the canonical factual Pokemon record and the error
// taxonomy for upstream data retrieval.
package pokemon

import (
	"strconv"
	"strings"
)

// Stat is a single named base stat.
type Stat struct {
	name  string
	value int
}

// NewStat creates a new Stat.
func NewStat(name string, value int) Stat {
	return Stat{name: name, value: value}
}

// Name returns the stat name (e.g. "Hp", "Special Attack").
func (s Stat) Name() string { return s.name }

// Value returns the base stat value.
func (s Stat) Value() int { return s.value }

// Stats is an ordered collection of base stats. Order matches the upstream
// payload, which always lists the same six entries.
type Stats []Stat

// Get returns the value for a stat name and whether it is present.
func (s Stats) Get(name string) (int, bool) {
	for _, st := range s {
		if st.name == name {
			return st.value, true
		}
	}
	return 0, false
}

// String formats the stats as "Hp: 45, Attack: 49, ..." for prompt text.
func (s Stats) String() string {
	var b strings.Builder
	for i, st := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(st.name)
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(st.value))
	}
	return b.String()
}

// Pokemon is the canonical factual record built from one upstream response.
// It is request-scoped and never persisted.
type Pokemon struct {
	name        string
	id          int
	heightM     float64
	weightKG    float64
	abilities   []string
	types       []string
	stats       Stats
	sprite      string
	description string
}

// New creates a Pokemon record from already-normalized fields.
func New(name string, id int, heightM, weightKG float64, abilities, types []string, stats Stats, sprite string) Pokemon {
	a := make([]string, len(abilities))
	copy(a, abilities)
	t := make([]string, len(types))
	copy(t, types)
	st := make(Stats, len(stats))
	copy(st, stats)
	return Pokemon{
		name:      name,
		id:        id,
		heightM:   heightM,
		weightKG:  weightKG,
		abilities: a,
		types:     t,
		stats:     st,
		sprite:    sprite,
	}
}

// Name returns the capitalized Pokemon name.
func (p Pokemon) Name() string { return p.name }

// ID returns the national dex number.
func (p Pokemon) ID() int { return p.id }

// HeightM returns the height in meters.
func (p Pokemon) HeightM() float64 { return p.heightM }

// WeightKG returns the weight in kilograms.
func (p Pokemon) WeightKG() float64 { return p.weightKG }

// Abilities returns the ability names in upstream order.
func (p Pokemon) Abilities() []string {
	a := make([]string, len(p.abilities))
	copy(a, p.abilities)
	return a
}

// Types returns the type names in upstream order (one or two entries).
func (p Pokemon) Types() []string {
	t := make([]string, len(p.types))
	copy(t, p.types)
	return t
}

// Stats returns the base stats in upstream order.
func (p Pokemon) Stats() Stats {
	st := make(Stats, len(p.stats))
	copy(st, p.stats)
	return st
}

// Sprite returns the front sprite URL, or "" if upstream has none.
func (p Pokemon) Sprite() string { return p.sprite }

// Description returns the generated description, or "" when not enriched.
func (p Pokemon) Description() string { return p.description }

// WithDescription returns a copy of the record carrying a description.
func (p Pokemon) WithDescription(desc string) Pokemon {
	p.description = desc
	return p
}

// TypeLine joins the type names with "/" (e.g. "Grass/Poison").
func (p Pokemon) TypeLine() string {
	return strings.Join(p.types, "/")
}

// FallbackDescription is the description substituted when generation fails.
func (p Pokemon) FallbackDescription() string {
	return p.name + " is a " + p.TypeLine() + " type Pokemon."
}
