package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pokemcp/pokemcp/domain/pokemon"
	"github.com/pokemcp/pokemcp/domain/strategy"
	"github.com/pokemcp/pokemcp/infrastructure/provider"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned records by lowercased name and records the
// fetch order.
type fakeFetcher struct {
	records map[string]pokemon.Pokemon
	calls   []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, name string) (pokemon.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	f.calls = append(f.calls, key)
	record, ok := f.records[key]
	if !ok {
		return pokemon.Pokemon{}, pokemon.NewNotFoundError(name)
	}
	return record, nil
}

// fakeGenerator returns a fixed reply, or an error when failing is set.
type fakeGenerator struct {
	reply   string
	replies []string // consumed before falling back to reply
	failing bool
	calls   int
	prompts []string
}

func (g *fakeGenerator) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	g.calls++
	if len(req.Messages()) > 0 {
		g.prompts = append(g.prompts, req.Messages()[0].Content())
	}
	if g.failing {
		return provider.CompletionResponse{}, provider.NewProviderError("chat_completion", 500, "model unavailable", nil)
	}
	if len(g.replies) > 0 {
		reply := g.replies[0]
		g.replies = g.replies[1:]
		return provider.NewCompletionResponse(reply, "stop"), nil
	}
	return provider.NewCompletionResponse(g.reply, "stop"), nil
}

func (g *fakeGenerator) ModelName() string { return "fake-model" }
func (g *fakeGenerator) Close() error      { return nil }

func record(name string, types ...string) pokemon.Pokemon {
	return pokemon.New(name, 1, 0.7, 6.9,
		[]string{"Overgrow"},
		types,
		pokemon.Stats{pokemon.NewStat("Hp", 45), pokemon.NewStat("Speed", 45)},
		"https://example.com/"+strings.ToLower(name)+".png",
	)
}

func newFetcher(names ...string) *fakeFetcher {
	f := &fakeFetcher{records: map[string]pokemon.Pokemon{}}
	for _, n := range names {
		f.records[strings.ToLower(n)] = record(n, "Grass", "Poison")
	}
	return f
}

func TestStrategy_Pokemon_Enriched(t *testing.T) {
	fetcher := newFetcher("Bulbasaur")
	gen := &fakeGenerator{reply: "  A loyal seed Pokemon.  "}
	svc := NewStrategy(fetcher, gen, nil)

	got, err := svc.Pokemon(context.Background(), "bulbasaur")
	require.NoError(t, err)
	require.Equal(t, "A loyal seed Pokemon.", got.Description())
	require.Equal(t, 1, gen.calls)
}

func TestStrategy_Pokemon_GenerationFailureFallsBack(t *testing.T) {
	fetcher := newFetcher("Bulbasaur")
	gen := &fakeGenerator{failing: true}
	svc := NewStrategy(fetcher, gen, nil)

	got, err := svc.Pokemon(context.Background(), "bulbasaur")
	require.NoError(t, err, "generation failure must not fail the lookup")
	require.Equal(t, "Bulbasaur is a Grass/Poison type Pokemon.", got.Description())
}

func TestStrategy_Pokemon_NilGeneratorFallsBack(t *testing.T) {
	fetcher := newFetcher("Bulbasaur")
	svc := NewStrategy(fetcher, nil, nil)

	got, err := svc.Pokemon(context.Background(), "bulbasaur")
	require.NoError(t, err)
	require.Equal(t, "Bulbasaur is a Grass/Poison type Pokemon.", got.Description())
}

func TestStrategy_Pokemon_FetchFailureIsFatal(t *testing.T) {
	fetcher := newFetcher()
	gen := &fakeGenerator{reply: "irrelevant"}
	svc := NewStrategy(fetcher, gen, nil)

	_, err := svc.Pokemon(context.Background(), "missingno")

	var notFound *pokemon.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Zero(t, gen.calls, "no generation call after a failed fetch")
}

func TestStrategy_Compare_SequentialLookups(t *testing.T) {
	fetcher := newFetcher("Bulbasaur", "Charmander")
	gen := &fakeGenerator{reply: "desc"}
	svc := NewStrategy(fetcher, gen, nil)

	p1, p2, err := svc.Compare(context.Background(), "bulbasaur", "charmander")
	require.NoError(t, err)
	require.Equal(t, "Bulbasaur", p1.Name())
	require.Equal(t, "Charmander", p2.Name())
	require.Equal(t, []string{"bulbasaur", "charmander"}, fetcher.calls)
}

func TestStrategy_Battle_ParsesVerdict(t *testing.T) {
	fetcher := newFetcher("Charizard", "Blastoise")
	gen := &fakeGenerator{reply: "Winner: Blastoise\nConfidence: High\nReasoning: Water beats fire.\nKey Factors: Type matchup, Bulk"}
	svc := NewStrategy(fetcher, gen, nil)

	result, err := svc.Battle(context.Background(), "charizard", "blastoise")
	require.NoError(t, err)
	require.Equal(t, "Blastoise", result.Verdict().Winner())
	require.Equal(t, "High", result.Verdict().Confidence())
	require.Equal(t, "Charizard", result.Pokemon1().Name())
	require.Empty(t, result.Pokemon1().Description(), "battle records are not enriched")
}

func TestStrategy_Battle_GenerationFailureDefaultVerdict(t *testing.T) {
	fetcher := newFetcher("Charizard", "Blastoise")
	gen := &fakeGenerator{failing: true}
	svc := NewStrategy(fetcher, gen, nil)

	result, err := svc.Battle(context.Background(), "charizard", "blastoise")
	require.NoError(t, err)
	require.Equal(t, strategy.DefaultWinner, result.Verdict().Winner())
	require.Equal(t, strategy.DefaultConfidence, result.Verdict().Confidence())
	require.Equal(t, strategy.DefaultReasoning, result.Verdict().Reasoning())
	require.Equal(t, strategy.DefaultKeyFactors(), result.Verdict().KeyFactors())
}

func TestStrategy_Battle_EitherFetchFatal(t *testing.T) {
	fetcher := newFetcher("Charizard")
	gen := &fakeGenerator{reply: "Winner: X"}
	svc := NewStrategy(fetcher, gen, nil)

	_, err := svc.Battle(context.Background(), "charizard", "missingno")
	require.Error(t, err)
	require.Zero(t, gen.calls)
}

func TestStrategy_Counters_ResolvesSprites(t *testing.T) {
	fetcher := newFetcher("Pikachu", "Gyarados")
	gen := &fakeGenerator{reply: "Name: Gyarados\nType: Water/Flying\nReason: Bulk.\n\nName: Rhydon\nType: Ground\nReason: Immunity."}
	svc := NewStrategy(fetcher, gen, nil)

	result, err := svc.Counters(context.Background(), "pikachu")
	require.NoError(t, err)

	counters := result.Counters()
	require.Len(t, counters, 2)
	require.Equal(t, "Gyarados", counters[0].Name())
	require.Equal(t, "https://example.com/gyarados.png", counters[0].Sprite())
	// Rhydon is unknown to the fetcher: that entry degrades, the rest stay.
	require.Equal(t, "Rhydon", counters[1].Name())
	require.Empty(t, counters[1].Sprite())
}

func TestStrategy_Counters_GenerationFailureEmptyList(t *testing.T) {
	fetcher := newFetcher("Pikachu")
	gen := &fakeGenerator{failing: true}
	svc := NewStrategy(fetcher, gen, nil)

	result, err := svc.Counters(context.Background(), "pikachu")
	require.NoError(t, err, "counter generation failure is non-fatal")
	require.Empty(t, result.Counters())
	require.Equal(t, "Pikachu", result.Target().Name())
}

func TestStrategy_GenerateTeam_ResolvesMembers(t *testing.T) {
	fetcher := newFetcher("Pikachu")
	gen := &fakeGenerator{replies: []string{
		"Name: Pikachu\nType: Electric\nRole: Attacker\n\nName: Fakemon\nType: Steel\nRole: Wall",
		"A strong pairing.",
	}}
	svc := NewStrategy(fetcher, gen, nil)

	result, err := svc.GenerateTeam(context.Background(), "an electric core")
	require.NoError(t, err)

	team := result.Team()
	require.Len(t, team, 2)

	require.Equal(t, "Pikachu", team[0].Name())
	require.Equal(t, "https://example.com/pikachu.png", team[0].Sprite())
	require.Equal(t, []string{"Grass", "Poison"}, team[0].Types())
	require.NotEmpty(t, team[0].Stats())

	// Unresolvable member degrades: no sprite, empty stats, generated type.
	require.Equal(t, "Fakemon", team[1].Name())
	require.Empty(t, team[1].Sprite())
	require.Empty(t, team[1].Stats())
	require.Equal(t, []string{"Steel"}, team[1].Types())

	require.Equal(t, "A strong pairing.", result.Analysis())
}

func TestStrategy_GenerateTeam_GenerationFailureFatal(t *testing.T) {
	fetcher := newFetcher("Pikachu")
	gen := &fakeGenerator{failing: true}
	svc := NewStrategy(fetcher, gen, nil)

	_, err := svc.GenerateTeam(context.Background(), "anything")
	require.Error(t, err)
	require.True(t, errors.Is(err, provider.ErrGeneration))
}

func TestStrategy_GenerateTeam_AnalysisFailureUsesDefault(t *testing.T) {
	fetcher := newFetcher("Pikachu")
	gen := &countingThenFailing{
		inner:     &fakeGenerator{reply: "Name: Pikachu\nType: Electric\nRole: Attacker"},
		failAfter: 1,
	}
	svc := NewStrategy(fetcher, gen, nil)

	result, err := svc.GenerateTeam(context.Background(), "anything")
	require.NoError(t, err, "analysis failure is non-fatal")
	require.Len(t, result.Team(), 1)
	require.Equal(t, strategy.DefaultTeamAnalysis, result.Analysis())
}

func TestStrategy_GenerateTeam_AnalysisPromptNamesMembers(t *testing.T) {
	fetcher := newFetcher("Pikachu", "Snorlax")
	gen := &fakeGenerator{replies: []string{
		"Name: Pikachu\nType: Electric\nRole: Attacker\n\nName: Snorlax\nType: Normal\nRole: Tank",
	}, reply: "Fine team."}
	svc := NewStrategy(fetcher, gen, nil)

	_, err := svc.GenerateTeam(context.Background(), "balanced")
	require.NoError(t, err)
	require.Len(t, gen.prompts, 2)
	require.Contains(t, gen.prompts[1], "Pikachu (Attacker), Snorlax (Tank)")
}

// countingThenFailing delegates until failAfter successful calls have
// happened, then fails.
type countingThenFailing struct {
	inner     *fakeGenerator
	failAfter int
	calls     int
}

func (c *countingThenFailing) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	c.calls++
	if c.calls > c.failAfter {
		return provider.CompletionResponse{}, provider.NewProviderError("chat_completion", 500, "model unavailable", nil)
	}
	return c.inner.Complete(ctx, req)
}

func (c *countingThenFailing) ModelName() string { return "fake-model" }
func (c *countingThenFailing) Close() error      { return nil }
