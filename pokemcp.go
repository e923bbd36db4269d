// Package pokemcp provides a middleware library that combines factual
// Pokemon data from PokeAPI with LLM-generated strategic analysis.
//
// Basic usage:
//
//	client, err := pokemcp.New(
//	    pokemcp.WithGemini(os.Getenv("GEMINI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Enriched single lookup
//	record, err := client.Strategy.Pokemon(ctx, "pikachu")
//
//	// Head-to-head battle analysis
//	result, err := client.Strategy.Battle(ctx, "charizard", "blastoise")
//
// Without a text provider the client still serves factual data; every
// enrichment degrades to its documented fallback.
package pokemcp

import (
	"log/slog"

	"github.com/pokemcp/pokemcp/application/service"
	"github.com/pokemcp/pokemcp/infrastructure/pokeapi"
	"github.com/pokemcp/pokemcp/infrastructure/provider"
	"github.com/pokemcp/pokemcp/internal/config"
)

// Client is the main entry point for the pokemcp library.
//
// Access operations via the Strategy service:
//
//	client.Strategy.Pokemon(ctx, "pikachu")
//	client.Strategy.GenerateTeam(ctx, "a balanced rain team")
type Client struct {
	// Strategy exposes the enrichment pipeline operations.
	Strategy *service.Strategy

	pokeAPI   *pokeapi.Client
	generator provider.TextGenerator
	logger    *slog.Logger
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	var pokeAPIOpts []pokeapi.Option
	if cfg.httpClient != nil {
		pokeAPIOpts = append(pokeAPIOpts, pokeapi.WithHTTPClient(cfg.httpClient))
		// A supplied client keeps its own timeout; only a zero timeout
		// falls back to the configured one.
		if cfg.httpClient.Timeout == 0 {
			pokeAPIOpts = append(pokeAPIOpts, pokeapi.WithTimeout(cfg.pokeAPITimeout))
		}
	} else {
		pokeAPIOpts = append(pokeAPIOpts, pokeapi.WithTimeout(cfg.pokeAPITimeout))
	}
	pokeAPI := pokeapi.NewClient(cfg.pokeAPIBaseURL, logger, pokeAPIOpts...)

	client := &Client{
		pokeAPI:   pokeAPI,
		generator: cfg.textProvider,
		logger:    logger,
	}

	client.Strategy = service.NewStrategy(pokeAPI, cfg.textProvider, logger)

	if cfg.textProvider == nil {
		logger.Warn("no text provider configured, enrichment falls back to defaults")
	}

	return client, nil
}

// Close releases the text provider's resources.
func (c *Client) Close() error {
	if c.generator == nil {
		return nil
	}
	return c.generator.Close()
}

// PokeAPI returns the upstream data client.
func (c *Client) PokeAPI() *pokeapi.Client {
	return c.pokeAPI
}

// Generator returns the configured text provider, or nil.
func (c *Client) Generator() provider.TextGenerator {
	return c.generator
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// NewFromConfig builds a Client from a resolved application configuration.
func NewFromConfig(cfg config.AppConfig, logger *slog.Logger) (*Client, error) {
	opts := []Option{
		WithLogger(logger),
		WithPokeAPIBaseURL(cfg.PokeAPI().BaseURL()),
		WithPokeAPITimeout(cfg.PokeAPI().Timeout()),
	}

	gen := cfg.Generation()
	if gen.IsConfigured() {
		switch gen.Provider() {
		case config.ProviderOpenAI:
			opts = append(opts, WithOpenAIConfig(provider.OpenAIConfig{
				APIKey:      gen.APIKey(),
				BaseURL:     gen.BaseURL(),
				Model:       gen.Model(),
				Temperature: gen.Temperature(),
				MaxTokens:   gen.MaxTokens(),
				Timeout:     gen.Timeout(),
			}))
		default:
			opts = append(opts, WithGeminiConfig(provider.GeminiConfig{
				APIKey:      gen.APIKey(),
				Model:       gen.Model(),
				Temperature: gen.Temperature(),
				MaxTokens:   gen.MaxTokens(),
			}))
		}
	}

	return New(opts...)
}
