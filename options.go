package pokemcp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pokemcp/pokemcp/infrastructure/pokeapi"
	"github.com/pokemcp/pokemcp/infrastructure/provider"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	pokeAPIBaseURL string
	pokeAPITimeout time.Duration
	httpClient     *http.Client
	textProvider   provider.TextGenerator
	logger         *slog.Logger
}

// newClientConfig creates a clientConfig with defaults.
func newClientConfig() *clientConfig {
	return &clientConfig{
		pokeAPIBaseURL: pokeapi.DefaultBaseURL,
		pokeAPITimeout: pokeapi.DefaultTimeout,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithPokeAPIBaseURL sets the upstream data provider base URL.
func WithPokeAPIBaseURL(url string) Option {
	return func(c *clientConfig) {
		if url != "" {
			c.pokeAPIBaseURL = url
		}
	}
}

// WithPokeAPITimeout sets the upstream request timeout.
// Values <= 0 are ignored.
func WithPokeAPITimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.pokeAPITimeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client for upstream requests.
// Useful for tests. A client with a non-zero Timeout keeps it; a client
// without one gets the configured upstream timeout applied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithGemini sets Google Gemini as the text generation provider.
func WithGemini(apiKey string) Option {
	return func(c *clientConfig) {
		c.textProvider = provider.NewGeminiProvider(provider.GeminiConfig{APIKey: apiKey})
	}
}

// WithGeminiConfig sets Gemini with custom configuration.
func WithGeminiConfig(cfg provider.GeminiConfig) Option {
	return func(c *clientConfig) {
		c.textProvider = provider.NewGeminiProvider(cfg)
	}
}

// WithOpenAI sets OpenAI as the text generation provider.
func WithOpenAI(apiKey string) Option {
	return func(c *clientConfig) {
		c.textProvider = provider.NewOpenAIProvider(provider.OpenAIConfig{APIKey: apiKey})
	}
}

// WithOpenAIConfig sets OpenAI with custom configuration.
func WithOpenAIConfig(cfg provider.OpenAIConfig) Option {
	return func(c *clientConfig) {
		c.textProvider = provider.NewOpenAIProvider(cfg)
	}
}

// WithTextProvider sets a custom text generation provider.
func WithTextProvider(p provider.TextGenerator) Option {
	return func(c *clientConfig) {
		c.textProvider = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
