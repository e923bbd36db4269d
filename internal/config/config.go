// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Default configuration values.
const (
	DefaultHost                  = "0.0.0.0"
	DefaultPort                  = 8000
	DefaultLogLevel              = "INFO"
	DefaultPokeAPIBaseURL        = "https://pokeapi.co/api/v2"
	DefaultPokeAPITimeout        = 10 * time.Second
	DefaultGenerationProvider    = ProviderGemini
	DefaultGenerationModel       = "gemini-1.5-flash"
	DefaultGenerationTemperature = 0.7
	DefaultGenerationMaxTokens   = 1024
	DefaultGenerationTimeout     = 60 * time.Second
	DefaultCORSAllowOrigin       = "http://localhost:8501"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// GenerationProvider identifies a text generation backend.
type GenerationProvider string

// GenerationProvider values.
const (
	ProviderGemini GenerationProvider = "gemini"
	ProviderOpenAI GenerationProvider = "openai"
)

// PokeAPIConfig configures the upstream data provider client.
type PokeAPIConfig struct {
	baseURL string
	timeout time.Duration
}

// NewPokeAPIConfig creates a PokeAPIConfig with defaults.
func NewPokeAPIConfig() PokeAPIConfig {
	return PokeAPIConfig{
		baseURL: DefaultPokeAPIBaseURL,
		timeout: DefaultPokeAPITimeout,
	}
}

// BaseURL returns the provider root URL.
func (p PokeAPIConfig) BaseURL() string { return p.baseURL }

// Timeout returns the per-call timeout.
func (p PokeAPIConfig) Timeout() time.Duration { return p.timeout }

// WithBaseURL returns a copy with the base URL set.
func (p PokeAPIConfig) WithBaseURL(url string) PokeAPIConfig {
	p.baseURL = url
	return p
}

// WithTimeout returns a copy with the timeout set.
func (p PokeAPIConfig) WithTimeout(d time.Duration) PokeAPIConfig {
	p.timeout = d
	return p
}

// GenerationConfig configures the text generation provider.
type GenerationConfig struct {
	provider    GenerationProvider
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// NewGenerationConfig creates a GenerationConfig with defaults.
func NewGenerationConfig() GenerationConfig {
	return GenerationConfig{
		provider:    DefaultGenerationProvider,
		model:       DefaultGenerationModel,
		temperature: DefaultGenerationTemperature,
		maxTokens:   DefaultGenerationMaxTokens,
		timeout:     DefaultGenerationTimeout,
	}
}

// Provider returns the backend selection.
func (g GenerationConfig) Provider() GenerationProvider { return g.provider }

// BaseURL returns the OpenAI-compatible endpoint URL, empty for the default.
func (g GenerationConfig) BaseURL() string { return g.baseURL }

// Model returns the model identifier.
func (g GenerationConfig) Model() string { return g.model }

// APIKey returns the provider credential.
func (g GenerationConfig) APIKey() string { return g.apiKey }

// Temperature returns the sampling temperature.
func (g GenerationConfig) Temperature() float64 { return g.temperature }

// MaxTokens returns the completion token cap.
func (g GenerationConfig) MaxTokens() int { return g.maxTokens }

// Timeout returns the per-call timeout.
func (g GenerationConfig) Timeout() time.Duration { return g.timeout }

// IsConfigured reports whether a credential is present.
func (g GenerationConfig) IsConfigured() bool { return g.apiKey != "" }

// WithProvider returns a copy with the backend set.
func (g GenerationConfig) WithProvider(p GenerationProvider) GenerationConfig {
	g.provider = p
	return g
}

// WithBaseURL returns a copy with the endpoint URL set.
func (g GenerationConfig) WithBaseURL(url string) GenerationConfig {
	g.baseURL = url
	return g
}

// WithModel returns a copy with the model set.
func (g GenerationConfig) WithModel(model string) GenerationConfig {
	g.model = model
	return g
}

// WithAPIKey returns a copy with the credential set.
func (g GenerationConfig) WithAPIKey(key string) GenerationConfig {
	g.apiKey = key
	return g
}

// WithTemperature returns a copy with the temperature set.
func (g GenerationConfig) WithTemperature(t float64) GenerationConfig {
	g.temperature = t
	return g
}

// WithMaxTokens returns a copy with the token cap set.
func (g GenerationConfig) WithMaxTokens(n int) GenerationConfig {
	g.maxTokens = n
	return g
}

// WithTimeout returns a copy with the timeout set.
func (g GenerationConfig) WithTimeout(d time.Duration) GenerationConfig {
	g.timeout = d
	return g
}

// AppConfig is the immutable application configuration.
type AppConfig struct {
	host             string
	port             int
	logLevel         string
	logFormat        LogFormat
	corsAllowOrigins []string
	pokeAPI          PokeAPIConfig
	generation       GenerationConfig
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:             DefaultHost,
		port:             DefaultPort,
		logLevel:         DefaultLogLevel,
		logFormat:        LogFormatPretty,
		corsAllowOrigins: []string{DefaultCORSAllowOrigin},
		pokeAPI:          NewPokeAPIConfig(),
		generation:       NewGenerationConfig(),
	}
}

// Option mutates an AppConfig during construction.
type Option func(AppConfig) AppConfig

// WithHost sets the bind host.
func WithHost(host string) Option {
	return func(c AppConfig) AppConfig { c.host = host; return c }
}

// WithPort sets the listen port.
func WithPort(port int) Option {
	return func(c AppConfig) AppConfig { c.port = port; return c }
}

// WithLogLevel sets the log verbosity.
func WithLogLevel(level string) Option {
	return func(c AppConfig) AppConfig { c.logLevel = level; return c }
}

// WithLogFormat sets the log output format.
func WithLogFormat(format LogFormat) Option {
	return func(c AppConfig) AppConfig { c.logFormat = format; return c }
}

// WithCORSAllowOrigins sets the allowed presentation-layer origins.
func WithCORSAllowOrigins(origins []string) Option {
	return func(c AppConfig) AppConfig {
		o := make([]string, len(origins))
		copy(o, origins)
		c.corsAllowOrigins = o
		return c
	}
}

// WithPokeAPI sets the upstream provider configuration.
func WithPokeAPI(p PokeAPIConfig) Option {
	return func(c AppConfig) AppConfig { c.pokeAPI = p; return c }
}

// WithGeneration sets the text generation configuration.
func WithGeneration(g GenerationConfig) Option {
	return func(c AppConfig) AppConfig { c.generation = g; return c }
}

// NewAppConfigWithOptions creates an AppConfig with options applied over
// defaults.
func NewAppConfigWithOptions(opts ...Option) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a copy with the given options applied.
func (c AppConfig) Apply(opts ...Option) AppConfig {
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}

// Host returns the bind host.
func (c AppConfig) Host() string { return c.host }

// Port returns the listen port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log verbosity.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// CORSAllowOrigins returns the allowed presentation-layer origins.
func (c AppConfig) CORSAllowOrigins() []string {
	o := make([]string, len(c.corsAllowOrigins))
	copy(o, c.corsAllowOrigins)
	return o
}

// PokeAPI returns the upstream provider configuration.
func (c AppConfig) PokeAPI() PokeAPIConfig { return c.pokeAPI }

// Generation returns the text generation configuration.
func (c AppConfig) Generation() GenerationConfig { return c.generation }

// LogAttrs returns startup log attributes describing the configuration
// without leaking credentials.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("log_level", c.logLevel),
		slog.String("pokeapi_base_url", c.pokeAPI.BaseURL()),
		slog.String("generation_provider", string(c.generation.Provider())),
		slog.String("generation_model", c.generation.Model()),
		slog.Bool("generation_configured", c.generation.IsConfigured()),
	}
}
