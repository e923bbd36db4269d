package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables without a prefix; nested structs use underscore
// delimiters (e.g. GENERATION_API_KEY).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8000)
	Port int `envconfig:"PORT" default:"8000"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// CORSAllowOrigins is a comma-separated list of allowed origins for the
	// presentation layer.
	// Env: CORS_ALLOW_ORIGINS (default: http://localhost:8501)
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:8501"`

	// PokeAPI configures the upstream data provider.
	PokeAPI PokeAPIEnv `envconfig:"POKEAPI"`

	// Generation configures the text generation provider.
	Generation GenerationEnv `envconfig:"GENERATION"`

	// GeminiAPIKey is accepted as a fallback credential when
	// GENERATION_API_KEY is unset, matching the original deployment.
	// Env: GEMINI_API_KEY
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
}

// PokeAPIEnv holds environment configuration for the data provider.
type PokeAPIEnv struct {
	// BaseURL is the provider root URL.
	// Env: POKEAPI_BASE_URL (default: https://pokeapi.co/api/v2)
	BaseURL string `envconfig:"BASE_URL" default:"https://pokeapi.co/api/v2"`

	// Timeout is the per-call timeout in seconds.
	// Env: POKEAPI_TIMEOUT (default: 10)
	Timeout float64 `envconfig:"TIMEOUT" default:"10"`
}

// GenerationEnv holds environment configuration for text generation.
type GenerationEnv struct {
	// Provider selects the backend (gemini or openai).
	// Env: GENERATION_PROVIDER (default: gemini)
	Provider string `envconfig:"PROVIDER" default:"gemini"`

	// BaseURL is an OpenAI-compatible endpoint URL.
	// Env: GENERATION_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the model identifier.
	// Env: GENERATION_MODEL (default: gemini-1.5-flash)
	Model string `envconfig:"MODEL" default:"gemini-1.5-flash"`

	// APIKey is the provider credential.
	// Env: GENERATION_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Temperature is the sampling temperature.
	// Env: GENERATION_TEMPERATURE (default: 0.7)
	Temperature float64 `envconfig:"TEMPERATURE" default:"0.7"`

	// MaxTokens is the completion token cap.
	// Env: GENERATION_MAX_TOKENS (default: 1024)
	MaxTokens int `envconfig:"MAX_TOKENS" default:"1024"`

	// Timeout is the per-call timeout in seconds.
	// Env: GENERATION_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []Option

	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.CORSAllowOrigins != "" {
		opts = append(opts, WithCORSAllowOrigins(splitCommaList(e.CORSAllowOrigins)))
	}

	pokeapi := NewPokeAPIConfig()
	if e.PokeAPI.BaseURL != "" {
		pokeapi = pokeapi.WithBaseURL(e.PokeAPI.BaseURL)
	}
	if e.PokeAPI.Timeout > 0 {
		pokeapi = pokeapi.WithTimeout(secondsToDuration(e.PokeAPI.Timeout))
	}
	opts = append(opts, WithPokeAPI(pokeapi))

	generation := NewGenerationConfig()
	if e.Generation.Provider != "" {
		generation = generation.WithProvider(parseGenerationProvider(e.Generation.Provider))
	}
	if e.Generation.BaseURL != "" {
		generation = generation.WithBaseURL(e.Generation.BaseURL)
	}
	if e.Generation.Model != "" {
		generation = generation.WithModel(e.Generation.Model)
	}
	apiKey := e.Generation.APIKey
	if apiKey == "" {
		apiKey = e.GeminiAPIKey
	}
	generation = generation.WithAPIKey(apiKey)
	if e.Generation.Temperature > 0 {
		generation = generation.WithTemperature(e.Generation.Temperature)
	}
	if e.Generation.MaxTokens > 0 {
		generation = generation.WithMaxTokens(e.Generation.MaxTokens)
	}
	if e.Generation.Timeout > 0 {
		generation = generation.WithTimeout(secondsToDuration(e.Generation.Timeout))
	}
	opts = append(opts, WithGeneration(generation))

	return NewAppConfigWithOptions(opts...)
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}

func parseGenerationProvider(s string) GenerationProvider {
	if strings.EqualFold(s, string(ProviderOpenAI)) {
		return ProviderOpenAI
	}
	return ProviderGemini
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
