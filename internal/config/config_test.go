package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	require.Equal(t, "0.0.0.0", cfg.Host())
	require.Equal(t, 8000, cfg.Port())
	require.Equal(t, "0.0.0.0:8000", cfg.Addr())
	require.Equal(t, "INFO", cfg.LogLevel())
	require.Equal(t, LogFormatPretty, cfg.LogFormat())
	require.Equal(t, []string{"http://localhost:8501"}, cfg.CORSAllowOrigins())
	require.Equal(t, "https://pokeapi.co/api/v2", cfg.PokeAPI().BaseURL())
	require.Equal(t, 10*time.Second, cfg.PokeAPI().Timeout())
	require.Equal(t, ProviderGemini, cfg.Generation().Provider())
	require.Equal(t, "gemini-1.5-flash", cfg.Generation().Model())
	require.False(t, cfg.Generation().IsConfigured())
}

func TestNewAppConfigWithOptions(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("127.0.0.1"),
		WithPort(9000),
		WithLogFormat(LogFormatJSON),
		WithGeneration(NewGenerationConfig().WithProvider(ProviderOpenAI).WithAPIKey("sk-test")),
	)

	require.Equal(t, "127.0.0.1:9000", cfg.Addr())
	require.Equal(t, LogFormatJSON, cfg.LogFormat())
	require.Equal(t, ProviderOpenAI, cfg.Generation().Provider())
	require.True(t, cfg.Generation().IsConfigured())
}

func TestAppConfig_ApplyDoesNotMutateReceiver(t *testing.T) {
	base := NewAppConfig()
	derived := base.Apply(WithPort(9001))

	require.Equal(t, 8000, base.Port())
	require.Equal(t, 9001, derived.Port())
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	env, err := LoadFromEnv()
	require.NoError(t, err)

	cfg := env.ToAppConfig()
	require.Equal(t, NewAppConfig(), cfg)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("POKEAPI_BASE_URL", "http://localhost:8080/api/v2")
	t.Setenv("POKEAPI_TIMEOUT", "2.5")
	t.Setenv("GENERATION_PROVIDER", "openai")
	t.Setenv("GENERATION_MODEL", "gpt-4o")
	t.Setenv("GENERATION_API_KEY", "sk-test")
	t.Setenv("GENERATION_MAX_TOKENS", "256")

	env, err := LoadFromEnv()
	require.NoError(t, err)

	cfg := env.ToAppConfig()
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
	require.Equal(t, "DEBUG", cfg.LogLevel())
	require.Equal(t, LogFormatJSON, cfg.LogFormat())
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins())
	require.Equal(t, "http://localhost:8080/api/v2", cfg.PokeAPI().BaseURL())
	require.Equal(t, 2500*time.Millisecond, cfg.PokeAPI().Timeout())
	require.Equal(t, ProviderOpenAI, cfg.Generation().Provider())
	require.Equal(t, "gpt-4o", cfg.Generation().Model())
	require.Equal(t, "sk-test", cfg.Generation().APIKey())
	require.Equal(t, 256, cfg.Generation().MaxTokens())
}

func TestLoadFromEnv_GeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gem-key")

	env, err := LoadFromEnv()
	require.NoError(t, err)

	cfg := env.ToAppConfig()
	require.Equal(t, "gem-key", cfg.Generation().APIKey())
	require.True(t, cfg.Generation().IsConfigured())
}

func TestLoadFromEnv_ExplicitKeyWinsOverGemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENERATION_API_KEY", "explicit")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	require.Equal(t, "explicit", env.ToAppConfig().Generation().APIKey())
}

func TestLoadConfig_DotEnvPrecedence(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7001\nLOG_LEVEL=DEBUG\n"), 0o600))

	// Process environment wins over the .env value.
	t.Setenv("LOG_LEVEL", "ERROR")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	require.Equal(t, 7001, cfg.Port())
	require.Equal(t, "ERROR", cfg.LogLevel())
}

func TestLoadConfig_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	require.Equal(t, NewAppConfig(), cfg)
}

func TestParseLogFormat(t *testing.T) {
	require.Equal(t, LogFormatJSON, parseLogFormat("JSON"))
	require.Equal(t, LogFormatPretty, parseLogFormat("pretty"))
	require.Equal(t, LogFormatPretty, parseLogFormat("garbage"))
}

func TestParseGenerationProvider(t *testing.T) {
	require.Equal(t, ProviderOpenAI, parseGenerationProvider("OpenAI"))
	require.Equal(t, ProviderGemini, parseGenerationProvider("gemini"))
	require.Equal(t, ProviderGemini, parseGenerationProvider("unknown"))
}

func TestSplitCommaList(t *testing.T) {
	require.Nil(t, splitCommaList(""))
	require.Equal(t, []string{"a"}, splitCommaList("a"))
	require.Equal(t, []string{"a", "b"}, splitCommaList(" a , b ,, "))
}

// clearEnv unsets every variable this package reads so ambient environment
// does not leak into assertions. t.Setenv registers the restore; the unset
// clears the value for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOW_ORIGINS",
		"POKEAPI_BASE_URL", "POKEAPI_TIMEOUT",
		"GENERATION_PROVIDER", "GENERATION_BASE_URL", "GENERATION_MODEL",
		"GENERATION_API_KEY", "GENERATION_TEMPERATURE",
		"GENERATION_MAX_TOKENS", "GENERATION_TIMEOUT",
		"GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
