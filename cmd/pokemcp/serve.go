package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pokemcp/pokemcp"
	"github.com/pokemcp/pokemcp/infrastructure/api"
	"github.com/pokemcp/pokemcp/internal/config"
	"github.com/pokemcp/pokemcp/internal/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the enriched HTTP API server",
		Long: `Start the enriched HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                   Server host to bind to (default: 0.0.0.0)
  PORT                   Server port to listen on (default: 8000)
  LOG_LEVEL              Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT             Log format: pretty, json (default: pretty)
  CORS_ALLOW_ORIGINS     Comma-separated allowed origins (default: http://localhost:8501)

  POKEAPI_BASE_URL       Upstream data provider base URL
  POKEAPI_TIMEOUT        Upstream request timeout in seconds (default: 10)

  GENERATION_PROVIDER    Text generation backend: gemini, openai (default: gemini)
  GENERATION_MODEL       Model identifier (default: gemini-1.5-flash)
  GENERATION_API_KEY     API key (GEMINI_API_KEY is honored as a fallback)
  GENERATION_BASE_URL    Override API base URL (OpenAI-compatible endpoints)
  GENERATION_TEMPERATURE Sampling temperature (default: 0.7)
  GENERATION_MAX_TOKENS  Completion token cap (default: 1024)
  GENERATION_TIMEOUT     Request timeout in seconds (default: 60)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port, false)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8000)")

	return cmd
}

func serveBasicCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve-basic",
		Short: "Start the raw-passthrough HTTP API server",
		Long: `Start the raw-passthrough HTTP API server.

This variant serves factual records without AI descriptions and returns
generated team and counter lists as raw JSON extracted from the model
output. It accepts the same environment variables as serve.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port, true)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8000)")

	return cmd
}

// variantServer is the part of both API servers the serve loop needs.
type variantServer interface {
	ListenAndServe(addr string) error
	Shutdown(ctx context.Context) error
}

func runServe(envFile, host string, port int, basicVariant bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars.
	cfg = applyServeOverrides(cfg, host, port)

	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting pokemcp", attrs...)

	client, err := pokemcp.NewFromConfig(cfg, slogger)
	if err != nil {
		return fmt.Errorf("create pokemcp client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close pokemcp client", slog.Any("error", err))
		}
	}()

	var server variantServer
	if basicVariant {
		server = api.NewBasicAPIServer(client, cfg.CORSAllowOrigins())
	} else {
		server = api.NewAPIServer(client, cfg.CORSAllowOrigins())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")
		cancel()
		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := server.ListenAndServe(cfg.Addr()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.Option

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
