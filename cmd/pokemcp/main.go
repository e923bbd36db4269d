// Package main is the entry point for the pokemcp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/pokemcp/pokemcp/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pokemcp",
		Short: "Pokemon strategic analysis middleware",
		Long:  `Pokemcp combines factual Pokemon data from PokeAPI with LLM-generated strategic analysis and serves the result over HTTP or MCP stdio.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(serveBasicCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
