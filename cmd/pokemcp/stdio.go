package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pokemcp/pokemcp"
	"github.com/pokemcp/pokemcp/internal/log"
	"github.com/pokemcp/pokemcp/internal/mcp"
	"github.com/spf13/cobra"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This allows AI assistants to query Pokemon data and strategic analysis
directly. Configuration is loaded from environment variables and .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Stdout carries the MCP protocol, so logs go to stderr.
	logger := log.NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
	slogger := logger.Slog()

	slogger.Info("starting MCP server", slog.String("version", version))

	client, err := pokemcp.NewFromConfig(cfg, slogger)
	if err != nil {
		return fmt.Errorf("create pokemcp client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close pokemcp client", slog.Any("error", err))
		}
	}()

	mcpServer := mcp.NewServer(client.Strategy, version, slogger)

	return mcpServer.ServeStdio()
}
