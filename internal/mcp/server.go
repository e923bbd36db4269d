// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pokemcp/pokemcp/application/service"
	"github.com/pokemcp/pokemcp/infrastructure/api/v1/dto"
)

// Server wraps the MCP server with the strategic analysis tools. Each tool
// mirrors one HTTP endpoint and returns the same JSON payload as text.
type Server struct {
	mcpServer *server.MCPServer
	strategy  *service.Strategy
	logger    *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(strategy *service.Strategy, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		strategy: strategy,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"pokemcp",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	getPokemonTool := mcp.NewTool("get_pokemon",
		mcp.WithDescription("Get a Pokemon's factual data with an AI-generated strategic description"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The Pokemon's name"),
		),
	)
	mcpServer.AddTool(getPokemonTool, s.handleGetPokemon)

	battleTool := mcp.NewTool("battle_analysis",
		mcp.WithDescription("Analyze a head-to-head battle between two Pokemon"),
		mcp.WithString("pokemon1",
			mcp.Required(),
			mcp.Description("The first Pokemon's name"),
		),
		mcp.WithString("pokemon2",
			mcp.Required(),
			mcp.Description("The second Pokemon's name"),
		),
	)
	mcpServer.AddTool(battleTool, s.handleBattle)

	countersTool := mcp.NewTool("suggest_counters",
		mcp.WithDescription("Suggest counter Pokemon against a target"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The target Pokemon's name"),
		),
	)
	mcpServer.AddTool(countersTool, s.handleCounters)

	teamTool := mcp.NewTool("generate_team",
		mcp.WithDescription("Generate a Pokemon team from a free-text strategy description"),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the team should achieve"),
		),
	)
	mcpServer.AddTool(teamTool, s.handleGenerateTeam)
}

// handleGetPokemon handles the get_pokemon tool invocation.
func (s *Server) handleGetPokemon(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	record, err := s.strategy.Pokemon(ctx, name)
	if err != nil {
		s.logger.Error("pokemon lookup failed", slog.String("name", name), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("pokemon lookup failed: %v", err)), nil
	}

	return s.jsonResult(dto.FromPokemon(record))
}

// handleBattle handles the battle_analysis tool invocation.
func (s *Server) handleBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name1, err := request.RequireString("pokemon1")
	if err != nil {
		return mcp.NewToolResultError("pokemon1 is required"), nil
	}
	name2, err := request.RequireString("pokemon2")
	if err != nil {
		return mcp.NewToolResultError("pokemon2 is required"), nil
	}

	result, err := s.strategy.Battle(ctx, name1, name2)
	if err != nil {
		s.logger.Error("battle analysis failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("battle analysis failed: %v", err)), nil
	}

	return s.jsonResult(dto.BattleResponse{
		Pokemon1:     dto.FromPokemon(result.Pokemon1()),
		Pokemon2:     dto.FromPokemon(result.Pokemon2()),
		BattleResult: dto.FromBattleVerdict(result.Verdict()),
	})
}

// handleCounters handles the suggest_counters tool invocation.
func (s *Server) handleCounters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	result, err := s.strategy.Counters(ctx, name)
	if err != nil {
		s.logger.Error("counter suggestion failed", slog.String("name", name), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("counter suggestion failed: %v", err)), nil
	}

	counters := result.Counters()
	out := make([]dto.CounterResponse, len(counters))
	for i, c := range counters {
		out[i] = dto.FromCounter(c)
	}

	return s.jsonResult(dto.CountersResponse{
		TargetPokemon: dto.FromPokemon(result.Target()),
		Counters:      out,
	})
}

// handleGenerateTeam handles the generate_team tool invocation.
func (s *Server) handleGenerateTeam(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError("description is required"), nil
	}

	result, err := s.strategy.GenerateTeam(ctx, description)
	if err != nil {
		s.logger.Error("team generation failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("team generation failed: %v", err)), nil
	}

	team := result.Team()
	out := make([]dto.TeamMemberResponse, len(team))
	for i, m := range team {
		out[i] = dto.FromTeamMember(m)
	}

	return s.jsonResult(dto.TeamResponse{
		Team:        out,
		Analysis:    result.Analysis(),
		Description: description,
	})
}

func (s *Server) jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
