package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerKeywayTools() {
	s.mcpServer.AddTool(mcp.NewTool("keyway_list",
		mcp.WithDescription(GetEnhancedDescription("keyway_list")),
	), s.handleKeywayList)

	s.mcpServer.AddTool(mcp.NewTool("keyway_show",
		mcp.WithDescription(GetEnhancedDescription("keyway_show")),
		mcp.WithString("name",
			mcp.Description("Keyway name or alias, e.g. HU66"),
			mcp.Required(),
		),
	), s.handleKeywayShow)
}

func (s *Server) handleKeywayList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return createEnhancedResult("keyway_list", s.table.Rules())
}

func (s *Server) handleKeywayShow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := stringArg(request.GetArguments(), "name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("invalid or missing name argument")
	}

	rule, err := s.table.Resolve(name)
	if err != nil {
		return nil, KeywayNotFoundError(err)
	}
	return createEnhancedResult("keyway_show", rule)
}
