package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	keywayListURI   = "keybit://keyways"
	keywayURIPrefix = "keybit://keyway/"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		keywayListURI,
		"Keyway Table",
		mcp.WithResourceDescription("Every keyway with its spec, Lishi tool and decoding tip"),
		mcp.WithMIMEType("application/json"),
	), s.handleKeywayListResource)

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(
		keywayURIPrefix+"{name}",
		"Keyway Details",
		mcp.WithTemplateDescription("Spec, tips and rules of one keyway"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.handleKeywayResource)
}

func (s *Server) handleKeywayListResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(request.Params.URI, s.table.Rules())
}

func (s *Server) handleKeywayResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name := strings.TrimPrefix(request.Params.URI, keywayURIPrefix)
	if name == "" || name == request.Params.URI {
		return nil, fmt.Errorf("invalid keyway URI: %s", request.Params.URI)
	}
	rule, err := s.table.Resolve(name)
	if err != nil {
		return nil, KeywayNotFoundError(err)
	}
	return jsonResource(request.Params.URI, rule)
}

func jsonResource(uri string, data interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
