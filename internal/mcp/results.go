package mcp

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToolResultMetadata contains metadata for tool results
type ToolResultMetadata struct {
	ToolUsed           string              `json:"tool_used"`
	SuggestedNextTools []map[string]string `json:"suggested_next_tools,omitempty"`
}

// enhancedResult wraps a tool result with metadata
type enhancedResult struct {
	Result   interface{}         `json:"result"`
	Metadata *ToolResultMetadata `json:"_metadata,omitempty"`
}

// createEnhancedResult creates a tool result with metadata
func createEnhancedResult(toolName string, content interface{}) (*mcp.CallToolResult, error) {
	enhanced := enhancedResult{
		Result: content,
		Metadata: &ToolResultMetadata{
			ToolUsed:           toolName,
			SuggestedNextTools: GetNextToolSuggestions(toolName),
		},
	}

	jsonData, err := json.MarshalIndent(enhanced, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(jsonData),
			},
		},
	}, nil
}
