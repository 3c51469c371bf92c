package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/workbench"
)

type toolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// setupTestServer creates a server with a workbench in a temporary directory
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer("test", keyway.Builtin(), WithStore(workbench.NewFileStore(t.TempDir())))
}

// callTool invokes a handler and decodes the "result" member of its output
func callTool(t *testing.T, name string, handler toolHandler, args map[string]interface{}) (interface{}, error) {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), req)
	if err != nil {
		return nil, err
	}
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var decoded struct {
		Result   interface{}        `json:"result"`
		Metadata ToolResultMetadata `json:"_metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	assert.Equal(t, name, decoded.Metadata.ToolUsed)
	return decoded.Result, nil
}

func smallSpec(code string) map[string]interface{} {
	return map[string]interface{}{
		"code":   code,
		"spaces": float64(4),
		"depths": "4",
		"macs":   float64(2),
	}
}

func TestNewServer(t *testing.T) {
	s := NewServer("test", nil)
	assert.NotNil(t, s.mcpServer)
	assert.Equal(t, keyway.Builtin().Len(), s.table.Len())
	assert.Nil(t, s.store)
}

func TestHandleBittingAnalyze(t *testing.T) {
	s := setupTestServer(t)

	out, err := callTool(t, "bitting_analyze", s.handleBittingAnalyze, smallSpec("1?3?"))
	require.NoError(t, err)
	analysis := out.(map[string]interface{})

	assert.Equal(t, "partial", analysis["status"])
	assert.Equal(t, "1?3?", analysis["positions"])
	stats := analysis["stats"].(map[string]interface{})
	assert.Equal(t, float64(16), stats["total_combinations"])
	assert.Equal(t, float64(2), stats["unknown_count"])
	assert.Nil(t, analysis["matches"], "matches only on request")

	args := smallSpec("1?3?")
	args["find_matches"] = true
	out, err = callTool(t, "bitting_analyze", s.handleBittingAnalyze, args)
	require.NoError(t, err)
	matches := out.(map[string]interface{})["matches"].(map[string]interface{})
	assert.Len(t, matches["candidates"], 12)
}

func TestHandleBittingAnalyze_Violations(t *testing.T) {
	s := setupTestServer(t)

	out, err := callTool(t, "bitting_analyze", s.handleBittingAnalyze, smallSpec("1413"))
	require.NoError(t, err)
	analysis := out.(map[string]interface{})
	assert.Equal(t, "full", analysis["status"])
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, analysis["violating_positions"])
}

func TestHandleBittingMatch(t *testing.T) {
	s := setupTestServer(t)

	t.Run("lists candidates", func(t *testing.T) {
		out, err := callTool(t, "bitting_match", s.handleBittingMatch, smallSpec("1?3?"))
		require.NoError(t, err)
		match := out.(map[string]interface{})
		assert.Len(t, match["codes"], 12)
		assert.Contains(t, match["codes"], "1232")
		assert.NotContains(t, match["codes"], "1434")
		assert.Equal(t, false, match["too_many"])
		assert.Equal(t, "4 spaces, depths 1-4, MACS 2", match["spec"])
	})

	t.Run("respects limit", func(t *testing.T) {
		args := smallSpec("1?3?")
		args["limit"] = float64(5)
		out, err := callTool(t, "bitting_match", s.handleBittingMatch, args)
		require.NoError(t, err)
		match := out.(map[string]interface{})
		assert.Len(t, match["codes"], 5)
		assert.Equal(t, true, match["truncated"])
	})

	t.Run("too many unknowns", func(t *testing.T) {
		args := smallSpec("?????")
		args["spaces"] = float64(5)
		_, err := callTool(t, "bitting_match", s.handleBittingMatch, args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "5 unknown positions, limit is 4")
		assert.Contains(t, err.Error(), "bitting_analyze")
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := callTool(t, "bitting_match", s.handleBittingMatch, smallSpec(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key is empty")
	})

	t.Run("invalid parameter", func(t *testing.T) {
		args := smallSpec("12")
		args["spaces"] = "four"
		_, err := callTool(t, "bitting_match", s.handleBittingMatch, args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid spaces: expected a number")
	})

	t.Run("spaces out of range", func(t *testing.T) {
		for _, spaces := range []float64{0, 21, 5e8, 1e19} {
			args := smallSpec("12")
			args["spaces"] = spaces
			_, err := callTool(t, "bitting_match", s.handleBittingMatch, args)
			require.Error(t, err, "spaces %v", spaces)
			assert.Contains(t, err.Error(), "invalid spaces")
		}

		args := smallSpec("12")
		args["spaces"] = float64(20)
		_, err := callTool(t, "bitting_match", s.handleBittingMatch, args)
		require.NoError(t, err)
	})

	t.Run("keyway preset", func(t *testing.T) {
		out, err := callTool(t, "bitting_match", s.handleBittingMatch, map[string]interface{}{
			"code":   "1234123?",
			"keyway": "HU66",
		})
		require.NoError(t, err)
		match := out.(map[string]interface{})
		assert.Equal(t, "8 spaces, depths 1-4, MACS 3", match["spec"])
		assert.Len(t, match["codes"], 4)
	})
}

func TestHandleKeywayTools(t *testing.T) {
	s := setupTestServer(t)

	out, err := callTool(t, "keyway_list", s.handleKeywayList, nil)
	require.NoError(t, err)
	assert.Len(t, out, s.table.Len())

	out, err = callTool(t, "keyway_show", s.handleKeywayShow, map[string]interface{}{"name": "HU66AT"})
	require.NoError(t, err)
	rule := out.(map[string]interface{})
	assert.Equal(t, "HU66", rule["name"])
	assert.NotEmpty(t, rule["hint"])

	_, err = callTool(t, "keyway_show", s.handleKeywayShow, map[string]interface{}{"name": "HU6"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyway not found: HU6")
	assert.Contains(t, err.Error(), `keyway_show(name: "HU66")`)

	_, err = callTool(t, "keyway_show", s.handleKeywayShow, map[string]interface{}{})
	assert.EqualError(t, err, "invalid or missing name argument")
}

func TestKeywayResources(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	contents, err := s.handleKeywayListResource(ctx, mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: keywayListURI},
	})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)

	var rules []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &rules))
	assert.Len(t, rules, s.table.Len())

	contents, err = s.handleKeywayResource(ctx, mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: "keybit://keyway/HU100"},
	})
	require.NoError(t, err)
	text = contents[0].(*mcp.TextResourceContents)
	assert.Equal(t, "keybit://keyway/HU100", text.URI)
	assert.Contains(t, text.Text, `"name": "HU100"`)

	_, err = s.handleKeywayResource(ctx, mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: "keybit://keyway/"},
	})
	assert.Error(t, err)
}
