package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/keyway"
)

// matchOutput is the result of a matching-code search
type matchOutput struct {
	Handle    string   `json:"handle,omitempty"`
	Positions string   `json:"positions"`
	Spec      string   `json:"spec"`
	Total     uint64   `json:"total_combinations"`
	TooMany   bool     `json:"too_many"`
	Truncated bool     `json:"truncated"`
	Codes     []string `json:"codes"`
}

func (s *Server) registerBittingTools() {
	analyze := []mcp.ToolOption{
		mcp.WithDescription(GetEnhancedDescription("bitting_analyze")),
		mcp.WithString("code",
			mcp.Description("Partial code, one character per position"),
			mcp.Required(),
		),
		mcp.WithBoolean("find_matches",
			mcp.Description("Also list the matching codes (default false)"),
		),
	}
	s.mcpServer.AddTool(mcp.NewTool("bitting_analyze", append(analyze, specParams()...)...), s.handleBittingAnalyze)

	match := []mcp.ToolOption{
		mcp.WithDescription(GetEnhancedDescription("bitting_match")),
		mcp.WithString("code",
			mcp.Description("Partial code, one character per position"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of codes to list (optional)"),
		),
	}
	s.mcpServer.AddTool(mcp.NewTool("bitting_match", append(match, specParams()...)...), s.handleBittingMatch)
}

// sessionFromArgs opens a throwaway session for the call's spec and code
func (s *Server) sessionFromArgs(args map[string]interface{}) (*calculator.Session, error) {
	code, err := stringArg(args, "code")
	if err != nil {
		return nil, err
	}
	spec, err := s.specFromArgs(args, keyway.Spec{})
	if err != nil {
		return nil, err
	}
	enforce, err := boolArg(args, "enforce_rules")
	if err != nil {
		return nil, err
	}

	extra := []calculator.Option{}
	limit, ok, err := intArg(args, "limit")
	if err != nil {
		return nil, err
	}
	if ok {
		extra = append(extra, calculator.WithResultLimit(limit))
	}

	sess := calculator.New(spec, append(s.optionsFor(enforce), extra...)...)
	sess.ParseFullCode(code)
	return sess, nil
}

func (s *Server) handleBittingAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	sess, err := s.sessionFromArgs(args)
	if err != nil {
		return nil, err
	}
	findMatches, err := boolArg(args, "find_matches")
	if err != nil {
		return nil, err
	}

	analysis, err := sess.Analyze(ctx, findMatches != nil && *findMatches)
	if err != nil {
		return nil, err
	}
	return createEnhancedResult("bitting_analyze", analysis)
}

func (s *Server) handleBittingMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.sessionFromArgs(request.GetArguments())
	if err != nil {
		return nil, err
	}

	out, err := findMatches(ctx, sess)
	if err != nil {
		return nil, err
	}
	return createEnhancedResult("bitting_match", out)
}

// findMatches runs the search and maps a refused search to a helpful error
func findMatches(ctx context.Context, sess *calculator.Session) (matchOutput, error) {
	result, err := sess.FindMatchingCodes(ctx)
	var unavailable calculator.ErrEnumerationUnavailable
	if errors.As(err, &unavailable) {
		return matchOutput{}, MatchUnavailableError(unavailable.Error())
	}
	if err != nil {
		return matchOutput{}, err
	}
	return matchOutput{
		Positions: sess.Positions(),
		Spec:      sess.Spec().Describe(),
		Total:     result.Total,
		TooMany:   result.TooMany,
		Truncated: result.Truncated,
		Codes:     result.Codes(),
	}, nil
}
