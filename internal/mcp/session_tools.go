package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/workbench"
)

// sessionReport is an open session as returned by the session tools
type sessionReport struct {
	Handle string `json:"handle"`
	calculator.Analysis
}

func (s *Server) registerSessionTools() {
	open := []mcp.ToolOption{
		mcp.WithDescription(GetEnhancedDescription("session_open")),
		mcp.WithString("code",
			mcp.Description("Positions known so far (optional)"),
		),
	}
	s.mcpServer.AddTool(mcp.NewTool("session_open", append(open, specParams()...)...), s.handleSessionOpen)

	s.mcpServer.AddTool(mcp.NewTool("session_update",
		mcp.WithDescription(GetEnhancedDescription("session_update")),
		mcp.WithString("session",
			mcp.Description("Session handle, ID or ID prefix"),
			mcp.Required(),
		),
		mcp.WithNumber("position",
			mcp.Description("1-based position to set, used with value"),
		),
		mcp.WithString("value",
			mcp.Description("Reading for the position; empty clears it"),
		),
		mcp.WithString("code",
			mcp.Description("Replace every position from this code"),
		),
		mcp.WithBoolean("reset",
			mcp.Description("Clear every position"),
		),
	), s.handleSessionUpdate)

	s.mcpServer.AddTool(mcp.NewTool("session_show",
		mcp.WithDescription(GetEnhancedDescription("session_show")),
		mcp.WithString("session",
			mcp.Description("Session handle, ID or ID prefix"),
			mcp.Required(),
		),
	), s.handleSessionShow)

	s.mcpServer.AddTool(mcp.NewTool("session_match",
		mcp.WithDescription(GetEnhancedDescription("session_match")),
		mcp.WithString("session",
			mcp.Description("Session handle, ID or ID prefix"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of codes to list (optional)"),
		),
	), s.handleSessionMatch)

	s.mcpServer.AddTool(mcp.NewTool("session_list",
		mcp.WithDescription(GetEnhancedDescription("session_list")),
	), s.handleSessionList)

	s.mcpServer.AddTool(mcp.NewTool("session_close",
		mcp.WithDescription(GetEnhancedDescription("session_close")),
		mcp.WithString("session",
			mcp.Description("Session handle, ID or ID prefix"),
			mcp.Required(),
		),
	), s.handleSessionClose)
}

// sessionRef returns the required session argument
func sessionRef(args map[string]interface{}) (string, error) {
	ref, err := stringArg(args, "session")
	if err != nil {
		return "", err
	}
	if ref == "" {
		return "", fmt.Errorf("invalid or missing session argument")
	}
	return ref, nil
}

// storeError adds suggestions to workbench lookup failures
func storeError(ref string, err error) error {
	var notFound workbench.ErrSessionNotFound
	if errors.As(err, &notFound) {
		return SessionNotFoundError(ref)
	}
	return err
}

func (s *Server) report(ctx context.Context, toolName, handle string, sess *calculator.Session) (*mcp.CallToolResult, error) {
	analysis, err := sess.Analyze(ctx, false)
	if err != nil {
		return nil, err
	}
	return createEnhancedResult(toolName, sessionReport{Handle: handle, Analysis: analysis})
}

func (s *Server) handleSessionOpen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

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

	sess := s.newSession(spec, enforce)
	if code != "" {
		sess.ParseFullCode(code)
	}

	handle, err := s.store.Save(ctx, sess.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s.report(ctx, "session_open", handle, sess)
}

func (s *Server) handleSessionUpdate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ref, err := sessionRef(args)
	if err != nil {
		return nil, err
	}
	reset, err := boolArg(args, "reset")
	if err != nil {
		return nil, err
	}
	code, err := stringArg(args, "code")
	if err != nil {
		return nil, err
	}
	position, hasPosition, err := intArg(args, "position")
	if err != nil {
		return nil, err
	}
	value, err := stringArg(args, "value")
	if err != nil {
		return nil, err
	}

	var edit func(*calculator.Session) error
	switch {
	case reset != nil && *reset:
		edit = func(sess *calculator.Session) error {
			sess.Reset()
			return nil
		}
	case code != "":
		edit = func(sess *calculator.Session) error {
			sess.ParseFullCode(code)
			return nil
		}
	case hasPosition:
		edit = func(sess *calculator.Session) error {
			return sess.SetPosition(position-1, value)
		}
	default:
		return nil, NewErrorWithSuggestions("nothing to update",
			"Pass position and value to set one position",
			"Pass code to replace every position",
			"Pass reset: true to clear the key",
		)
	}

	var sess *calculator.Session
	entry, err := s.store.Update(ctx, ref, func(snap *calculator.Snapshot) error {
		sess = calculator.Restore(snap, s.optionsFor(nil)...)
		if err := edit(sess); err != nil {
			return err
		}
		*snap = *sess.Snapshot()
		return nil
	})
	if err != nil {
		return nil, storeError(ref, err)
	}
	return s.report(ctx, "session_update", entry.Handle, sess)
}

// loadSession restores a stored session
func (s *Server) loadSession(ctx context.Context, args map[string]interface{}) (string, *calculator.Session, error) {
	ref, err := sessionRef(args)
	if err != nil {
		return "", nil, err
	}
	entry, err := s.store.Load(ctx, ref)
	if err != nil {
		return "", nil, storeError(ref, err)
	}

	opts := s.optionsFor(nil)
	limit, ok, err := intArg(args, "limit")
	if err != nil {
		return "", nil, err
	}
	if ok {
		opts = append(opts, calculator.WithResultLimit(limit))
	}
	return entry.Handle, calculator.Restore(entry.Snapshot, opts...), nil
}

func (s *Server) handleSessionShow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, sess, err := s.loadSession(ctx, request.GetArguments())
	if err != nil {
		return nil, err
	}
	return s.report(ctx, "session_show", handle, sess)
}

func (s *Server) handleSessionMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	handle, sess, err := s.loadSession(ctx, request.GetArguments())
	if err != nil {
		return nil, err
	}
	out, err := findMatches(ctx, sess)
	if err != nil {
		return nil, err
	}
	out.Handle = handle
	return createEnhancedResult("session_match", out)
}

func (s *Server) handleSessionList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if entries == nil {
		entries = []*workbench.Entry{}
	}
	return createEnhancedResult("session_list", entries)
}

func (s *Server) handleSessionClose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	ref, err := sessionRef(args)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.Load(ctx, ref)
	if err != nil {
		return nil, storeError(ref, err)
	}
	if err := s.store.Delete(ctx, entry.Snapshot.ID); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}
	return createEnhancedResult("session_close", map[string]string{
		"handle": entry.Handle,
		"id":     entry.Snapshot.ID,
		"status": "closed",
	})
}
