// Package mcp exposes the bitting calculator as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/logger"
	"github.com/aki/keybit/internal/core/workbench"
)

// Server serves keybit tools over MCP
type Server struct {
	mcpServer      *server.MCPServer
	table          *keyway.Table
	defaults       keyway.Spec
	store          workbench.Store
	sessionOptions []calculator.Option
	logger         logger.Logger
}

// Option configures a Server
type Option func(*Server)

// WithStore enables the session tools, backed by store
func WithStore(store workbench.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithDefaults sets the spec used for fields a tool call leaves out
func WithDefaults(spec keyway.Spec) Option {
	return func(s *Server) {
		s.defaults = spec
	}
}

// WithSessionOptions sets the calculator options applied to every session
func WithSessionOptions(opts ...calculator.Option) Option {
	return func(s *Server) {
		s.sessionOptions = append(s.sessionOptions, opts...)
	}
}

// WithLogger sets the server logger
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates an MCP server over the given keyway table
func NewServer(version string, table *keyway.Table, opts ...Option) *Server {
	if table == nil {
		table = keyway.Builtin()
	}

	s := &Server{
		mcpServer: server.NewMCPServer(
			"keybit",
			version,
			server.WithLogging(),
		),
		table:    table,
		defaults: keyway.NewSpec(keyway.DefaultSpaces, keyway.DepthsMax(keyway.DefaultMaxDepth), keyway.DefaultMACS),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerBittingTools()
	s.registerKeywayTools()
	s.registerResources()
	if s.store != nil {
		s.registerSessionTools()
	}
	return s
}

// ServeStdio serves MCP over stdin and stdout until the client disconnects
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio", "keyways", s.table.Len(), "sessions", s.store != nil)
	return server.ServeStdio(s.mcpServer)
}

// newSession opens a calculator session with the server's options and
// rule enforcement from the call
func (s *Server) newSession(spec keyway.Spec, enforce *bool) *calculator.Session {
	return calculator.New(spec, s.optionsFor(enforce)...)
}

func (s *Server) optionsFor(enforce *bool) []calculator.Option {
	opts := []calculator.Option{
		calculator.WithTable(s.table),
		calculator.WithLogger(s.logger.With("component", "calculator")),
	}
	opts = append(opts, s.sessionOptions...)
	if enforce != nil {
		opts = append(opts, calculator.WithRuleEnforcement(*enforce))
	}
	return opts
}

// specParams adds the spec arguments shared by the bitting and session tools
func specParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("keyway",
			mcp.Description("Keyway name, e.g. HU66. Fills spaces, depths and MACS from the keyway table"),
		),
		mcp.WithNumber("spaces",
			mcp.Description("Number of cut positions (optional, overrides the keyway)"),
		),
		mcp.WithString("depths",
			mcp.Description("Deepest cut (\"4\") or list of depths (\"1,2,3,4,5\") (optional)"),
		),
		mcp.WithNumber("macs",
			mcp.Description("Maximum adjacent cut specification (optional)"),
		),
		mcp.WithBoolean("enforce_rules",
			mcp.Description("Drop candidates that break the keyway's fixed positions or same-depth cap"),
		),
	}
}
