package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prelev-mcp/internal/calendar"
	"prelev-mcp/internal/observability"
	"prelev-mcp/internal/series"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	serverName    = "prelev-mcp"
	serverVersion = "0.1.0"
)

// Server holds the state shared by the tool handlers.
type Server struct {
	registry *series.Registry
	metrics  *observability.Metrics
	locale   calendar.Locale
	location *time.Location

	mcp *sdk.Server
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records tool calls and skipped records.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLocale sets the default locale of calendar and frequency labels.
func WithLocale(l calendar.Locale) Option {
	return func(s *Server) { s.locale = l }
}

// WithLocation sets the default location for dates without an offset.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewServer creates a new MCP server backed by registry.
func NewServer(registry *series.Registry, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		locale:   calendar.DefaultLocale,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = sdk.NewServer(&sdk.Implementation{Name: serverName, Version: serverVersion}, nil)
	s.registerTools()
	return s
}

// Serve runs the MCP protocol over stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("name", serverName).Str("version", serverVersion).Msg("MCP server listening on stdio")
	return s.mcp.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves a single session over t. Used with in-memory transports.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

// markdown is a tool result passed through as-is instead of JSON encoded.
type markdown string

// textResult renders data as indented JSON text content.
func textResult(data any) (*sdk.CallToolResult, error) {
	if md, ok := data.(markdown); ok {
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: string(md)}},
		}, nil
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(out)}},
	}, nil
}

// remarshal converts loosely typed tool arguments into domain types.
func remarshal(in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
