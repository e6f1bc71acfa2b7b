// Package mcp exposes metrics, prompt rendering and plan generation as MCP
// tools over stdio.
package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/amishk599/wellplan/internal/model"
)

// Generator is the part of the planner the tools need.
type Generator interface {
	Preview(req model.PlanRequest) (model.Metrics, string, error)
	Generate(ctx context.Context, req model.PlanRequest) (*model.Plan, error)
}

// Server wraps the MCP server with planner and archive access.
type Server struct {
	mcpServer *mcp.Server
	gen       Generator
	store     model.PlanStore
	now       func() time.Time
}

// NewServer creates an MCP server with all tools and resources registered.
func NewServer(gen Generator, store model.PlanStore, version string) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: "wellplan", Version: version}, nil),
		gen:       gen,
		store:     store,
		now:       time.Now,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Serve runs the server on stdio until ctx is cancelled or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
