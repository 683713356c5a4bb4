// ABOUTME: MCP server setup for the payback ledger.
// ABOUTME: Wraps MCP server with storage Repository access and the body profile.
package mcp

import (
	"context"

	"github.com/harperreed/payback/internal/models"
	"github.com/harperreed/payback/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	profile   models.Profile
}

// NewServer creates a new MCP server with the given storage and profile.
func NewServer(repo storage.Repository, profile models.Profile) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "payback",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		profile:   profile,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
