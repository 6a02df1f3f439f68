// ABOUTME: MCP resource implementations for recorded routes.
// ABOUTME: Provides wayzza://recent and wayzza://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// wayzza://recent - most recently created routes
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wayzza://recent",
		Name:        "Recent Routes",
		Description: "The ten most recently created routes",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// wayzza://summary - totals across the whole store
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wayzza://summary",
		Name:        "Route Summary",
		Description: "Route count and total recorded samples",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	routes, err := s.repo.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	if len(routes) > 10 {
		routes = routes[:10]
	}

	return s.jsonResource("wayzza://recent", map[string]interface{}{"routes": routes})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	routes, err := s.repo.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	totalSamples := 0
	for _, r := range routes {
		count, err := s.repo.CountSamples(r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count samples: %w", err)
		}
		totalSamples += count
	}

	return s.jsonResource("wayzza://summary", map[string]interface{}{
		"totalRoutes":  len(routes),
		"totalSamples": totalSamples,
	})
}

func (s *Server) jsonResource(uri string, payload interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
