// ABOUTME: MCP tool implementations for recorded routes.
// ABOUTME: Provides list, inspect, rename, delete, and export operations.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JWicher/wayzza/internal/storage"
)

func (s *Server) registerTools() {
	// list_routes
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routes",
		Description: "List recorded routes with their sample counts",
	}, s.handleListRoutes)

	// get_route
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_route",
		Description: "Get one route's metadata by id",
	}, s.handleGetRoute)

	// list_samples
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_samples",
		Description: "List a route's GPS samples ordered by timestamp",
	}, s.handleListSamples)

	// rename_route
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_route",
		Description: "Rename a route (names are unique)",
	}, s.handleRenameRoute)

	// delete_route
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_route",
		Description: "Delete a route and all of its samples",
	}, s.handleDeleteRoute)

	// export_routes
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_routes",
		Description: "Export all routes as JSON files into a directory",
	}, s.handleExportRoutes)
}

// Tool input/output types

type listRoutesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type routeOutput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CreatedAt   string `json:"created_at"`
	SampleCount int    `json:"sample_count"`
}

type getRouteInput struct {
	ID int64 `json:"id" jsonschema:"Route id"`
}

type renameRouteInput struct {
	ID   int64  `json:"id" jsonschema:"Route id"`
	Name string `json:"name" jsonschema:"New unique route name"`
}

type exportRoutesInput struct {
	Dir    string `json:"dir" jsonschema:"Target directory for export files"`
	Format string `json:"format,omitempty" jsonschema:"Summary format: json (default) or yaml"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func (s *Server) handleListRoutes(ctx context.Context, req *mcp.CallToolRequest, input listRoutesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	routes, err := s.repo.ListRoutes()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list routes: %w", err)
	}

	if len(routes) == 0 {
		return nil, map[string]interface{}{"message": "No routes recorded."}, nil
	}
	if len(routes) > input.Limit {
		routes = routes[:input.Limit]
	}

	out := make([]routeOutput, 0, len(routes))
	for _, r := range routes {
		count, err := s.repo.CountSamples(r.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count samples: %w", err)
		}
		out = append(out, routeOutput{
			ID:          r.ID,
			Name:        r.Name,
			CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
			SampleCount: count,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetRoute(ctx context.Context, req *mcp.CallToolRequest, input getRouteInput) (*mcp.CallToolResult, any, error) {
	r, err := s.repo.GetRoute(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("route not found: %d", input.ID)
	}

	count, err := s.repo.CountSamples(r.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count samples: %w", err)
	}

	return nil, routeOutput{
		ID:          r.ID,
		Name:        r.Name,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
		SampleCount: count,
	}, nil
}

func (s *Server) handleListSamples(ctx context.Context, req *mcp.CallToolRequest, input getRouteInput) (*mcp.CallToolResult, any, error) {
	doc, err := storage.BuildRouteExport(s.repo, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load samples: %w", err)
	}
	return nil, doc, nil
}

func (s *Server) handleRenameRoute(ctx context.Context, req *mcp.CallToolRequest, input renameRouteInput) (*mcp.CallToolResult, simpleOutput, error) {
	r, err := s.repo.RenameRoute(input.ID, input.Name)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to rename route: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Renamed route %d to %q", r.ID, r.Name),
	}, nil
}

func (s *Server) handleDeleteRoute(ctx context.Context, req *mcp.CallToolRequest, input getRouteInput) (*mcp.CallToolResult, simpleOutput, error) {
	count, err := s.repo.DeleteRoute(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete route: %w", err)
	}
	if count == 0 {
		return nil, simpleOutput{}, fmt.Errorf("route not found: %d", input.ID)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted route %d and its samples", input.ID),
	}, nil
}

func (s *Server) handleExportRoutes(ctx context.Context, req *mcp.CallToolRequest, input exportRoutesInput) (*mcp.CallToolResult, any, error) {
	summary, err := storage.ExportAll(s.repo, input.Dir, input.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("export failed: %w", err)
	}
	return nil, summary, nil
}
