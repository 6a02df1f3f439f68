// ABOUTME: Export functionality for route data.
// ABOUTME: Writes per-route JSON documents plus a summary in JSON or YAML.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RouteExport is the per-route export document.
type RouteExport struct {
	Route       string             `json:"route" yaml:"route"`
	ID          int64              `json:"id" yaml:"id"`
	Coordinates []CoordinateExport `json:"coordinates" yaml:"coordinates"`
}

// CoordinateExport is one sample in an export document.
type CoordinateExport struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
}

// ExportSummary describes a completed export run.
type ExportSummary struct {
	ExportDate  time.Time      `json:"exportDate" yaml:"exportDate"`
	TotalRoutes int            `json:"totalRoutes" yaml:"totalRoutes"`
	Files       []string       `json:"files" yaml:"files"`
	Routes      []RouteSummary `json:"routes" yaml:"routes"`
}

// RouteSummary is one route's line in the export summary.
type RouteSummary struct {
	ID              int64  `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	CoordinateCount int    `json:"coordinateCount" yaml:"coordinateCount"`
}

// BuildRouteExport assembles the export document for one route.
func BuildRouteExport(repo Repository, routeID int64) (*RouteExport, error) {
	route, err := repo.GetRoute(routeID)
	if err != nil {
		return nil, fmt.Errorf("export route: %w", err)
	}

	samples, err := repo.ListSamples(routeID)
	if err != nil {
		return nil, fmt.Errorf("export route: %w", err)
	}

	doc := &RouteExport{
		Route:       route.Name,
		ID:          route.ID,
		Coordinates: make([]CoordinateExport, 0, len(samples)),
	}
	for _, s := range samples {
		doc.Coordinates = append(doc.Coordinates, CoordinateExport{
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Timestamp: s.Timestamp,
		})
	}
	return doc, nil
}

// ExportAll writes one JSON file per route into dir plus a summary
// document. The summary format is "json" or "yaml". Route names are
// already filesystem-safe (auto-route naming normalizes them), but
// the route id keeps filenames unique even after renames.
func ExportAll(repo Repository, dir, summaryFormat string) (*ExportSummary, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	routes, err := repo.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	summary := &ExportSummary{
		ExportDate:  time.Now(),
		TotalRoutes: len(routes),
	}

	for _, r := range routes {
		doc, err := BuildRouteExport(repo, r.ID)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal route %d: %w", r.ID, err)
		}

		filename := fmt.Sprintf("route_%d_%s.json", r.ID, sanitizeFilename(r.Name))
		if err := os.WriteFile(filepath.Join(dir, filename), data, 0600); err != nil {
			return nil, fmt.Errorf("write %s: %w", filename, err)
		}

		summary.Files = append(summary.Files, filename)
		summary.Routes = append(summary.Routes, RouteSummary{
			ID:              r.ID,
			Name:            r.Name,
			CoordinateCount: len(doc.Coordinates),
		})
	}

	var data []byte
	summaryName := "export_summary.json"
	switch summaryFormat {
	case "", "json":
		data, err = json.MarshalIndent(summary, "", "  ")
	case "yaml":
		summaryName = "export_summary.yaml"
		data, err = yaml.Marshal(summary)
	default:
		return nil, fmt.Errorf("unknown summary format: %q (use json or yaml)", summaryFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, summaryName), data, 0600); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	return summary, nil
}

// sanitizeFilename replaces characters that are unsafe in filenames.
func sanitizeFilename(name string) string {
	safe := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			safe = append(safe, '-')
		case ' ':
			safe = append(safe, '_')
		default:
			safe = append(safe, r)
		}
	}
	return string(safe)
}
