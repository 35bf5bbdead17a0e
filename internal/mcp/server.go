// Package mcp exposes the portfolio content as MCP tools so assistants can
// answer questions about the profile, experience and projects.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/ui"
)

// Source is where the tools read the current document from.
type Source interface {
	Document() *content.Document
}

// NewServer creates an MCP server with read-only tools over src.
func NewServer(src Source, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Portfolio",
		version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("get_profile",
			mcp.WithDescription("Get the portfolio owner's name, title, contact details and short bio."),
		),
		handleGetProfile(src),
	)

	s.AddTool(
		mcp.NewTool("list_categories",
			mcp.WithDescription("List the project categories in display order, starting with All."),
		),
		handleListCategories(src),
	)

	s.AddTool(
		mcp.NewTool("list_projects",
			mcp.WithDescription("List showcased projects, optionally only those in one category."),
			mcp.WithString("category",
				mcp.Description("Optional: category name as returned by list_categories"),
			),
		),
		handleListProjects(src),
	)

	s.AddTool(
		mcp.NewTool("list_experience",
			mcp.WithDescription("List professional experience entries with their index, title, company and period."),
		),
		handleListExperience(src),
	)

	s.AddTool(
		mcp.NewTool("get_experience",
			mcp.WithDescription("Get the full details of one experience entry."),
			mcp.WithNumber("index",
				mcp.Required(),
				mcp.Description("Zero-based index from list_experience"),
			),
		),
		handleGetExperience(src),
	)

	s.AddTool(
		mcp.NewTool("list_recommendations",
			mcp.WithDescription("List recommendations colleagues have written."),
		),
		handleListRecommendations(src),
	)

	return s
}

// Handler serves the MCP server over streamable HTTP.
func Handler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s)
}

// ExperienceResult is one row of list_experience.
type ExperienceResult struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Period  string `json:"period"`
	Summary string `json:"summary"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleGetProfile(src Source) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(src.Document().Personal)
	}
}

func handleListCategories(src Source) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(ui.Categories(src.Document().Projects))
	}
}

func handleListProjects(src Source) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := ui.NewCategoryFilter(src.Document().Projects)
		f.Select(req.GetString("category", ""))
		return jsonResult(f.Visible())
	}
}

func handleListExperience(src Source) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries := src.Document().Experience
		results := make([]ExperienceResult, len(entries))
		for i, e := range entries {
			results[i] = ExperienceResult{
				Index:   i,
				Title:   e.Title,
				Company: e.Company,
				Period:  e.Period,
				Summary: e.Summary(),
			}
		}
		return jsonResult(results)
	}
}

func handleGetExperience(src Source) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := req.RequireInt("index")
		if err != nil {
			return mcp.NewToolResultError("index is required"), nil
		}
		entries := src.Document().Experience
		if index < 0 || index >= len(entries) {
			return mcp.NewToolResultError(fmt.Sprintf("no experience entry at index %d", index)), nil
		}
		return jsonResult(entries[index])
	}
}

func handleListRecommendations(src Source) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		recs := src.Document().Recommendations
		if recs == nil {
			return jsonResult([]content.RecommendationItem{})
		}
		return jsonResult(recs.Items)
	}
}
