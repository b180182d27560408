// Command linkextract-mcp exposes the linkextract HTTP API as MCP tools
// over stdio, so LLM clients can extract structured data from URLs.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// extractRequest mirrors the linkextract API request model.
type extractRequest struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// cleanRequest mirrors the linkextract API request model.
type cleanRequest struct {
	URL          string `json:"url"`
	OutputFormat string `json:"output_format,omitempty"`
	ExtractMode  string `json:"extract_mode,omitempty"`
}

func main() {
	apiURL := os.Getenv("LINKEXTRACT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("LINKEXTRACT_API_KEY")

	s := server.NewMCPServer(
		"linkextract",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	extractTool := mcp.NewTool("extract_url",
		mcp.WithDescription("Extract structured data from a URL: Instagram post metadata (caption, username, media type), schema.org/Recipe JSON-LD, or generic page metadata with visible body text."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to extract from"),
		),
		mcp.WithString("type",
			mcp.Description("Force an extraction strategy: 'auto' (default), 'instagram', or 'web'"),
			mcp.Enum("auto", "instagram", "web"),
		),
	)

	cleanTool := mcp.NewTool("clean_url",
		mcp.WithDescription("Fetch a web page and return its readable main content as markdown, html or text, with page metadata and token estimates."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to clean"),
		),
		mcp.WithString("output_format",
			mcp.Description("Output format: 'markdown' (default), 'html', or 'text'"),
			mcp.Enum("markdown", "html", "text"),
		),
		mcp.WithString("extract_mode",
			mcp.Description("Extraction mode: 'readability' (default, isolates the main article) or 'raw' (full page)"),
			mcp.Enum("readability", "raw"),
		),
	)

	client := &http.Client{Timeout: 60 * time.Second}

	s.AddTool(extractTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		targetURL, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload := extractRequest{
			URL:  targetURL,
			Type: request.GetString("type", ""),
		}
		return callAPI(ctx, client, apiURL+"/api/v1/extract", apiKey, payload)
	})

	s.AddTool(cleanTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		targetURL, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload := cleanRequest{
			URL:          targetURL,
			OutputFormat: request.GetString("output_format", ""),
			ExtractMode:  request.GetString("extract_mode", ""),
		}
		return callAPI(ctx, client, apiURL+"/api/v1/clean", apiKey, payload)
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// callAPI posts the payload to the linkextract API and wraps the JSON
// response as a tool result.
func callAPI(ctx context.Context, client *http.Client, endpoint, apiKey string, payload any) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode request: %v", err)), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build request: %v", err)), nil
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("call linkextract API: %v", err)), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(respBody)), nil
}
