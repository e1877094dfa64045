// Package mcp exposes the scan history and text extraction as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/docuscan/docuscan/internal/database"
	"github.com/docuscan/docuscan/internal/ocr"
	"github.com/docuscan/docuscan/internal/usecase"
)

// Server wraps the MCP server with docuscan-specific functionality
type Server struct {
	server    *mcp.Server
	dbCtx     *database.Context
	scan      *usecase.Scan
	extractor ocr.Extractor
}

// NewServer creates a new MCP server instance
func NewServer(log zerolog.Logger) (*Server, error) {
	dbCtx, err := database.CreateDatabase("")
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "docuscan",
		Version: "0.1.0",
	}, nil)

	extractor := ocr.NewMockExtractor(log)
	s := &Server{
		server:    mcpServer,
		dbCtx:     dbCtx,
		scan:      usecase.NewScan(dbCtx, extractor, log),
		extractor: extractor,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport
func (s *Server) Run(ctx context.Context) error {
	defer database.CloseDatabase(s.dbCtx)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_history",
		Description: "List all completed scans, newest first",
	}, s.handleHistory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_get",
		Description: "Get metadata about one scan by id",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_delete",
		Description: "Delete a scan record and its PDF file",
	}, s.handleDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_extract",
		Description: "Extract text from an image file",
	}, s.handleExtract)
}

// Input/Output types for each tool

type HistoryInput struct{}

type HistoryOutput struct {
	Scans []ScanEntry `json:"scans"`
}

type ScanEntry struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	CreatedAt string `json:"createdAt"`
	Pages     int64  `json:"pages"`
}

type GetInput struct {
	ID int64 `json:"id" jsonschema:"required,description=The id of the scan record"`
}

type DeleteInput struct {
	ID int64 `json:"id" jsonschema:"required,description=The id of the scan record to delete"`
}

type DeleteOutput struct {
	Message string `json:"message"`
}

type ExtractInput struct {
	Path string `json:"path" jsonschema:"required,description=Path to the image file"`
}

type ExtractOutput struct {
	Text string `json:"text"`
}

// Tool handlers

func (s *Server) handleHistory(ctx context.Context, req *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
	records, err := s.scan.History().ListAll(ctx)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("failed to list scans: %w", err)
	}

	out := HistoryOutput{Scans: make([]ScanEntry, 0, len(records))}
	for _, record := range records {
		out.Scans = append(out.Scans, ScanEntry{
			ID:        record.ID,
			Filename:  record.Filename,
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
			Pages:     record.PageCount,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, ScanEntry, error) {
	record, err := s.scan.History().Get(ctx, input.ID)
	if err != nil {
		return nil, ScanEntry{}, fmt.Errorf("failed to get scan %d: %w", input.ID, err)
	}

	return nil, ScanEntry{
		ID:        record.ID,
		Filename:  record.Filename,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
		Pages:     record.PageCount,
	}, nil
}

func (s *Server) handleDelete(ctx context.Context, req *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := s.scan.Delete(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete scan %d: %w", input.ID, err)
	}

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted scan %d", input.ID),
	}, nil
}

func (s *Server) handleExtract(ctx context.Context, req *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
	return nil, ExtractOutput{Text: s.extractor.Extract(input.Path)}, nil
}
