package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aretw0/tinkit"
	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Toolkit is the subset of *tinkit.Toolkit exposed as MCP tools.
type Toolkit interface {
	Scale(ctx context.Context, r io.Reader, factor float64, w io.Writer) (domain.ScaleSummary, error)
	ScaleFile(ctx context.Context, inPath string, factor float64, outPath string) (domain.ScaleSummary, error)
	Centroid(ctx context.Context, data []byte) (domain.Centroid, error)
	Inspect(ctx context.Context, data []byte) (domain.Stats, error)
}

// ErrNoInput is returned when a tool call names neither a document nor a path.
var ErrNoInput = errors.New("exactly one of 'xml' or 'path' is required")

// DocumentArgs selects the TIN a tool works on: inline text or a local file.
type DocumentArgs struct {
	XML  string `json:"xml,omitempty"`
	Path string `json:"path,omitempty"`
}

func (a DocumentArgs) load() ([]byte, error) {
	switch {
	case (a.XML == "") == (a.Path == ""):
		return nil, ErrNoInput
	case a.Path != "":
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, &domain.ParseError{Path: a.Path, Err: err}
		}
		return data, nil
	}
	return []byte(a.XML), nil
}

// ScaleArgs are the arguments of scale_tin.
type ScaleArgs struct {
	DocumentArgs
	Factor     float64 `json:"factor"`
	OutputPath string  `json:"output_path,omitempty"`
}

// ScaleResult is the structured output of scale_tin.
type ScaleResult struct {
	Summary  domain.ScaleSummary `json:"summary" jsonschema_description:"Counts of surfaces, breaklines, points and faces"`
	Document string              `json:"document,omitempty" jsonschema_description:"Rewritten XML, omitted when output_path was given"`
	Output   string              `json:"output,omitempty" jsonschema_description:"File written, when output_path was given"`
}

// Server wraps the Toolkit and exposes it as an MCP Server.
type Server struct {
	toolkit   Toolkit
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(tk Toolkit, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		toolkit:   tk,
		logger:    logger,
		mcpServer: server.NewMCPServer("tinkit-mcp", strings.TrimSpace(tinkit.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: scale_tin
	scaleTool := mcp.NewTool("scale_tin",
		mcp.WithDescription("Multiply X and Y of every <P> by a factor (12 decimals), keep Z (4 decimals) and normalize every <F>."),
		mcp.WithString("xml", mcp.Description("The TIN document (use this or 'path')")),
		mcp.WithString("path", mcp.Description("Local path of the TIN document (use this or 'xml')")),
		mcp.WithNumber("factor", mcp.Required(), mcp.Description("Scale factor for X and Y; zero and negative values are allowed")),
		mcp.WithString("output_path", mcp.Description("Write the result here instead of returning it")),
		mcp.WithOutputSchema[ScaleResult](),
	)
	s.mcpServer.AddTool(scaleTool, mcp.NewStructuredToolHandler(s.handleScale))

	// TOOL: tin_centroid
	centroidTool := mcp.NewTool("tin_centroid",
		mcp.WithDescription("Area-weighted centroid of the surface. 'defined' is false when the total area is zero."),
		mcp.WithString("xml", mcp.Description("The TIN document (use this or 'path')")),
		mcp.WithString("path", mcp.Description("Local path of the TIN document (use this or 'xml')")),
		mcp.WithOutputSchema[domain.Centroid](),
	)
	s.mcpServer.AddTool(centroidTool, mcp.NewStructuredToolHandler(s.handleCentroid))

	// TOOL: tin_inspect
	inspectTool := mcp.NewTool("tin_inspect",
		mcp.WithDescription("Counts of points and faces, filtered and degenerate faces, total surface area and bounds."),
		mcp.WithString("xml", mcp.Description("The TIN document (use this or 'path')")),
		mcp.WithString("path", mcp.Description("Local path of the TIN document (use this or 'xml')")),
		mcp.WithOutputSchema[domain.Stats](),
	)
	s.mcpServer.AddTool(inspectTool, mcp.NewStructuredToolHandler(s.handleInspect))
}

// Handler methods for structured tools

func (s *Server) handleScale(ctx context.Context, request mcp.CallToolRequest, args ScaleArgs) (ScaleResult, error) {
	if args.OutputPath != "" && args.Path != "" && args.XML == "" {
		summary, err := s.toolkit.ScaleFile(ctx, args.Path, args.Factor, args.OutputPath)
		if err != nil {
			return ScaleResult{}, s.toolError("scale_tin", err)
		}
		return ScaleResult{Summary: summary, Output: args.OutputPath}, nil
	}

	data, err := args.load()
	if err != nil {
		return ScaleResult{}, s.toolError("scale_tin", err)
	}

	var out bytes.Buffer
	summary, err := s.toolkit.Scale(ctx, bytes.NewReader(data), args.Factor, &out)
	if err != nil {
		return ScaleResult{}, s.toolError("scale_tin", err)
	}

	if args.OutputPath != "" {
		if err := os.WriteFile(args.OutputPath, out.Bytes(), 0644); err != nil {
			return ScaleResult{}, s.toolError("scale_tin", fmt.Errorf("failed to write output: %w", err))
		}
		return ScaleResult{Summary: summary, Output: args.OutputPath}, nil
	}
	return ScaleResult{Summary: summary, Document: out.String()}, nil
}

func (s *Server) handleCentroid(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (domain.Centroid, error) {
	data, err := args.load()
	if err != nil {
		return domain.Centroid{}, s.toolError("tin_centroid", err)
	}
	c, err := s.toolkit.Centroid(ctx, data)
	if err != nil {
		return domain.Centroid{}, s.toolError("tin_centroid", err)
	}
	return c, nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (domain.Stats, error) {
	data, err := args.load()
	if err != nil {
		return domain.Stats{}, s.toolError("tin_inspect", err)
	}
	st, err := s.toolkit.Inspect(ctx, data)
	if err != nil {
		return domain.Stats{}, s.toolError("tin_inspect", err)
	}
	return st, nil
}

// toolError prefixes err with its taxonomy kind so agents can tell a bad
// document from a server fault.
func (s *Server) toolError(tool string, err error) error {
	s.logger.Warn("tool call failed", "tool", tool, "kind", domain.Kind(err), "error", err)
	return fmt.Errorf("%s: %w", domain.Kind(err), err)
}

func (s *Server) registerResources() {
	// EXPOSE: tinkit://dialect
	s.mcpServer.AddResource(mcp.NewResource("tinkit://dialect", "TIN XML dialect",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tinkit://dialect",
				MIMEType: "text/markdown",
				Text:     dialect,
			},
		}, nil
	})
}

const dialect = `# TIN XML dialect

- ` + "`<P id=\"N\">x y z</P>`" + `: a point. Three real numbers; ` + "`id`" + ` is an integer and is required for centroid and inspect.
- ` + "`<F>i j k</F>`" + `: a face referencing three point IDs. Faces with another arity are ignored by centroid and inspect.
- ` + "`Surface`" + ` and ` + "`Breakline`" + ` containers are counted by scale_tin; any P or F anywhere in the document is rewritten.

Scaling writes X and Y with 12 decimals and Z, unscaled, with 4.
`
