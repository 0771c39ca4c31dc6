package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewLinkGraphMCPServer creates an MCP server with the parse, connector and
// graph tools registered.
func NewLinkGraphMCPServer(svc *LinkGraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "linkgraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_phrase",
		Description: "Parse a sentence with the link grammar parser and return its linkages as a full instance graph, disjuncts, sections or bonds. Optionally aggregates disjunct counts or writes the result into the graph store.",
	}, svc.ParsePhrase)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "expand_connector",
		Description: "Split a connector string such as @hMVp+ into its multi marker, subtypes, connector type and direction.",
	}, svc.ExpandConnector)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decode_disjunct",
		Description: "Split a disjunct string such as \"Wd- @MVp+\" into its ordered connectors.",
	}, svc.DecodeDisjunct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Return node and link counts of the graph store, broken down by atom kind.",
	}, svc.GraphStats)

	return server
}

// RunMCPServer starts an HTTP server exposing the linkgraph MCP tools.
func RunMCPServer(ctx context.Context, svc *LinkGraphService, addr string) error {
	server := NewLinkGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *LinkGraphService) error {
	return NewLinkGraphMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}
