package mcptools

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/linkgraph/internal/graph"
	"github.com/dusk-indust/linkgraph/internal/parse"
	"github.com/dusk-indust/linkgraph/internal/replay"
)

// newTestService wires a service to the recorded English corpus and a
// fresh MemStore.
func newTestService(t *testing.T) (*LinkGraphService, *graph.MemStore) {
	t.Helper()
	corpus, err := replay.LoadFile("../../testdata/corpus/en.yml")
	require.NoError(t, err)

	p := replay.NewParser(corpus)
	reg := parse.NewDictionaries(p, nil)
	t.Cleanup(func() { _ = reg.Close() })

	n := 0
	policy := parse.NewPolicy(p, parse.WithDictionaries(reg), parse.WithIDs(func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}))

	store := graph.NewMemStore()
	require.NoError(t, store.InitSchema(context.Background()))
	return NewLinkGraphService(policy, store), store
}

// setupServerClient wires an MCP server and client together using in-memory
// transports.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	svc, _ := newTestService(t)
	server := NewLinkGraphMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()
	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})
	return session
}
