//go:build e2e

package e2e

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/linkgraph/internal/parse"
	"github.com/dusk-indust/linkgraph/internal/replay"
)

// corpusPath is the recorded English corpus shared by the CLI tests.
var corpusPath = filepath.Join("..", "..", "testdata", "corpus", "en.yml")

// newPolicy builds a policy over the recorded corpus with stable ids.
func newPolicy(t *testing.T) (*parse.Policy, *replay.Corpus) {
	t.Helper()
	corpus, err := replay.LoadFile(corpusPath)
	require.NoError(t, err)

	p := replay.NewParser(corpus)
	dicts := parse.NewDictionaries(p, nil)
	t.Cleanup(func() { _ = dicts.Close() })

	var n atomic.Int64
	policy := parse.NewPolicy(p,
		parse.WithDictionaries(dicts),
		parse.WithIDs(func() string { return fmt.Sprintf("id%d", n.Add(1)) }),
	)
	return policy, corpus
}
