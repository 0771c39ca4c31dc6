//go:build cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/linkgraph/internal/graph"
)

// openKuzuStore opens a file-backed Kuzu database at path, or an in-memory
// one when path is empty.
func openKuzuStore(path string) (graph.Store, error) {
	var (
		store *graph.KuzuStore
		err   error
	)
	if path == "" {
		store, err = graph.NewKuzuStore()
	} else {
		store, err = graph.NewKuzuFileStore(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	return store, nil
}
