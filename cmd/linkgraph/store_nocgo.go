//go:build !cgo

package main

import (
	"errors"

	"github.com/dusk-indust/linkgraph/internal/graph"
)

func openKuzuStore(string) (graph.Store, error) {
	return nil, errors.New("the kuzu store backend needs a cgo build")
}
