package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrUnknownAtom reports a reference to an atom that is not in the store.
	ErrUnknownAtom = errors.New("unknown atom")

	// ErrInvalidKind reports a node kind used for a link or the reverse.
	ErrInvalidKind = errors.New("invalid atom kind")
)

// Store is the interface for the linguistic graph backend.
// Implementations: KuzuStore (cgo), MemStore.
// Atoms are deduplicated by value: adding an atom that already exists
// returns the existing one.
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	CreateOrFindNode(ctx context.Context, kind Kind, name string) (Ref, error)
	CreateOrFindEdge(ctx context.Context, kind Kind, args ...Ref) (Ref, error)
	IncrementCount(ctx context.Context, ref Ref) (int64, error)

	// Read operations. GetAtom returns nil for a missing atom.
	GetAtom(ctx context.Context, ref Ref) (*Atom, error)
	AtomsByKind(ctx context.Context, kind Kind) ([]Atom, error)
	Incoming(ctx context.Context, ref Ref) ([]Ref, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}

func checkNode(kind Kind) error {
	if !kind.IsNode() {
		return fmt.Errorf("%w: %s is not a node kind", ErrInvalidKind, kind)
	}
	return nil
}

func checkLink(kind Kind, args []Ref) error {
	if !kind.IsLink() {
		return fmt.Errorf("%w: %s is not a link kind", ErrInvalidKind, kind)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %s needs at least one argument", ErrInvalidKind, kind)
	}
	return nil
}
