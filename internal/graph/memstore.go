package graph

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu       sync.RWMutex
	atoms    map[Ref]*Atom
	incoming map[Ref][]Ref // target -> links that contain it
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		atoms:    make(map[Ref]*Atom),
		incoming: make(map[Ref][]Ref),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// CreateOrFindNode returns the node (kind, name), creating it if needed.
func (m *MemStore) CreateOrFindNode(_ context.Context, kind Kind, name string) (Ref, error) {
	if err := checkNode(kind); err != nil {
		return "", err
	}
	ref := nodeRef(kind, name)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.atoms[ref]; !ok {
		m.atoms[ref] = &Atom{Ref: ref, Kind: kind, Name: name}
	}
	return ref, nil
}

// CreateOrFindEdge returns the link (kind, args), creating it if needed.
// Every argument must already be in the store.
func (m *MemStore) CreateOrFindEdge(_ context.Context, kind Kind, args ...Ref) (Ref, error) {
	if err := checkLink(kind, args); err != nil {
		return "", err
	}
	ref := linkRef(kind, args)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.atoms[ref]; ok {
		return ref, nil
	}
	for _, a := range args {
		if _, ok := m.atoms[a]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownAtom, a)
		}
	}
	m.atoms[ref] = &Atom{Ref: ref, Kind: kind, Outgoing: slices.Clone(args)}
	for _, a := range args {
		if !slices.Contains(m.incoming[a], ref) {
			m.incoming[a] = append(m.incoming[a], ref)
		}
	}
	return ref, nil
}

// IncrementCount bumps the atom's count and returns the new value.
func (m *MemStore) IncrementCount(_ context.Context, ref Ref) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.atoms[ref]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAtom, ref)
	}
	a.Count++
	return a.Count, nil
}

// GetAtom returns a copy of the atom, or nil if not found.
func (m *MemStore) GetAtom(_ context.Context, ref Ref) (*Atom, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.atoms[ref]
	if !ok {
		return nil, nil
	}
	cp := *a
	cp.Outgoing = slices.Clone(a.Outgoing)
	return &cp, nil
}

// AtomsByKind returns all atoms of kind, ordered by ref.
func (m *MemStore) AtomsByKind(_ context.Context, kind Kind) ([]Atom, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Atom
	for _, a := range m.atoms {
		if a.Kind != kind {
			continue
		}
		cp := *a
		cp.Outgoing = slices.Clone(a.Outgoing)
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b Atom) int { return cmp.Compare(a.Ref, b.Ref) })
	return out, nil
}

// Incoming returns the links that contain ref, ordered by ref.
func (m *MemStore) Incoming(_ context.Context, ref Ref) ([]Ref, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.incoming[ref])
	slices.Sort(out)
	return out, nil
}

// Stats returns counts of nodes, links and outgoing edges.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := &GraphStats{ByKind: make(map[Kind]int)}
	for _, a := range m.atoms {
		st.ByKind[a.Kind]++
		if a.IsLink() {
			st.LinkCount++
			st.OutgoingCount += len(a.Outgoing)
		} else {
			st.NodeCount++
		}
	}
	return st, nil
}
