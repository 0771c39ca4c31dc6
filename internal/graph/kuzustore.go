//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
//
// Every atom is a row of the Atom node table; a link's outgoing set is a
// run of OUTGOING relationships ordered by their pos property.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection

	// mu serializes use of the shared connection so find-then-create is atomic.
	mu sync.Mutex
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Atom(
		id STRING,
		kind STRING,
		name STRING,
		link BOOLEAN,
		observed INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS OUTGOING(FROM Atom TO Atom, pos INT64)`,
}

// InitSchema creates the atom tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// CreateOrFindNode merges the node (kind, name).
func (s *KuzuStore) CreateOrFindNode(_ context.Context, kind Kind, name string) (Ref, error) {
	if err := checkNode(kind); err != nil {
		return "", err
	}
	ref := nodeRef(kind, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.exec(
		`MERGE (a:Atom {id: $id})
		 ON CREATE SET a.kind = $kind, a.name = $name, a.link = false, a.observed = 0`,
		map[string]any{
			"id":   string(ref),
			"kind": string(kind),
			"name": name,
		},
	)
	if err != nil {
		return "", err
	}
	return ref, nil
}

// CreateOrFindEdge returns the link (kind, args), creating the atom and its
// OUTGOING relationships if needed. Every argument must already exist.
func (s *KuzuStore) CreateOrFindEdge(_ context.Context, kind Kind, args ...Ref) (Ref, error) {
	if err := checkLink(kind, args); err != nil {
		return "", err
	}
	ref := linkRef(kind, args)

	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.exists(ref)
	if err != nil || found {
		return ref, err
	}
	for _, a := range args {
		ok, err := s.exists(a)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownAtom, a)
		}
	}

	err = s.exec(
		"CREATE (a:Atom {id: $id, kind: $kind, name: '', link: true, observed: 0})",
		map[string]any{"id": string(ref), "kind": string(kind)},
	)
	if err != nil {
		return "", err
	}
	for i, a := range args {
		err := s.exec(
			`MATCH (a:Atom {id: $src}), (b:Atom {id: $dst})
			 CREATE (a)-[:OUTGOING {pos: $pos}]->(b)`,
			map[string]any{"src": string(ref), "dst": string(a), "pos": int64(i)},
		)
		if err != nil {
			return "", err
		}
	}
	return ref, nil
}

// IncrementCount bumps the atom's count and returns the new value.
func (s *KuzuStore) IncrementCount(_ context.Context, ref Ref) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.query(
		"MATCH (a:Atom {id: $id}) SET a.observed = a.observed + 1 RETURN a.observed",
		map[string]any{"id": string(ref)},
	)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAtom, ref)
	}
	return int64(toInt(rows[0][0])), nil
}

// ---------- Read operations ----------

// GetAtom retrieves a single atom with its outgoing set, or nil if not found.
func (s *KuzuStore) GetAtom(_ context.Context, ref Ref) (*Atom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.query(
		"MATCH (a:Atom {id: $id}) RETURN a.id, a.kind, a.name, a.observed",
		map[string]any{"id": string(ref)},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	a := rowToAtom(rows[0])
	if a.IsLink() {
		out, err := s.outgoing(ref)
		if err != nil {
			return nil, err
		}
		a.Outgoing = out
	}
	return a, nil
}

// AtomsByKind returns all atoms of kind, ordered by ref.
func (s *KuzuStore) AtomsByKind(_ context.Context, kind Kind) ([]Atom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.query(
		"MATCH (a:Atom) WHERE a.kind = $kind RETURN a.id, a.kind, a.name, a.observed ORDER BY a.id",
		map[string]any{"kind": string(kind)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]Atom, 0, len(rows))
	for _, r := range rows {
		a := rowToAtom(r)
		if a.IsLink() {
			if a.Outgoing, err = s.outgoing(a.Ref); err != nil {
				return nil, err
			}
		}
		out = append(out, *a)
	}
	return out, nil
}

// Incoming returns the links that contain ref, ordered by ref.
func (s *KuzuStore) Incoming(_ context.Context, ref Ref) ([]Ref, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.query(
		"MATCH (a:Atom)-[:OUTGOING]->(b:Atom {id: $id}) RETURN DISTINCT a.id ORDER BY a.id",
		map[string]any{"id": string(ref)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]Ref, 0, len(rows))
	for _, r := range rows {
		out = append(out, Ref(toString(r[0])))
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns atom counts by kind and the number of outgoing edges.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.query("MATCH (a:Atom) RETURN a.kind, count(a)", nil)
	if err != nil {
		return nil, err
	}
	st := &GraphStats{ByKind: make(map[Kind]int)}
	for _, r := range rows {
		kind := Kind(toString(r[0]))
		n := toInt(r[1])
		st.ByKind[kind] = n
		if kind.IsLink() {
			st.LinkCount += n
		} else {
			st.NodeCount += n
		}
	}

	rows, err = s.query("MATCH ()-[r:OUTGOING]->() RETURN count(r)", nil)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		st.OutgoingCount = toInt(rows[0][0])
	}
	return st, nil
}

// ---------- Internal helpers ----------

func (s *KuzuStore) exists(ref Ref) (bool, error) {
	rows, err := s.query(
		"MATCH (a:Atom {id: $id}) RETURN a.id",
		map[string]any{"id": string(ref)},
	)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (s *KuzuStore) outgoing(ref Ref) ([]Ref, error) {
	rows, err := s.query(
		"MATCH (a:Atom {id: $id})-[r:OUTGOING]->(b:Atom) RETURN b.id ORDER BY r.pos",
		map[string]any{"id": string(ref)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]Ref, 0, len(rows))
	for _, r := range rows {
		out = append(out, Ref(toString(r[0])))
	}
	return out, nil
}

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// rowToAtom converts a 4-column result row into an Atom.
// Column order: id, kind, name, observed.
func rowToAtom(r []any) *Atom {
	return &Atom{
		Ref:   Ref(toString(r[0])),
		Kind:  Kind(toString(r[1])),
		Name:  toString(r[2]),
		Count: int64(toInt(r[3])),
	}
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
