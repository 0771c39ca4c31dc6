package graph

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dusk-indust/linkgraph/internal/connector"
	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

// Emitter writes parse results into a Store.
type Emitter struct {
	store  Store
	expand bool
}

// EmitOption configures an Emitter.
type EmitOption func(*Emitter)

// WithExpandedConnectors writes every connector as a Connector link of its
// decoded parts (subtypes, type, direction, multi marker) instead of an
// LgConnector of label and direction.
func WithExpandedConnectors() EmitOption {
	return func(e *Emitter) { e.expand = true }
}

// NewEmitter returns an emitter writing to store.
func NewEmitter(store Store, opts ...EmitOption) *Emitter {
	e := &Emitter{store: store}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Emit writes res and returns the top-level atoms it produced: the sentence
// node for full graphs, otherwise the disjuncts, sections, words and bonds
// in view order. Frequency sets bump each disjunct's count once per
// occurrence.
func (e *Emitter) Emit(ctx context.Context, res *parse.Result) ([]Ref, error) {
	w := &writer{ctx: ctx, s: e.store}

	if res.Aggregated() {
		var out []Ref
		for _, occ := range res.Frequencies {
			dj := e.disjunct(w, occ.Word, occ.Connectors)
			for range occ.Count {
				w.increment(dj)
			}
			out = append(out, dj)
		}
		if w.err != nil {
			return nil, w.err
		}
		return out, nil
	}

	if res.Mode == linkage.ModeFull {
		sent := w.node(KindSentence, res.SentenceID)
		for i := range res.Views {
			if g := res.Views[i].Graph; g != nil {
				e.instanceGraph(w, sent, g)
			}
		}
		if w.err != nil {
			return nil, w.err
		}
		return []Ref{sent}, nil
	}

	var out []Ref
	for _, v := range res.Views {
		for _, dj := range v.Disjuncts {
			out = append(out, e.disjunct(w, dj.Word, dj.Connectors))
		}
		for _, sec := range v.Sections {
			out = append(out, section(w, sec))
		}
		for _, word := range v.Words {
			out = append(out, w.node(KindWord, word))
		}
		for _, b := range v.Bonds {
			out = append(out, bond(w, b))
		}
	}
	if w.err != nil {
		return nil, w.err
	}
	return out, nil
}

// instanceGraph writes one parse of the sentence.
func (e *Emitter) instanceGraph(w *writer, sent Ref, g *linkage.InstanceGraph) Ref {
	pnode := w.node(KindParse, g.ParseID)
	w.link(KindParseLink, pnode, sent)

	words := make(map[string]Ref, len(g.Words))
	for _, wi := range g.Words {
		winst := w.node(KindWordInstance, wi.ID)
		words[wi.ID] = winst
		w.link(KindWordInstanceLink, winst, pnode)
		w.link(KindReferenceLink, winst, w.node(KindWord, wi.Text))
		w.link(KindWordSequenceLink, winst, w.node(KindNumber, strconv.Itoa(wi.Seq)))

		if len(wi.Disjunct) == 0 {
			continue
		}
		w.link(KindLgWordCset, winst, w.link(KindLgAnd, e.connectors(w, wi.Disjunct)...))
	}

	for _, li := range g.Links {
		lst := w.link(KindListLink, words[li.Left], words[li.Right])
		lrel := w.node(KindLgLink, li.Label)
		w.link(KindEvaluationLink, lrel, lst)

		if li.ID == "" || li.LeftConn == nil || li.RightConn == nil {
			continue
		}
		linst := w.node(KindLgLinkInstance, li.ID)
		w.link(KindEvaluationLink, linst, lst)
		w.link(KindReferenceLink, linst, lrel)
		w.link(KindLgLinkInstanceLink, linst,
			e.connector(w, connector.DisjunctToken{Label: li.LeftConn.Label, Dir: li.LeftConn.Dir}),
			e.connector(w, connector.DisjunctToken{Label: li.RightConn.Label, Dir: li.RightConn.Dir}))
	}
	return pnode
}

func (e *Emitter) disjunct(w *writer, word string, conns []connector.DisjunctToken) Ref {
	return w.link(KindLgDisjunct, w.node(KindWord, word), w.link(KindLgAnd, e.connectors(w, conns)...))
}

func (e *Emitter) connectors(w *writer, conns []connector.DisjunctToken) []Ref {
	out := make([]Ref, len(conns))
	for i, c := range conns {
		out[i] = e.connector(w, c)
	}
	return out
}

func (e *Emitter) connector(w *writer, tok connector.DisjunctToken) Ref {
	if !e.expand {
		args := []Ref{w.node(KindLgConn, tok.Label), w.node(KindLgConnDir, tok.Dir.String())}
		if tok.Multi {
			args = append(args, w.node(KindLgConnMulti, "@"))
		}
		return w.link(KindLgConnector, args...)
	}

	t, err := tok.Expand()
	if err != nil {
		w.fail(fmt.Errorf("expand connector %s: %w", tok, err))
		return ""
	}
	parts := t.Parts()
	args := make([]Ref, len(parts))
	for i, p := range parts {
		args[i] = w.node(partKinds[p.Kind], p.Text)
	}
	return w.link(KindConnector, args...)
}

var partKinds = map[connector.PartKind]Kind{
	connector.PartSubType:  KindLgSubType,
	connector.PartConnType: KindLgConnType,
	connector.PartDir:      KindLgConnDir,
	connector.PartMulti:    KindLgConnMulti,
}

func section(w *writer, sec linkage.Section) Ref {
	conns := make([]Ref, len(sec.Connectors))
	for i, c := range sec.Connectors {
		conns[i] = w.link(KindConnector, w.node(KindWord, c.Word), w.node(KindConnectorDir, c.Dir.String()))
	}
	return w.link(KindSection, w.node(KindWord, sec.Word), w.link(KindConnectorSeq, conns...))
}

func bond(w *writer, b linkage.Bond) Ref {
	return w.link(KindEdgeLink,
		w.node(KindBond, b.Label),
		w.link(KindListLink, w.node(KindWord, b.Left), w.node(KindWord, b.Right)))
}

// writer issues store calls until the first failure, after which every
// call is a no-op and err holds the failure.
type writer struct {
	ctx context.Context
	s   Store
	err error
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) node(kind Kind, name string) Ref {
	if w.err != nil {
		return ""
	}
	if err := w.ctx.Err(); err != nil {
		w.fail(err)
		return ""
	}
	ref, err := w.s.CreateOrFindNode(w.ctx, kind, name)
	if err != nil {
		w.fail(fmt.Errorf("add %s %q: %w", kind, name, err))
	}
	return ref
}

func (w *writer) link(kind Kind, args ...Ref) Ref {
	if w.err != nil {
		return ""
	}
	ref, err := w.s.CreateOrFindEdge(w.ctx, kind, args...)
	if err != nil {
		w.fail(fmt.Errorf("add %s: %w", kind, err))
	}
	return ref
}

func (w *writer) increment(ref Ref) {
	if w.err != nil {
		return
	}
	if _, err := w.s.IncrementCount(w.ctx, ref); err != nil {
		w.fail(fmt.Errorf("count %s: %w", ref, err))
	}
}
