package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dusk-indust/linkgraph/internal/connector"
	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

// ErrNotDiagrammable is returned when a result has no link structure to draw.
var ErrNotDiagrammable = errors.New("result cannot be diagrammed")

// diagram is the rendering-neutral shape of one linkage view.
type diagram struct {
	title string
	nodes []diagramNode
	edges []diagramEdge
	seen  map[string]bool
}

type diagramNode struct {
	key   string
	label string
}

type diagramEdge struct {
	from, to string
	label    string
}

func (d *diagram) node(key, label string) {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.nodes = append(d.nodes, diagramNode{key: key, label: label})
}

func (d *diagram) edge(from, to, label string) {
	d.node(from, from)
	d.node(to, to)
	d.edges = append(d.edges, diagramEdge{from: from, to: to, label: label})
}

// diagrams converts every view of res. Full graphs key nodes by word
// instance, so repeated words stay distinct; the other modes key them by
// surface text, the way the graph store identifies WordNodes.
func diagrams(res *parse.Result) ([]diagram, error) {
	if res.Aggregated() {
		return nil, fmt.Errorf("%w: frequency sets carry no links", ErrNotDiagrammable)
	}

	out := make([]diagram, 0, len(res.Views))
	for _, v := range res.Views {
		d := diagram{title: fmt.Sprintf("linkage %d", v.Linkage)}
		switch v.Mode {
		case linkage.ModeFull:
			if v.Graph == nil {
				break
			}
			for _, w := range v.Graph.Words {
				d.node(w.ID, w.Text)
			}
			for _, l := range v.Graph.Links {
				d.edge(l.Left, l.Right, l.Label)
			}
		case linkage.ModeDisjuncts:
			for i, dj := range v.Disjuncts {
				d.node(fmt.Sprintf("%d:%s", i, dj.Word), dj.Word+"\n"+disjunctString(dj.Connectors))
			}
		case linkage.ModeSections:
			for _, s := range v.Sections {
				d.node(s.Word, s.Word)
			}
			for _, b := range v.Bonds {
				d.edge(b.Left, b.Right, b.Label)
			}
		case linkage.ModeBonds:
			for _, w := range v.Words {
				d.node(w, w)
			}
			for _, b := range v.Bonds {
				d.edge(b.Left, b.Right, b.Label)
			}
		default:
			return nil, fmt.Errorf("%w: mode %v", ErrNotDiagrammable, v.Mode)
		}
		out = append(out, d)
	}
	return out, nil
}

// disjunctString renders connectors back into disjunct notation.
func disjunctString(conns []connector.DisjunctToken) string {
	parts := make([]string, len(conns))
	for i, c := range conns {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
