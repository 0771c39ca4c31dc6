package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/dusk-indust/linkgraph/internal/parse"
)

// DOT converts a parse result to Graphviz DOT. Each linkage view is a
// cluster subgraph, so a multi-linkage result renders as one image.
func DOT(res *parse.Result) (string, error) {
	ds, err := diagrams(res)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	fmt.Fprintf(&buf, "  label=%q;\n", res.Phrase)

	for i, d := range ds {
		// Node ids are namespaced by view so clusters never share nodes.
		id := func(key string) string { return fmt.Sprintf("v%d:%s", i, key) }

		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", d.title)
		for _, n := range d.nodes {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", id(n.key), n.label)
		}
		for _, e := range d.edges {
			fmt.Fprintf(&buf, "    %q -- %q [label=%q];\n", id(e.from), id(e.to), e.label)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
