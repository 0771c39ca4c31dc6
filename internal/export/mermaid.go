package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/linkgraph/internal/parse"
)

// Mermaid produces one Mermaid "graph LR" diagram per linkage view. Words
// are nodes in sentence order; links become labeled edges.
func Mermaid(res *parse.Result) ([]string, error) {
	ds, err := diagrams(res)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ds))
	for _, d := range ds {
		// Mermaid ids must be alphanumeric.
		ids := make(map[string]string, len(d.nodes))
		var sb strings.Builder
		sb.WriteString("graph LR\n")
		fmt.Fprintf(&sb, "  %%%% %s\n", d.title)
		for i, n := range d.nodes {
			id := fmt.Sprintf("N%d", i)
			ids[n.key] = id
			fmt.Fprintf(&sb, "  %s[\"%s\"]\n", id, mermaidText(n.label))
		}
		for _, e := range d.edges {
			fmt.Fprintf(&sb, "  %s ---|\"%s\"| %s\n", ids[e.from], mermaidText(e.label), ids[e.to])
		}
		out = append(out, sb.String())
	}
	return out, nil
}

// mermaidText escapes entity markers and quotes, and turns newlines into
// line breaks.
func mermaidText(s string) string {
	s = strings.ReplaceAll(s, "#", "#35;")
	s = strings.ReplaceAll(s, `"`, "#quot;")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
