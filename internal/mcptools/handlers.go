package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/linkgraph/internal/connector"
	"github.com/dusk-indust/linkgraph/internal/graph"
	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

// ErrNoStore is returned by tools that need a graph store when none is set.
var ErrNoStore = errors.New("no graph store configured")

// LinkGraphService holds the parse policy and graph store used by MCP tool
// handlers.
type LinkGraphService struct {
	policy  *parse.Policy
	store   graph.Store
	emitter *graph.Emitter
}

// NewLinkGraphService creates a LinkGraphService. store may be nil, in which
// case results cannot be stored and graph_stats fails.
func NewLinkGraphService(policy *parse.Policy, store graph.Store, opts ...graph.EmitOption) *LinkGraphService {
	s := &LinkGraphService{policy: policy, store: store}
	if store != nil {
		s.emitter = graph.NewEmitter(store, opts...)
	}
	return s
}

// ParsePhrase parses one phrase and returns its linkage views.
func (s *LinkGraphService) ParsePhrase(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParsePhraseInput,
) (*mcp.CallToolResult, ParsePhraseOutput, error) {
	if strings.TrimSpace(input.Phrase) == "" {
		return nil, ParsePhraseOutput{}, fmt.Errorf("phrase is required")
	}
	mode, err := linkage.ParseMode(input.Mode)
	if err != nil {
		return nil, ParsePhraseOutput{}, err
	}
	if input.Store && s.emitter == nil {
		return nil, ParsePhraseOutput{}, ErrNoStore
	}

	res, err := s.policy.Parse(ctx, parse.Request{
		Phrase:    input.Phrase,
		Language:  input.Language,
		Mode:      mode,
		Minimal:   input.Minimal,
		Count:     input.Count,
		Aggregate: input.Aggregate,
	})
	if err != nil {
		return nil, ParsePhraseOutput{}, fmt.Errorf("parse: %w", err)
	}

	out := flatten(res)
	if input.Store {
		refs, err := s.emitter.Emit(ctx, res)
		if err != nil {
			return nil, ParsePhraseOutput{}, fmt.Errorf("store: %w", err)
		}
		for _, r := range refs {
			out.Atoms = append(out.Atoms, string(r))
		}
	}
	return nil, out, nil
}

// flatten converts a result into the tool's string-only shape.
func flatten(res *parse.Result) ParsePhraseOutput {
	out := ParsePhraseOutput{
		Phrase:     res.Phrase,
		Mode:       res.Mode.String(),
		SentenceID: res.SentenceID,
		Skipped:    res.Skipped,
		Relaxed:    res.Relaxed,
	}
	for _, occ := range res.Frequencies {
		out.Frequencies = append(out.Frequencies, FrequencyOutput{
			Word:     occ.Word,
			Disjunct: disjunctString(occ.Connectors),
			Count:    occ.Count,
		})
	}

	for _, v := range res.Views {
		lo := LinkageOutput{Index: v.Linkage, Words: v.Words}
		if g := v.Graph; g != nil {
			for _, w := range g.Words {
				lo.Words = append(lo.Words, w.ID)
			}
			for _, l := range g.Links {
				lo.Bonds = append(lo.Bonds, BondOutput{Label: l.Label, Left: l.Left, Right: l.Right})
			}
		}
		for _, dj := range v.Disjuncts {
			lo.Disjuncts = append(lo.Disjuncts, DisjunctOutput{Word: dj.Word, Disjunct: disjunctString(dj.Connectors)})
		}
		for _, sec := range v.Sections {
			so := SectionOutput{Word: sec.Word}
			for _, c := range sec.Connectors {
				so.Connectors = append(so.Connectors, c.Word+c.Dir.String())
			}
			lo.Sections = append(lo.Sections, so)
		}
		for _, b := range v.Bonds {
			lo.Bonds = append(lo.Bonds, BondOutput(b))
		}
		out.Linkages = append(out.Linkages, lo)
	}
	return out
}

func disjunctString(conns []connector.DisjunctToken) string {
	parts := make([]string, len(conns))
	for i, c := range conns {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ExpandConnector splits a connector string into its subtypes, type,
// direction and multi marker.
func (s *LinkGraphService) ExpandConnector(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExpandConnectorInput,
) (*mcp.CallToolResult, ExpandConnectorOutput, error) {
	dialect := connector.DialectExtended
	if input.Dialect != "" {
		d, err := connector.ParseDialect(input.Dialect)
		if err != nil {
			return nil, ExpandConnectorOutput{}, err
		}
		dialect = d
	}

	var (
		tok connector.Token
		err error
	)
	if dialect == connector.DialectStrict {
		tok, err = connector.TokenizeStrict(input.Connector)
	} else {
		tok, err = connector.TokenizeExtended(input.Connector, connector.ParseDirection(input.Dir), input.Multi)
	}
	if err != nil {
		return nil, ExpandConnectorOutput{}, err
	}

	return nil, ExpandConnectorOutput{
		Connector: tok.String(),
		Multi:     tok.Multi,
		Prefix:    tok.Prefix,
		Core:      tok.Core,
		Suffix:    tok.Suffix,
		Dir:       tok.Dir.String(),
		Parts:     partsOutput(tok.Parts()),
	}, nil
}

func partsOutput(parts []connector.Part) []PartOutput {
	out := make([]PartOutput, len(parts))
	for i, p := range parts {
		out[i] = PartOutput{Kind: string(p.Kind), Text: p.Text}
	}
	return out
}

// DecodeDisjunct splits a disjunct string into its connectors.
func (s *LinkGraphService) DecodeDisjunct(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DecodeDisjunctInput,
) (*mcp.CallToolResult, DecodeDisjunctOutput, error) {
	toks, err := connector.DecodeDisjunct(input.Disjunct)
	if err != nil {
		return nil, DecodeDisjunctOutput{}, err
	}

	out := DecodeDisjunctOutput{Connectors: make([]ConnectorOutput, 0, len(toks))}
	for _, tok := range toks {
		co := ConnectorOutput{Label: tok.Label, Dir: tok.Dir.String(), Multi: tok.Multi}
		if input.Expand {
			t, err := tok.Expand()
			if err != nil {
				return nil, DecodeDisjunctOutput{}, fmt.Errorf("expand %s: %w", tok, err)
			}
			co.Parts = partsOutput(t.Parts())
		}
		out.Connectors = append(out.Connectors, co)
	}
	return nil, out, nil
}

// GraphStats returns atom counts from the graph store.
func (s *LinkGraphService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	if s.store == nil {
		return nil, GraphStatsOutput{}, ErrNoStore
	}
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, GraphStatsOutput{}, fmt.Errorf("stats: %w", err)
	}
	return nil, GraphStatsOutput{Stats: *stats}, nil
}
