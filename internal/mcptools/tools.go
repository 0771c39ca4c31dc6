package mcptools

import "github.com/dusk-indust/linkgraph/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ParsePhraseInput is the input for the parse_phrase MCP tool.
type ParsePhraseInput struct {
	Phrase    string `json:"phrase" jsonschema:"the sentence to parse"`
	Language  string `json:"language,omitempty" jsonschema:"dictionary language (default: the configured dictionary)"`
	Mode      string `json:"mode,omitempty" jsonschema:"output mode: full, disjuncts, sections or bonds (default: full)"`
	Minimal   bool   `json:"minimal,omitempty" jsonschema:"drop disjuncts and link instances from full graphs"`
	Count     int    `json:"count,omitempty" jsonschema:"number of linkages wanted (default: 4)"`
	Aggregate bool   `json:"aggregate,omitempty" jsonschema:"fold the disjuncts of all linkages into counts; needs mode disjuncts"`
	Store     bool   `json:"store,omitempty" jsonschema:"write the result into the graph store"`
}

// ParsePhraseOutput is the result of the parse_phrase MCP tool.
type ParsePhraseOutput struct {
	Phrase      string            `json:"phrase"`
	Mode        string            `json:"mode"`
	SentenceID  string            `json:"sentenceId,omitempty"`
	Skipped     int               `json:"skipped"`
	Relaxed     bool              `json:"relaxed"`
	Linkages    []LinkageOutput   `json:"linkages,omitempty"`
	Frequencies []FrequencyOutput `json:"frequencies,omitempty"`
	Atoms       []string          `json:"atoms,omitempty"`
}

// LinkageOutput is one linkage view, flattened to strings.
type LinkageOutput struct {
	Index     int              `json:"index"`
	Words     []string         `json:"words,omitempty"`
	Bonds     []BondOutput     `json:"bonds,omitempty"`
	Disjuncts []DisjunctOutput `json:"disjuncts,omitempty"`
	Sections  []SectionOutput  `json:"sections,omitempty"`
}

// BondOutput is a labeled link between two words.
type BondOutput struct {
	Label string `json:"label"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// DisjunctOutput pairs a word with its disjunct string.
type DisjunctOutput struct {
	Word     string `json:"word"`
	Disjunct string `json:"disjunct"`
}

// SectionOutput lists a word's neighbors as "word+" or "word-".
type SectionOutput struct {
	Word       string   `json:"word"`
	Connectors []string `json:"connectors"`
}

// FrequencyOutput is one aggregated disjunct.
type FrequencyOutput struct {
	Word     string `json:"word"`
	Disjunct string `json:"disjunct"`
	Count    int    `json:"count"`
}

// ExpandConnectorInput is the input for the expand_connector MCP tool.
type ExpandConnectorInput struct {
	Connector string `json:"connector" jsonschema:"connector string, e.g. @hMVp+"`
	Dialect   string `json:"dialect,omitempty" jsonschema:"strict or extended (default: extended)"`
	Dir       string `json:"dir,omitempty" jsonschema:"direction already known from elsewhere: + or -"`
	Multi     bool   `json:"multi,omitempty" jsonschema:"multi marker already known from elsewhere"`
}

// ExpandConnectorOutput is the result of the expand_connector MCP tool.
type ExpandConnectorOutput struct {
	Connector string       `json:"connector"`
	Multi     bool         `json:"multi"`
	Prefix    []string     `json:"prefix,omitempty"`
	Core      string       `json:"core"`
	Suffix    []string     `json:"suffix,omitempty"`
	Dir       string       `json:"dir,omitempty"`
	Parts     []PartOutput `json:"parts"`
}

// PartOutput is one positional component of an expanded connector.
type PartOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// DecodeDisjunctInput is the input for the decode_disjunct MCP tool.
type DecodeDisjunctInput struct {
	Disjunct string `json:"disjunct" jsonschema:"disjunct string, e.g. Wd- @MVp+ Ss*s+"`
	Expand   bool   `json:"expand,omitempty" jsonschema:"also expand each connector into its parts"`
}

// DecodeDisjunctOutput is the result of the decode_disjunct MCP tool.
type DecodeDisjunctOutput struct {
	Connectors []ConnectorOutput `json:"connectors"`
}

// ConnectorOutput is one decoded disjunct connector.
type ConnectorOutput struct {
	Label string       `json:"label"`
	Dir   string       `json:"dir"`
	Multi bool         `json:"multi"`
	Parts []PartOutput `json:"parts,omitempty"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Stats graph.GraphStats `json:"stats"`
}
