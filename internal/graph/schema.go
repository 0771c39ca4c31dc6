package graph

import (
	"strconv"
	"strings"
)

// --- Enums ---

// Kind is the type of an atom in the linguistic graph. Node kinds carry a
// name; link kinds carry an ordered outgoing set.
type Kind string

// Node kinds.
const (
	KindSentence       Kind = "SentenceNode"
	KindParse          Kind = "ParseNode"
	KindWordInstance   Kind = "WordInstanceNode"
	KindWord           Kind = "WordNode"
	KindNumber         Kind = "NumberNode"
	KindLgLink         Kind = "LgLinkNode"
	KindLgLinkInstance Kind = "LgLinkInstanceNode"
	KindLgConn         Kind = "LgConnNode"
	KindLgConnDir      Kind = "LgConnDirNode"
	KindLgConnMulti    Kind = "LgConnMultiNode"
	KindLgConnType     Kind = "LgConnType"
	KindLgSubType      Kind = "LgSubType"
	KindConnectorDir   Kind = "ConnectorDir"
	KindBond           Kind = "BondNode"
)

// Link kinds.
const (
	KindParseLink          Kind = "ParseLink"
	KindWordInstanceLink   Kind = "WordInstanceLink"
	KindReferenceLink      Kind = "ReferenceLink"
	KindWordSequenceLink   Kind = "WordSequenceLink"
	KindLgWordCset         Kind = "LgWordCset"
	KindLgAnd              Kind = "LgAnd"
	KindLgConnector        Kind = "LgConnector"
	KindEvaluationLink     Kind = "EvaluationLink"
	KindListLink           Kind = "ListLink"
	KindLgLinkInstanceLink Kind = "LgLinkInstanceLink"
	KindLgDisjunct         Kind = "LgDisjunct"
	KindSection            Kind = "Section"
	KindConnectorSeq       Kind = "ConnectorSeq"
	KindConnector          Kind = "Connector"
	KindEdgeLink           Kind = "EdgeLink"
)

var linkKinds = map[Kind]bool{
	KindParseLink:          true,
	KindWordInstanceLink:   true,
	KindReferenceLink:      true,
	KindWordSequenceLink:   true,
	KindLgWordCset:         true,
	KindLgAnd:              true,
	KindLgConnector:        true,
	KindEvaluationLink:     true,
	KindListLink:           true,
	KindLgLinkInstanceLink: true,
	KindLgDisjunct:         true,
	KindSection:            true,
	KindConnectorSeq:       true,
	KindConnector:          true,
	KindEdgeLink:           true,
}

var nodeKinds = map[Kind]bool{
	KindSentence:       true,
	KindParse:          true,
	KindWordInstance:   true,
	KindWord:           true,
	KindNumber:         true,
	KindLgLink:         true,
	KindLgLinkInstance: true,
	KindLgConn:         true,
	KindLgConnDir:      true,
	KindLgConnMulti:    true,
	KindLgConnType:     true,
	KindLgSubType:      true,
	KindConnectorDir:   true,
	KindBond:           true,
}

// IsLink reports whether k is a link kind.
func (k Kind) IsLink() bool { return linkKinds[k] }

// IsNode reports whether k is a node kind.
func (k Kind) IsNode() bool { return nodeKinds[k] }

// --- Models ---

// Ref identifies an atom. Equal atoms have equal refs.
type Ref string

// nodeRef builds the identity of a node: (Kind "name").
func nodeRef(kind Kind, name string) Ref {
	return Ref("(" + string(kind) + " " + strconv.Quote(name) + ")")
}

// linkRef builds the identity of a link from its outgoing refs:
// (Kind out1 out2 ...).
func linkRef(kind Kind, out []Ref) Ref {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(string(kind))
	for _, r := range out {
		b.WriteByte(' ')
		b.WriteString(string(r))
	}
	b.WriteByte(')')
	return Ref(b.String())
}

// Atom is a node or link of the graph.
type Atom struct {
	Ref      Ref    `json:"ref"`
	Kind     Kind   `json:"kind"`
	Name     string `json:"name,omitempty"`
	Outgoing []Ref  `json:"outgoing,omitempty"`
	// Count is the number of times the atom was observed.
	Count int64 `json:"count"`
}

// IsLink reports whether the atom is a link.
func (a *Atom) IsLink() bool { return a.Kind.IsLink() }

// GraphStats summarizes a graph.
type GraphStats struct {
	NodeCount     int          `json:"nodeCount"`
	LinkCount     int          `json:"linkCount"`
	OutgoingCount int          `json:"outgoingCount"`
	ByKind        map[Kind]int `json:"byKind"`
}
