package linkage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dusk-indust/linkgraph/internal/connector"
)

// Mode selects which view Project derives from a linkage.
type Mode int

const (
	ModeFull      Mode = iota // full instance graph
	ModeDisjuncts             // (word, disjunct) pairs
	ModeSections              // sections and bonds
	ModeBonds                 // words and bonds
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeDisjuncts:
		return "disjuncts"
	case ModeSections:
		return "sections"
	case ModeBonds:
		return "bonds"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the four projection modes.
func (m Mode) Valid() bool { return m >= ModeFull && m <= ModeBonds }

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "full", "":
		return ModeFull, nil
	case "disjuncts":
		return ModeDisjuncts, nil
	case "sections":
		return ModeSections, nil
	case "bonds":
		return ModeBonds, nil
	default:
		return 0, fmt.Errorf("%w: unknown output mode %q", ErrInvalidArgument, s)
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText is the inverse of MarshalText.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// --- Views ---

// WordInstance is one word of a full instance graph.
type WordInstance struct {
	ID       string                    `json:"id"`
	Text     string                    `json:"text"`
	Seq      int                       `json:"seq"`
	Disjunct []connector.DisjunctToken `json:"disjunct,omitempty"`
}

// ConnectorRecord is one end of a link instance.
type ConnectorRecord struct {
	Label string              `json:"label"`
	Dir   connector.Direction `json:"dir"`
}

// LinkInstance is one link of a full instance graph. ID and the connector
// records are empty for minimal projections.
type LinkInstance struct {
	ID        string           `json:"id,omitempty"`
	Label     string           `json:"label"`
	Left      string           `json:"left"`  // word instance ID
	Right     string           `json:"right"` // word instance ID
	LeftConn  *ConnectorRecord `json:"lconn,omitempty"`
	RightConn *ConnectorRecord `json:"rconn,omitempty"`
}

// InstanceGraph is the full view of one linkage.
type InstanceGraph struct {
	ParseID string         `json:"parseId"`
	Words   []WordInstance `json:"words"`
	Links   []LinkInstance `json:"links"`
}

// Disjunct pairs a word with the connectors it used.
type Disjunct struct {
	Word       string                    `json:"word"`
	Connectors []connector.DisjunctToken `json:"connectors"`
}

// SectionConnector points from a word to one of its linked neighbors.
type SectionConnector struct {
	Word  string              `json:"word"`
	Index int                 `json:"index"`
	Dir   connector.Direction `json:"dir"`
}

// Section is a word's connectors derived from the link set, ordered by
// neighbor position.
type Section struct {
	Word       string             `json:"word"`
	Index      int                `json:"index"`
	Connectors []SectionConnector `json:"connectors"`
}

// Bond is a labeled edge between the surface texts of two linked words.
type Bond struct {
	Label string `json:"label"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// View is the projection of one linkage. Only the fields belonging to Mode
// are populated.
type View struct {
	Mode      Mode           `json:"mode"`
	Linkage   int            `json:"linkage"`
	Graph     *InstanceGraph `json:"graph,omitempty"`
	Disjuncts []Disjunct     `json:"disjuncts,omitempty"`
	Sections  []Section      `json:"sections,omitempty"`
	Words     []string       `json:"words,omitempty"`
	Bonds     []Bond         `json:"bonds,omitempty"`
}

// --- Projector ---

// Projector derives views from linkages of one phrase.
type Projector struct {
	// Phrase is the original text; word surface texts are cut from it.
	Phrase string
	// SentenceID prefixes parse identifiers in full graphs.
	SentenceID string
	// Minimal drops disjuncts and link instances from full graphs.
	Minimal bool
	// NewID returns a fresh unique identifier. Defaults to uuid.NewString.
	NewID func() string
}

// Project derives the view for mode from lk. A linkage with no words yields
// an empty view.
func (p *Projector) Project(lk *Linkage, mode Mode) (View, error) {
	if !mode.Valid() {
		return View{}, fmt.Errorf("%w: unknown output mode %d", ErrInvalidArgument, int(mode))
	}
	if err := lk.Validate(); err != nil {
		return View{}, err
	}
	texts, err := wordTexts(lk, p.Phrase)
	if err != nil {
		return View{}, err
	}

	v := View{Mode: mode, Linkage: lk.Index}
	switch mode {
	case ModeFull:
		v.Graph, err = p.instanceGraph(lk, texts)
	case ModeDisjuncts:
		v.Disjuncts, err = disjuncts(lk, texts)
	case ModeSections:
		v.Sections = sections(lk, texts)
		v.Bonds = bonds(lk, texts)
	case ModeBonds:
		v.Words = texts
		v.Bonds = bonds(lk, texts)
	}
	if err != nil {
		return View{}, err
	}
	return v, nil
}

func (p *Projector) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return uuid.NewString()
}

// instanceGraph allocates a fresh instance for every word and link.
func (p *Projector) instanceGraph(lk *Linkage, texts []string) (*InstanceGraph, error) {
	g := &InstanceGraph{
		ParseID: fmt.Sprintf("%s_parse_%d", p.SentenceID, lk.Index),
		Words:   make([]WordInstance, len(lk.Words)),
		Links:   make([]LinkInstance, len(lk.Links)),
	}

	for w, txt := range texts {
		wi := WordInstance{
			ID:   txt + "@" + p.newID(),
			Text: txt,
			Seq:  w,
		}
		if !p.Minimal {
			conns, err := connector.DecodeDisjunct(lk.Words[w].Disjunct)
			if err != nil {
				return nil, fmt.Errorf("word %d: %w", w, err)
			}
			wi.Disjunct = conns
		}
		g.Words[w] = wi
	}

	for i, l := range lk.Links {
		li := LinkInstance{
			Label: l.Label,
			Left:  g.Words[l.Left].ID,
			Right: g.Words[l.Right].ID,
		}
		if !p.Minimal {
			li.ID = fmt.Sprintf("%s@%s-link-%d", l.Label, g.ParseID, i)
			li.LeftConn = &ConnectorRecord{Label: l.LeftLabel, Dir: connector.DirPlus}
			li.RightConn = &ConnectorRecord{Label: l.RightLabel, Dir: connector.DirMinus}
		}
		g.Links[i] = li
	}
	return g, nil
}

// disjuncts decodes each word's disjunct string; words without connectors
// are left out.
func disjuncts(lk *Linkage, texts []string) ([]Disjunct, error) {
	var out []Disjunct
	for w, word := range lk.Words {
		conns, err := connector.DecodeDisjunct(word.Disjunct)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", w, err)
		}
		if len(conns) == 0 {
			continue
		}
		out = append(out, Disjunct{Word: texts[w], Connectors: conns})
	}
	return out, nil
}

// sections builds each word's connectors from the links touching it,
// ordered by the neighbor's position. Words with no links have no section.
func sections(lk *Linkage, texts []string) []Section {
	var out []Section
	for w := range lk.Words {
		var nbrs []int
		for _, l := range lk.Links {
			switch w {
			case l.Left:
				nbrs = append(nbrs, l.Right)
			case l.Right:
				nbrs = append(nbrs, l.Left)
			}
		}
		if len(nbrs) == 0 {
			continue
		}
		slices.Sort(nbrs)

		sec := Section{Word: texts[w], Index: w, Connectors: make([]SectionConnector, len(nbrs))}
		for i, c := range nbrs {
			dir := connector.DirPlus
			if c < w {
				dir = connector.DirMinus
			}
			sec.Connectors[i] = SectionConnector{Word: texts[c], Index: c, Dir: dir}
		}
		out = append(out, sec)
	}
	return out
}

// bonds emits one bond per link, in link order, endpoints in role order.
func bonds(lk *Linkage, texts []string) []Bond {
	out := make([]Bond, 0, len(lk.Links))
	for _, l := range lk.Links {
		out = append(out, Bond{Label: l.Label, Left: texts[l.Left], Right: texts[l.Right]})
	}
	return out
}
