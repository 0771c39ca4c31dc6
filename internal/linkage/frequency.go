package linkage

import (
	"slices"

	"github.com/dusk-indust/linkgraph/internal/connector"
)

// Occurrence is a distinct (word, disjunct) pair and how often it was seen.
type Occurrence struct {
	Word       string                    `json:"word"`
	Connectors []connector.DisjunctToken `json:"connectors"`
	Count      int                       `json:"count"`
}

// FrequencySet folds disjuncts from several linkages of one parse into
// distinct occurrences. Two disjuncts are the same occurrence when the word
// text and the ordered connector sequence are equal. The zero value is
// ready to use; it is not safe for concurrent use.
type FrequencySet struct {
	items  []Occurrence
	byWord map[string][]int // word -> indexes into items
}

// Accumulate records one more sighting of (word, conns).
func (s *FrequencySet) Accumulate(word string, conns []connector.DisjunctToken) {
	if s.byWord == nil {
		s.byWord = make(map[string][]int)
	}
	for _, i := range s.byWord[word] {
		if slices.Equal(s.items[i].Connectors, conns) {
			s.items[i].Count++
			return
		}
	}
	s.byWord[word] = append(s.byWord[word], len(s.items))
	s.items = append(s.items, Occurrence{
		Word:       word,
		Connectors: slices.Clone(conns),
		Count:      1,
	})
}

// AccumulateView records every disjunct of a ModeDisjuncts view.
func (s *FrequencySet) AccumulateView(v View) {
	for _, dj := range v.Disjuncts {
		s.Accumulate(dj.Word, dj.Connectors)
	}
}

// Occurrences returns the occurrences in first-seen order.
func (s *FrequencySet) Occurrences() []Occurrence {
	out := make([]Occurrence, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct occurrences.
func (s *FrequencySet) Len() int { return len(s.items) }
