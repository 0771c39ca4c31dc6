// Package linkage holds one completed parse (a linkage) and derives the
// output views from it: the full instance graph, the disjunct list, sections
// with bonds, and words with bonds.
package linkage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a malformed linkage or an out-of-range
	// mode, count or index supplied by the caller.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWordTooLong reports a word span longer than MaxWordLen. It is an
	// internal consistency failure of the parser output.
	ErrWordTooLong = errors.New("word too long")
)

// Word is the external parser's view of one word position.
type Word struct {
	// Text is the parser's own word string, which may carry subscripts
	// and guess marks (e.g. "dog.n", "LEFT-WALL").
	Text string `json:"text" yaml:"text"`

	// ByteStart and ByteEnd locate the word in the original phrase.
	// Equal values mean the word has no span (wall words).
	ByteStart int `json:"start" yaml:"start"`
	ByteEnd   int `json:"end" yaml:"end"`

	// Disjunct is the disjunct string used by this word in the linkage.
	Disjunct string `json:"disjunct,omitempty" yaml:"disjunct,omitempty"`
}

// Link is one labeled link between two word positions. Left and Right are
// roles, not an ordering guarantee.
type Link struct {
	Left       int    `json:"left" yaml:"left"`
	Right      int    `json:"right" yaml:"right"`
	Label      string `json:"label" yaml:"label"`
	LeftLabel  string `json:"llabel" yaml:"llabel"`
	RightLabel string `json:"rlabel" yaml:"rlabel"`
}

// Linkage is one parse alternative of a sentence. It is immutable once
// produced and is discarded after its views have been derived.
type Linkage struct {
	// Index is the linkage's position among the sentence's linkages.
	Index int    `json:"index" yaml:"index"`
	Words []Word `json:"words" yaml:"words"`
	Links []Link `json:"links" yaml:"links"`
}

// NumWords returns the number of word positions.
func (lk *Linkage) NumWords() int { return len(lk.Words) }

// Validate checks that every link references existing word positions.
func (lk *Linkage) Validate() error {
	if lk == nil {
		return fmt.Errorf("%w: nil linkage", ErrInvalidArgument)
	}
	n := len(lk.Words)
	for i, l := range lk.Links {
		if l.Left < 0 || l.Left >= n || l.Right < 0 || l.Right >= n {
			return fmt.Errorf("%w: link %d (%s) references word %d-%d of %d",
				ErrInvalidArgument, i, l.Label, l.Left, l.Right, n)
		}
	}
	return nil
}
