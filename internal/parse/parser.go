// Package parse runs phrases through an external link parser and turns the
// linkages it finds into views.
//
// The parser itself is a black box behind the Parser interface. Policy
// decides how many linkages to ask for, retries once with null links
// allowed when nothing parses, drops linkages with post-processing
// violations and projects the rest.
package parse

import (
	"time"

	"github.com/dusk-indust/linkgraph/internal/linkage"
)

// Search outcome codes reported by Sentence.Search.
const (
	// CountSplitFailure means the sentence could not be split into words,
	// e.g. whitespace-only input. There are no parses.
	CountSplitFailure = -1
	// CountTooLong means the parser refused the sentence as too long.
	CountTooLong = -2
)

// Dictionary is an opened parser dictionary.
type Dictionary interface {
	Language() string
	Close() error
}

// Parser is the external link parser.
// Implementations: replay.Parser (corpus-backed).
type Parser interface {
	// OpenDictionary loads the dictionary for lang. Opening is not safe
	// for concurrent use; go through Dictionaries.
	OpenDictionary(lang string, diag DiagnosticHandler) (Dictionary, error)

	// NewSentence prepares phrase for searching. diag receives every
	// message the parser emits while the sentence is alive.
	NewSentence(phrase string, dict Dictionary, diag DiagnosticHandler) (Sentence, error)
}

// Sentence is one phrase being parsed.
type Sentence interface {
	// Length is the number of words the parser split the phrase into.
	Length() int

	// Search runs the linkage search. It returns once the search finishes
	// or MaxParseTime elapses; it cannot be interrupted.
	Search(opts SearchOptions) (SearchOutcome, error)

	// NumLinkages is the number of linkages available after
	// post-processing the last search.
	NumLinkages() int

	// NumViolations reports the post-processing violations of linkage i.
	NumViolations(i int) int

	// Linkage extracts linkage i.
	Linkage(i int) (*linkage.Linkage, error)

	// Close releases the sentence and flushes pending diagnostics.
	Close() error
}

// SearchOptions configures one search.
type SearchOptions struct {
	LinkageLimit   int
	MinNullCount   int
	MaxNullCount   int
	MaxParseTime   time.Duration
	Verbosity      int
	RepeatableRand bool
}

// SearchOutcome is the result of one search. Count is the number of
// linkages found, or one of the negative Count* codes.
type SearchOutcome struct {
	Count              int
	ResourcesExhausted bool
}
