// Package replay implements the external parser contract from a recorded
// corpus. Each corpus entry carries the linkages, diagnostics and search
// outcome the parser produced for one phrase, and the replay parser answers
// searches from it.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/linkgraph/internal/linkage"
)

// ErrInvalidCorpus reports a corpus that cannot be replayed.
var ErrInvalidCorpus = errors.New("invalid corpus")

// Status is the recorded outcome of a phrase's first search.
type Status string

const (
	StatusOK           Status = "ok"
	StatusTooLong      Status = "too-long"
	StatusSplitFailure Status = "split-failure"
)

// Corpus is the recording for one dictionary language.
type Corpus struct {
	Language  string  `yaml:"language"`
	Sentences []Entry `yaml:"sentences"`

	byPhrase map[string]int
}

// Entry is the recording for one phrase.
type Entry struct {
	Phrase string `yaml:"phrase"`
	Status Status `yaml:"status,omitempty"`

	// Exhausted marks a phrase whose search ran out of time or memory.
	Exhausted bool `yaml:"exhausted,omitempty"`

	// Length is the number of words the phrase splits into. When zero it
	// is taken from the first linkage.
	Length int `yaml:"length,omitempty"`

	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty"`
	Linkages    []Linkage    `yaml:"linkages,omitempty"`
}

// Diagnostic is a recorded parser message.
type Diagnostic struct {
	Severity string `yaml:"severity"`
	Text     string `yaml:"text"`
}

// Linkage is a recorded linkage with its search metadata.
type Linkage struct {
	Nulls      int            `yaml:"nulls,omitempty"`
	Violations int            `yaml:"violations,omitempty"`
	Words      []linkage.Word `yaml:"words"`
	Links      []linkage.Link `yaml:"links"`
}

// length returns the sentence length of the entry.
func (e *Entry) length() int {
	if e.Length > 0 {
		return e.Length
	}
	if len(e.Linkages) > 0 {
		return len(e.Linkages[0].Words)
	}
	return len(strings.Fields(e.Phrase))
}

// LoadFile reads a corpus from a YAML file.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads and validates a corpus.
func Decode(r io.Reader) (*Corpus, error) {
	var c Corpus
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCorpus)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

// index validates the entries and builds the phrase lookup.
func (c *Corpus) index() error {
	if c.Language == "" {
		return fmt.Errorf("%w: missing language", ErrInvalidCorpus)
	}
	c.byPhrase = make(map[string]int, len(c.Sentences))
	for i := range c.Sentences {
		e := &c.Sentences[i]
		if _, dup := c.byPhrase[e.Phrase]; dup {
			return fmt.Errorf("%w: duplicate phrase %q", ErrInvalidCorpus, e.Phrase)
		}
		switch e.Status {
		case "":
			e.Status = StatusOK
		case StatusOK, StatusTooLong, StatusSplitFailure:
		default:
			return fmt.Errorf("%w: phrase %q: unknown status %q", ErrInvalidCorpus, e.Phrase, e.Status)
		}
		for j, rec := range e.Linkages {
			lk := linkage.Linkage{Words: rec.Words, Links: rec.Links}
			if err := lk.Validate(); err != nil {
				return fmt.Errorf("%w: phrase %q linkage %d: %v", ErrInvalidCorpus, e.Phrase, j, err)
			}
		}
		c.byPhrase[e.Phrase] = i
	}
	return nil
}

// Lookup returns the entry recorded for phrase.
func (c *Corpus) Lookup(phrase string) (*Entry, bool) {
	i, ok := c.byPhrase[phrase]
	if !ok {
		return nil, false
	}
	return &c.Sentences[i], true
}

// Phrases lists the recorded phrases in corpus order.
func (c *Corpus) Phrases() []string {
	out := make([]string, len(c.Sentences))
	for i, e := range c.Sentences {
		out[i] = e.Phrase
	}
	return out
}
