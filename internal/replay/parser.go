package replay

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

var (
	// ErrUnknownLanguage means no corpus is loaded for a dictionary language.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrClosed reports use of a closed dictionary or sentence.
	ErrClosed = errors.New("closed")
)

// Compile-time interface checks.
var (
	_ parse.Parser     = (*Parser)(nil)
	_ parse.Dictionary = (*Dictionary)(nil)
	_ parse.Sentence   = (*Sentence)(nil)
)

// Parser answers parse requests from recorded corpora, one per language.
type Parser struct {
	mu      sync.RWMutex
	corpora map[string]*Corpus
}

// NewParser returns a parser over the given corpora.
func NewParser(corpora ...*Corpus) *Parser {
	p := &Parser{corpora: make(map[string]*Corpus, len(corpora))}
	for _, c := range corpora {
		p.Add(c)
	}
	return p
}

// Add registers a corpus, replacing any corpus for the same language.
func (p *Parser) Add(c *Corpus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.corpora[c.Language] = c
}

// Languages lists the languages with a loaded corpus.
func (p *Parser) Languages() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.corpora))
	for lang := range p.corpora {
		out = append(out, lang)
	}
	return out
}

// OpenDictionary opens the corpus recorded for lang.
func (p *Parser) OpenDictionary(lang string, diag parse.DiagnosticHandler) (parse.Dictionary, error) {
	p.mu.RLock()
	c, ok := p.corpora[lang]
	p.mu.RUnlock()
	if !ok {
		if diag != nil {
			diag(parse.Diagnostic{Severity: parse.SeverityError, Text: "No dictionary for language " + lang + "\n"})
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return &Dictionary{corpus: c}, nil
}

// NewSentence prepares phrase against dict, which must come from
// OpenDictionary of a replay Parser.
func (p *Parser) NewSentence(phrase string, dict parse.Dictionary, diag parse.DiagnosticHandler) (parse.Sentence, error) {
	d, ok := dict.(*Dictionary)
	if !ok {
		return nil, fmt.Errorf("replay: foreign dictionary %T", dict)
	}
	if d.isClosed() {
		return nil, fmt.Errorf("dictionary %s: %w", d.Language(), ErrClosed)
	}
	if diag == nil {
		diag = func(parse.Diagnostic) {}
	}

	e, ok := d.corpus.Lookup(phrase)
	if !ok {
		e = unrecorded(phrase)
	}
	return &Sentence{entry: e, diag: diag}, nil
}

// unrecorded is the entry used for phrases missing from the corpus: a
// whitespace-only phrase cannot be split, anything else has no linkages.
func unrecorded(phrase string) *Entry {
	e := &Entry{Phrase: phrase, Status: StatusOK}
	if strings.TrimSpace(phrase) == "" {
		e.Status = StatusSplitFailure
	}
	return e
}

// Dictionary is an opened corpus.
type Dictionary struct {
	corpus *Corpus

	mu     sync.Mutex
	closed bool
}

func (d *Dictionary) Language() string { return d.corpus.Language }

func (d *Dictionary) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *Dictionary) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Sentence replays one corpus entry. It is not safe for concurrent use.
type Sentence struct {
	entry    *Entry
	diag     parse.DiagnosticHandler
	selected []*Linkage
	closed   bool
}

func (s *Sentence) Length() int { return s.entry.length() }

// Search replays the entry's diagnostics and selects the recorded linkages
// whose null count lies within the requested range.
func (s *Sentence) Search(opts parse.SearchOptions) (parse.SearchOutcome, error) {
	if s.closed {
		return parse.SearchOutcome{}, fmt.Errorf("sentence: %w", ErrClosed)
	}
	for _, d := range s.entry.Diagnostics {
		s.diag(parse.Diagnostic{Severity: parse.ParseSeverity(d.Severity), Text: d.Text})
	}

	s.selected = s.selected[:0]
	switch {
	case s.entry.Status == StatusTooLong:
		return parse.SearchOutcome{Count: parse.CountTooLong}, nil
	case s.entry.Status == StatusSplitFailure:
		return parse.SearchOutcome{Count: parse.CountSplitFailure}, nil
	case s.entry.Exhausted:
		return parse.SearchOutcome{ResourcesExhausted: true}, nil
	}

	for i := range s.entry.Linkages {
		rec := &s.entry.Linkages[i]
		if rec.Nulls < opts.MinNullCount || rec.Nulls > opts.MaxNullCount {
			continue
		}
		if opts.LinkageLimit > 0 && len(s.selected) == opts.LinkageLimit {
			break
		}
		s.selected = append(s.selected, rec)
	}
	return parse.SearchOutcome{Count: len(s.selected)}, nil
}

func (s *Sentence) NumLinkages() int { return len(s.selected) }

func (s *Sentence) NumViolations(i int) int {
	if i < 0 || i >= len(s.selected) {
		return 0
	}
	return s.selected[i].Violations
}

// Linkage returns a copy of selected linkage i.
func (s *Sentence) Linkage(i int) (*linkage.Linkage, error) {
	if s.closed {
		return nil, fmt.Errorf("sentence: %w", ErrClosed)
	}
	if i < 0 || i >= len(s.selected) {
		return nil, fmt.Errorf("%w: linkage %d of %d", linkage.ErrInvalidArgument, i, len(s.selected))
	}
	rec := s.selected[i]
	return &linkage.Linkage{
		Index: i,
		Words: append([]linkage.Word(nil), rec.Words...),
		Links: append([]linkage.Link(nil), rec.Links...),
	}, nil
}

func (s *Sentence) Close() error {
	s.closed = true
	s.selected = nil
	return nil
}
