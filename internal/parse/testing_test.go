package parse

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dusk-indust/linkgraph/internal/linkage"
)

// --- Fake parser ---

type fakeDict struct {
	lang   string
	mu     sync.Mutex
	closed int
}

func (d *fakeDict) Language() string { return d.lang }

func (d *fakeDict) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed++
	return nil
}

// script describes how a fake sentence behaves.
type script struct {
	length     int
	outcomes   []SearchOutcome // one per Search call
	linkages   []*linkage.Linkage
	violations map[int]int
	diags      []Diagnostic // emitted on every Search
	linkErr    error
}

type fakeParser struct {
	mu      sync.Mutex
	scripts map[string]script
	opened  map[string]int
	last    *fakeSentence
	openErr error
}

func newFakeParser() *fakeParser {
	return &fakeParser{scripts: make(map[string]script), opened: make(map[string]int)}
}

func (p *fakeParser) add(phrase string, s script) { p.scripts[phrase] = s }

func (p *fakeParser) OpenDictionary(lang string, _ DiagnosticHandler) (Dictionary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.openErr != nil {
		return nil, p.openErr
	}
	p.opened[lang]++
	return &fakeDict{lang: lang}, nil
}

func (p *fakeParser) NewSentence(phrase string, _ Dictionary, diag DiagnosticHandler) (Sentence, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.scripts[phrase]
	if !ok {
		return nil, fmt.Errorf("no script for %q", phrase)
	}
	fs := &fakeSentence{script: s, diag: diag}
	p.last = fs
	return fs, nil
}

type fakeSentence struct {
	script   script
	diag     DiagnosticHandler
	searches []SearchOptions
	closed   bool
}

func (s *fakeSentence) Length() int { return s.script.length }

func (s *fakeSentence) Search(opts SearchOptions) (SearchOutcome, error) {
	n := len(s.searches)
	s.searches = append(s.searches, opts)
	for _, d := range s.script.diags {
		s.diag(d)
	}
	if n >= len(s.script.outcomes) {
		return SearchOutcome{}, errors.New("unexpected search")
	}
	return s.script.outcomes[n], nil
}

func (s *fakeSentence) NumLinkages() int { return len(s.script.linkages) }

func (s *fakeSentence) NumViolations(i int) int { return s.script.violations[i] }

func (s *fakeSentence) Linkage(i int) (*linkage.Linkage, error) {
	if s.script.linkErr != nil {
		return nil, s.script.linkErr
	}
	return s.script.linkages[i], nil
}

func (s *fakeSentence) Close() error {
	s.closed = true
	return nil
}

// --- Fixtures ---

const twoWords = "a b"

// pairLinkage is a two-word linkage of twoWords with one X link.
func pairLinkage(index int) *linkage.Linkage {
	return &linkage.Linkage{
		Index: index,
		Words: []linkage.Word{
			{Text: "a", ByteStart: 0, ByteEnd: 1, Disjunct: "X+"},
			{Text: "b", ByteStart: 2, ByteEnd: 3, Disjunct: "X-"},
		},
		Links: []linkage.Link{{Left: 0, Right: 1, Label: "X", LeftLabel: "X", RightLabel: "X"}},
	}
}

func pairLinkages(n int) []*linkage.Linkage {
	out := make([]*linkage.Linkage, n)
	for i := range out {
		out[i] = pairLinkage(i)
	}
	return out
}

// found is a script whose first search finds n linkages.
func found(n int) script {
	return script{
		length:   2,
		outcomes: []SearchOutcome{{Count: n}},
		linkages: pairLinkages(n),
	}
}

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id%d", n)
	}
}
