package replay

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

// Tests run from internal/replay/, so the corpus is two levels up.
var corpusPath = filepath.Join("..", "..", "testdata", "corpus", "en.yml")

func loadCorpus(t *testing.T) *Corpus {
	t.Helper()
	c, err := LoadFile(corpusPath)
	require.NoError(t, err)
	return c
}

func openSentence(t *testing.T, p *Parser, phrase string, diag parse.DiagnosticHandler) parse.Sentence {
	t.Helper()
	d, err := p.OpenDictionary("en", nil)
	require.NoError(t, err)
	s, err := p.NewSentence(phrase, d, diag)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strict() parse.SearchOptions { return parse.SearchOptions{LinkageLimit: 100} }

// ---------------------------------------------------------------------------
// Corpus
// ---------------------------------------------------------------------------

func TestLoadFile(t *testing.T) {
	c := loadCorpus(t)
	assert.Equal(t, "en", c.Language)
	assert.Contains(t, c.Phrases(), "this is a test")

	e, ok := c.Lookup("this is a test")
	require.True(t, ok)
	assert.Equal(t, StatusOK, e.Status)
	assert.Len(t, e.Linkages, 3)
	assert.Equal(t, 1, e.Linkages[1].Violations)
	assert.Equal(t, "Ds**c- Os-", e.Linkages[0].Words[4].Disjunct)

	_, ok = c.Lookup("not recorded")
	assert.False(t, ok)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"no language", "sentences: []"},
		{"unknown field", "language: en\nbogus: 1"},
		{"bad status", "language: en\nsentences:\n  - phrase: x\n    status: maybe"},
		{"duplicate phrase", "language: en\nsentences:\n  - phrase: x\n  - phrase: x"},
		{"dangling link", `language: en
sentences:
  - phrase: x
    linkages:
      - words: [{text: x, start: 0, end: 1}]
        links: [{left: 0, right: 3, label: X}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidCorpus)
		})
	}
}

// ---------------------------------------------------------------------------
// Parser
// ---------------------------------------------------------------------------

func TestParser_UnknownLanguage(t *testing.T) {
	p := NewParser(loadCorpus(t))

	var got []parse.Diagnostic
	_, err := p.OpenDictionary("xx", func(d parse.Diagnostic) { got = append(got, d) })
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	require.Len(t, got, 1)
	assert.Equal(t, parse.SeverityError, got[0].Severity)
	assert.Equal(t, []string{"en"}, p.Languages())
}

func TestParser_ClosedDictionary(t *testing.T) {
	p := NewParser(loadCorpus(t))
	d, err := p.OpenDictionary("en", nil)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	_, err = p.NewSentence("this is a test", d, nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSentence_NullCountRange(t *testing.T) {
	p := NewParser(loadCorpus(t))
	s := openSentence(t, p, "dog cat fish", nil)

	out, err := s.Search(strict())
	require.NoError(t, err)
	assert.Equal(t, parse.SearchOutcome{}, out, "nothing parses without null links")
	assert.Zero(t, s.NumLinkages())

	out, err = s.Search(parse.SearchOptions{LinkageLimit: 100, MinNullCount: 1, MaxNullCount: s.Length()})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	lk, err := s.Linkage(0)
	require.NoError(t, err)
	assert.Equal(t, "[dog]", lk.Words[1].Text)
	assert.Equal(t, 5, s.Length())
}

func TestSentence_LinkageLimit(t *testing.T) {
	p := NewParser(loadCorpus(t))
	s := openSentence(t, p, "this is a test", nil)

	out, err := s.Search(parse.SearchOptions{LinkageLimit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 0, s.NumViolations(0))
	assert.Equal(t, 1, s.NumViolations(1))
}

func TestSentence_Statuses(t *testing.T) {
	p := NewParser(loadCorpus(t))

	tests := []struct {
		phrase string
		want   parse.SearchOutcome
	}{
		{"this sentence is far too long for the parser to accept", parse.SearchOutcome{Count: parse.CountTooLong}},
		{"colorless green ideas sleep furiously", parse.SearchOutcome{ResourcesExhausted: true}},
		{"  \t ", parse.SearchOutcome{Count: parse.CountSplitFailure}},
		{"never recorded", parse.SearchOutcome{}},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			out, err := openSentence(t, p, tt.phrase, nil).Search(strict())
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSentence_ReplaysDiagnostics(t *testing.T) {
	p := NewParser(loadCorpus(t))

	var got []parse.Diagnostic
	s := openSentence(t, p, "colorless green ideas sleep furiously", func(d parse.Diagnostic) {
		got = append(got, d)
	})
	_, err := s.Search(strict())
	require.NoError(t, err)
	assert.Equal(t, []parse.Diagnostic{{Severity: parse.SeverityWarn, Text: "Timer is expired!\n"}}, got)
}

func TestSentence_LinkageIsCopy(t *testing.T) {
	p := NewParser(loadCorpus(t))
	s := openSentence(t, p, "the dog barks", nil)
	_, err := s.Search(strict())
	require.NoError(t, err)

	lk, err := s.Linkage(0)
	require.NoError(t, err)
	lk.Words[0].Text = "changed"

	again, err := s.Linkage(0)
	require.NoError(t, err)
	assert.Equal(t, "LEFT-WALL", again.Words[0].Text)

	_, err = s.Linkage(5)
	assert.ErrorIs(t, err, linkage.ErrInvalidArgument)
}

func TestSentence_Closed(t *testing.T) {
	p := NewParser(loadCorpus(t))
	s := openSentence(t, p, "the dog barks", nil)
	require.NoError(t, s.Close())

	_, err := s.Search(strict())
	assert.ErrorIs(t, err, ErrClosed)
}
