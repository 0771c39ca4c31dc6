package parse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dusk-indust/linkgraph/internal/linkage"
)

var (
	// ErrInputTooLong means the parser refused the phrase as too long.
	ErrInputTooLong = errors.New("input too long")

	// ErrParseTimeout means no linkage was found, even with null links
	// allowed. Usually the parse ran out of time.
	ErrParseTimeout = errors.New("parse timeout")

	// ErrNoDictionary means a request named no dictionary and the policy
	// has no registry to open one from.
	ErrNoDictionary = errors.New("no dictionary")
)

// Settings holds the policy constants.
type Settings struct {
	// DefaultLinkages is the number of linkages returned when a request
	// does not ask for a count.
	DefaultLinkages int
	// LinkageCeiling bounds both the search and the requested count.
	LinkageCeiling int
	// MaxParseTime is the per-search time limit handed to the parser.
	MaxParseTime time.Duration
	// Language is the dictionary used when a request names none.
	Language string
}

// DefaultSettings returns the standard policy constants.
func DefaultSettings() Settings {
	return Settings{
		DefaultLinkages: 4,
		LinkageCeiling:  15000,
		MaxParseTime:    150 * time.Second,
		Language:        "en",
	}
}

// Request asks for the linkages of one phrase.
type Request struct {
	Phrase string

	// Dictionary to parse with. When nil, Language is looked up in the
	// policy's registry (Settings.Language when empty).
	Dictionary Dictionary
	Language   string

	Mode    linkage.Mode
	Minimal bool

	// Count is the number of linkages wanted; 0 means the default.
	Count int

	// Aggregate folds the disjuncts of every kept linkage into one
	// frequency set instead of returning per-linkage views. Only valid
	// with ModeDisjuncts.
	Aggregate bool
}

func (r Request) validate() error {
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: unknown output mode %d", linkage.ErrInvalidArgument, int(r.Mode))
	}
	if r.Count < 0 {
		return fmt.Errorf("%w: negative linkage count %d", linkage.ErrInvalidArgument, r.Count)
	}
	if r.Aggregate && r.Mode != linkage.ModeDisjuncts {
		return fmt.Errorf("%w: aggregation needs disjuncts mode, got %s", linkage.ErrInvalidArgument, r.Mode)
	}
	return nil
}

// Result is the outcome of one Parse call.
type Result struct {
	Phrase string       `json:"phrase"`
	Mode   linkage.Mode `json:"mode"`

	// SentenceID identifies the sentence in full-graph mode.
	SentenceID string `json:"sentenceId,omitempty"`

	// Views holds one view per kept linkage, in parser order.
	Views []linkage.View `json:"views,omitempty"`

	// Frequencies is set instead of Views for aggregated requests.
	Frequencies []linkage.Occurrence `json:"frequencies,omitempty"`

	// Skipped counts linkages dropped for post-processing violations.
	Skipped int `json:"skipped,omitempty"`

	// Relaxed reports that the linkages were found with null links allowed.
	Relaxed bool `json:"relaxed,omitempty"`
}

// Aggregated reports whether the result is a frequency set.
func (r *Result) Aggregated() bool { return r.Frequencies != nil }

// Policy drives the external parser for single phrases.
type Policy struct {
	parser   Parser
	dicts    *Dictionaries
	settings Settings
	logger   *log.Logger

	// newID allocates sentence and instance identifiers.
	newID func() string
}

// Option configures a Policy.
type Option func(*Policy)

// WithDictionaries lets requests name a dictionary by language.
func WithDictionaries(d *Dictionaries) Option {
	return func(p *Policy) { p.dicts = d }
}

// WithSettings overrides the default policy constants. Zero fields keep
// their defaults.
func WithSettings(s Settings) Option {
	return func(p *Policy) {
		if s.DefaultLinkages > 0 {
			p.settings.DefaultLinkages = s.DefaultLinkages
		}
		if s.LinkageCeiling > 0 {
			p.settings.LinkageCeiling = s.LinkageCeiling
		}
		if s.MaxParseTime > 0 {
			p.settings.MaxParseTime = s.MaxParseTime
		}
		if s.Language != "" {
			p.settings.Language = s.Language
		}
	}
}

// WithLogger sets the logger used for policy events and parser diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(p *Policy) { p.logger = l }
}

// WithIDs replaces the identifier generator. Tests use it for stable output.
func WithIDs(newID func() string) Option {
	return func(p *Policy) { p.newID = newID }
}

// NewPolicy returns a policy over parser.
func NewPolicy(parser Parser, opts ...Option) *Policy {
	p := &Policy{
		parser:   parser,
		settings: DefaultSettings(),
		logger:   log.Default(),
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Settings returns the effective policy constants.
func (p *Policy) Settings() Settings { return p.settings }

// wanted is the number of linkages to keep for a request.
func (p *Policy) wanted(count int) int {
	if count == 0 {
		count = p.settings.DefaultLinkages
	}
	return min(count, p.settings.LinkageCeiling)
}

// phase of the linkage search.
type phase int

const (
	phaseInitial phase = iota // no null links
	phaseRelaxed              // null links allowed up to the sentence length
	phaseDone
)

// searchResult is what the search phases settle on.
type searchResult struct {
	count   int
	relaxed bool
	empty   bool // split failure, no parses at all
}

// Parse runs the search policy for one phrase and projects the kept
// linkages. The sentence is released before Parse returns, whatever the
// outcome.
func (p *Policy) Parse(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	dict, err := p.dictionary(req)
	if err != nil {
		return nil, err
	}

	logger := p.logger.With("phrase", req.Phrase)
	sent, err := p.parser.NewSentence(req.Phrase, dict, LogDiagnostics(logger))
	if err != nil {
		return nil, fmt.Errorf("create sentence: %w", err)
	}
	defer func() {
		if cerr := sent.Close(); cerr != nil {
			logger.Warn("close sentence", "err", cerr)
		}
	}()

	sr, err := p.search(ctx, sent)
	if err != nil {
		return nil, err
	}

	res := &Result{Phrase: req.Phrase, Mode: req.Mode, Relaxed: sr.relaxed}
	if req.Mode == linkage.ModeFull {
		res.SentenceID = "sentence@" + p.newID()
	}
	if req.Aggregate {
		res.Frequencies = []linkage.Occurrence{}
	}
	if sr.empty {
		logger.Debug("sentence split failed, no linkages")
		return res, nil
	}

	if err := p.collect(sent, req, res); err != nil {
		return nil, err
	}
	logger.Debug("parsed", "found", sr.count, "kept", len(res.Views), "skipped", res.Skipped)
	return res, nil
}

func (p *Policy) dictionary(req Request) (Dictionary, error) {
	if req.Dictionary != nil {
		return req.Dictionary, nil
	}
	if p.dicts == nil {
		return nil, ErrNoDictionary
	}
	lang := req.Language
	if lang == "" {
		lang = p.settings.Language
	}
	return p.dicts.Get(lang)
}

// search runs the initial search and, when nothing parsed without running
// out of resources, one relaxed search with null links allowed.
func (p *Policy) search(ctx context.Context, sent Sentence) (searchResult, error) {
	opts := SearchOptions{
		LinkageLimit:   p.settings.LinkageCeiling,
		MaxParseTime:   p.settings.MaxParseTime,
		RepeatableRand: true,
	}

	var sr searchResult
	for ph := phaseInitial; ph != phaseDone; {
		if err := ctx.Err(); err != nil {
			return searchResult{}, err
		}
		out, err := sent.Search(opts)
		if err != nil {
			return searchResult{}, fmt.Errorf("search: %w", err)
		}
		sr.count = out.Count

		switch ph {
		case phaseInitial:
			switch {
			case out.Count == CountTooLong:
				return searchResult{}, ErrInputTooLong
			case out.Count == CountSplitFailure:
				sr.empty = true
				ph = phaseDone
			case out.Count == 0 && !out.ResourcesExhausted:
				opts.MinNullCount = 1
				opts.MaxNullCount = sent.Length()
				sr.relaxed = true
				ph = phaseRelaxed
			default:
				ph = phaseDone
			}
		case phaseRelaxed:
			if out.Count == CountTooLong {
				return searchResult{}, ErrInputTooLong
			}
			ph = phaseDone
		}
	}

	if !sr.empty && sr.count <= 0 {
		return searchResult{}, ErrParseTimeout
	}
	return sr, nil
}

// collect walks the sentence's linkages in order, skipping those with
// violations, until the wanted number has been kept.
func (p *Policy) collect(sent Sentence, req Request, res *Result) error {
	proj := &linkage.Projector{
		Phrase:     req.Phrase,
		SentenceID: res.SentenceID,
		Minimal:    req.Minimal,
		NewID:      p.newID,
	}
	var freq linkage.FrequencySet

	want := p.wanted(req.Count)
	kept := 0
	for i, n := 0, sent.NumLinkages(); i < n && kept < want; i++ {
		if sent.NumViolations(i) > 0 {
			res.Skipped++
			continue
		}
		lk, err := sent.Linkage(i)
		if err != nil {
			return fmt.Errorf("linkage %d: %w", i, err)
		}
		v, err := proj.Project(lk, req.Mode)
		if err != nil {
			return fmt.Errorf("linkage %d: %w", i, err)
		}
		kept++

		if req.Aggregate {
			freq.AccumulateView(v)
			continue
		}
		res.Views = append(res.Views, v)
	}

	if req.Aggregate {
		res.Frequencies = freq.Occurrences()
	}
	return nil
}
