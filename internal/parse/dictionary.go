package parse

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Dictionaries opens parser dictionaries lazily and shares them between
// requests. Opening and closing a dictionary is not thread-safe in the
// parser, so both happen under one lock.
type Dictionaries struct {
	parser Parser
	logger *log.Logger

	mu    sync.Mutex // serializes open and close
	dicts sync.Map   // lang -> Dictionary
}

// NewDictionaries returns a registry that opens dictionaries with parser.
func NewDictionaries(parser Parser, logger *log.Logger) *Dictionaries {
	if logger == nil {
		logger = log.Default()
	}
	return &Dictionaries{parser: parser, logger: logger}
}

// Get returns the dictionary for lang, opening it on first use.
func (r *Dictionaries) Get(lang string) (Dictionary, error) {
	if d, ok := r.dicts.Load(lang); ok {
		return d.(Dictionary), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Check again, this time under the lock.
	if d, ok := r.dicts.Load(lang); ok {
		return d.(Dictionary), nil
	}

	d, err := r.parser.OpenDictionary(lang, LogDiagnostics(r.logger.With("dict", lang)))
	if err != nil {
		return nil, fmt.Errorf("open dictionary %q: %w", lang, err)
	}
	if d == nil {
		return nil, fmt.Errorf("open dictionary %q: parser returned no dictionary", lang)
	}
	r.dicts.Store(lang, d)
	r.logger.Debug("dictionary opened", "lang", lang)
	return d, nil
}

// Release closes the dictionary for lang if it is open. The next Get opens
// it again.
func (r *Dictionaries) Release(lang string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dicts.LoadAndDelete(lang)
	if !ok {
		return nil
	}
	return d.(Dictionary).Close()
}

// Close closes every open dictionary.
func (r *Dictionaries) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	r.dicts.Range(func(k, v any) bool {
		r.dicts.Delete(k)
		if err := v.(Dictionary).Close(); err != nil {
			errs = append(errs, fmt.Errorf("close dictionary %v: %w", k, err))
		}
		return true
	})
	return errors.Join(errs...)
}
