// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suggest keeps the autocomplete list for the search box.
package suggest

import (
	"context"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/moluxis/pkg/types"
)

// Autocompleter returns name completions for a prefix. *pubchem.Client
// implements it.
type Autocompleter interface {
	Autocomplete(ctx context.Context, prefix string) ([]string, error)
}

// Searcher runs a full compound search. *aggregate.Orchestrator implements it.
type Searcher interface {
	Search(ctx context.Context, query string) (*types.CompoundRecord, error)
}

// State is a copy of the fetcher's visible state.
type State struct {
	Text        string
	Suggestions []string
	Visible     bool
}

// Fetcher tracks the search box text and its suggestion list. It is safe
// for concurrent use; a response is applied only if no newer request was
// issued after it.
type Fetcher struct {
	ac        Autocompleter
	searcher  Searcher
	minLength int
	log       zerolog.Logger

	mu    sync.Mutex
	state State
	seq   uint64
}

// New returns a Fetcher. Requests are sent only for text of at least
// cfg.MinLength runes (default 3).
func New(ac Autocompleter, searcher Searcher, cfg types.SuggestConfig, log zerolog.Logger) *Fetcher {
	minLength := cfg.MinLength
	if minLength <= 0 {
		minLength = types.DefaultSuggestMinLength
	}
	return &Fetcher{ac: ac, searcher: searcher, minLength: minLength, log: log}
}

// TextChanged records text and refreshes the suggestion list. Short text
// clears the list without a request. On success the list is replaced and
// the panel revealed; on failure the error is logged, the previous list is
// kept, and the error returned.
func (f *Fetcher) TextChanged(ctx context.Context, text string) error {
	f.mu.Lock()
	f.state.Text = text
	f.seq++
	seq := f.seq
	if utf8.RuneCountInString(text) < f.minLength {
		f.state.Suggestions = nil
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	items, err := f.ac.Autocomplete(ctx, text)
	if err != nil {
		f.log.Debug().Err(err).Str("prefix", text).Msg("Autocomplete error")
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		f.log.Debug().Str("prefix", text).Msg("Dropping stale suggestions")
		return nil
	}
	if items == nil {
		items = []string{}
	}
	f.state.Suggestions = items
	f.state.Visible = true
	return nil
}

// Select puts item in the search box, hides the panel and runs a search
// for it. Responses to earlier requests are ignored afterwards.
func (f *Fetcher) Select(ctx context.Context, item string) (*types.CompoundRecord, error) {
	f.mu.Lock()
	f.state.Text = item
	f.state.Visible = false
	f.seq++
	f.mu.Unlock()

	return f.searcher.Search(ctx, item)
}

// Dismiss hides the suggestion panel.
func (f *Fetcher) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Visible = false
}

// Reveal shows the suggestion panel again, as when the search box regains
// focus.
func (f *Fetcher) Reveal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Visible = true
}

// Snapshot returns a copy of the current state.
func (f *Fetcher) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	s.Suggestions = slices.Clone(s.Suggestions)
	return s
}

// Showing reports whether the panel should be drawn: it is visible and
// has at least one entry.
func (s State) Showing() bool {
	return s.Visible && len(s.Suggestions) > 0
}
