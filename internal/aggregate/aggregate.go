// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate resolves a compound name into one merged CompoundRecord.
//
// A search runs the mandatory name lookup and 3D structure fetch in order,
// then fans out to four optional fetches (experimental properties, GHS
// classification, synonyms, description) and waits for all of them. Optional
// failures are logged and leave their fields empty; mandatory failures end
// the search in the NotFound or Failed state with a single user-facing notice.
//
// Only the latest search is current. Starting a new search cancels the
// previous one's context, and any result that still arrives for a superseded
// search is dropped by generation check.
package aggregate

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/moluxis/internal/extract"
	"github.com/pdiddy/moluxis/internal/pubchem"
	"github.com/pdiddy/moluxis/pkg/types"
)

// Source is the remote compound database. *pubchem.Client implements it.
type Source interface {
	LookupByName(ctx context.Context, name string) (pubchem.Compound, error)
	FetchStructure(ctx context.Context, cid int) (string, error)
	FetchExperimentalProperties(ctx context.Context, cid int) (*pubchem.Record, error)
	FetchSafetyClassification(ctx context.Context, cid int) (*pubchem.Record, error)
	FetchSynonyms(ctx context.Context, cid int) ([]string, error)
	FetchDescription(ctx context.Context, cid int) (string, error)
}

// User-facing notices for terminal failures.
const (
	NoticeNotFound    = "Could not find a molecule with that name."
	NoticeNoStructure = "No 3D structure available for this compound."
	NoticeNetwork     = "Network error. Please try again."
)

var (
	// ErrEmptyQuery is returned for blank queries; nothing is dispatched.
	ErrEmptyQuery = errors.New("aggregate: empty query")

	// ErrSuperseded is returned by a search whose result was discarded
	// because a newer search started.
	ErrSuperseded = errors.New("aggregate: search superseded by a newer one")
)

// Listener receives every state transition in order. Listeners run
// synchronously and must not start a search from within the callback.
type Listener func(Snapshot)

// Orchestrator owns the current search and the single current record.
// It is safe for concurrent use.
type Orchestrator struct {
	src         Source
	maxSynonyms int
	log         zerolog.Logger

	mu        sync.Mutex
	snap      Snapshot
	cancel    context.CancelFunc
	listeners []Listener
	pending   []Snapshot

	// notifyMu serializes delivery so listeners see transitions in order.
	notifyMu sync.Mutex
}

// New returns an idle Orchestrator querying src. Synonym lists are capped at
// cfg.MaxSynonyms (default 10).
func New(src Source, cfg types.PubChemConfig, log zerolog.Logger) *Orchestrator {
	maxSynonyms := cfg.MaxSynonyms
	if maxSynonyms <= 0 {
		maxSynonyms = types.DefaultMaxSynonyms
	}
	return &Orchestrator{
		src:         src,
		maxSynonyms: maxSynonyms,
		log:         log,
	}
}

// Subscribe registers l for state transitions.
func (o *Orchestrator) Subscribe(l Listener) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, l)
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Search runs a full search for query and publishes the result. It returns
// the record on success, ErrEmptyQuery for a blank query, ErrSuperseded if a
// newer search started meanwhile, or the mandatory call's error
// (pubchem.ErrNotFound, pubchem.ErrNoStructure, *pubchem.NetworkError).
func (o *Orchestrator) Search(ctx context.Context, query string) (*types.CompoundRecord, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, ErrEmptyQuery
	}

	ctx, gen := o.begin(ctx, term)
	log := o.log.With().
		Str("search_id", uuid.NewString()).
		Str("query", term).
		Uint64("generation", gen).
		Logger()
	ctx = log.WithContext(ctx)

	compound, err := o.src.LookupByName(ctx, term)
	if err != nil {
		return nil, o.fail(ctx, gen, err)
	}
	log.Debug().Int("cid", compound.CID).Msg("Compound resolved")
	if !o.isCurrent(gen) {
		return nil, ErrSuperseded
	}

	sdf, err := o.src.FetchStructure(ctx, compound.CID)
	if err != nil {
		return nil, o.fail(ctx, gen, err)
	}
	if !o.isCurrent(gen) {
		return nil, ErrSuperseded
	}

	rec := o.gather(ctx, term, compound, sdf)
	if !o.finish(gen, Snapshot{State: StateSuccess, Record: rec}) {
		return nil, ErrSuperseded
	}
	log.Info().Int("cid", rec.CID).Msg("Compound record published")
	return rec, nil
}

// begin enters the Searching state for a new generation, cancelling the
// previous search and discarding the previous record.
func (o *Orchestrator) begin(parent context.Context, term string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.cancel = cancel
	gen := o.snap.Generation + 1
	o.snap = Snapshot{State: StateSearching, Query: term, Generation: gen}
	o.pending = append(o.pending, o.snap)
	o.mu.Unlock()

	o.flush()
	return ctx, gen
}

// fail ends a search after a mandatory call failed.
func (o *Orchestrator) fail(ctx context.Context, gen uint64, err error) error {
	next := Snapshot{State: StateFailed, Err: err}
	switch {
	case errors.Is(err, pubchem.ErrNotFound):
		next.State = StateNotFound
		next.Notice = NoticeNotFound
	case errors.Is(err, pubchem.ErrNoStructure):
		next.Notice = NoticeNoStructure
	default:
		next.Notice = NoticeNetwork
	}

	if !o.finish(gen, next) {
		return ErrSuperseded
	}
	zerolog.Ctx(ctx).Info().Err(err).Str("state", next.State.String()).Msg("Search ended without a record")
	return err
}

// finish moves generation gen to a terminal state. It reports false, and
// changes nothing, if gen is no longer current.
func (o *Orchestrator) finish(gen uint64, next Snapshot) bool {
	o.mu.Lock()
	if o.snap.Generation != gen {
		o.mu.Unlock()
		return false
	}
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	next.Query = o.snap.Query
	next.Generation = gen
	o.snap = next
	o.pending = append(o.pending, next)
	o.mu.Unlock()

	o.flush()
	return true
}

func (o *Orchestrator) isCurrent(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap.Generation == gen
}

// flush delivers queued transitions in order. Listeners are called without
// holding mu, so they may read Snapshot.
func (o *Orchestrator) flush() {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()
	for {
		o.mu.Lock()
		if len(o.pending) == 0 {
			o.mu.Unlock()
			return
		}
		snap := o.pending[0]
		o.pending = o.pending[1:]
		listeners := slices.Clone(o.listeners)
		o.mu.Unlock()

		for _, l := range listeners {
			l(snap)
		}
	}
}

// gather runs the optional fetches concurrently, waits for all of them, and
// merges their results with the mandatory data. It never fails.
func (o *Orchestrator) gather(ctx context.Context, term string, compound pubchem.Compound, sdf string) *types.CompoundRecord {
	cid := compound.CID
	log := zerolog.Ctx(ctx)

	var (
		wg           sync.WaitGroup
		experimental extract.Experimental
		safety       types.SafetyInfo
		synonyms     []string
		description  = pubchem.NoDescription
	)

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fn()
			switch {
			case err == nil:
			case errors.Is(err, pubchem.ErrEmpty):
				log.Debug().Err(err).Str("fetch", name).Int("cid", cid).Msg("Optional section not available")
			case ctx.Err() != nil:
				log.Debug().Err(err).Str("fetch", name).Int("cid", cid).Msg("Optional fetch cancelled")
			default:
				log.Warn().Err(err).Str("fetch", name).Int("cid", cid).Msg("Optional fetch failed")
			}
		}()
	}

	run("experimental", func() error {
		rec, err := o.src.FetchExperimentalProperties(ctx, cid)
		if err != nil {
			return err
		}
		experimental = extract.ExperimentalProperties(rec)
		return nil
	})
	run("safety", func() error {
		rec, err := o.src.FetchSafetyClassification(ctx, cid)
		if err != nil {
			return err
		}
		safety = extract.Safety(rec)
		return nil
	})
	run("synonyms", func() error {
		s, err := o.src.FetchSynonyms(ctx, cid)
		if err != nil {
			return err
		}
		synonyms = s
		return nil
	})
	run("description", func() error {
		d, err := o.src.FetchDescription(ctx, cid)
		if err != nil {
			return err
		}
		if d != "" {
			description = d
		}
		return nil
	})

	wg.Wait()

	props := extract.Properties(compound.Props)
	experimental.MergeInto(&props)

	return &types.CompoundRecord{
		CID:             cid,
		Name:            term,
		Formula:         extract.Formula(compound.Props),
		MolecularWeight: extract.MolecularWeight(compound.Props),
		Synonyms:        capSynonyms(synonyms, o.maxSynonyms),
		Description:     description,
		SDF:             sdf,
		Properties:      props,
		Safety:          safety,
	}
}

// capSynonyms returns a copy of the first max synonyms, never nil.
func capSynonyms(synonyms []string, max int) []string {
	if len(synonyms) > max {
		synonyms = synonyms[:max]
	}
	out := make([]string, len(synonyms))
	copy(out, synonyms)
	return out
}
