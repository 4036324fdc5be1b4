// Package schedule resolves and pins the kickoff instant of each match.
//
// The first successful resolution for a match id is written into a per-match
// cell and returned unchanged by every later call, even if a better source
// becomes available, so the countdown and match clock never jump mid-session.
package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Resolution is the outcome of resolving a match's kickoff.
type Resolution struct {
	MatchID  string
	Kickoff  time.Time
	Source   SourceKind
	Resolved bool
}

type cell struct {
	kickoff time.Time
	source  SourceKind
}

// Resolver is a keyed arena of write-once kickoff cells.
type Resolver struct {
	mu    sync.Mutex
	cells map[string]*cell
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{cells: make(map[string]*cell)}
}

// Resolve returns the pinned kickoff for matchID, resolving it from sources
// on first use. Sources are tried in precedence order regardless of the
// order they are passed in. When nothing resolves the result is unresolved
// and nothing is cached, so a later call may try again.
func (r *Resolver) Resolve(ctx context.Context, matchID string, sources []Source) Resolution {
	if res, ok := r.Lookup(matchID); ok {
		return res
	}

	if kickoff, kind, ok := First(ctx, sources); ok {
		return r.store(matchID, kickoff, kind)
	}

	log.Debug().Str("match_id", matchID).Int("candidates", len(sources)).Msg("kickoff unresolved")
	return Resolution{MatchID: matchID}
}

// First returns the kickoff from the highest-precedence source that yields
// one, without pinning it.
func First(ctx context.Context, sources []Source) (time.Time, SourceKind, bool) {
	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind < ordered[j].Kind
	})

	for _, src := range ordered {
		if src.Lookup == nil {
			continue
		}
		if kickoff, ok := src.Lookup(ctx); ok {
			return kickoff, src.Kind, true
		}
	}
	return time.Time{}, 0, false
}

// store writes the cell unless another caller got there first, in which case
// the existing value wins.
func (r *Resolver) store(matchID string, kickoff time.Time, kind SourceKind) Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.cells[matchID]
	if !exists {
		c = &cell{kickoff: kickoff, source: kind}
		r.cells[matchID] = c
		log.Info().
			Str("match_id", matchID).
			Time("kickoff", kickoff).
			Str("source", kind.String()).
			Msg("kickoff resolved")
	}
	return Resolution{MatchID: matchID, Kickoff: c.kickoff, Source: c.source, Resolved: true}
}

// Lookup returns the pinned kickoff without resolving.
func (r *Resolver) Lookup(matchID string) (Resolution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cells[matchID]
	if !ok {
		return Resolution{MatchID: matchID}, false
	}
	return Resolution{MatchID: matchID, Kickoff: c.kickoff, Source: c.source, Resolved: true}, true
}

// Release drops the cell for matchID when its view is torn down.
func (r *Resolver) Release(matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cells, matchID)
}

// Len returns the number of pinned matches.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cells)
}
