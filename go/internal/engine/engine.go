// Package engine keeps the match state of every open match view current.
//
// Each match id gets exactly one Session no matter how many consumers open
// it. The session pins the kickoff through the schedule resolver on first
// use and recomputes the clock, score and countdown on each tick of its own
// clock. When the last consumer releases it, the clock stops and the pinned
// kickoff is dropped.
package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/schedule"
)

var (
	ErrEngineClosed = errors.New("engine closed")
	ErrEmptyMatchID = errors.New("match id is required")
	ErrNoTimeline   = errors.New("timeline is required")
)

// Observer is told about every snapshot that differs from the previous
// one beyond the running clock. It is called on the session goroutine and
// must not block.
type Observer interface {
	Observe(snap *Snapshot)
}

// Config tunes the engine.
type Config struct {
	TickInterval time.Duration
	Observer     Observer
}

// DefaultConfig returns the 1 Hz configuration.
func DefaultConfig() Config {
	return Config{TickInterval: DefaultTickInterval}
}

// Engine owns all open sessions.
type Engine struct {
	clock    clockwork.Clock
	resolver *schedule.Resolver
	interval time.Duration
	observer Observer

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewEngine creates an engine. In production pass clockwork.NewRealClock(),
// in tests a FakeClock.
func NewEngine(clock clockwork.Clock, resolver *schedule.Resolver, cfg Config) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if resolver == nil {
		resolver = schedule.NewResolver()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		clock:      clock,
		resolver:   resolver,
		interval:   cfg.TickInterval,
		observer:   cfg.Observer,
		baseCtx:    ctx,
		baseCancel: cancel,
		sessions:   make(map[string]*Session),
	}
}

// Open returns the session for spec.MatchID, starting it if this is the
// first consumer. Every Open must be paired with a Release. The returned
// session already holds its first snapshot.
func (e *Engine) Open(ctx context.Context, spec MatchSpec) (*Session, error) {
	if spec.MatchID == "" {
		return nil, ErrEmptyMatchID
	}
	if spec.Timeline == nil {
		return nil, ErrNoTimeline
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrEngineClosed
	}
	if s, ok := e.sessions[spec.MatchID]; ok {
		s.refs++
		e.mu.Unlock()

		select {
		case <-s.ready:
			return s, nil
		case <-ctx.Done():
			e.Release(spec.MatchID)
			return nil, ctx.Err()
		}
	}

	s := &Session{
		id:      uuid.New().String()[:8],
		matchID: spec.MatchID,
		spec:    spec,
		engine:  e,
		refs:    1,
		subs:    make(map[uint64]chan *Snapshot),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	e.sessions[spec.MatchID] = s
	e.mu.Unlock()

	s.start(ctx)

	log.Info().
		Str("match_id", s.matchID).
		Str("session_id", s.id).
		Str("mode", s.Mode()).
		Bool("resolved", s.Snapshot().Resolved).
		Msg("match session opened")
	return s, nil
}

// Release drops one reference to a match. The last release stops the
// session's clock and frees its pinned kickoff.
func (e *Engine) Release(matchID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[matchID]
	if !ok {
		return
	}
	s.refs--
	if s.refs > 0 {
		return
	}

	delete(e.sessions, matchID)
	e.teardown(s)
}

// teardown must be called with e.mu held so that a new session for the same
// match cannot pin a kickoff before the old cell is released.
func (e *Engine) teardown(s *Session) {
	s.stop()
	e.resolver.Release(s.matchID)

	log.Info().
		Str("match_id", s.matchID).
		Str("session_id", s.id).
		Msg("match session closed")
}

// Get returns the open session for matchID without taking a reference.
func (e *Engine) Get(matchID string) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[matchID]
	return s, ok
}

// Sessions lists the ids of all open matches.
func (e *Engine) Sessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.sessions))
	for id := range e.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Peek resolves a kickoff without opening a view. A kickoff pinned by an
// open view wins so that a one-shot answer agrees with the live one.
func (e *Engine) Peek(ctx context.Context, spec MatchSpec) schedule.Resolution {
	if res, ok := e.resolver.Lookup(spec.MatchID); ok {
		return res
	}
	kickoff, kind, ok := schedule.First(ctx, spec.Sources)
	if !ok {
		return schedule.Resolution{MatchID: spec.MatchID}
	}
	return schedule.Resolution{MatchID: spec.MatchID, Kickoff: kickoff, Source: kind, Resolved: true}
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Close stops every session. Open fails afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true

	for id, s := range e.sessions {
		delete(e.sessions, id)
		e.teardown(s)
	}
	e.baseCancel()
}
