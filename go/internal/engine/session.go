package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/schedule"
)

// MatchSpec describes a match view to open.
type MatchSpec struct {
	MatchID  string
	Sources  []schedule.Source
	Timeline Timeline
}

// Session is the live state of one open match view. It owns its own clock
// and recomputes its snapshot once per tick on a single goroutine.
type Session struct {
	id      string
	matchID string
	spec    MatchSpec
	engine  *Engine

	// refs is guarded by engine.mu.
	refs int

	snap atomic.Pointer[Snapshot]

	subsMu  sync.Mutex
	subs    map[uint64]chan *Snapshot
	nextSub uint64
	closed  bool

	cancel context.CancelFunc
	ready  chan struct{}
	done   chan struct{}
	feeds  sync.WaitGroup
}

// MatchID returns the match this session shows.
func (s *Session) MatchID() string {
	return s.matchID
}

// Mode returns "mock" or "live".
func (s *Session) Mode() string {
	return s.spec.Timeline.Mode()
}

// Snapshot returns the snapshot of the latest tick.
func (s *Session) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Subscribe delivers every subsequent snapshot on the returned channel. A
// subscriber that falls behind misses ticks rather than stalling the clock.
// The channel is closed when the session ends or cancel is called.
func (s *Session) Subscribe(buffer int) (<-chan *Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan *Snapshot, buffer)

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	return ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// start computes the first snapshot with the opener's context, so any
// kickoff fetch is bound to it, then hands over to the tick loop.
func (s *Session) start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(s.engine.baseCtx)
	s.cancel = cancel

	ts := NewTimeSource(s.engine.clock, s.engine.interval)
	s.step(ctx, ts.Now())

	if live, ok := s.spec.Timeline.(Live); ok {
		s.feeds.Add(1)
		go func() {
			defer s.feeds.Done()
			live.run(runCtx)
		}()
	}
	go s.run(runCtx, ts)
	close(s.ready)
}

func (s *Session) run(ctx context.Context, ts *TimeSource) {
	defer close(s.done)
	defer ts.Stop()

	for {
		tick, ok := ts.Next(ctx)
		if !ok {
			return
		}
		s.step(ctx, tick)
	}
}

func (s *Session) step(ctx context.Context, tick Tick) {
	res := s.engine.resolver.Resolve(ctx, s.matchID, s.spec.Sources)
	snap := compute(s.matchID, tick, res, s.spec.Timeline)

	prev := s.snap.Swap(snap)
	if Changed(prev, snap) {
		ev := log.Debug().
			Str("match_id", s.matchID).
			Str("session_id", s.id).
			Uint64("tick", tick.N).
			Bool("resolved", snap.Resolved)
		if snap.Temporal != nil {
			ev = ev.Str("phase", string(snap.Temporal.Phase)).Str("display", snap.Display)
		}
		ev.Msg("match state changed")

		if s.engine.observer != nil {
			s.engine.observer.Observe(snap)
		}
	}

	s.broadcast(snap)
}

func (s *Session) broadcast(snap *Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// stop ends the tick loop and closes all subscribers. It blocks until the
// session goroutine and any feed loop have exited.
func (s *Session) stop() {
	<-s.ready
	s.cancel()
	<-s.done
	s.feeds.Wait()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
