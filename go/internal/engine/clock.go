package engine

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTickInterval is the cadence of every match clock.
const DefaultTickInterval = time.Second

// Tick is one beat of a TimeSource. N counts from 0, the tick computed when
// a session opens.
type Tick struct {
	N  uint64
	At time.Time
}

// TimeSource is the logical clock driving a single session. It is the only
// place a session reads the time.
type TimeSource struct {
	clock  clockwork.Clock
	ticker clockwork.Ticker
	n      uint64
}

// NewTimeSource starts a ticker on clock. Stop must be called to release it.
func NewTimeSource(clock clockwork.Clock, interval time.Duration) *TimeSource {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TimeSource{
		clock:  clock,
		ticker: clock.NewTicker(interval),
	}
}

// Now returns the current tick without waiting.
func (t *TimeSource) Now() Tick {
	return Tick{N: t.n, At: t.clock.Now()}
}

// Next blocks until the next tick. It returns false once ctx is done.
func (t *TimeSource) Next(ctx context.Context) (Tick, bool) {
	select {
	case <-ctx.Done():
		return Tick{}, false
	case at := <-t.ticker.Chan():
		t.n++
		return Tick{N: t.n, At: at}, true
	}
}

// Stop releases the ticker.
func (t *TimeSource) Stop() {
	t.ticker.Stop()
}
