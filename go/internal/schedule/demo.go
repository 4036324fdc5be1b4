package schedule

import (
	"sync"
	"time"
)

// DemoKickoffs generates kickoffs for demo matches as a fixed offset from an
// anchor instant. The anchor is truncated to the minute so demo clocks start
// on a whole minute.
type DemoKickoffs struct {
	anchor time.Time

	mu      sync.RWMutex
	offsets map[string]time.Duration
}

// NewDemoKickoffs creates a generator anchored at anchor.
func NewDemoKickoffs(anchor time.Time) *DemoKickoffs {
	return &DemoKickoffs{
		anchor:  anchor.Truncate(time.Minute),
		offsets: make(map[string]time.Duration),
	}
}

// Register sets the kickoff of matchID to anchor+offset. A negative offset
// places the kickoff in the past, so the demo match is already running.
func (d *DemoKickoffs) Register(matchID string, offset time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offsets[matchID] = offset
}

// Anchor returns the instant offsets are measured from.
func (d *DemoKickoffs) Anchor() time.Time {
	return d.anchor
}

// Kickoff implements FallbackFunc.
func (d *DemoKickoffs) Kickoff(matchID string) (time.Time, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	offset, ok := d.offsets[matchID]
	if !ok {
		return time.Time{}, false
	}
	return d.anchor.Add(offset), true
}
