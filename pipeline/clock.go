package pipeline

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"toad-time/sequencer"
)

// sleepUntil waits on c until t. It returns early with ctx's error, and
// returns straight away when t has already passed.
func sleepUntil(ctx context.Context, c clockwork.Clock, t time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wait := t.Sub(c.Now())
	if wait <= 0 {
		return nil
	}
	timer := c.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

// maxLag is how far the tick loop may fall behind before it gives up on
// catching up and restarts the schedule from now.
const maxLag = 50 * time.Millisecond

// metronome hands out absolute tick deadlines. Deadlines are computed from an
// anchor rather than accumulated, and the anchor moves forward by exactly one
// minute every TicksPerMinute ticks, so rounding never builds up.
type metronome struct {
	anchor time.Time
	bpm    sequencer.Bpm
	n      uint64
}

// reset starts a new schedule whose first tick is due at.
func (m *metronome) reset(at time.Time, bpm sequencer.Bpm) {
	m.anchor = at
	m.bpm = bpm
	m.n = 0
}

// next is the deadline of the upcoming tick.
func (m *metronome) next() time.Time {
	return m.anchor.Add(sequencer.TickOffset(m.bpm, m.n))
}

// advance marks the upcoming tick as done.
func (m *metronome) advance() {
	m.n++
	if m.n == m.bpm.TicksPerMinute() {
		m.anchor = m.anchor.Add(time.Minute)
		m.n = 0
	}
}

// retempo keeps the upcoming deadline and spaces later ticks at bpm.
func (m *metronome) retempo(bpm sequencer.Bpm) {
	if bpm == m.bpm {
		return
	}
	m.reset(m.next(), bpm)
}

// behind reports whether now is past the upcoming deadline by more than maxLag.
func (m *metronome) behind(now time.Time) bool {
	return now.Sub(m.next()) > maxLag
}
