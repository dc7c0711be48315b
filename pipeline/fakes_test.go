package pipeline

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"toad-time/state"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeClock never sleeps: every timer fires as soon as it is made, with the
// clock moved on to its deadline.
type fakeClock struct {
	*clockwork.FakeClock
}

func newFakeClock() *fakeClock { return &fakeClock{clockwork.NewFakeClockAt(t0)} }

func (c *fakeClock) NewTimer(d time.Duration) clockwork.Timer {
	timer := c.FakeClock.NewTimer(d)
	c.Advance(d)
	return timer
}

type edge struct {
	output int
	high   bool
	at     time.Time
}

// recordSink keeps every edge and cancels once it has limit of them.
type recordSink struct {
	clock  clockwork.Clock
	edges  []edge
	limit  int
	cancel context.CancelFunc
}

func (s *recordSink) Set(output int, high bool) {
	s.edges = append(s.edges, edge{output: output, high: high, at: s.clock.Now()})
	if s.limit > 0 && len(s.edges) >= s.limit && s.cancel != nil {
		s.cancel()
	}
}

func (s *recordSink) rising(output int) []edge {
	var out []edge
	for _, e := range s.edges {
		if e.output == output && e.high {
			out = append(out, e)
		}
	}
	return out
}

// recordRenderer keeps every change and the view that came with it. until
// cancels the run once it returns true.
type recordRenderer struct {
	changes []state.StateChange
	views   []state.State
	until   func(state.StateChange) bool
	cancel  context.CancelFunc
}

func (r *recordRenderer) Render(c state.StateChange, view state.State) {
	r.changes = append(r.changes, c)
	r.views = append(r.views, view)
	if r.until != nil && r.until(c) {
		r.cancel()
	}
}

type fakeButton struct {
	states []bool
	i      int
	done   context.CancelFunc
}

func (b *fakeButton) Pressed() bool {
	if b.i >= len(b.states) {
		b.done()
		return false
	}
	p := b.states[b.i]
	b.i++
	return p
}

type fakeEncoder struct {
	deltas []int
	i      int
	done   context.CancelFunc
}

func (e *fakeEncoder) Delta() int {
	if e.i >= len(e.deltas) {
		e.done()
		return 0
	}
	d := e.deltas[e.i]
	e.i++
	return d
}
