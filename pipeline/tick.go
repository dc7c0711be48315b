package pipeline

import (
	"context"
	"runtime"

	"github.com/jonboulle/clockwork"

	"toad-time/debug"
	"toad-time/sequencer"
	"toad-time/state"
)

// ticker is the real-time task. It alone owns the scheduler.
type ticker struct {
	sched   *sequencer.Scheduler
	clock   clockwork.Clock
	sink    OutputSink
	changes <-chan state.StateChange
	display chan<- state.StateChange

	play    state.PlayStatus
	met     metronome
	pending [MaxQueue]state.StateChange
}

func (t *ticker) run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	t.met.reset(t.clock.Now(), t.sched.Bpm())
	debug.Log("tick", "start bpm=%s period=%s", t.sched.Bpm(), t.sched.TickPeriod())

	for {
		if t.play == state.Paused {
			// Nothing is due while paused, so wait for the next change.
			select {
			case <-ctx.Done():
				return nil
			case c := <-t.changes:
				t.apply(c)
				if !send(ctx, t.display, c) {
					return nil
				}
			}
			continue
		}
		if err := sleepUntil(ctx, t.clock, t.met.next()); err != nil {
			return nil
		}
		if !t.step(ctx) {
			return nil
		}
	}
}

// step runs one tick: take pending changes, advance the scheduler, drive the
// outputs, then tell the display. It returns false once ctx is done.
func (t *ticker) step(ctx context.Context) bool {
	n := t.drain()
	var events [sequencer.NumChannels]sequencer.Event
	if t.play == state.Playing {
		if now := t.clock.Now(); t.met.behind(now) {
			debug.Log("tick", "late by %s, re-anchoring", now.Sub(t.met.next()))
			t.met.reset(now, t.sched.Bpm())
		}
		events = t.sched.Tick()
		t.drive(events)
		t.met.advance()
	}
	return t.flush(ctx, t.pending[:n], events)
}

// drain moves whatever changes are queued into pending and applies them. It
// never waits.
func (t *ticker) drain() int {
	n := 0
	for n < len(t.pending) {
		select {
		case c := <-t.changes:
			t.apply(c)
			t.pending[n] = c
			n++
		default:
			return n
		}
	}
	return n
}

// flush republishes the consumed changes, then the index changes of the
// tick that just ran.
func (t *ticker) flush(ctx context.Context, changes []state.StateChange, events [sequencer.NumChannels]sequencer.Event) bool {
	for _, c := range changes {
		if !send(ctx, t.display, c) {
			return false
		}
	}
	for i, ev := range events {
		if !ev.IndexChanged {
			continue
		}
		if !send(ctx, t.display, state.IndexChanged(i, ev.Index)) {
			return false
		}
	}
	return true
}

func (t *ticker) drive(events [sequencer.NumChannels]sequencer.Event) {
	for i, ev := range events {
		if ev.Edge {
			t.sink.Set(i, ev.High)
		}
	}
}

func (t *ticker) apply(c state.StateChange) {
	o := c.Output
	switch c.Kind {
	case state.ChangeBpm:
		t.sched.SetBpm(c.Bpm)
		t.met.retempo(t.sched.Bpm())
		debug.Log("tick", "bpm=%s period=%s", t.sched.Bpm(), t.sched.TickPeriod())
	case state.ChangeRate:
		t.sched.SetRate(o, c.Channel.Rate)
	case state.ChangePwm:
		t.sched.SetPwm(o, c.Channel.Pwm)
	case state.ChangeProb:
		t.sched.SetProb(o, c.Channel.Prob)
	case state.ChangeOutputType:
		t.sched.SetOutputType(o, c.Channel.OutputType)
	case state.ChangeLength, state.ChangeDensity:
		t.sched.SetSequence(o, c.Channel.Length, c.Channel.Density)
	case state.ChangePlayStatus:
		t.setPlay(c.Play)
	}
}

func (t *ticker) setPlay(p state.PlayStatus) {
	if p == t.play {
		return
	}
	t.play = p
	switch p {
	case state.Paused:
		t.drive(t.sched.Silence())
	case state.Playing:
		t.met.reset(t.clock.Now(), t.sched.Bpm())
	}
	debug.Log("tick", "%s at master=%d", p, t.sched.Master())
}
