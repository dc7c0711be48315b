package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"toad-time/debug"
	"toad-time/state"
)

// Debounce is the window in which a repeated press of the same button is
// treated as contact bounce.
const Debounce = 50 * time.Millisecond

// Input is the front of the pipeline. Event-driven sources (MIDI callbacks,
// the keyboard) call Offer; polled sources run as a Source and block on the
// queue instead.
type Input struct {
	clock clockwork.Clock
	out   chan<- state.Event

	mu    sync.Mutex
	last  [state.BpmPress + 1]time.Time
	fatal chan error
}

func newInput(clock clockwork.Clock, out chan<- state.Event) *Input {
	return &Input{
		clock: clock,
		out:   out,
		fatal: make(chan error, 1),
	}
}

// Offer queues cmd without waiting. A full queue is fatal: the error is
// returned here and also ends Pipeline.Run.
func (in *Input) Offer(cmd state.Command) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	now := in.clock.Now()
	if in.bounced(cmd, now) {
		return nil
	}
	select {
	case in.out <- state.Event{Command: cmd, At: now}:
		debug.Log("input", "%s", cmd)
		return nil
	default:
		err := overflow("command")
		select {
		case in.fatal <- err:
		default:
		}
		return err
	}
}

// send queues cmd, waiting for room.
func (in *Input) send(ctx context.Context, cmd state.Command) bool {
	in.mu.Lock()
	now := in.clock.Now()
	bounced := in.bounced(cmd, now)
	in.mu.Unlock()
	if bounced {
		return true
	}
	return send(ctx, in.out, state.Event{Command: cmd, At: now})
}

// bounced reports whether cmd repeats a button press inside the debounce
// window, and records the press otherwise. Encoder detents never bounce.
func (in *Input) bounced(cmd state.Command, now time.Time) bool {
	if !cmd.IsButton() || int(cmd) >= len(in.last) {
		return false
	}
	if last := in.last[cmd]; !last.IsZero() && now.Sub(last) < Debounce {
		return true
	}
	in.last[cmd] = now
	return false
}

// run waits for a fatal Offer or the end of ctx.
func (in *Input) run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case err := <-in.fatal:
		return err
	}
}

// Source is an input producer run alongside the pipeline tasks.
type Source func(ctx context.Context, in *Input) error

// Button is a polled push button.
type Button interface {
	Pressed() bool
}

// Encoder is a polled rotary encoder. Delta returns the detents turned since
// the last call, positive clockwise.
type Encoder interface {
	Delta() int
}

// PollButton emits cmd once per press. The button arms on release, so
// holding it down emits nothing further.
func PollButton(b Button, cmd state.Command, interval time.Duration) Source {
	return func(ctx context.Context, in *Input) error {
		armed := true
		for {
			if err := sleepUntil(ctx, in.clock, in.clock.Now().Add(interval)); err != nil {
				return nil
			}
			switch pressed := b.Pressed(); {
			case pressed && armed:
				armed = false
				if !in.send(ctx, cmd) {
					return nil
				}
			case !pressed:
				armed = true
			}
		}
	}
}

// PollEncoder emits one EncoderRight or EncoderLeft per detent.
func PollEncoder(e Encoder, interval time.Duration) Source {
	return func(ctx context.Context, in *Input) error {
		for {
			if err := sleepUntil(ctx, in.clock, in.clock.Now().Add(interval)); err != nil {
				return nil
			}
			d := e.Delta()
			cmd := state.EncoderRight
			if d < 0 {
				cmd, d = state.EncoderLeft, -d
			}
			for range d {
				if !in.send(ctx, cmd) {
					return nil
				}
			}
		}
	}
}
