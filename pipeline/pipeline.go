// Package pipeline wires the four tasks of the trigger engine together:
//
//	Input -> commands -> Reducer -> changes -> Tick -> display -> Display
//
// Every queue is a bounded channel created once in New and handed to the
// two tasks at its ends. Nothing else is shared between tasks.
package pipeline

import (
	"context"
	"os"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"toad-time/debug"
	"toad-time/sequencer"
	"toad-time/state"
)

// Options configures a Pipeline. Zero values fall back to defaults: the power
// on state, the real clock, default queues and log sinks on stdout.
type Options struct {
	State    state.State
	Seed     uint64
	Queues   Capacities
	Clock    clockwork.Clock
	Sink     OutputSink
	Renderer Renderer
	Sources  []Source
}

// Pipeline is a constructed but not yet running engine.
type Pipeline struct {
	opts Options

	commands chan state.Event
	changes  chan state.StateChange
	display  chan state.StateChange
	input    *Input
}

func New(opts Options) *Pipeline {
	if opts.State.Bpm == 0 {
		opts.State = state.New()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Sink == nil {
		opts.Sink = NewLogSink(os.Stdout)
	}
	if opts.Renderer == nil {
		opts.Renderer = NewLogRenderer(os.Stdout)
	}
	if opts.Queues == (Capacities{}) {
		opts.Queues = DefaultCapacities()
	}
	opts.Queues = opts.Queues.Clamp()

	p := &Pipeline{
		opts:     opts,
		commands: make(chan state.Event, opts.Queues.Commands),
		changes:  make(chan state.StateChange, opts.Queues.Changes),
		display:  make(chan state.StateChange, opts.Queues.Display),
	}
	p.input = newInput(opts.Clock, p.commands)
	return p
}

// Input is where event-driven sources deliver commands.
func (p *Pipeline) Input() *Input { return p.input }

// Run starts every task and blocks until ctx is cancelled or a task fails.
// Cancellation is a clean stop and returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	st := p.opts.State
	tk := &ticker{
		sched:   sequencer.NewScheduler(st.Channels, st.Bpm, p.opts.Seed),
		clock:   p.opts.Clock,
		sink:    p.opts.Sink,
		changes: p.changes,
		display: p.display,
		play:    st.Play,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.input.run(ctx) })
	for _, src := range p.opts.Sources {
		g.Go(func() error { return src(ctx, p.input) })
	}
	g.Go(func() error { return reduce(ctx, st, p.commands, p.changes) })
	g.Go(func() error { return tk.run(ctx) })
	g.Go(func() error { return render(ctx, st, p.display, p.opts.Renderer) })

	err := g.Wait()
	if err != nil {
		debug.Log("pipeline", "stopped: %v", err)
	}
	return err
}

// reduce turns commands into changes. Saturated edits produce nothing.
func reduce(ctx context.Context, st state.State, in <-chan state.Event, out chan<- state.StateChange) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-in:
			change, ok := st.Handle(ev.Command, ev.At)
			if !ok {
				continue
			}
			debug.Log("reducer", "%s -> %s", ev.Command, change)
			if !send(ctx, out, change) {
				return nil
			}
		}
	}
}

// render keeps the display's own copy of the state and hands every change to
// r, starting with the full snapshot.
func render(ctx context.Context, view state.State, in <-chan state.StateChange, r Renderer) error {
	r.Render(state.StateChange{Kind: state.ChangeInitialize}, view)
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-in:
			view.Apply(c)
			r.Render(c, view)
		}
	}
}
