package pipeline

import (
	"fmt"
	"io"

	"toad-time/debug"
	"toad-time/sequencer"
	"toad-time/state"
)

// OutputSink drives the four gate outputs. Set is called only on edges.
type OutputSink interface {
	Set(output int, high bool)
}

// MultiSink fans edges out to several sinks in order.
type MultiSink []OutputSink

func (m MultiSink) Set(output int, high bool) {
	for _, s := range m {
		s.Set(output, high)
	}
}

// Renderer is the display sink. It receives every change exactly once, in
// tick order, together with the display's state after applying it. The first
// call carries ChangeInitialize and the full snapshot.
type Renderer interface {
	Render(change state.StateChange, view state.State)
}

// LogRenderer prints changes as text lines. It stands in for a display when
// there is no terminal. Lines are mirrored to the debug log when it is on.
type LogRenderer struct {
	out io.Writer
}

func NewLogRenderer(out io.Writer) LogRenderer { return LogRenderer{out: out} }

func (r LogRenderer) Render(change state.StateChange, view state.State) {
	switch change.Kind {
	case state.ChangeInitialize:
		r.line(fmt.Sprintf("bpm %s %s %s cursor %s", view.Bpm, view.Sync, view.Play, view.Cursor))
		for i, c := range view.Channels {
			r.line(fmt.Sprintf("%s %s rate %s pwm %s prob %s len %s den %s",
				sequencer.ChannelName(i), c.OutputType, c.Rate, c.Pwm, c.Prob, c.Length, c.Density))
		}
	case state.ChangeIndex:
		// Too frequent for the debug log.
		fmt.Fprintln(r.out, change)
	default:
		r.line(change.String())
	}
}

func (r LogRenderer) line(s string) {
	fmt.Fprintln(r.out, s)
	if debug.Enabled() {
		debug.Log("display", "%s", s)
	}
}

// LogSink prints one line per edge.
type LogSink struct {
	out io.Writer
}

func NewLogSink(out io.Writer) LogSink { return LogSink{out: out} }

func (s LogSink) Set(output int, high bool) {
	level := "low"
	if high {
		level = "high"
	}
	fmt.Fprintf(s.out, "%s %s\n", sequencer.ChannelName(output), level)
	if debug.Enabled() {
		debug.LogEvery(64, "gate", "%s %s", sequencer.ChannelName(output), level)
	}
}
