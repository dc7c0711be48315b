package tui

import (
	"toad-time/sequencer"
	"toad-time/state"
)

// Frame is one rendered snapshot handed to the bubbletea program.
type Frame struct {
	Change state.StateChange
	View   state.State
}

// Display connects the pipeline to the program. Its Renderer runs on the
// display task, its Lights on the tick task; each side owns its own mailbox
// and only the latest value is kept, so neither ever waits on the terminal.
//
// The pipeline still hands the Renderer every change in order. The screen may
// skip frames between repaints, so the "last change" line can miss changes,
// but each Frame carries the full view and the values shown are never stale.
type Display struct {
	frames chan Frame
	lights chan [sequencer.NumChannels]bool
	high   [sequencer.NumChannels]bool
}

func NewDisplay() *Display {
	return &Display{
		frames: make(chan Frame, 1),
		lights: make(chan [sequencer.NumChannels]bool, 1),
	}
}

// Renderer is the pipeline's display sink.
func (d *Display) Renderer() Renderer { return Renderer{d} }

// Lights is the pipeline's output sink for the on-screen LEDs.
func (d *Display) Lights() Lights { return Lights{d} }

type Renderer struct{ d *Display }

func (r Renderer) Render(change state.StateChange, view state.State) {
	latest(r.d.frames, Frame{Change: change, View: view})
}

type Lights struct{ d *Display }

func (l Lights) Set(output int, high bool) {
	l.d.high[output] = high
	latest(l.d.lights, l.d.high)
}

// latest replaces whatever is waiting in ch with v. ch has one producer.
func latest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
