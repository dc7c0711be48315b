package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"toad-time/debug"
	"toad-time/sequencer"
)

// GateNotes says which note each output plays.
type GateNotes struct {
	Channel  uint8 // 1..16
	Notes    [sequencer.NumChannels]uint8
	Velocity uint8
}

// DefaultGateNotes plays kick, snare, closed and open hat on channel 10.
func DefaultGateNotes() GateNotes {
	return GateNotes{
		Channel:  10,
		Notes:    [sequencer.NumChannels]uint8{36, 38, 42, 46},
		Velocity: 100,
	}
}

// GateSink turns gate edges into notes: NoteOn on the rising edge, NoteOff
// on the falling edge.
type GateSink struct {
	send  func(gomidi.Message) error
	notes GateNotes
	high  [sequencer.NumChannels]bool
}

// NewGateSink opens outPort for sending.
func NewGateSink(outPort drivers.Out, notes GateNotes) (*GateSink, error) {
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("open gate output "+outPort.String()))
	}
	return newGateSink(send, notes), nil
}

func newGateSink(send func(gomidi.Message) error, notes GateNotes) *GateSink {
	if notes.Channel < 1 || notes.Channel > 16 {
		notes.Channel = 1
	}
	if notes.Velocity == 0 {
		notes.Velocity = 100
	}
	return &GateSink{send: send, notes: notes}
}

func (g *GateSink) Set(output int, high bool) {
	ch := g.notes.Channel - 1
	key := g.notes.Notes[output]

	var err error
	if high {
		err = g.send(gomidi.NoteOn(ch, key, g.notes.Velocity))
	} else {
		err = g.send(gomidi.NoteOff(ch, key))
	}
	g.high[output] = high
	if err != nil {
		debug.LogEvery(16, "midi-out", "gate %s: %v", sequencer.ChannelName(output), err)
	}
}

// Release sends NoteOff for every output still high.
func (g *GateSink) Release() {
	for i, h := range g.high {
		if h {
			g.Set(i, false)
		}
	}
}
