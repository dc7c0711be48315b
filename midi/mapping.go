package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"toad-time/state"
)

// BindingKind says which message type a Binding listens for.
type BindingKind uint8

const (
	BindNote BindingKind = iota
	BindCC
)

// Binding maps one note or CC number to a button command. Notes fire on
// note-on with non-zero velocity, CCs on any non-zero value.
type Binding struct {
	Kind    BindingKind
	Number  uint8
	Command state.Command
}

// NoEncoder disables the relative encoder CC.
const NoEncoder = -1

// Mapping decodes controller messages into commands.
type Mapping struct {
	// Channel is 1..16, or 0 to accept every channel.
	Channel uint8
	// EncoderCC is a relative-mode CC: 1..63 turns right, 65..127 turns
	// left. Each message is one detent whatever its magnitude.
	EncoderCC int
	Buttons   []Binding
}

// DefaultMapping is a generic controller: CC 16 as the encoder and notes
// 36..39 as encoder press, page, play and tap.
func DefaultMapping() Mapping {
	return Mapping{
		EncoderCC: 16,
		Buttons: []Binding{
			{Kind: BindNote, Number: 36, Command: state.EncoderPress},
			{Kind: BindNote, Number: 37, Command: state.PagePress},
			{Kind: BindNote, Number: 38, Command: state.PlayPress},
			{Kind: BindNote, Number: 39, Command: state.BpmPress},
		},
	}
}

// Decode returns the command msg stands for.
func (m Mapping) Decode(msg gomidi.Message) (state.Command, bool) {
	var ch, key, vel, cc, val uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		if vel == 0 || !m.accepts(ch) {
			return 0, false
		}
		return m.button(BindNote, key)
	case msg.GetControlChange(&ch, &cc, &val):
		if !m.accepts(ch) {
			return 0, false
		}
		if int(cc) == m.EncoderCC {
			switch {
			case val >= 1 && val <= 63:
				return state.EncoderRight, true
			case val >= 65:
				return state.EncoderLeft, true
			}
			return 0, false
		}
		if val == 0 {
			return 0, false
		}
		return m.button(BindCC, cc)
	}
	return 0, false
}

func (m Mapping) accepts(ch uint8) bool {
	return m.Channel == 0 || ch+1 == m.Channel
}

func (m Mapping) button(kind BindingKind, n uint8) (state.Command, bool) {
	for _, b := range m.Buttons {
		if b.Kind == kind && b.Number == n {
			return b.Command, true
		}
	}
	return 0, false
}
