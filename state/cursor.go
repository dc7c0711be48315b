package state

import "toad-time/sequencer"

// Screen is either Home or one of the channel pages.
type Screen uint8

const (
	Home Screen = iota
	ChannelA
	ChannelB
	ChannelC
	ChannelD
)

// ChannelScreen returns the page for output i.
func ChannelScreen(i int) Screen { return Screen(i + 1) }

// Output returns the channel index of a channel page.
func (s Screen) Output() (int, bool) {
	if s == Home {
		return 0, false
	}
	return int(s) - 1, true
}

func (s Screen) next() Screen {
	if s == ChannelD {
		return Home
	}
	return s + 1
}

func (s Screen) String() string {
	if i, ok := s.Output(); ok {
		return sequencer.ChannelName(i)
	}
	return "Home"
}

// Element is the field the encoder currently edits.
type Element uint8

const (
	ElementBpm Element = iota
	ElementSync
	ElementRate
	ElementPwm
	ElementProb
	ElementLength
	ElementDensity
	ElementOutputType
)

var elementNames = [...]string{
	ElementBpm:        "Bpm",
	ElementSync:       "Sync",
	ElementRate:       "Rate",
	ElementPwm:        "Pwm",
	ElementProb:       "Prob",
	ElementLength:     "Length",
	ElementDensity:    "Density",
	ElementOutputType: "OutputType",
}

func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return "Element(?)"
}

var (
	homeFields   = []Element{ElementBpm, ElementSync}
	gateFields   = []Element{ElementRate, ElementProb, ElementPwm, ElementOutputType}
	euclidFields = []Element{ElementRate, ElementLength, ElementDensity, ElementOutputType}
)

// Fields lists the editable fields of a screen in cursor order.
func Fields(s Screen, t sequencer.OutputType) []Element {
	if s == Home {
		return homeFields
	}
	switch t {
	case sequencer.Euclid:
		return euclidFields
	default:
		return gateFields
	}
}

// Cursor is the navigation position: a screen and a field on it.
type Cursor struct {
	Screen  Screen
	Element Element
}

func (c Cursor) String() string {
	return c.Screen.String() + "/" + c.Element.String()
}

// nextElement cycles to the following field of the same screen.
func (c Cursor) nextElement(t sequencer.OutputType) Cursor {
	fields := Fields(c.Screen, t)
	for i, e := range fields {
		if e == c.Element {
			c.Element = fields[(i+1)%len(fields)]
			return c
		}
	}
	c.Element = fields[0]
	return c
}

// nextScreen moves to the following page, cursor on its first field.
func (c Cursor) nextScreen(types [sequencer.NumChannels]sequencer.OutputType) Cursor {
	s := c.Screen.next()
	t := sequencer.Gate
	if i, ok := s.Output(); ok {
		t = types[i]
	}
	return Cursor{Screen: s, Element: Fields(s, t)[0]}
}
