package state

import (
	"time"

	"toad-time/sequencer"
)

// State is the reducer's view of the module: tempo, transport, navigation
// and a mirror of every channel's configuration. The tick task owns the live
// channel engines; State only ever sees them through StateChange values.
//
// The display keeps its own State and feeds it the same changes via Apply.
type State struct {
	Bpm      sequencer.Bpm
	Sync     Sync
	Play     PlayStatus
	Cursor   Cursor
	Channels [sequencer.NumChannels]sequencer.Config
	Index    [sequencer.NumChannels]uint8

	tap BpmSync
}

// New returns the power-on state.
func New() State {
	s := State{
		Bpm:    120,
		Sync:   External,
		Play:   Playing,
		Cursor: Cursor{Screen: Home, Element: ElementBpm},
	}
	for i := range s.Channels {
		s.Channels[i] = sequencer.DefaultConfig()
	}
	return s
}

// OutputTypes lists each channel's current output type.
func (s *State) OutputTypes() [sequencer.NumChannels]sequencer.OutputType {
	var out [sequencer.NumChannels]sequencer.OutputType
	for i, c := range s.Channels {
		out[i] = c.OutputType
	}
	return out
}

// Pattern is the Euclidean pattern channel i currently plays.
func (s *State) Pattern(i int) sequencer.Pattern {
	c := s.Channels[i]
	return sequencer.Generate(c.Density.Clamp(c.Length), c.Length)
}

// Fields lists the editable fields of the screen under the cursor.
func (s *State) Fields() []Element {
	t := sequencer.Gate
	if i, ok := s.Cursor.Screen.Output(); ok {
		t = s.Channels[i].OutputType
	}
	return Fields(s.Cursor.Screen, t)
}

// Handle runs one command through the reducer. It returns the resulting
// change, already applied to s, or false when the command changed nothing.
func (s *State) Handle(cmd Command, at time.Time) (StateChange, bool) {
	var (
		change StateChange
		ok     bool
	)
	switch cmd {
	case EncoderRight:
		change, ok = s.edit(+1)
	case EncoderLeft:
		change, ok = s.edit(-1)
	case EncoderPress:
		t := sequencer.Gate
		if i, isOutput := s.Cursor.Screen.Output(); isOutput {
			t = s.Channels[i].OutputType
		}
		change, ok = StateChange{Kind: ChangeNextElement, Cursor: s.Cursor.nextElement(t)}, true
	case PagePress:
		change, ok = StateChange{Kind: ChangeNextScreen, Cursor: s.Cursor.nextScreen(s.OutputTypes())}, true
	case PlayPress:
		change, ok = PlayChanged(s.Play.Toggle()), true
	case BpmPress:
		change, ok = s.tapTempo(at)
	}
	if ok {
		s.Apply(change)
	}
	return change, ok
}

func (s *State) tapTempo(at time.Time) (StateChange, bool) {
	if s.Sync != External {
		return StateChange{}, false
	}
	bpm, ok := s.tap.Pulse(at)
	if !ok || bpm == s.Bpm {
		return StateChange{}, false
	}
	return BpmChanged(bpm), true
}

// edit moves the field under the cursor one step. Fields saturate, and a
// saturated edit yields no change.
func (s *State) edit(dir int) (StateChange, bool) {
	switch s.Cursor.Element {
	case ElementBpm:
		b, ok := pick(dir, s.Bpm.Next, s.Bpm.Prev)
		return BpmChanged(b), ok
	case ElementSync:
		v, ok := pick(dir, s.Sync.Next, s.Sync.Prev)
		return SyncChanged(v), ok
	}

	o, isOutput := s.Cursor.Screen.Output()
	if !isOutput {
		return StateChange{}, false
	}
	cfg := s.Channels[o]

	var (
		kind ChangeKind
		ok   bool
	)
	switch s.Cursor.Element {
	case ElementRate:
		kind = ChangeRate
		cfg.Rate, ok = pick(dir, cfg.Rate.Next, cfg.Rate.Prev)
	case ElementPwm:
		kind = ChangePwm
		cfg.Pwm, ok = pick(dir, cfg.Pwm.Next, cfg.Pwm.Prev)
	case ElementProb:
		kind = ChangeProb
		cfg.Prob, ok = pick(dir, cfg.Prob.Next, cfg.Prob.Prev)
	case ElementOutputType:
		kind = ChangeOutputType
		cfg.OutputType, ok = pick(dir, cfg.OutputType.Next, cfg.OutputType.Prev)
	case ElementLength:
		kind = ChangeLength
		cfg.Length, ok = pick(dir, cfg.Length.Next, cfg.Length.Prev)
		cfg.Density = cfg.Density.Clamp(cfg.Length)
	case ElementDensity:
		kind = ChangeDensity
		cfg.Density, ok = pick(dir, func() (sequencer.Density, bool) { return cfg.Density.Next(cfg.Length) }, cfg.Density.Prev)
	}
	if !ok {
		return StateChange{}, false
	}
	return channelChange(kind, o, cfg), true
}

func pick[T any](dir int, next, prev func() (T, bool)) (T, bool) {
	if dir > 0 {
		return next()
	}
	return prev()
}

// Apply folds a change into s. The reducer applies its own output here and
// the display applies everything the tick task republishes.
func (s *State) Apply(c StateChange) {
	switch c.Kind {
	case ChangeBpm:
		s.Bpm = c.Bpm
	case ChangeSync:
		s.Sync = c.Sync
		s.tap.Reset()
	case ChangePlayStatus:
		s.Play = c.Play
	case ChangeNextScreen, ChangeNextElement:
		s.Cursor = c.Cursor
	case ChangeRate:
		s.Channels[c.Output].Rate = c.Channel.Rate
	case ChangePwm:
		s.Channels[c.Output].Pwm = c.Channel.Pwm
	case ChangeProb:
		s.Channels[c.Output].Prob = c.Channel.Prob
	case ChangeOutputType:
		s.Channels[c.Output].OutputType = c.Channel.OutputType
		s.Index[c.Output] = 0
	case ChangeLength:
		s.Channels[c.Output].Length = c.Channel.Length
		s.Channels[c.Output].Density = c.Channel.Density
		s.Index[c.Output] = 0
	case ChangeDensity:
		s.Channels[c.Output].Density = c.Channel.Density
		s.Index[c.Output] = 0
	case ChangeIndex:
		s.Index[c.Output] = c.Index
	}
}
