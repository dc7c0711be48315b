package state

import (
	"fmt"

	"toad-time/sequencer"
)

// ChangeKind tags a StateChange.
type ChangeKind uint8

const (
	ChangeNone ChangeKind = iota
	ChangeInitialize
	ChangeBpm
	ChangeSync
	ChangeRate
	ChangePwm
	ChangeProb
	ChangeLength
	ChangeDensity
	ChangeOutputType
	ChangePlayStatus
	ChangeNextScreen
	ChangeNextElement
	ChangeIndex
)

// StateChange is a single value update flowing from the reducer through the
// tick loop to the display. It is passed by value; only the fields named by
// Kind are meaningful.
type StateChange struct {
	Kind    ChangeKind
	Output  int
	Bpm     sequencer.Bpm
	Sync    Sync
	Play    PlayStatus
	Cursor  Cursor
	Channel sequencer.Config // Rate/Pwm/Prob/Length/Density/OutputType carry the new value here
	Index   uint8
}

func BpmChanged(b sequencer.Bpm) StateChange { return StateChange{Kind: ChangeBpm, Bpm: b} }
func SyncChanged(s Sync) StateChange         { return StateChange{Kind: ChangeSync, Sync: s} }
func PlayChanged(p PlayStatus) StateChange   { return StateChange{Kind: ChangePlayStatus, Play: p} }

// IndexChanged reports a Euclid step advance on output.
func IndexChanged(output int, index uint8) StateChange {
	return StateChange{Kind: ChangeIndex, Output: output, Index: index}
}

func channelChange(kind ChangeKind, output int, cfg sequencer.Config) StateChange {
	return StateChange{Kind: kind, Output: output, Channel: cfg}
}

// Affects reports whether the change modifies channel configuration.
func (c StateChange) Affects() (int, bool) {
	switch c.Kind {
	case ChangeRate, ChangePwm, ChangeProb, ChangeLength, ChangeDensity, ChangeOutputType, ChangeIndex:
		return c.Output, true
	}
	return 0, false
}

func (c StateChange) String() string {
	ch := sequencer.ChannelName(c.Output)
	switch c.Kind {
	case ChangeInitialize:
		return "initialize"
	case ChangeBpm:
		return fmt.Sprintf("bpm %s", c.Bpm)
	case ChangeSync:
		return fmt.Sprintf("sync %s", c.Sync)
	case ChangeRate:
		return fmt.Sprintf("%s rate %s", ch, c.Channel.Rate)
	case ChangePwm:
		return fmt.Sprintf("%s pwm %s", ch, c.Channel.Pwm)
	case ChangeProb:
		return fmt.Sprintf("%s prob %s", ch, c.Channel.Prob)
	case ChangeLength:
		return fmt.Sprintf("%s length %s density %s", ch, c.Channel.Length, c.Channel.Density)
	case ChangeDensity:
		return fmt.Sprintf("%s density %s", ch, c.Channel.Density)
	case ChangeOutputType:
		return fmt.Sprintf("%s type %s", ch, c.Channel.OutputType.Name())
	case ChangePlayStatus:
		return c.Play.String()
	case ChangeNextScreen:
		return fmt.Sprintf("screen %s", c.Cursor)
	case ChangeNextElement:
		return fmt.Sprintf("element %s", c.Cursor)
	case ChangeIndex:
		return fmt.Sprintf("%s index %d", ch, c.Index)
	}
	return "none"
}
