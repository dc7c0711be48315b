package state

import "time"

// Command is one debounced user action.
type Command uint8

const (
	EncoderRight Command = iota
	EncoderLeft
	EncoderPress
	PagePress
	PlayPress
	BpmPress
)

var commandNames = [...]string{
	EncoderRight: "EncoderRight",
	EncoderLeft:  "EncoderLeft",
	EncoderPress: "EncoderPress",
	PagePress:    "PagePress",
	PlayPress:    "PlayPress",
	BpmPress:     "BpmPress",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "Command(?)"
}

// IsButton reports whether the command comes from a push button rather
// than an encoder detent.
func (c Command) IsButton() bool {
	return c != EncoderRight && c != EncoderLeft
}

// Event is a Command stamped with the instant the input layer accepted it.
// Tap tempo needs the timestamp; everything else ignores it.
type Event struct {
	Command Command
	At      time.Time
}

// Sync selects where the tempo comes from.
type Sync uint8

const (
	// External enables tap tempo on BpmPress.
	External Sync = iota
	Internal
)

func (s Sync) Next() (Sync, bool) {
	if s == External {
		return Internal, true
	}
	return s, false
}

func (s Sync) Prev() (Sync, bool) {
	if s == Internal {
		return External, true
	}
	return s, false
}

func (s Sync) String() string {
	if s == Internal {
		return "Int"
	}
	return "Ext"
}

// PlayStatus is the transport flag.
type PlayStatus uint8

const (
	Playing PlayStatus = iota
	Paused
)

func (p PlayStatus) Toggle() PlayStatus {
	if p == Playing {
		return Paused
	}
	return Playing
}

func (p PlayStatus) String() string {
	if p == Paused {
		return "Paused"
	}
	return "Playing"
}
