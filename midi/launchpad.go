package midi

import (
	"strings"

	"toad-time/debug"
	"toad-time/sequencer"
	"toad-time/state"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
)

// Launchpad X top row CCs.
const (
	lpUp      = 91
	lpDown    = 92
	lpLeft    = 93
	lpRight   = 94
	lpSession = 95
	lpNote    = 96
	lpCustom  = 97
)

// LaunchpadMapping drives the module from a Launchpad X in programmer mode:
// up/down arrows turn the encoder, right presses it, Session pages, Note
// toggles play and Custom taps tempo.
func LaunchpadMapping() Mapping {
	return Mapping{
		EncoderCC: NoEncoder,
		Buttons: []Binding{
			{Kind: BindCC, Number: lpUp, Command: state.EncoderRight},
			{Kind: BindCC, Number: lpDown, Command: state.EncoderLeft},
			{Kind: BindCC, Number: lpRight, Command: state.EncoderPress},
			{Kind: BindCC, Number: lpLeft, Command: state.EncoderPress},
			{Kind: BindCC, Number: lpSession, Command: state.PagePress},
			{Kind: BindCC, Number: lpNote, Command: state.PlayPress},
			{Kind: BindCC, Number: lpCustom, Command: state.BpmPress},
		},
	}
}

// IsLaunchpad reports whether a port name belongs to a Launchpad's MIDI
// interface (not its DAW port).
func IsLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}

// LaunchpadLights shows the four gates on the bottom-left pads of a
// Launchpad X.
type LaunchpadLights struct {
	send   func(msg gomidi.Message) error
	colors [sequencer.NumChannels][3]uint8
}

// NewLaunchpadLights switches the Launchpad to programmer mode and clears
// the gate pads.
func NewLaunchpadLights(outPort drivers.Out, colors [sequencer.NumChannels][3]uint8) (*LaunchpadLights, error) {
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("open launchpad output"))
	}
	lp := newLaunchpadLights(send, colors)

	// Send SysEx to switch to Programmer mode
	// F0 00 20 29 02 0C 00 7F F7
	lp.send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}))

	// Set brightness to maximum (0-127)
	// F0 00 20 29 02 0C 08 <brightness> F7
	lp.send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}))

	lp.Clear()
	return lp, nil
}

func newLaunchpadLights(send func(gomidi.Message) error, colors [sequencer.NumChannels][3]uint8) *LaunchpadLights {
	return &LaunchpadLights{send: send, colors: colors}
}

// Set lights pad (0, output) in the output's colour while the gate is high.
func (lp *LaunchpadLights) Set(output int, high bool) {
	var rgb [3]uint8
	if high {
		rgb = lp.colors[output]
	}
	note := rowColToNote(0, output)
	if err := lp.send(gomidi.NoteOn(0, note, mapRGBToLaunchpad(rgb))); err != nil {
		debug.LogEvery(16, "lp-send", "pad %d: %v", note, err)
	}
}

// Clear turns every gate pad off.
func (lp *LaunchpadLights) Clear() {
	for i := range sequencer.NumChannels {
		lp.Set(i, false)
	}
}

// mapRGBToLaunchpad finds the nearest Launchpad X palette color for an RGB value
func mapRGBToLaunchpad(rgb [3]uint8) uint8 {
	// Launchpad X palette - approximate RGB values for key colors
	// Format: {velocity, R, G, B}
	palette := [][4]uint8{
		{0, 0, 0, 0},         // off
		{5, 255, 0, 0},       // red
		{6, 255, 80, 80},     // bright red
		{7, 180, 60, 60},     // dim red
		{9, 255, 100, 0},     // orange
		{11, 180, 80, 40},    // dim orange
		{13, 255, 200, 0},    // yellow
		{17, 0, 180, 0},      // green
		{19, 0, 100, 0},      // dim green
		{21, 0, 255, 0},      // bright green
		{37, 0, 200, 200},    // cyan
		{43, 40, 60, 120},    // dim blue
		{45, 0, 100, 255},    // blue
		{47, 80, 150, 255},   // bright blue
		{49, 150, 0, 200},    // purple
		{53, 255, 80, 180},   // pink
		{78, 100, 100, 255},  // light blue
		{84, 255, 150, 50},   // bright orange
		{87, 150, 255, 100},  // lime
		{97, 180, 180, 60},   // dim yellow
		{119, 255, 255, 255}, // white
	}

	bestMatch := uint8(0)
	bestDist := 999999

	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])

	for _, p := range palette {
		pr, pg, pb := int(p[1]), int(p[2]), int(p[3])
		dist := (r-pr)*(r-pr) + (g-pg)*(g-pg) + (b-pb)*(b-pb)
		if dist < bestDist {
			bestDist = dist
			bestMatch = p[0]
		}
	}

	return bestMatch
}

// Launchpad X note mapping
// 8x8 Grid:  Row 0 (bottom) = notes 11-18, Row 7 = notes 81-88
func rowColToNote(row, col int) uint8 {
	return uint8((row+1)*10 + col + 1)
}
