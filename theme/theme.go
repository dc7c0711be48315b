package theme

import (
	"github.com/charmbracelet/lipgloss"

	"toad-time/sequencer"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Gate LEDs
	GateHigh rune // ■ output high
	GateLow  rune // □ output low

	// Euclid row
	StepEmpty    rune // · inactive step
	StepActive   rune // ● onset
	StepPlayhead rune // ▶ current step, inactive
	StepHit      rune // ◉ current step, onset

	Pointer rune // ▸ field under the cursor
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			GateHigh: '■',
			GateLow:  '□',

			StepEmpty:    '·',
			StepActive:   '●',
			StepPlayhead: '▶',
			StepHit:      '◉',

			Pointer: '▸',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// channelRoles spreads the four outputs over the warm half of the palette.
var channelRoles = [sequencer.NumChannels]float64{0.45, 0.6, 0.8, 1.0}

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// RGB returns raw RGB for any normalized value (for Launchpad)
func (t *Theme) RGB(norm float64) RGB {
	return t.Palette.Lookup(norm)
}

// Channel is output i's colour.
func (t *Theme) Channel(i int) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(channelRoles[i]))
}

// Dim is output i's colour faded most of the way toward the background, for
// a gate that is low.
func (t *Theme) Dim(i int) lipgloss.Color {
	fg := t.Palette.Lookup(channelRoles[i]).colorful()
	bg := t.Palette.Lookup(RoleBG).colorful()
	return lipgloss.Color(fg.BlendLab(bg, 0.7).Clamped().Hex())
}

// ChannelRGBs lists every output's colour as raw RGB (for Launchpad pads).
func (t *Theme) ChannelRGBs() [sequencer.NumChannels][3]uint8 {
	var out [sequencer.NumChannels][3]uint8
	for i, role := range channelRoles {
		out[i] = t.Palette.Lookup(role)
	}
	return out
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
