package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"toad-time/sequencer"
	"toad-time/theme"
)

// RenderLED renders one gate output, lit while high.
func RenderLED(th *theme.Theme, output int, high bool) string {
	sym, color := th.Symbols.GateLow, th.Dim(output)
	if high {
		sym, color = th.Symbols.GateHigh, th.Channel(output)
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(sym))
}

// RenderLEDRow renders the four outputs as "A ■  B □  C □  D ■".
func RenderLEDRow(th *theme.Theme, high [sequencer.NumChannels]bool) string {
	label := lipgloss.NewStyle().Foreground(th.Muted())
	var out strings.Builder
	for i, h := range high {
		if i > 0 {
			out.WriteString("  ")
		}
		out.WriteString(label.Render(sequencer.ChannelName(i)))
		out.WriteString(" ")
		out.WriteString(RenderLED(th, i, h))
	}
	return out.String()
}

// PatternSymbols renders a Euclid pattern as plain runes with the playhead
// on step index.
func PatternSymbols(s theme.Symbols, p sequencer.Pattern, index int) string {
	var out strings.Builder
	for i := 0; i < p.Len(); i++ {
		switch {
		case i == index && p.At(i):
			out.WriteRune(s.StepHit)
		case i == index:
			out.WriteRune(s.StepPlayhead)
		case p.At(i):
			out.WriteRune(s.StepActive)
		default:
			out.WriteRune(s.StepEmpty)
		}
		if i < p.Len()-1 {
			out.WriteRune(' ')
		}
	}
	return out.String()
}

// RenderPattern is PatternSymbols coloured for output.
func RenderPattern(th *theme.Theme, output int, p sequencer.Pattern, index int) string {
	return lipgloss.NewStyle().Foreground(th.Channel(output)).Render(PatternSymbols(th.Symbols, p, index))
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
