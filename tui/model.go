package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"toad-time/midi"
	"toad-time/sequencer"
	"toad-time/state"
	"toad-time/theme"
	"toad-time/widgets"
)

// Offer delivers a keypress to the pipeline input.
type Offer func(state.Command) error

type Model struct {
	Theme   *theme.Theme
	display *Display
	devices <-chan midi.DeviceEvent
	offer   Offer
	keys    keyMap

	view     state.State
	last     state.StateChange
	high     [sequencer.NumChannels]bool
	ready    bool
	showHelp bool
	device   string
	err      error
	quitting bool
}

type frameMsg Frame

type lightsMsg [sequencer.NumChannels]bool

type DeviceEventMsg midi.DeviceEvent

// StoppedMsg tells the program the pipeline has ended.
type StoppedMsg struct{ Err error }

// NewModel builds the program model. devices may be nil when no MIDI
// controller is watched.
func NewModel(d *Display, offer Offer, devices <-chan midi.DeviceEvent, th *theme.Theme) Model {
	return Model{
		Theme:   th,
		display: d,
		devices: devices,
		offer:   offer,
		keys:    defaultKeyMap(),
	}
}

// Err is the error that ended the program, if any.
func (m Model) Err() error { return m.err }

func ListenForFrames(d *Display) tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-d.frames)
	}
}

func ListenForLights(d *Display) tea.Cmd {
	return func() tea.Msg {
		return lightsMsg(<-d.lights)
	}
}

func ListenForDevices(events <-chan midi.DeviceEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForFrames(m.display),
		ListenForLights(m.display),
		ListenForDevices(m.devices),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
		for _, c := range m.keys.commands() {
			if key.Matches(msg, c.binding) {
				if err := m.offer(c.cmd); err != nil {
					m.err = err
					m.quitting = true
					return m, tea.Quit
				}
				break
			}
		}

	case frameMsg:
		m.view, m.last, m.ready = msg.View, msg.Change, true
		return m, ListenForFrames(m.display)

	case lightsMsg:
		m.high = msg
		return m, ListenForLights(m.display)

	case DeviceEventMsg:
		if msg.Type == midi.DeviceConnected {
			m.device = msg.ID
		} else if m.device == msg.ID {
			m.device = ""
		}
		return m, ListenForDevices(m.devices)

	case StoppedMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  toad-time starting..."
	}

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	playState := "PLAY"
	if m.view.Play == state.Paused {
		playState = "PAUSE"
	}
	deviceStatus := ""
	if m.device != "" {
		deviceStatus = "  midi:" + m.device
	}
	header := headerStyle.Render(fmt.Sprintf("toad-time  %s  %3dbpm  %s%s", playState, m.view.Bpm, m.view.Sync, deviceStatus))

	var body string
	if o, ok := m.view.Cursor.Screen.Output(); ok {
		body = m.outputView(o)
	} else {
		body = m.homeView()
	}

	help := dimStyle.Render("←→:encoder  enter:field  tab:page  space:play  t:tap  ?:help  q:quit")
	if m.showHelp {
		help = dimStyle.Render(widgets.RenderKeyHelp(m.keys.helpSections()))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderLEDRow(m.Theme, m.high))
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	switch m.last.Kind {
	case state.ChangeNone, state.ChangeInitialize, state.ChangeIndex:
	default:
		out.WriteString(dimStyle.Render("› " + m.last.String()))
		out.WriteString("\n")
	}
	out.WriteString(help)
	return out.String()
}

// field renders one "▸ Name  value" line, pointed at when under the cursor.
func (m Model) field(e state.Element, name, value string) string {
	pointer := " "
	style := lipgloss.NewStyle().Foreground(m.Theme.FG())
	if m.view.Cursor.Element == e {
		pointer = string(m.Theme.Symbols.Pointer)
		style = lipgloss.NewStyle().Foreground(m.Theme.Cursor()).Bold(true)
	}
	return style.Render(fmt.Sprintf("%s %-6s %s", pointer, name, value))
}

func (m Model) homeView() string {
	title := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true).Render("HOME")
	lines := []string{
		title,
		m.field(state.ElementBpm, "Bpm", m.view.Bpm.String()),
		m.field(state.ElementSync, "Sync", m.view.Sync.String()),
		"",
	}
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	for i, c := range m.view.Channels {
		name := lipgloss.NewStyle().Foreground(m.Theme.Channel(i)).Render(sequencer.ChannelName(i))
		var detail string
		if c.OutputType == sequencer.Euclid {
			detail = fmt.Sprintf("%-4s E(%s,%s)", c.Rate, c.Density, c.Length)
		} else {
			detail = fmt.Sprintf("%-4s %4s %4s", c.Rate, c.Prob, c.Pwm)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", name, dim.Render(c.OutputType.String()), dim.Render(detail)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) outputView(o int) string {
	c := m.view.Channels[o]
	title := lipgloss.NewStyle().Foreground(m.Theme.Channel(o)).Bold(true).
		Render(fmt.Sprintf("OUTPUT %s", sequencer.ChannelName(o)))

	lines := []string{title}
	for _, e := range m.view.Fields() {
		lines = append(lines, m.field(e, fieldLabel(e), fieldValue(c, e)))
	}
	if c.OutputType == sequencer.Euclid {
		lines = append(lines, "", "  "+widgets.RenderPattern(m.Theme, o, m.view.Pattern(o), int(m.view.Index[o])))
	}
	return strings.Join(lines, "\n")
}

func fieldLabel(e state.Element) string {
	if e == state.ElementOutputType {
		return "Type"
	}
	return e.String()
}

func fieldValue(c sequencer.Config, e state.Element) string {
	switch e {
	case state.ElementRate:
		return c.Rate.String()
	case state.ElementPwm:
		return c.Pwm.String()
	case state.ElementProb:
		return c.Prob.String()
	case state.ElementLength:
		return c.Length.String()
	case state.ElementDensity:
		return c.Density.String()
	case state.ElementOutputType:
		return c.OutputType.String()
	}
	return ""
}
