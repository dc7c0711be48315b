package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"toad-time/state"
	"toad-time/widgets"
)

type keyMap struct {
	Right key.Binding
	Left  key.Binding
	Press key.Binding
	Page  key.Binding
	Play  key.Binding
	Tap   key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Right: key.NewBinding(key.WithKeys("right", "l", "up", "k"), key.WithHelp("→/l", "encoder right")),
		Left:  key.NewBinding(key.WithKeys("left", "h", "down", "j"), key.WithHelp("←/h", "encoder left")),
		Press: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next field")),
		Page:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
		Play:  key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space/p", "play/pause")),
		Tap:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tap tempo")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// panelKey is a front-panel binding and the command it sends.
type panelKey struct {
	binding key.Binding
	cmd     state.Command
}

func (k keyMap) commands() []panelKey {
	return []panelKey{
		{k.Right, state.EncoderRight},
		{k.Left, state.EncoderLeft},
		{k.Press, state.EncoderPress},
		{k.Page, state.PagePress},
		{k.Play, state.PlayPress},
		{k.Tap, state.BpmPress},
	}
}

func (k keyMap) helpSections() []widgets.KeySection {
	var panel []widgets.KeyBinding
	for _, c := range k.commands() {
		h := c.binding.Help()
		panel = append(panel, widgets.KeyBinding{Key: h.Key, Desc: h.Desc})
	}
	return []widgets.KeySection{
		{Title: "Front panel", Keys: panel},
		{Title: "", Keys: []widgets.KeyBinding{
			{Key: k.Help.Help().Key, Desc: k.Help.Help().Desc},
			{Key: k.Quit.Help().Key, Desc: k.Quit.Help().Desc},
		}},
	}
}
