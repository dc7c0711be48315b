package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"toad-time/midi"
	"toad-time/pipeline"
	"toad-time/sequencer"
	"toad-time/state"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "~/.config/toad-time/config.yaml"

// ChannelConfig is one output's power-on settings, in screen labels.
type ChannelConfig struct {
	Rate    string `yaml:"rate"`
	Pwm     string `yaml:"pwm"`
	Prob    string `yaml:"prob"`
	Length  int    `yaml:"length"`
	Density int    `yaml:"density"`
	Type    string `yaml:"type"`
}

// QueueConfig sizes the pipeline queues. Values are clamped to 4..8.
type QueueConfig struct {
	Commands int `yaml:"commands"`
	Changes  int `yaml:"changes"`
	Display  int `yaml:"display"`
}

// ButtonNotes binds controller notes to the four buttons.
type ButtonNotes struct {
	Press uint8 `yaml:"press"`
	Page  uint8 `yaml:"page"`
	Play  uint8 `yaml:"play"`
	Tap   uint8 `yaml:"tap"`
}

// MIDIConfig selects ports by name substring.
type MIDIConfig struct {
	Input     string      `yaml:"input,omitempty"`  // controller port; empty looks for a Launchpad
	Output    string      `yaml:"output,omitempty"` // gate note port; empty disables
	Channel   uint8       `yaml:"channel"`          // gate note channel, 1..16
	Notes     [4]uint8    `yaml:"notes,flow"`
	Velocity  uint8       `yaml:"velocity"`
	InChannel uint8       `yaml:"in_channel,omitempty"` // 0 accepts every channel
	EncoderCC int         `yaml:"encoder_cc"`
	Buttons   ButtonNotes `yaml:"buttons"`
}

// Config is the startup configuration. Nothing writes it back while playing.
type Config struct {
	Bpm      int                                  `yaml:"bpm"`
	Sync     string                               `yaml:"sync"`
	Channels [sequencer.NumChannels]ChannelConfig `yaml:"channels"`
	Queues   QueueConfig                          `yaml:"queues"`
	MIDI     MIDIConfig                           `yaml:"midi"`
	Theme    string                               `yaml:"theme,omitempty"`
	Debug    bool                                 `yaml:"debug"`
}

// DefaultConfig returns the power-on settings.
func DefaultConfig() *Config {
	c := &Config{
		Bpm:  120,
		Sync: "external",
		Queues: QueueConfig{
			Commands: pipeline.MaxQueue,
			Changes:  pipeline.MaxQueue,
			Display:  pipeline.MaxQueue,
		},
	}
	def := sequencer.DefaultConfig()
	for i := range c.Channels {
		c.Channels[i] = ChannelConfig{
			Rate:    def.Rate.String(),
			Pwm:     def.Pwm.String(),
			Prob:    def.Prob.String(),
			Length:  int(def.Length),
			Density: int(def.Density),
			Type:    def.OutputType.Name(),
		}
	}

	gates := midi.DefaultGateNotes()
	c.MIDI = MIDIConfig{
		Channel:   gates.Channel,
		Notes:     gates.Notes,
		Velocity:  gates.Velocity,
		EncoderCC: 16,
		Buttons:   ButtonNotes{Press: 36, Page: 37, Play: 38, Tap: 39},
	}
	return c
}

// Expand resolves a leading ~ in path, or DefaultPath when path is empty.
func Expand(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fault.Wrap(err, fmsg.With("expand config path"))
	}
	return p, nil
}

// Load reads the config at path, or returns defaults if there is no file.
// Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	p, err := Expand(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fault.Wrap(err, fmsg.With("read config"))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fault.Wrap(err,
			fmsg.WithDesc("parse config", "The config file is not valid YAML: "+p),
			ftag.With(ftag.InvalidArgument),
		)
	}
	if _, err := cfg.InitialState(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	p, err := Expand(path)
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create config directory"))
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode config"))
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fault.Wrap(err, fmsg.With("write config"))
	}
	return nil
}

func invalid(field, value string) error {
	return fault.New("invalid "+field,
		fmsg.WithDesc("invalid "+field+" "+value, "Config value "+field+" cannot be "+value),
		ftag.With(ftag.InvalidArgument),
	)
}

// InitialState turns the config into the reducer's power-on state. BPM,
// length and density are clamped; unknown labels are errors.
func (c *Config) InitialState() (state.State, error) {
	st := state.New()
	st.Bpm = sequencer.ClampBpm(c.Bpm)

	switch strings.ToLower(c.Sync) {
	case "", "external", "ext":
		st.Sync = state.External
	case "internal", "int":
		st.Sync = state.Internal
	default:
		return st, invalid("sync", c.Sync)
	}

	for i, cc := range c.Channels {
		ch, err := cc.channel()
		if err != nil {
			return st, fault.Wrap(err, fmsg.With("channel "+sequencer.ChannelName(i)))
		}
		st.Channels[i] = ch
	}
	return st, nil
}

func (cc ChannelConfig) channel() (sequencer.Config, error) {
	out := sequencer.DefaultConfig()
	var err error
	if cc.Rate != "" {
		if out.Rate, err = sequencer.ParseRate(cc.Rate); err != nil {
			return out, invalid("rate", cc.Rate)
		}
	}
	if cc.Pwm != "" {
		if out.Pwm, err = sequencer.ParsePwm(cc.Pwm); err != nil {
			return out, invalid("pwm", cc.Pwm)
		}
	}
	if cc.Prob != "" {
		if out.Prob, err = sequencer.ParseProb(cc.Prob); err != nil {
			return out, invalid("prob", cc.Prob)
		}
	}
	if cc.Type != "" {
		if out.OutputType, err = sequencer.ParseOutputType(strings.ToLower(cc.Type)); err != nil {
			return out, invalid("type", cc.Type)
		}
	}
	if cc.Length != 0 {
		out.Length = sequencer.ClampLength(cc.Length)
	}
	if cc.Density != 0 {
		out.Density = sequencer.Density(min(max(cc.Density, 1), sequencer.MaxLength))
	}
	out.Density = out.Density.Clamp(out.Length)
	return out, nil
}

// Capacities returns the clamped queue sizes.
func (c *Config) Capacities() pipeline.Capacities {
	return pipeline.Capacities{
		Commands: c.Queues.Commands,
		Changes:  c.Queues.Changes,
		Display:  c.Queues.Display,
	}.Clamp()
}

// Mapping builds the controller mapping. A Launchpad port gets the
// Launchpad layout whatever the config says.
func (c *Config) Mapping(port string) midi.Mapping {
	if midi.IsLaunchpad(port) {
		return midi.LaunchpadMapping()
	}
	b := c.MIDI.Buttons
	return midi.Mapping{
		Channel:   c.MIDI.InChannel,
		EncoderCC: c.MIDI.EncoderCC,
		Buttons: []midi.Binding{
			{Kind: midi.BindNote, Number: b.Press, Command: state.EncoderPress},
			{Kind: midi.BindNote, Number: b.Page, Command: state.PagePress},
			{Kind: midi.BindNote, Number: b.Play, Command: state.PlayPress},
			{Kind: midi.BindNote, Number: b.Tap, Command: state.BpmPress},
		},
	}
}

// GateNotes is the note layout for the gate output port.
func (c *Config) GateNotes() midi.GateNotes {
	return midi.GateNotes{
		Channel:  c.MIDI.Channel,
		Notes:    c.MIDI.Notes,
		Velocity: c.MIDI.Velocity,
	}
}
