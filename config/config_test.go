package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toad-time/config"
	"toad-time/midi"
	"toad-time/pipeline"
	"toad-time/sequencer"
	"toad-time/state"
)

func TestDefaultConfigMatchesPowerOnState(t *testing.T) {
	st, err := config.DefaultConfig().InitialState()
	require.NoError(t, err)
	assert.Equal(t, state.New(), st)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := config.DefaultConfig()
	cfg.Bpm = 96
	cfg.Channels[3].Type = "euclid"
	cfg.MIDI.Output = "IAC"

	require.NoError(t, cfg.Save(path))
	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
bpm: 400
sync: internal
channels:
  - {rate: "/4", pwm: "Pew"}
  - {rate: "x16", prob: "30%"}
  - {type: euclid, length: 5, density: 9}
  - {}
queues: {commands: 2, changes: 6, display: 20}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Capacities{Commands: 4, Changes: 6, Display: 8}, cfg.Capacities())
	assert.Equal(t, midi.DefaultGateNotes(), cfg.GateNotes(), "midi section untouched")

	st, err := cfg.InitialState()
	require.NoError(t, err)
	assert.Equal(t, sequencer.MaxBpm, st.Bpm)
	assert.Equal(t, state.Internal, st.Sync)

	assert.Equal(t, sequencer.Div(4), st.Channels[0].Rate)
	assert.Equal(t, sequencer.PwmPew, st.Channels[0].Pwm)
	assert.Equal(t, sequencer.Mult(16), st.Channels[1].Rate)
	assert.Equal(t, sequencer.Prob30, st.Channels[1].Prob)

	assert.Equal(t, sequencer.Euclid, st.Channels[2].OutputType)
	assert.Equal(t, sequencer.Length(5), st.Channels[2].Length)
	assert.Equal(t, sequencer.Density(5), st.Channels[2].Density)

	assert.Equal(t, sequencer.DefaultConfig(), st.Channels[3])
}

func TestLoadRejectsUnknownLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels:\n  - {rate: x7}\n  - {}\n  - {}\n  - {}\n"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bpm: [1, 2"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
}

func TestMapping(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, midi.DefaultMapping(), cfg.Mapping("Arturia BeatStep"))
	assert.Equal(t, midi.LaunchpadMapping(), cfg.Mapping("Launchpad X LPX MIDI"))
}
