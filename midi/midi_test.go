package midi

import (
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"toad-time/sequencer"
	"toad-time/state"
)

func TestDecodeDefaultMapping(t *testing.T) {
	m := DefaultMapping()
	cases := []struct {
		msg  gomidi.Message
		want state.Command
		ok   bool
	}{
		{gomidi.ControlChange(0, 16, 1), state.EncoderRight, true},
		{gomidi.ControlChange(3, 16, 5), state.EncoderRight, true},
		{gomidi.ControlChange(0, 16, 127), state.EncoderLeft, true},
		{gomidi.ControlChange(0, 16, 65), state.EncoderLeft, true},
		{gomidi.ControlChange(0, 16, 64), 0, false},
		{gomidi.ControlChange(0, 16, 0), 0, false},
		{gomidi.ControlChange(0, 17, 1), 0, false},
		{gomidi.NoteOn(0, 36, 90), state.EncoderPress, true},
		{gomidi.NoteOn(0, 37, 90), state.PagePress, true},
		{gomidi.NoteOn(0, 38, 90), state.PlayPress, true},
		{gomidi.NoteOn(0, 39, 90), state.BpmPress, true},
		{gomidi.NoteOn(0, 39, 0), 0, false},
		{gomidi.NoteOff(0, 39), 0, false},
		{gomidi.NoteOn(0, 40, 90), 0, false},
	}
	for _, tc := range cases {
		got, ok := m.Decode(tc.msg)
		assert.Equal(t, tc.ok, ok, "%s", tc.msg)
		if tc.ok {
			assert.Equal(t, tc.want, got, "%s", tc.msg)
		}
	}
}

func TestDecodeChannelFilter(t *testing.T) {
	m := DefaultMapping()
	m.Channel = 2

	_, ok := m.Decode(gomidi.NoteOn(0, 37, 90))
	assert.False(t, ok)
	cmd, ok := m.Decode(gomidi.NoteOn(1, 37, 90))
	require.True(t, ok)
	assert.Equal(t, state.PagePress, cmd)
}

func TestDecodeLaunchpad(t *testing.T) {
	m := LaunchpadMapping()

	cmd, ok := m.Decode(gomidi.ControlChange(0, lpUp, 127))
	require.True(t, ok)
	assert.Equal(t, state.EncoderRight, cmd)

	_, ok = m.Decode(gomidi.ControlChange(0, lpUp, 0))
	assert.False(t, ok, "release")

	cmd, ok = m.Decode(gomidi.ControlChange(0, lpSession, 127))
	require.True(t, ok)
	assert.Equal(t, state.PagePress, cmd)

	_, ok = m.Decode(gomidi.NoteOn(0, 11, 127))
	assert.False(t, ok, "grid pads are unbound")
}

type sent struct {
	msgs []gomidi.Message
	err  error
}

func (s *sent) send(m gomidi.Message) error {
	s.msgs = append(s.msgs, m)
	return s.err
}

func TestGateSink(t *testing.T) {
	var out sent
	g := newGateSink(out.send, DefaultGateNotes())

	g.Set(0, true)
	g.Set(2, true)
	g.Set(0, false)
	g.Release()

	require.Len(t, out.msgs, 4)
	assert.Equal(t, gomidi.NoteOn(9, 36, 100), out.msgs[0])
	assert.Equal(t, gomidi.NoteOn(9, 42, 100), out.msgs[1])
	assert.Equal(t, gomidi.NoteOff(9, 36), out.msgs[2])
	assert.Equal(t, gomidi.NoteOff(9, 42), out.msgs[3])
}

func TestGateSinkDefaults(t *testing.T) {
	var out sent
	g := newGateSink(out.send, GateNotes{Notes: [sequencer.NumChannels]uint8{60, 61, 62, 63}})
	out.err = errors.New("port gone")

	g.Set(3, true)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, gomidi.NoteOn(0, 63, 100), out.msgs[0])
}

func TestLaunchpadLights(t *testing.T) {
	var out sent
	colors := [sequencer.NumChannels][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 100, 255}, {255, 255, 255}}
	lp := newLaunchpadLights(out.send, colors)

	lp.Set(1, true)
	lp.Set(1, false)
	lp.Set(3, true)

	require.Len(t, out.msgs, 3)
	assert.Equal(t, gomidi.NoteOn(0, 12, 21), out.msgs[0])
	assert.Equal(t, gomidi.NoteOn(0, 12, 0), out.msgs[1])
	assert.Equal(t, gomidi.NoteOn(0, 14, 119), out.msgs[2])
}

func TestMapRGBToLaunchpad(t *testing.T) {
	assert.Equal(t, uint8(0), mapRGBToLaunchpad([3]uint8{10, 10, 10}))
	assert.Equal(t, uint8(5), mapRGBToLaunchpad([3]uint8{250, 5, 5}))
	assert.Equal(t, uint8(119), mapRGBToLaunchpad([3]uint8{240, 240, 240}))
}

func TestMatchName(t *testing.T) {
	assert.True(t, MatchName("")("Launchpad X LPX MIDI"))
	assert.False(t, MatchName("")("Launchpad X LPX DAW"))
	assert.True(t, MatchName("arturia")("Arturia BeatStep Pro"))
	assert.False(t, MatchName("arturia")("IAC Driver Bus 1"))
}

type fakeDevice struct {
	closed bool
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

func TestDeviceManagerReconcile(t *testing.T) {
	opened := map[string]*fakeDevice{}
	dm := NewDeviceManager(MatchName("beatstep"), func(id string, _ drivers.In) (io.Closer, error) {
		if id == "BeatStep Broken" {
			return nil, errors.New("busy")
		}
		d := &fakeDevice{}
		opened[id] = d
		return d, nil
	})

	dm.reconcile(map[string]drivers.In{"BeatStep Pro": nil, "IAC Bus": nil, "BeatStep Broken": nil})
	assert.Equal(t, []string{"BeatStep Pro"}, dm.Connected())
	assert.Equal(t, DeviceEvent{Type: DeviceConnected, ID: "BeatStep Pro"}, <-dm.Events())

	// Seen again: nothing new.
	dm.reconcile(map[string]drivers.In{"BeatStep Pro": nil})
	assert.Len(t, opened, 1)

	dm.reconcile(map[string]drivers.In{"BeatStep Pro 2": nil})
	ids := dm.Connected()
	sort.Strings(ids)
	assert.Equal(t, []string{"BeatStep Pro 2"}, ids)
	assert.True(t, opened["BeatStep Pro"].closed)

	var events []DeviceEvent
	for range 2 {
		events = append(events, <-dm.Events())
	}
	assert.ElementsMatch(t, []DeviceEvent{
		{Type: DeviceConnected, ID: "BeatStep Pro 2"},
		{Type: DeviceDisconnected, ID: "BeatStep Pro"},
	}, events)
}
