package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// FindOutPort returns the first output port whose name match accepts.
func FindOutPort(match func(string) bool) (drivers.Out, error) {
	for _, p := range gomidi.GetOutPorts() {
		if match(p.String()) {
			return p, nil
		}
	}
	return nil, fault.New("no matching output port",
		fmsg.WithDesc("no matching output port", "No MIDI output port matches the configured name"),
		ftag.With(ftag.NotFound),
	)
}

// FindInPort returns the first input port whose name match accepts.
func FindInPort(match func(string) bool) (drivers.In, error) {
	for _, p := range gomidi.GetInPorts() {
		if match(p.String()) {
			return p, nil
		}
	}
	return nil, fault.New("no matching input port",
		fmsg.WithDesc("no matching input port", "No MIDI input port matches the configured name"),
		ftag.With(ftag.NotFound),
	)
}
