package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"toad-time/debug"
	"toad-time/state"
)

// Offer hands a decoded command to the pipeline without waiting.
type Offer func(state.Command) error

// Controller is an input port decoded through a Mapping.
type Controller struct {
	id       string
	mapping  Mapping
	offer    Offer
	stopFunc func()
}

// NewController starts listening on inPort. Commands are delivered from the
// driver's callback goroutine.
func NewController(id string, inPort drivers.In, m Mapping, offer Offer) (*Controller, error) {
	c := &Controller{id: id, mapping: m, offer: offer}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		c.handle(msg)
	})
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("listen to "+id))
	}
	c.stopFunc = stop
	return c, nil
}

func (c *Controller) handle(msg gomidi.Message) {
	cmd, ok := c.mapping.Decode(msg)
	if !ok {
		return
	}
	if err := c.offer(cmd); err != nil {
		// Already fatal for the pipeline; nothing more to do here.
		debug.Log("midi-in", "%s: drop %s: %v", c.id, cmd, err)
	}
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Close() error {
	if c.stopFunc != nil {
		c.stopFunc()
		c.stopFunc = nil
	}
	return nil
}
