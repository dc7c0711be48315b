package pipeline

import (
	"context"
	"errors"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Queue capacities are bounded; anything configured outside this range is
// pulled back into it.
const (
	MinQueue = 4
	MaxQueue = 8
)

// ErrQueueOverflow is returned when a producer that cannot wait finds its
// queue full. A dropped command would leave the display and the outputs
// disagreeing, so the whole pipeline stops.
var ErrQueueOverflow = errors.New("queue overflow")

func overflow(queue string) error {
	return fault.Wrap(ErrQueueOverflow,
		fmsg.With(queue+" queue full"),
		ftag.With(ftag.Internal),
	)
}

// Capacities sizes the three queues.
type Capacities struct {
	Commands int // Input -> Reducer
	Changes  int // Reducer -> Tick
	Display  int // Tick -> Display
}

// DefaultCapacities fills every queue to the maximum.
func DefaultCapacities() Capacities {
	return Capacities{Commands: MaxQueue, Changes: MaxQueue, Display: MaxQueue}
}

// Clamp pulls every capacity into MinQueue..MaxQueue.
func (c Capacities) Clamp() Capacities {
	return Capacities{
		Commands: clampCapacity(c.Commands),
		Changes:  clampCapacity(c.Changes),
		Display:  clampCapacity(c.Display),
	}
}

func clampCapacity(n int) int {
	return min(max(n, MinQueue), MaxQueue)
}

// send blocks until v is queued or ctx ends.
func send[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
