package state

import (
	"time"

	"toad-time/sequencer"
)

const (
	tapCapacity = 8
	tapTimeout  = 5 * time.Second
)

// BpmSync estimates tempo from tap timestamps. It keeps the last eight taps
// and forgets them all once a gap reaches five seconds. The zero value is
// ready to use and it copies by value.
type BpmSync struct {
	taps [tapCapacity]time.Time
	n    int
}

// Pulse records a tap. It returns an estimate once at least two taps are
// buffered.
func (b *BpmSync) Pulse(now time.Time) (sequencer.Bpm, bool) {
	if b.n == 0 || now.Sub(b.taps[b.n-1]) >= tapTimeout {
		b.Reset()
		b.push(now)
		return 0, false
	}
	b.push(now)
	return b.estimate(), true
}

// Reset drops every buffered tap.
func (b *BpmSync) Reset() {
	*b = BpmSync{}
}

// Len is the number of buffered taps.
func (b *BpmSync) Len() int { return b.n }

func (b *BpmSync) push(t time.Time) {
	if b.n == tapCapacity {
		copy(b.taps[:], b.taps[1:])
		b.n--
	}
	b.taps[b.n] = t
	b.n++
}

// estimate converts the mean gap to BPM, rounded and clamped. The gaps
// telescope, so the mean is the span over the gap count.
func (b *BpmSync) estimate() sequencer.Bpm {
	gaps := int64(b.n - 1)
	span := int64(b.taps[b.n-1].Sub(b.taps[0]))
	if span <= 0 {
		return sequencer.MaxBpm
	}
	minute := int64(time.Minute)
	bpm := (minute*gaps + span/2) / span
	return sequencer.ClampBpm(int(bpm))
}
