package sequencer

import (
	"fmt"
	"time"
)

// NumChannels is the number of independent trigger outputs.
const NumChannels = 4

// OutputType selects how a channel turns onsets into gates.
type OutputType uint8

const (
	// Gate channels are driven by Rate, Pwm and Prob.
	Gate OutputType = iota
	// Euclid channels are driven by Rate, Length and Density.
	Euclid
)

func (t OutputType) Next() (OutputType, bool) {
	if t == Gate {
		return Euclid, true
	}
	return t, false
}

func (t OutputType) Prev() (OutputType, bool) {
	if t == Euclid {
		return Gate, true
	}
	return t, false
}

// String is the single-letter screen label.
func (t OutputType) String() string {
	if t == Euclid {
		return "E"
	}
	return "G"
}

// Name is the long form used in configuration files.
func (t OutputType) Name() string {
	if t == Euclid {
		return "euclid"
	}
	return "gate"
}

func ParseOutputType(s string) (OutputType, error) {
	switch s {
	case "gate", "G":
		return Gate, nil
	case "euclid", "E":
		return Euclid, nil
	}
	return Gate, fmt.Errorf("unknown output type %q", s)
}

// ChannelName is the front-panel label of output i.
func ChannelName(i int) string {
	return string(rune('A' + i))
}

// Bpm is the master tempo, 1..300.
type Bpm uint16

const (
	MinBpm Bpm = 1
	MaxBpm Bpm = 300
)

// ClampBpm pulls an arbitrary integer into MinBpm..MaxBpm.
func ClampBpm(n int) Bpm {
	if n < int(MinBpm) {
		return MinBpm
	}
	if n > int(MaxBpm) {
		return MaxBpm
	}
	return Bpm(n)
}

func (b Bpm) Next() (Bpm, bool) {
	if b >= MaxBpm {
		return b, false
	}
	return b + 1, true
}

func (b Bpm) Prev() (Bpm, bool) {
	if b <= MinBpm {
		return b, false
	}
	return b - 1, true
}

func (b Bpm) String() string { return fmt.Sprintf("%d", b) }

// TicksPerMinute is the number of master ticks in one minute at b. A tick
// schedule anchored at t0 lands exactly on t0+1m after this many ticks.
func (b Bpm) TicksPerMinute() uint64 {
	return uint64(b) * Resolution
}

// TickPeriod is the nominal duration of one master tick at b.
func TickPeriod(b Bpm) time.Duration {
	return time.Minute / time.Duration(b.TicksPerMinute())
}

// TickOffset is the exact offset of tick n from the schedule anchor, for
// n < b.TicksPerMinute(). Computing each offset from the anchor instead of
// summing TickPeriod keeps rounding error from accumulating.
func TickOffset(b Bpm, n uint64) time.Duration {
	return time.Duration(n * uint64(time.Minute) / b.TicksPerMinute())
}
