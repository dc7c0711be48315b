package sequencer

import (
	"math/rand/v2"
	"time"
)

// Scheduler owns the master tick counter and every channel. It is not safe
// for concurrent use; a single tick loop drives it.
type Scheduler struct {
	channels [NumChannels]Channel
	master   uint64
	bpm      Bpm
	rng      *rand.Rand
}

// NewScheduler builds a scheduler at tick 0. seed fixes the probability
// draws so runs are reproducible.
func NewScheduler(cfgs [NumChannels]Config, bpm Bpm, seed uint64) *Scheduler {
	s := &Scheduler{
		bpm: ClampBpm(int(bpm)),
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := range s.channels {
		s.channels[i].Reset(cfgs[i])
	}
	return s
}

// Tick advances the master counter by one and evaluates every channel.
func (s *Scheduler) Tick() [NumChannels]Event {
	var out [NumChannels]Event
	for i := range s.channels {
		out[i] = s.channels[i].Tick(s.roll)
	}
	s.master++
	return out
}

func (s *Scheduler) roll() uint32 {
	return s.rng.Uint32N(100)
}

// Master is the number of ticks run so far.
func (s *Scheduler) Master() uint64 { return s.master }

func (s *Scheduler) Bpm() Bpm { return s.bpm }

// SetBpm changes the tempo; the tick grid itself is tempo independent.
func (s *Scheduler) SetBpm(b Bpm) {
	s.bpm = ClampBpm(int(b))
}

// TickPeriod is the nominal tick duration at the current tempo.
func (s *Scheduler) TickPeriod() time.Duration { return TickPeriod(s.bpm) }

// Channel exposes channel i for inspection.
func (s *Scheduler) Channel(i int) *Channel { return &s.channels[i] }

func (s *Scheduler) SetRate(i int, r Rate)             { s.channels[i].SetRate(r, s.master) }
func (s *Scheduler) SetPwm(i int, p Pwm)               { s.channels[i].SetPwm(p) }
func (s *Scheduler) SetProb(i int, p Prob)             { s.channels[i].SetProb(p) }
func (s *Scheduler) SetOutputType(i int, t OutputType) { s.channels[i].SetOutputType(t) }

// SetSequence regenerates channel i's Euclidean pattern.
func (s *Scheduler) SetSequence(i int, l Length, d Density) {
	s.channels[i].SetSequence(l, d)
}

// Silence forces every output low and reports the resulting edges.
func (s *Scheduler) Silence() [NumChannels]Event {
	var out [NumChannels]Event
	for i := range s.channels {
		c := &s.channels[i]
		out[i] = Event{Edge: c.Silence(), Index: c.index}
	}
	return out
}
