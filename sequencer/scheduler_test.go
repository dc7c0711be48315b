package sequencer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"toad-time/sequencer"
)

func defaults() [sequencer.NumChannels]sequencer.Config {
	var cfgs [sequencer.NumChannels]sequencer.Config
	for i := range cfgs {
		cfgs[i] = sequencer.DefaultConfig()
	}
	return cfgs
}

// risingEdges counts rising edges on channel ch over n ticks.
func risingEdges(s *sequencer.Scheduler, ch, n int) int {
	count := 0
	for i := 0; i < n; i++ {
		ev := s.Tick()[ch]
		if ev.Edge && ev.High {
			count++
		}
	}
	return count
}

// SchedulerSuite exercises the tick engine end to end.
type SchedulerSuite struct {
	suite.Suite
	s *sequencer.Scheduler
}

func (s *SchedulerSuite) SetupTest() {
	s.s = sequencer.NewScheduler(defaults(), 120, 1)
}

// TestGateDuty: unity rate at 50% is high for exactly half of each beat.
func (s *SchedulerSuite) TestGateDuty() {
	var edges []int
	for i := 0; i < 2*sequencer.Resolution; i++ {
		if s.s.Tick()[0].Edge {
			edges = append(edges, i)
		}
	}
	s.Equal([]int{0, 960, 1920, 2880}, edges)
}

// TestPwmChangeMovesFallingEdge: the falling edge follows the duty level.
func (s *SchedulerSuite) TestPwmChangeMovesFallingEdge() {
	s.s.SetPwm(1, sequencer.Pwm20)
	var edges []int
	for i := 0; i < sequencer.Resolution; i++ {
		if s.s.Tick()[1].Edge {
			edges = append(edges, i)
		}
	}
	s.Equal([]int{0, 384}, edges)
}

// TestMultDoublesOnsets: x4 produces twice the onsets of x2.
func (s *SchedulerSuite) TestMultDoublesOnsets() {
	s.s.SetRate(0, sequencer.Mult(2))
	s.s.SetRate(1, sequencer.Mult(4))

	var x2, x4 int
	for i := 0; i < 4*sequencer.Resolution; i++ {
		ev := s.s.Tick()
		if ev[0].Edge && ev[0].High {
			x2++
		}
		if ev[1].Edge && ev[1].High {
			x4++
		}
	}
	s.Equal(8, x2)
	s.Equal(16, x4)
	s.Equal(2*x2, x4)
}

// TestDivStretchesPeriod: /3 fires once every three beats.
func (s *SchedulerSuite) TestDivStretchesPeriod() {
	s.s.SetRate(2, sequencer.Div(3))
	s.Equal(2, risingEdges(s.s, 2, 6*sequencer.Resolution))
	s.Equal(uint32(3*sequencer.Resolution), s.s.Channel(2).PeriodTicks())
}

// TestEuclidEndToEnd: E(3,8) over eight unity periods gives three high onsets
// in pattern order.
func (s *SchedulerSuite) TestEuclidEndToEnd() {
	s.s.SetOutputType(0, sequencer.Euclid)
	s.s.SetSequence(0, 8, 3)
	want := sequencer.Generate(3, 8)

	period := int(sequencer.Unity.PeriodTicks())
	var onsets []bool
	var indexes []uint8
	highPeriods := 0
	for i := 0; i < 8*period; i++ {
		ev := s.s.Tick()[0]
		if ev.IndexChanged {
			onsets = append(onsets, ev.High)
			indexes = append(indexes, ev.Index)
			if ev.High {
				highPeriods++
			}
		}
	}

	s.Equal(3, highPeriods)
	s.Equal([]uint8{0, 1, 2, 3, 4, 5, 6, 7}, indexes)
	for i, high := range onsets {
		s.Equal(want.At(i), high, "step %d", i)
	}
}

// TestSequenceResetOnlyOnChange: re-sending the same length keeps the index.
func (s *SchedulerSuite) TestSequenceResetOnlyOnChange() {
	s.s.SetOutputType(3, sequencer.Euclid)
	s.s.SetSequence(3, 8, 3)
	for i := 0; i < 3*sequencer.Resolution; i++ {
		s.s.Tick()
	}
	s.Equal(uint8(2), s.s.Channel(3).Index())

	s.s.SetSequence(3, 8, 3)
	s.Equal(uint8(2), s.s.Channel(3).Index(), "unchanged sequence keeps position")

	s.s.SetSequence(3, 8, 4)
	s.Equal(uint8(0), s.s.Channel(3).Index(), "density change restarts")
}

// TestLengthBelowDensityClamps: shrinking length pulls density down.
func (s *SchedulerSuite) TestLengthBelowDensityClamps() {
	s.s.SetSequence(0, 8, 6)
	s.s.SetSequence(0, 4, 6)
	cfg := s.s.Channel(0).Config()
	s.Equal(sequencer.Length(4), cfg.Length)
	s.Equal(sequencer.Density(4), cfg.Density)
	s.Equal(4, s.s.Channel(0).Pattern().Active())
}

// TestSilence: forcing outputs low reports falling edges once.
func (s *SchedulerSuite) TestSilence() {
	s.s.Tick()
	s.True(s.s.Channel(0).High())

	ev := s.s.Silence()
	for i := range ev {
		s.True(ev[i].Edge, "channel %d", i)
		s.False(s.s.Channel(i).High())
	}
	again := s.s.Silence()
	s.False(again[0].Edge)

	// stays low for the rest of the period
	for i := 1; i < sequencer.Resolution; i++ {
		s.False(s.s.Tick()[0].High)
	}
	s.True(s.s.Tick()[0].High, "next onset fires again")
}

// TestRateChangeKeepsPhaseLock: channels realign to the master counter.
func (s *SchedulerSuite) TestRateChangeKeepsPhaseLock() {
	for i := 0; i < 100; i++ {
		s.s.Tick()
	}
	s.s.SetRate(0, sequencer.Mult(64)) // period 30, master 100 -> phase 10
	var first int
	for i := 0; i < 30; i++ {
		ev := s.s.Tick()[0]
		if ev.Edge && ev.High {
			first = int(s.s.Master()) - 1
			break
		}
	}
	s.Equal(120, first)
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerSuite))
}

func TestProbabilityGatesOnsets(t *testing.T) {
	cfgs := defaults()
	cfgs[0].Prob = sequencer.Prob50
	cfgs[0].Rate = sequencer.Mult(64)
	s := sequencer.NewScheduler(cfgs, 120, 42)

	const periods = 2000
	fired := risingEdges(s, 0, periods*30)
	assert.Greater(t, fired, periods/4)
	assert.Less(t, fired, 3*periods/4)

	// same seed, same draws
	again := sequencer.NewScheduler(cfgs, 120, 42)
	assert.Equal(t, fired, risingEdges(again, 0, periods*30))
}

func TestEuclidIgnoresProbability(t *testing.T) {
	cfgs := defaults()
	cfgs[0].Prob = sequencer.Prob10
	cfgs[0].OutputType = sequencer.Euclid
	cfgs[0].Length = 4
	cfgs[0].Density = 4
	s := sequencer.NewScheduler(cfgs, 120, 7)

	assert.Equal(t, 8, risingEdges(s, 0, 8*sequencer.Resolution))
}

func TestSchedulerBpm(t *testing.T) {
	s := sequencer.NewScheduler(defaults(), 500, 1)
	require.Equal(t, sequencer.MaxBpm, s.Bpm())
	s.SetBpm(60)
	assert.Equal(t, sequencer.TickPeriod(60), s.TickPeriod())
}
