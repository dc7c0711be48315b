package sequencer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toad-time/sequencer"
)

func TestRateNextPrevRoundTrip(t *testing.T) {
	for i, r := range sequencer.Rates {
		prev, okPrev := r.Prev()
		next, okNext := r.Next()

		if i == 0 {
			assert.False(t, okPrev, "slowest rate has no prev")
			assert.Equal(t, r, prev)
		} else {
			require.True(t, okPrev)
			back, ok := prev.Next()
			require.True(t, ok)
			assert.Equal(t, r, back, "next(prev(%s))", r)
		}

		if i == len(sequencer.Rates)-1 {
			assert.False(t, okNext, "fastest rate has no next")
			assert.Equal(t, r, next)
		} else {
			require.True(t, okNext)
			back, ok := next.Prev()
			require.True(t, ok)
			assert.Equal(t, r, back, "prev(next(%s))", r)
		}
	}
}

func TestRatePeriodIsExact(t *testing.T) {
	for _, r := range sequencer.Rates {
		p := r.PeriodTicks()
		require.NotZero(t, p, r.String())
		switch r.Kind {
		case sequencer.KindMult:
			assert.Zero(t, sequencer.Resolution%r.N, "x%d must divide the resolution", r.N)
			assert.Equal(t, uint32(sequencer.Resolution), p*r.N)
		case sequencer.KindDiv:
			assert.Equal(t, uint32(sequencer.Resolution)*r.N, p)
		default:
			assert.Equal(t, uint32(sequencer.Resolution), p)
		}
		// every 10% duty boundary must also be whole
		assert.Zero(t, p%sequencer.PwmSteps, "period of %s must be a multiple of %d", r, sequencer.PwmSteps)
	}
}

func TestRateOrderIsSlowToFast(t *testing.T) {
	for i := 1; i < len(sequencer.Rates); i++ {
		assert.Greater(t, sequencer.Rates[i-1].PeriodTicks(), sequencer.Rates[i].PeriodTicks())
	}
}

func TestRateLabels(t *testing.T) {
	assert.Equal(t, "/64", sequencer.Div(64).String())
	assert.Equal(t, "x1", sequencer.Unity.String())
	assert.Equal(t, "x16", sequencer.Mult(16).String())

	r, err := sequencer.ParseRate("/5")
	require.NoError(t, err)
	assert.Equal(t, sequencer.Div(5), r)

	_, err = sequencer.ParseRate("/7")
	assert.Error(t, err)
}

func TestPwmSaturates(t *testing.T) {
	_, ok := sequencer.PwmPew.Prev()
	assert.False(t, ok)
	_, ok = sequencer.Pwm90.Next()
	assert.False(t, ok)

	p, ok := sequencer.PwmPew.Next()
	require.True(t, ok)
	assert.Equal(t, sequencer.Pwm10, p)
	assert.Len(t, sequencer.Pwms, 10)
}

func TestPwmHighTicks(t *testing.T) {
	for _, r := range sequencer.Rates {
		period := r.PeriodTicks()
		for _, p := range sequencer.Pwms {
			w := p.HighTicks(period)
			assert.Positive(t, w, "%s at %s", p, r)
			assert.Less(t, w, period, "%s at %s leaves a low phase", p, r)
		}
	}
	assert.Equal(t, uint32(960), sequencer.Pwm50.HighTicks(sequencer.Resolution))
	assert.Equal(t, uint32(1), sequencer.PwmPew.HighTicks(sequencer.Mult(64).PeriodTicks()))
}

func TestPwmPewIsShortestPulse(t *testing.T) {
	// x3 and x5 periods are not multiples of 30: Pew rounds down.
	assert.Equal(t, uint32(21), sequencer.PwmPew.HighTicks(sequencer.Mult(3).PeriodTicks()))
	assert.Equal(t, uint32(12), sequencer.PwmPew.HighTicks(sequencer.Mult(5).PeriodTicks()))
	for _, r := range sequencer.Rates {
		period := r.PeriodTicks()
		assert.Less(t, sequencer.PwmPew.HighTicks(period), sequencer.Pwm10.HighTicks(period), "at %s", r)
	}
}

func TestProbSaturatesAndFires(t *testing.T) {
	_, ok := sequencer.Prob10.Prev()
	assert.False(t, ok)
	_, ok = sequencer.Prob100.Next()
	assert.False(t, ok)
	assert.Len(t, sequencer.Probs, 10)

	always := func() uint32 { return 99 }
	never := func() uint32 { return 0 }
	assert.True(t, sequencer.Prob100.Fires(always))
	assert.False(t, sequencer.Prob50.Fires(func() uint32 { return 50 }))
	assert.True(t, sequencer.Prob50.Fires(func() uint32 { return 49 }))
	assert.True(t, sequencer.Prob10.Fires(never))
}

func TestLengthDensityBounds(t *testing.T) {
	_, ok := sequencer.Length(16).Next()
	assert.False(t, ok)
	_, ok = sequencer.Length(1).Prev()
	assert.False(t, ok)

	_, ok = sequencer.Density(5).Next(5)
	assert.False(t, ok, "density saturates at length")
	d, ok := sequencer.Density(4).Next(5)
	require.True(t, ok)
	assert.Equal(t, sequencer.Density(5), d)

	assert.Equal(t, sequencer.Density(3), sequencer.Density(9).Clamp(3))
	assert.Equal(t, sequencer.Density(1), sequencer.Density(0).Clamp(3))
}

func TestTickPeriod(t *testing.T) {
	prev := sequencer.TickPeriod(sequencer.MinBpm)
	assert.Positive(t, prev)
	for b := sequencer.MinBpm + 1; b <= sequencer.MaxBpm; b++ {
		p := sequencer.TickPeriod(b)
		require.Positive(t, p)
		require.Less(t, p, prev, "tick period must shrink at %d bpm", b)
		prev = p
	}

	for _, b := range []sequencer.Bpm{1, 97, 120, 300} {
		n := b.TicksPerMinute()
		assert.Equal(t, int64(60e9)*int64(n-1)/int64(n), int64(sequencer.TickOffset(b, n-1)))
		assert.Equal(t, "1m0s", sequencer.TickOffset(b, n).String())
	}
}

func TestClampBpm(t *testing.T) {
	assert.Equal(t, sequencer.MinBpm, sequencer.ClampBpm(-4))
	assert.Equal(t, sequencer.MaxBpm, sequencer.ClampBpm(301))
	assert.Equal(t, sequencer.Bpm(120), sequencer.ClampBpm(120))
}
