package sequencer

import "fmt"

const (
	// MaxMult is the largest clock multiple the tick grid has to represent.
	MaxMult = 192
	// PwmSteps is the duty-cycle granularity (10% steps).
	PwmSteps = 10
	// Resolution is the number of master ticks per unity-rate beat. Every
	// rate denominator and every PWM step divides it, so all period and
	// duty boundaries land on whole ticks.
	Resolution = PwmSteps * MaxMult
)

// RateKind tags a Rate as a clock divider, unity, or multiplier
type RateKind uint8

const (
	KindDiv RateKind = iota
	KindUnity
	KindMult
)

// Rate is a channel's speed relative to the master beat.
type Rate struct {
	Kind RateKind
	N    uint32
}

// Unity runs a channel at the master tempo.
var Unity = Rate{Kind: KindUnity, N: 1}

// Div slows a channel down by n.
func Div(n uint32) Rate { return Rate{Kind: KindDiv, N: n} }

// Mult speeds a channel up by n.
func Mult(n uint32) Rate { return Rate{Kind: KindMult, N: n} }

// Rates lists every supported rate from slowest to fastest.
var Rates = []Rate{
	Div(64), Div(32), Div(16), Div(8), Div(5), Div(4), Div(3), Div(2),
	Unity,
	Mult(2), Mult(3), Mult(4), Mult(5), Mult(8), Mult(16), Mult(32), Mult(64),
}

// Next returns the next faster rate, false at the fast end.
func (r Rate) Next() (Rate, bool) { return step(Rates, r, 1) }

// Prev returns the next slower rate, false at the slow end.
func (r Rate) Prev() (Rate, bool) { return step(Rates, r, -1) }

// PeriodTicks is the length of one channel period in master ticks.
func (r Rate) PeriodTicks() uint32 {
	switch r.Kind {
	case KindDiv:
		return Resolution * r.N
	case KindMult:
		return Resolution / r.N
	default:
		return Resolution
	}
}

func (r Rate) String() string {
	switch r.Kind {
	case KindDiv:
		return fmt.Sprintf("/%d", r.N)
	case KindMult:
		return fmt.Sprintf("x%d", r.N)
	default:
		return "x1"
	}
}

// ParseRate accepts the on-screen labels ("/4", "x1", "x16").
func ParseRate(s string) (Rate, error) {
	if r, ok := lookup(Rates, s); ok {
		return r, nil
	}
	return Unity, fmt.Errorf("unknown rate %q", s)
}
