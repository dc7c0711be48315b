package sequencer

import "fmt"

// Prob is the chance that a gate onset fires.
type Prob uint8

const (
	Prob10 Prob = iota + 1
	Prob20
	Prob30
	Prob40
	Prob50
	Prob60
	Prob70
	Prob80
	Prob90
	Prob100
)

var Probs = []Prob{Prob10, Prob20, Prob30, Prob40, Prob50, Prob60, Prob70, Prob80, Prob90, Prob100}

func (p Prob) Next() (Prob, bool) { return step(Probs, p, 1) }
func (p Prob) Prev() (Prob, bool) { return step(Probs, p, -1) }

// Percent returns the probability as 10..100.
func (p Prob) Percent() uint32 { return uint32(p) * 10 }

// Fires draws once from roll, which must return a value in [0,100).
func (p Prob) Fires(roll func() uint32) bool {
	if p == Prob100 {
		return true
	}
	return roll() < p.Percent()
}

func (p Prob) String() string { return fmt.Sprintf("%d%%", p.Percent()) }

func ParseProb(s string) (Prob, error) {
	if p, ok := lookup(Probs, s); ok {
		return p, nil
	}
	return Prob100, fmt.Errorf("unknown probability %q", s)
}
