package sequencer

import "fmt"

// Pwm is a gate duty cycle level.
type Pwm uint8

const (
	PwmPew Pwm = iota // short trigger pulse, about 1/30 of the period
	Pwm10
	Pwm20
	Pwm30
	Pwm40
	Pwm50
	Pwm60
	Pwm70
	Pwm80
	Pwm90
)

// Pwms lists the duty levels from shortest to longest.
var Pwms = []Pwm{PwmPew, Pwm10, Pwm20, Pwm30, Pwm40, Pwm50, Pwm60, Pwm70, Pwm80, Pwm90}

func (p Pwm) Next() (Pwm, bool) { return step(Pwms, p, 1) }
func (p Pwm) Prev() (Pwm, bool) { return step(Pwms, p, -1) }

// pewDivisor sizes the Pew pulse as a fraction of the period.
const pewDivisor = 30

// HighTicks returns how many ticks of a period of the given length the gate
// stays high. Every period is a multiple of PwmSteps, so the 10% levels are
// exact. Pew is period/30 rounded down, and at least one tick.
func (p Pwm) HighTicks(period uint32) uint32 {
	if p == PwmPew {
		return max(period/pewDivisor, 1)
	}
	return period * uint32(p) / PwmSteps
}

func (p Pwm) String() string {
	if p == PwmPew {
		return "Pew"
	}
	return fmt.Sprintf("%d%%", int(p)*10)
}

// ParsePwm accepts "Pew" or "10%".."90%".
func ParsePwm(s string) (Pwm, error) {
	if p, ok := lookup(Pwms, s); ok {
		return p, nil
	}
	return Pwm50, fmt.Errorf("unknown pwm %q", s)
}
