package sequencer

import (
	"fmt"
	"strings"
)

// MaxLength is the longest Euclidean pattern a channel can hold.
const MaxLength = 16

// Length is the number of steps in a Euclidean pattern (1..16).
type Length uint8

// Density is the number of active steps in a Euclidean pattern (1..Length).
type Density uint8

func (l Length) Next() (Length, bool) {
	if l >= MaxLength {
		return l, false
	}
	return l + 1, true
}

func (l Length) Prev() (Length, bool) {
	if l <= 1 {
		return l, false
	}
	return l - 1, true
}

func (l Length) String() string { return fmt.Sprintf("%d", l) }

// Next saturates at the pattern length.
func (d Density) Next(l Length) (Density, bool) {
	if int(d) >= int(l) {
		return d, false
	}
	return d + 1, true
}

func (d Density) Prev() (Density, bool) {
	if d <= 1 {
		return d, false
	}
	return d - 1, true
}

func (d Density) String() string { return fmt.Sprintf("%d", d) }

// Clamp pulls d into 1..l.
func (d Density) Clamp(l Length) Density {
	if d < 1 {
		return 1
	}
	if int(d) > int(l) {
		return Density(l)
	}
	return d
}

// ClampLength pulls an arbitrary integer into 1..MaxLength.
func ClampLength(n int) Length {
	if n < 1 {
		return 1
	}
	if n > MaxLength {
		return MaxLength
	}
	return Length(n)
}

// Pattern is a fixed-capacity step pattern; only the first Len steps are used.
type Pattern struct {
	steps [MaxLength]bool
	n     uint8
}

func (p Pattern) Len() int { return int(p.n) }

// At reports whether step i is active. Out-of-range steps are inactive.
func (p Pattern) At(i int) bool {
	if i < 0 || i >= int(p.n) {
		return false
	}
	return p.steps[i]
}

// Active counts the active steps.
func (p Pattern) Active() int {
	n := 0
	for i := 0; i < int(p.n); i++ {
		if p.steps[i] {
			n++
		}
	}
	return n
}

// String renders the pattern as "x..x..x.".
func (p Pattern) String() string {
	var b strings.Builder
	for i := 0; i < int(p.n); i++ {
		if p.steps[i] {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
