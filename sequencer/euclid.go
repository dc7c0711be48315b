package sequencer

import "fmt"

// Generate spreads density onsets as evenly as possible over length steps
// using Bjorklund's algorithm. The result is rotated so step 0 is an onset.
// Passing density > length, or values outside 1..16, is a caller bug and
// panics.
func Generate(density Density, length Length) Pattern {
	k, n := int(density), int(length)
	if n < 1 || n > MaxLength || k < 1 || k > n {
		panic(fmt.Sprintf("sequencer: invalid euclidean rhythm E(%d,%d)", k, n))
	}

	var b bjorklund
	b.remainders[0] = k
	divisor := n - k
	level := 0
	for {
		b.counts[level] = divisor / b.remainders[level]
		b.remainders[level+1] = divisor % b.remainders[level]
		divisor = b.remainders[level]
		level++
		if b.remainders[level] <= 1 {
			break
		}
	}
	b.counts[level] = divisor
	b.build(level)

	// rotate so the pattern starts on its first onset
	first := 0
	for first < n && !b.out.steps[first] {
		first++
	}
	var p Pattern
	p.n = uint8(n)
	for i := 0; i < n; i++ {
		p.steps[i] = b.out.steps[(first+i)%n]
	}
	return p
}

type bjorklund struct {
	counts     [MaxLength + 2]int
	remainders [MaxLength + 2]int
	out        Pattern
}

func (b *bjorklund) build(level int) {
	switch level {
	case -1:
		b.push(false)
	case -2:
		b.push(true)
	default:
		for i := 0; i < b.counts[level]; i++ {
			b.build(level - 1)
		}
		if b.remainders[level] != 0 {
			b.build(level - 2)
		}
	}
}

func (b *bjorklund) push(v bool) {
	b.out.steps[b.out.n] = v
	b.out.n++
}
