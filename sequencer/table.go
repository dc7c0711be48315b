package sequencer

// step moves delta positions through an ordered table, saturating at either
// end. The bool is false when v is at the bound (or not in the table) and no
// move happened.
func step[T comparable](table []T, v T, delta int) (T, bool) {
	for i, t := range table {
		if t != v {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(table) {
			return v, false
		}
		return table[j], true
	}
	return v, false
}

// lookup finds the table entry whose String form matches s.
func lookup[T interface {
	comparable
	String() string
}](table []T, s string) (T, bool) {
	for _, t := range table {
		if t.String() == s {
			return t, true
		}
	}
	var zero T
	return zero, false
}
