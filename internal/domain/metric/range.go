package metric

import "math"

// Range is a [min, max] pair used to build visual encoding scales.
type Range struct {
	Min float64
	Max float64
}

// EmptyRange is the sentinel returned when no non-nil value exists.
// Callers must check IsEmpty before building a color or size scale from it.
func EmptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// IsEmpty reports whether the range is the no-data sentinel.
func (r Range) IsEmpty() bool {
	return math.IsInf(r.Min, 1) && math.IsInf(r.Max, -1)
}

// Contains reports whether v falls inside the range, bounds inclusive.
func (r Range) Contains(v float64) bool {
	return !r.IsEmpty() && v >= r.Min && v <= r.Max
}

// GetRange scans every cell of a nested result matrix and returns the
// elementwise min and max across the whole matrix, not per row. Nil cells
// mean "no data" and are ignored; if every cell is nil the empty sentinel is
// returned.
func GetRange(matrix [][]*float64) Range {
	r := EmptyRange()
	for _, row := range matrix {
		for _, cell := range row {
			if cell == nil {
				continue
			}
			if *cell < r.Min {
				r.Min = *cell
			}
			if *cell > r.Max {
				r.Max = *cell
			}
		}
	}
	return r
}
