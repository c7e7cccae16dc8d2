package common

import "math"

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds half away from zero and returns an int, matching how positions
// are snapped to the pixel grid.
func Round(v float64) int {
	return int(math.Round(v))
}
