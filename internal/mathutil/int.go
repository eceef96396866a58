package mathutil

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits v to the closed range [lo, hi] (search: int-math).
func IntClamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsPowerOfTwo reports whether n is a positive power of two. Grid and
// texture dimensions must satisfy this for bitmask wrapping.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
