package common

// Clamp01 forces a scorer output into [0, 1]. Upstream scorers are not
// trusted to respect their declared bounds.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampScore forces a blended risk score into [0, 100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
