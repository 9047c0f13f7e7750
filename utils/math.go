package utils

// Step returns 0 for negative values and 1 otherwise.
func Step(v float64) float64 {
	if v < 0 {
		return 0
	}
	return 1
}
