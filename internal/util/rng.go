package util

import "math/rand"

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Pick returns a uniformly chosen index in [0, n), or -1 when n is 0.
func Pick(r *rand.Rand, n int) int {
	if n <= 0 {
		return -1
	}
	return r.Intn(n)
}
