package anneal

import (
	"math/rand"
	"time"
)

// newRNG builds an instance-local random source so that concurrent runs
// never share RNG state, rather than mutating the global math/rand
// source. It returns the generator and the seed actually used, so the
// caller can record it on the Solution for reproducibility.
func newRNG(seed *int64) (*rand.Rand, int64) {
	s := seed
	var actual int64
	if s != nil {
		actual = *s
	} else {
		actual = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(actual)), actual
}
