package anneal

import "math/rand"

// OperatorStats tallies a single move generator's performance over a
// run.
type OperatorStats struct {
	Name        string
	Attempts    int
	Accepted    int
	Improvements int
}

// SuccessRate is Improvements/Attempts, or 0 when Attempts is 0.
func (s OperatorStats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Improvements) / float64(s.Attempts)
}

// selector picks an applicable move generator uniformly at random and
// keeps per-generator attempt/accept/improve counters. It holds no
// reference to Annealer state beyond the stats slice it owns.
type selector struct {
	generators []MoveGenerator
	stats      []OperatorStats
	rng        *rand.Rand
}

func newSelector(generators []MoveGenerator, rng *rand.Rand) *selector {
	stats := make([]OperatorStats, len(generators))
	for i, g := range generators {
		stats[i] = OperatorStats{Name: g.Name()}
	}
	return &selector{generators: generators, stats: stats, rng: rng}
}

// choose returns the index of a uniformly-chosen applicable generator,
// or -1 if none apply. On a hit it increments that generator's Attempts
// before returning.
func (s *selector) choose(state State) int {
	var applicable []int
	for i, g := range s.generators {
		if g.CanApply(state) {
			applicable = append(applicable, i)
		}
	}
	if len(applicable) == 0 {
		return -1
	}
	idx := applicable[s.rng.Intn(len(applicable))]
	s.stats[idx].Attempts++
	return idx
}

func (s *selector) recordAccepted(idx int) {
	s.stats[idx].Accepted++
}

func (s *selector) recordImprovement(idx int) {
	s.stats[idx].Improvements++
}
