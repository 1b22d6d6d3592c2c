package anneal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// bitFlipGenerator flips a 0/1 int state.
type bitFlipGenerator struct{}

func (bitFlipGenerator) Name() string        { return "flip" }
func (bitFlipGenerator) CanApply(State) bool { return true }
func (bitFlipGenerator) Generate(s State, _ float64) State {
	return 1 - s.(int)
}

// incrementGenerator increments an int state by 1.
type incrementGenerator struct{}

func (incrementGenerator) Name() string        { return "increment" }
func (incrementGenerator) CanApply(State) bool { return true }
func (incrementGenerator) Generate(s State, _ float64) State {
	return s.(int) + 1
}

// plusMinusOneGenerator perturbs an int state by +1 or -1, with its own
// seeded RNG (the engine never shares its RNG with generators).
type plusMinusOneGenerator struct{ rng *rand.Rand }

func (plusMinusOneGenerator) Name() string        { return "plusminus" }
func (plusMinusOneGenerator) CanApply(State) bool { return true }
func (g plusMinusOneGenerator) Generate(s State, _ float64) State {
	if g.rng.Intn(2) == 0 {
		return s.(int) + 1
	}
	return s.(int) - 1
}

// erroringGenerator always panics, exercising the generator-error
// recovery path.
type erroringGenerator struct{}

func (erroringGenerator) Name() string        { return "erroring" }
func (erroringGenerator) CanApply(State) bool { return true }
func (erroringGenerator) Generate(State, float64) State {
	panic("generator always fails")
}

func intCloner(s State) State { return s }

func TestScenarioOneBitFlip(t *testing.T) {
	seed := int64(1)
	h := fnConstraint{name: "mustBeOne", class: Hard, fn: func(s State) float64 { return float64(s.(int)) }}

	cfg := DefaultConfig()
	cfg.CloneState = intCloner
	cfg.InitialTemperature = 10
	cfg.MinTemperature = 0.01
	cfg.CoolingRate = 0.9
	cfg.MaxIterations = 1000
	cfg.HardConstraintWeight = 1000
	cfg.Seed = &seed

	sol, err := Run(0, []Constraint{h}, []MoveGenerator{bitFlipGenerator{}}, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, sol.BestState)
	require.Equal(t, 0.0, sol.Fitness)
	require.Equal(t, 0, sol.HardViolations)
}

func TestScenarioFlatLandscape(t *testing.T) {
	seed := int64(2)
	s := fnConstraint{name: "alwaysSatisfied", class: Soft, weight: 5, fn: func(State) float64 { return 1 }}

	cfg := DefaultConfig()
	cfg.CloneState = intCloner
	cfg.Seed = &seed
	cfg.MaxIterations = 2000

	sol, err := Run(0, []Constraint{s}, []MoveGenerator{incrementGenerator{}}, cfg)
	require.NoError(t, err)
	require.Equal(t, 0.0, sol.Fitness)
	for _, st := range sol.OperatorStats {
		require.Zero(t, st.Improvements, "a flat landscape never improves on an already-optimal fitness")
	}
}

func TestScenarioReheatingTrigger(t *testing.T) {
	seed := int64(3)
	c := fnConstraint{
		name:   "near7",
		class:  Soft,
		weight: 1,
		fn: func(s State) float64 {
			return 1 - math.Min(1, math.Abs(float64(s.(int)-7))/10)
		},
	}

	cfg := DefaultConfig()
	cfg.CloneState = intCloner
	cfg.Seed = &seed
	cfg.ReheatingThreshold = 50
	cfg.ReheatingFactor = 2
	cfg.MaxReheats = 2
	cfg.MaxIterations = 5000

	gen := plusMinusOneGenerator{rng: rand.New(rand.NewSource(seed))}
	sol, err := Run(0, []Constraint{c}, []MoveGenerator{gen}, cfg)
	require.NoError(t, err)
	require.GreaterOrEqual(t, sol.Reheats, 0)
	require.LessOrEqual(t, sol.Reheats, 2)
	require.LessOrEqual(t, sol.Fitness, 0.0)
}

func TestScenarioCancellation(t *testing.T) {
	seed := int64(4)
	c := fnConstraint{name: "near7", class: Soft, weight: 1, fn: func(s State) float64 {
		return 1 - math.Min(1, math.Abs(float64(s.(int)-7))/10)
	}}

	cancel := make(chan struct{})
	cfg := DefaultConfig()
	cfg.CloneState = intCloner
	cfg.Seed = &seed
	cfg.MaxIterations = 100000
	cfg.Cancel = cancel
	// Close the cancel channel as soon as iteration 100 has been logged,
	// via the progress hook (called at the logging cadence), so the
	// loop observes it on its very next pass.
	cfg.Logging.LogInterval = 1
	closed := false
	cfg.ProgressHook = func(p Progress) {
		if p.Iteration >= 100 && !closed {
			closed = true
			close(cancel)
		}
	}

	gen := plusMinusOneGenerator{rng: rand.New(rand.NewSource(seed))}
	sol, err := Run(0, []Constraint{c}, []MoveGenerator{gen}, cfg)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, sol.Status)
	require.GreaterOrEqual(t, sol.Iterations, 100)
}

func TestScenarioHardBeforeSoft(t *testing.T) {
	seed := int64(5)
	h := fnConstraint{name: "even", class: Hard, fn: func(s State) float64 {
		if s.(int)%2 == 0 {
			return 1
		}
		return 0
	}}
	soft := fnConstraint{name: "near10", class: Soft, weight: 1, fn: func(s State) float64 {
		return 1 - math.Abs(float64(s.(int)-10))/10
	}}

	cfg := DefaultConfig()
	cfg.CloneState = intCloner
	cfg.Seed = &seed
	cfg.HardConstraintWeight = 10000
	cfg.MaxIterations = 20000

	gen := plusMinusOneGenerator{rng: rand.New(rand.NewSource(seed))}
	sol, err := Run(3, []Constraint{h, soft}, []MoveGenerator{gen}, cfg)
	require.NoError(t, err)
	require.Equal(t, 0, sol.BestState.(int)%2, "best state must be even")
	require.Less(t, sol.Fitness, cfg.HardConstraintWeight)
}

func TestScenarioGeneratorThrowsResilience(t *testing.T) {
	seed := int64(6)
	h := fnConstraint{name: "mustBeOne", class: Hard, fn: func(s State) float64 { return float64(s.(int)) }}

	cfg := DefaultConfig()
	cfg.CloneState = intCloner
	cfg.Seed = &seed
	cfg.MaxIterations = 500

	gens := []MoveGenerator{erroringGenerator{}, bitFlipGenerator{}}
	sol, err := Run(0, []Constraint{h}, gens, cfg)
	require.NoError(t, err)

	var erroring, valid OperatorStats
	for _, st := range sol.OperatorStats {
		switch st.Name {
		case "erroring":
			erroring = st
		case "flip":
			valid = st
		}
	}
	require.Greater(t, erroring.Attempts, 0)
	require.Zero(t, erroring.Accepted)
	require.Greater(t, valid.Improvements, 0)
	require.Equal(t, 1, sol.BestState)
}
