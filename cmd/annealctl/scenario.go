package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/coolforge/anneal"
)

// scenarioCheck runs one of the engine's seeded test scenarios and
// reports whether its documented invariant held, for manual or CI
// smoke-checking outside the Go test suite.
type scenarioCheck struct {
	name string
	run  func() (ok bool, detail string, err error)
}

func scenarios() []scenarioCheck {
	return []scenarioCheck{
		{"one-bit-flip", scenarioOneBitFlip},
		{"flat-landscape", scenarioFlatLandscape},
		{"reheating-trigger", scenarioReheatingTrigger},
		{"cancellation", scenarioCancellation},
		{"hard-before-soft", scenarioHardBeforeSoft},
		{"generator-throws", scenarioGeneratorThrows},
	}
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <name>",
		Short: "Replay one of the engine's seeded end-to-end scenarios",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all := scenarios()
			if len(args) == 0 {
				for _, s := range all {
					fmt.Println(s.name)
				}
				return nil
			}
			for _, s := range all {
				if s.name == args[0] {
					ok, detail, err := s.run()
					if err != nil {
						return err
					}
					status := "PASS"
					if !ok {
						status = "FAIL"
					}
					fmt.Printf("%s: %s (%s)\n", s.name, status, detail)
					return nil
				}
			}
			return fmt.Errorf("unknown scenario %q", args[0])
		},
	}
	return cmd
}

func scenarioOneBitFlip() (bool, string, error) {
	seed := int64(1)
	h := intConstraint{name: "mustBeOne", class: anneal.Hard, fn: func(x int) float64 { return float64(x) }}
	cfg := anneal.DefaultConfig()
	cfg.CloneState = func(s anneal.State) anneal.State { return s }
	cfg.InitialTemperature = 10
	cfg.MinTemperature = 0.01
	cfg.CoolingRate = 0.9
	cfg.MaxIterations = 1000
	cfg.Seed = &seed

	sol, err := anneal.Run(0, []anneal.Constraint{h}, []anneal.MoveGenerator{intFlipGenerator{}}, cfg)
	if err != nil {
		return false, "", err
	}
	ok := sol.BestState.(int) == 1 && sol.HardViolations == 0
	return ok, fmt.Sprintf("best=%v hardViolations=%d", sol.BestState, sol.HardViolations), nil
}

func scenarioFlatLandscape() (bool, string, error) {
	seed := int64(2)
	s := intConstraint{name: "alwaysSatisfied", class: anneal.Soft, wgt: 5, fn: func(int) float64 { return 1 }}
	cfg := anneal.DefaultConfig()
	cfg.CloneState = func(s anneal.State) anneal.State { return s }
	cfg.Seed = &seed
	cfg.MaxIterations = 2000

	sol, err := anneal.Run(0, []anneal.Constraint{s}, []anneal.MoveGenerator{intStepGenerator{rng: rand.New(rand.NewSource(seed))}}, cfg)
	if err != nil {
		return false, "", err
	}
	return sol.Fitness == 0, fmt.Sprintf("fitness=%v", sol.Fitness), nil
}

func scenarioReheatingTrigger() (bool, string, error) {
	seed := int64(3)
	c := intConstraint{name: "near7", class: anneal.Soft, wgt: 1, fn: func(x int) float64 {
		return 1 - math.Min(1, math.Abs(float64(x-7))/10)
	}}
	cfg := anneal.DefaultConfig()
	cfg.CloneState = func(s anneal.State) anneal.State { return s }
	cfg.Seed = &seed
	cfg.ReheatingThreshold = 50
	cfg.ReheatingFactor = 2
	cfg.MaxReheats = 2
	cfg.MaxIterations = 5000

	sol, err := anneal.Run(0, []anneal.Constraint{c}, []anneal.MoveGenerator{intStepGenerator{rng: rand.New(rand.NewSource(seed))}}, cfg)
	if err != nil {
		return false, "", err
	}
	ok := sol.Reheats >= 0 && sol.Reheats <= 2 && sol.Fitness <= 0
	return ok, fmt.Sprintf("reheats=%d fitness=%v", sol.Reheats, sol.Fitness), nil
}

func scenarioCancellation() (bool, string, error) {
	seed := int64(4)
	c := intConstraint{name: "near7", class: anneal.Soft, wgt: 1, fn: func(x int) float64 {
		return 1 - math.Min(1, math.Abs(float64(x-7))/10)
	}}
	cancel := make(chan struct{})
	cfg := anneal.DefaultConfig()
	cfg.CloneState = func(s anneal.State) anneal.State { return s }
	cfg.Seed = &seed
	cfg.MaxIterations = 100000
	cfg.Cancel = cancel
	cfg.Logging.LogInterval = 1
	closed := false
	cfg.ProgressHook = func(p anneal.Progress) {
		if p.Iteration >= 100 && !closed {
			closed = true
			close(cancel)
		}
	}

	sol, err := anneal.Run(0, []anneal.Constraint{c}, []anneal.MoveGenerator{intStepGenerator{rng: rand.New(rand.NewSource(seed))}}, cfg)
	if err != nil {
		return false, "", err
	}
	ok := sol.Status == anneal.StatusCancelled
	return ok, fmt.Sprintf("status=%s iterations=%d", sol.Status, sol.Iterations), nil
}

func scenarioHardBeforeSoft() (bool, string, error) {
	seed := int64(5)
	h := intConstraint{name: "even", class: anneal.Hard, fn: func(x int) float64 {
		if x%2 == 0 {
			return 1
		}
		return 0
	}}
	soft := intConstraint{name: "near10", class: anneal.Soft, wgt: 1, fn: func(x int) float64 {
		return 1 - math.Abs(float64(x-10))/10
	}}
	cfg := anneal.DefaultConfig()
	cfg.CloneState = func(s anneal.State) anneal.State { return s }
	cfg.Seed = &seed
	cfg.HardConstraintWeight = 10000
	cfg.MaxIterations = 20000

	sol, err := anneal.Run(3, []anneal.Constraint{h, soft}, []anneal.MoveGenerator{intStepGenerator{rng: rand.New(rand.NewSource(seed))}}, cfg)
	if err != nil {
		return false, "", err
	}
	ok := sol.BestState.(int)%2 == 0 && sol.Fitness < cfg.HardConstraintWeight
	return ok, fmt.Sprintf("best=%v fitness=%v", sol.BestState, sol.Fitness), nil
}

// erroringGenerator always panics, exercising the generator-error
// recovery path.
type erroringGenerator struct{}

func (erroringGenerator) Name() string                { return "erroring" }
func (erroringGenerator) CanApply(anneal.State) bool   { return true }
func (erroringGenerator) Generate(anneal.State, float64) anneal.State {
	panic("generator always fails")
}

func scenarioGeneratorThrows() (bool, string, error) {
	seed := int64(6)
	h := intConstraint{name: "mustBeOne", class: anneal.Hard, fn: func(x int) float64 { return float64(x) }}
	cfg := anneal.DefaultConfig()
	cfg.CloneState = func(s anneal.State) anneal.State { return s }
	cfg.Seed = &seed
	cfg.MaxIterations = 500

	sol, err := anneal.Run(0, []anneal.Constraint{h}, []anneal.MoveGenerator{erroringGenerator{}, intFlipGenerator{}}, cfg)
	if err != nil {
		return false, "", err
	}
	ok := sol.BestState.(int) == 1
	return ok, fmt.Sprintf("best=%v", sol.BestState), nil
}
