package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/coolforge/anneal"
	"github.com/coolforge/anneal/internal/runconfig"
	"github.com/coolforge/anneal/internal/timetable"
)

// intConstraint adapts a plain scoring function to anneal.Constraint for
// the small toy demos (one-bit, flat, reheat), which need nothing
// fancier than a single scalar state.
type intConstraint struct {
	name  string
	class anneal.Class
	wgt   float64
	fn    func(int) float64
	msg   string
}

func (c intConstraint) Name() string        { return c.name }
func (c intConstraint) Class() anneal.Class  { return c.class }
func (c intConstraint) Weight() float64      { return c.wgt }
func (c intConstraint) Evaluate(s anneal.State) float64 { return c.fn(s.(int)) }

func (c intConstraint) Describe(s anneal.State) string {
	if c.fn(s.(int)) >= 1 {
		return ""
	}
	return c.msg
}

func (c intConstraint) Violations(s anneal.State) []string {
	d := c.Describe(s)
	if d == "" {
		return nil
	}
	return []string{d}
}

// intStepGenerator perturbs an int state by +1 or -1 using its own
// seeded RNG.
type intStepGenerator struct{ rng *rand.Rand }

func (intStepGenerator) Name() string                { return "step" }
func (intStepGenerator) CanApply(anneal.State) bool   { return true }
func (g intStepGenerator) Generate(s anneal.State, _ float64) anneal.State {
	if g.rng.Intn(2) == 0 {
		return s.(int) + 1
	}
	return s.(int) - 1
}

// intFlipGenerator flips a 0/1 int state.
type intFlipGenerator struct{}

func (intFlipGenerator) Name() string              { return "flip" }
func (intFlipGenerator) CanApply(anneal.State) bool { return true }
func (intFlipGenerator) Generate(s anneal.State, _ float64) anneal.State {
	return 1 - s.(int)
}

func buildDemo(demo runconfig.Demo, seed int64) (anneal.State, []anneal.Constraint, []anneal.MoveGenerator, func(anneal.State) anneal.State, error) {
	switch demo {
	case runconfig.DemoOneBit:
		h := intConstraint{name: "mustBeOne", class: anneal.Hard, fn: func(x int) float64 { return float64(x) }, msg: "state must be 1"}
		return 0, []anneal.Constraint{h}, []anneal.MoveGenerator{intFlipGenerator{}}, func(s anneal.State) anneal.State { return s }, nil

	case runconfig.DemoFlat:
		s := intConstraint{name: "alwaysSatisfied", class: anneal.Soft, wgt: 1, fn: func(int) float64 { return 1 }, msg: ""}
		return 0, []anneal.Constraint{s}, []anneal.MoveGenerator{intStepGenerator{rng: rand.New(rand.NewSource(seed))}}, func(s anneal.State) anneal.State { return s }, nil

	case runconfig.DemoReheat:
		c := intConstraint{
			name: "near7", class: anneal.Soft, wgt: 1,
			fn:  func(x int) float64 { return 1 - math.Min(1, math.Abs(float64(x-7))/10) },
			msg: "state is far from the target value 7",
		}
		return 0, []anneal.Constraint{c}, []anneal.MoveGenerator{intStepGenerator{rng: rand.New(rand.NewSource(seed))}}, func(s anneal.State) anneal.State { return s }, nil

	case runconfig.DemoTimetable:
		state, constraints, generators := timetable.Build(int(seed))
		return state, constraints, generators, timetable.Clone, nil

	default:
		return nil, nil, nil, nil, fmt.Errorf("annealctl: unknown demo %q", demo)
	}
}
