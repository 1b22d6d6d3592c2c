package anneal

import (
	"math/rand"
	"testing"
)

type alwaysGenerator struct {
	name string
	ok   bool
}

func (g alwaysGenerator) Name() string                    { return g.name }
func (g alwaysGenerator) CanApply(State) bool             { return g.ok }
func (g alwaysGenerator) Generate(s State, _ float64) State { return s }

func TestSelectorNoneApplicable(t *testing.T) {
	sel := newSelector([]MoveGenerator{alwaysGenerator{name: "a"}, alwaysGenerator{name: "b"}}, rand.New(rand.NewSource(1)))
	if idx := sel.choose(0); idx != -1 {
		t.Fatalf("expected -1 when nothing applies, got %d", idx)
	}
}

func TestSelectorOnlyChoosesApplicable(t *testing.T) {
	gens := []MoveGenerator{
		alwaysGenerator{name: "a", ok: false},
		alwaysGenerator{name: "b", ok: true},
	}
	sel := newSelector(gens, rand.New(rand.NewSource(1)))
	for i := 0; i < 50; i++ {
		idx := sel.choose(0)
		if idx != 1 {
			t.Fatalf("expected always to choose generator b (idx 1), got %d", idx)
		}
	}
	if sel.stats[1].Attempts != 50 {
		t.Fatalf("expected 50 attempts, got %d", sel.stats[1].Attempts)
	}
	if sel.stats[0].Attempts != 0 {
		t.Fatalf("inapplicable generator should never get an attempt, got %d", sel.stats[0].Attempts)
	}
}

func TestOperatorStatsSuccessRate(t *testing.T) {
	s := OperatorStats{Attempts: 0}
	if s.SuccessRate() != 0 {
		t.Fatalf("zero attempts should yield zero success rate")
	}
	s = OperatorStats{Attempts: 4, Improvements: 1}
	if got, want := s.SuccessRate(), 0.25; got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSelectorAcceptedAndImprovedOrdering(t *testing.T) {
	gens := []MoveGenerator{alwaysGenerator{name: "a", ok: true}}
	sel := newSelector(gens, rand.New(rand.NewSource(1)))
	idx := sel.choose(0)
	sel.recordAccepted(idx)
	sel.recordImprovement(idx)
	if sel.stats[0].Accepted != 1 || sel.stats[0].Improvements != 1 {
		t.Fatalf("unexpected stats: %+v", sel.stats[0])
	}
	if sel.stats[0].Improvements > sel.stats[0].Accepted {
		t.Fatalf("improvements must never exceed accepted")
	}
}
