package timetable

import (
	"math/rand"

	"github.com/coolforge/anneal"
)

// SwapPeriods exchanges the periods of two distinct lessons, leaving
// their rooms untouched.
type SwapPeriods struct{ rng *rand.Rand }

func (SwapPeriods) Name() string { return "swapPeriods" }

func (SwapPeriods) CanApply(s anneal.State) bool {
	return len(s.(Timetable).Lessons) >= 2
}

func (g SwapPeriods) Generate(s anneal.State, _ float64) anneal.State {
	t := Clone(s).(Timetable)
	n := len(t.Lessons)
	i := g.rng.Intn(n)
	j := g.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	t.Assignments[i].Period, t.Assignments[j].Period = t.Assignments[j].Period, t.Assignments[i].Period
	return t
}

// MoveRoom reassigns one lesson to a different room.
type MoveRoom struct{ rng *rand.Rand }

func (MoveRoom) Name() string { return "moveRoom" }

func (MoveRoom) CanApply(s anneal.State) bool {
	t := s.(Timetable)
	return len(t.Lessons) >= 1 && len(t.Rooms) >= 2
}

func (g MoveRoom) Generate(s anneal.State, _ float64) anneal.State {
	t := Clone(s).(Timetable)
	i := g.rng.Intn(len(t.Lessons))
	cur := t.Assignments[i].Room
	next := g.rng.Intn(len(t.Rooms) - 1)
	if next >= cur {
		next++
	}
	t.Assignments[i].Room = next
	return t
}

// MoveLesson reassigns one lesson to a different period, independent of
// any other lesson (unlike SwapPeriods, which exchanges two).
type MoveLesson struct{ rng *rand.Rand }

func (MoveLesson) Name() string { return "moveLesson" }

func (MoveLesson) CanApply(s anneal.State) bool {
	t := s.(Timetable)
	return len(t.Lessons) >= 1 && t.Periods >= 2
}

func (g MoveLesson) Generate(s anneal.State, _ float64) anneal.State {
	t := Clone(s).(Timetable)
	i := g.rng.Intn(len(t.Lessons))
	cur := t.Assignments[i].Period
	next := g.rng.Intn(t.Periods - 1)
	if next >= cur {
		next++
	}
	t.Assignments[i].Period = next
	return t
}
