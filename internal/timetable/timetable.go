// Package timetable is a worked example problem for the anneal engine:
// assigning a fixed set of lessons to (room, period) slots so that no
// teacher or room is double-booked, every room fits the group it hosts,
// and lessons for a given group cluster together with few idle gaps.
//
// It is intentionally kept outside the anneal module's import graph in
// both directions: anneal knows nothing about Timetable, and this
// package only depends on anneal's exported Constraint/MoveGenerator/
// State contracts.
package timetable

import (
	"fmt"
	"math/rand"

	"github.com/coolforge/anneal"
)

// Room is a physical room with a seating capacity.
type Room struct {
	Name     string
	Capacity int
}

// Lesson is one course meeting that needs a (room, period) slot.
type Lesson struct {
	Course  string
	Teacher string
	Group   string
	Size    int
}

// Slot is where a Lesson currently sits.
type Slot struct {
	Room   int
	Period int
}

// Timetable is the State: a fixed lesson/room catalogue plus one Slot
// per lesson. Only Assignments changes during a run; Lessons and Rooms
// are read-only problem data shared (never mutated) across clones.
type Timetable struct {
	Lessons     []Lesson
	Rooms       []Room
	Periods     int
	Assignments []Slot
}

// Clone is the anneal.Config.CloneState implementation: a deep copy of
// Assignments, sharing the read-only Lessons/Rooms slices.
func Clone(s anneal.State) anneal.State {
	t := s.(Timetable)
	out := Timetable{
		Lessons: t.Lessons,
		Rooms:   t.Rooms,
		Periods: t.Periods,
	}
	out.Assignments = make([]Slot, len(t.Assignments))
	copy(out.Assignments, t.Assignments)
	return out
}

// Build assembles a small bundled instance (always 5 lessons, 2 rooms,
// 3 periods) plus its hard/soft constraints and move generators, and an
// initial random-ish assignment seeded by seed. The instance size has no
// parameter; seed only affects the initial assignment and the move
// generators' random sources.
func Build(seed int) (anneal.State, []anneal.Constraint, []anneal.MoveGenerator) {
	rooms := []Room{
		{Name: "R1", Capacity: 30},
		{Name: "R2", Capacity: 20},
	}
	lessons := []Lesson{
		{Course: "Math", Teacher: "Alves", Group: "9A", Size: 25},
		{Course: "Physics", Teacher: "Alves", Group: "9B", Size: 18},
		{Course: "History", Teacher: "Brandt", Group: "9A", Size: 25},
		{Course: "Art", Teacher: "Costa", Group: "9B", Size: 18},
		{Course: "Music", Teacher: "Brandt", Group: "9A", Size: 25},
	}
	periods := 3

	rng := rand.New(rand.NewSource(int64(seed)))
	assignments := make([]Slot, len(lessons))
	for i := range assignments {
		assignments[i] = Slot{Room: rng.Intn(len(rooms)), Period: rng.Intn(periods)}
	}

	tt := Timetable{Lessons: lessons, Rooms: rooms, Periods: periods, Assignments: assignments}

	constraints := []anneal.Constraint{
		NoTeacherDoubleBooking{},
		NoRoomDoubleBooking{},
		RoomCapacity{},
		LessonClustering{W: 2},
		NoIdleGaps{W: 1},
	}
	generators := []anneal.MoveGenerator{
		SwapPeriods{rng: rand.New(rand.NewSource(int64(seed) + 1))},
		MoveRoom{rng: rand.New(rand.NewSource(int64(seed) + 2))},
		MoveLesson{rng: rand.New(rand.NewSource(int64(seed) + 3))},
	}
	return tt, constraints, generators
}

func fmtSlot(l Lesson, s Slot, rooms []Room) string {
	return fmt.Sprintf("%s(%s) in %s@%d", l.Course, l.Teacher, rooms[s.Room].Name, s.Period)
}
