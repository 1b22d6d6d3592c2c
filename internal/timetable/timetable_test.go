package timetable

import (
	"testing"

	"github.com/coolforge/anneal"
	"github.com/stretchr/testify/require"
)

func TestBuildReachesZeroHardViolations(t *testing.T) {
	initial, constraints, generators := Build(1)

	cfg := anneal.DefaultConfig()
	cfg.CloneState = Clone
	seed := int64(1)
	cfg.Seed = &seed
	cfg.MaxIterations = 20000

	sol, err := anneal.Run(initial, constraints, generators, cfg)
	require.NoError(t, err)
	require.Equal(t, 0, sol.HardViolations, "bundled 5-lesson/2-room/3-period instance must be solvable")
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	initial, _, _ := Build(2)
	cloned := Clone(initial).(Timetable)
	cloned.Assignments[0].Period = (cloned.Assignments[0].Period + 1) % cloned.Periods

	orig := initial.(Timetable)
	require.NotEqual(t, orig.Assignments[0].Period, cloned.Assignments[0].Period)
}

func TestNoTeacherDoubleBookingDetectsConflict(t *testing.T) {
	tt := Timetable{
		Lessons: []Lesson{
			{Course: "A", Teacher: "X", Group: "g1", Size: 1},
			{Course: "B", Teacher: "X", Group: "g2", Size: 1},
		},
		Rooms:       []Room{{Name: "R1", Capacity: 10}, {Name: "R2", Capacity: 10}},
		Periods:     2,
		Assignments: []Slot{{Room: 0, Period: 0}, {Room: 1, Period: 0}},
	}
	c := NoTeacherDoubleBooking{}
	require.Equal(t, 0.0, c.Evaluate(tt))
	require.NotEmpty(t, c.Violations(tt))
}
