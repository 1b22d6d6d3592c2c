package timetable

import (
	"fmt"

	"github.com/coolforge/anneal"
)

// NoTeacherDoubleBooking is a Hard constraint: a teacher cannot be in
// two lessons during the same period.
type NoTeacherDoubleBooking struct{}

func (NoTeacherDoubleBooking) Name() string    { return "noTeacherDoubleBooking" }
func (NoTeacherDoubleBooking) Class() anneal.Class { return anneal.Hard }
func (NoTeacherDoubleBooking) Weight() float64 { return 1 }

func (c NoTeacherDoubleBooking) Evaluate(s anneal.State) float64 {
	if len(c.conflicts(s)) > 0 {
		return 0
	}
	return 1
}

func (c NoTeacherDoubleBooking) Describe(s anneal.State) string {
	conflicts := c.conflicts(s)
	if len(conflicts) == 0 {
		return ""
	}
	return conflicts[0]
}

func (c NoTeacherDoubleBooking) Violations(s anneal.State) []string { return c.conflicts(s) }

func (NoTeacherDoubleBooking) conflicts(s anneal.State) []string {
	t := s.(Timetable)
	type key struct {
		teacher string
		period  int
	}
	seen := map[key][]int{}
	for i, l := range t.Lessons {
		k := key{l.Teacher, t.Assignments[i].Period}
		seen[k] = append(seen[k], i)
	}
	var out []string
	for k, idxs := range seen {
		if len(idxs) > 1 {
			out = append(out, fmt.Sprintf("teacher %s double-booked in period %d", k.teacher, k.period))
		}
	}
	return out
}

// NoRoomDoubleBooking is a Hard constraint: a room cannot host two
// lessons during the same period.
type NoRoomDoubleBooking struct{}

func (NoRoomDoubleBooking) Name() string        { return "noRoomDoubleBooking" }
func (NoRoomDoubleBooking) Class() anneal.Class { return anneal.Hard }
func (NoRoomDoubleBooking) Weight() float64     { return 1 }

func (c NoRoomDoubleBooking) Evaluate(s anneal.State) float64 {
	if len(c.conflicts(s)) > 0 {
		return 0
	}
	return 1
}

func (c NoRoomDoubleBooking) Describe(s anneal.State) string {
	conflicts := c.conflicts(s)
	if len(conflicts) == 0 {
		return ""
	}
	return conflicts[0]
}

func (c NoRoomDoubleBooking) Violations(s anneal.State) []string { return c.conflicts(s) }

func (NoRoomDoubleBooking) conflicts(s anneal.State) []string {
	t := s.(Timetable)
	type key struct {
		room, period int
	}
	seen := map[key][]int{}
	for i := range t.Lessons {
		k := key{t.Assignments[i].Room, t.Assignments[i].Period}
		seen[k] = append(seen[k], i)
	}
	var out []string
	for k, idxs := range seen {
		if len(idxs) > 1 {
			out = append(out, fmt.Sprintf("room %s double-booked in period %d", t.Rooms[k.room].Name, k.period))
		}
	}
	return out
}

// RoomCapacity is a Hard constraint: a lesson's group must fit in its
// assigned room.
type RoomCapacity struct{}

func (RoomCapacity) Name() string        { return "roomCapacity" }
func (RoomCapacity) Class() anneal.Class { return anneal.Hard }
func (RoomCapacity) Weight() float64     { return 1 }

func (c RoomCapacity) Evaluate(s anneal.State) float64 {
	t := s.(Timetable)
	for i, l := range t.Lessons {
		room := t.Rooms[t.Assignments[i].Room]
		if l.Size > room.Capacity {
			return 0
		}
	}
	return 1
}

func (c RoomCapacity) Describe(s anneal.State) string {
	v := c.Violations(s)
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

func (RoomCapacity) Violations(s anneal.State) []string {
	t := s.(Timetable)
	var out []string
	for i, l := range t.Lessons {
		room := t.Rooms[t.Assignments[i].Room]
		if l.Size > room.Capacity {
			out = append(out, fmt.Sprintf("%s overflows room %s (%d > %d)", fmtSlot(l, t.Assignments[i], t.Rooms), room.Name, l.Size, room.Capacity))
		}
	}
	return out
}

// LessonClustering is a Soft constraint: lessons belonging to the same
// group score better when they occupy adjacent periods rather than
// being scattered across the day.
type LessonClustering struct {
	W float64
}

func (c LessonClustering) Name() string        { return "lessonClustering" }
func (c LessonClustering) Class() anneal.Class { return anneal.Soft }
func (c LessonClustering) Weight() float64     { return c.W }

func (c LessonClustering) Evaluate(s anneal.State) float64 {
	t := s.(Timetable)
	byGroup := map[string][]int{}
	for i, l := range t.Lessons {
		byGroup[l.Group] = append(byGroup[l.Group], t.Assignments[i].Period)
	}
	var groups int
	var spreadScore float64
	for _, periods := range byGroup {
		groups++
		min, max := periods[0], periods[0]
		for _, p := range periods {
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		span := max - min + 1
		ideal := len(periods)
		if span <= ideal {
			spreadScore += 1
		} else {
			spreadScore += float64(ideal) / float64(span)
		}
	}
	if groups == 0 {
		return 1
	}
	return spreadScore / float64(groups)
}

func (c LessonClustering) Describe(s anneal.State) string {
	if c.Evaluate(s) >= 0.999 {
		return ""
	}
	return "lessons for one or more groups are spread across non-adjacent periods"
}

func (c LessonClustering) Violations(s anneal.State) []string {
	d := c.Describe(s)
	if d == "" {
		return nil
	}
	return []string{d}
}

// NoIdleGaps is a Soft constraint: a teacher's working day should have
// no empty period between their first and last lesson.
type NoIdleGaps struct {
	W float64
}

func (c NoIdleGaps) Name() string        { return "noIdleGaps" }
func (c NoIdleGaps) Class() anneal.Class { return anneal.Soft }
func (c NoIdleGaps) Weight() float64     { return c.W }

func (c NoIdleGaps) Evaluate(s anneal.State) float64 {
	t := s.(Timetable)
	byTeacher := map[string]map[int]bool{}
	for i, l := range t.Lessons {
		if byTeacher[l.Teacher] == nil {
			byTeacher[l.Teacher] = map[int]bool{}
		}
		byTeacher[l.Teacher][t.Assignments[i].Period] = true
	}
	var teachers int
	var score float64
	for _, periods := range byTeacher {
		teachers++
		min, max := -1, -1
		for p := range periods {
			if min == -1 || p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		span := max - min + 1
		if span <= 0 {
			score += 1
			continue
		}
		score += float64(len(periods)) / float64(span)
	}
	if teachers == 0 {
		return 1
	}
	return score / float64(teachers)
}

func (c NoIdleGaps) Describe(s anneal.State) string {
	if c.Evaluate(s) >= 0.999 {
		return ""
	}
	return "one or more teachers have idle periods between lessons"
}

func (c NoIdleGaps) Violations(s anneal.State) []string {
	d := c.Describe(s)
	if d == "" {
		return nil
	}
	return []string{d}
}
