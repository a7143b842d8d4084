package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/deppfellow/classroom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day21 = &model.Cohort{ID: 3, Name: "Day Cohort 21"}
	jisie = &model.Instructor{ID: 3, FirstName: "Jisie", LastName: "David", SlackHandle: "@jisie", Cohort: day21}
	emily = &model.Instructor{ID: 4, FirstName: "Emily", LastName: "Lemmon", SlackHandle: "@emlem"}
	dicts = &model.Exercise{ID: 5, Name: "Dictionaries"}
	se    = &model.Exercise{ID: 6, Name: "Student Exercises"}
	di    = &model.Student{ID: 4, FirstName: "Di", LastName: "Diaz", Cohort: day21, AssignedExercises: []*model.Exercise{dicts, se}}
	ed    = &model.Student{ID: 5, FirstName: "Ed", LastName: "Evans", AssignedExercises: []*model.Exercise{dicts}}
)

func render(t *testing.T, fn func(*strings.Builder) error) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, fn(&b))
	return b.String()
}

func TestListings(t *testing.T) {
	out := render(t, func(b *strings.Builder) error { return Instructors(b, []*model.Instructor{jisie, emily}) })
	assert.Equal(t, "Jisie David\nEmily Lemmon\n", out)

	out = render(t, func(b *strings.Builder) error { return Students(b, []*model.Student{di}) })
	assert.Equal(t, "Di Diaz\n", out)

	out = render(t, func(b *strings.Builder) error { return Exercises(b, []*model.Exercise{dicts, se}) })
	assert.Equal(t, "Dictionaries\nStudent Exercises\n", out)

	out = render(t, func(b *strings.Builder) error { return Cohorts(b, []*model.Cohort{day21}) })
	assert.Equal(t, "Day Cohort 21\n", out)

	out = render(t, func(b *strings.Builder) error { return Cohorts(b, nil) })
	assert.Empty(t, out)
}

func TestInstructorCohorts(t *testing.T) {
	out := render(t, func(b *strings.Builder) error { return InstructorCohorts(b, []*model.Instructor{jisie}) })
	assert.Equal(t, "Jisie David (@jisie) is coaching Day Cohort 21\n", out)
}

func TestCohortCounts(t *testing.T) {
	c := &model.Cohort{Name: "Day Cohort 21", Students: []*model.Student{di, ed}, Instructors: []*model.Instructor{jisie, emily}}

	out := render(t, func(b *strings.Builder) error { return CohortInstructors(b, []*model.Cohort{c}) })
	assert.Equal(t, "Day Cohort 21 has 2 instructors.\n", out)

	out = render(t, func(b *strings.Builder) error { return CohortRosters(b, []*model.Cohort{c}) })
	assert.Equal(t, "Day Cohort 21 has 2 students and 2 instructors\n", out)
}

func TestStudentExercises(t *testing.T) {
	out := render(t, func(b *strings.Builder) error { return StudentExercises(b, []*model.Student{di}) })
	assert.Equal(t, "Di Diaz is working on Dictionaries,Student Exercises.\n", out)

	out = render(t, func(b *strings.Builder) error { return StudentExercisesWithCohort(b, []*model.Student{di}) })
	assert.Equal(t, "Di Diaz in Day Cohort 21 is working on Dictionaries,Student Exercises.\n", out)
}

func TestExerciseAssignments(t *testing.T) {
	e := &model.Exercise{Name: "Dictionaries", AssignedInfo: []*model.StudentExercise{
		{ID: 5, Student: di, Instructor: jisie},
		{ID: 7, Student: ed, Instructor: emily},
	}}

	out := render(t, func(b *strings.Builder) error { return ExerciseAssignments(b, []*model.Exercise{e}) })
	assert.Equal(t,
		"Students assigned Dictionaries:\n"+
			"   Di Diaz assigned by Jisie\n"+
			"   Ed Evans assigned by Emily\n",
		out)
}

func TestCohortRosterExercises(t *testing.T) {
	cohorts := []*model.Cohort{
		{Name: "Day Cohort 21", Students: []*model.Student{di, ed}, Instructors: []*model.Instructor{jisie, emily}},
		{Name: "Day Cohort 27"},
	}

	out := render(t, func(b *strings.Builder) error { return CohortRosterExercises(b, cohorts) })
	assert.Equal(t,
		"Day Cohort 21: 2 students (Di Diaz [Dictionaries,Student Exercises]; Ed Evans [Dictionaries]), 2 instructors (Jisie David, Emily Lemmon)\n"+
			"Day Cohort 27: 0 students (), 0 instructors ()\n",
		out)
}

type failingWriter struct{}

var errWrite = errors.New("sink closed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriterErrorIsReturned(t *testing.T) {
	assert.ErrorIs(t, Cohorts(failingWriter{}, []*model.Cohort{day21}), errWrite)
	assert.ErrorIs(t, ExerciseAssignments(failingWriter{}, []*model.Exercise{dicts}), errWrite)
}
