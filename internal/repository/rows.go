package repository

import (
	"github.com/deppfellow/classroom/internal/model"
	"github.com/deppfellow/classroom/internal/rowsource"
)

// One row type per join report. Fields appear in SELECT order. RootKey
// returns the identity of the entity the report is grouped by; it is false
// only when the row carries no such entity.

// InstructorCohortRow is one row of Instructor JOIN Cohort.
type InstructorCohortRow struct {
	Instructor *model.Instructor
	Cohort     *model.Cohort
}

func (r InstructorCohortRow) RootKey() (int64, bool) { return model.KeyOf(r.Instructor) }

// CohortInstructorRow is one row of Cohort JOIN Instructor.
type CohortInstructorRow struct {
	Cohort     *model.Cohort
	Instructor *model.Instructor
}

func (r CohortInstructorRow) RootKey() (int64, bool) { return model.KeyOf(r.Cohort) }

// StudentExerciseRow is one row of Student JOIN StudentExercise JOIN Exercise.
type StudentExerciseRow struct {
	Student  *model.Student
	Exercise *model.Exercise
}

func (r StudentExerciseRow) RootKey() (int64, bool) { return model.KeyOf(r.Student) }

// StudentExerciseCohortRow adds the student's cohort to StudentExerciseRow.
type StudentExerciseCohortRow struct {
	Student  *model.Student
	Exercise *model.Exercise
	Cohort   *model.Cohort
}

func (r StudentExerciseCohortRow) RootKey() (int64, bool) { return model.KeyOf(r.Student) }

// CohortRosterRow is one row of Cohort with its students and instructors
// outer-joined. Either child may be nil.
type CohortRosterRow struct {
	Cohort     *model.Cohort
	Student    *model.Student
	Instructor *model.Instructor
}

func (r CohortRosterRow) RootKey() (int64, bool) { return model.KeyOf(r.Cohort) }

// ExerciseAssignmentRow is one assignment record of an exercise with the
// assigned student and the assigning instructor.
type ExerciseAssignmentRow struct {
	Exercise   *model.Exercise
	Assignment *model.StudentExercise
	Student    *model.Student
	Instructor *model.Instructor
}

func (r ExerciseAssignmentRow) RootKey() (int64, bool) { return model.KeyOf(r.Exercise) }

// CohortRosterExerciseRow is one row of the five-table cohort roster.
// Everything but Cohort may be nil.
type CohortRosterExerciseRow struct {
	Student    *model.Student
	Instructor *model.Instructor
	Cohort     *model.Cohort
	Assignment *model.StudentExercise
	Exercise   *model.Exercise
}

func (r CohortRosterExerciseRow) RootKey() (int64, bool) { return model.KeyOf(r.Cohort) }

// entityGroup is a column group that yields a single entity.
type entityGroup[E any] interface {
	rowsource.Group
	entity() E
}

// listTuple scans a single-table listing.
type listTuple[E any] struct{ group entityGroup[E] }

func (t listTuple[E]) Groups() []rowsource.Group { return []rowsource.Group{t.group} }
func (t listTuple[E]) Row() E                    { return t.group.entity() }

func listOf[E any](newGroup func() entityGroup[E]) func() rowsource.Tuple[E] {
	return func() rowsource.Tuple[E] { return listTuple[E]{group: newGroup()} }
}

type instructorCohortTuple struct {
	instructor instructorCols
	cohort     cohortCols
}

func (t *instructorCohortTuple) Groups() []rowsource.Group {
	return []rowsource.Group{&t.instructor, &t.cohort}
}

func (t *instructorCohortTuple) Row() InstructorCohortRow {
	return InstructorCohortRow{Instructor: t.instructor.entity(), Cohort: t.cohort.entity()}
}

type cohortInstructorTuple struct {
	cohort     cohortCols
	instructor instructorCols
}

func (t *cohortInstructorTuple) Groups() []rowsource.Group {
	return []rowsource.Group{&t.cohort, &t.instructor}
}

func (t *cohortInstructorTuple) Row() CohortInstructorRow {
	return CohortInstructorRow{Cohort: t.cohort.entity(), Instructor: t.instructor.entity()}
}

type studentExerciseTuple struct {
	student  studentCols
	exercise exerciseCols
}

func (t *studentExerciseTuple) Groups() []rowsource.Group {
	return []rowsource.Group{&t.student, &t.exercise}
}

func (t *studentExerciseTuple) Row() StudentExerciseRow {
	return StudentExerciseRow{Student: t.student.entity(), Exercise: t.exercise.entity()}
}

type studentExerciseCohortTuple struct {
	student  studentCols
	exercise exerciseCols
	cohort   cohortCols
}

func (t *studentExerciseCohortTuple) Groups() []rowsource.Group {
	return []rowsource.Group{&t.student, &t.exercise, &t.cohort}
}

func (t *studentExerciseCohortTuple) Row() StudentExerciseCohortRow {
	return StudentExerciseCohortRow{
		Student:  t.student.entity(),
		Exercise: t.exercise.entity(),
		Cohort:   t.cohort.entity(),
	}
}

type cohortRosterTuple struct {
	cohort     cohortCols
	student    studentCols
	instructor instructorCols
}

func (t *cohortRosterTuple) Groups() []rowsource.Group {
	return []rowsource.Group{&t.cohort, &t.student, &t.instructor}
}

func (t *cohortRosterTuple) Row() CohortRosterRow {
	return CohortRosterRow{
		Cohort:     t.cohort.entity(),
		Student:    t.student.entity(),
		Instructor: t.instructor.entity(),
	}
}

type exerciseAssignmentTuple struct {
	exercise   exerciseCols
	assignment assignmentCols
	student    studentCols
	instructor instructorCols
}

func (t *exerciseAssignmentTuple) Groups() []rowsource.Group {
	return []rowsource.Group{&t.exercise, &t.assignment, &t.student, &t.instructor}
}

func (t *exerciseAssignmentTuple) Row() ExerciseAssignmentRow {
	return ExerciseAssignmentRow{
		Exercise:   t.exercise.entity(),
		Assignment: t.assignment.entity(),
		Student:    t.student.entity(),
		Instructor: t.instructor.entity(),
	}
}

type cohortRosterExerciseTuple struct {
	student    studentCols
	instructor instructorCols
	cohort     cohortCols
	assignment assignmentCols
	exercise   exerciseCols
}

func (t *cohortRosterExerciseTuple) Groups() []rowsource.Group {
	return []rowsource.Group{&t.student, &t.instructor, &t.cohort, &t.assignment, &t.exercise}
}

func (t *cohortRosterExerciseTuple) Row() CohortRosterExerciseRow {
	return CohortRosterExerciseRow{
		Student:    t.student.entity(),
		Instructor: t.instructor.entity(),
		Cohort:     t.cohort.entity(),
		Assignment: t.assignment.entity(),
		Exercise:   t.exercise.entity(),
	}
}
