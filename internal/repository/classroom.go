package repository

import (
	"context"

	"github.com/deppfellow/classroom/internal/model"
	"github.com/deppfellow/classroom/internal/rowsource"
)

// ClassroomRepository runs the classroom queries.
//
// Listings return entities directly. Join reports stream rows to a
// callback in driver order, one call per result row, and leave grouping to
// the caller.
type ClassroomRepository struct {
	db rowsource.Querier
}

// NewClassroomRepository returns a repository reading through db.
func NewClassroomRepository(db rowsource.Querier) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// ListCohorts returns every cohort ordered by id.
func (r *ClassroomRepository) ListCohorts(ctx context.Context) ([]*model.Cohort, error) {
	return rowsource.Collect(ctx, r.db, listCohortsQuery,
		listOf(func() entityGroup[*model.Cohort] { return &cohortCols{} }))
}

// ListInstructors returns every instructor ordered by id.
func (r *ClassroomRepository) ListInstructors(ctx context.Context) ([]*model.Instructor, error) {
	return rowsource.Collect(ctx, r.db, listInstructorsQuery,
		listOf(func() entityGroup[*model.Instructor] { return &instructorCols{} }))
}

// ListStudents returns every student ordered by id.
func (r *ClassroomRepository) ListStudents(ctx context.Context) ([]*model.Student, error) {
	return rowsource.Collect(ctx, r.db, listStudentsQuery,
		listOf(func() entityGroup[*model.Student] { return &studentCols{} }))
}

// ListExercises returns every exercise ordered by id.
func (r *ClassroomRepository) ListExercises(ctx context.Context) ([]*model.Exercise, error) {
	return rowsource.Collect(ctx, r.db, listExercisesQuery,
		listOf(func() entityGroup[*model.Exercise] { return &exerciseCols{} }))
}

// EachInstructorCohort calls fn for every instructor joined to the cohort they coach.
func (r *ClassroomRepository) EachInstructorCohort(ctx context.Context, fn func(InstructorCohortRow) error) error {
	return rowsource.Each(ctx, r.db, instructorCohortsQuery,
		func() rowsource.Tuple[InstructorCohortRow] { return &instructorCohortTuple{} }, fn)
}

// EachCohortInstructor calls fn for every cohort joined to one of its instructors.
func (r *ClassroomRepository) EachCohortInstructor(ctx context.Context, fn func(CohortInstructorRow) error) error {
	return rowsource.Each(ctx, r.db, cohortInstructorsQuery,
		func() rowsource.Tuple[CohortInstructorRow] { return &cohortInstructorTuple{} }, fn)
}

// EachStudentExercise calls fn for every student joined to an assigned exercise.
func (r *ClassroomRepository) EachStudentExercise(ctx context.Context, fn func(StudentExerciseRow) error) error {
	return rowsource.Each(ctx, r.db, studentExercisesQuery,
		func() rowsource.Tuple[StudentExerciseRow] { return &studentExerciseTuple{} }, fn)
}

// EachStudentExerciseCohort is EachStudentExercise with the student's cohort joined in.
func (r *ClassroomRepository) EachStudentExerciseCohort(ctx context.Context, fn func(StudentExerciseCohortRow) error) error {
	return rowsource.Each(ctx, r.db, studentExercisesCohortQuery,
		func() rowsource.Tuple[StudentExerciseCohortRow] { return &studentExerciseCohortTuple{} }, fn)
}

// EachCohortRoster calls fn for every cohort row; student and instructor may be nil.
func (r *ClassroomRepository) EachCohortRoster(ctx context.Context, fn func(CohortRosterRow) error) error {
	return rowsource.Each(ctx, r.db, cohortRostersQuery,
		func() rowsource.Tuple[CohortRosterRow] { return &cohortRosterTuple{} }, fn)
}

// EachExerciseAssignment calls fn for every assignment record with its
// exercise, student and assigning instructor.
func (r *ClassroomRepository) EachExerciseAssignment(ctx context.Context, fn func(ExerciseAssignmentRow) error) error {
	return rowsource.Each(ctx, r.db, exerciseAssignmentsQuery,
		func() rowsource.Tuple[ExerciseAssignmentRow] { return &exerciseAssignmentTuple{} }, fn)
}

// EachCohortRosterExercise calls fn for every cohort row with students,
// their exercises and instructors outer-joined.
func (r *ClassroomRepository) EachCohortRosterExercise(ctx context.Context, fn func(CohortRosterExerciseRow) error) error {
	return rowsource.Each(ctx, r.db, cohortRosterExercisesQuery,
		func() rowsource.Tuple[CohortRosterExerciseRow] { return &cohortRosterExerciseTuple{} }, fn)
}
