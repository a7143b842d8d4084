package repository

import (
	"database/sql"

	"github.com/deppfellow/classroom/internal/model"
)

// Column groups scan one entity each. Every column is nullable so the same
// group serves both inner and outer joins; a NULL Id means the entity is
// absent from the row and the group yields nil.

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

// cohortCols: Id, Name
type cohortCols struct {
	id   sql.NullInt64
	name sql.NullString
}

func (c *cohortCols) Dest() []any { return []any{&c.id, &c.name} }

func (c *cohortCols) entity() *model.Cohort {
	if !c.id.Valid {
		return nil
	}
	return &model.Cohort{ID: c.id.Int64, Name: c.name.String}
}

// instructorCols: Id, FirstName, LastName, SlackHandle, Specialty, CohortId
type instructorCols struct {
	id          sql.NullInt64
	firstName   sql.NullString
	lastName    sql.NullString
	slackHandle sql.NullString
	specialty   sql.NullString
	cohortID    sql.NullInt64
}

func (c *instructorCols) Dest() []any {
	return []any{&c.id, &c.firstName, &c.lastName, &c.slackHandle, &c.specialty, &c.cohortID}
}

func (c *instructorCols) entity() *model.Instructor {
	if !c.id.Valid {
		return nil
	}
	return &model.Instructor{
		ID:          c.id.Int64,
		FirstName:   c.firstName.String,
		LastName:    c.lastName.String,
		SlackHandle: c.slackHandle.String,
		Specialty:   c.specialty.String,
		CohortID:    nullableID(c.cohortID),
	}
}

// studentCols: Id, FirstName, LastName, SlackHandle, CohortId
type studentCols struct {
	id          sql.NullInt64
	firstName   sql.NullString
	lastName    sql.NullString
	slackHandle sql.NullString
	cohortID    sql.NullInt64
}

func (c *studentCols) Dest() []any {
	return []any{&c.id, &c.firstName, &c.lastName, &c.slackHandle, &c.cohortID}
}

func (c *studentCols) entity() *model.Student {
	if !c.id.Valid {
		return nil
	}
	return &model.Student{
		ID:          c.id.Int64,
		FirstName:   c.firstName.String,
		LastName:    c.lastName.String,
		SlackHandle: c.slackHandle.String,
		CohortID:    nullableID(c.cohortID),
	}
}

// exerciseCols: Id, Name, Language
type exerciseCols struct {
	id       sql.NullInt64
	name     sql.NullString
	language sql.NullString
}

func (c *exerciseCols) Dest() []any { return []any{&c.id, &c.name, &c.language} }

func (c *exerciseCols) entity() *model.Exercise {
	if !c.id.Valid {
		return nil
	}
	return &model.Exercise{ID: c.id.Int64, Name: c.name.String, Language: c.language.String}
}

// assignmentCols: Id, ExerciseId, StudentId, InstructorId
type assignmentCols struct {
	id           sql.NullInt64
	exerciseID   sql.NullInt64
	studentID    sql.NullInt64
	instructorID sql.NullInt64
}

func (c *assignmentCols) Dest() []any {
	return []any{&c.id, &c.exerciseID, &c.studentID, &c.instructorID}
}

func (c *assignmentCols) entity() *model.StudentExercise {
	if !c.id.Valid {
		return nil
	}
	return &model.StudentExercise{
		ID:           c.id.Int64,
		ExerciseID:   c.exerciseID.Int64,
		StudentID:    c.studentID.Int64,
		InstructorID: c.instructorID.Int64,
	}
}
