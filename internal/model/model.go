// Package model defines the entities of the classroom schema.
//
// Entities are read-only snapshots: a report builds them fresh from joined
// rows, fills their child collections through the aggregator and discards
// them once rendered. Identity is the primary key and nothing else.
package model

// Cohort is a named group of students taught together by one or more instructors.
//
// Students and Instructors are not columns of the Cohort table; they are
// populated post-hoc by aggregating joined rows.
type Cohort struct {
	ID          int64
	Name        string
	Students    []*Student
	Instructors []*Instructor
}

// Identity returns the cohort primary key.
func (c *Cohort) Identity() int64 { return c.ID }

// Instructor teaches at most one cohort at a time.
type Instructor struct {
	ID          int64
	FirstName   string
	LastName    string
	SlackHandle string
	Specialty   string

	// CohortID is nil when the instructor is not assigned to a cohort.
	CohortID *int64

	// Cohort is set only by reports that join the Cohort table.
	Cohort *Cohort
}

// Identity returns the instructor primary key.
func (i *Instructor) Identity() int64 { return i.ID }

// FullName returns "First Last".
func (i *Instructor) FullName() string { return i.FirstName + " " + i.LastName }

// Student optionally belongs to one cohort and works on assigned exercises.
type Student struct {
	ID          int64
	FirstName   string
	LastName    string
	SlackHandle string

	CohortID *int64
	Cohort   *Cohort

	// AssignedExercises holds each exercise once, whatever the number of
	// joined rows that mention it.
	AssignedExercises []*Exercise
}

// Identity returns the student primary key.
func (s *Student) Identity() int64 { return s.ID }

// FullName returns "First Last".
func (s *Student) FullName() string { return s.FirstName + " " + s.LastName }

// Exercise is a unit of work that instructors assign to students.
type Exercise struct {
	ID       int64
	Name     string
	Language string

	// AssignedInfo lists the assignment records of this exercise.
	AssignedInfo []*StudentExercise
}

// Identity returns the exercise primary key.
func (e *Exercise) Identity() int64 { return e.ID }

// StudentExercise is an assignment record: an instructor assigned an
// exercise to a student. It is the many-to-many join entity between
// Student and Exercise.
type StudentExercise struct {
	ID           int64
	ExerciseID   int64
	StudentID    int64
	InstructorID int64

	Exercise   *Exercise
	Student    *Student
	Instructor *Instructor
}

// Identity returns the assignment record primary key.
func (se *StudentExercise) Identity() int64 { return se.ID }

// ExerciseNames returns the names of the student's assigned exercises in order.
func (s *Student) ExerciseNames() []string {
	names := make([]string, 0, len(s.AssignedExercises))
	for _, e := range s.AssignedExercises {
		names = append(names, e.Name)
	}
	return names
}

// Entity is any model type keyed by its primary key.
type Entity interface {
	comparable
	Identity() int64
}

// KeyOf returns e's identity key. ok is false when e is absent (nil).
func KeyOf[E Entity](e E) (key int64, ok bool) {
	var absent E
	if e == absent {
		return 0, false
	}
	return e.Identity(), true
}
