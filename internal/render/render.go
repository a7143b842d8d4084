// Package render turns report results into lines of text.
//
// Every function writes complete lines to w and returns the first write
// error; there is nothing else that can fail.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/deppfellow/classroom/internal/model"
)

// lines writes one line per element.
func lines[E any](w io.Writer, list []E, line func(E) string) error {
	for _, e := range list {
		if _, err := fmt.Fprintln(w, line(e)); err != nil {
			return err
		}
	}
	return nil
}

// Instructors writes "First Last" per instructor.
func Instructors(w io.Writer, instructors []*model.Instructor) error {
	return lines(w, instructors, (*model.Instructor).FullName)
}

// Students writes "First Last" per student.
func Students(w io.Writer, students []*model.Student) error {
	return lines(w, students, (*model.Student).FullName)
}

// Exercises writes one exercise name per line.
func Exercises(w io.Writer, exercises []*model.Exercise) error {
	return lines(w, exercises, func(e *model.Exercise) string { return e.Name })
}

// Cohorts writes one cohort name per line.
func Cohorts(w io.Writer, cohorts []*model.Cohort) error {
	return lines(w, cohorts, func(c *model.Cohort) string { return c.Name })
}

// InstructorCohorts: "Steve Brownlee (@coach) is coaching Evening Cohort 1"
func InstructorCohorts(w io.Writer, instructors []*model.Instructor) error {
	return lines(w, instructors, func(i *model.Instructor) string {
		return fmt.Sprintf("%s (%s) is coaching %s", i.FullName(), i.SlackHandle, cohortName(i.Cohort))
	})
}

// CohortInstructors: "Day Cohort 21 has 2 instructors."
func CohortInstructors(w io.Writer, cohorts []*model.Cohort) error {
	return lines(w, cohorts, func(c *model.Cohort) string {
		return fmt.Sprintf("%s has %d instructors.", c.Name, len(c.Instructors))
	})
}

// StudentExercises: "Ann Adams is working on ChickenMonkey,Daily Journal."
func StudentExercises(w io.Writer, students []*model.Student) error {
	return lines(w, students, func(s *model.Student) string {
		return fmt.Sprintf("%s is working on %s.", s.FullName(), strings.Join(s.ExerciseNames(), ","))
	})
}

// StudentExercisesWithCohort: "Ann Adams in Evening Cohort 1 is working on ChickenMonkey."
func StudentExercisesWithCohort(w io.Writer, students []*model.Student) error {
	return lines(w, students, func(s *model.Student) string {
		return fmt.Sprintf("%s in %s is working on %s.",
			s.FullName(), cohortName(s.Cohort), strings.Join(s.ExerciseNames(), ","))
	})
}

// CohortRosters: "Day Cohort 21 has 2 students and 2 instructors"
func CohortRosters(w io.Writer, cohorts []*model.Cohort) error {
	return lines(w, cohorts, func(c *model.Cohort) string {
		return fmt.Sprintf("%s has %d students and %d instructors", c.Name, len(c.Students), len(c.Instructors))
	})
}

// ExerciseAssignments writes a header per exercise followed by one
// indented line per assignment record.
func ExerciseAssignments(w io.Writer, exercises []*model.Exercise) error {
	for _, e := range exercises {
		if _, err := fmt.Fprintf(w, "Students assigned %s:\n", e.Name); err != nil {
			return err
		}
		err := lines(w, e.AssignedInfo, func(se *model.StudentExercise) string {
			return fmt.Sprintf("   %s assigned by %s", studentName(se.Student), instructorFirstName(se.Instructor))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// CohortRosterExercises:
//
//	Day Cohort 21: 2 students (Di Diaz [Dictionaries,Student Exercises]; Ed Evans [Dictionaries]), 2 instructors (Jisie David, Emily Lemmon)
func CohortRosterExercises(w io.Writer, cohorts []*model.Cohort) error {
	return lines(w, cohorts, func(c *model.Cohort) string {
		students := make([]string, 0, len(c.Students))
		for _, s := range c.Students {
			students = append(students, fmt.Sprintf("%s [%s]", s.FullName(), strings.Join(s.ExerciseNames(), ",")))
		}
		instructors := make([]string, 0, len(c.Instructors))
		for _, i := range c.Instructors {
			instructors = append(instructors, i.FullName())
		}
		return fmt.Sprintf("%s: %d students (%s), %d instructors (%s)",
			c.Name,
			len(c.Students), strings.Join(students, "; "),
			len(c.Instructors), strings.Join(instructors, ", "))
	})
}

func cohortName(c *model.Cohort) string {
	if c == nil {
		return "no cohort"
	}
	return c.Name
}

func studentName(s *model.Student) string {
	if s == nil {
		return "unknown student"
	}
	return s.FullName()
}

func instructorFirstName(i *model.Instructor) string {
	if i == nil {
		return "unknown instructor"
	}
	return i.FirstName
}
