package repository

// SELECT lists are grouped by entity, in the order of the matching row
// type's fields. Each group lists its columns in table order:
//
//	Cohort          Id, Name
//	Instructor      Id, FirstName, LastName, SlackHandle, Specialty, CohortId
//	Student         Id, FirstName, LastName, SlackHandle, CohortId
//	Exercise        Id, Name, Language
//	StudentExercise Id, ExerciseId, StudentId, InstructorId
//
// ORDER BY keeps the printed output stable; grouping does not depend on it.

const (
	cohortColumns     = "c.Id, c.Name"
	instructorColumns = "i.Id, i.FirstName, i.LastName, i.SlackHandle, i.Specialty, i.CohortId"
	studentColumns    = "s.Id, s.FirstName, s.LastName, s.SlackHandle, s.CohortId"
	exerciseColumns   = "e.Id, e.Name, e.Language"
	assignmentColumns = "se.Id, se.ExerciseId, se.StudentId, se.InstructorId"
)

const (
	listCohortsQuery     = "SELECT " + cohortColumns + " FROM Cohort c ORDER BY c.Id"
	listInstructorsQuery = "SELECT " + instructorColumns + " FROM Instructor i ORDER BY i.Id"
	listStudentsQuery    = "SELECT " + studentColumns + " FROM Student s ORDER BY s.Id"
	listExercisesQuery   = "SELECT " + exerciseColumns + " FROM Exercise e ORDER BY e.Id"
)

// Instructors without a cohort are left out.
const instructorCohortsQuery = `
SELECT ` + instructorColumns + `,
       ` + cohortColumns + `
FROM Instructor i
JOIN Cohort c ON c.Id = i.CohortId
ORDER BY i.Id`

// Cohorts without instructors are left out.
const cohortInstructorsQuery = `
SELECT ` + cohortColumns + `,
       ` + instructorColumns + `
FROM Cohort c
JOIN Instructor i ON i.CohortId = c.Id
ORDER BY c.Id, i.Id`

// One row per assignment record, so a student assigned the same exercise
// twice comes back twice.
const studentExercisesQuery = `
SELECT ` + studentColumns + `,
       ` + exerciseColumns + `
FROM Student s
JOIN StudentExercise se ON se.StudentId = s.Id
JOIN Exercise e ON e.Id = se.ExerciseId
ORDER BY s.Id, se.Id`

const studentExercisesCohortQuery = `
SELECT ` + studentColumns + `,
       ` + exerciseColumns + `,
       ` + cohortColumns + `
FROM Student s
JOIN StudentExercise se ON se.StudentId = s.Id
JOIN Exercise e ON e.Id = se.ExerciseId
JOIN Cohort c ON c.Id = s.CohortId
ORDER BY s.Id, se.Id`

// Every cohort appears, with or without students and instructors. The two
// outer joins multiply: a cohort with 2 students and 2 instructors yields
// 4 rows.
const cohortRostersQuery = `
SELECT ` + cohortColumns + `,
       ` + studentColumns + `,
       ` + instructorColumns + `
FROM Cohort c
LEFT JOIN Student s ON s.CohortId = c.Id
LEFT JOIN Instructor i ON i.CohortId = c.Id
ORDER BY c.Id, s.Id, i.Id`

// Only exercises with at least one assignment record appear.
const exerciseAssignmentsQuery = `
SELECT ` + exerciseColumns + `,
       ` + assignmentColumns + `,
       ` + studentColumns + `,
       ` + instructorColumns + `
FROM Exercise e
JOIN StudentExercise se ON se.ExerciseId = e.Id
JOIN Student s ON s.Id = se.StudentId
JOIN Instructor i ON i.Id = se.InstructorId
ORDER BY e.Id, se.Id`

const cohortRosterExercisesQuery = `
SELECT ` + studentColumns + `,
       ` + instructorColumns + `,
       ` + cohortColumns + `,
       ` + assignmentColumns + `,
       ` + exerciseColumns + `
FROM Cohort c
LEFT JOIN Student s ON s.CohortId = c.Id
LEFT JOIN Instructor i ON i.CohortId = c.Id
LEFT JOIN StudentExercise se ON se.StudentId = s.Id
LEFT JOIN Exercise e ON e.Id = se.ExerciseId
ORDER BY c.Id, s.Id, i.Id, se.Id`
