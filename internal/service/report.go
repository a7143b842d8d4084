package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/classroom/internal/aggregate"
	"github.com/deppfellow/classroom/internal/app"
	"github.com/deppfellow/classroom/internal/errs"
	"github.com/deppfellow/classroom/internal/model"
	"github.com/deppfellow/classroom/internal/repository"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ReportService builds every classroom report.
type ReportService struct {
	repo          *repository.ClassroomRepository
	logger        *zerolog.Logger
	slowThreshold time.Duration
}

// NewReportService returns a ReportService logging through the app logger.
func NewReportService(a *app.App, repo *repository.ClassroomRepository) *ReportService {
	var slow time.Duration
	if a.Config.Observability != nil {
		slow = a.Config.Observability.Logging.SlowQueryThreshold
	}
	return &ReportService{
		repo:          repo,
		logger:        a.Logger,
		slowThreshold: slow,
	}
}

// fold streams the rows of one join query into agg and returns the grouped roots.
//
// A row without a root key becomes a KindAggregation error; every other
// failure keeps the classification of the layer that produced it.
func fold[R any, E any](ctx context.Context, s *ReportService, report string, each func(context.Context, func(R) error) error, agg *aggregate.Aggregator[R, int64, E]) ([]E, error) {
	start := time.Now()
	rows := 0

	err := each(ctx, func(row R) error {
		rows++
		return agg.Add(row)
	})
	if err != nil {
		if errors.Is(err, aggregate.ErrMissingRootKey) {
			return nil, errs.NewAggregationError(report, pkgerrors.WithStack(err))
		}
		return nil, pkgerrors.Wrapf(err, "running %s", report)
	}

	s.logReport(report, rows, agg.Len(), time.Since(start))
	return agg.Results(), nil
}

// list wraps a listing query with the same logging as fold.
func list[E any](ctx context.Context, s *ReportService, report string, fetch func(context.Context) ([]E, error)) ([]E, error) {
	start := time.Now()

	out, err := fetch(ctx)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "running %s", report)
	}

	s.logReport(report, len(out), len(out), time.Since(start))
	return out, nil
}

func (s *ReportService) logReport(report string, rows, roots int, took time.Duration) {
	event := s.logger.Debug()
	if s.slowThreshold > 0 && took > s.slowThreshold {
		event = s.logger.Warn().Dur("threshold", s.slowThreshold)
	}
	event.
		Str("report", report).
		Int("rows", rows).
		Int("roots", roots).
		Dur("duration", took).
		Msg("report query finished")
}

// Instructors lists every instructor.
func (s *ReportService) Instructors(ctx context.Context) ([]*model.Instructor, error) {
	return list(ctx, s, "instructors", s.repo.ListInstructors)
}

// Exercises lists every exercise.
func (s *ReportService) Exercises(ctx context.Context) ([]*model.Exercise, error) {
	return list(ctx, s, "exercises", s.repo.ListExercises)
}

// Students lists every student.
func (s *ReportService) Students(ctx context.Context) ([]*model.Student, error) {
	return list(ctx, s, "students", s.repo.ListStudents)
}

// Cohorts lists every cohort.
func (s *ReportService) Cohorts(ctx context.Context) ([]*model.Cohort, error) {
	return list(ctx, s, "cohorts", s.repo.ListCohorts)
}

// InstructorCohorts returns each instructor that coaches a cohort, with
// Cohort set.
func (s *ReportService) InstructorCohorts(ctx context.Context) ([]*model.Instructor, error) {
	agg := aggregate.New(
		repository.InstructorCohortRow.RootKey,
		func(r repository.InstructorCohortRow) *model.Instructor { return r.Instructor },
		func(i *model.Instructor, r repository.InstructorCohortRow) {
			if i.Cohort == nil {
				i.Cohort = r.Cohort
			}
		},
	)
	return fold(ctx, s, "instructor-cohorts", s.repo.EachInstructorCohort, agg)
}

// CohortInstructors returns each cohort that has instructors, with
// Instructors filled.
func (s *ReportService) CohortInstructors(ctx context.Context) ([]*model.Cohort, error) {
	agg := aggregate.New(
		repository.CohortInstructorRow.RootKey,
		func(r repository.CohortInstructorRow) *model.Cohort { return r.Cohort },
		func(c *model.Cohort, r repository.CohortInstructorRow) {
			c.Instructors, _ = aggregate.AppendUnique(c.Instructors, r.Instructor, (*model.Instructor).Identity)
		},
	)
	return fold(ctx, s, "cohort-instructors", s.repo.EachCohortInstructor, agg)
}

// StudentExercises returns each student with assignments, AssignedExercises
// holding every assigned exercise once.
func (s *ReportService) StudentExercises(ctx context.Context) ([]*model.Student, error) {
	agg := aggregate.New(
		repository.StudentExerciseRow.RootKey,
		func(r repository.StudentExerciseRow) *model.Student { return r.Student },
		func(st *model.Student, r repository.StudentExerciseRow) {
			st.AssignedExercises, _ = aggregate.AppendUnique(st.AssignedExercises, r.Exercise, (*model.Exercise).Identity)
		},
	)
	return fold(ctx, s, "student-exercises", s.repo.EachStudentExercise, agg)
}

// StudentExercisesWithCohort is StudentExercises limited to students in a
// cohort, with Cohort set.
func (s *ReportService) StudentExercisesWithCohort(ctx context.Context) ([]*model.Student, error) {
	agg := aggregate.New(
		repository.StudentExerciseCohortRow.RootKey,
		func(r repository.StudentExerciseCohortRow) *model.Student { return r.Student },
		func(st *model.Student, r repository.StudentExerciseCohortRow) {
			if st.Cohort == nil {
				st.Cohort = r.Cohort
			}
			st.AssignedExercises, _ = aggregate.AppendUnique(st.AssignedExercises, r.Exercise, (*model.Exercise).Identity)
		},
	)
	return fold(ctx, s, "student-exercises-cohort", s.repo.EachStudentExerciseCohort, agg)
}

// CohortRosters returns every cohort with its students and instructors.
func (s *ReportService) CohortRosters(ctx context.Context) ([]*model.Cohort, error) {
	agg := aggregate.New(
		repository.CohortRosterRow.RootKey,
		func(r repository.CohortRosterRow) *model.Cohort { return r.Cohort },
		func(c *model.Cohort, r repository.CohortRosterRow) {
			c.Students, _ = aggregate.AppendUnique(c.Students, r.Student, (*model.Student).Identity)
			c.Instructors, _ = aggregate.AppendUnique(c.Instructors, r.Instructor, (*model.Instructor).Identity)
		},
	)
	return fold(ctx, s, "cohort-rosters", s.repo.EachCohortRoster, agg)
}

// ExerciseAssignments returns each assigned exercise with its assignment
// records. Every record carries the assigned student and the assigning
// instructor.
func (s *ReportService) ExerciseAssignments(ctx context.Context) ([]*model.Exercise, error) {
	agg := aggregate.New(
		repository.ExerciseAssignmentRow.RootKey,
		func(r repository.ExerciseAssignmentRow) *model.Exercise { return r.Exercise },
		func(e *model.Exercise, r repository.ExerciseAssignmentRow) {
			var se *model.StudentExercise
			e.AssignedInfo, se = aggregate.AppendUnique(e.AssignedInfo, r.Assignment, (*model.StudentExercise).Identity)
			if se == nil {
				return
			}
			if se.Exercise == nil {
				se.Exercise = e
			}
			if se.Student == nil {
				se.Student = r.Student
			}
			if se.Instructor == nil {
				se.Instructor = r.Instructor
			}
		},
	)
	return fold(ctx, s, "exercise-assignments", s.repo.EachExerciseAssignment, agg)
}

// CohortRosterExercises returns every cohort with its instructors and its
// students, each student carrying its assigned exercises.
//
// Students, instructors and exercises are looked up independently by
// identity, so the cross product of the outer joins never duplicates or
// drops an entry, whatever the row order.
func (s *ReportService) CohortRosterExercises(ctx context.Context) ([]*model.Cohort, error) {
	agg := aggregate.New(
		repository.CohortRosterExerciseRow.RootKey,
		func(r repository.CohortRosterExerciseRow) *model.Cohort { return r.Cohort },
		func(c *model.Cohort, r repository.CohortRosterExerciseRow) {
			var st *model.Student
			c.Students, st = aggregate.AppendUnique(c.Students, r.Student, (*model.Student).Identity)
			if st != nil {
				st.AssignedExercises, _ = aggregate.AppendUnique(st.AssignedExercises, r.Exercise, (*model.Exercise).Identity)
			}
			c.Instructors, _ = aggregate.AppendUnique(c.Instructors, r.Instructor, (*model.Instructor).Identity)
		},
	)
	return fold(ctx, s, "cohort-roster-exercises", s.repo.EachCohortRosterExercise, agg)
}
