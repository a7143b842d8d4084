package handler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/deppfellow/classroom/internal/app"
	"github.com/deppfellow/classroom/internal/errs"
	"github.com/deppfellow/classroom/internal/render"
	"github.com/deppfellow/classroom/internal/service"
)

// Report is one runnable report.
type Report struct {
	Name        string
	Description string
	run         func(ctx context.Context, w io.Writer) error
}

// report pairs a service call with its renderer.
func report[E any](name, description string, fetch func(context.Context) ([]E, error), write func(io.Writer, []E) error) Report {
	return Report{
		Name:        name,
		Description: description,
		run: func(ctx context.Context, w io.Writer) error {
			results, err := fetch(ctx)
			if err != nil {
				return err
			}
			return write(w, results)
		},
	}
}

// ReportHandler runs reports by name and writes them to an output sink.
type ReportHandler struct {
	Handler
	reports []Report
	byName  map[string]Report
}

// NewReportHandler registers every report in the order RunAll prints them.
func NewReportHandler(a *app.App, reports *service.ReportService) *ReportHandler {
	h := &ReportHandler{
		Handler: NewHandler(a),
		reports: []Report{
			report("instructors", "every instructor", reports.Instructors, render.Instructors),
			report("exercises", "every exercise", reports.Exercises, render.Exercises),
			report("students", "every student", reports.Students, render.Students),
			report("cohorts", "every cohort", reports.Cohorts, render.Cohorts),
			report("instructor-cohorts", "instructors with the cohort they coach", reports.InstructorCohorts, render.InstructorCohorts),
			report("cohort-instructors", "instructor count per cohort", reports.CohortInstructors, render.CohortInstructors),
			report("student-exercises", "exercises each student is working on", reports.StudentExercises, render.StudentExercises),
			report("student-exercises-cohort", "student exercises with the student's cohort", reports.StudentExercisesWithCohort, render.StudentExercisesWithCohort),
			report("cohort-rosters", "student and instructor counts per cohort", reports.CohortRosters, render.CohortRosters),
			report("exercise-assignments", "assignment records per exercise", reports.ExerciseAssignments, render.ExerciseAssignments),
			report("cohort-roster-exercises", "students with exercises and instructors per cohort", reports.CohortRosterExercises, render.CohortRosterExercises),
		},
	}

	h.byName = make(map[string]Report, len(h.reports))
	for _, r := range h.reports {
		h.byName[r.Name] = r
	}
	return h
}

// Catalog returns the registered reports without a database behind them.
// The reports only carry their names and descriptions; run them through a
// ReportHandler built by NewReportHandler.
func Catalog() []Report {
	return NewReportHandler(nil, nil).Reports()
}

// Reports returns the registered reports in run order.
func (h *ReportHandler) Reports() []Report {
	out := make([]Report, len(h.reports))
	copy(out, h.reports)
	return out
}

// Names returns the registered report names in run order.
func (h *ReportHandler) Names() []string {
	names := make([]string, 0, len(h.reports))
	for _, r := range h.reports {
		names = append(names, r.Name)
	}
	return names
}

// RunAll runs every report in order.
func (h *ReportHandler) RunAll(ctx context.Context, w io.Writer) error {
	return h.Run(ctx, w, h.Names()...)
}

// Run runs the named reports in the given order, separated by a blank line.
//
// Every name is resolved before anything runs; an unknown name is a
// KindNotFound error. A failing report does not stop the ones after it,
// except for fatal kinds (schema, config). The failures are joined into
// the returned error.
func (h *ReportHandler) Run(ctx context.Context, w io.Writer, names ...string) error {
	selected := make([]Report, 0, len(names))
	for _, name := range names {
		r, ok := h.byName[name]
		if !ok {
			code := "REPORT_NOT_FOUND"
			return errs.NewNotFoundError(fmt.Sprintf("unknown report %q", name), &code)
		}
		selected = append(selected, r)
	}

	var failed []error
	for i, r := range selected {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		err := h.run(ctx, "report", r.Name, func(ctx context.Context) error {
			return r.run(ctx, w)
		})
		if err == nil {
			continue
		}
		if errs.IsFatal(err) {
			return err
		}
		failed = append(failed, fmt.Errorf("report %s: %w", r.Name, err))
	}

	return errors.Join(failed...)
}
