package aggregate

import (
	"testing"

	"github.com/deppfellow/classroom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rosterRow struct {
	Cohort     *model.Cohort
	Student    *model.Student
	Instructor *model.Instructor
	Exercise   *model.Exercise
}

func newRosterAggregator() *Aggregator[rosterRow, int64, *model.Cohort] {
	return New(
		func(r rosterRow) (int64, bool) {
			if r.Cohort == nil {
				return 0, false
			}
			return r.Cohort.ID, true
		},
		func(r rosterRow) *model.Cohort { return r.Cohort },
		func(c *model.Cohort, r rosterRow) {
			var s *model.Student
			c.Students, s = AppendUnique(c.Students, r.Student, (*model.Student).Identity)
			if s != nil {
				s.AssignedExercises, _ = AppendUnique(s.AssignedExercises, r.Exercise, (*model.Exercise).Identity)
			}
			c.Instructors, _ = AppendUnique(c.Instructors, r.Instructor, (*model.Instructor).Identity)
		},
	)
}

// Fresh instances per row, the way a row source produces them.
func cohort(id int64, name string) *model.Cohort { return &model.Cohort{ID: id, Name: name} }
func student(id int64, first string) *model.Student {
	return &model.Student{ID: id, FirstName: first}
}
func instructor(id int64, first string) *model.Instructor {
	return &model.Instructor{ID: id, FirstName: first}
}
func exercise(id int64, name string) *model.Exercise { return &model.Exercise{ID: id, Name: name} }

func TestCohortWithTwoInstructors(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Day 21"), Instructor: instructor(10, "Jisie")},
		{Cohort: cohort(1, "Day 21"), Instructor: instructor(11, "Emily")},
	}))

	got := agg.Results()
	require.Len(t, got, 1)
	assert.Len(t, got[0].Instructors, 2)
}

func TestDuplicateExerciseRowsDoNotInflate(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann"), Exercise: exercise(7, "ChickenMonkey")},
		{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann"), Exercise: exercise(7, "ChickenMonkey")},
	}))

	c := agg.Results()[0]
	require.Len(t, c.Students, 1)
	assert.Len(t, c.Students[0].AssignedExercises, 1)
}

func TestAbsentChildrenAreSkipped(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann")},
		{Cohort: cohort(1, "Day 21"), Instructor: instructor(10, "Jisie")},
	}))

	c := agg.Results()[0]
	assert.Len(t, c.Students, 1)
	assert.Len(t, c.Instructors, 1)
	for _, s := range c.Students {
		assert.NotNil(t, s)
	}
	for _, i := range c.Instructors {
		assert.NotNil(t, i)
	}
}

func TestNullChildLeavesCollectionUnchanged(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Add(rosterRow{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann")}))
	before := len(agg.Results()[0].Students)

	require.NoError(t, agg.Add(rosterRow{Cohort: cohort(1, "Day 21")}))
	assert.Equal(t, before, len(agg.Results()[0].Students))
}

func TestInstructorsDedupByIdentityNotName(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Day 21"), Instructor: instructor(10, "Steve")},
		{Cohort: cohort(1, "Day 21"), Instructor: instructor(12, "Steve")},
		{Cohort: cohort(1, "Day 21"), Instructor: &model.Instructor{ID: 10, FirstName: "steve "}},
	}))

	c := agg.Results()[0]
	require.Len(t, c.Instructors, 2)
	assert.Equal(t, int64(10), c.Instructors[0].ID)
	assert.Equal(t, "Steve", c.Instructors[0].FirstName, "first-seen instance wins")
	assert.Equal(t, int64(12), c.Instructors[1].ID)
}

func TestStudentsSharingFirstNameStayDistinct(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann"), Exercise: exercise(7, "A")},
		{Cohort: cohort(1, "Day 21"), Student: student(2, "Ann"), Exercise: exercise(8, "B")},
		{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann"), Exercise: exercise(8, "B")},
	}))

	c := agg.Results()[0]
	require.Len(t, c.Students, 2)
	assert.Equal(t, []string{"A", "B"}, c.Students[0].ExerciseNames())
	assert.Equal(t, []string{"B"}, c.Students[1].ExerciseNames())
}

func TestIndependentChildChecks(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann"), Instructor: instructor(10, "Jisie"), Exercise: exercise(7, "A")},
		// Student already present, instructor new, exercise new for that student.
		{Cohort: cohort(1, "Day 21"), Student: student(1, "Ann"), Instructor: instructor(11, "Emily"), Exercise: exercise(8, "B")},
	}))

	c := agg.Results()[0]
	assert.Len(t, c.Students, 1)
	assert.Len(t, c.Instructors, 2)
	assert.Len(t, c.Students[0].AssignedExercises, 2)
}

func TestInsertionStableOrder(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(5, "Day 13"), Student: student(3, "Zed")},
		{Cohort: cohort(1, "Evening 1"), Student: student(1, "Ann")},
		{Cohort: cohort(5, "Day 13"), Student: student(4, "Yan")},
		{Cohort: cohort(3, "Day 21")},
	}))

	var ids []int64
	for _, c := range agg.Results() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{5, 1, 3}, ids)
	assert.Equal(t, 3, agg.Len())
}

func TestFirstSeenScalarsWin(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Original")},
		{Cohort: cohort(1, "Renamed")},
	}))

	c, ok := agg.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Original", c.Name)
}

func TestMissingRootKeyFailsFast(t *testing.T) {
	agg := newRosterAggregator()
	err := agg.Fold([]rosterRow{
		{Cohort: cohort(1, "Day 21")},
		{Student: student(1, "Ann")},
		{Cohort: cohort(2, "Day 22")},
	})

	require.ErrorIs(t, err, ErrMissingRootKey)
	assert.Equal(t, 1, agg.Len(), "rows after the failure are not folded")
}

func rosterFixture() []rosterRow {
	return []rosterRow{
		{Cohort: cohort(1, "Evening 1"), Student: student(1, "Ann"), Instructor: instructor(10, "Steve"), Exercise: exercise(7, "A")},
		{Cohort: cohort(1, "Evening 1"), Student: student(1, "Ann"), Instructor: instructor(10, "Steve"), Exercise: exercise(8, "B")},
		{Cohort: cohort(1, "Evening 1"), Student: student(2, "Bo"), Instructor: instructor(10, "Steve"), Exercise: exercise(7, "A")},
		{Cohort: cohort(2, "Day 13"), Student: student(3, "Cy")},
		{Cohort: cohort(2, "Day 13"), Instructor: instructor(11, "Joe")},
	}
}

type shape struct {
	ID          int64
	Students    map[int64][]int64
	Instructors []int64
}

func shapeOf(cohorts []*model.Cohort) []shape {
	var out []shape
	for _, c := range cohorts {
		s := shape{ID: c.ID, Students: map[int64][]int64{}}
		for _, st := range c.Students {
			var ex []int64
			for _, e := range st.AssignedExercises {
				ex = append(ex, e.ID)
			}
			s.Students[st.ID] = ex
		}
		for _, i := range c.Instructors {
			s.Instructors = append(s.Instructors, i.ID)
		}
		out = append(out, s)
	}
	return out
}

func TestDeterministic(t *testing.T) {
	first := newRosterAggregator()
	require.NoError(t, first.Fold(rosterFixture()))
	second := newRosterAggregator()
	require.NoError(t, second.Fold(rosterFixture()))

	assert.Equal(t, shapeOf(first.Results()), shapeOf(second.Results()))
}

func TestRefoldingIsIdempotent(t *testing.T) {
	agg := newRosterAggregator()
	require.NoError(t, agg.Fold(rosterFixture()))
	before := shapeOf(agg.Results())

	require.NoError(t, agg.Fold(rosterFixture()))
	assert.Equal(t, before, shapeOf(agg.Results()))
}

func TestOneEntryPerRootAndNoDuplicateChildren(t *testing.T) {
	agg := newRosterAggregator()
	rows := append(rosterFixture(), rosterFixture()...)
	require.NoError(t, agg.Fold(rows))

	roots := map[int64]bool{}
	for _, c := range agg.Results() {
		require.False(t, roots[c.ID], "cohort %d listed twice", c.ID)
		roots[c.ID] = true

		seen := map[int64]bool{}
		for _, s := range c.Students {
			require.False(t, seen[s.ID], "student %d duplicated", s.ID)
			seen[s.ID] = true

			ex := map[int64]bool{}
			for _, e := range s.AssignedExercises {
				require.False(t, ex[e.ID], "exercise %d duplicated", e.ID)
				ex[e.ID] = true
			}
		}
	}
	assert.Len(t, roots, 2)
}

func TestAppendUnique(t *testing.T) {
	a := exercise(1, "A")
	list, got := AppendUnique(nil, a, (*model.Exercise).Identity)
	assert.Same(t, a, got)
	assert.Len(t, list, 1)

	list, got = AppendUnique(list, exercise(1, "A again"), (*model.Exercise).Identity)
	assert.Same(t, a, got, "existing element is returned")
	assert.Len(t, list, 1)

	list, got = AppendUnique(list, nil, (*model.Exercise).Identity)
	assert.Nil(t, got)
	assert.Len(t, list, 1)
}
