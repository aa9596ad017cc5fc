package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/app/repositories"
	"github.com/yigit/coursemap/internal/db/dbtest"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newStore(t *testing.T) *repositories.CourseRepository {
	t.Helper()
	return repositories.NewCourseRepository(dbtest.Open(t))
}

func counts(t *testing.T, repo *repositories.CourseRepository) (int, int) {
	t.Helper()
	ctx := context.Background()
	courses, err := repo.CountCourses(ctx)
	require.NoError(t, err)
	edges, err := repo.CountPrerequisites(ctx)
	require.NoError(t, err)
	return courses, edges
}

const exampleSource = `[
  {"id":"A","name":"Intro","cycle":1,"credits":4,"prerequisites":[]},
  {"id":"B","name":"Adv","cycle":2,"credits":4,"prerequisites":["A"]}
]`

func TestSeed_Example(t *testing.T) {
	store := newStore(t)
	path := writeSource(t, "data.json", exampleSource)

	result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
	require.NoError(t, result.Err)
	assert.Equal(t, StatusSeeded, result.Status)
	assert.Equal(t, 2, result.CoursesWritten)
	assert.Equal(t, 1, result.EdgesWritten)
	assert.Equal(t, path, result.Source)

	snapshot, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Prerequisites, 1)
	assert.Equal(t, "B", snapshot.Prerequisites[0].CourseID)
	assert.Equal(t, "A", snapshot.Prerequisites[0].RequirementID)
	assert.True(t, snapshot.Courses[0].IsMandatory, "is_mandatory defaults to true")
}

func TestSeed_IsIdempotent(t *testing.T) {
	store := newStore(t)
	path := writeSource(t, "data.json", exampleSource)
	seeder := NewSeeder(store, zerolog.Nop())

	first := seeder.Seed(context.Background(), path)
	require.Equal(t, StatusSeeded, first.Status)
	courses, edges := counts(t, store)

	second := seeder.Seed(context.Background(), path)
	assert.Equal(t, StatusSkipped, second.Status)
	assert.Zero(t, second.CoursesWritten)

	coursesAfter, edgesAfter := counts(t, store)
	assert.Equal(t, courses, coursesAfter)
	assert.Equal(t, edges, edgesAfter)
}

func TestSeed_DropsInvalidEdges(t *testing.T) {
	store := newStore(t)
	path := writeSource(t, "data.json", `[
	  {"id":"CS101","name":"Intro","cycle":1,"credits":4,"prerequisites":[]},
	  {"id":"CS201","name":"Data","cycle":2,"credits":4,"prerequisites":["CS101","CS101"]},
	  {"id":"CS301","name":"Algo","cycle":3,"credits":4,"prerequisites":["CS201","CS999","CS301"]},
	  {"id":"CS101X","name":"Loop","cycle":1,"credits":2,"prerequisites":["CS301"]},
	  {"id":"CS301","name":"Algorithms","cycle":3,"credits":5,"prerequisites":["CS101X"]}
	]`)

	result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
	require.NoError(t, result.Err)
	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 4, result.CoursesWritten)
	assert.Equal(t, 3, result.EdgesWritten)

	assert.ElementsMatch(t, []DroppedEdge{
		{CourseID: "CS201", RequirementID: "CS101", Reason: DropDuplicate},
		{CourseID: "CS301", RequirementID: "CS999", Reason: DropUnknownCourse},
		{CourseID: "CS301", RequirementID: "CS301", Reason: DropSelfReference},
		{CourseID: "CS301", RequirementID: "CS101X", Reason: DropCycle},
	}, result.DroppedEdges)

	course, err := store.GetByID(context.Background(), "CS301")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", course.Name, "later record overwrites earlier fields")

	_, edges := counts(t, store)
	assert.Equal(t, 3, edges)
}

func TestSeed_DropsInvalidRecords(t *testing.T) {
	store := newStore(t)
	path := writeSource(t, "data.json", `[
	  {"id":"","name":"Nameless","cycle":1,"credits":1,"prerequisites":[]},
	  {"id":"Z0","name":"Zero","cycle":0,"credits":1,"prerequisites":[]},
	  {"id":"NEG","name":"Negative","cycle":1,"credits":-2,"prerequisites":[]},
	  {"id":"OK","name":"Fine","cycle":1,"credits":3,"is_mandatory":false,"prerequisites":["Z0"]}
	]`)

	result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
	require.NoError(t, result.Err)
	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 1, result.CoursesWritten)
	assert.Len(t, result.DroppedCourses, 3)
	require.Len(t, result.DroppedEdges, 1)
	assert.Equal(t, DropUnknownCourse, result.DroppedEdges[0].Reason)

	course, err := store.GetByID(context.Background(), "OK")
	require.NoError(t, err)
	assert.False(t, course.IsMandatory)
}

func TestSeed_YAMLSource(t *testing.T) {
	store := newStore(t)
	path := writeSource(t, "catalog.yaml", `
- id: A
  name: Intro
  cycle: 1
  credits: 4
  prerequisites: []
- id: B
  name: Adv
  cycle: 2
  credits: 4
  prerequisites: [A]
`)

	result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
	require.NoError(t, result.Err)
	assert.Equal(t, StatusSeeded, result.Status)
	assert.Equal(t, 1, result.EdgesWritten)
}

func TestSeed_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := newStore(t)
		result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, StatusFailed, result.Status)
		assert.Error(t, result.Err)
		assert.NotEmpty(t, result.ErrorMessage())
	})

	t.Run("malformed source", func(t *testing.T) {
		store := newStore(t)
		path := writeSource(t, "data.json", `[{"id":"A","name":`)
		result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
		assert.Equal(t, StatusFailed, result.Status)

		courses, _ := counts(t, store)
		assert.Zero(t, courses)
	})

	t.Run("store error", func(t *testing.T) {
		boom := errors.New("disk on fire")
		result := NewSeeder(failingStore{err: boom}, zerolog.Nop()).Seed(context.Background(), "unused.json")
		assert.Equal(t, StatusFailed, result.Status)
		assert.ErrorIs(t, result.Err, boom)
	})
}

func TestSeed_EmptySourceFails(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "empty yaml", file: "catalog.yaml", content: ""},
		{name: "yaml comment only", file: "catalog.yaml", content: "# nothing yet\n"},
		{name: "json null", file: "data.json", content: "null"},
		{name: "json empty array", file: "data.json", content: "[]"},
		{name: "no valid records", file: "data.json", content: `[{"id":"","name":"Nameless","cycle":1,"credits":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			path := writeSource(t, tt.file, tt.content)

			result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
			assert.Equal(t, StatusFailed, result.Status)
			assert.ErrorIs(t, result.Err, ErrEmptySource)
			assert.Equal(t, "seed source contains no courses", result.ErrorMessage())

			tracker := NewTracker()
			tracker.Record(result)
			assert.False(t, tracker.Ready())
		})
	}
}

func TestSeed_DropsOverlongID(t *testing.T) {
	store := newStore(t)
	long := strings.Repeat("X", MaxCourseIDLength+1)
	path := writeSource(t, "data.json", `[
	  {"id":"A","name":"Intro","cycle":1,"credits":4,"prerequisites":[]},
	  {"id":"`+long+`","name":"Too long","cycle":1,"credits":4,"prerequisites":["A"]},
	  {"id":"`+long[:MaxCourseIDLength]+`","name":"Just fits","cycle":2,"credits":4,"prerequisites":["A"]}
	]`)

	result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
	require.NoError(t, result.Err)
	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 2, result.CoursesWritten)
	require.Len(t, result.DroppedCourses, 1)
	assert.Equal(t, 1, result.DroppedCourses[0].Index)
	assert.Contains(t, result.DroppedCourses[0].Reason, "longer than")
}

func TestSeed_WritesRequirementsFirst(t *testing.T) {
	path := writeSource(t, "data.json", `[
	  {"id":"C","name":"Third","cycle":3,"credits":4,"prerequisites":["B"]},
	  {"id":"B","name":"Second","cycle":2,"credits":4,"prerequisites":["A"]},
	  {"id":"A","name":"First","cycle":1,"credits":4,"prerequisites":[]},
	  {"id":"0","name":"Loose","cycle":1,"credits":2,"prerequisites":[]}
	]`)
	store := &recordingStore{}

	result := NewSeeder(store, zerolog.Nop()).Seed(context.Background(), path)
	require.NoError(t, result.Err)
	assert.Equal(t, StatusSeeded, result.Status)
	assert.Equal(t, []string{"0", "A", "B", "C"}, store.courses)
	assert.Equal(t, 2, result.EdgesWritten)
}

type recordingStore struct {
	courses []string
}

func (r *recordingStore) CountCourses(context.Context) (int, error) { return 0, nil }

func (r *recordingStore) WithinTransaction(ctx context.Context, fn func(context.Context, repositories.CatalogWriter) error) error {
	return fn(ctx, r)
}

func (r *recordingStore) UpsertCourse(_ context.Context, course *models.Course) error {
	r.courses = append(r.courses, course.ID)
	return nil
}

func (r *recordingStore) AddPrerequisite(context.Context, string, string) (bool, error) {
	return true, nil
}

type failingStore struct{ err error }

func (f failingStore) CountCourses(context.Context) (int, error) { return 0, f.err }

func (f failingStore) WithinTransaction(context.Context, func(context.Context, repositories.CatalogWriter) error) error {
	return f.err
}

func TestTracker(t *testing.T) {
	tracker := NewTracker()
	assert.False(t, tracker.Ready())
	assert.Equal(t, StatusPending, tracker.Last().Status)

	tracker.Record(Result{Status: StatusFailed, Err: errors.New("x")})
	assert.False(t, tracker.Ready())

	tracker.Record(Result{Status: StatusSkipped})
	assert.True(t, tracker.Ready())

	tracker.Record(Result{Status: StatusPartial})
	assert.True(t, tracker.Ready())
}
