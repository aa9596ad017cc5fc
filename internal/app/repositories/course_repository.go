package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/db"
	"github.com/yigit/coursemap/internal/pkg/apperrors"
	"github.com/yigit/coursemap/internal/pkg/logger"
)

var courseColumns = []string{"id", "name", "cycle", "credits", "is_mandatory"}

// CatalogWriter is the write side of the catalog store used while seeding.
type CatalogWriter interface {
	UpsertCourse(ctx context.Context, course *models.Course) error
	AddPrerequisite(ctx context.Context, courseID, requirementID string) (bool, error)
}

// CatalogSnapshot is a consistent read of every course and prerequisite edge.
type CatalogSnapshot struct {
	Courses       []*models.Course       // ordered by id
	Prerequisites []*models.Prerequisite // ordered by (course_id, requirement_id)
}

// CourseRepository handles course and prerequisite database operations
type CourseRepository struct {
	db *db.Database
	q  db.Queryer
	sb sq.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.Database) *CourseRepository {
	return &CourseRepository{
		db: database,
		q:  database.DB,
		sb: database.Builder(),
	}
}

// withQueryer returns a copy of the repository bound to q.
func (r *CourseRepository) withQueryer(q db.Queryer) *CourseRepository {
	return &CourseRepository{db: r.db, q: q, sb: r.sb}
}

// WithinTransaction runs fn with a writer bound to a single transaction.
func (r *CourseRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, w CatalogWriter) error) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, r.withQueryer(tx))
	})
}

// CountCourses returns the number of courses in the catalog.
func (r *CourseRepository) CountCourses(ctx context.Context) (int, error) {
	return r.count(ctx, "courses")
}

// CountPrerequisites returns the number of prerequisite edges in the catalog.
func (r *CourseRepository) CountPrerequisites(ctx context.Context) (int, error) {
	return r.count(ctx, "prerequisites")
}

func (r *CourseRepository) count(ctx context.Context, table string) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count %s query: %w", table, err)
	}

	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return n, nil
}

// UpsertCourse inserts a course or replaces the row with the same id.
func (r *CourseRepository) UpsertCourse(ctx context.Context, course *models.Course) error {
	query, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Name, course.Cycle, course.Credits, course.IsMandatory).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = excluded.name, cycle = excluded.cycle, " +
			"credits = excluded.credits, is_mandatory = excluded.is_mandatory").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert course query: %w", err)
	}

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		logger.Error().Err(err).Str("courseID", course.ID).Msg("Error upserting course")
		return fmt.Errorf("error upserting course %s: %w", course.ID, err)
	}
	return nil
}

// AddPrerequisite inserts the edge (courseID requires requirementID). It reports
// false when the edge was already present.
func (r *CourseRepository) AddPrerequisite(ctx context.Context, courseID, requirementID string) (bool, error) {
	query, args, err := r.sb.Insert("prerequisites").
		Columns("course_id", "requirement_id").
		Values(courseID, requirementID).
		Suffix("ON CONFLICT (course_id, requirement_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build insert prerequisite query: %w", err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID).Str("requirementID", requirementID).Msg("Error inserting prerequisite")
		return false, fmt.Errorf("error inserting prerequisite %s -> %s: %w", requirementID, courseID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading prerequisite insert result: %w", err)
	}
	return affected > 0, nil
}

// ExistingIDs returns the subset of ids that exist in the catalog.
func (r *CourseRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	query, args, err := r.sb.Select("id").From("courses").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course existence query: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error checking course existence: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning course id: %w", err)
		}
		existing[id] = struct{}{}
	}
	return existing, rows.Err()
}

// GetByID retrieves a course by id.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).From("courses").Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.q.QueryRowContext(ctx, query, args...).
		Scan(&course.ID, &course.Name, &course.Cycle, &course.Credits, &course.IsMandatory)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, id)
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by id: %w", err)
	}
	return course, nil
}

// ListCourses returns every course ordered by id.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).From("courses").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name, &course.Cycle, &course.Credits, &course.IsMandatory); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// ListPrerequisites returns every edge ordered by (course_id, requirement_id).
func (r *CourseRepository) ListPrerequisites(ctx context.Context) ([]*models.Prerequisite, error) {
	query, args, err := r.sb.Select("course_id", "requirement_id").
		From("prerequisites").
		OrderBy("course_id ASC", "requirement_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list prerequisites query: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list prerequisites query")
		return nil, fmt.Errorf("error querying prerequisites: %w", err)
	}
	defer rows.Close()

	edges := []*models.Prerequisite{}
	for rows.Next() {
		edge := &models.Prerequisite{}
		if err := rows.Scan(&edge.CourseID, &edge.RequirementID); err != nil {
			return nil, fmt.Errorf("error scanning prerequisite row: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prerequisite rows: %w", err)
	}
	return edges, nil
}

// Snapshot reads courses and prerequisites inside one transaction.
func (r *CourseRepository) Snapshot(ctx context.Context) (*CatalogSnapshot, error) {
	snapshot := &CatalogSnapshot{}
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		scoped := r.withQueryer(tx)
		var err error
		if snapshot.Courses, err = scoped.ListCourses(ctx); err != nil {
			return err
		}
		snapshot.Prerequisites, err = scoped.ListPrerequisites(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
