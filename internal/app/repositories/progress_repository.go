package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/db"
	"github.com/yigit/coursemap/internal/pkg/apperrors"
	"github.com/yigit/coursemap/internal/pkg/dberrors"
	"github.com/yigit/coursemap/internal/pkg/logger"
)

// ProgressRepository handles the per-user progress ledger
type ProgressRepository struct {
	db *db.Database
	q  db.Queryer
	sb sq.StatementBuilderType
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(database *db.Database) *ProgressRepository {
	return &ProgressRepository{
		db: database,
		q:  database.DB,
		sb: database.Builder(),
	}
}

// Upsert writes every item for userID inside one transaction. Each course id
// must exist; otherwise nothing is written and ErrCourseNotFound is returned
// with the missing ids attached as details. A user id with no users row
// yields ErrUserNotFound.
func (r *ProgressRepository) Upsert(ctx context.Context, userID string, items []models.ProgressItem, now time.Time) error {
	if len(items) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.CourseID)
		}

		existing, err := (&CourseRepository{db: r.db, q: tx, sb: r.sb}).ExistingIDs(ctx, ids)
		if err != nil {
			return err
		}

		var missing []string
		seen := make(map[string]bool)
		for _, id := range ids {
			if _, ok := existing[id]; !ok && !seen[id] {
				missing = append(missing, id)
				seen[id] = true
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return apperrors.NewCustomError(apperrors.ErrCourseNotFound,
				fmt.Sprintf("unknown course_id: %v", missing)).
				WithDetails(map[string]interface{}{"unknown_course_ids": missing})
		}

		for _, item := range items {
			query, args, err := r.sb.Insert("student_progress").
				Columns("user_id", "course_id", "status", "updated_at").
				Values(userID, item.CourseID, string(item.Status), now).
				Suffix("ON CONFLICT (user_id, course_id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at").
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build progress upsert query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				// Course ids were checked above, so a dangling reference is the user.
				if dberrors.IsForeignKeyViolation(err) {
					return fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, userID)
				}
				logger.Error().Err(err).Str("userID", userID).Str("courseID", item.CourseID).Msg("Error upserting progress")
				return fmt.Errorf("error upserting progress for %s: %w", item.CourseID, err)
			}
		}
		return nil
	})
}

// ListByUser returns the ledger rows of userID ordered by course id.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]*models.StudentProgress, error) {
	query, args, err := r.sb.Select("id", "user_id", "course_id", "status", "updated_at").
		From("student_progress").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("course_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list progress query: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error executing list progress query")
		return nil, fmt.Errorf("error querying progress: %w", err)
	}
	defer rows.Close()

	entries := []*models.StudentProgress{}
	for rows.Next() {
		entry := &models.StudentProgress{}
		var status string
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.CourseID, &status, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning progress row: %w", err)
		}
		entry.Status = models.ProgressStatus(status)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", err)
	}
	return entries, nil
}

// CountByUser returns the number of ledger rows for userID.
func (r *ProgressRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("student_progress").
		Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count progress query: %w", err)
	}

	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting progress: %w", err)
	}
	return n, nil
}
