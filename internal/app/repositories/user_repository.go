package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/db"
	"github.com/yigit/coursemap/internal/pkg/apperrors"
	"github.com/yigit/coursemap/internal/pkg/dberrors"
	"github.com/yigit/coursemap/internal/pkg/logger"
)

const usersEmailConstraint = "users_email_key"

var userColumns = []string{"id", "email", "password_hash", "created_at"}

// UserRepository handles user database operations
type UserRepository struct {
	q  db.Queryer
	sb sq.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.Database) *UserRepository {
	return &UserRepository{
		q:  database.DB,
		sb: database.Builder(),
	}
}

// Create inserts a user. Emails are compared exactly as stored; the unique
// constraint is the authority on duplicates, so concurrent registrations
// cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.PasswordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return fmt.Errorf("%w: %s", apperrors.ErrEmailAlreadyExists, user.Email)
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.q.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("users").
		Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return n > 0, nil
}
