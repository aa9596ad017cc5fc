package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/app/models/dto"
	"github.com/yigit/coursemap/internal/pkg/apperrors"
)

// ProgressStore is the ledger persistence the progress service depends on.
type ProgressStore interface {
	Upsert(ctx context.Context, userID string, items []models.ProgressItem, now time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*models.StudentProgress, error)
}

// ProgressService records and reads per-user course status
type ProgressService interface {
	Sync(ctx context.Context, userID string, req *dto.SyncProgressRequest) error
	List(ctx context.Context, userID string) ([]dto.ProgressResponse, error)
}

type progressServiceImpl struct {
	progressRepo ProgressStore
	logger       zerolog.Logger
	now          func() time.Time
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo ProgressStore, logger zerolog.Logger) ProgressService {
	return &progressServiceImpl{
		progressRepo: progressRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Sync validates every item and upserts the batch atomically. A batch with
// any unknown status or course is rejected as a whole.
func (s *progressServiceImpl) Sync(ctx context.Context, userID string, req *dto.SyncProgressRequest) error {
	items := make([]models.ProgressItem, 0, len(req.Progress))
	var invalid []string

	for i, entry := range req.Progress {
		courseID := strings.TrimSpace(entry.CourseID)
		if courseID == "" {
			invalid = append(invalid, fmt.Sprintf("progress[%d].course_id is empty", i))
			continue
		}
		status, ok := models.ParseProgressStatus(entry.Status)
		if !ok {
			invalid = append(invalid, fmt.Sprintf("progress[%d].status %q is not one of %s",
				i, entry.Status, strings.Join(models.KnownStatuses(), ", ")))
			continue
		}
		items = append(items, models.ProgressItem{CourseID: courseID, Status: status})
	}

	if len(invalid) > 0 {
		return apperrors.NewCustomError(apperrors.ErrUnknownStatus, invalid[0]).
			WithDetails(map[string]interface{}{"errors": invalid})
	}

	if err := s.progressRepo.Upsert(ctx, userID, items, s.now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, apperrors.MessageOf(err, "Unknown course_id")).
				WithDetails(apperrors.DetailsOf(err))
		}
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Could not validate credentials")
		}
		return err
	}

	s.logger.Debug().Str("userID", userID).Int("items", len(items)).Msg("Progress synchronized")
	return nil
}

// List returns the user's ledger ordered by course id.
func (s *progressServiceImpl) List(ctx context.Context, userID string) ([]dto.ProgressResponse, error) {
	entries, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProgressResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ProgressResponse{CourseID: e.CourseID, Status: string(e.Status)})
	}
	return out, nil
}
