// Package seed loads the course catalog from a source file into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/app/repositories"
	"github.com/yigit/coursemap/internal/catalog"
	"github.com/yigit/coursemap/internal/pkg/logger"
)

// Store is the catalog storage the seeder writes into.
type Store interface {
	CountCourses(ctx context.Context) (int, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, w repositories.CatalogWriter) error) error
}

// Seeder imports a catalog source into a Store.
type Seeder struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewSeeder creates a Seeder writing into store.
func NewSeeder(store Store, log zerolog.Logger) *Seeder {
	return &Seeder{store: store, log: log, now: time.Now}
}

// Seed runs a Seeder with the package logger.
func Seed(ctx context.Context, store Store, sourcePath string) Result {
	return NewSeeder(store, logger.WithComponent("seed")).Seed(ctx, sourcePath)
}

type plannedEdge struct {
	course      string
	requirement string
}

// Seed imports the source at sourcePath when the store holds no courses.
// Failures are reported in the Result and never panic or abort the caller.
func (s *Seeder) Seed(ctx context.Context, sourcePath string) Result {
	result := s.run(ctx, sourcePath)
	result.Source = sourcePath
	result.FinishedAt = s.now().UTC()

	for _, d := range result.DroppedEdges {
		s.log.Warn().Str("courseID", d.CourseID).Str("requirementID", d.RequirementID).
			Str("reason", string(d.Reason)).Msg("Dropped prerequisite edge")
	}
	for _, d := range result.DroppedCourses {
		s.log.Warn().Int("index", d.Index).Str("courseID", d.ID).Str("reason", d.Reason).
			Msg("Dropped course record")
	}

	event := s.log.Info()
	if result.Failed() {
		event = s.log.Error().Err(result.Err)
	} else if result.Status == StatusPartial {
		event = s.log.Warn()
	}
	event.Str("status", string(result.Status)).
		Str("source", sourcePath).
		Int("courses", result.CoursesWritten).
		Int("edges", result.EdgesWritten).
		Int("droppedEdges", len(result.DroppedEdges)).
		Int("droppedCourses", len(result.DroppedCourses)).
		Msg("Catalog seed finished")
	return result
}

func (s *Seeder) run(ctx context.Context, sourcePath string) Result {
	count, err := s.store.CountCourses(ctx)
	if err != nil {
		return Result{Status: StatusFailed, Err: fmt.Errorf("failed to count courses: %w", err)}
	}
	if count > 0 {
		return Result{Status: StatusSkipped}
	}

	records, err := LoadSource(sourcePath)
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}

	result := Result{}
	courses, edges, err := s.plan(records, &result)
	if err != nil {
		result.Status, result.Err = StatusFailed, err
		return result
	}
	if len(courses) == 0 {
		result.Status, result.Err = StatusFailed, ErrEmptySource
		return result
	}

	err = s.store.WithinTransaction(ctx, func(ctx context.Context, w repositories.CatalogWriter) error {
		for _, course := range courses {
			if err := w.UpsertCourse(ctx, course); err != nil {
				return err
			}
		}
		for _, edge := range edges {
			inserted, err := w.AddPrerequisite(ctx, edge.course, edge.requirement)
			if err != nil {
				return err
			}
			if inserted {
				result.EdgesWritten++
			}
		}
		return nil
	})
	if err != nil {
		return Result{Status: StatusFailed, Err: fmt.Errorf("failed to write catalog: %w", err)}
	}

	result.CoursesWritten = len(courses)
	result.Status = StatusSeeded
	if len(result.DroppedEdges) > 0 || len(result.DroppedCourses) > 0 {
		result.Status = StatusPartial
	}
	return result
}

// plan validates records and resolves prerequisite edges against an
// in-memory graph, recording everything it drops on result.
func (s *Seeder) plan(records []CourseRecord, result *Result) ([]*models.Course, []plannedEdge, error) {
	graph := catalog.New()
	byID := make(map[string]*models.Course)
	var valid []CourseRecord

	for i, rec := range records {
		if reason := rec.validate(); reason != "" {
			result.DroppedCourses = append(result.DroppedCourses, DroppedCourse{Index: i, ID: rec.ID, Reason: reason})
			continue
		}
		// A repeated id overwrites the earlier fields; prerequisites accumulate.
		byID[rec.ID] = &models.Course{
			ID:          rec.ID,
			Name:        rec.Name,
			Cycle:       rec.Cycle,
			Credits:     rec.Credits,
			IsMandatory: rec.Mandatory(),
		}
		graph.AddCourse(rec.ID)
		valid = append(valid, rec)
	}

	var edges []plannedEdge
	for _, rec := range valid {
		for _, req := range rec.Prerequisites {
			added, err := graph.AddPrerequisite(rec.ID, req)
			if err != nil {
				result.DroppedEdges = append(result.DroppedEdges, DroppedEdge{
					CourseID: rec.ID, RequirementID: req, Reason: dropReason(err),
				})
				continue
			}
			if !added {
				result.DroppedEdges = append(result.DroppedEdges, DroppedEdge{
					CourseID: rec.ID, RequirementID: req, Reason: DropDuplicate,
				})
				continue
			}
			edges = append(edges, plannedEdge{course: rec.ID, requirement: req})
		}
	}

	// Requirements are written before the courses that depend on them.
	order, err := graph.TopologicalOrder()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to order catalog: %w", err)
	}
	courses := make([]*models.Course, 0, len(order))
	for _, id := range order {
		courses = append(courses, byID[id])
	}
	return courses, edges, nil
}

func dropReason(err error) DropReason {
	switch {
	case errors.Is(err, catalog.ErrSelfPrerequisite):
		return DropSelfReference
	case errors.Is(err, catalog.ErrCycle):
		return DropCycle
	default:
		return DropUnknownCourse
	}
}
