package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/app/models/dto"
	"github.com/yigit/coursemap/internal/app/repositories"
	"github.com/yigit/coursemap/internal/catalog"
	"github.com/yigit/coursemap/internal/pkg/apperrors"
	"github.com/yigit/coursemap/internal/pkg/cache"
	"github.com/yigit/coursemap/internal/pkg/tracing"
)

// Layout of the projected graph: one column per cycle, one row per course
// within a cycle in id order.
const (
	ColumnWidth = 250
	RowHeight   = 150
	NodeType    = "default"

	graphCacheKey = "graph"
)

// CatalogReader is the read side of the catalog store.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*repositories.CatalogSnapshot, error)
}

// GraphService projects the catalog into a renderable graph
type GraphService interface {
	GetGraph(ctx context.Context) (*dto.GraphResponse, error)
	GetCourse(ctx context.Context, id string) (*dto.CourseDetailResponse, error)
	// Invalidate drops any cached projection.
	Invalidate(ctx context.Context)
}

type graphServiceImpl struct {
	store  CatalogReader
	cache  cache.Cache
	group  singleflight.Group
	logger zerolog.Logger
}

// NewGraphService creates a new GraphService. A nil cache disables caching.
func NewGraphService(store CatalogReader, c cache.Cache, logger zerolog.Logger) GraphService {
	if c == nil {
		c = cache.Nop{}
	}
	return &graphServiceImpl{
		store:  store,
		cache:  c,
		logger: logger,
	}
}

// GetGraph returns the projection, from cache when available. Concurrent
// misses share one store read.
func (s *graphServiceImpl) GetGraph(ctx context.Context) (*dto.GraphResponse, error) {
	ctx, span := tracing.Tracer("coursemap/graph").Start(ctx, "GraphService.GetGraph")
	defer span.End()

	if raw, ok, err := s.cache.Get(ctx, graphCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("Graph cache read failed")
	} else if ok {
		var graph dto.GraphResponse
		if err := json.Unmarshal(raw, &graph); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &graph, nil
		}
		s.logger.Warn().Msg("Discarding undecodable cached graph")
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	// The shared load must not be cancelled by whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(graphCacheKey, func() (interface{}, error) {
		snapshot, err := s.store.Snapshot(loadCtx)
		if err != nil {
			return nil, err
		}
		graph := ProjectGraph(snapshot.Courses, snapshot.Prerequisites)

		if raw, err := json.Marshal(graph); err == nil {
			if err := s.cache.Set(loadCtx, graphCacheKey, raw); err != nil {
				s.logger.Warn().Err(err).Msg("Graph cache write failed")
			}
		}
		return graph, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error building graph: %w", err)
	}

	graph := v.(*dto.GraphResponse)
	span.SetAttributes(attribute.Int("graph.nodes", len(graph.Nodes)), attribute.Int("graph.edges", len(graph.Edges)))
	return graph, nil
}

// GetCourse returns one course with its immediate prerequisites and the
// courses it unlocks.
func (s *graphServiceImpl) GetCourse(ctx context.Context, id string) (*dto.CourseDetailResponse, error) {
	ctx, span := tracing.Tracer("coursemap/graph").Start(ctx, "GraphService.GetCourse")
	defer span.End()
	span.SetAttributes(attribute.String("course.id", id))

	snapshot, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	byID := make(map[string]*models.Course, len(snapshot.Courses))
	graph := catalog.New()
	for _, c := range snapshot.Courses {
		byID[c.ID] = c
		graph.AddCourse(c.ID)
	}
	for _, p := range snapshot.Prerequisites {
		if _, err := graph.AddPrerequisite(p.CourseID, p.RequirementID); err != nil {
			s.logger.Warn().Err(err).Str("courseID", p.CourseID).Str("requirementID", p.RequirementID).
				Msg("Skipping inconsistent prerequisite edge")
		}
	}

	if !graph.HasCourse(id) {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, fmt.Sprintf("Course %s not found", id))
	}
	span.SetAttributes(attribute.Int("catalog.edges", graph.EdgeCount()))
	course := byID[id]

	refs := func(ids []string) []models.CourseRef {
		out := make([]models.CourseRef, 0, len(ids))
		for _, rid := range ids {
			out = append(out, models.CourseRef{ID: rid, Name: byID[rid].Name})
		}
		return out
	}

	return &dto.CourseDetailResponse{
		Course:       *course,
		Requirements: refs(graph.Requirements(id)),
		RequiredFor:  refs(graph.RequiredFor(id)),
	}, nil
}

// Invalidate implements GraphService.
func (s *graphServiceImpl) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, graphCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("Graph cache invalidation failed")
	}
}

// EdgeID names the edge from requirement to course as "e{requirement}-{course}".
// When either id contains a hyphen that form is ambiguous, so the requirement
// is length-prefixed instead: "e{len(requirement)}:{requirement}-{course}".
func EdgeID(requirement, course string) string {
	if !strings.Contains(requirement, "-") && !strings.Contains(course, "-") {
		return "e" + requirement + "-" + course
	}
	return fmt.Sprintf("e%d:%s-%s", len(requirement), requirement, course)
}

// ProjectGraph turns courses (ordered by id) and prerequisite edges (ordered
// by course then requirement) into positioned nodes and edges. Each node is
// placed at x = cycle*ColumnWidth, y = k*RowHeight, where k counts earlier
// courses of the same cycle. Edges point from requirement to course.
func ProjectGraph(courses []*models.Course, prerequisites []*models.Prerequisite) *dto.GraphResponse {
	byID := make(map[string]*models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	requirements := make(map[string][]string, len(courses))
	for _, p := range prerequisites {
		if _, ok := byID[p.RequirementID]; !ok {
			continue
		}
		requirements[p.CourseID] = append(requirements[p.CourseID], p.RequirementID)
	}

	graph := &dto.GraphResponse{
		Nodes: make([]dto.NodeResponse, 0, len(courses)),
		Edges: make([]dto.EdgeResponse, 0, len(prerequisites)),
	}
	rows := make(map[int]int)

	for _, c := range courses {
		refs := make([]models.CourseRef, 0, len(requirements[c.ID]))
		for _, reqID := range requirements[c.ID] {
			refs = append(refs, models.CourseRef{ID: reqID, Name: byID[reqID].Name})
			graph.Edges = append(graph.Edges, dto.EdgeResponse{
				ID:       EdgeID(reqID, c.ID),
				Source:   reqID,
				Target:   c.ID,
				Animated: true,
			})
		}

		graph.Nodes = append(graph.Nodes, dto.NodeResponse{
			ID: c.ID,
			Data: dto.NodeData{
				Label:         c.ID + "\n" + c.Name,
				Name:          c.Name,
				Credits:       c.Credits,
				Cycle:         c.Cycle,
				IsMandatory:   c.IsMandatory,
				Prerequisites: refs,
			},
			Position: dto.Position{X: c.Cycle * ColumnWidth, Y: rows[c.Cycle] * RowHeight},
			Type:     NodeType,
		})
		rows[c.Cycle]++
	}

	return graph
}
