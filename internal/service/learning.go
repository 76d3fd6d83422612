package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_path_generator.go -package=mocks salescoach-ai/internal/service PathGenerator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_learning_service.go -package=mocks salescoach-ai/internal/service LearningService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/learning"
	"salescoach-ai/internal/storage"
)

// PathGenerator drafts learning paths from a topic's material.
type PathGenerator interface {
	Generate(ctx context.Context, topic storage.Topic, opts learning.GenerateOptions) (*learning.Plan, error)
}

// GenerateRequest asks for a new learning path.
type GenerateRequest struct {
	TopicID       string
	ActivityCount int
	Types         []learning.ActivityType
	Focus         string
}

// LearningPath is a stored path with its ordered activities.
type LearningPath struct {
	storage.LearningPath
	Activities []learning.Activity `json:"activities"`
	// Dropped counts generated activities rejected as invalid.
	Dropped int `json:"dropped,omitempty"`
}

// LearningService manages generated learning paths.
type LearningService interface {
	List(ctx context.Context, topicID string) ([]storage.LearningPath, error)
	Generate(ctx context.Context, req GenerateRequest) (*LearningPath, error)
	Get(ctx context.Context, id string) (*LearningPath, error)
	Delete(ctx context.Context, id string) error
	// UpdateActivity replaces an activity's title and config. Its ID,
	// path and position are kept.
	UpdateActivity(ctx context.Context, id string, activity learning.Activity) (*learning.Activity, error)
}

type learningService struct {
	generator PathGenerator
	renderer  *learning.Renderer
	topics    storage.TopicStore
	paths     storage.LearningPathStore
}

// NewLearningService creates a new LearningService.
func NewLearningService(generator PathGenerator, renderer *learning.Renderer, topics storage.TopicStore, paths storage.LearningPathStore) LearningService {
	return &learningService{
		generator: generator,
		renderer:  renderer,
		topics:    topics,
		paths:     paths,
	}
}

func (s *learningService) List(ctx context.Context, topicID string) ([]storage.LearningPath, error) {
	if _, err := s.topics.Get(ctx, topicID); err != nil {
		return nil, notFound(err, "topic", "failed to load topic")
	}
	paths, err := s.paths.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, WrapError(err, "failed to list learning paths")
	}
	return paths, nil
}

func (s *learningService) Generate(ctx context.Context, req GenerateRequest) (*LearningPath, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.ActivityCount < 0 || req.ActivityCount > learning.MaxActivityCount {
		return nil, &ValidationError{
			Field:   "activity_count",
			Message: fmt.Sprintf("must be between 0 and %d", learning.MaxActivityCount),
		}
	}
	topic, err := s.topics.Get(ctx, req.TopicID)
	if err != nil {
		return nil, notFound(err, "topic", "failed to load topic")
	}

	plan, err := s.generator.Generate(ctx, *topic, learning.GenerateOptions{
		ActivityCount: req.ActivityCount,
		Types:         req.Types,
		Focus:         req.Focus,
	})
	switch {
	case err == nil:
	case errors.Is(err, learning.ErrUnknownType):
		return nil, &ValidationError{Field: "types", Message: err.Error()}
	case errors.Is(err, learning.ErrNoSourceMaterial):
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, learning.ErrMalformedPlan), errors.Is(err, learning.ErrNoValidActivities):
		logger.ErrorContext(ctx, "model returned an unusable learning path", "topic_id", topic.ID, "error", err)
		return nil, external(err, "failed to generate learning path")
	default:
		logger.ErrorContext(ctx, "failed to generate learning path", "topic_id", topic.ID, "error", err)
		return nil, WrapError(err, "failed to generate learning path")
	}

	path := storage.LearningPath{
		TopicID:     topic.ID,
		Title:       strings.TrimSpace(plan.Title),
		Description: strings.TrimSpace(plan.Description),
	}
	if path.Title == "" {
		path.Title = topic.Title
	}

	records := make([]storage.ActivityRecord, len(plan.Activities))
	for i, a := range plan.Activities {
		rec, err := a.ToRecord("")
		if err != nil {
			return nil, WrapError(err, "failed to encode activity")
		}
		records[i] = rec
	}
	if err := s.paths.Create(ctx, &path, records); err != nil {
		return nil, WrapError(err, "failed to store learning path")
	}

	logger.InfoContext(ctx, "generated learning path",
		"path_id", path.ID,
		"topic_id", topic.ID,
		"activities", len(plan.Activities),
		"dropped", plan.Dropped,
	)
	return &LearningPath{LearningPath: path, Activities: plan.Activities, Dropped: plan.Dropped}, nil
}

func (s *learningService) Get(ctx context.Context, id string) (*LearningPath, error) {
	path, err := s.paths.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "learning path", "failed to load learning path")
	}
	records, err := s.paths.ListActivities(ctx, id)
	if err != nil {
		return nil, WrapError(err, "failed to load activities")
	}

	activities := make([]learning.Activity, 0, len(records))
	for _, rec := range records {
		a, err := learning.FromRecord(rec)
		if err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "skipping unreadable activity",
				"activity_id", rec.ID, "error", err)
			continue
		}
		activities = append(activities, a)
	}
	return &LearningPath{LearningPath: *path, Activities: activities}, nil
}

func (s *learningService) Delete(ctx context.Context, id string) error {
	if err := s.paths.Delete(ctx, id); err != nil {
		return notFound(err, "learning path", "failed to delete learning path")
	}
	return nil
}

func (s *learningService) UpdateActivity(ctx context.Context, id string, activity learning.Activity) (*learning.Activity, error) {
	if activity.Config == nil {
		return nil, &ValidationError{Field: "config", Message: "is required"}
	}
	activity.Title = strings.TrimSpace(activity.Title)
	if err := activity.Validate(); err != nil {
		return nil, &ValidationError{Field: "activity", Message: err.Error()}
	}

	existing, err := s.paths.GetActivity(ctx, id)
	if err != nil {
		return nil, notFound(err, "activity", "failed to load activity")
	}
	activity.ID = existing.ID
	activity.Position = existing.Position

	updated := []learning.Activity{activity}
	if err := s.renderer.RenderSlides(updated); err != nil {
		return nil, WrapError(err, "failed to render slide")
	}
	activity = updated[0]

	rec, err := activity.ToRecord(existing.PathID)
	if err != nil {
		return nil, WrapError(err, "failed to encode activity")
	}
	if err := s.paths.UpdateActivity(ctx, &rec); err != nil {
		return nil, notFound(err, "activity", "failed to update activity")
	}
	return &activity, nil
}
