package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_topic_remover.go -package=mocks salescoach-ai/internal/service TopicRemover
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_topic_service.go -package=mocks salescoach-ai/internal/service TopicService

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/storage"
)

const (
	// MaxTitleLength caps topic titles in characters.
	MaxTitleLength = 200
	// MaxDescriptionLength caps topic descriptions in characters.
	MaxDescriptionLength = 2000
)

// TopicRemover deletes a topic along with its indexed material.
type TopicRemover interface {
	DeleteTopic(ctx context.Context, topicID string) error
}

// TopicRequest holds the editable fields of a topic.
type TopicRequest struct {
	Title       string
	Description string
}

// TopicService manages topics.
type TopicService interface {
	List(ctx context.Context) ([]storage.Topic, error)
	Get(ctx context.Context, id string) (*storage.Topic, error)
	Create(ctx context.Context, req TopicRequest) (*storage.Topic, error)
	Update(ctx context.Context, id string, req TopicRequest) (*storage.Topic, error)
	// Delete removes the topic with its documents, sections, learning
	// paths and evaluations.
	Delete(ctx context.Context, id string) error
}

type topicService struct {
	topics  storage.TopicStore
	remover TopicRemover
}

// NewTopicService creates a new TopicService.
func NewTopicService(topics storage.TopicStore, remover TopicRemover) TopicService {
	return &topicService{topics: topics, remover: remover}
}

func (s *topicService) List(ctx context.Context) ([]storage.Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list topics")
	}
	return topics, nil
}

func (s *topicService) Get(ctx context.Context, id string) (*storage.Topic, error) {
	topic, err := s.topics.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "topic", "failed to load topic")
	}
	return topic, nil
}

func (s *topicService) Create(ctx context.Context, req TopicRequest) (*storage.Topic, error) {
	req, err := validateTopic(req)
	if err != nil {
		return nil, err
	}

	topic := &storage.Topic{Title: req.Title, Description: req.Description}
	if err := s.topics.Create(ctx, topic); err != nil {
		return nil, WrapError(err, "failed to create topic")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "created topic", "topic_id", topic.ID)
	return topic, nil
}

func (s *topicService) Update(ctx context.Context, id string, req TopicRequest) (*storage.Topic, error) {
	req, err := validateTopic(req)
	if err != nil {
		return nil, err
	}

	topic, err := s.topics.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "topic", "failed to load topic")
	}
	topic.Title = req.Title
	topic.Description = req.Description
	if err := s.topics.Update(ctx, topic); err != nil {
		return nil, notFound(err, "topic", "failed to update topic")
	}
	return topic, nil
}

func (s *topicService) Delete(ctx context.Context, id string) error {
	if _, err := s.topics.Get(ctx, id); err != nil {
		return notFound(err, "topic", "failed to load topic")
	}
	if err := s.remover.DeleteTopic(ctx, id); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to delete topic", "topic_id", id, "error", err)
		return notFound(err, "topic", "failed to delete topic")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "deleted topic", "topic_id", id)
	return nil
}

func validateTopic(req TopicRequest) (TopicRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		return req, &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(req.Title) > MaxTitleLength {
		return req, &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", MaxTitleLength)}
	}
	if utf8.RuneCountInString(req.Description) > MaxDescriptionLength {
		return req, &ValidationError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength)}
	}
	return req, nil
}
