package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_transcript_evaluator.go -package=mocks salescoach-ai/internal/service TranscriptEvaluator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_evaluation_service.go -package=mocks salescoach-ai/internal/service EvaluationService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/feedback"
	"salescoach-ai/internal/storage"
)

// MaxScenarioLength caps a role-play scenario in characters.
const MaxScenarioLength = 1000

// TranscriptEvaluator scores role-play transcripts.
type TranscriptEvaluator interface {
	Evaluate(ctx context.Context, req feedback.Request) (*feedback.Result, error)
}

// EvaluateRequest is a role-play transcript to score.
type EvaluateRequest struct {
	TopicID    string
	Scenario   string
	Transcript string
}

// Evaluation is a scored role-play.
type Evaluation struct {
	ID         string           `json:"id"`
	TopicID    string           `json:"topic_id"`
	Scenario   string           `json:"scenario"`
	Transcript string           `json:"transcript"`
	Readiness  int              `json:"readiness"`
	Level      feedback.Level   `json:"level"`
	Feedback   *feedback.Result `json:"feedback"`
	CreatedAt  time.Time        `json:"created_at"`
}

// EvaluationService scores and stores role-play transcripts.
type EvaluationService interface {
	List(ctx context.Context, topicID string) ([]Evaluation, error)
	Get(ctx context.Context, id string) (*Evaluation, error)
	Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error)
}

type evaluationService struct {
	evaluator   TranscriptEvaluator
	topics      storage.TopicStore
	evaluations storage.EvaluationStore
}

// NewEvaluationService creates a new EvaluationService.
func NewEvaluationService(evaluator TranscriptEvaluator, topics storage.TopicStore, evaluations storage.EvaluationStore) EvaluationService {
	return &evaluationService{
		evaluator:   evaluator,
		topics:      topics,
		evaluations: evaluations,
	}
}

func (s *evaluationService) List(ctx context.Context, topicID string) ([]Evaluation, error) {
	if _, err := s.topics.Get(ctx, topicID); err != nil {
		return nil, notFound(err, "topic", "failed to load topic")
	}
	records, err := s.evaluations.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, WrapError(err, "failed to list evaluations")
	}

	evals := make([]Evaluation, 0, len(records))
	for _, rec := range records {
		eval, err := fromRecord(rec)
		if err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "skipping unreadable evaluation",
				"evaluation_id", rec.ID, "error", err)
			continue
		}
		evals = append(evals, eval)
	}
	return evals, nil
}

func (s *evaluationService) Get(ctx context.Context, id string) (*Evaluation, error) {
	rec, err := s.evaluations.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "evaluation", "failed to load evaluation")
	}
	eval, err := fromRecord(*rec)
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (s *evaluationService) Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error) {
	logger := contextutil.LoggerFromContext(ctx)

	req.Scenario = strings.TrimSpace(req.Scenario)
	if utf8.RuneCountInString(req.Scenario) > MaxScenarioLength {
		return nil, &ValidationError{Field: "scenario", Message: fmt.Sprintf("must be at most %d characters", MaxScenarioLength)}
	}
	topic, err := s.topics.Get(ctx, req.TopicID)
	if err != nil {
		return nil, notFound(err, "topic", "failed to load topic")
	}

	result, err := s.evaluator.Evaluate(ctx, feedback.Request{
		TopicID:    topic.ID,
		TopicTitle: topic.Title,
		Scenario:   req.Scenario,
		Transcript: req.Transcript,
	})
	switch {
	case err == nil:
	case errors.Is(err, feedback.ErrEmptyTranscript), errors.Is(err, feedback.ErrTranscriptTooLong):
		return nil, &ValidationError{Field: "transcript", Message: err.Error()}
	case errors.Is(err, feedback.ErrMalformedFeedback):
		logger.ErrorContext(ctx, "model returned unusable feedback", "error", err)
		return nil, external(err, "failed to evaluate transcript")
	default:
		logger.ErrorContext(ctx, "failed to evaluate transcript", "error", err)
		return nil, WrapError(err, "failed to evaluate transcript")
	}

	doc, err := json.Marshal(result)
	if err != nil {
		return nil, WrapError(err, "failed to encode feedback")
	}
	rec := storage.Evaluation{
		TopicID:    topic.ID,
		Scenario:   req.Scenario,
		Transcript: strings.TrimSpace(req.Transcript),
		Readiness:  result.Readiness,
		Level:      string(result.Level),
		Result:     string(doc),
	}
	if err := s.evaluations.Create(ctx, &rec); err != nil {
		return nil, WrapError(err, "failed to store evaluation")
	}

	return &Evaluation{
		ID:         rec.ID,
		TopicID:    rec.TopicID,
		Scenario:   rec.Scenario,
		Transcript: rec.Transcript,
		Readiness:  result.Readiness,
		Level:      result.Level,
		Feedback:   result,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

func fromRecord(rec storage.Evaluation) (Evaluation, error) {
	var result feedback.Result
	if err := json.Unmarshal([]byte(rec.Result), &result); err != nil {
		return Evaluation{}, fmt.Errorf("failed to decode evaluation %s: %w", rec.ID, err)
	}
	return Evaluation{
		ID:         rec.ID,
		TopicID:    rec.TopicID,
		Scenario:   rec.Scenario,
		Transcript: rec.Transcript,
		Readiness:  rec.Readiness,
		Level:      feedback.Level(rec.Level),
		Feedback:   &result,
		CreatedAt:  rec.CreatedAt,
	}, nil
}
