package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/llm"
	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/vectorstore"
)

// MaxTranscriptLength caps a transcript in characters.
const MaxTranscriptLength = 20000

const (
	referenceSectionLimit = 5
	evaluationTemperature = 0.2
)

var (
	// ErrEmptyTranscript is returned for a blank transcript.
	ErrEmptyTranscript = errors.New("transcript is empty")
	// ErrTranscriptTooLong is returned when a transcript exceeds MaxTranscriptLength.
	ErrTranscriptTooLong = errors.New("transcript is too long")
	// ErrMalformedFeedback is returned when the model response cannot be read.
	ErrMalformedFeedback = errors.New("malformed feedback")
)

var tracer = otel.Tracer("salescoach-ai/internal/feedback")

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_searcher.go -package=mocks salescoach-ai/internal/feedback SectionSearcher

// SectionSearcher finds indexed sections of a topic.
type SectionSearcher interface {
	SearchSections(ctx context.Context, query, scopeID string, limit int) ([]vectorstore.SearchResult, error)
}

// Request is a transcript to evaluate.
type Request struct {
	TopicID    string
	TopicTitle string
	Scenario   string
	Transcript string
}

// Result is the feedback on one transcript.
type Result struct {
	Scores       []CriterionScore `json:"scores"`
	Strengths    []string         `json:"strengths"`
	Improvements []string         `json:"improvements"`
	Summary      string           `json:"summary"`
	Readiness    int              `json:"readiness"`
	Level        Level            `json:"level"`
}

// Evaluator scores transcripts with a model.
type Evaluator struct {
	completer llm.Completer
	search    SectionSearcher
}

// NewEvaluator creates an Evaluator. search may be nil; when set, the
// topic's sections are given to the model to judge product knowledge.
func NewEvaluator(completer llm.Completer, search SectionSearcher) *Evaluator {
	return &Evaluator{completer: completer, search: search}
}

// Evaluate scores the transcript on every rubric criterion and aggregates
// the readiness score. Criteria the model leaves out do not count.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "feedback.Evaluate")
	defer span.End()
	span.SetAttributes(attribute.String("topic.id", req.TopicID))

	logger := contextutil.LoggerFromContext(ctx)

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		return nil, ErrEmptyTranscript
	}
	if utf8.RuneCountInString(transcript) > MaxTranscriptLength {
		return nil, fmt.Errorf("%w: limit is %d characters", ErrTranscriptTooLong, MaxTranscriptLength)
	}

	var references []vectorstore.SearchResult
	if e.search != nil && req.TopicID != "" {
		query := strings.TrimSpace(req.TopicTitle + " " + req.Scenario)
		var err error
		references, err = e.search.SearchSections(ctx, query, req.TopicID, referenceSectionLimit)
		if err != nil {
			logger.WarnContext(ctx, "failed to load reference sections", "error", err)
			references = nil
		}
	}

	raw, err := e.completer.Complete(ctx, evaluationMessages(req, transcript, references), llm.ChatParams{
		Temperature: evaluationTemperature,
		JSON:        true,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", rag.ErrCompletion, err)
	}

	result, err := parseResult(ctx, raw)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("readiness", result.Readiness))
	logger.InfoContext(ctx, "evaluated role-play",
		"topic_id", req.TopicID,
		"criteria", len(result.Scores),
		"readiness", result.Readiness,
		"level", result.Level,
	)
	return result, nil
}

// parseResult decodes the model response, keeps one score per rubric
// criterion in rubric order and computes readiness.
func parseResult(ctx context.Context, raw string) (*Result, error) {
	var doc struct {
		Scores       []CriterionScore `json:"scores"`
		Strengths    []string         `json:"strengths"`
		Improvements []string         `json:"improvements"`
		Summary      string           `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFeedback, err)
	}

	byCriterion := make(map[Criterion]CriterionScore, len(doc.Scores))
	for _, s := range doc.Scores {
		s.Criterion = Criterion(strings.ToLower(strings.TrimSpace(string(s.Criterion))))
		if _, ok := Weights[s.Criterion]; !ok {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "ignoring unknown criterion", "criterion", s.Criterion)
			continue
		}
		if _, dup := byCriterion[s.Criterion]; dup {
			continue
		}
		s.Score = clampScore(s.Score)
		byCriterion[s.Criterion] = s
	}

	result := &Result{
		Scores:       make([]CriterionScore, 0, len(byCriterion)),
		Strengths:    nonEmpty(doc.Strengths),
		Improvements: nonEmpty(doc.Improvements),
		Summary:      strings.TrimSpace(doc.Summary),
	}
	for _, c := range Rubric {
		if s, ok := byCriterion[c]; ok {
			result.Scores = append(result.Scores, s)
		}
	}
	result.Readiness = Readiness(result.Scores)
	result.Level = LevelFor(result.Readiness)
	return result, nil
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func evaluationMessages(req Request, transcript string, references []vectorstore.SearchResult) []llm.Message {
	criteria := make([]string, len(Rubric))
	for i, c := range Rubric {
		criteria[i] = string(c)
	}

	system := "You are a sales coach reviewing a role-play between a sales rep and a simulated buyer. " +
		"Score the rep from 0 to 10 on each criterion: " + strings.Join(criteria, ", ") + ". " +
		`Respond with a single JSON object: {"scores": [{"criterion": string, "score": number, "comment": string}], ` +
		`"strengths": [string], "improvements": [string], "summary": string}. ` +
		"Base product knowledge only on the reference sections when they are given."

	var b strings.Builder
	if req.TopicTitle != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.TopicTitle)
	}
	if s := strings.TrimSpace(req.Scenario); s != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", s)
	}
	if len(references) > 0 {
		b.WriteString("\nReference sections:\n")
		for _, r := range references {
			fmt.Fprintf(&b, "\nSECTION: %s\n", r.Content)
		}
	}
	fmt.Fprintf(&b, "\nTranscript:\n%s\n", transcript)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: b.String()},
	}
}
