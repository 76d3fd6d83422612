package learning

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_searcher.go -package=mocks salescoach-ai/internal/learning SectionSearcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/llm"
	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/storage"
	"salescoach-ai/internal/vectorstore"
)

const (
	// SourceSectionLimit is the number of sections a path is generated from.
	SourceSectionLimit = 8
	// DefaultActivityCount is the number of activities requested by default.
	DefaultActivityCount = 6
	// MaxActivityCount caps the activities requested per path.
	MaxActivityCount = 15

	generationTemperature = 0.7
)

var (
	// ErrNoSourceMaterial is returned when a topic has no indexed sections.
	ErrNoSourceMaterial = errors.New("topic has no indexed material")
	// ErrMalformedPlan is returned when the model response is not a learning path.
	ErrMalformedPlan = errors.New("malformed learning path")
	// ErrNoValidActivities is returned when every generated activity was invalid.
	ErrNoValidActivities = errors.New("no valid activities generated")
)

// AllTypes lists every activity type in display order.
var AllTypes = []ActivityType{TypeSlide, TypeQuiz, TypeFlashcard, TypeFillBlanks, TypeMatching, TypeEmbed}

var tracer = otel.Tracer("salescoach-ai/internal/learning")

// SectionSearcher finds indexed sections of a topic.
type SectionSearcher interface {
	SearchSections(ctx context.Context, query, scopeID string, limit int) ([]vectorstore.SearchResult, error)
}

// GenerateOptions tunes a generated path.
type GenerateOptions struct {
	// ActivityCount is the number of activities to ask for. 0 means DefaultActivityCount.
	ActivityCount int
	// Types restricts the activity types. Empty allows every type except embed.
	Types []ActivityType
	// Focus narrows the path to an aspect of the topic.
	Focus string
}

// Plan is a generated learning path before it is stored.
type Plan struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Activities  []Activity `json:"activities"`
	// Dropped counts generated activities rejected by validation.
	Dropped int `json:"dropped"`
}

// Generator drafts learning paths from a topic's sections.
type Generator struct {
	search    SectionSearcher
	completer llm.Completer
	renderer  *Renderer
}

// NewGenerator creates a Generator.
func NewGenerator(search SectionSearcher, completer llm.Completer, renderer *Renderer) *Generator {
	return &Generator{search: search, completer: completer, renderer: renderer}
}

// Generate retrieves the topic's most relevant sections and asks the model
// for a learning path built only from them. Invalid activities are dropped;
// the call fails if none remain.
func (g *Generator) Generate(ctx context.Context, topic storage.Topic, opts GenerateOptions) (*Plan, error) {
	ctx, span := tracer.Start(ctx, "learning.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("topic.id", topic.ID))

	logger := contextutil.LoggerFromContext(ctx).With("topic_id", topic.ID)

	opts, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}

	query := strings.Join(strings.Fields(topic.Title+" "+topic.Description+" "+opts.Focus), " ")
	sections, err := g.search.SearchSections(ctx, query, topic.ID, SourceSectionLimit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to retrieve source material: %w", err)
	}
	if len(sections) == 0 {
		return nil, ErrNoSourceMaterial
	}

	raw, err := g.completer.Complete(ctx, generationMessages(topic, opts, sections), llm.ChatParams{
		Temperature: generationTemperature,
		JSON:        true,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", rag.ErrCompletion, err)
	}

	plan, err := parsePlan(ctx, raw, opts.Types)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if plan.Title == "" {
		plan.Title = topic.Title
	}
	if err := g.renderer.RenderSlides(plan.Activities); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("activities", len(plan.Activities)), attribute.Int("dropped", plan.Dropped))
	logger.InfoContext(ctx, "generated learning path",
		"sections", len(sections),
		"activities", len(plan.Activities),
		"dropped", plan.Dropped,
	)
	return plan, nil
}

func normalizeOptions(opts GenerateOptions) (GenerateOptions, error) {
	if opts.ActivityCount <= 0 {
		opts.ActivityCount = DefaultActivityCount
	}
	opts.ActivityCount = min(opts.ActivityCount, MaxActivityCount)

	if len(opts.Types) == 0 {
		opts.Types = slices.DeleteFunc(slices.Clone(AllTypes), func(t ActivityType) bool { return t == TypeEmbed })
	}
	for _, t := range opts.Types {
		if !slices.Contains(AllTypes, t) {
			return opts, fmt.Errorf("%w: %q", ErrUnknownType, t)
		}
	}
	opts.Focus = strings.TrimSpace(opts.Focus)
	return opts, nil
}

// parsePlan decodes the model response, keeping only valid activities of
// the allowed types. Positions are renumbered from 0 and IDs assigned.
func parsePlan(ctx context.Context, raw string, allowed []ActivityType) (*Plan, error) {
	var doc struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Activities  []json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPlan, err)
	}

	logger := contextutil.LoggerFromContext(ctx)
	plan := &Plan{
		Title:       strings.TrimSpace(doc.Title),
		Description: strings.TrimSpace(doc.Description),
	}
	for i, item := range doc.Activities {
		var a Activity
		err := json.Unmarshal(item, &a)
		if err == nil {
			err = a.Validate()
		}
		if err == nil && !slices.Contains(allowed, a.Type()) {
			err = fmt.Errorf("%w: type %q not requested", ErrInvalidActivity, a.Type())
		}
		if err != nil {
			logger.WarnContext(ctx, "dropping generated activity", "index", i, "error", err)
			plan.Dropped++
			continue
		}
		a.ID = uuid.New().String()
		a.Position = len(plan.Activities)
		plan.Activities = append(plan.Activities, a)
	}

	if len(plan.Activities) == 0 {
		return nil, fmt.Errorf("%w (%d dropped)", ErrNoValidActivities, plan.Dropped)
	}
	return plan, nil
}

// stripCodeFences removes a surrounding ``` or ```json fence.
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
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

const generationSystemPrompt = `You design learning paths for sales teams. Build every activity only from the sections provided.
Respond with a single JSON object:
{"title": string, "description": string, "activities": [{"title": string, "type": string, "config": object}]}
Config shapes by type:
- slide: {"markdown": string}
- quiz: {"questions": [{"question": string, "options": [string], "correct_index": number, "explanation": string}]}
- flashcard: {"cards": [{"front": string, "back": string}]}
- fill_blanks: {"text": string with each gap written as ___, "answers": [string, one per gap in order]}
- matching: {"pairs": [{"left": string, "right": string}]}
- embed: {"url": string, "caption": string}
Start with a slide that introduces the topic and end with a quiz.`

func generationMessages(topic storage.Topic, opts GenerateOptions, sections []vectorstore.SearchResult) []llm.Message {
	types := make([]string, len(opts.Types))
	for i, t := range opts.Types {
		types[i] = string(t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic.Title)
	if topic.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", topic.Description)
	}
	if opts.Focus != "" {
		fmt.Fprintf(&b, "Focus: %s\n", opts.Focus)
	}
	fmt.Fprintf(&b, "Create %d activities using only these types: %s.\n\nSections:\n", opts.ActivityCount, strings.Join(types, ", "))
	for _, s := range sections {
		text := s.ContentMarkdown
		if text == "" {
			text = s.Content
		}
		fmt.Fprintf(&b, "\nSECTION: %s\n", text)
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: generationSystemPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}
