package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/llm"
	"salescoach-ai/internal/vectorstore"
)

var (
	// ErrEmbedding is returned when the query cannot be embedded.
	ErrEmbedding = errors.New("embedding failed")
	// ErrSearch is returned when the section index cannot be queried.
	ErrSearch = errors.New("section search failed")
	// ErrCompletion is returned when the answer cannot be generated.
	ErrCompletion = errors.New("completion failed")
)

const (
	// MatchThreshold is the minimum cosine similarity of a returned section.
	MatchThreshold = 0.5
	// DefaultLimit is the number of sections retrieved when none is requested.
	DefaultLimit = 5
	// MaxLimit caps the number of sections per query.
	MaxLimit = 20
	// AnswerTemperature keeps grounded answers close to the sections.
	AnswerTemperature = 0.3
	// FallbackAnswer is returned without calling the model when no section matched.
	FallbackAnswer = "I don't have enough information to answer that question about this topic."
)

var tracer = otel.Tracer("salescoach-ai/internal/rag")

// Retriever finds sections relevant to a query and answers from them.
// It holds no per-request state and is safe for concurrent use.
type Retriever struct {
	embedder      llm.Embedder
	completer     llm.Completer
	index         vectorstore.SectionIndex
	searchTimeout time.Duration
}

// NewRetriever creates a Retriever. searchTimeout bounds each index query;
// zero uses contextutil.DefaultTimeout.
func NewRetriever(embedder llm.Embedder, completer llm.Completer, index vectorstore.SectionIndex, searchTimeout time.Duration) *Retriever {
	return &Retriever{
		embedder:      embedder,
		completer:     completer,
		index:         index,
		searchTimeout: searchTimeout,
	}
}

// SearchSections returns up to limit sections whose similarity to query is
// above MatchThreshold, best first. scopeID restricts the search to one topic
// when set. No match yields an empty slice and no error.
func (r *Retriever) SearchSections(ctx context.Context, query, scopeID string, limit int) ([]vectorstore.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "rag.SearchSections")
	defer span.End()

	logger := contextutil.LoggerFromContext(ctx)
	limit = clampLimit(limit)
	span.SetAttributes(attribute.String("topic.id", scopeID), attribute.Int("limit", limit))

	embedding, err := r.embedder.Embed(ctx, query)
	if err == nil && len(embedding) == 0 {
		err = errors.New("empty vector")
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	results, err := contextutil.CallWithTimeout(ctx, r.searchTimeout, func(ctx context.Context) ([]vectorstore.SearchResult, error) {
		return r.index.MatchSections(ctx, vectorstore.MatchQuery{
			Embedding: embedding,
			Threshold: MatchThreshold,
			Limit:     limit,
			TopicID:   scopeID,
		})
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search sections", "topic_id", scopeID, "error", err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}
	if results == nil {
		results = []vectorstore.SearchResult{}
	}

	span.SetAttributes(attribute.Int("results", len(results)))
	logger.DebugContext(ctx, "section search completed", "topic_id", scopeID, "results", len(results), "limit", limit)
	return results, nil
}

// GenerateAnswer answers query using only the given sections. With no
// sections it returns FallbackAnswer without calling the model.
func (r *Retriever) GenerateAnswer(ctx context.Context, query, scopeTitle string, results []vectorstore.SearchResult) (string, error) {
	if len(results) == 0 {
		return FallbackAnswer, nil
	}

	ctx, span := tracer.Start(ctx, "rag.GenerateAnswer")
	defer span.End()
	span.SetAttributes(attribute.Int("sections", len(results)))

	answer, err := r.completer.Complete(ctx, answerMessages(query, scopeTitle, results), llm.ChatParams{
		Temperature: AnswerTemperature,
	})
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to generate answer", "error", err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	return answer, nil
}

// StreamAnswer is GenerateAnswer delivered in pieces through callback. With
// no sections callback receives FallbackAnswer once. An error returned by
// callback stops the stream and is returned unchanged.
func (r *Retriever) StreamAnswer(ctx context.Context, query, scopeTitle string, results []vectorstore.SearchResult, callback func(chunk string) error) error {
	if len(results) == 0 {
		return callback(FallbackAnswer)
	}

	ctx, span := tracer.Start(ctx, "rag.StreamAnswer")
	defer span.End()

	var callbackErr error
	err := r.completer.StreamChat(ctx, answerMessages(query, scopeTitle, results), llm.ChatParams{
		Temperature: AnswerTemperature,
	}, func(chunk string) error {
		if err := callback(chunk); err != nil {
			callbackErr = err
			return err
		}
		return nil
	})
	if err == nil {
		return nil
	}
	span.SetStatus(codes.Error, err.Error())
	if callbackErr != nil {
		return callbackErr
	}
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to stream answer", "error", err)
	return fmt.Errorf("%w: %w", ErrCompletion, err)
}

const answerSystemPrompt = "You are a sales training assistant. Answer the learner's question using only " +
	"the sections provided. If the sections do not contain the answer, say that you don't know " +
	"rather than making something up. Keep answers concise and practical."

// answerMessages builds the grounded two-message prompt.
func answerMessages(query, scopeTitle string, results []vectorstore.SearchResult) []llm.Message {
	var b strings.Builder
	if scopeTitle != "" {
		fmt.Fprintf(&b, "Topic: %s\n\n", scopeTitle)
	}
	fmt.Fprintf(&b, "Question: %s\n\nSections:\n", query)
	for _, res := range results {
		fmt.Fprintf(&b, "\nSECTION: %s\n", res.Content)
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: answerSystemPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}
