package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks salescoach-ai/internal/service Retriever
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService salescoach-ai/internal/service ChatService

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/storage"
	"salescoach-ai/internal/vectorstore"
)

// MaxQuestionLength caps a question or search query in characters.
const MaxQuestionLength = 2000

// Retriever answers questions from indexed sections.
// This interface is defined from the service layer's perspective (consumer-first).
type Retriever interface {
	// SearchSections returns the sections most similar to query.
	SearchSections(ctx context.Context, query, scopeID string, limit int) ([]vectorstore.SearchResult, error)
	// Ask answers a question from the retrieved sections.
	Ask(ctx context.Context, req rag.AskRequest) (rag.AskResponse, error)
	// StreamAsk answers a question and streams the answer via callback.
	StreamAsk(ctx context.Context, req rag.AskRequest, callback func(chunk string) error) ([]rag.Reference, error)
}

// ChatRequest represents a grounded question in the domain layer.
type ChatRequest struct {
	Question string
	TopicID  string
	Limit    int
	Rerank   bool
	Debug    bool
}

// SearchRequest represents a section search.
type SearchRequest struct {
	Query   string
	TopicID string
	Limit   int
}

// ChatService answers questions about topic material.
type ChatService interface {
	// Ask answers a question and returns the sections it used.
	Ask(ctx context.Context, req ChatRequest) (rag.AskResponse, error)
	// StreamAsk answers a question, streaming the answer via callback.
	StreamAsk(ctx context.Context, req ChatRequest, callback func(chunk string) error) ([]rag.Reference, error)
	// Search returns the sections matching a query.
	Search(ctx context.Context, req SearchRequest) ([]vectorstore.SearchResult, error)
}

// chatService implements ChatService.
type chatService struct {
	retriever Retriever
	topics    storage.TopicStore
}

// NewChatService creates a new ChatService.
func NewChatService(retriever Retriever, topics storage.TopicStore) ChatService {
	return &chatService{
		retriever: retriever,
		topics:    topics,
	}
}

// Ask processes a chat request.
func (s *chatService) Ask(ctx context.Context, req ChatRequest) (rag.AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	askReq, err := s.askRequest(ctx, req)
	if err != nil {
		logger.WarnContext(ctx, "rejected chat request", "error", err)
		return rag.AskResponse{}, err
	}

	resp, err := s.retriever.Ask(ctx, askReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		return rag.AskResponse{}, WrapError(err, "failed to answer question")
	}

	logger.InfoContext(ctx, "chat request processed successfully",
		"question_length", len(askReq.Question),
		"references", len(resp.References),
		"abstained", resp.Abstained,
	)
	return resp, nil
}

// StreamAsk processes a chat request and streams the answer.
func (s *chatService) StreamAsk(ctx context.Context, req ChatRequest, callback func(chunk string) error) ([]rag.Reference, error) {
	logger := contextutil.LoggerFromContext(ctx)

	askReq, err := s.askRequest(ctx, req)
	if err != nil {
		logger.WarnContext(ctx, "rejected streaming chat request", "error", err)
		return nil, err
	}

	refs, err := s.retriever.StreamAsk(ctx, askReq, callback)
	if err != nil {
		logger.ErrorContext(ctx, "failed to stream answer", "error", err)
		return nil, WrapError(err, "failed to stream answer")
	}

	logger.InfoContext(ctx, "streaming chat request processed successfully",
		"question_length", len(askReq.Question),
		"references", len(refs),
	)
	return refs, nil
}

// Search finds the sections matching a query.
func (s *chatService) Search(ctx context.Context, req SearchRequest) ([]vectorstore.SearchResult, error) {
	query, err := validateQuestion("query", req.Query)
	if err != nil {
		return nil, err
	}
	if err := validateLimit(req.Limit); err != nil {
		return nil, err
	}
	if req.TopicID != "" {
		if _, err := s.topics.Get(ctx, req.TopicID); err != nil {
			return nil, notFound(err, "topic", "failed to load topic")
		}
	}

	results, err := s.retriever.SearchSections(ctx, query, req.TopicID, req.Limit)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to search sections", "error", err)
		return nil, WrapError(err, "failed to search sections")
	}
	return results, nil
}

// askRequest validates req and resolves the topic title.
func (s *chatService) askRequest(ctx context.Context, req ChatRequest) (rag.AskRequest, error) {
	question, err := validateQuestion("question", req.Question)
	if err != nil {
		return rag.AskRequest{}, err
	}
	if err := validateLimit(req.Limit); err != nil {
		return rag.AskRequest{}, err
	}

	askReq := rag.AskRequest{
		Question: question,
		TopicID:  req.TopicID,
		Limit:    req.Limit,
		Rerank:   req.Rerank,
		Debug:    req.Debug,
	}
	if req.TopicID != "" {
		topic, err := s.topics.Get(ctx, req.TopicID)
		if err != nil {
			return rag.AskRequest{}, notFound(err, "topic", "failed to load topic")
		}
		askReq.TopicTitle = topic.Title
	}
	return askReq, nil
}

func validateQuestion(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: field, Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(s) > MaxQuestionLength {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", MaxQuestionLength)}
	}
	return s, nil
}

func validateLimit(limit int) error {
	if limit < 0 || limit > rag.MaxLimit {
		return &ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", rag.MaxLimit)}
	}
	return nil
}
