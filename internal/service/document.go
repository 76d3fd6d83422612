package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_ingester.go -package=mocks salescoach-ai/internal/service DocumentIngester
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_service.go -package=mocks salescoach-ai/internal/service DocumentService

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"salescoach-ai/internal/blobstore"
	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/extract"
	"salescoach-ai/internal/indexer"
	"salescoach-ai/internal/storage"
)

// MaxDocumentSize caps uploads in bytes.
const MaxDocumentSize = 20 << 20

// DocumentIngester stores documents and keeps their sections in sync.
type DocumentIngester interface {
	Upload(ctx context.Context, topicID, filename, contentType string, content []byte) (*storage.Document, *indexer.IngestReport, error)
	Reingest(ctx context.Context, documentID string) (*indexer.IngestReport, error)
	Delete(ctx context.Context, documentID string) error
	StartReindex(ctx context.Context, topicID string, documentIDs []string) error
}

// UploadRequest is a document upload.
type UploadRequest struct {
	TopicID     string
	Filename    string
	ContentType string
	Content     []byte
}

// UploadResult is the recorded document and its ingestion report.
type UploadResult struct {
	Document *storage.Document     `json:"document"`
	Report   *indexer.IngestReport `json:"report"`
}

// IngestError reports an ingestion that did not store every chunk. The
// document stays recorded with status failed; Report lists every chunk.
type IngestError struct {
	Document *storage.Document     `json:"document,omitempty"`
	Report   *indexer.IngestReport `json:"report"`
	Err      error                 `json:"-"`
}

func (e *IngestError) Error() string { return e.Err.Error() }

func (e *IngestError) Unwrap() error { return e.Err }

// DocumentService manages the source documents of topics.
type DocumentService interface {
	List(ctx context.Context, topicID string) ([]storage.Document, error)
	// Upload stores and ingests a document. If any chunk is not stored the
	// whole upload fails with an *IngestError.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	Download(ctx context.Context, id string) (*storage.Document, []byte, error)
	Reingest(ctx context.Context, id string) (*indexer.IngestReport, error)
	// Reindex starts reingesting every document of a topic in the background
	// and returns how many documents the job covers.
	Reindex(ctx context.Context, topicID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	ingester  DocumentIngester
	topics    storage.TopicStore
	documents storage.DocumentStore
	blobs     blobstore.Store
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(ingester DocumentIngester, topics storage.TopicStore, documents storage.DocumentStore, blobs blobstore.Store) DocumentService {
	return &documentService{
		ingester:  ingester,
		topics:    topics,
		documents: documents,
		blobs:     blobs,
	}
}

func (s *documentService) List(ctx context.Context, topicID string) ([]storage.Document, error) {
	if _, err := s.topics.Get(ctx, topicID); err != nil {
		return nil, notFound(err, "topic", "failed to load topic")
	}
	docs, err := s.documents.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, WrapError(err, "failed to list documents")
	}
	return docs, nil
}

func (s *documentService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	filename := path.Base(strings.ReplaceAll(strings.TrimSpace(req.Filename), `\`, "/"))
	if filename == "" || filename == "." || filename == "/" {
		return nil, &ValidationError{Field: "file", Message: "filename is required"}
	}
	if len(req.Content) == 0 {
		return nil, &ValidationError{Field: "file", Message: "cannot be empty"}
	}
	if len(req.Content) > MaxDocumentSize {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("must be at most %d bytes", MaxDocumentSize)}
	}

	doc, report, err := s.ingester.Upload(ctx, req.TopicID, filename, req.ContentType, req.Content)
	switch {
	case err == nil:
	case errors.Is(err, indexer.ErrIngestIncomplete):
		logger.WarnContext(ctx, "document partially ingested",
			"document_id", doc.ID, "stored", report.Stored, "failed", report.Failed, "skipped", report.Skipped)
		return nil, &IngestError{Document: doc, Report: report, Err: err}
	case errors.Is(err, extract.ErrUnsupportedType), errors.Is(err, extract.ErrNoText), errors.Is(err, extract.ErrUnreadable):
		return nil, &ValidationError{Field: "file", Message: err.Error()}
	default:
		logger.ErrorContext(ctx, "failed to upload document", "topic_id", req.TopicID, "error", err)
		return nil, notFound(err, "topic", "failed to upload document")
	}

	return &UploadResult{Document: doc, Report: report}, nil
}

func (s *documentService) Download(ctx context.Context, id string) (*storage.Document, []byte, error) {
	doc, err := s.documents.Get(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, "document", "failed to load document")
	}
	content, err := s.blobs.Download(ctx, doc.BlobKey)
	if err != nil {
		return nil, nil, notFound(err, "document content", "failed to download document")
	}
	return doc, content, nil
}

func (s *documentService) Reingest(ctx context.Context, id string) (*indexer.IngestReport, error) {
	report, err := s.ingester.Reingest(ctx, id)
	switch {
	case err == nil:
		return report, nil
	case errors.Is(err, indexer.ErrIngestIncomplete):
		return nil, &IngestError{Report: report, Err: err}
	default:
		return nil, notFound(err, "document", "failed to reingest document")
	}
}

func (s *documentService) Reindex(ctx context.Context, topicID string) (int, error) {
	docs, err := s.List(ctx, topicID)
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	if err := s.ingester.StartReindex(ctx, topicID, ids); err != nil {
		if errors.Is(err, indexer.ErrReindexRunning) {
			return 0, fmt.Errorf("reindex of topic %s: %w", topicID, ErrConflict)
		}
		return 0, WrapError(err, "failed to start reindex")
	}
	return len(ids), nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if err := s.ingester.Delete(ctx, id); err != nil {
		return notFound(err, "document", "failed to delete document")
	}
	return nil
}
