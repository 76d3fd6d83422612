package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks salescoach-ai/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Create inserts a document, assigning an ID when empty.
	Create(ctx context.Context, doc *Document) error
	// Get returns a document by ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)
	// ListByTopic returns the documents of a topic, newest first.
	ListByTopic(ctx context.Context, topicID string) ([]Document, error)
	// UpdateStatus records the outcome of an ingestion run.
	UpdateStatus(ctx context.Context, id string, status DocumentStatus, sectionCount int, errMsg string) error
	// Delete removes a document record.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo implements DocumentStore on SQLite.
type DocumentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sqlx.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = `id, topic_id, filename, content_type, blob_key, size, content_hash,
	status, section_count, error, created_at, updated_at`

// Create inserts a document.
func (r *DocumentRepo) Create(ctx context.Context, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Status == "" {
		doc.Status = DocumentPending
	}
	now := time.Now().UTC()
	doc.CreatedAt, doc.UpdatedAt = now, now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES (:id, :topic_id, :filename, :content_type, :blob_key, :size, :content_hash,
		 :status, :section_count, :error, :created_at, :updated_at)`, doc)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// Get returns a document by ID.
func (r *DocumentRepo) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := r.db.GetContext(ctx, &doc, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return &doc, nil
}

// ListByTopic returns the documents of a topic.
func (r *DocumentRepo) ListByTopic(ctx context.Context, topicID string) ([]Document, error) {
	docs := []Document{}
	err := r.db.SelectContext(ctx, &docs,
		"SELECT "+documentColumns+" FROM documents WHERE topic_id = ? ORDER BY created_at DESC, id", topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// UpdateStatus records the outcome of an ingestion run.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id string, status DocumentStatus, sectionCount int, errMsg string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = ?, section_count = ?, error = ?, updated_at = ? WHERE id = ?`,
		status, sectionCount, errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a document record.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return requireAffected(res)
}
