package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_topic_store.go -package=mocks salescoach-ai/internal/storage TopicStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// TopicStore defines the interface for topic storage operations.
type TopicStore interface {
	// Create inserts a topic, assigning an ID when empty.
	Create(ctx context.Context, topic *Topic) error
	// Get returns a topic by ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Topic, error)
	// List returns all topics, newest first.
	List(ctx context.Context) ([]Topic, error)
	// Update replaces the title and description of a topic.
	Update(ctx context.Context, topic *Topic) error
	// Delete removes a topic and, by cascade, everything scoped to it.
	Delete(ctx context.Context, id string) error
}

// TopicRepo implements TopicStore on SQLite.
type TopicRepo struct {
	db *sqlx.DB
}

// NewTopicRepo creates a new TopicRepo.
func NewTopicRepo(db *sqlx.DB) *TopicRepo {
	return &TopicRepo{db: db}
}

// Create inserts a topic.
func (r *TopicRepo) Create(ctx context.Context, topic *Topic) error {
	if topic.ID == "" {
		topic.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	topic.CreatedAt, topic.UpdatedAt = now, now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO topics (id, title, description, created_at, updated_at)
		 VALUES (:id, :title, :description, :created_at, :updated_at)`, topic)
	if err != nil {
		return fmt.Errorf("failed to insert topic: %w", err)
	}
	return nil
}

// Get returns a topic by ID.
func (r *TopicRepo) Get(ctx context.Context, id string) (*Topic, error) {
	var topic Topic
	err := r.db.GetContext(ctx, &topic,
		"SELECT id, title, description, created_at, updated_at FROM topics WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query topic: %w", err)
	}
	return &topic, nil
}

// List returns all topics, newest first.
func (r *TopicRepo) List(ctx context.Context) ([]Topic, error) {
	topics := []Topic{}
	err := r.db.SelectContext(ctx, &topics,
		"SELECT id, title, description, created_at, updated_at FROM topics ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// Update replaces the title and description of an existing topic.
func (r *TopicRepo) Update(ctx context.Context, topic *Topic) error {
	topic.UpdatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE topics SET title = :title, description = :description, updated_at = :updated_at
		 WHERE id = :id`, topic)
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a topic.
func (r *TopicRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM topics WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return requireAffected(res)
}

// requireAffected maps a zero-row write to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
