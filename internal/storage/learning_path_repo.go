package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_learning_path_store.go -package=mocks salescoach-ai/internal/storage LearningPathStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LearningPathStore defines the interface for learning path and activity storage.
type LearningPathStore interface {
	// Create inserts a path and its activities in one transaction.
	// Missing IDs are assigned; activity PathIDs are set to the path's ID.
	Create(ctx context.Context, path *LearningPath, activities []ActivityRecord) error
	// Get returns a path by ID or ErrNotFound.
	Get(ctx context.Context, id string) (*LearningPath, error)
	// ListByTopic returns the paths of a topic, newest first.
	ListByTopic(ctx context.Context, topicID string) ([]LearningPath, error)
	// Delete removes a path and its activities.
	Delete(ctx context.Context, id string) error
	// ListActivities returns the activities of a path ordered by position.
	ListActivities(ctx context.Context, pathID string) ([]ActivityRecord, error)
	// GetActivity returns an activity by ID or ErrNotFound.
	GetActivity(ctx context.Context, id string) (*ActivityRecord, error)
	// UpdateActivity replaces the title, type and config of an activity.
	UpdateActivity(ctx context.Context, activity *ActivityRecord) error
}

// LearningPathRepo implements LearningPathStore on SQLite.
type LearningPathRepo struct {
	db *sqlx.DB
}

// NewLearningPathRepo creates a new LearningPathRepo.
func NewLearningPathRepo(db *sqlx.DB) *LearningPathRepo {
	return &LearningPathRepo{db: db}
}

// Create inserts a path and its activities.
func (r *LearningPathRepo) Create(ctx context.Context, path *LearningPath, activities []ActivityRecord) error {
	if path.ID == "" {
		path.ID = uuid.New().String()
	}
	path.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO learning_paths (id, topic_id, title, description, created_at)
		 VALUES (:id, :topic_id, :title, :description, :created_at)`, path); err != nil {
		return fmt.Errorf("failed to insert learning path: %w", err)
	}

	for i := range activities {
		a := &activities[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		a.PathID = path.ID
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO activities (id, path_id, position, title, type, config)
			 VALUES (:id, :path_id, :position, :title, :type, :config)`, a); err != nil {
			return fmt.Errorf("failed to insert activity %d: %w", a.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit learning path: %w", err)
	}
	return nil
}

// Get returns a path by ID.
func (r *LearningPathRepo) Get(ctx context.Context, id string) (*LearningPath, error) {
	var path LearningPath
	err := r.db.GetContext(ctx, &path,
		"SELECT id, topic_id, title, description, created_at FROM learning_paths WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query learning path: %w", err)
	}
	return &path, nil
}

// ListByTopic returns the paths of a topic.
func (r *LearningPathRepo) ListByTopic(ctx context.Context, topicID string) ([]LearningPath, error) {
	paths := []LearningPath{}
	err := r.db.SelectContext(ctx, &paths,
		`SELECT id, topic_id, title, description, created_at FROM learning_paths
		 WHERE topic_id = ? ORDER BY created_at DESC, id`, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning paths: %w", err)
	}
	return paths, nil
}

// Delete removes a path.
func (r *LearningPathRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM learning_paths WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete learning path: %w", err)
	}
	return requireAffected(res)
}

// ListActivities returns the activities of a path.
func (r *LearningPathRepo) ListActivities(ctx context.Context, pathID string) ([]ActivityRecord, error) {
	activities := []ActivityRecord{}
	err := r.db.SelectContext(ctx, &activities,
		"SELECT id, path_id, position, title, type, config FROM activities WHERE path_id = ? ORDER BY position", pathID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// GetActivity returns an activity by ID.
func (r *LearningPathRepo) GetActivity(ctx context.Context, id string) (*ActivityRecord, error) {
	var a ActivityRecord
	err := r.db.GetContext(ctx, &a,
		"SELECT id, path_id, position, title, type, config FROM activities WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	return &a, nil
}

// UpdateActivity replaces an activity's content. Position and path are kept.
func (r *LearningPathRepo) UpdateActivity(ctx context.Context, activity *ActivityRecord) error {
	res, err := r.db.NamedExecContext(ctx,
		"UPDATE activities SET title = :title, type = :type, config = :config WHERE id = :id", activity)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return requireAffected(res)
}
