package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_evaluation_store.go -package=mocks salescoach-ai/internal/storage EvaluationStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EvaluationStore defines the interface for role-play evaluation storage.
type EvaluationStore interface {
	// Create inserts an evaluation, assigning an ID when empty.
	Create(ctx context.Context, eval *Evaluation) error
	// Get returns an evaluation by ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Evaluation, error)
	// ListByTopic returns the evaluations of a topic, newest first.
	ListByTopic(ctx context.Context, topicID string) ([]Evaluation, error)
}

// EvaluationRepo implements EvaluationStore on SQLite.
type EvaluationRepo struct {
	db *sqlx.DB
}

// NewEvaluationRepo creates a new EvaluationRepo.
func NewEvaluationRepo(db *sqlx.DB) *EvaluationRepo {
	return &EvaluationRepo{db: db}
}

const evaluationColumns = "id, topic_id, scenario, transcript, readiness, level, result, created_at"

// Create inserts an evaluation.
func (r *EvaluationRepo) Create(ctx context.Context, eval *Evaluation) error {
	if eval.ID == "" {
		eval.ID = uuid.New().String()
	}
	eval.CreatedAt = time.Now().UTC()

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO evaluations (`+evaluationColumns+`)
		 VALUES (:id, :topic_id, :scenario, :transcript, :readiness, :level, :result, :created_at)`, eval)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return nil
}

// Get returns an evaluation by ID.
func (r *EvaluationRepo) Get(ctx context.Context, id string) (*Evaluation, error) {
	var eval Evaluation
	err := r.db.GetContext(ctx, &eval, "SELECT "+evaluationColumns+" FROM evaluations WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation: %w", err)
	}
	return &eval, nil
}

// ListByTopic returns the evaluations of a topic.
func (r *EvaluationRepo) ListByTopic(ctx context.Context, topicID string) ([]Evaluation, error) {
	evals := []Evaluation{}
	err := r.db.SelectContext(ctx, &evals,
		"SELECT "+evaluationColumns+" FROM evaluations WHERE topic_id = ? ORDER BY created_at DESC, id", topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evals, nil
}
