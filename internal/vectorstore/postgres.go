package vectorstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"salescoach-ai/internal/contextutil"
)

//go:embed schema/postgres.sql
var postgresSchema string

var _ SectionIndex = (*PostgresStore)(nil)

const (
	postgresMaxOpenConns = 25
	postgresMaxIdleConns = 10
)

// PostgresStore implements SectionIndex on Postgres with pgvector, querying
// through the match_sections stored procedure.
type PostgresStore struct {
	db *sqlx.DB
}

// OpenPostgres connects to Postgres through the pgx driver.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(postgresMaxOpenConns)
	db.SetMaxIdleConns(postgresMaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "postgres connected",
		"max_open_conns", postgresMaxOpenConns, "max_idle_conns", postgresMaxIdleConns)
	return NewPostgresStore(db), nil
}

// NewPostgresStore wraps an existing connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the sections table and match_sections procedure
// for the given embedding size.
func (s *PostgresStore) EnsureSchema(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("dimensions must be greater than 0")
	}
	ddl := strings.ReplaceAll(postgresSchema, "{{dimensions}}", strconv.Itoa(dimensions))
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to apply sections schema: %w", err)
	}
	return nil
}

// InsertSection stores a section row.
func (s *PostgresStore) InsertSection(ctx context.Context, section Section) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(section.Embedding) == 0 {
		return fmt.Errorf("section %s has no embedding", section.ID)
	}
	meta, err := json.Marshal(section.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sections (id, document_id, topic_id, topic_title, content, content_markdown, metadata, embedding)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7::jsonb, $8::vector)`,
		section.ID, section.DocumentID, section.TopicID, section.TopicTitle,
		section.Content, section.ContentMarkdown, string(meta), vectorLiteral(section.Embedding))
	if err != nil {
		logger.ErrorContext(ctx, "failed to insert section", "section_id", section.ID, "error", err)
		return fmt.Errorf("failed to insert section: %w", err)
	}
	return nil
}

type matchRow struct {
	ID              string  `db:"id"`
	Content         string  `db:"content"`
	ContentMarkdown string  `db:"content_markdown"`
	Metadata        []byte  `db:"metadata"`
	TopicID         string  `db:"topic_id"`
	TopicTitle      string  `db:"topic_title"`
	Similarity      float64 `db:"similarity"`
}

// MatchSections calls match_sections.
func (s *PostgresStore) MatchSections(ctx context.Context, q MatchQuery) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	if len(q.Embedding) == 0 {
		return nil, fmt.Errorf("query embedding is empty")
	}

	var scope *string
	if q.TopicID != "" {
		scope = &q.TopicID
	}

	var rows []matchRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id::text AS id, content, content_markdown, metadata, topic_id, topic_title, similarity
		 FROM match_sections($1::vector, $2, $3, $4)`,
		vectorLiteral(q.Embedding), q.Threshold, q.Limit, scope)
	if err != nil {
		logger.ErrorContext(ctx, "match_sections failed", "topic_id", q.TopicID, "error", err)
		return nil, fmt.Errorf("match_sections failed: %w", err)
	}

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		var meta SectionMetadata
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &meta); err != nil {
				return nil, fmt.Errorf("failed to decode metadata for section %s: %w", row.ID, err)
			}
		}
		results = append(results, SearchResult{
			ID:              row.ID,
			Content:         row.Content,
			ContentMarkdown: row.ContentMarkdown,
			Metadata:        meta,
			TopicID:         row.TopicID,
			Similarity:      row.Similarity,
			Topics:          topicRef(row.TopicID, row.TopicTitle),
		})
	}
	return results, nil
}

// DeleteByDocument deletes a document's sections.
func (s *PostgresStore) DeleteByDocument(ctx context.Context, documentID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}
	return nil
}

// DeleteByTopic deletes a topic's sections.
func (s *PostgresStore) DeleteByTopic(ctx context.Context, topicID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE topic_id = $1`, topicID); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// vectorLiteral formats an embedding in pgvector's text form, e.g. "[0.1,0.2]".
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.Grow(len(v) * 10)
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
