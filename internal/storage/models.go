package storage

import "time"

// DocumentStatus tracks a document through ingestion.
type DocumentStatus string

// Document statuses.
const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentReady      DocumentStatus = "ready"
	DocumentFailed     DocumentStatus = "failed"
)

// Topic is the scope that documents, sections, learning paths and
// evaluations belong to.
type Topic struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Document is an uploaded source file.
type Document struct {
	ID           string         `db:"id" json:"id"`
	TopicID      string         `db:"topic_id" json:"topic_id"`
	Filename     string         `db:"filename" json:"filename"`
	ContentType  string         `db:"content_type" json:"content_type"`
	BlobKey      string         `db:"blob_key" json:"blob_key"`
	Size         int64          `db:"size" json:"size"`
	ContentHash  string         `db:"content_hash" json:"content_hash"` // xxhash64 hex
	Status       DocumentStatus `db:"status" json:"status"`
	SectionCount int            `db:"section_count" json:"section_count"`
	Error        string         `db:"error" json:"error,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// LearningPath groups ordered activities generated for a topic.
type LearningPath struct {
	ID          string    `db:"id" json:"id"`
	TopicID     string    `db:"topic_id" json:"topic_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ActivityRecord is the stored form of a learning activity.
// Config holds the type-specific JSON document.
type ActivityRecord struct {
	ID       string `db:"id"`
	PathID   string `db:"path_id"`
	Position int    `db:"position"`
	Title    string `db:"title"`
	Type     string `db:"type"`
	Config   string `db:"config"`
}

// Evaluation is a scored role-play transcript.
// Result holds the full feedback JSON document.
type Evaluation struct {
	ID         string    `db:"id"`
	TopicID    string    `db:"topic_id"`
	Scenario   string    `db:"scenario"`
	Transcript string    `db:"transcript"`
	Readiness  int       `db:"readiness"`
	Level      string    `db:"level"`
	Result     string    `db:"result"`
	CreatedAt  time.Time `db:"created_at"`
}
