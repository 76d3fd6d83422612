package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_index.go -package=mocks salescoach-ai/internal/vectorstore SectionIndex

import "context"

// SectionMetadata is attached to every stored section.
type SectionMetadata struct {
	Title       string `json:"title"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks"`
	WordCount   int    `json:"wordCount"`
}

// Section is one embedded chunk of a document.
type Section struct {
	ID              string
	DocumentID      string
	TopicID         string
	TopicTitle      string
	Content         string // plain text
	ContentMarkdown string // original Markdown
	Metadata        SectionMetadata
	Embedding       []float32
}

// TopicRef names the topic a search result belongs to.
type TopicRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SearchResult is a section returned by a similarity search.
type SearchResult struct {
	ID              string          `json:"id"`
	Content         string          `json:"content"`
	ContentMarkdown string          `json:"content_markdown"`
	Metadata        SectionMetadata `json:"metadata"`
	TopicID         string          `json:"topic_id"`
	Similarity      float64         `json:"similarity"`
	Topics          *TopicRef       `json:"topics,omitempty"`
}

// MatchQuery describes a nearest-neighbour lookup.
type MatchQuery struct {
	Embedding []float32
	Threshold float64 // minimum cosine similarity
	Limit     int
	TopicID   string // optional scope filter
}

// SectionIndex stores embedded sections and answers similarity queries.
type SectionIndex interface {
	// InsertSection stores one section with its embedding.
	InsertSection(ctx context.Context, section Section) error

	// MatchSections returns up to q.Limit sections whose similarity to
	// q.Embedding is above q.Threshold, best first. No match yields an empty slice.
	MatchSections(ctx context.Context, q MatchQuery) ([]SearchResult, error)

	// DeleteByDocument removes every section of a document.
	DeleteByDocument(ctx context.Context, documentID string) error

	// DeleteByTopic removes every section of a topic.
	DeleteByTopic(ctx context.Context, topicID string) error

	// Ping reports whether the index is reachable.
	Ping(ctx context.Context) error
}

func topicRef(id, title string) *TopicRef {
	if id == "" {
		return nil
	}
	return &TopicRef{ID: id, Title: title}
}
