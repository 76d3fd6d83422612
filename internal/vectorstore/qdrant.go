package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"salescoach-ai/internal/contextutil"
)

// Payload keys stored on every Qdrant point.
const (
	payloadTitle           = "title"
	payloadChunkIndex      = "chunk_index"
	payloadTotalChunks     = "total_chunks"
	payloadWordCount       = "word_count"
	payloadTopicID         = "topic_id"
	payloadTopicTitle      = "topic_title"
	payloadDocumentID      = "document_id"
	payloadContent         = "content"
	payloadContentMarkdown = "content_markdown"
)

var _ SectionIndex = (*QdrantStore)(nil)

// QdrantStore implements SectionIndex on a single Qdrant collection.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantStore creates a Qdrant-backed section index.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port is derived from the HTTP port.
func NewQdrantStore(urlStr, collection string) (*QdrantStore, error) {
	host, port, err := grpcEndpoint(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client:     client,
		collection: collection,
	}, nil
}

// grpcEndpoint derives the gRPC host and port from Qdrant's HTTP URL.
// The gRPC port is the HTTP port + 1, 6334 when no port is given.
func grpcEndpoint(urlStr string) (string, int, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			port = httpPort + 1
		}
	}
	return host, port, nil
}

// InsertSection upserts a section as a single point.
func (s *QdrantStore) InsertSection(ctx context.Context, section Section) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(section.Embedding) == 0 {
		return fmt.Errorf("section %s has no embedding", section.ID)
	}

	wait := true
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(section.ID),
			Vectors: qdrant.NewVectors(section.Embedding...),
			Payload: qdrant.NewValueMap(sectionPayload(section)),
		}},
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert section", "collection", s.collection, "section_id", section.ID, "error", err)
		return fmt.Errorf("failed to upsert section: %w", err)
	}

	logger.DebugContext(ctx, "upserted section", "collection", s.collection, "section_id", section.ID)
	return nil
}

// MatchSections runs a thresholded cosine query, optionally scoped to a topic.
func (s *QdrantStore) MatchSections(ctx context.Context, q MatchQuery) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	if len(q.Embedding) == 0 {
		return nil, fmt.Errorf("query embedding is empty")
	}

	limit := uint64(q.Limit)
	threshold := float32(q.Threshold)
	queryReq := &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(q.Embedding...),
		Limit:          &limit,
		ScoreThreshold: &threshold,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if q.TopicID != "" {
		queryReq.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch(payloadTopicID, q.TopicID)},
		}
	}

	scoredPoints, err := s.client.Query(ctx, queryReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to query sections", "collection", s.collection, "limit", q.Limit, "error", err)
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}

	results := make([]SearchResult, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		id := ""
		if point.Id != nil {
			id = point.Id.GetUuid()
		}
		results = append(results, resultFromPayload(id, float64(point.Score), convertPayloadToMap(point.Payload)))
	}

	logger.DebugContext(ctx, "section query completed", "collection", s.collection, "topic_id", q.TopicID, "results", len(results))
	return results, nil
}

// DeleteByDocument removes all points whose document_id matches.
func (s *QdrantStore) DeleteByDocument(ctx context.Context, documentID string) error {
	return s.deleteWhere(ctx, payloadDocumentID, documentID)
}

// DeleteByTopic removes all points whose topic_id matches.
func (s *QdrantStore) DeleteByTopic(ctx context.Context, topicID string) error {
	return s.deleteWhere(ctx, payloadTopicID, topicID)
}

func (s *QdrantStore) deleteWhere(ctx context.Context, field, value string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if value == "" {
		return fmt.Errorf("%s must not be empty", field)
	}

	wait := true
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch(field, value)},
		}),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete sections", "collection", s.collection, field, value, "error", err)
		return fmt.Errorf("failed to delete sections: %w", err)
	}

	logger.InfoContext(ctx, "deleted sections", "collection", s.collection, field, value)
	return nil
}

// Ping checks that Qdrant answers a health check.
func (s *QdrantStore) Ping(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}

// Close releases the gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}

// EnsureCollection ensures the collection exists with the specified vector size.
// An existing collection must already use that size.
func (s *QdrantStore) EnsureCollection(ctx context.Context, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", s.collection, "vector_size", vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	var actualSize uint64
	if config := info.Config; config != nil && config.Params != nil {
		if vectorsConfig := config.Params.GetVectorsConfig(); vectorsConfig != nil {
			if params := vectorsConfig.GetParams(); params != nil {
				actualSize = params.Size
			}
		}
	}
	if actualSize == 0 {
		return fmt.Errorf("could not determine collection vector size")
	}
	if int(actualSize) != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, actualSize)
	}

	logger.InfoContext(ctx, "collection validated", "collection", s.collection, "vector_size", vectorSize)
	return nil
}

func sectionPayload(section Section) map[string]any {
	return map[string]any{
		payloadTitle:           section.Metadata.Title,
		payloadChunkIndex:      int64(section.Metadata.ChunkIndex),
		payloadTotalChunks:     int64(section.Metadata.TotalChunks),
		payloadWordCount:       int64(section.Metadata.WordCount),
		payloadTopicID:         section.TopicID,
		payloadTopicTitle:      section.TopicTitle,
		payloadDocumentID:      section.DocumentID,
		payloadContent:         section.Content,
		payloadContentMarkdown: section.ContentMarkdown,
	}
}

func resultFromPayload(id string, score float64, meta map[string]any) SearchResult {
	topicID := payloadString(meta, payloadTopicID)
	return SearchResult{
		ID:              id,
		Content:         payloadString(meta, payloadContent),
		ContentMarkdown: payloadString(meta, payloadContentMarkdown),
		Metadata: SectionMetadata{
			Title:       payloadString(meta, payloadTitle),
			ChunkIndex:  payloadInt(meta, payloadChunkIndex),
			TotalChunks: payloadInt(meta, payloadTotalChunks),
			WordCount:   payloadInt(meta, payloadWordCount),
		},
		TopicID:    topicID,
		Similarity: score,
		Topics:     topicRef(topicID, payloadString(meta, payloadTopicTitle)),
	}
}

func payloadString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func payloadInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// convertPayloadToMap converts Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to Go any type.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
