package indexer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"salescoach-ai/internal/blobstore"
	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/extract"
	"salescoach-ai/internal/llm"
	"salescoach-ai/internal/storage"
	"salescoach-ai/internal/vectorstore"
)

// ErrIngestIncomplete is returned when some chunks of a document were not
// stored. The report still lists the outcome of every chunk.
var ErrIngestIncomplete = errors.New("ingestion incomplete")

// ErrReindexRunning is returned when a topic is already being reindexed.
var ErrReindexRunning = errors.New("reindex already running")

// ErrPipelineClosed is returned when a background job is started after Wait.
var ErrPipelineClosed = errors.New("pipeline is shutting down")

var tracer = otel.Tracer("salescoach-ai/internal/indexer")

// ChunkStatus is the outcome of storing one chunk.
type ChunkStatus string

// Chunk outcomes.
const (
	ChunkStored  ChunkStatus = "stored"
	ChunkFailed  ChunkStatus = "failed"
	ChunkSkipped ChunkStatus = "skipped"
)

// ChunkResult reports what happened to one chunk.
type ChunkResult struct {
	Index     int         `json:"index"`
	SectionID string      `json:"section_id,omitempty"`
	Status    ChunkStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
}

// IngestReport summarises an ingestion run.
type IngestReport struct {
	DocumentID   string          `json:"document_id"`
	Title        string          `json:"title"`
	Chunks       []ChunkResult   `json:"chunks"`
	Stored       int             `json:"stored"`
	Failed       int             `json:"failed"`
	Skipped      int             `json:"skipped"`
	Tokens       ChunkTokenStats `json:"tokens"`
	IndexVersion string          `json:"index_version"`
}

// Complete reports whether every chunk was stored.
func (r *IngestReport) Complete() bool {
	return r.Failed == 0 && r.Skipped == 0
}

// Options tunes a Pipeline.
type Options struct {
	MaxChunkLength int
	Overlap        int
	// Concurrency above 1 stores chunks through a bounded worker pool.
	// At 1 chunks are stored in order and the first failure skips the rest.
	Concurrency int
	// EmbedRateLimit caps embedding requests per second. 0 disables it.
	EmbedRateLimit float64
	EmbeddingModel string
	TokenCounter   TokenCounter
}

// Pipeline turns uploaded documents into embedded sections.
type Pipeline struct {
	extractor *extract.Extractor
	embedder  llm.Embedder
	index     vectorstore.SectionIndex
	topics    storage.TopicStore
	documents storage.DocumentStore
	blobs     blobstore.Store
	limiter   *rate.Limiter
	opts      Options

	docLocks   sync.Map // document ID → *sync.Mutex
	reindexing sync.Map // topic ID → struct{}

	jobsMu     sync.Mutex
	jobs       sync.WaitGroup
	closed     bool
	jobsCtx    context.Context
	cancelJobs context.CancelFunc
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	extractor *extract.Extractor,
	embedder llm.Embedder,
	index vectorstore.SectionIndex,
	topics storage.TopicStore,
	documents storage.DocumentStore,
	blobs blobstore.Store,
	opts Options,
) *Pipeline {
	if opts.MaxChunkLength <= 0 {
		opts.MaxChunkLength = DefaultMaxChunkLength
	}
	if opts.Overlap < 0 || opts.Overlap >= opts.MaxChunkLength {
		opts.Overlap = min(DefaultOverlap, opts.MaxChunkLength-1)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.TokenCounter == nil {
		opts.TokenCounter = EstimateCounter{}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.EmbedRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.EmbedRateLimit), 1)
	}

	jobsCtx, cancelJobs := context.WithCancel(context.Background())

	return &Pipeline{
		extractor:  extractor,
		embedder:   embedder,
		index:      index,
		topics:     topics,
		documents:  documents,
		blobs:      blobs,
		limiter:    limiter,
		opts:       opts,
		jobsCtx:    jobsCtx,
		cancelJobs: cancelJobs,
	}
}

// Upload stores a new document's bytes, records it and ingests it.
// The returned document reflects the final status. An ErrIngestIncomplete
// error comes with a non-nil document and report.
func (p *Pipeline) Upload(ctx context.Context, topicID, filename, contentType string, content []byte) (*storage.Document, *IngestReport, error) {
	logger := contextutil.LoggerFromContext(ctx)

	topic, err := p.topics.Get(ctx, topicID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load topic %s: %w", topicID, err)
	}
	kind, err := extract.DetectKind(filename, contentType)
	if err != nil {
		return nil, nil, err
	}
	// Unreadable files are rejected before anything is stored.
	text, err := p.extractor.Extract(ctx, filename, kind.ContentType(), content)
	if err != nil {
		return nil, nil, err
	}

	doc := &storage.Document{
		ID:          uuid.New().String(),
		TopicID:     topicID,
		Filename:    filename,
		ContentType: kind.ContentType(),
		Size:        int64(len(content)),
		ContentHash: strconv.FormatUint(xxhash.Sum64(content), 16),
		Status:      storage.DocumentProcessing,
	}
	doc.BlobKey = blobstore.DocumentKey(topicID, doc.ID, filename)

	if _, err := p.blobs.Upload(ctx, doc.BlobKey, content, doc.ContentType); err != nil {
		return nil, nil, fmt.Errorf("failed to store document: %w", err)
	}
	if err := p.documents.Create(ctx, doc); err != nil {
		if rmErr := p.blobs.Remove(ctx, []string{doc.BlobKey}); rmErr != nil {
			logger.WarnContext(ctx, "failed to remove orphaned blob", "key", doc.BlobKey, "error", rmErr)
		}
		return nil, nil, fmt.Errorf("failed to record document: %w", err)
	}

	report, err := p.ingest(ctx, doc, topic.Title, func(context.Context) (string, error) {
		return text, nil
	})
	return doc, report, err
}

// Ingest extracts, chunks, tags, embeds and stores a recorded document, then
// updates its status and section count.
func (p *Pipeline) Ingest(ctx context.Context, doc *storage.Document, topicTitle string, content []byte) (*IngestReport, error) {
	return p.ingest(ctx, doc, topicTitle, func(ctx context.Context) (string, error) {
		return p.extractor.Extract(ctx, doc.Filename, doc.ContentType, content)
	})
}

func (p *Pipeline) ingest(ctx context.Context, doc *storage.Document, topicTitle string, extractText func(context.Context) (string, error)) (*IngestReport, error) {
	ctx, span := tracer.Start(ctx, "indexer.Ingest")
	defer span.End()
	span.SetAttributes(attribute.String("document.id", doc.ID), attribute.String("topic.id", doc.TopicID))

	logger := contextutil.LoggerFromContext(ctx).With("document_id", doc.ID)
	start := time.Now()

	text, err := extractText(ctx)
	if err != nil {
		p.finish(ctx, doc, storage.DocumentFailed, 0, err.Error())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	chunks := SplitTextIntoChunks(text, p.opts.MaxChunkLength, p.opts.Overlap)
	sections := BuildSections(text, chunks)
	for i := range sections {
		sections[i].ID = uuid.New().String()
		sections[i].DocumentID = doc.ID
		sections[i].TopicID = doc.TopicID
		sections[i].TopicTitle = topicTitle
	}

	report := &IngestReport{
		DocumentID:   doc.ID,
		Title:        ExtractSectionTitle(text),
		Tokens:       TokenStatsFor(p.opts.TokenCounter, chunks),
		IndexVersion: IndexVersion(p.opts.EmbeddingModel, p.opts.MaxChunkLength, p.opts.Overlap),
	}
	if p.opts.Concurrency > 1 {
		report.Chunks = p.storeConcurrent(ctx, sections)
	} else {
		report.Chunks = p.storeSequential(ctx, sections)
	}
	for _, r := range report.Chunks {
		switch r.Status {
		case ChunkStored:
			report.Stored++
		case ChunkFailed:
			report.Failed++
		case ChunkSkipped:
			report.Skipped++
		}
	}

	span.SetAttributes(
		attribute.Int("chunks.total", len(sections)),
		attribute.Int("chunks.stored", report.Stored),
		attribute.Int("chunks.failed", report.Failed),
	)
	logger.InfoContext(ctx, "ingested document",
		"chunks", len(sections),
		"stored", report.Stored,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"tokens", report.Tokens.Total,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if !report.Complete() {
		msg := fmt.Sprintf("%d of %d chunks not stored", report.Failed+report.Skipped, len(sections))
		p.finish(ctx, doc, storage.DocumentFailed, report.Stored, msg)
		span.SetStatus(codes.Error, msg)
		return report, fmt.Errorf("%w: %s", ErrIngestIncomplete, msg)
	}
	p.finish(ctx, doc, storage.DocumentReady, report.Stored, "")
	return report, nil
}

// storeSequential stores sections in order. Sections before a failure stay
// stored; the ones after it are skipped.
func (p *Pipeline) storeSequential(ctx context.Context, sections []vectorstore.Section) []ChunkResult {
	results := make([]ChunkResult, len(sections))
	failed := false
	for i, section := range sections {
		if failed {
			results[i] = ChunkResult{Index: i, Status: ChunkSkipped}
			continue
		}
		results[i] = p.storeSection(ctx, i, section)
		failed = results[i].Status != ChunkStored
	}
	return results
}

// storeConcurrent stores sections through a bounded pool. A failed section
// does not stop the others; sections not started before ctx ends are skipped.
func (p *Pipeline) storeConcurrent(ctx context.Context, sections []vectorstore.Section) []ChunkResult {
	results := make([]ChunkResult, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)

	for i, section := range sections {
		g.Go(func() error {
			results[i] = p.storeSection(gctx, i, section)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pipeline) storeSection(ctx context.Context, i int, section vectorstore.Section) ChunkResult {
	if ctx.Err() != nil {
		return ChunkResult{Index: i, Status: ChunkSkipped, Error: ctx.Err().Error()}
	}
	fail := func(err error) ChunkResult {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to store chunk",
			"document_id", section.DocumentID, "chunk_index", i, "error", err)
		return ChunkResult{Index: i, Status: ChunkFailed, Error: err.Error()}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return ChunkResult{Index: i, Status: ChunkSkipped, Error: err.Error()}
	}
	embedding, err := p.embedder.Embed(ctx, section.Content)
	if err != nil {
		return fail(fmt.Errorf("embedding failed: %w", err))
	}
	if len(embedding) == 0 {
		return fail(fmt.Errorf("embedding failed: empty vector"))
	}
	section.Embedding = embedding

	if err := p.index.InsertSection(ctx, section); err != nil {
		return fail(fmt.Errorf("insert failed: %w", err))
	}
	return ChunkResult{Index: i, SectionID: section.ID, Status: ChunkStored}
}

// finish records the final document status. Failures are logged because
// the ingestion outcome is already decided.
func (p *Pipeline) finish(ctx context.Context, doc *storage.Document, status storage.DocumentStatus, sections int, msg string) {
	doc.Status, doc.SectionCount, doc.Error = status, sections, msg
	if err := p.documents.UpdateStatus(ctx, doc.ID, status, sections, msg); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to update document status",
			"document_id", doc.ID, "status", status, "error", err)
	}
}

// Delete removes a document's sections, blob and record.
func (p *Pipeline) Delete(ctx context.Context, documentID string) error {
	defer p.lockDocument(documentID)()

	doc, err := p.documents.Get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", documentID, err)
	}
	if err := p.index.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}
	if err := p.blobs.Remove(ctx, []string{doc.BlobKey}); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	if err := p.documents.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document record: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "deleted document", "document_id", documentID)
	return nil
}

// DeleteTopic removes a topic with all of its sections and blobs. Records
// scoped to the topic go with it by cascade.
func (p *Pipeline) DeleteTopic(ctx context.Context, topicID string) error {
	docs, err := p.documents.ListByTopic(ctx, topicID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if err := p.index.DeleteByTopic(ctx, topicID); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}
	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, d.BlobKey)
	}
	if len(keys) > 0 {
		if err := p.blobs.Remove(ctx, keys); err != nil {
			return fmt.Errorf("failed to delete blobs: %w", err)
		}
	}
	if err := p.topics.Delete(ctx, topicID); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return nil
}

// Reingest rebuilds the sections of a stored document from its blob.
// Reingests and deletes of the same document never overlap.
func (p *Pipeline) Reingest(ctx context.Context, documentID string) (*IngestReport, error) {
	defer p.lockDocument(documentID)()

	doc, err := p.documents.Get(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", documentID, err)
	}
	topic, err := p.topics.Get(ctx, doc.TopicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic %s: %w", doc.TopicID, err)
	}
	content, err := p.blobs.Download(ctx, doc.BlobKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load document content: %w", err)
	}
	if err := p.index.DeleteByDocument(ctx, documentID); err != nil {
		return nil, fmt.Errorf("failed to delete old sections: %w", err)
	}
	return p.Ingest(ctx, doc, topic.Title, content)
}

// lockDocument holds the document's lock until the returned func is called.
func (p *Pipeline) lockDocument(documentID string) (unlock func()) {
	v, _ := p.docLocks.LoadOrStore(documentID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// StartReindex reingests the given documents of a topic in the background.
// One reindex runs per topic at a time; a second one gets ErrReindexRunning.
// The job outlives ctx but keeps its values, such as the request logger.
func (p *Pipeline) StartReindex(ctx context.Context, topicID string, documentIDs []string) error {
	p.jobsMu.Lock()
	defer p.jobsMu.Unlock()
	if p.closed {
		return ErrPipelineClosed
	}
	if _, running := p.reindexing.LoadOrStore(topicID, struct{}{}); running {
		return fmt.Errorf("topic %s: %w", topicID, ErrReindexRunning)
	}
	p.jobs.Add(1)

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(p.jobsCtx, cancel)
	go func() {
		defer p.jobs.Done()
		defer p.reindexing.Delete(topicID)
		defer stop()
		defer cancel()

		logger := contextutil.LoggerFromContext(jobCtx)
		failed := 0
		for _, id := range documentIDs {
			if _, err := p.Reingest(jobCtx, id); err != nil {
				failed++
				logger.ErrorContext(jobCtx, "failed to reingest document", "document_id", id, "error", err)
			}
		}
		logger.InfoContext(jobCtx, "reindex completed", "topic_id", topicID, "documents", len(documentIDs), "failed", failed)
	}()
	return nil
}

// Wait stops accepting background jobs and blocks until the running ones
// finish. If ctx ends first the jobs are cancelled, and Wait returns
// ctx.Err() once they have stopped.
func (p *Pipeline) Wait(ctx context.Context) error {
	p.jobsMu.Lock()
	p.closed = true
	p.jobsMu.Unlock()

	done := make(chan struct{})
	go func() {
		p.jobs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.cancelJobs()
		<-done
		return ctx.Err()
	}
}
