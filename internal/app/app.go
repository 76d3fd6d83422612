// Package app wires configuration into the running services.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"

	"github.com/jmoiron/sqlx"

	"salescoach-ai/internal/blobstore"
	"salescoach-ai/internal/config"
	"salescoach-ai/internal/extract"
	"salescoach-ai/internal/feedback"
	"salescoach-ai/internal/http"
	"salescoach-ai/internal/indexer"
	"salescoach-ai/internal/learning"
	"salescoach-ai/internal/llm"
	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/service"
	"salescoach-ai/internal/storage"
	"salescoach-ai/internal/vectorstore"
)

// App holds the constructed components.
type App struct {
	Config    *config.Config
	DB        *sqlx.DB
	Index     vectorstore.SectionIndex
	Blobs     blobstore.Store
	LLM       *llm.Client
	Pipeline  *indexer.Pipeline
	Retriever *rag.Retriever

	Topics      storage.TopicStore
	Documents   storage.DocumentStore
	Paths       storage.LearningPathStore
	Evaluations storage.EvaluationStore

	closers []func() error
}

// New opens the stores and builds the pipeline and retriever.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	if err := storage.Migrate(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	a.Topics = storage.NewTopicRepo(db)
	a.Documents = storage.NewDocumentRepo(db)
	a.Paths = storage.NewLearningPathRepo(db)
	a.Evaluations = storage.NewEvaluationRepo(db)

	if a.Index, err = a.openIndex(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	if a.Blobs, err = openBlobs(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.LLM = llm.NewClient(llm.ClientConfig{
		BaseURL:             cfg.LLMBaseURL,
		APIKey:              cfg.LLMAPIKey,
		Model:               cfg.LLMModelName,
		EmbeddingModel:      cfg.EmbeddingModelName,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
		TTSModel:            cfg.TTSModelName,
		TTSVoice:            cfg.TTSVoice,
		Timeout:             cfg.LLMTimeout,
	})
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName, "embedding_model", cfg.EmbeddingModelName)

	var embedder llm.Embedder = a.LLM
	if cfg.EmbedCacheSize > 0 {
		cached, err := llm.NewCachedEmbedder(a.LLM, cfg.EmbedCacheSize)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		embedder = cached
	}

	a.Pipeline = indexer.NewPipeline(extract.New(), embedder, a.Index, a.Topics, a.Documents, a.Blobs, indexer.Options{
		MaxChunkLength: cfg.ChunkMaxLength,
		Overlap:        cfg.ChunkOverlap,
		Concurrency:    cfg.IngestConcurrency,
		EmbedRateLimit: cfg.EmbedRateLimit,
		EmbeddingModel: cfg.EmbeddingModelName,
		TokenCounter:   tokenCounter(),
	})
	a.Retriever = rag.NewRetriever(embedder, a.LLM, a.Index, 0)

	return a, nil
}

func (a *App) openIndex(ctx context.Context) (vectorstore.SectionIndex, error) {
	cfg := a.Config
	switch cfg.VectorBackend {
	case config.VectorBackendPostgres:
		store, err := vectorstore.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureSchema(ctx, cfg.EmbeddingDimensions); err != nil {
			return nil, err
		}
		slog.Info("Postgres section index ready", "dimensions", cfg.EmbeddingDimensions)
		return store, nil
	default:
		store, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureCollection(ctx, cfg.EmbeddingDimensions); err != nil {
			return nil, fmt.Errorf("failed to ensure Qdrant collection: %w", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingDimensions)
		return store, nil
	}
}

func openBlobs(ctx context.Context, cfg *config.Config) (blobstore.Store, error) {
	if cfg.BlobBackend == config.BlobBackendS3 {
		store, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 store: %w", err)
		}
		slog.Info("Object store ready", "backend", "s3", "bucket", cfg.S3Bucket)
		return store, nil
	}
	store, err := blobstore.NewFSStore(cfg.BlobDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}
	slog.Info("Object store ready", "backend", "fs", "dir", cfg.BlobDir)
	return store, nil
}

// tokenCounter prefers the BPE encoding and falls back to the rune
// estimate when it cannot be loaded.
func tokenCounter() indexer.TokenCounter {
	counter, err := indexer.NewTiktokenCounter(indexer.DefaultTokenEncoding)
	if err != nil {
		slog.Warn("Token encoding unavailable, estimating tokens", "error", err)
		return indexer.EstimateCounter{}
	}
	return counter
}

// Router builds the HTTP handler over the services.
func (a *App) Router() nethttp.Handler {
	renderer := learning.NewRenderer()
	return http.NewRouter(&http.Deps{
		TopicService:      service.NewTopicService(a.Topics, a.Pipeline),
		DocumentService:   service.NewDocumentService(a.Pipeline, a.Topics, a.Documents, a.Blobs),
		ChatService:       service.NewChatService(a.Retriever, a.Topics),
		LearningService:   service.NewLearningService(learning.NewGenerator(a.Retriever, a.LLM, renderer), renderer, a.Topics, a.Paths),
		EvaluationService: service.NewEvaluationService(feedback.NewEvaluator(a.LLM, a.Retriever), a.Topics, a.Evaluations),
		SpeechService:     service.NewSpeechService(a.LLM),
		Index:             a.Index,
		Blobs:             a.Blobs,
	})
}

// Shutdown waits for background ingestion jobs, cancelling them when ctx
// ends, then closes every connection.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Pipeline != nil {
		if err := a.Pipeline.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("background jobs: %w", err))
		}
	}
	errs = append(errs, a.Close())
	return errors.Join(errs...)
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
