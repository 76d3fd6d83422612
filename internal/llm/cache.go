package llm

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

var _ Embedder = (*CachedEmbedder)(nil)

// CachedEmbedder memoises embeddings of recently seen texts.
// Cached vectors are shared and must not be modified by callers.
type CachedEmbedder struct {
	next  Embedder
	cache *lru.Cache[uint64, []float32]
}

// NewCachedEmbedder wraps next with an LRU of the given size.
func NewCachedEmbedder(next Embedder, size int) (*CachedEmbedder, error) {
	cache, err := lru.New[uint64, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}
	return &CachedEmbedder{next: next, cache: cache}, nil
}

// Embed returns the cached vector for text or fetches it.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := xxhash.Sum64String(text)
	if vec, ok := e.cache.Get(key); ok {
		return vec, nil
	}
	vec, err := e.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, vec)
	return vec, nil
}

// EmbedTexts fetches only the texts missing from the cache, in one request.
func (e *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	keys := make([]uint64, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		keys[i] = xxhash.Sum64String(text)
		if vec, ok := e.cache.Get(keys[i]); ok {
			result[i] = vec
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return result, nil
	}

	vectors, err := e.next.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missing), len(vectors))
	}
	for j, vec := range vectors {
		i := missingIdx[j]
		result[i] = vec
		e.cache.Add(keys[i], vec)
	}
	return result, nil
}

// Len returns the number of cached vectors.
func (e *CachedEmbedder) Len() int {
	return e.cache.Len()
}
