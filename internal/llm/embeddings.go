package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"salescoach-ai/internal/contextutil"
)

// Embed returns the embedding of a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates embeddings for the given texts in one request.
// Every returned vector is checked against EmbeddingDimensions when set.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	resp, err := contextutil.CallWithTimeout(ctx, c.timeout, func(ctx context.Context) (*openai.CreateEmbeddingResponse, error) {
		return c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
			Model: c.EmbeddingModel,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	result := make([][]float32, len(texts))
	for i, data := range resp.Data {
		idx := int(data.Index)
		if idx < 0 || idx >= len(texts) || result[idx] != nil {
			idx = i
		}
		if len(data.Embedding) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", idx)
		}
		if c.EmbeddingDimensions > 0 && len(data.Embedding) != c.EmbeddingDimensions {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", idx, len(data.Embedding), c.EmbeddingDimensions)
		}

		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[idx] = vec
	}

	return result, nil
}
