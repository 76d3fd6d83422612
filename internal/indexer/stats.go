package indexer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/pkoukk/tiktoken-go"
)

const (
	// ChunkerVersion is the version identifier for the chunker implementation.
	// Update this when chunking logic changes significantly.
	ChunkerVersion = "v2.0"
	// TokensPerRune is an approximation for token counting (4 chars per token).
	TokensPerRune = 4.0
	// DefaultTokenEncoding matches the OpenAI embedding and chat models.
	DefaultTokenEncoding = "cl100k_base"
)

// TokenCounter counts model tokens in text.
type TokenCounter interface {
	CountTokens(text string) int
}

// TiktokenCounter counts tokens with a BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the named encoding. Loading fetches the BPE ranks
// on first use (cached under TIKTOKEN_CACHE_DIR), so it can fail offline.
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load token encoding %s: %w", encoding, err)
	}
	return &TiktokenCounter{enc: enc}, nil
}

// CountTokens returns the number of tokens in text.
func (c *TiktokenCounter) CountTokens(text string) int {
	return len(c.enc.EncodeOrdinary(text))
}

// EstimateCounter approximates tokens from the rune count.
type EstimateCounter struct{}

// CountTokens returns max(1, round(runes/4)) for non-empty text.
func (EstimateCounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	n := int(math.Round(float64(utf8.RuneCountInString(text)) / TokensPerRune))
	return max(n, 1)
}

// ChunkTokenStats contains statistics about token counts in chunks.
type ChunkTokenStats struct {
	// Min is the minimum token count across all chunks.
	Min int `json:"min"`
	// Max is the maximum token count across all chunks.
	Max int `json:"max"`
	// Mean is the mean token count across all chunks.
	Mean float64 `json:"mean"`
	// P95 is the 95th percentile token count.
	P95 int `json:"p95"`
	// Total is the sum of all token counts.
	Total int `json:"total"`
}

// TokenStatsFor counts the tokens of every chunk.
func TokenStatsFor(counter TokenCounter, chunks []Chunk) ChunkTokenStats {
	counts := make([]int, len(chunks))
	for i, c := range chunks {
		counts[i] = counter.CountTokens(c.Text)
	}
	return computeTokenStats(counts)
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) ChunkTokenStats {
	if len(tokenCounts) == 0 {
		return ChunkTokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range tokenCounts {
		sum += count
	}
	mean := float64(sum) / float64(len(tokenCounts))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	p95Index = max(0, min(p95Index, len(sorted)-1))

	return ChunkTokenStats{
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Mean:  math.Round(mean*100) / 100,
		P95:   sorted[p95Index],
		Total: sum,
	}
}

// IndexVersion identifies an index build: chunker version, embedding model
// and chunking parameters. Sections built under different versions should
// not be mixed in one index.
func IndexVersion(embeddingModel string, maxChunkLength, overlap int) string {
	input := ChunkerVersion + "|" + embeddingModel +
		"|max=" + strconv.Itoa(maxChunkLength) + "|overlap=" + strconv.Itoa(overlap)
	return strconv.FormatUint(xxhash.Sum64String(input), 16)
}
