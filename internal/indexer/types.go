package indexer

// Chunk is one overlapping window of a source document.
type Chunk struct {
	Index int    // Position among sibling chunks (starts at 0)
	Text  string // Trimmed chunk text
}

// WordCount returns the number of whitespace-delimited tokens in the chunk.
func (c Chunk) WordCount() int {
	return CountWords(c.Text)
}
