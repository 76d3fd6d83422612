package indexer

import "salescoach-ai/internal/vectorstore"

// BuildSections tags each chunk with metadata derived from the whole source.
// The title comes from the source's first heading, so every section of a
// document shares it. Content holds the plain text rendering and
// ContentMarkdown the chunk as written.
func BuildSections(source string, chunks []Chunk) []vectorstore.Section {
	title := ExtractSectionTitle(source)
	sections := make([]vectorstore.Section, len(chunks))
	for i, c := range chunks {
		sections[i] = vectorstore.Section{
			Content:         RemoveMarkdownFormatting(c.Text),
			ContentMarkdown: c.Text,
			Metadata: vectorstore.SectionMetadata{
				Title:       title,
				ChunkIndex:  c.Index,
				TotalChunks: len(chunks),
				WordCount:   c.WordCount(),
			},
		}
	}
	return sections
}
