package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"salescoach-ai/internal/extract"
	"salescoach-ai/internal/indexer"
)

type chunkEntry struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Words   int    `json:"words"`
	Tokens  int    `json:"tokens"`
	Content string `json:"content"`
}

func chunkCmd() *cobra.Command {
	var (
		maxLength  int
		overlap    int
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "chunk FILE",
		Short: "Show how a document would be split into sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text, err := extract.New().Extract(cmd.Context(), filepath.Base(args[0]), "", content)
			if err != nil {
				return err
			}

			chunks := indexer.SplitTextIntoChunks(text, maxLength, overlap)
			sections := indexer.BuildSections(text, chunks)
			counter := indexer.EstimateCounter{}

			entries := make([]chunkEntry, len(sections))
			for i, s := range sections {
				entries[i] = chunkEntry{
					Index:   s.Metadata.ChunkIndex,
					Title:   s.Metadata.Title,
					Words:   s.Metadata.WordCount,
					Tokens:  counter.CountTokens(s.ContentMarkdown),
					Content: s.ContentMarkdown,
				}
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			stats := indexer.TokenStatsFor(counter, chunks)
			fmt.Fprintf(out, "%d chunks, tokens min %d / mean %.1f / p95 %d / max %d\n\n",
				len(chunks), stats.Min, stats.Mean, stats.P95, stats.Max)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "INDEX\tWORDS\tTOKENS\tTITLE\tSTART\n")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", e.Index, e.Words, e.Tokens, e.Title, preview(e.Content, 48))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&maxLength, "max-length", indexer.DefaultMaxChunkLength, "maximum chunk length in characters")
	cmd.Flags().IntVar(&overlap, "overlap", indexer.DefaultOverlap, "characters shared by consecutive chunks")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// preview returns the first n runes of s on a single line.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
