package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/service"
)

func askCmd() *cobra.Command {
	var (
		topicID string
		limit   int
		rerank  bool
		stream  bool
	)
	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Answer a question from indexed material",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			chat := service.NewChatService(a.Retriever, a.Topics)
			req := service.ChatRequest{
				Question: strings.Join(args, " "),
				TopicID:  topicID,
				Limit:    limit,
				Rerank:   rerank,
			}
			out := cmd.OutOrStdout()

			var refs []rag.Reference
			if stream {
				refs, err = chat.StreamAsk(ctx, req, func(chunk string) error {
					_, err := fmt.Fprint(out, chunk)
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
			} else {
				resp, err := chat.Ask(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, resp.Answer)
				refs = resp.References
			}
			printReferences(cmd, refs)
			return nil
		},
	}
	cmd.Flags().StringVar(&topicID, "topic", "", "restrict retrieval to a topic ID")
	cmd.Flags().IntVar(&limit, "limit", rag.DefaultLimit, "number of sections to retrieve")
	cmd.Flags().BoolVar(&rerank, "rerank", false, "rerank sections with a lexical score")
	cmd.Flags().BoolVar(&stream, "stream", false, "print the answer as it is generated")
	return cmd
}

func printReferences(cmd *cobra.Command, refs []rag.Reference) {
	if len(refs) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nSources:")
	for i, r := range refs {
		fmt.Fprintf(out, "  [%d] %s (section %d, similarity %.2f)\n", i+1, r.Title, r.ChunkIndex, r.Similarity)
	}
}
