package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"salescoach-ai/internal/extract"
	"salescoach-ai/internal/indexer"
)

func ingestCmd() *cobra.Command {
	var topicID string
	cmd := &cobra.Command{
		Use:   "ingest --topic ID PATH...",
		Short: "Upload and index documents into a topic",
		Long:  "Upload and index documents into a topic. Directories are scanned for supported documents.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			paths, err := expandPaths(ctx, args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no supported documents found")
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range paths {
				content, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				doc, report, err := a.Pipeline.Upload(ctx, topicID, filepath.Base(path), "", content)
				switch {
				case err == nil:
					fmt.Fprintf(out, "%s\t%s\t%d sections\n", doc.ID, path, report.Stored)
				case errors.Is(err, indexer.ErrIngestIncomplete):
					failed++
					fmt.Fprintf(out, "%s\t%s\t%d sections, %d failed, %d skipped\n", doc.ID, path, report.Stored, report.Failed, report.Skipped)
				default:
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents did not ingest completely", failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&topicID, "topic", "", "topic ID to add the documents to")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

// expandPaths replaces directories with the supported documents under them.
func expandPaths(ctx context.Context, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := extract.Scan(ctx, arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			paths = append(paths, f.AbsPath)
		}
	}
	return paths, nil
}
