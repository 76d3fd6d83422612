package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"salescoach-ai/internal/service"
)

func topicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List and create topics",
	}
	cmd.AddCommand(topicsListCmd())
	cmd.AddCommand(topicsCreateCmd())
	return cmd
}

func topicsListCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			topics, err := a.Topics.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				data, _ := json.MarshalIndent(topics, "", "  ")
				fmt.Fprintln(out, string(data))
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\tTITLE\n")
			for _, t := range topics {
				fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func topicsCreateCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a topic and print its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			topic, err := service.NewTopicService(a.Topics, a.Pipeline).Create(cmd.Context(), service.TopicRequest{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), topic.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "topic description")
	return cmd
}
