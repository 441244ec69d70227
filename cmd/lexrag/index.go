package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <path|glob>...",
	Short: "Structure, chunk and index legal documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pipeline, cleanup, err := buildPipeline(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := pipeline.Index(context.Background(), args)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d document(s): %d chunk(s), %d with article numbers, %d oversized\n",
			stats.Documents, stats.Chunks, stats.WithArticles, stats.Oversized)
		if stats.Summary != "" {
			fmt.Println()
			fmt.Println("Summary:")
			fmt.Println(stats.Summary)
		}
		return nil
	},
}
