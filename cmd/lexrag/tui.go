package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lexrag/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [path|glob]...",
	Short: "Interactive question answering UI",
	Long: `Starts the interactive UI. When document paths are given they are
indexed first; otherwise a previously populated index is required.`,
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

		ctx := context.Background()
		summary := ""
		if len(args) > 0 {
			stats, err := pipeline.Index(ctx, args)
			if err != nil {
				return err
			}
			summary = fmt.Sprintf("%d belge, %d parça yüklendi", stats.Documents, stats.Chunks)
		} else {
			n, err := pipeline.ChunkCount(ctx)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("no indexed documents; pass paths to index or run 'lexrag index' first")
			}
			summary = fmt.Sprintf("%d parça hazır", n)
		}

		p := tea.NewProgram(tui.New(pipeline, summary), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}
