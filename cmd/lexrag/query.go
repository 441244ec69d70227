package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lexrag/internal/domain"
)

var queryTopK int

var queryCmd = &cobra.Command{
	Use:   "query <question>...",
	Short: "Ask a question against the indexed documents",
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

		ctx := context.Background()
		if cfg.VectorStore.Type == "" || cfg.VectorStore.Type == "memory" {
			// The in-memory index is empty in a fresh process; qdrant
			// and sqlite persist across runs.
			n, err := pipeline.ChunkCount(ctx)
			if err == nil && n == 0 {
				return fmt.Errorf("no indexed documents; run 'lexrag index' first, or configure a persistent vector store")
			}
		}

		question := strings.Join(args, " ")
		answer, err := pipeline.Query(ctx, question, queryTopK)
		if err != nil {
			if domain.IsRetrievalUnavailable(err) {
				return fmt.Errorf("retrieval unavailable: %w", err)
			}
			return err
		}
		printAnswer(pipeline, answer)
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
}

func printAnswer(pipeline interface{ ConfidenceBand(int) string }, a *domain.Answer) {
	if a.Text != "" {
		fmt.Println(a.Text)
		fmt.Println()
	}
	fmt.Printf("Güven skoru: %d/100 (%s)\n", a.Confidence, pipeline.ConfidenceBand(a.Confidence))
	if a.LowConfidence && a.Warning != "" {
		fmt.Println("⚠ " + a.Warning)
	}
	if len(a.Citations) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Kaynaklar:")
	for i, c := range a.Citations {
		label := c.Article
		if label == "" {
			label = c.SourceFile
		}
		fmt.Printf("  [%d] %s (sayfa %d, skor %.2f)\n", i+1, label, c.Page, c.Score)
		fmt.Printf("      %s\n", c.Preview)
	}
}
