package hestia

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundprediction/hestia"
	"github.com/soundprediction/hestia/pkg/config"
	"github.com/soundprediction/hestia/pkg/logger"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Backfill text embeddings for imported properties",
	Long: `Embed the text of every property missing a stored embedding and
write the vectors back to the graph. Texts are batched per provider
call; write-backs run concurrently with bounded workers.`,
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
	embedCmd.Flags().Int("batch-size", 0, "Texts per embedding request")
	embedCmd.Flags().Int("workers", 0, "Concurrent write-back workers")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if batch, _ := cmd.Flags().GetInt("batch-size"); batch > 0 {
		cfg.Embedding.BatchSize = batch
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Ingest.Workers = workers
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	client, err := hestia.NewClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize hestia: %w", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	stats, err := client.BackfillEmbeddings(ctx)
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}

	fmt.Println("===================================")
	fmt.Printf("Pending : %d\n", stats.Pending)
	fmt.Printf("Updated : %d\n", stats.Updated)
	fmt.Printf("Failed  : %d\n", stats.Failed)
	fmt.Println("===================================")
	return nil
}
