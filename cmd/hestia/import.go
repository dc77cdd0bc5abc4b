package hestia

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundprediction/hestia"
	"github.com/soundprediction/hestia/pkg/config"
	"github.com/soundprediction/hestia/pkg/logger"
)

var importCmd = &cobra.Command{
	Use:   "import [data-dir]",
	Short: "Import cleaned property documents into the graph",
	Long: `Import cleaned property JSON documents into the property graph.

Each *.json file in the data directory holds one property document.
Existing properties are skipped; malformed numeric fields become null
and are counted. Constraints and indexes are created before the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("data-dir", "", "Directory of property JSON files")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dataDir := cfg.Ingest.DataDir
	if flagDir, _ := cmd.Flags().GetString("data-dir"); flagDir != "" {
		dataDir = flagDir
	}
	if len(args) > 0 {
		dataDir = args[0]
	}
	if dataDir == "" {
		return fmt.Errorf("data directory is required (argument, --data-dir, or ingest.data_dir)")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	client, err := hestia.NewClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize hestia: %w", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	log.Info("ensuring schema")
	if err := client.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	stats, err := client.Import(ctx, dataDir)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println("===================================")
	fmt.Printf("Total scanned   : %d\n", stats.Scanned)
	fmt.Printf("Imported        : %d\n", stats.Imported)
	fmt.Printf("Skipped         : %d\n", stats.Skipped)
	fmt.Printf("Failed          : %d\n", stats.Failed)
	fmt.Printf("Discarded values: %d\n", stats.Discarded)
	fmt.Println("===================================")
	return nil
}
