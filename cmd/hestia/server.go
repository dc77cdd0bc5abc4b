package hestia

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/hestia"
	"github.com/soundprediction/hestia/pkg/config"
	"github.com/soundprediction/hestia/pkg/logger"
	"github.com/soundprediction/hestia/pkg/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the hestia HTTP server",
	Long: `Start the hestia HTTP server providing REST access to property search.

The server exposes:
- POST /search for natural-language property queries
- Health, readiness and liveness probes

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "release", "Server mode (debug, release, test)")

	serverCmd.Flags().String("db-uri", "", "Neo4j URI")
	serverCmd.Flags().String("db-username", "", "Neo4j username")
	serverCmd.Flags().String("db-password", "", "Neo4j password")
	serverCmd.Flags().String("db-database", "", "Neo4j database name")

	serverCmd.Flags().String("intent-model", "", "Intent extraction model")
	serverCmd.Flags().String("intent-api-key", "", "Intent provider API key")
	serverCmd.Flags().String("intent-base-url", "", "Intent provider base URL")

	serverCmd.Flags().String("embedding-provider", "", "Embedding provider (openai, embedeverything)")
	serverCmd.Flags().String("embedding-model", "", "Embedding model")
	serverCmd.Flags().String("embedding-api-key", "", "Embedding provider API key")
	serverCmd.Flags().String("embedding-base-url", "", "Embedding provider base URL")

	serverCmd.Flags().Int("graph-limit", 0, "Candidate set size bound")
	serverCmd.Flags().Int("top-k", 0, "Result count bound")

	serverCmd.Flags().String("telemetry-parquet-path", "", "Directory for search event telemetry")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrideConfigWithFlags(cmd, cfg)

	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	client, err := hestia.NewClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize hestia: %w", err)
	}

	srv := server.New(cfg, client, client, log)
	srv.Setup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		client.Close(context.Background())
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			client.Close(shutdownCtx)
			return fmt.Errorf("server shutdown error: %w", err)
		}
		if err := client.Close(shutdownCtx); err != nil {
			return fmt.Errorf("client shutdown error: %w", err)
		}

		log.Info("server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	if cmd.Flags().Changed("db-uri") {
		cfg.Database.URI, _ = cmd.Flags().GetString("db-uri")
	}
	if cmd.Flags().Changed("db-username") {
		cfg.Database.Username, _ = cmd.Flags().GetString("db-username")
	}
	if cmd.Flags().Changed("db-password") {
		cfg.Database.Password, _ = cmd.Flags().GetString("db-password")
	}
	if cmd.Flags().Changed("db-database") {
		cfg.Database.Database, _ = cmd.Flags().GetString("db-database")
	}

	if cmd.Flags().Changed("intent-model") {
		cfg.Intent.Model, _ = cmd.Flags().GetString("intent-model")
	}
	if cmd.Flags().Changed("intent-api-key") {
		cfg.Intent.APIKey, _ = cmd.Flags().GetString("intent-api-key")
	}
	if cmd.Flags().Changed("intent-base-url") {
		cfg.Intent.BaseURL, _ = cmd.Flags().GetString("intent-base-url")
	}

	if cmd.Flags().Changed("embedding-provider") {
		cfg.Embedding.Provider, _ = cmd.Flags().GetString("embedding-provider")
	}
	if cmd.Flags().Changed("embedding-model") {
		cfg.Embedding.Model, _ = cmd.Flags().GetString("embedding-model")
	}
	if cmd.Flags().Changed("embedding-api-key") {
		cfg.Embedding.APIKey, _ = cmd.Flags().GetString("embedding-api-key")
	}
	if cmd.Flags().Changed("embedding-base-url") {
		cfg.Embedding.BaseURL, _ = cmd.Flags().GetString("embedding-base-url")
	}

	if cmd.Flags().Changed("graph-limit") {
		cfg.Search.GraphLimit, _ = cmd.Flags().GetInt("graph-limit")
	}
	if cmd.Flags().Changed("top-k") {
		cfg.Search.TopK, _ = cmd.Flags().GetInt("top-k")
	}

	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
		cfg.Telemetry.Enabled = true
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	if cfg.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}
	if cfg.Intent.APIKey == "" {
		return fmt.Errorf("intent provider API key is required (set OPENAI_API_KEY)")
	}
	return nil
}
