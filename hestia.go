package hestia

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soundprediction/hestia/pkg/config"
	"github.com/soundprediction/hestia/pkg/driver"
	"github.com/soundprediction/hestia/pkg/embedder"
	"github.com/soundprediction/hestia/pkg/ingest"
	"github.com/soundprediction/hestia/pkg/intent"
	"github.com/soundprediction/hestia/pkg/nlp"
	"github.com/soundprediction/hestia/pkg/retriever"
	"github.com/soundprediction/hestia/pkg/search"
	"github.com/soundprediction/hestia/pkg/telemetry"
	"github.com/soundprediction/hestia/pkg/types"
)

// Hestia is the main interface for the property retrieval service. It
// covers the online search path and the offline corpus jobs.
type Hestia interface {
	// Search answers a natural-language property query with a ranked
	// result list. Zero graphLimit or topK use configured defaults.
	Search(ctx context.Context, query string, graphLimit, topK int) ([]types.ScoredResult, error)

	// EnsureSchema creates graph constraints and indexes. Idempotent.
	EnsureSchema(ctx context.Context) error

	// Import loads cleaned property JSON documents from dir.
	Import(ctx context.Context, dir string) (ingest.Stats, error)

	// BackfillEmbeddings embeds properties missing a stored vector.
	BackfillEmbeddings(ctx context.Context) (ingest.BackfillStats, error)

	// Ping verifies graph store connectivity.
	Ping(ctx context.Context) error

	// Close closes all connections and cleans up resources.
	Close(ctx context.Context) error
}

// Client is the main implementation of the Hestia interface.
type Client struct {
	driver     *driver.Neo4jDriver
	llm        nlp.Client
	embedder   embedder.Client
	searcher   *search.Searcher
	importer   *ingest.Importer
	backfiller *ingest.Backfiller
	recorder   telemetry.Recorder
	config     *config.Config
	logger     *slog.Logger
}

// NewClient wires every pipeline component from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	graphDriver, err := driver.NewNeo4jDriver(
		cfg.Database.URI,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Database,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph driver: %w", err)
	}

	llmClient, err := newLLMClient(cfg, logger)
	if err != nil {
		graphDriver.Close(context.Background())
		return nil, err
	}

	embedClient, err := newEmbeddingClient(cfg)
	if err != nil {
		graphDriver.Close(context.Background())
		llmClient.Close()
		return nil, err
	}

	recorder, err := newRecorder(cfg, logger)
	if err != nil {
		graphDriver.Close(context.Background())
		llmClient.Close()
		embedClient.Close()
		return nil, err
	}

	extractor := intent.NewExtractor(llmClient, logger)
	retrv := retriever.New(graphDriver, logger)

	searcher := search.NewSearcher(extractor, retrv, embedClient, search.Options{
		GraphLimit:       cfg.Search.GraphLimit,
		TopK:             cfg.Search.TopK,
		IntentTimeout:    cfg.IntentTimeout(),
		EmbeddingTimeout: cfg.EmbeddingTimeout(),
		Logger:           logger,
		Recorder:         recorder,
	})

	return &Client{
		driver:     graphDriver,
		llm:        llmClient,
		embedder:   embedClient,
		searcher:   searcher,
		importer:   ingest.NewImporter(graphDriver, logger),
		backfiller: ingest.NewBackfiller(graphDriver, embedClient, logger, cfg.Embedding.BatchSize, cfg.Ingest.Workers),
		recorder:   recorder,
		config:     cfg,
		logger:     logger,
	}, nil
}

func newLLMClient(cfg *config.Config, logger *slog.Logger) (nlp.Client, error) {
	var temperature *float32
	if cfg.Intent.Temperature >= 0 {
		t := cfg.Intent.Temperature
		temperature = &t
	}
	var maxTokens *int
	if cfg.Intent.MaxTokens > 0 {
		m := cfg.Intent.MaxTokens
		maxTokens = &m
	}

	client, err := nlp.NewOpenAIClient(cfg.Intent.APIKey, nlp.Config{
		Model:       cfg.Intent.Model,
		BaseURL:     cfg.Intent.BaseURL,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	if !cfg.CircuitBreaker.Enabled {
		return client, nil
	}
	return nlp.NewCircuitBreakerClient(client, nlp.BreakerConfig{
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         time.Duration(cfg.CircuitBreaker.Interval) * time.Second,
		Timeout:          time.Duration(cfg.CircuitBreaker.Timeout) * time.Second,
		ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
	}, "intent-llm", logger), nil
}

func newEmbeddingClient(cfg *config.Config) (embedder.Client, error) {
	embedConfig := embedder.Config{
		Model:      cfg.Embedding.Model,
		BaseURL:    cfg.Embedding.BaseURL,
		Dimensions: cfg.Embedding.Dimensions,
		BatchSize:  cfg.Embedding.BatchSize,
	}

	switch cfg.Embedding.Provider {
	case "embedeverything":
		client, err := embedder.NewEmbedEverythingClient(embedConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding client: %w", err)
		}
		return client, nil
	default:
		return embedder.NewOpenAIEmbedder(cfg.Embedding.APIKey, embedConfig), nil
	}
}

func newRecorder(cfg *config.Config, logger *slog.Logger) (telemetry.Recorder, error) {
	if !cfg.Telemetry.Enabled {
		return telemetry.NopRecorder{}, nil
	}
	recorder, err := telemetry.NewParquetRecorder(cfg.Telemetry.ParquetPath, 0, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry recorder: %w", err)
	}
	return recorder, nil
}

// Search implements Hestia.
func (c *Client) Search(ctx context.Context, query string, graphLimit, topK int) ([]types.ScoredResult, error) {
	return c.searcher.Search(ctx, query, graphLimit, topK)
}

// EnsureSchema implements Hestia.
func (c *Client) EnsureSchema(ctx context.Context) error {
	return c.importer.EnsureSchema(ctx)
}

// Import implements Hestia.
func (c *Client) Import(ctx context.Context, dir string) (ingest.Stats, error) {
	return c.importer.ImportDir(ctx, dir)
}

// BackfillEmbeddings implements Hestia.
func (c *Client) BackfillEmbeddings(ctx context.Context) (ingest.BackfillStats, error) {
	return c.backfiller.Run(ctx)
}

// Ping implements Hestia.
func (c *Client) Ping(ctx context.Context) error {
	return c.driver.Ping(ctx)
}

// Close implements Hestia.
func (c *Client) Close(ctx context.Context) error {
	var firstErr error
	if err := c.recorder.Close(); err != nil {
		firstErr = err
	}
	if err := c.embedder.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.llm.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.driver.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
