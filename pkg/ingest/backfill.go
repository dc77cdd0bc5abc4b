package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/soundprediction/hestia/pkg/driver"
	"github.com/soundprediction/hestia/pkg/embedder"
)

// pendingEmbeddingsCypher selects properties whose stored embedding is
// missing, with the concatenated text used to produce it.
const pendingEmbeddingsCypher = `
MATCH (p:Property)
WHERE p.text_embedding IS NULL
RETURN p.property_id AS property_id,
       coalesce(p.title,'') + '\n' +
       coalesce(p.description,'') + '\n' +
       coalesce(p.raw_description,'') AS text`

const setEmbeddingCypher = `
MATCH (p:Property {property_id: $property_id})
SET p.text_embedding = $embedding`

// BackfillStats summarizes one backfill run.
type BackfillStats struct {
	Pending int
	Updated int
	Failed  int
}

// Backfiller embeds the text of properties missing a stored embedding
// and writes the vectors back to the graph. Batches are embedded with
// one provider call each and written back concurrently, bounded by a
// worker semaphore.
type Backfiller struct {
	driver    driver.GraphDriver
	embedder  embedder.Client
	logger    *slog.Logger
	batchSize int
	workers   int
}

// NewBackfiller creates a backfiller. batchSize and workers fall back to
// 64 and 4 when not positive.
func NewBackfiller(d driver.GraphDriver, e embedder.Client, logger *slog.Logger, batchSize, workers int) *Backfiller {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = 64
	}
	if workers <= 0 {
		workers = 4
	}
	return &Backfiller{
		driver:    d,
		embedder:  e,
		logger:    logger,
		batchSize: batchSize,
		workers:   workers,
	}
}

type pendingProperty struct {
	propertyID string
	text       string
}

// Run embeds and writes back every property missing an embedding.
// Write-back failures are counted per item and do not stop the run; an
// embedding failure aborts, since every remaining batch would hit the
// same provider.
func (b *Backfiller) Run(ctx context.Context) (BackfillStats, error) {
	rows, err := b.driver.ExecuteRead(ctx, pendingEmbeddingsCypher, nil)
	if err != nil {
		return BackfillStats{}, fmt.Errorf("failed to list pending properties: %w", err)
	}

	pending := make([]pendingProperty, 0, len(rows))
	for _, row := range rows {
		id, _ := driver.AsString(row["property_id"])
		if id == "" {
			continue
		}
		text, _ := driver.AsString(row["text"])
		pending = append(pending, pendingProperty{propertyID: id, text: text})
	}

	stats := BackfillStats{Pending: len(pending)}
	if len(pending) == 0 {
		b.logger.Info("no properties need embeddings")
		return stats, nil
	}
	b.logger.Info("backfilling embeddings", "pending", len(pending), "batch_size", b.batchSize)

	for start := 0; start < len(pending); start += b.batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		end := start + b.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		texts := make([]string, len(batch))
		for i, item := range batch {
			texts[i] = item.text
		}

		embeddings, err := b.embedder.Embed(ctx, texts)
		if err != nil {
			return stats, fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(embeddings) != len(batch) {
			return stats, fmt.Errorf("embedding count mismatch: got %d for %d texts", len(embeddings), len(batch))
		}

		updated, failed := b.writeBatch(ctx, batch, embeddings)
		stats.Updated += updated
		stats.Failed += failed
	}

	b.logger.Info("backfill finished", "updated", stats.Updated, "failed", stats.Failed)
	return stats, nil
}

// writeBatch persists one batch of vectors with bounded concurrency.
func (b *Backfiller) writeBatch(ctx context.Context, batch []pendingProperty, embeddings [][]float32) (updated, failed int) {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, b.workers)
	)

	for i := range batch {
		wg.Add(1)
		sem <- struct{}{}
		go func(item pendingProperty, embedding []float32) {
			defer wg.Done()
			defer func() { <-sem }()

			err := b.driver.ExecuteWrite(ctx, setEmbeddingCypher, map[string]any{
				"property_id": item.propertyID,
				"embedding":   embedding,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				b.logger.Error("embedding write-back failed", "property_id", item.propertyID, "error", err)
				return
			}
			updated++
		}(batch[i], embeddings[i])
	}

	wg.Wait()
	return updated, failed
}
