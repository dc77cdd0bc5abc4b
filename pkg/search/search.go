package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soundprediction/hestia/pkg/telemetry"
	"github.com/soundprediction/hestia/pkg/types"
)

const (
	// DefaultGraphLimit bounds the candidate set from the graph filter.
	DefaultGraphLimit = 200
	// DefaultTopK bounds the final ranked list.
	DefaultTopK = 10
)

// IntentExtractor turns a natural-language query into a structured filter.
type IntentExtractor interface {
	Extract(ctx context.Context, query string) (*types.QueryFilter, error)
}

// CandidateFilter returns properties matching the hard constraints.
type CandidateFilter interface {
	FilterCandidates(ctx context.Context, hc types.HardConstraints, limit int) ([]types.PropertyCandidate, error)
}

// QueryEmbedder embeds the soft-requirement query text.
type QueryEmbedder interface {
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
}

// Options tunes pipeline defaults.
type Options struct {
	GraphLimit int
	TopK       int
	// IntentTimeout and EmbeddingTimeout bound the respective provider
	// calls; zero means no per-stage bound beyond the request context.
	IntentTimeout    time.Duration
	EmbeddingTimeout time.Duration
	Logger           *slog.Logger
	Recorder         telemetry.Recorder
}

// Searcher runs the full hybrid retrieval pipeline. It is stateless
// across invocations and safe for concurrent use as long as its stage
// dependencies are.
type Searcher struct {
	extractor IntentExtractor
	filter    CandidateFilter
	embedder  QueryEmbedder
	opts      Options
}

// NewSearcher wires the three pipeline stages together.
func NewSearcher(extractor IntentExtractor, filter CandidateFilter, embedder QueryEmbedder, opts Options) *Searcher {
	if opts.GraphLimit <= 0 {
		opts.GraphLimit = DefaultGraphLimit
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = telemetry.NopRecorder{}
	}
	return &Searcher{
		extractor: extractor,
		filter:    filter,
		embedder:  embedder,
		opts:      opts,
	}
}

// Search answers a natural-language query with a ranked property list.
// graphLimit and topK fall back to the configured defaults when zero or
// negative. An empty candidate set from the graph filter returns an
// empty result immediately without touching the embedding provider.
func (s *Searcher) Search(ctx context.Context, query string, graphLimit, topK int) ([]types.ScoredResult, error) {
	if graphLimit <= 0 {
		graphLimit = s.opts.GraphLimit
	}
	if topK <= 0 {
		topK = s.opts.TopK
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	start := time.Now()
	logger := s.opts.Logger.With("request_id", requestID)

	filter, err := s.extract(ctx, query)
	if err != nil {
		s.record(requestID, query, 0, start, 0, 0, 0, "intent_error")
		return nil, NewIntentExtractionError("query could not be parsed", err)
	}
	constraints := countConstraints(filter.HardConstraints)
	logger.Debug("intent extracted",
		"hard_constraints", constraints,
		"soft_requirements", len(filter.SoftRequirements))

	candidates, err := s.filter.FilterCandidates(ctx, filter.HardConstraints, graphLimit)
	if err != nil {
		s.record(requestID, query, constraints, start, 0, 0, 0, "graph_error")
		return nil, NewGraphQueryError("candidate filter failed", err)
	}

	if len(candidates) == 0 {
		logger.Info("no candidates matched hard constraints", "graph_limit", graphLimit)
		s.record(requestID, query, constraints, start, 0, 0, 0, "empty")
		return []types.ScoredResult{}, nil
	}

	queryEmbedding, err := s.embedQuery(ctx, filter.SoftRequirements)
	if err != nil {
		s.record(requestID, query, constraints, start, len(candidates), 0, 0, "embedding_error")
		return nil, NewEmbeddingProviderError("query embedding failed", err)
	}

	results, dropped := Rerank(queryEmbedding, candidates, topK)
	if dropped > 0 {
		logger.Warn("candidates missing stored embeddings", "dropped", dropped)
	}
	logger.Info("search completed",
		"candidates", len(candidates),
		"results", len(results),
		"latency_ms", time.Since(start).Milliseconds())

	s.record(requestID, query, constraints, start, len(candidates), dropped, len(results), "ok")
	return results, nil
}

func (s *Searcher) extract(ctx context.Context, query string) (*types.QueryFilter, error) {
	if s.opts.IntentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.IntentTimeout)
		defer cancel()
	}
	return s.extractor.Extract(ctx, query)
}

func (s *Searcher) embedQuery(ctx context.Context, softRequirements []string) ([]float32, error) {
	if s.opts.EmbeddingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.EmbeddingTimeout)
		defer cancel()
	}
	return s.embedder.EmbedSingle(ctx, BuildQueryText(softRequirements))
}

// countConstraints reports how many hard constraints are set, for logs
// and telemetry.
func countConstraints(hc types.HardConstraints) int {
	n := 0
	for _, set := range []bool{
		hc.City != nil,
		hc.District != nil,
		hc.Street != nil,
		hc.MinPrice != nil,
		hc.MaxPrice != nil,
		hc.MinInteriorArea != nil,
		hc.MinBedroom != nil,
		hc.MinBathroom != nil,
		hc.PropertyType != nil,
		hc.MinAge != nil,
		hc.MaxAge != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (s *Searcher) record(requestID, query string, constraints int, start time.Time, candidates, dropped, results int, outcome string) {
	s.opts.Recorder.Record(telemetry.SearchEvent{
		RequestID:       requestID,
		Timestamp:       start.UTC(),
		Query:           query,
		ConstraintCount: constraints,
		CandidateCount:  candidates,
		DroppedCount:    dropped,
		ResultCount:     results,
		LatencyMillis:   time.Since(start).Milliseconds(),
		Outcome:         outcome,
	})
}
