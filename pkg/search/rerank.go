package search

import (
	"math"
	"sort"

	"github.com/soundprediction/hestia/pkg/types"
)

// normEpsilon guards cosine similarity against zero-length vectors.
const normEpsilon = 1e-12

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths yield 0; the epsilon in the denominator keeps
// zero-length vectors from dividing by zero (they also score 0).
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + normEpsilon)
}

// Rerank scores candidates against the query embedding and returns the
// topK best, ordered by descending score. Candidates without a stored
// embedding are skipped; the second return value counts them. Ties keep
// the candidate order from the graph filter, so repeated calls over the
// same input produce the same ranking.
func Rerank(queryEmbedding []float32, candidates []types.PropertyCandidate, topK int) ([]types.ScoredResult, int) {
	results := make([]types.ScoredResult, 0, len(candidates))
	dropped := 0

	for _, c := range candidates {
		if !c.HasEmbedding() {
			dropped++
			continue
		}
		results = append(results, types.ScoredResult{
			PropertyID: c.PropertyID,
			Title:      c.Title,
			TotalPrice: c.TotalPrice,
			Score:      CosineSimilarity(queryEmbedding, c.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, dropped
}
