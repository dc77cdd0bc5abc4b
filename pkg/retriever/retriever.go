// Package retriever executes the hard-constraint filter against the
// property graph and returns the bounded candidate set for reranking.
package retriever

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soundprediction/hestia/pkg/driver"
	"github.com/soundprediction/hestia/pkg/types"
)

// filterCypher evaluates every hard constraint as an independently optional
// conjunct: a nil parameter passes unconditionally. Numeric comparisons are
// inclusive; street matches as a substring. Values are always bound as
// parameters, never spliced into the template.
const filterCypher = `
MATCH (p:Property)
WHERE
  ($city IS NULL OR p.city = $city) AND
  ($district IS NULL OR p.district = $district) AND
  ($street IS NULL OR p.street CONTAINS $street) AND
  ($min_price IS NULL OR p.total_price >= $min_price) AND
  ($max_price IS NULL OR p.total_price <= $max_price) AND
  ($min_interior_area IS NULL OR p.interior_area >= $min_interior_area) AND
  ($min_bedroom IS NULL OR p.num_bedroom >= $min_bedroom) AND
  ($min_bathroom IS NULL OR p.num_bathroom >= $min_bathroom) AND
  ($property_type IS NULL OR p.property_type = $property_type) AND
  ($min_age IS NULL OR p.property_age >= $min_age) AND
  ($max_age IS NULL OR p.property_age <= $max_age)
RETURN
  p.property_id AS property_id,
  p.title AS title,
  p.total_price AS total_price,
  p.text_embedding AS embedding
LIMIT $limit`

// Retriever is the graph candidate filter stage. It performs no local
// computation beyond building and dispatching the query.
type Retriever struct {
	driver driver.GraphDriver
	logger *slog.Logger
}

// New creates a retriever over the given graph driver.
func New(d driver.GraphDriver, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		driver: d,
		logger: logger,
	}
}

// FilterCandidates returns at most limit properties satisfying every
// non-nil hard constraint, each carrying its stored embedding. Zero
// matches yield an empty slice, not an error.
func (r *Retriever) FilterCandidates(ctx context.Context, hc types.HardConstraints, limit int) ([]types.PropertyCandidate, error) {
	rows, err := r.driver.ExecuteRead(ctx, filterCypher, queryParams(hc, limit))
	if err != nil {
		return nil, fmt.Errorf("candidate filter query failed: %w", err)
	}

	candidates := make([]types.PropertyCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, candidateFromRow(row))
	}

	r.logger.Debug("candidates fetched", "count", len(candidates), "limit", limit)
	return candidates, nil
}

// queryParams binds every filter parameter, nil when unconstrained, so the
// template's IS NULL guards decide which predicates apply.
func queryParams(hc types.HardConstraints, limit int) map[string]any {
	params := map[string]any{
		"city":              optString(hc.City),
		"district":          optString(hc.District),
		"street":            optString(hc.Street),
		"min_price":         optInt64(hc.MinPrice),
		"max_price":         optInt64(hc.MaxPrice),
		"min_interior_area": optFloat64(hc.MinInteriorArea),
		"min_bedroom":       optInt64(hc.MinBedroom),
		"min_bathroom":      optInt64(hc.MinBathroom),
		"min_age":           optInt64(hc.MinAge),
		"max_age":           optInt64(hc.MaxAge),
		"limit":             limit,
	}
	if hc.PropertyType != nil {
		params["property_type"] = string(*hc.PropertyType)
	} else {
		params["property_type"] = nil
	}
	return params
}

func candidateFromRow(row map[string]any) types.PropertyCandidate {
	var c types.PropertyCandidate
	c.PropertyID, _ = driver.AsString(row["property_id"])
	c.Title, _ = driver.AsString(row["title"])
	c.TotalPrice, _ = driver.AsFloat64(row["total_price"])
	c.Embedding = driver.AsFloat32Slice(row["embedding"])
	return c
}

func optString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func optInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optFloat64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
