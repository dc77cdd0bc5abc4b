package types

// PropertyType represents the category of a property as stored in the graph.
type PropertyType string

const (
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyTypeCondo     PropertyType = "condo"
)

// Valid reports whether the property type is one of the known enum values.
func (p PropertyType) Valid() bool {
	switch p {
	case PropertyTypeTownhouse, PropertyTypeCondo:
		return true
	}
	return false
}

// HardConstraints holds the structural filters extracted from a user query.
// Every field is independently nullable; nil means the corresponding
// predicate is unconstrained, never "match nothing".
type HardConstraints struct {
	// City is matched exactly (e.g. "高雄市").
	City *string `json:"city"`
	// District is matched exactly (e.g. "楠梓區").
	District *string `json:"district"`
	// Street is matched as a substring to tolerate partial address entry.
	Street *string `json:"street"`
	// MinPrice and MaxPrice are inclusive bounds in TWD.
	MinPrice *int64 `json:"min_price"`
	MaxPrice *int64 `json:"max_price"`
	// MinInteriorArea is an inclusive lower bound in ping (坪).
	MinInteriorArea *float64      `json:"min_interior_area"`
	MinBedroom      *int64        `json:"min_bedroom"`
	MinBathroom     *int64        `json:"min_bathroom"`
	PropertyType    *PropertyType `json:"property_type"`
	// MinAge and MaxAge are inclusive bounds on property age in years.
	MinAge *int64 `json:"min_age"`
	MaxAge *int64 `json:"max_age"`
}

// QueryFilter is the structured representation of one user request.
// A QueryFilter with all hard constraints nil and no soft requirements is
// valid: the graph filter passes everything (bounded by the graph limit)
// and the rerank carries no preference signal.
type QueryFilter struct {
	HardConstraints HardConstraints `json:"hard_constraints"`
	// SoftRequirements are free-text preference phrases in the query's
	// original language. Order is irrelevant to matching but preserved
	// for traceability.
	SoftRequirements []string `json:"soft_requirements"`
}

// PropertyCandidate is one row surviving the hard-constraint graph filter.
type PropertyCandidate struct {
	PropertyID string
	Title      string
	TotalPrice float64
	// Embedding is the pre-computed text embedding stored on the
	// property node. Nil or empty when the offline backfill has not
	// reached this property yet; such candidates cannot be scored.
	Embedding []float32
}

// HasEmbedding reports whether the candidate carries a stored embedding
// and is therefore eligible for reranking.
func (c PropertyCandidate) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// ScoredResult is one entry of the final ranked output.
// Score is the cosine similarity of the L2-normalized query and candidate
// vectors and lies in [-1, 1].
type ScoredResult struct {
	PropertyID string  `json:"property_id"`
	Title      string  `json:"title"`
	TotalPrice float64 `json:"total_price"`
	Score      float64 `json:"score"`
}
