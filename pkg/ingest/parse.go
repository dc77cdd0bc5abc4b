// Package ingest loads cleaned property documents into the graph store
// and backfills text embeddings for imported properties.
package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync/atomic"
)

// DiscardCounter counts values that failed numeric parsing during import.
// Malformed numerics become null on the node rather than failing the
// document, but each one is counted so data quality stays observable.
type DiscardCounter struct {
	n atomic.Int64
}

// Add records discarded values.
func (c *DiscardCounter) Add(delta int64) {
	c.n.Add(delta)
}

// Count returns the number of discarded values so far.
func (c *DiscardCounter) Count() int64 {
	return c.n.Load()
}

// ParseOptionalFloat parses v as a float. Absent values (nil, blank
// string) return nil without counting; present but malformed values
// return nil and increment the counter.
func ParseOptionalFloat(v any, discards *DiscardCounter) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return &t
	case float32:
		f := float64(t)
		return &f
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return &f
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	if discards != nil {
		discards.Add(1)
	}
	return nil
}

// ParseOptionalInt parses v as an integer, truncating fractional input.
// Same absence and discard rules as ParseOptionalFloat.
func ParseOptionalInt(v any, discards *DiscardCounter) *int64 {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		i := int64(t)
		return &i
	case int64:
		return &t
	case float64:
		i := int64(t)
		return &i
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return &i
		}
		if f, err := t.Float64(); err == nil {
			i := int64(f)
			return &i
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			i := int64(f)
			return &i
		}
	}
	if discards != nil {
		discards.Add(1)
	}
	return nil
}
