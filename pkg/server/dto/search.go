// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"errors"
	"strings"

	"github.com/soundprediction/hestia/pkg/types"
)

// MaxQueryLength caps accepted query size.
const MaxQueryLength = 2000

// SearchRequest is the body of POST /search. GraphLimit and TopK fall
// back to server defaults when omitted or zero.
type SearchRequest struct {
	Query      string `json:"query" binding:"required"`
	GraphLimit int    `json:"graph_limit,omitempty"`
	TopK       int    `json:"top_k,omitempty"`
}

// Validate checks the request beyond binding-level requirements.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return errors.New("query cannot be empty")
	}
	if len(r.Query) > MaxQueryLength {
		return errors.New("query too long")
	}
	if r.GraphLimit < 0 {
		return errors.New("graph_limit cannot be negative")
	}
	if r.TopK < 0 {
		return errors.New("top_k cannot be negative")
	}
	return nil
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Results   []types.ScoredResult `json:"results"`
	Total     int                  `json:"total"`
	RequestID string               `json:"request_id"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
