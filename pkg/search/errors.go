package search

import "fmt"

// IntentExtractionError indicates the LLM stage failed to produce a
// usable query filter.
type IntentExtractionError struct {
	Message string
	Err     error
}

func (e *IntentExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("intent extraction failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("intent extraction failed: %s", e.Message)
}

func (e *IntentExtractionError) Unwrap() error { return e.Err }

// Is supports errors.Is checks against the zero value.
func (e *IntentExtractionError) Is(target error) bool {
	_, ok := target.(*IntentExtractionError)
	return ok
}

// NewIntentExtractionError wraps err as an intent stage failure.
func NewIntentExtractionError(message string, err error) *IntentExtractionError {
	return &IntentExtractionError{Message: message, Err: err}
}

// GraphQueryError indicates the candidate filter query against the
// graph store failed.
type GraphQueryError struct {
	Message string
	Err     error
}

func (e *GraphQueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("graph query failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("graph query failed: %s", e.Message)
}

func (e *GraphQueryError) Unwrap() error { return e.Err }

// Is supports errors.Is checks against the zero value.
func (e *GraphQueryError) Is(target error) bool {
	_, ok := target.(*GraphQueryError)
	return ok
}

// NewGraphQueryError wraps err as a graph stage failure.
func NewGraphQueryError(message string, err error) *GraphQueryError {
	return &GraphQueryError{Message: message, Err: err}
}

// EmbeddingProviderError indicates the query embedding call failed.
type EmbeddingProviderError struct {
	Message string
	Err     error
}

func (e *EmbeddingProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embedding provider failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("embedding provider failed: %s", e.Message)
}

func (e *EmbeddingProviderError) Unwrap() error { return e.Err }

// Is supports errors.Is checks against the zero value.
func (e *EmbeddingProviderError) Is(target error) bool {
	_, ok := target.(*EmbeddingProviderError)
	return ok
}

// NewEmbeddingProviderError wraps err as an embedding stage failure.
func NewEmbeddingProviderError(message string, err error) *EmbeddingProviderError {
	return &EmbeddingProviderError{Message: message, Err: err}
}
