// Package embedder provides text embedding clients for vector
// representations.
//
// The Client interface supports batch embedding for the offline corpus
// path and single-text embedding for the online query path. Providers
// reject empty input, so blank texts are substituted with a placeholder
// before any call leaves this package.
package embedder

import (
	"context"
	"strings"
)

// emptyTextPlaceholder replaces blank input before a provider call;
// embedding providers reject empty strings.
const emptyTextPlaceholder = "(empty)"

// Client is the interface for text embedding providers.
// Implementations must be safe for concurrent use.
type Client interface {
	// Embed generates embeddings for the given texts, one vector per
	// input, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the fixed dimension of produced vectors.
	Dimensions() int

	// Close cleans up any resources.
	Close() error
}

// Config holds configuration for embedding clients.
type Config struct {
	Model      string
	BaseURL    string
	Dimensions int
	// BatchSize caps how many texts go into one provider request; larger
	// inputs are split transparently.
	BatchSize int
}

// SanitizeText returns text, or the placeholder when text is blank.
func SanitizeText(text string) string {
	if strings.TrimSpace(text) == "" {
		return emptyTextPlaceholder
	}
	return text
}

// sanitizeTexts applies SanitizeText to every input, copying only when a
// substitution is needed.
func sanitizeTexts(texts []string) []string {
	var out []string
	for i, t := range texts {
		if strings.TrimSpace(t) != "" {
			continue
		}
		if out == nil {
			out = append([]string{}, texts...)
		}
		out[i] = emptyTextPlaceholder
	}
	if out == nil {
		return texts
	}
	return out
}

// chunkTexts splits texts into batches of at most size elements.
func chunkTexts(texts []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	var batches [][]string
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}
	return batches
}
