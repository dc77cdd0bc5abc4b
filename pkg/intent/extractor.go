// Package intent turns natural-language real-estate queries into structured
// query filters via one constrained language-model call.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"
	"github.com/soundprediction/hestia/pkg/nlp"
	"github.com/soundprediction/hestia/pkg/types"
)

const schemaName = "real_estate_query"

// Extractor extracts a QueryFilter from free-form query text. It is
// stateless and safe to call concurrently.
type Extractor struct {
	llm    nlp.Client
	logger *slog.Logger
}

// NewExtractor creates an extractor backed by the given language model.
func NewExtractor(client nlp.Client, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		llm:    client,
		logger: logger,
	}
}

// Extract issues one structured-output model call and decodes the result.
// There is no retry on schema violation; a non-conformant response is
// surfaced as an error for the caller to classify.
func (e *Extractor) Extract(ctx context.Context, queryText string) (*types.QueryFilter, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, fmt.Errorf("query text is empty")
	}

	messages := []nlp.Message{
		nlp.NewMessage(nlp.RoleSystem, extractSystemPrompt),
		nlp.NewMessage(nlp.RoleUser, fmt.Sprintf(extractUserPrompt, queryText)),
	}

	resp, err := e.llm.ChatWithStructuredOutput(ctx, messages, schemaName, Schema())
	if err != nil {
		return nil, fmt.Errorf("intent model call failed: %w", err)
	}

	qf, err := decodeQueryFilter(resp.Content)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("extracted query intent",
		"soft_requirements", len(qf.SoftRequirements))
	return qf, nil
}

// decodeQueryFilter parses the model output into a QueryFilter. Providers
// occasionally wrap the object in markdown fences or emit slightly broken
// JSON; one repair pass is attempted before giving up.
func decodeQueryFilter(content string) (*types.QueryFilter, error) {
	var qf types.QueryFilter
	if err := json.Unmarshal([]byte(content), &qf); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return nil, nlp.NewSchemaViolationError("intent response is not valid JSON", err)
		}
		if err := json.Unmarshal([]byte(repaired), &qf); err != nil {
			return nil, nlp.NewSchemaViolationError("intent response does not match the query filter schema", err)
		}
	}

	if pt := qf.HardConstraints.PropertyType; pt != nil && !pt.Valid() {
		return nil, nlp.NewSchemaViolationError(fmt.Sprintf("unknown property type %q", string(*pt)), nil)
	}

	// Preserve order; drop whitespace-only phrases.
	reqs := make([]string, 0, len(qf.SoftRequirements))
	for _, r := range qf.SoftRequirements {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			reqs = append(reqs, trimmed)
		}
	}
	qf.SoftRequirements = reqs

	return &qf, nil
}
