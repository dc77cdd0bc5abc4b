// Package handlers implements the HTTP endpoint handlers.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/hestia/pkg/search"
	"github.com/soundprediction/hestia/pkg/server/dto"
	"github.com/soundprediction/hestia/pkg/types"
)

// Searcher runs the retrieval pipeline for one query.
type Searcher interface {
	Search(ctx context.Context, query string, graphLimit, topK int) ([]types.ScoredResult, error)
}

// SearchHandler handles property search requests.
type SearchHandler struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searcher Searcher, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{searcher: searcher, logger: logger}
}

// Search handles POST /search.
//
// Pipeline failures map to status codes by stage: an unparseable query
// is the client's problem (422), graph or embedding provider failures
// are upstream problems (502).
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	ctx := search.WithRequestID(c.Request.Context(), c.GetString("request_id"))
	results, err := h.searcher.Search(ctx, req.Query, req.GraphLimit, req.TopK)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Results:   results,
		Total:     len(results),
		RequestID: c.GetString("request_id"),
	})
}

func (h *SearchHandler) respondError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")
	h.logger.Error("search failed", "request_id", requestID, "error", err)

	switch {
	case errors.Is(err, &search.IntentExtractionError{}):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "query could not be understood",
			Message: err.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
	case errors.Is(err, &search.GraphQueryError{}),
		errors.Is(err, &search.EmbeddingProviderError{}):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "upstream dependency failed",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
}
