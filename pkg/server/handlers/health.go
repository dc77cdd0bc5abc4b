package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Build information, set at build time using ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// Pinger checks connectivity to the graph store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	graph Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(graph Pinger) *HealthHandler {
	return &HealthHandler{graph: graph}
}

// HealthCheck handles GET /health - basic liveness check.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "hestia",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// ReadinessCheck handles GET /ready. Readiness requires the graph store
// to answer within the probe timeout.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{}
	status := http.StatusOK
	overall := "ready"

	if h.graph == nil {
		checks["database"] = gin.H{"status": "unhealthy", "error": "graph client not initialized"}
		overall = "not_ready"
		status = http.StatusServiceUnavailable
	} else {
		start := time.Now()
		err := h.graph.Ping(ctx)
		check := gin.H{
			"status":   "healthy",
			"duration": time.Since(start).String(),
		}
		if err != nil {
			check["status"] = "unhealthy"
			check["error"] = err.Error()
			overall = "not_ready"
			status = http.StatusServiceUnavailable
		}
		checks["database"] = check
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"service":   "hestia",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   "hestia",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
