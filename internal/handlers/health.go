package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/quote-service/internal/database"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string              `json:"status"`
	Database string              `json:"database"`
	Pool     *database.PoolStats `json:"pool,omitempty"`
	Drafts   int                 `json:"drafts"`
	Catalog  []string            `json:"catalog"`
}

// HealthCheck handles the health check endpoint
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Catalog: []string{},
	}
	if drafts != nil {
		response.Drafts = drafts.Len()
	}
	if catalogAdapter != nil {
		for _, st := range catalogAdapter.Registry().List() {
			response.Catalog = append(response.Catalog, string(st))
		}
	}

	// Check database connection
	if database.Pool() != nil {
		err := database.Status(c.Request.Context())
		if err != nil {
			response.Status = "degraded"
			response.Database = "disconnected"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response.Database = "connected"
		if stats, ok := database.Stats(); ok {
			response.Pool = &stats
		}
	} else {
		response.Database = "not configured"
	}

	c.JSON(http.StatusOK, response)
}
