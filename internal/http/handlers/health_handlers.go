package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is reported by the service banner
const Version = "1.0.0"

// HealthHandlers serves the service banner and liveness check
type HealthHandlers struct {
	now func() time.Time
}

// NewHealthHandlers creates new health handlers
func NewHealthHandlers() *HealthHandlers {
	return &HealthHandlers{now: time.Now}
}

// Root returns the service banner
func (h *HealthHandlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "KPA Form Data API",
		"version": Version,
	})
}

// Health reports that the process is serving requests
func (h *HealthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
