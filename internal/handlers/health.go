// internal/handlers/health.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/haspco/safety-catalog/internal/utils"
)

// ModeReporter reports whether the data store is still in fallback mode.
type ModeReporter interface {
	IsFallback() bool
}

type HealthHandler struct {
	store ModeReporter
}

func NewHealthHandler(store ModeReporter) *HealthHandler {
	return &HealthHandler{store: store}
}

// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"ok":          true,
		"dbConnected": !h.store.IsFallback(),
	})
}
