package controller

import (
	"droboapp-panel/models"
	"droboapp-panel/services"
	"droboapp-panel/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusController struct {
	state    services.StateServiceInterface
	identity models.AppIdentity
	logger   logger.Logger
}

func NewStatusController(state services.StateServiceInterface, identity models.AppIdentity, logger logger.Logger) *StatusController {
	return &StatusController{
		state:    state,
		identity: identity,
		logger:   logger,
	}
}

// GetStatus handles GET {basePath}/status
func (h *StatusController) GetStatus(c *gin.Context) {
	snapshot, err := h.state.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to get state snapshot: %v", err)
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse(
			http.StatusInternalServerError, "Failed to retrieve app status", "StatusError", err.Error()))
		return
	}

	message := h.identity.Name + " is not running"
	if snapshot.Running {
		message = h.identity.Name + " is running"
	}

	c.JSON(http.StatusOK, models.NewSuccessResponse(http.StatusOK, message, snapshot))
}

// Health handles GET /health
func (h *StatusController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"app":     h.identity.ID,
		"version": h.identity.Version,
	})
}
