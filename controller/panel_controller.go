package controller

import (
	"bytes"
	"context"
	"droboapp-panel/models"
	"droboapp-panel/services"
	"droboapp-panel/utils/logger"
	"droboapp-panel/views"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PanelController struct {
	app        services.AppControlServiceInterface
	content    services.ContentServiceInterface
	logger     logger.Logger
	authActive bool
}

func NewPanelController(app services.AppControlServiceInterface, content services.ContentServiceInterface, logger logger.Logger, authActive bool) *PanelController {
	return &PanelController{
		app:        app,
		content:    content,
		logger:     logger,
		authActive: authActive,
	}
}

// Index handles GET and POST / with an optional op parameter.
// The page renders with 200 whatever the external command returned.
func (h *PanelController) Index(c *gin.Context) {
	raw := c.Query("op")
	if raw == "" {
		raw = c.PostForm("op")
	}
	op := models.ParseOperation(raw)
	c.Set("op", op.String())

	// A browser leaving mid-operation must not kill a half-finished start or stop.
	ctx := context.WithoutCancel(c.Request.Context())

	outcome := h.app.Dispatch(ctx, op)
	page := h.buildPage(ctx, outcome)

	var buf bytes.Buffer
	if err := views.Render(&buf, page); err != nil {
		h.logger.Errorf("Failed to render status page: %v", err)
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// buildPage observes the running state after the operation finished
func (h *PanelController) buildPage(ctx context.Context, outcome *models.OperationOutcome) *models.Page {
	return &models.Page{
		App:        h.app.Identity(),
		Outcome:    outcome,
		Running:    h.app.IsRunning(ctx),
		Config:     h.content.ConfigView(),
		Fragments:  h.content.Fragments(),
		Logs:       h.content.Logs(),
		AuthActive: h.authActive,
	}
}
