package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"etiqo/internal/domain"
	"etiqo/internal/service"
)

// GenerateLabelsRequest is the request body for label generation. OrderRef
// identifies the order being generated; re-submitting the same reference
// overwrites the previous run's artifacts.
type GenerateLabelsRequest struct {
	OrderRef string             `json:"order_ref"`
	Items    []domain.OrderItem `json:"items" binding:"required"`
}

// LabelHandler handles label generation endpoints.
type LabelHandler struct {
	labelService service.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// GenerateLabels handles POST /api/v1/labels/generate
// @Summary Generate labels for a set of order items
// @Description Renders and stores one or more label artifacts per included item; failed items are reported in place and do not abort the batch
// @Tags labels
// @Accept json
// @Produce json
// @Param request body GenerateLabelsRequest true "Items to generate labels for"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /labels/generate [post]
func (h *LabelHandler) GenerateLabels(c *gin.Context) {
	var req GenerateLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body: "+err.Error())
		return
	}

	batch, err := h.labelService.GenerateLabels(c.Request.Context(), req.OrderRef, req.Items)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// DownloadLabel handles GET /api/v1/labels/download
// @Summary Download a generated label artifact
// @Description Streams a stored artifact by its storage key
// @Tags labels
// @Produce octet-stream
// @Param key query string true "Artifact storage key"
// @Success 200 {file} binary
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /labels/download [get]
func (h *LabelHandler) DownloadLabel(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_KEY", "query parameter 'key' is required")
		return
	}

	data, mimeType, err := h.labelService.DownloadLabel(c.Request.Context(), key)
	if err != nil {
		RespondError(c, http.StatusNotFound, "LABEL_NOT_FOUND", "no artifact stored under the given key")
		return
	}

	c.Data(http.StatusOK, mimeType, data)
}
