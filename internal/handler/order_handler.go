package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"etiqo/internal/service"
)

// OrderHandler handles order document ingestion endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ParseOrder handles POST /api/v1/orders/parse
// @Summary Parse a purchase-order document
// @Description Accepts an image, PDF, or spreadsheet upload and returns the recognized order with line items
// @Tags orders
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Order document (pdf, jpg, png, csv, xls, xlsx)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 413 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /orders/parse [post]
func (h *OrderHandler) ParseOrder(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Printf("OrderHandler.ParseOrder: opening upload: %v", err)
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Printf("OrderHandler.ParseOrder: reading upload: %v", err)
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}

	order, err := h.orderService.ParseOrder(c.Request.Context(), service.ParseOrderInput{
		Data:         data,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		FileNameHint: fileHeader.Filename,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}
