package handlers

import (
	"net/http"

	"canvas_shop_backend/internal/middleware"
	"canvas_shop_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ShippingHandler exposes the courier AWB operations of an order.
type ShippingHandler struct {
	shippingService services.ShippingService
}

func NewShippingHandler(ss services.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: ss}
}

func (h *ShippingHandler) GenerateAWB(c *gin.Context) {
	var req services.GenerateAWBRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.shippingService.GenerateAWB(c.Request.Context(), c.Param("id"), req, middleware.ActorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Failed to generate AWB.")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *ShippingHandler) UpdateTracking(c *gin.Context) {
	order, err := h.shippingService.UpdateAWBTracking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to refresh AWB tracking.")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *ShippingHandler) DownloadLabel(c *gin.Context) {
	pdf, filename, err := h.shippingService.DownloadAWBLabel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to download AWB label.")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
