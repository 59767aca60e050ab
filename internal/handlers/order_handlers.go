package handlers

import (
	"net/http"
	"strings"

	"canvas_shop_backend/internal/middleware"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

type changeStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Reason string             `json:"reason"`
}

type bulkStatusRequest struct {
	OrderIDs []string           `json:"orderIds" binding:"required,min=1"`
	Status   models.OrderStatus `json:"status" binding:"required"`
	Reason   string             `json:"reason"`
}

// validateStatusChange enforces the form rules of the status dialog.
func validateStatusChange(c *gin.Context, status models.OrderStatus, reason string) bool {
	if !models.IsValidOrderStatus(string(status)) {
		utils.RespondValidationFailed(c, "unknown status "+string(status))
		return false
	}
	if models.StatusRequiresReason(status) && strings.TrimSpace(reason) == "" {
		utils.RespondValidationFailed(c, "a reason is required when moving an order to "+string(status))
		return false
	}
	return true
}

// GetOrders handles fetching the loaded orders with filters and paging.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}

	orders, total := h.orderService.GetOrders(filters)
	c.JSON(http.StatusOK, gin.H{
		"data":      orders,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetOrderByID returns the full order, items included.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch order.")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusRequest
	if !bindJSON(c, &req) || !validateStatusChange(c, req.Status, req.Reason) {
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status, req.Reason, middleware.ActorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Failed to update order status.")
		return
	}
	if order == nil {
		respondNotFound(c, "Order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// BulkChangeStatus applies one status to many orders. The response lists the orders that failed.
func (h *OrderHandler) BulkChangeStatus(c *gin.Context) {
	var req bulkStatusRequest
	if !bindJSON(c, &req) || !validateStatusChange(c, req.Status, req.Reason) {
		return
	}

	result := h.orderService.BulkChangeStatus(c.Request.Context(), req.OrderIDs, req.Status, req.Reason, middleware.ActorFromContext(c))
	status := http.StatusOK
	if result.Completed < result.Requested {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func (h *OrderHandler) GetAllowedStatuses(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	allowed := h.orderService.AllowedStatuses(c.Param("id"), actor.Role)
	if allowed == nil {
		respondNotFound(c, "Order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": allowed})
}

// DeleteOrder handles deleting an order
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id"), middleware.ActorFromContext(c)); err != nil {
		respondServiceError(c, err, "Failed to delete order.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (h *OrderHandler) GetAuditTrail(c *gin.Context) {
	entries, err := h.orderService.AuditTrail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch audit trail.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
