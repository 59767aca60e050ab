package handlers

import (
	"net/http"
	"time"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetDashboardSummary provides a summary of key metrics for the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.DashboardSummary(time.Now()))
}

// GetSalesReports returns sales grouped by period.
func (h *ReportHandler) GetSalesReports(c *gin.Context) {
	var params models.ReportRequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	report, err := h.reportService.SalesReport(params)
	if err != nil {
		respondServiceError(c, err, "Failed to build sales report.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}
