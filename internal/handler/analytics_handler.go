package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"finvoice/internal/service"
)

// AnalyticsHandler handles revenue roll-up endpoints.
type AnalyticsHandler struct {
	billService service.BillService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(billService service.BillService) *AnalyticsHandler {
	return &AnalyticsHandler{billService: billService}
}

// Summary handles GET /api/v1/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.billService.Summary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// Monthly handles GET /api/v1/analytics/monthly?year=
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	rows, err := h.billService.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Categories handles GET /api/v1/analytics/categories
func (h *AnalyticsHandler) Categories(c *gin.Context) {
	rows, err := h.billService.RevenueByCategory(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Manufacturers handles GET /api/v1/analytics/manufacturers
func (h *AnalyticsHandler) Manufacturers(c *gin.Context) {
	rows, err := h.billService.RevenueByManufacturer(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}
