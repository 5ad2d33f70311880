package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finvoice/internal/domain"
	"finvoice/internal/middleware"
	"finvoice/internal/service"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// BillHandler handles bill CRUD, search, render and export endpoints.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create handles POST /api/v1/bills
func (h *BillHandler) Create(c *gin.Context) {
	var input service.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoiceNumber and assetCost are required")
		return
	}
	input.CreatedBy = middleware.GetUsername(c)

	bill, err := h.billService.Create(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, bill)
}

// GetByID handles GET /api/v1/bills/:id
func (h *BillHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	bill, err := h.billService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// List handles GET /api/v1/bills
func (h *BillHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := parseFilter(c)

	bills, total, err := h.billService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Search handles GET /api/v1/bills/search?q=
func (h *BillHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "query parameter q is required")
		return
	}
	offset, limit := parsePagination(c)

	bills, total, err := h.billService.Search(c.Request.Context(), query, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/bills/:id
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UpdateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}
	input.ModifiedBy = middleware.GetUsername(c)

	bill, err := h.billService.Update(c.Request.Context(), id, &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// Delete handles DELETE /api/v1/bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.billService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Render handles POST /api/v1/bills/:id/render
func (h *BillHandler) Render(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	bill, err := h.billService.Render(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// Download handles GET /api/v1/bills/:id/document
func (h *BillHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	bill, data, err := h.billService.GetRenderedDocument(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	contentType := "application/pdf"
	if bill.RenderedDocType == "html" {
		contentType = "text/html"
	}
	filename := fmt.Sprintf("invoice-%s.%s", bill.InvoiceNumber, bill.RenderedDocType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// Email handles POST /api/v1/bills/:id/email
func (h *BillHandler) Email(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		To string `json:"to" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "a valid recipient email is required")
		return
	}
	if err := h.billService.EmailDeliverable(c.Request.Context(), id, req.To); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"sent": true})
}

// Export handles GET /api/v1/bills/export
func (h *BillHandler) Export(c *gin.Context) {
	filter := parseFilter(c)
	data, err := h.billService.ExportXLSX(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("bills-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}

func parseFilter(c *gin.Context) domain.BillFilter {
	filter := domain.BillFilter{
		CustomerName:  c.Query("customerName"),
		Manufacturer:  c.Query("manufacturer"),
		AssetCategory: c.Query("assetCategory"),
		Status:        domain.BillStatus(c.Query("status")),
	}
	if from := c.Query("dateFrom"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("dateTo"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.DateTo = &end
		}
	}
	return filter
}
