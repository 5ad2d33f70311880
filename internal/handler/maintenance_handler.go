package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"finvoice/internal/config"
	"finvoice/internal/service"
)

// MaintenanceHandler handles data hygiene endpoints: financier tag repair,
// archiving and cleanup of old records.
type MaintenanceHandler struct {
	billService service.BillService
	retention   config.RetentionConfig
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(billService service.BillService, retention config.RetentionConfig) *MaintenanceHandler {
	return &MaintenanceHandler{billService: billService, retention: retention}
}

// FixIDFC handles POST /api/v1/maintenance/fix-idfc
func (h *MaintenanceHandler) FixIDFC(c *gin.Context) {
	fixed, err := h.billService.FixIDFCNames(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"fixed": fixed})
}

// Archive handles POST /api/v1/maintenance/archive?days=
func (h *MaintenanceHandler) Archive(c *gin.Context) {
	days := h.parseDays(c, h.retention.ArchiveAfterDays)
	if days <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "days must be a positive integer")
		return
	}
	archived, err := h.billService.ArchiveOld(c.Request.Context(), days)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"archived": archived, "days": days})
}

// Cleanup handles POST /api/v1/maintenance/cleanup?days=
// Only archived records older than the cutoff are removed.
func (h *MaintenanceHandler) Cleanup(c *gin.Context) {
	days := h.parseDays(c, h.retention.CleanupAfterDays)
	if days <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "days must be a positive integer")
		return
	}
	deleted, err := h.billService.CleanupOld(c.Request.Context(), days)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted, "days": days})
}

func (h *MaintenanceHandler) parseDays(c *gin.Context, fallback int) int {
	raw := c.Query("days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return days
}
