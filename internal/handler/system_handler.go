package handler

import (
	"github.com/gin-gonic/gin"

	"finvoice/internal/port"
)

// SystemHandler handles storage usage reporting.
type SystemHandler struct {
	storage port.ObjectStorage
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(storage port.ObjectStorage) *SystemHandler {
	return &SystemHandler{storage: storage}
}

// StorageUsage handles GET /api/v1/system/storage
func (h *SystemHandler) StorageUsage(c *gin.Context) {
	usage, err := h.storage.Usage(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, usage)
}
