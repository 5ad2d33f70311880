package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"finvoice/internal/service"
)

// UploadHandler handles approval letter intake and field extraction.
type UploadHandler struct {
	extraction service.ExtractionService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(extraction service.ExtractionService) *UploadHandler {
	return &UploadHandler{extraction: extraction}
}

// Upload handles POST /api/v1/bills/upload. The response holds the
// extracted fields for operator review; no bill record is created yet.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "failed to read uploaded file")
		return
	}

	result, err := h.extraction.ExtractFromUpload(c.Request.Context(), header.Filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
