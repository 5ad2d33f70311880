package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"finvoice/internal/domain"
	"finvoice/internal/extractor"
	"finvoice/internal/port"
)

// ExtractionService turns an uploaded approval letter into a field set the
// operator can review before assembling a bill.
type ExtractionService interface {
	ExtractFromUpload(ctx context.Context, filename string, data []byte) (*domain.ExtractionResult, error)
}

type extractionService struct {
	storage     port.ObjectStorage
	uploadsDir  string
	maxFileSize int64
}

// NewExtractionService creates the PDF intake service. maxFileSize is in
// bytes.
func NewExtractionService(storage port.ObjectStorage, uploadsDir string, maxFileSize int64) ExtractionService {
	return &extractionService{
		storage:     storage,
		uploadsDir:  uploadsDir,
		maxFileSize: maxFileSize,
	}
}

var pdfMagic = []byte("%PDF-")

func (s *extractionService) ExtractFromUpload(ctx context.Context, filename string, data []byte) (*domain.ExtractionResult, error) {
	if int64(len(data)) > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	// Sniff the content rather than trusting the extension.
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, domain.ErrUnsupportedFileType
	}

	key := fmt.Sprintf("%s/%s-%s", s.uploadsDir, uuid.NewString(), sanitizeFilename(filename))
	if _, err := s.storage.Save(ctx, port.SaveInput{
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
	}); err != nil {
		return nil, fmt.Errorf("extractionService: storing upload: %w", err)
	}

	text, err := extractor.TextFromPDF(data)
	if err != nil {
		return nil, fmt.Errorf("extractionService: reading pdf text: %w", err)
	}

	result := extractor.Extract(text)
	result.OriginalFilePath = key
	return &result, nil
}

// sanitizeFilename keeps only the base name and replaces characters that
// would be awkward in a storage key.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = fmt.Sprintf("upload-%d.pdf", time.Now().Unix())
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "..", "_")
	return replacer.Replace(base)
}
