package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"finvoice/internal/domain"
	"finvoice/internal/service"
	"finvoice/mocks"
)

func TestExtractionService_RejectsNonPDF(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExtractionService(storage, "uploads", 1024*1024)

	_, err := svc.ExtractFromUpload(context.Background(), "letter.pdf", []byte("plain text pretending"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExtractionService_RejectsOversizedFile(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExtractionService(storage, "uploads", 10)

	big := append([]byte("%PDF-1.7"), bytes.Repeat([]byte{0}, 100)...)
	_, err := svc.ExtractFromUpload(context.Background(), "letter.pdf", big)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
