package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"finvoice/internal/domain"
	"finvoice/internal/port"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) Render(ctx context.Context, bill *domain.Bill) (*port.RenderOutput, error) {
	args := m.Called(ctx, bill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RenderOutput), args.Error(1)
}
