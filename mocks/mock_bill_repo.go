package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"finvoice/internal/domain"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Create(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*domain.Bill, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) Update(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBillRepo) List(ctx context.Context, filter domain.BillFilter, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillRepo) Search(ctx context.Context, query string, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillRepo) ListByFinancierTag(ctx context.Context, nameContains string) ([]domain.Bill, error) {
	args := m.Called(ctx, nameContains)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepo) Summary(ctx context.Context) (*domain.BillSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillSummary), args.Error(1)
}

func (m *MockBillRepo) MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyRevenue), args.Error(1)
}

func (m *MockBillRepo) RevenueByCategory(ctx context.Context) ([]domain.RevenueBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueBucket), args.Error(1)
}

func (m *MockBillRepo) RevenueByManufacturer(ctx context.Context) ([]domain.RevenueBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueBucket), args.Error(1)
}

func (m *MockBillRepo) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time, status domain.BillStatus) (int64, error) {
	args := m.Called(ctx, cutoff, status)
	return args.Get(0).(int64), args.Error(1)
}
