package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finvoice/internal/domain"
)

// BillRepository abstracts persistence of invoice records. Create and Update
// return domain.ErrDuplicateInvoiceNumber when the store's unique index
// rejects the invoice number; that index, not the service-level pre-check,
// is the authoritative guard.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*domain.Bill, error)
	Update(ctx context.Context, bill *domain.Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.BillFilter, offset, limit int) ([]domain.Bill, int, error)
	Search(ctx context.Context, query string, offset, limit int) ([]domain.Bill, int, error)
	ListByFinancierTag(ctx context.Context, nameContains string) ([]domain.Bill, error)

	Summary(ctx context.Context) (*domain.BillSummary, error)
	MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error)
	RevenueByCategory(ctx context.Context) ([]domain.RevenueBucket, error)
	RevenueByManufacturer(ctx context.Context) ([]domain.RevenueBucket, error)

	ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time, status domain.BillStatus) (int64, error)
}
