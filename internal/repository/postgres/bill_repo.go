package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finvoice/internal/domain"
	"finvoice/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *domain.Bill) error {
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}

	query := `INSERT INTO bills (
		id, invoice_number, customer_name, customer_address,
		manufacturer, asset_category, model, imei_serial_number,
		asset_cost, tax_details, amount_in_words, tax_amount_in_words,
		hdb_finance, tvs_finance, bajaj_finance, poonawalla_finance,
		status, original_file_path, rendered_doc_path, rendered_doc_type,
		notes, created_by, last_modified_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10, $11, $12,
		$13, $14, $15, $16,
		$17, $18, $19, $20,
		$21, $22, $23, $24, $25
	)`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.InvoiceNumber, bill.CustomerName, bill.CustomerAddress,
		bill.Manufacturer, bill.AssetCategory, bill.Model, bill.IMEISerialNumber,
		bill.AssetCost, bill.TaxDetails, bill.AmountInWords, bill.TaxAmountInWords,
		bill.HDBFinance, bill.TVSFinance, bill.BajajFinance, bill.PoonawallaFinance,
		bill.Status, bill.OriginalFilePath, bill.RenderedDocPath, bill.RenderedDocType,
		bill.Notes, bill.CreatedBy, bill.LastModifiedBy, bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("billRepo.Create: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, "SELECT * FROM bills WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill,
		"SELECT * FROM bills WHERE invoice_number = $1", invoiceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByInvoiceNumber: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) Update(ctx context.Context, bill *domain.Bill) error {
	bill.UpdatedAt = time.Now().UTC()

	query := `UPDATE bills SET
		invoice_number = $2, customer_name = $3, customer_address = $4,
		manufacturer = $5, asset_category = $6, model = $7, imei_serial_number = $8,
		asset_cost = $9, tax_details = $10, amount_in_words = $11, tax_amount_in_words = $12,
		hdb_finance = $13, tvs_finance = $14, bajaj_finance = $15, poonawalla_finance = $16,
		status = $17, original_file_path = $18, rendered_doc_path = $19, rendered_doc_type = $20,
		notes = $21, last_modified_by = $22, updated_at = $23
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.InvoiceNumber, bill.CustomerName, bill.CustomerAddress,
		bill.Manufacturer, bill.AssetCategory, bill.Model, bill.IMEISerialNumber,
		bill.AssetCost, bill.TaxDetails, bill.AmountInWords, bill.TaxAmountInWords,
		bill.HDBFinance, bill.TVSFinance, bill.BajajFinance, bill.PoonawallaFinance,
		bill.Status, bill.OriginalFilePath, bill.RenderedDocPath, bill.RenderedDocType,
		bill.Notes, bill.LastModifiedBy, bill.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("billRepo.Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("billRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func (r *billRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("billRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

// buildFilter translates a BillFilter into a WHERE clause and args. Name
// fields match case-insensitively as substrings.
func buildFilter(filter domain.BillFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.CustomerName != "" {
		add("customer_name ILIKE $%d", "%"+filter.CustomerName+"%")
	}
	if filter.Manufacturer != "" {
		add("manufacturer ILIKE $%d", "%"+filter.Manufacturer+"%")
	}
	if filter.AssetCategory != "" {
		add("asset_category ILIKE $%d", "%"+filter.AssetCategory+"%")
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.DateFrom != nil {
		add("created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("created_at <= $%d", *filter.DateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *billRepo) List(ctx context.Context, filter domain.BillFilter, offset, limit int) ([]domain.Bill, int, error) {
	where, args := buildFilter(filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bills"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM bills%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var bills []domain.Bill
	err = r.db.SelectContext(ctx, &bills, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}
	return bills, total, nil
}

func (r *billRepo) Search(ctx context.Context, query string, offset, limit int) ([]domain.Bill, int, error) {
	pattern := "%" + query + "%"
	where := ` WHERE customer_name ILIKE $1
		OR invoice_number ILIKE $1
		OR manufacturer ILIKE $1
		OR model ILIKE $1
		OR imei_serial_number ILIKE $1`

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bills"+where, pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.Search count: %w", err)
	}

	var bills []domain.Bill
	err = r.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills"+where+" ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.Search: %w", err)
	}
	return bills, total, nil
}

func (r *billRepo) ListByFinancierTag(ctx context.Context, nameContains string) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills WHERE customer_name ILIKE $1 ORDER BY created_at DESC",
		"%"+nameContains+"%")
	if err != nil {
		return nil, fmt.Errorf("billRepo.ListByFinancierTag: %w", err)
	}
	return bills, nil
}

func (r *billRepo) Summary(ctx context.Context) (*domain.BillSummary, error) {
	var summary domain.BillSummary
	err := r.db.GetContext(ctx, &summary, `SELECT
		COUNT(*) AS total_bills,
		COALESCE(SUM(asset_cost), 0) AS total_revenue,
		COALESCE(AVG(asset_cost), 0) AS average_bill_value,
		COALESCE(MIN(asset_cost), 0) AS min_bill_value,
		COALESCE(MAX(asset_cost), 0) AS max_bill_value
	FROM bills`)
	if err != nil {
		return nil, fmt.Errorf("billRepo.Summary: %w", err)
	}
	return &summary, nil
}

func (r *billRepo) MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	var rows []domain.MonthlyRevenue
	err := r.db.SelectContext(ctx, &rows, `SELECT
		EXTRACT(YEAR FROM created_at)::int AS year,
		EXTRACT(MONTH FROM created_at)::int AS month,
		COUNT(*) AS count,
		COALESCE(SUM(asset_cost), 0) AS revenue
	FROM bills
	WHERE EXTRACT(YEAR FROM created_at) = $1
	GROUP BY 1, 2
	ORDER BY 1, 2`, year)
	if err != nil {
		return nil, fmt.Errorf("billRepo.MonthlyRevenue: %w", err)
	}
	return rows, nil
}

func (r *billRepo) RevenueByCategory(ctx context.Context) ([]domain.RevenueBucket, error) {
	var rows []domain.RevenueBucket
	err := r.db.SelectContext(ctx, &rows, `SELECT
		asset_category AS key,
		COUNT(*) AS count,
		COALESCE(SUM(asset_cost), 0) AS revenue
	FROM bills
	GROUP BY asset_category
	ORDER BY revenue DESC`)
	if err != nil {
		return nil, fmt.Errorf("billRepo.RevenueByCategory: %w", err)
	}
	return rows, nil
}

func (r *billRepo) RevenueByManufacturer(ctx context.Context) ([]domain.RevenueBucket, error) {
	var rows []domain.RevenueBucket
	err := r.db.SelectContext(ctx, &rows, `SELECT
		manufacturer AS key,
		COUNT(*) AS count,
		COALESCE(SUM(asset_cost), 0) AS revenue
	FROM bills
	GROUP BY manufacturer
	ORDER BY revenue DESC`)
	if err != nil {
		return nil, fmt.Errorf("billRepo.RevenueByManufacturer: %w", err)
	}
	return rows, nil
}

func (r *billRepo) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bills SET status = $1, updated_at = $2
		 WHERE created_at < $3 AND status != $1`,
		domain.BillStatusArchived, time.Now().UTC(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("billRepo.ArchiveOlderThan: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("billRepo.ArchiveOlderThan rows: %w", err)
	}
	return rows, nil
}

func (r *billRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time, status domain.BillStatus) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM bills WHERE created_at < $1 AND status = $2", cutoff, status)
	if err != nil {
		return 0, fmt.Errorf("billRepo.DeleteOlderThan: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("billRepo.DeleteOlderThan rows: %w", err)
	}
	return rows, nil
}
