package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"finvoice/internal/domain"
	"finvoice/internal/export"
	"finvoice/internal/extractor"
	"finvoice/internal/money"
	"finvoice/internal/port"
	"finvoice/internal/tax"
)

// idfcNameTag is the financier marker that can leak into extracted IDFC
// customer names. Assembly strips it so already-polluted records cannot
// re-enter through updates.
const idfcNameTag = "[IDFC FIRST BANK]"

// idfcNameMarker identifies an IDFC record by its customer name alone. A
// name carrying it signals label bleed-through in the category and model
// fields, so the extraction truncation rules re-apply at persistence time.
const idfcNameMarker = "IDFC FIRST BANK"

// CreateBillInput is the DTO for assembling a bill from extracted or
// hand-entered fields.
type CreateBillInput struct {
	InvoiceNumber     string  `json:"invoiceNumber" binding:"required"`
	CustomerName      string  `json:"customerName"`
	CustomerAddress   string  `json:"customerAddress"`
	Manufacturer      string  `json:"manufacturer"`
	AssetCategory     string  `json:"assetCategory"`
	Model             string  `json:"model"`
	IMEISerialNumber  string  `json:"imeiSerialNumber"`
	AssetCost         float64 `json:"assetCost" binding:"required"`
	HDBFinance        bool    `json:"hdbFinance"`
	TVSFinance        bool    `json:"tvsFinance"`
	BajajFinance      bool    `json:"bajajFinance"`
	PoonawallaFinance bool    `json:"poonawallaFinance"`
	OriginalFilePath  string  `json:"originalFilePath"`
	Notes             string  `json:"notes"`
	CreatedBy         string  `json:"-"`
}

// UpdateBillInput is the DTO for editing a bill. Nil pointers leave the
// stored value alone.
type UpdateBillInput struct {
	InvoiceNumber     *string  `json:"invoiceNumber"`
	CustomerName      *string  `json:"customerName"`
	CustomerAddress   *string  `json:"customerAddress"`
	Manufacturer      *string  `json:"manufacturer"`
	AssetCategory     *string  `json:"assetCategory"`
	Model             *string  `json:"model"`
	IMEISerialNumber  *string  `json:"imeiSerialNumber"`
	AssetCost         *float64 `json:"assetCost"`
	HDBFinance        *bool    `json:"hdbFinance"`
	TVSFinance        *bool    `json:"tvsFinance"`
	BajajFinance      *bool    `json:"bajajFinance"`
	PoonawallaFinance *bool    `json:"poonawallaFinance"`
	Status            *string  `json:"status"`
	Notes             *string  `json:"notes"`
	ModifiedBy        string   `json:"-"`
}

// BillService defines the invoice record management contract.
type BillService interface {
	Create(ctx context.Context, input *CreateBillInput) (*domain.Bill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, filter domain.BillFilter, offset, limit int) ([]domain.Bill, int, error)
	Search(ctx context.Context, query string, offset, limit int) ([]domain.Bill, int, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateBillInput) (*domain.Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Render(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	GetRenderedDocument(ctx context.Context, id uuid.UUID) (*domain.Bill, []byte, error)
	EmailDeliverable(ctx context.Context, id uuid.UUID, to string) error
	ExportXLSX(ctx context.Context, filter domain.BillFilter) ([]byte, error)

	Summary(ctx context.Context) (*domain.BillSummary, error)
	MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error)
	RevenueByCategory(ctx context.Context) ([]domain.RevenueBucket, error)
	RevenueByManufacturer(ctx context.Context) ([]domain.RevenueBucket, error)

	FixIDFCNames(ctx context.Context) (int, error)
	ArchiveOld(ctx context.Context, days int) (int64, error)
	CleanupOld(ctx context.Context, days int) (int64, error)
}

type billService struct {
	repo          port.BillRepository
	storage       port.ObjectStorage
	pdfRenderer   port.DocumentRenderer
	htmlRenderer  port.DocumentRenderer
	email         port.EmailSender
	renderTimeout time.Duration
	rendersDir    string
}

// NewBillService creates the bill management service. pdfRenderer may fail
// at render time; htmlRenderer is the fallback and must not.
func NewBillService(
	repo port.BillRepository,
	storage port.ObjectStorage,
	pdfRenderer port.DocumentRenderer,
	htmlRenderer port.DocumentRenderer,
	email port.EmailSender,
	renderTimeout time.Duration,
	rendersDir string,
) BillService {
	return &billService{
		repo:          repo,
		storage:       storage,
		pdfRenderer:   pdfRenderer,
		htmlRenderer:  htmlRenderer,
		email:         email,
		renderTimeout: renderTimeout,
		rendersDir:    rendersDir,
	}
}

func (s *billService) Create(ctx context.Context, input *CreateBillInput) (*domain.Bill, error) {
	invoiceNumber := strings.TrimSpace(input.InvoiceNumber)
	if invoiceNumber == "" {
		return nil, domain.NewValidationError("invoiceNumber", "invoice number is required")
	}
	if input.AssetCost <= 0 {
		return nil, domain.NewValidationError("assetCost", "asset cost must be positive")
	}

	// Pre-check for a friendlier error; the unique index remains the
	// authoritative guard against races.
	if _, err := s.repo.GetByInvoiceNumber(ctx, invoiceNumber); err == nil {
		return nil, domain.ErrDuplicateInvoiceNumber
	} else if !errors.Is(err, domain.ErrBillNotFound) {
		return nil, err
	}

	bill := &domain.Bill{
		ID:                uuid.New(),
		InvoiceNumber:     invoiceNumber,
		CustomerName:      defaulted(input.CustomerName, domain.DefaultCustomerName),
		CustomerAddress:   defaulted(input.CustomerAddress, domain.DefaultCustomerAddress),
		Manufacturer:      defaulted(input.Manufacturer, domain.DefaultManufacturer),
		AssetCategory:     defaulted(input.AssetCategory, domain.DefaultAssetCategory),
		Model:             defaulted(input.Model, domain.DefaultModel),
		IMEISerialNumber:  strings.TrimSpace(input.IMEISerialNumber),
		AssetCost:         input.AssetCost,
		HDBFinance:        input.HDBFinance,
		TVSFinance:        input.TVSFinance,
		BajajFinance:      input.BajajFinance,
		PoonawallaFinance: input.PoonawallaFinance,
		Status:            domain.BillStatusDraft,
		OriginalFilePath:  input.OriginalFilePath,
		Notes:             input.Notes,
		CreatedBy:         input.CreatedBy,
		LastModifiedBy:    input.CreatedBy,
	}
	// The IDFC marker in the incoming name means the record carries
	// extractor bleed-through; re-apply the truncation rules before
	// stripping the tag.
	if strings.Contains(input.CustomerName, idfcNameMarker) {
		bill.AssetCategory = extractor.TruncateCategory(bill.AssetCategory)
		bill.Model = extractor.TruncateModel(bill.Model)
	}
	bill.CustomerName = stripIDFCTag(bill.CustomerName)

	s.recompute(bill)

	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *billService) List(ctx context.Context, filter domain.BillFilter, offset, limit int) ([]domain.Bill, int, error) {
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *billService) Search(ctx context.Context, query string, offset, limit int) ([]domain.Bill, int, error) {
	return s.repo.Search(ctx, query, offset, limit)
}

func (s *billService) Update(ctx context.Context, id uuid.UUID, input *UpdateBillInput) (*domain.Bill, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	costChanged := false

	if input.InvoiceNumber != nil {
		next := strings.TrimSpace(*input.InvoiceNumber)
		if next == "" {
			return nil, domain.NewValidationError("invoiceNumber", "invoice number cannot be empty")
		}
		if next != bill.InvoiceNumber {
			if _, err := s.repo.GetByInvoiceNumber(ctx, next); err == nil {
				return nil, domain.ErrDuplicateInvoiceNumber
			} else if !errors.Is(err, domain.ErrBillNotFound) {
				return nil, err
			}
			bill.InvoiceNumber = next
		}
	}
	if input.CustomerName != nil {
		bill.CustomerName = stripIDFCTag(defaulted(*input.CustomerName, domain.DefaultCustomerName))
	}
	if input.CustomerAddress != nil {
		bill.CustomerAddress = defaulted(*input.CustomerAddress, domain.DefaultCustomerAddress)
	}
	if input.Manufacturer != nil {
		bill.Manufacturer = defaulted(*input.Manufacturer, domain.DefaultManufacturer)
	}
	if input.AssetCategory != nil {
		next := defaulted(*input.AssetCategory, domain.DefaultAssetCategory)
		if next != bill.AssetCategory {
			bill.AssetCategory = next
			costChanged = true
		}
	}
	if input.Model != nil {
		bill.Model = defaulted(*input.Model, domain.DefaultModel)
	}
	if input.IMEISerialNumber != nil {
		bill.IMEISerialNumber = strings.TrimSpace(*input.IMEISerialNumber)
	}
	if input.AssetCost != nil {
		if *input.AssetCost <= 0 {
			return nil, domain.NewValidationError("assetCost", "asset cost must be positive")
		}
		if *input.AssetCost != bill.AssetCost {
			bill.AssetCost = *input.AssetCost
			costChanged = true
		}
	}
	if input.HDBFinance != nil {
		bill.HDBFinance = *input.HDBFinance
	}
	if input.TVSFinance != nil {
		bill.TVSFinance = *input.TVSFinance
	}
	if input.BajajFinance != nil {
		bill.BajajFinance = *input.BajajFinance
	}
	if input.PoonawallaFinance != nil {
		bill.PoonawallaFinance = *input.PoonawallaFinance
	}
	// Same bleed-through repair as Create: an incoming name with the IDFC
	// marker re-triggers the truncation rules on whatever is about to be
	// stored.
	if input.CustomerName != nil && strings.Contains(*input.CustomerName, idfcNameMarker) {
		if next := extractor.TruncateCategory(bill.AssetCategory); next != bill.AssetCategory {
			bill.AssetCategory = next
			costChanged = true
		}
		bill.Model = extractor.TruncateModel(bill.Model)
	}
	if input.Status != nil {
		next := domain.BillStatus(*input.Status)
		if !domain.ValidBillStatuses[next] {
			return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", *input.Status))
		}
		bill.Status = next
	} else {
		bill.Status = domain.BillStatusUpdated
	}
	if input.Notes != nil {
		bill.Notes = *input.Notes
	}
	bill.LastModifiedBy = input.ModifiedBy

	// Derived fields track the cost; a stale rendered document would show
	// the old totals, so invalidate it.
	if costChanged {
		s.recompute(bill)
		if bill.RenderedDocPath != "" {
			if err := s.storage.Delete(ctx, bill.RenderedDocPath); err != nil {
				log.Printf("billService.Update: removing stale render %s: %v", bill.RenderedDocPath, err)
			}
			bill.RenderedDocPath = ""
			bill.RenderedDocType = ""
		}
	}

	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) Delete(ctx context.Context, id uuid.UUID) error {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// Best-effort file cleanup after the record is gone.
	for _, key := range []string{bill.OriginalFilePath, bill.RenderedDocPath} {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Printf("billService.Delete: removing %s: %v", key, err)
		}
	}
	return nil
}

func (s *billService) Render(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	renderCtx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	out, err := s.pdfRenderer.Render(renderCtx, bill)
	if err != nil {
		log.Printf("billService.Render: pdf failed for %s, falling back to html: %v", bill.InvoiceNumber, err)
		out, err = s.htmlRenderer.Render(ctx, bill)
		if err != nil {
			return nil, domain.ErrRenderFailed
		}
	}

	key := fmt.Sprintf("%s/%s-%d.%s", s.rendersDir, bill.InvoiceNumber, time.Now().Unix(), out.Ext)
	if _, err := s.storage.Save(ctx, port.SaveInput{
		Key:         key,
		Body:        bytes.NewReader(out.Bytes),
		ContentType: out.MimeType,
		Size:        int64(len(out.Bytes)),
	}); err != nil {
		return nil, fmt.Errorf("billService.Render save: %w", err)
	}

	if bill.RenderedDocPath != "" && bill.RenderedDocPath != key {
		if err := s.storage.Delete(ctx, bill.RenderedDocPath); err != nil {
			log.Printf("billService.Render: removing old render %s: %v", bill.RenderedDocPath, err)
		}
	}

	bill.RenderedDocPath = key
	bill.RenderedDocType = out.Ext
	bill.Status = domain.BillStatusGenerated
	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) GetRenderedDocument(ctx context.Context, id uuid.UUID) (*domain.Bill, []byte, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if bill.RenderedDocPath == "" {
		return nil, nil, domain.ErrNoRenderedDocument
	}
	data, err := s.storage.Read(ctx, bill.RenderedDocPath)
	if err != nil {
		return nil, nil, err
	}
	return bill, data, nil
}

func (s *billService) EmailDeliverable(ctx context.Context, id uuid.UUID, to string) error {
	bill, data, err := s.GetRenderedDocument(ctx, id)
	if err != nil {
		return err
	}
	mimeType := "application/pdf"
	if bill.RenderedDocType == "html" {
		mimeType = "text/html"
	}
	msg := port.DeliverableEmail{
		To:      to,
		Subject: fmt.Sprintf("Tax Invoice %s", bill.InvoiceNumber),
		Body: fmt.Sprintf(
			"Dear %s,\n\nPlease find attached tax invoice %s for %s.\n\nRegards",
			bill.CustomerName, bill.InvoiceNumber, money.FormatINR(bill.AssetCost)),
		AttachmentKey: bill.RenderedDocPath,
		Attachment:    data,
		MimeType:      mimeType,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("billService.EmailDeliverable: %w", err)
	}
	return nil
}

func (s *billService) ExportXLSX(ctx context.Context, filter domain.BillFilter) ([]byte, error) {
	// Exports are unbounded; page through the repository in chunks.
	const pageSize = 500
	var all []domain.Bill
	for offset := 0; ; offset += pageSize {
		page, total, err := s.repo.List(ctx, filter, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if offset+pageSize >= total || len(page) == 0 {
			break
		}
	}
	return export.BillsToXLSX(all)
}

func (s *billService) Summary(ctx context.Context) (*domain.BillSummary, error) {
	return s.repo.Summary(ctx)
}

func (s *billService) MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	return s.repo.MonthlyRevenue(ctx, year)
}

func (s *billService) RevenueByCategory(ctx context.Context) ([]domain.RevenueBucket, error) {
	return s.repo.RevenueByCategory(ctx)
}

func (s *billService) RevenueByManufacturer(ctx context.Context) ([]domain.RevenueBucket, error) {
	return s.repo.RevenueByManufacturer(ctx)
}

// FixIDFCNames repairs IDFC bills persisted before intake cleanup: it strips
// the leaked financier tag from the customer name and re-applies the
// truncation rules to category and model fields still carrying label
// bleed-through.
func (s *billService) FixIDFCNames(ctx context.Context) (int, error) {
	bills, err := s.repo.ListByFinancierTag(ctx, idfcNameTag)
	if err != nil {
		return 0, err
	}
	fixed := 0
	for i := range bills {
		bill := &bills[i]
		changed := false
		if clean := stripIDFCTag(bill.CustomerName); clean != bill.CustomerName {
			bill.CustomerName = clean
			changed = true
		}
		if next := extractor.TruncateCategory(bill.AssetCategory); next != bill.AssetCategory {
			bill.AssetCategory = next
			changed = true
		}
		if next := extractor.TruncateModel(bill.Model); next != bill.Model {
			bill.Model = next
			changed = true
		}
		if !changed {
			continue
		}
		bill.LastModifiedBy = "system:fix-idfc"
		if err := s.repo.Update(ctx, bill); err != nil {
			return fixed, fmt.Errorf("billService.FixIDFCNames bill %s: %w", bill.ID, err)
		}
		fixed++
	}
	return fixed, nil
}

func (s *billService) ArchiveOld(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, domain.NewValidationError("days", "retention days must be positive")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.ArchiveOlderThan(ctx, cutoff)
}

func (s *billService) CleanupOld(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, domain.NewValidationError("days", "retention days must be positive")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.DeleteOlderThan(ctx, cutoff, domain.BillStatusArchived)
}

// recompute refreshes all cost-derived fields. Runs before every persist
// that touches the cost so stored derived values never drift.
func (s *billService) recompute(bill *domain.Bill) {
	bill.TaxDetails = tax.Compute(bill.AssetCost, bill.AssetCategory)
	bill.AmountInWords = money.ToWords(bill.AssetCost)
	bill.TaxAmountInWords = money.ToWords(bill.TaxDetails.TotalTaxAmount)
}

func defaulted(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func stripIDFCTag(name string) string {
	if idx := strings.Index(name, idfcNameTag); idx >= 0 {
		return strings.TrimSpace(name[:idx])
	}
	return name
}
