package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaxBreakdown is the GST split derived from a bill's asset cost. It is
// stored as a JSONB column and recomputed whenever the cost or category
// changes, never edited directly.
type TaxBreakdown struct {
	Rate           float64 `json:"rate"`
	CGST           float64 `json:"cgst"`
	SGST           float64 `json:"sgst"`
	TaxableValue   float64 `json:"taxableValue"`
	TaxRate        float64 `json:"taxRate"`
	TotalTaxAmount float64 `json:"totalTaxAmount"`
}

// Value implements driver.Valuer for JSONB storage.
func (t TaxBreakdown) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB storage.
func (t *TaxBreakdown) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = TaxBreakdown{}
		return nil
	default:
		return fmt.Errorf("TaxBreakdown.Scan: unsupported type %T", src)
	}
}

// ExtractionResult is the flat field set produced by the text extractor.
// Unmatched fields are empty strings, never absent, so downstream string
// handling stays total.
type ExtractionResult struct {
	CustomerName      string    `json:"customerName"`
	CustomerAddress   string    `json:"customerAddress"`
	Manufacturer      string    `json:"manufacturer"`
	AssetCategory     string    `json:"assetCategory"`
	Model             string    `json:"model"`
	IMEISerialNumber  string    `json:"imeiSerialNumber"`
	AssetCost         float64   `json:"assetCost"`
	Financier         Financier `json:"financier"`
	HDBFinance        bool      `json:"hdbFinance"`
	TVSFinance        bool      `json:"tvsFinance"`
	BajajFinance      bool      `json:"bajajFinance"`
	PoonawallaFinance bool      `json:"poonawallaFinance"`
	OriginalFilePath  string    `json:"originalFilePath,omitempty"`
}

// Bill is the persisted invoice record.
type Bill struct {
	ID                uuid.UUID    `db:"id" json:"id"`
	InvoiceNumber     string       `db:"invoice_number" json:"invoiceNumber"`
	CustomerName      string       `db:"customer_name" json:"customerName"`
	CustomerAddress   string       `db:"customer_address" json:"customerAddress"`
	Manufacturer      string       `db:"manufacturer" json:"manufacturer"`
	AssetCategory     string       `db:"asset_category" json:"assetCategory"`
	Model             string       `db:"model" json:"model"`
	IMEISerialNumber  string       `db:"imei_serial_number" json:"imeiSerialNumber"`
	AssetCost         float64      `db:"asset_cost" json:"assetCost"`
	TaxDetails        TaxBreakdown `db:"tax_details" json:"taxDetails"`
	AmountInWords     string       `db:"amount_in_words" json:"amountInWords"`
	TaxAmountInWords  string       `db:"tax_amount_in_words" json:"taxAmountInWords"`
	HDBFinance        bool         `db:"hdb_finance" json:"hdbFinance"`
	TVSFinance        bool         `db:"tvs_finance" json:"tvsFinance"`
	BajajFinance      bool         `db:"bajaj_finance" json:"bajajFinance"`
	PoonawallaFinance bool         `db:"poonawalla_finance" json:"poonawallaFinance"`
	Status            BillStatus   `db:"status" json:"status"`
	OriginalFilePath  string       `db:"original_file_path" json:"originalFilePath"`
	RenderedDocPath   string       `db:"rendered_doc_path" json:"renderedDocumentPath"`
	RenderedDocType   string       `db:"rendered_doc_type" json:"renderedDocumentType"`
	Notes             string       `db:"notes" json:"notes"`
	CreatedBy         string       `db:"created_by" json:"createdBy"`
	LastModifiedBy    string       `db:"last_modified_by" json:"lastModifiedBy"`
	CreatedAt         time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updatedAt"`
}

// BillFilter narrows bill listings. Name fields match case-insensitively as
// substrings; zero values are ignored.
type BillFilter struct {
	CustomerName  string
	Manufacturer  string
	AssetCategory string
	Status        BillStatus
	DateFrom      *time.Time
	DateTo        *time.Time
}

// BillSummary is the aggregate roll-up over all bills.
type BillSummary struct {
	TotalBills       int     `db:"total_bills" json:"totalBills"`
	TotalRevenue     float64 `db:"total_revenue" json:"totalRevenue"`
	AverageBillValue float64 `db:"average_bill_value" json:"averageBillValue"`
	MinBillValue     float64 `db:"min_bill_value" json:"minBillValue"`
	MaxBillValue     float64 `db:"max_bill_value" json:"maxBillValue"`
}

// MonthlyRevenue is one month's bill count and revenue.
type MonthlyRevenue struct {
	Year    int     `db:"year" json:"year"`
	Month   int     `db:"month" json:"month"`
	Count   int     `db:"count" json:"count"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// RevenueBucket groups bills by a field (category or manufacturer).
type RevenueBucket struct {
	Key     string  `db:"key" json:"key"`
	Count   int     `db:"count" json:"count"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// StorageUsage estimates the disk footprint of the upload and render areas.
type StorageUsage struct {
	UploadsBytes int64 `json:"uploadsBytes"`
	RendersBytes int64 `json:"rendersBytes"`
	TotalBytes   int64 `json:"totalBytes"`
	FileCount    int   `json:"fileCount"`
}
