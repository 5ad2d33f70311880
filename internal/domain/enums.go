package domain

// Financier identifies which lending partner's approval letter produced an
// uploaded document.
type Financier string

const (
	FinancierHDB        Financier = "hdb"
	FinancierIDFC       Financier = "idfc"
	FinancierChola      Financier = "chola"
	FinancierTVS        Financier = "tvs"
	FinancierBajaj      Financier = "bajaj"
	FinancierPoonawalla Financier = "poonawalla"
	FinancierGeneric    Financier = "generic"
)

// BillStatus is a descriptive lifecycle tag. It is set by whichever
// operation last touched the record; no transition table is enforced.
type BillStatus string

const (
	BillStatusDraft     BillStatus = "draft"
	BillStatusGenerated BillStatus = "generated"
	BillStatusPrinted   BillStatus = "printed"
	BillStatusArchived  BillStatus = "archived"
	BillStatusUpdated   BillStatus = "updated"
)

// ValidBillStatuses holds the accepted status tags.
var ValidBillStatuses = map[BillStatus]bool{
	BillStatusDraft:     true,
	BillStatusGenerated: true,
	BillStatusPrinted:   true,
	BillStatusArchived:  true,
	BillStatusUpdated:   true,
}

// Required-field defaults substituted at persistence time. The extractor
// itself never invents these; empty extractor fields stay empty until the
// bill is assembled.
const (
	DefaultCustomerName    = "Unknown Customer"
	DefaultCustomerAddress = "No Address"
	DefaultManufacturer    = "Unknown Manufacturer"
	DefaultAssetCategory   = "Electronics"
	DefaultModel           = "Unknown Model"
)
