package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"finvoice/internal/domain"
)

var billHeaders = []string{
	"Invoice Number", "Date", "Customer Name", "Customer Address",
	"Manufacturer", "Asset Category", "Model", "IMEI / Serial No",
	"Taxable Value", "CGST", "SGST", "Total Tax", "Asset Cost", "Status",
}

// BillsToXLSX writes the bill register to an Excel workbook.
func BillsToXLSX(bills []domain.Bill) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Bills"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx delete default sheet: %w", err)
	}

	for col, header := range billHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i, bill := range bills {
		row := []interface{}{
			bill.InvoiceNumber,
			bill.CreatedAt.Format("02/01/2006"),
			bill.CustomerName,
			bill.CustomerAddress,
			bill.Manufacturer,
			bill.AssetCategory,
			bill.Model,
			bill.IMEISerialNumber,
			bill.TaxDetails.Rate,
			bill.TaxDetails.CGST,
			bill.TaxDetails.SGST,
			bill.TaxDetails.TotalTaxAmount,
			bill.AssetCost,
			string(bill.Status),
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("xlsx cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("xlsx row %d: %w", i+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
