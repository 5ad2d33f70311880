package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finvoice/internal/domain"
	"finvoice/internal/extractor"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Financier
	}{
		{"hdb", "Delivery order from HDB FINANCIAL SERVICES LTD", domain.FinancierHDB},
		{"idfc", "Approval letter issued by IDFC FIRST Bank to the dealer", domain.FinancierIDFC},
		{"chola upper", "CHOLA consumer durable loan sanction", domain.FinancierChola},
		{"chola mixed", "Cholamandalam Investment and Finance", domain.FinancierChola},
		{"tvs folded", "approved by tvs credit services limited", domain.FinancierTVS},
		{"bajaj", "Bajaj Finserv EMI card approval", domain.FinancierBajaj},
		{"poonawalla", "POONAWALLA FINCORP sanction letter", domain.FinancierPoonawalla},
		{"unknown", "Some unrelated purchase note", domain.FinancierGeneric},
		{"empty", "", domain.FinancierGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractor.Classify(tc.text))
		})
	}
}

const hdbLetter = `HDB FINANCIAL SERVICES LTD
Delivery Order
This order is issued to our Customer JOHN DOE . Pursuant to the loan approval noted below.
Product Brand : Samsung
Product Model : Galaxy M34 5G Scheme Code & EMI Details follow.
A. Product Cost 18,999.00
Serial Number 356789012345678 Model Number SM-M346B
Customer Address : 12 MG Road Bengaluru 560001`

func TestExtract_HDB(t *testing.T) {
	res := extractor.Extract(hdbLetter)

	assert.Equal(t, domain.FinancierHDB, res.Financier)
	assert.True(t, res.HDBFinance)
	assert.Equal(t, "JOHN DOE", res.CustomerName)
	assert.Equal(t, "Samsung", res.Manufacturer)
	assert.Equal(t, "Electronics", res.AssetCategory)
	assert.Equal(t, "Galaxy M34 5G", res.Model)
	assert.Equal(t, "356789012345678", res.IMEISerialNumber)
	assert.Equal(t, 18999.0, res.AssetCost)
	assert.Equal(t, "12 MG Road Bengaluru 560001", res.CustomerAddress)
}

const idfcLetter = `IDFC FIRST Bank
Dear Partner, The loan application of PRIYA SHARMA has been approved for purchase of the below asset.
Asset Category: HOME APPLIANCE D Model Number: WashMaster 9000 Serial Number: SN12345 Cost Of Product: 45,999
The required formalities with the customer have been completed and hence we request you to collect the down payment and only deliver the product at the following address post device validation is completed and final DA is received.
Customer Address: 4B Lake View Apartments Pune 411001
Thanking you`

func TestExtract_IDFC(t *testing.T) {
	res := extractor.Extract(idfcLetter)

	assert.Equal(t, domain.FinancierIDFC, res.Financier)
	assert.False(t, res.HDBFinance)
	// Intake keeps the financier tag; assembly strips it later.
	assert.Equal(t, "PRIYA SHARMA [IDFC FIRST BANK]", res.CustomerName)
	// The "D" bleeding in from the "Model Number" label must not survive.
	assert.Equal(t, "HOME APPLIANCE", res.AssetCategory)
	assert.Equal(t, "WashMaster 9000", res.Model)
	assert.Equal(t, "SN12345", res.IMEISerialNumber)
	assert.Equal(t, 45999.0, res.AssetCost)
	assert.Equal(t, "4B Lake View Apartments Pune 411001", res.CustomerAddress)
	assert.Empty(t, res.Manufacturer)
}

const genericLetter = `Purchase Approval Note
Customer Name: Ravi Kumar Customer Address: Address: 7 Nehru Street Chennai 600001
Manufacturer: LG
Asset Category: Washing Machine Model: T70SPSF2Z
Serial Number: 987654321
A. Asset Cost : 32,499.00`

func TestExtract_Generic(t *testing.T) {
	res := extractor.Extract(genericLetter)

	assert.Equal(t, domain.FinancierGeneric, res.Financier)
	assert.Equal(t, "Ravi Kumar", res.CustomerName)
	assert.Equal(t, "LG", res.Manufacturer)
	assert.Equal(t, "7 Nehru Street Chennai 600001", res.CustomerAddress)
	assert.Equal(t, "Washing Machine", res.AssetCategory)
	assert.Equal(t, "T70SPSF2Z", res.Model)
	assert.Equal(t, "987654321", res.IMEISerialNumber)
	assert.Equal(t, 32499.0, res.AssetCost)
}

func TestExtract_UnmatchedTextYieldsEmptyFields(t *testing.T) {
	res := extractor.Extract("completely unrelated text with no labels")

	assert.Equal(t, domain.FinancierGeneric, res.Financier)
	assert.Empty(t, res.CustomerName)
	assert.Empty(t, res.CustomerAddress)
	assert.Empty(t, res.Manufacturer)
	assert.Empty(t, res.AssetCategory)
	assert.Empty(t, res.Model)
	assert.Empty(t, res.IMEISerialNumber)
	assert.Zero(t, res.AssetCost)
	assert.False(t, res.HDBFinance)
	assert.False(t, res.TVSFinance)
	assert.False(t, res.BajajFinance)
	assert.False(t, res.PoonawallaFinance)
}

const tvsLetter = `TVS CREDIT SERVICES LIMITED
Delivery Advice
Customer Name: Anil Mehta
Product Category: Two Wheeler Accessories Product Make: TVS
Product Model: Jupiter 125 Smart Invoice Value 92,500
IMEI / Serial No: MD626BF1234
Delivery Address: 18 Station Road Salem 636001
Thanking you`

func TestExtract_TVS(t *testing.T) {
	res := extractor.Extract(tvsLetter)

	assert.Equal(t, domain.FinancierTVS, res.Financier)
	assert.True(t, res.TVSFinance)
	assert.Equal(t, "Anil Mehta", res.CustomerName)
	assert.Equal(t, 92500.0, res.AssetCost)
	assert.Equal(t, "MD626BF1234", res.IMEISerialNumber)
	assert.Equal(t, "18 Station Road Salem 636001", res.CustomerAddress)
}

func TestTruncateCategory(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"label bleed-through", "HOME APPLIANCE XD Model Number", "HOME APPLIANCE"},
		{"within cap", "Washing Machine", "Washing Machine"},
		{"overlong three words", "Kitchen And Home Appliances Combo", "Kitchen And"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractor.TruncateCategory(tc.in))
		})
	}
}

func TestTruncateModel(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"label bleed-through", "WashMaster 9000 Front Load Serial Number", "WashMaster 9000 Front"},
		{"within cap", "Galaxy M34 5G", "Galaxy M34 5G"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractor.TruncateModel(tc.in))
		})
	}
}

func TestExtract_FinancierFlagsAreExclusive(t *testing.T) {
	for _, text := range []string{hdbLetter, idfcLetter, tvsLetter, genericLetter} {
		res := extractor.Extract(text)
		flags := 0
		for _, f := range []bool{res.HDBFinance, res.TVSFinance, res.BajajFinance, res.PoonawallaFinance} {
			if f {
				flags++
			}
		}
		assert.LessOrEqual(t, flags, 1, "financier %s", res.Financier)
	}
}
