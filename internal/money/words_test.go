package money_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"finvoice/internal/money"
)

func TestToWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{18, "Eighteen Rupees Only"},
		{100, "One Hundred Rupees Only"},
		{105, "One Hundred And Five Rupees Only"},
		{999, "Nine Hundred And Ninety Nine Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{34000, "Thirty Four Thousands Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{10000000, "One Crore Rupees Only"},
		{0.5, "Fifty Paise Only"},
		{1525.42, "One Thousand Five Hundred And Twenty Five Rupees And Forty Two Paise"},
		{1234567.89, "Twelve Lakhs Thirty Four Thousands Five Hundred And Sixty Seven Rupees And Eighty Nine Paise"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, money.ToWords(tc.amount), "amount %v", tc.amount)
	}
}

func TestToWords_InvalidInput(t *testing.T) {
	assert.Empty(t, money.ToWords(-1))
	assert.Empty(t, money.ToWords(math.NaN()))
	assert.Empty(t, money.ToWords(math.Inf(1)))
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{100, "100"},
		{1000, "1,000"},
		{99999, "99,999"},
		{100000, "1,00,000"},
		{1234567.89, "12,34,567.89"},
		{10000000, "1,00,00,000"},
		{-4500.5, "-4,500.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, money.FormatINR(tc.amount), "amount %v", tc.amount)
	}
}
