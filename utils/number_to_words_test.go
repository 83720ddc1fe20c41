package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, ""},
		{7, "Seven"},
		{19, "Nineteen"},
		{40, "Forty"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{720, "Seven Hundred Twenty"},
		{1005, "One Thousand Five"},
		{150000, "One Lakh Fifty Thousand"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{-12, "Minus Twelve"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NumberToWords(tt.in), "n=%d", tt.in)
	}
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Zero Rupees Only"},
		{"720", "Seven Hundred Twenty Rupees Only"},
		{"1000.50", "One Thousand Rupees and Fifty Paise Only"},
		{"0.05", "Five Paise Only"},
		{"-250", "Minus Two Hundred Fifty Rupees Only"},
		{"3.765", "Three Rupees and Seventy Seven Paise Only"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountInWords(decimal.RequireFromString(tt.in)), "amount=%s", tt.in)
	}
}
