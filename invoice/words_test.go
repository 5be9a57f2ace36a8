package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount int
		want   string
	}{
		{amount: 0, want: "Zero"},
		{amount: 1, want: "One Rupees Only"},
		{amount: 14, want: "Fourteen Rupees Only"},
		{amount: 50, want: "Fifty Rupees Only"},
		{amount: 99, want: "Ninety Nine Rupees Only"},
		{amount: 118, want: "One Hundred Eighteen Rupees Only"},
		{amount: 700, want: "Seven Hundred Rupees Only"},
		{amount: 1500, want: "One Thousand Five Hundred Rupees Only"},
		{amount: 2000, want: "Two Thousand Rupees Only"},
		{amount: 99999, want: "Ninety Nine Thousand Nine Hundred Ninety Nine Rupees Only"},
		{amount: 100000, want: "One Lakh Rupees Only"},
		{amount: 203040, want: "Two Lakh Three Thousand Forty Rupees Only"},
		{amount: 1100000, want: "Eleven Lakh Rupees Only"},
		{amount: 10000000, want: "One Crore Rupees Only"},
		{amount: 25000000, want: "Two Crore Fifty Lakh Rupees Only"},
		{amount: 123456789, want: "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Rupees Only"},
		{amount: -50, want: "Negative Fifty Rupees Only"},
		{amount: -100000, want: "Negative One Lakh Rupees Only"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountInWords(tt.amount), "amount %d", tt.amount)
	}
}

// Trailing zero groups must vanish entirely, never render as "Zero Thousand".
func TestAmountInWords_NoSpuriousZeroGroups(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Five Lakh Rupees Only", AmountInWords(500000))
	assert.Equal(t, "Five Lakh Six Rupees Only", AmountInWords(500006))
	assert.Equal(t, "Nine Thousand One Rupees Only", AmountInWords(9001))
}

// Amounts with a crore group of 100 or more must still render, not index
// past the units table.
func TestAmountInWords_LargeAmountsDoNotPanic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Twenty Crore Rupees Only", AmountInWords(200000000))
	assert.Equal(t, "Two Hundred Crore Rupees Only", AmountInWords(2000000000))
	assert.Equal(t, "Twenty Five Lakh Crore Rupees Only", AmountInWords(25000000000000))
	assert.NotPanics(t, func() { AmountInWords(9123456789012345678) })
}
