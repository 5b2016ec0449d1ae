package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{99999, "₹99,999.00"},
		{100000, "₹1,00,000.00"},
		{1234567.5, "₹12,34,567.50"},
		{12345678.99, "₹1,23,45,678.99"},
		{-4500.25, "-₹4,500.25"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatINR(tc.in), "input %v", tc.in)
	}
}

func TestFormatLakh(t *testing.T) {
	assert.Equal(t, "₹23.5L", FormatLakh(2350000))
	assert.Equal(t, "₹0.1L", FormatLakh(10000))
	assert.Equal(t, "₹100.0L", FormatLakh(10000000))
}
