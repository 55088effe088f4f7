package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already normalized",
			input:    "AAPL",
			expected: "AAPL",
		},
		{
			name:     "lowercase",
			input:    "aapl",
			expected: "AAPL",
		},
		{
			name:     "mixed case with whitespace",
			input:    "  mSfT ",
			expected: "MSFT",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTicker(tt.input))
		})
	}
}

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single symbol",
			input:    "AAPL",
			expected: []string{"AAPL"},
		},
		{
			name:     "two symbols with spacing",
			input:    "aapl, msft",
			expected: []string{"AAPL", "MSFT"},
		},
		{
			name:     "trailing comma",
			input:    "AAPL,MSFT,",
			expected: []string{"AAPL", "MSFT"},
		},
		{
			name:     "only commas and spaces",
			input:    " , , ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSymbols(tt.input))
		})
	}
}
