package utils

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{
			name:     "plain float",
			input:    float64(12.5),
			expected: 12.5,
		},
		{
			name:     "integer",
			input:    42,
			expected: 42,
		},
		{
			name:     "numeric string",
			input:    "150.75",
			expected: 150.75,
		},
		{
			name:     "numeric string with whitespace",
			input:    "  50 ",
			expected: 50,
		},
		{
			name:     "json number",
			input:    json.Number("99.9"),
			expected: 99.9,
		},
		{
			name:     "decimal value",
			input:    decimal.NewFromInt(200),
			expected: 200,
		},
		{
			name:     "nil",
			input:    nil,
			expected: 0,
		},
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "non-numeric string",
			input:    "not-a-number",
			expected: 0,
		},
		{
			name:     "NaN",
			input:    math.NaN(),
			expected: 0,
		},
		{
			name:     "positive infinity",
			input:    math.Inf(1),
			expected: 0,
		},
		{
			name:     "unsupported type",
			input:    []string{"x"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToNumber(tt.input))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("0"))
	assert.True(t, IsNumeric(0))
	assert.True(t, IsNumeric(json.Number("3")))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("abc"))
	assert.False(t, IsNumeric(nil))
	assert.False(t, IsNumeric(math.NaN()))
}

func TestInstallmentDueDate(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), InstallmentDueDate(start, 1))
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), InstallmentDueDate(start, 6))
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), InstallmentDueDate(start, 12))
}

func TestPeriodsOverlap(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "identical intervals",
			aStart: day(1), aEnd: day(30),
			bStart: day(1), bEnd: day(30),
			expected: true,
		},
		{
			name:   "touching boundary counts",
			aStart: day(1), aEnd: day(15),
			bStart: day(15), bEnd: day(30),
			expected: true,
		},
		{
			name:   "disjoint",
			aStart: day(1), aEnd: day(10),
			bStart: day(11), bEnd: day(20),
			expected: false,
		},
		{
			name:   "contained",
			aStart: day(5), aEnd: day(10),
			bStart: day(1), bEnd: day(30),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PeriodsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestIsDateOverdue(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}
	now := day(15)

	assert.True(t, IsDateOverdue(day(10), now))
	assert.False(t, IsDateOverdue(day(15), now), "due today is not yet overdue")
	assert.False(t, IsDateOverdue(day(20), now))
}
