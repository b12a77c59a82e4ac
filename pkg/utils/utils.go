package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToNumber normalizes a numeric-like value into a finite float64.
// Payroll imports and form payloads deliver amounts as float64, int,
// json.Number or string depending on the upstream encoder, and the
// calculators downstream must never blow up on a bad cell. Anything
// that does not parse to a finite number comes back as 0.
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(n)
	case float32:
		return finiteOrZero(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	case decimal.Decimal:
		return finiteOrZero(n.InexactFloat64())
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	default:
		return 0
	}
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToDecimal is the decimal-typed counterpart of ToNumber for monetary
// arithmetic.
func ToDecimal(v any) decimal.Decimal {
	if d, ok := v.(decimal.Decimal); ok {
		return d
	}
	return decimal.NewFromFloat(ToNumber(v))
}

// IsNumeric reports whether ToNumber would see an actual number, as
// opposed to falling back to zero. Needed to tell a genuine 0 amount
// apart from garbage input.
func IsNumeric(v any) bool {
	switch n := v.(type) {
	case nil:
		return false
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return IsNumeric(float64(n))
	case int, int32, int64, uint, uint64, decimal.Decimal:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return false
		}
		f, err := strconv.ParseFloat(s, 64)
		return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

// InstallmentDueDate calculates the due date for a 1-based monthly
// installment. Installment 1 is due one month after the loan start.
func InstallmentDueDate(loanStartDate time.Time, installmentNumber int) time.Time {
	return loanStartDate.AddDate(0, installmentNumber, 0)
}

// IsDateOverdue checks if a date is overdue (past the reference date)
func IsDateOverdue(dueDate time.Time, now time.Time) bool {
	return now.After(dueDate)
}

// PeriodsOverlap reports inclusive interval overlap between
// [aStart, aEnd] and [bStart, bEnd]. Same-day boundaries count.
func PeriodsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
