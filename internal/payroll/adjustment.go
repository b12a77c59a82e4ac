package payroll

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/peoplehub/loan-engine/internal/domain"
	"github.com/peoplehub/loan-engine/pkg/utils"
)

// CalculateWorkingDaysAdjustment computes the signed pay delta
// attributable to an employee working fewer or more days than the
// standard period length.
//
// The undiscounted full salary comes from the backing employee record
// when it was fetched, otherwise the entry's base salary stands in
// for it (which makes the difference zero). Sign convention:
//
//	actual < standard  ->  -|full - base|  (pay reduced)
//	actual > standard  ->  +|full - base|  (extra days worked)
//	equal or unknown   ->   full - base unmodified
func CalculateWorkingDaysAdjustment(entry domain.PayrollEntry) decimal.Decimal {
	baseSalary := utils.ToDecimal(entry.BaseSalary)

	fullSalary := baseSalary
	if entry.Employee != nil {
		fullSalary = utils.ToDecimal(entry.Employee.Salary)
	}

	difference := fullSalary.Sub(baseSalary)
	if difference.IsZero() {
		return decimal.Zero
	}

	if entry.ActualWorkingDays != nil && entry.WorkingDays != nil {
		switch {
		case *entry.ActualWorkingDays < *entry.WorkingDays:
			return difference.Abs().Neg()
		case *entry.ActualWorkingDays > *entry.WorkingDays:
			return difference.Abs()
		}
	}

	return difference
}

// SummarizeAllowances aggregates an entry's allowance map for payslip
// and export rendering. Zero and non-numeric amounts are dropped; the
// surviving entries keep the map's insertion order. A nil map yields
// an empty summary.
func SummarizeAllowances(allowances *domain.AllowanceMap) domain.AllowanceSummary {
	summary := domain.AllowanceSummary{
		Total:   decimal.Zero,
		Entries: []domain.AllowanceItem{},
	}
	if allowances == nil {
		return summary
	}

	for _, key := range allowances.Keys() {
		raw, _ := allowances.Get(key)
		if !utils.IsNumeric(raw) {
			continue
		}
		amount := utils.ToDecimal(raw)
		if amount.IsZero() {
			continue
		}

		summary.Entries = append(summary.Entries, domain.AllowanceItem{
			Key:    key,
			Label:  AllowanceLabel(key),
			Amount: amount,
		})
		summary.Total = summary.Total.Add(amount)
	}

	return summary
}

// AllowanceLabel formats a snake_case or camelCase allowance key into
// a human label, appending "Allowance" unless the key already names
// one: "travel_bonus" -> "Travel Bonus Allowance".
func AllowanceLabel(key string) string {
	words := splitWords(key)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	label := strings.Join(words, " ")
	if label == "" {
		label = key
	}
	if !strings.Contains(label, "Allowance") {
		label += " Allowance"
	}
	return label
}

func splitWords(key string) []string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-' || r == ' ':
			b.WriteByte(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return w
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
