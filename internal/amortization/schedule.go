package amortization

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peoplehub/loan-engine/internal/domain"
	customError "github.com/peoplehub/loan-engine/pkg/errors"
	"github.com/peoplehub/loan-engine/pkg/utils"
)

// Precision is the currency rounding applied to every installment.
const Precision = 2

// GenerateInput holds the parameters for a fixed-payment schedule.
// InterestRate is the annual percentage rate (12 means 12% p.a.).
type GenerateInput struct {
	Amount         decimal.Decimal
	MonthlyPayment decimal.Decimal
	InterestRate   decimal.Decimal
	StartDate      time.Time
}

// Generate produces the month-by-month amortization schedule for a
// loan, walking the balance down until it reaches exactly zero. The
// final installment's principal is capped at the remaining balance so
// the schedule closes on zero rather than overpaying.
//
// A payment that does not exceed the interest accruing on a positive
// balance can never retire the loan; that case is rejected up front
// with ErrInsufficientPayment instead of looping forever.
func Generate(in GenerateInput) ([]domain.AmortizationEntry, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidLoanInput(customError.ErrInvalidLoanAmount)
	}
	if in.MonthlyPayment.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidLoanInput(customError.ErrInvalidMonthlyPayment)
	}
	if in.StartDate.IsZero() {
		return nil, customError.WrapInvalidLoanInput(customError.ErrInvalidStartDate)
	}

	// Annual percentage rate to monthly fraction: rate / 100 / 12.
	monthlyRate := in.InterestRate.Div(decimal.NewFromInt(1200))

	balance := in.Amount
	var schedule []domain.AmortizationEntry

	for installment := 1; balance.IsPositive(); installment++ {
		interest := balance.Mul(monthlyRate).Round(Precision)

		if in.MonthlyPayment.LessThanOrEqual(interest) {
			return nil, customError.WrapInsufficientPayment(
				in.MonthlyPayment.StringFixed(Precision),
				interest.StringFixed(Precision),
			)
		}

		principal := in.MonthlyPayment.Sub(interest)
		if principal.GreaterThan(balance) {
			principal = balance
		}

		balance = balance.Sub(principal)

		schedule = append(schedule, domain.AmortizationEntry{
			InstallmentNumber: installment,
			DueDate:           utils.InstallmentDueDate(in.StartDate, installment),
			PaymentAmount:     principal.Add(interest),
			PrincipalAmount:   principal,
			InterestAmount:    interest,
			RemainingBalance:  balance,
		})
	}

	return schedule, nil
}

// MapScheduleToInsert projects generated entries into persistable rows
// keyed by loan ID, preserving installment order.
func MapScheduleToInsert(loanID string, entries []domain.AmortizationEntry) []*domain.LoanScheduleRow {
	rows := make([]*domain.LoanScheduleRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &domain.LoanScheduleRow{
			ID:                uuid.New(),
			LoanID:            loanID,
			InstallmentNumber: e.InstallmentNumber,
			DueDate:           e.DueDate,
			PaymentAmount:     e.PaymentAmount,
			PrincipalAmount:   e.PrincipalAmount,
			InterestAmount:    e.InterestAmount,
			RemainingBalance:  e.RemainingBalance,
			Status:            domain.ScheduleStatusPending,
		})
	}
	return rows
}
