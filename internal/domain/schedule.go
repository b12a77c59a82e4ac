package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmortizationEntry is one period's payment breakdown. Entries are
// recomputed wholesale for a loan, never patched individually.
type AmortizationEntry struct {
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	PaymentAmount     decimal.Decimal `json:"payment_amount"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
}

// Schedule row status constants
const (
	ScheduleStatusPending = "pending"
	ScheduleStatusPaid    = "paid"
	ScheduleStatusOverdue = "overdue"
)

// LoanScheduleRow is the persisted form of an AmortizationEntry,
// keyed by loan ID.
type LoanScheduleRow struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	LoanID            string          `json:"loan_id" db:"loan_id"`
	InstallmentNumber int             `json:"installment_number" db:"installment_number"`
	DueDate           time.Time       `json:"due_date" db:"due_date"`
	PaymentAmount     decimal.Decimal `json:"payment_amount" db:"payment_amount"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance" db:"remaining_balance"`
	Status            string          `json:"status" db:"status"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// Entry converts a persisted row back to its in-memory form.
func (r *LoanScheduleRow) Entry() AmortizationEntry {
	return AmortizationEntry{
		InstallmentNumber: r.InstallmentNumber,
		DueDate:           r.DueDate,
		PaymentAmount:     r.PaymentAmount,
		PrincipalAmount:   r.PrincipalAmount,
		InterestAmount:    r.InterestAmount,
		RemainingBalance:  r.RemainingBalance,
	}
}

type ScheduleResponse struct {
	LoanID   string              `json:"loan_id"`
	Schedule []AmortizationEntry `json:"schedule"`
}
