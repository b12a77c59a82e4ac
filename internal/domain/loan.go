package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusPending   = "pending"
	LoanStatusApproved  = "approved"
	LoanStatusActive    = "active"
	LoanStatusCompleted = "completed"
	LoanStatusRejected  = "rejected"
)

// Loan represents an employee salary advance under repayment
type Loan struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	LoanID           string          `json:"loan_id" db:"loan_id"`
	EmployeeID       string          `json:"employee_id" db:"employee_id"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	MonthlyDeduction decimal.Decimal `json:"monthly_deduction" db:"monthly_deduction"`
	InterestRate     decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	StartDate        time.Time       `json:"start_date" db:"start_date"`
	EndDate          *time.Time      `json:"end_date" db:"end_date"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// IsTerminal reports whether the loan reached a state in which its
// schedule is immutable except by explicit correction.
func (l *Loan) IsTerminal() bool {
	return l.Status == LoanStatusCompleted || l.Status == LoanStatusRejected
}

// Employee is the payroll-side view of an employee backing a loan or
// a payroll entry. Salary is the undiscounted full salary.
type Employee struct {
	ID        string          `json:"id" db:"id"`
	FullName  string          `json:"full_name" db:"full_name"`
	Salary    decimal.Decimal `json:"salary" db:"salary"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	LoanID           string          `json:"loan_id" validate:"required"`
	EmployeeID       string          `json:"employee_id" validate:"required"`
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	MonthlyDeduction decimal.Decimal `json:"monthly_deduction" validate:"required"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	StartDate        time.Time       `json:"start_date" validate:"required"`
}

type CreateLoanResponse struct {
	Loan     *Loan               `json:"loan"`
	Schedule []AmortizationEntry `json:"schedule"`
}

// ComplianceResult is surfaced verbatim through the API; client code
// and tests key off the exact violation/warning strings.
type ComplianceResult struct {
	IsCompliant bool     `json:"isCompliant"`
	Violations  []string `json:"violations"`
	Warnings    []string `json:"warnings"`
}

type ComplianceResponse struct {
	LoanID string `json:"loan_id"`
	ComplianceResult
}
