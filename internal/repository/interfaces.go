package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peoplehub/loan-engine/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// CreateWithSchedule creates a loan together with its schedule rows
	// in one transaction; neither survives without the other
	CreateWithSchedule(ctx context.Context, loan *domain.Loan, rows []*domain.LoanScheduleRow) error

	// GetByLoanID retrieves a loan by its loan ID
	GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error)

	// GetActiveByEmployee retrieves an employee's loans currently under deduction
	GetActiveByEmployee(ctx context.Context, employeeID string) ([]*domain.Loan, error)

	// UpdateStatus updates a loan's status
	UpdateStatus(ctx context.Context, loanID string, status string) error

	// ReplaceSchedule deletes and re-inserts a loan's schedule in one transaction
	ReplaceSchedule(ctx context.Context, loanID string, rows []*domain.LoanScheduleRow) error

	// GetScheduleByLoanID retrieves the persisted schedule by loan ID
	GetScheduleByLoanID(ctx context.Context, loanID string) ([]*domain.LoanScheduleRow, error)

	// GetPendingSchedulesDueBy retrieves pending schedule rows whose due
	// date falls on or before the reference date
	GetPendingSchedulesDueBy(ctx context.Context, asOf time.Time) ([]*domain.LoanScheduleRow, error)

	// MarkSchedulesOverdue flips the given schedule rows to overdue status
	MarkSchedulesOverdue(ctx context.Context, ids []uuid.UUID) error

	// GetApprovalStages retrieves a loan's approval chain ordered by stage order
	GetApprovalStages(ctx context.Context, loanID string) ([]domain.ApprovalStage, error)

	// GetDocuments retrieves the supporting documents attached to a loan
	GetDocuments(ctx context.Context, loanID string) ([]domain.SupportingDocument, error)
}

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, employeeID string) (*domain.Employee, error)
}

// VacationRepository defines the interface for vacation data operations
type VacationRepository interface {
	// GetByEmployeeOverlapping retrieves an employee's vacation requests
	// overlapping the given window, regardless of status
	GetByEmployeeOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]domain.VacationRequest, error)
}

// PayrollRepository defines the interface for payroll data operations
type PayrollRepository interface {
	// CreateEntryWithLines creates a payroll entry together with its
	// deduction lines in one transaction
	CreateEntryWithLines(ctx context.Context, entry *domain.PayrollEntry, lines []*domain.DeductionLine) error

	// CreateDeductionLines creates loan deduction lines for existing entries
	CreateDeductionLines(ctx context.Context, lines []*domain.DeductionLine) error

	// GetEntriesByPeriod retrieves all entries for a payroll period
	GetEntriesByPeriod(ctx context.Context, start, end time.Time) ([]*domain.PayrollEntry, error)
}
