package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/peoplehub/loan-engine/internal/domain"
)

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) CreateWithSchedule(ctx context.Context, loan *domain.Loan, rows []*domain.LoanScheduleRow) error {
	args := m.Called(ctx, loan, rows)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetActiveByEmployee(ctx context.Context, employeeID string) ([]*domain.Loan, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) UpdateStatus(ctx context.Context, loanID string, status string) error {
	args := m.Called(ctx, loanID, status)
	return args.Error(0)
}

func (m *MockLoanRepository) GetPendingSchedulesDueBy(ctx context.Context, asOf time.Time) ([]*domain.LoanScheduleRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanScheduleRow), args.Error(1)
}

func (m *MockLoanRepository) MarkSchedulesOverdue(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockLoanRepository) ReplaceSchedule(ctx context.Context, loanID string, rows []*domain.LoanScheduleRow) error {
	args := m.Called(ctx, loanID, rows)
	return args.Error(0)
}

func (m *MockLoanRepository) GetScheduleByLoanID(ctx context.Context, loanID string) ([]*domain.LoanScheduleRow, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanScheduleRow), args.Error(1)
}

func (m *MockLoanRepository) GetApprovalStages(ctx context.Context, loanID string) ([]domain.ApprovalStage, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalStage), args.Error(1)
}

func (m *MockLoanRepository) GetDocuments(ctx context.Context, loanID string) ([]domain.SupportingDocument, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupportingDocument), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

type MockVacationRepository struct {
	mock.Mock
}

func (m *MockVacationRepository) GetByEmployeeOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]domain.VacationRequest, error) {
	args := m.Called(ctx, employeeID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VacationRequest), args.Error(1)
}

type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) CreateEntryWithLines(ctx context.Context, entry *domain.PayrollEntry, lines []*domain.DeductionLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockPayrollRepository) CreateDeductionLines(ctx context.Context, lines []*domain.DeductionLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockPayrollRepository) GetEntriesByPeriod(ctx context.Context, start, end time.Time) ([]*domain.PayrollEntry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PayrollEntry), args.Error(1)
}
