package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peoplehub/loan-engine/internal/config"
	"github.com/peoplehub/loan-engine/internal/domain"
	"github.com/peoplehub/loan-engine/internal/leave"
	"github.com/peoplehub/loan-engine/internal/payroll"
	"github.com/peoplehub/loan-engine/internal/repository"
	customError "github.com/peoplehub/loan-engine/pkg/errors"
	"github.com/peoplehub/loan-engine/pkg/utils"
)

type PayrollService struct {
	LoanRepo     repository.LoanRepository
	EmployeeRepo repository.EmployeeRepository
	VacationRepo repository.VacationRepository
	PayrollRepo  repository.PayrollRepository
	config       *config.Config
}

func NewPayrollService(
	loanRepo repository.LoanRepository,
	employeeRepo repository.EmployeeRepository,
	vacationRepo repository.VacationRepository,
	payrollRepo repository.PayrollRepository,
	config *config.Config,
) *PayrollService {
	return &PayrollService{
		LoanRepo:     loanRepo,
		EmployeeRepo: employeeRepo,
		VacationRepo: vacationRepo,
		PayrollRepo:  payrollRepo,
		config:       config,
	}
}

// PreviewEntry computes the derived payroll figures for one employee
// and period without persisting anything: the working-days pay
// adjustment, the allowance summary and the loan deduction lines
// (pause-aware).
func (s *PayrollService) PreviewEntry(ctx context.Context, request *domain.PreviewEntryRequest) (*domain.PreviewEntryResponse, error) {
	entry := domain.PayrollEntry{
		EmployeeID:        request.EmployeeID,
		PeriodStart:       request.PeriodStart,
		PeriodEnd:         request.PeriodEnd,
		BaseSalary:        utils.ToDecimal(request.BaseSalary),
		WorkingDays:       s.standardWorkingDays(request.WorkingDays),
		ActualWorkingDays: request.ActualWorkingDays,
		Allowances:        request.Allowances,
	}

	employee, err := s.EmployeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapEmployeeNotFound(request.EmployeeID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	entry.Employee = employee

	adjustment := payroll.CalculateWorkingDaysAdjustment(entry)
	allowances := payroll.SummarizeAllowances(entry.Allowances)

	deductions, err := s.buildDeductionLines(ctx, uuid.Nil, request.EmployeeID, request.PeriodStart, request.PeriodEnd)
	if err != nil {
		return nil, err
	}

	net := adjustment.Add(allowances.Total)
	deductionValues := make([]domain.DeductionLine, 0, len(deductions))
	for _, line := range deductions {
		net = net.Sub(line.Amount)
		deductionValues = append(deductionValues, *line)
	}

	return &domain.PreviewEntryResponse{
		EmployeeID:            request.EmployeeID,
		WorkingDaysAdjustment: adjustment,
		Allowances:            allowances,
		Deductions:            deductionValues,
		NetAdjustment:         net,
	}, nil
}

// IsLoanPaused answers whether loan deductions should be skipped for
// the employee over the given period.
func (s *PayrollService) IsLoanPaused(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	vacations, err := s.VacationRepo.GetByEmployeeOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}
	return leave.ShouldPauseLoan(vacations, start, end), nil
}

// CommitEntry persists a payroll entry together with its deduction
// lines in one transaction. Used by the import glue once a preview is
// accepted.
func (s *PayrollService) CommitEntry(ctx context.Context, request *domain.PreviewEntryRequest) (*domain.PayrollEntry, error) {
	entry := &domain.PayrollEntry{
		ID:                uuid.New(),
		EmployeeID:        request.EmployeeID,
		PeriodStart:       request.PeriodStart,
		PeriodEnd:         request.PeriodEnd,
		BaseSalary:        utils.ToDecimal(request.BaseSalary),
		WorkingDays:       s.standardWorkingDays(request.WorkingDays),
		ActualWorkingDays: request.ActualWorkingDays,
		Allowances:        request.Allowances,
		Status:            domain.PayrollEntryStatusDraft,
	}

	lines, err := s.buildDeductionLines(ctx, entry.ID, entry.EmployeeID, entry.PeriodStart, entry.PeriodEnd)
	if err != nil {
		return nil, err
	}

	if err = s.PayrollRepo.CreateEntryWithLines(ctx, entry, lines); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return entry, nil
}

// standardWorkingDays fills a missing standard day count from the
// configured business default.
func (s *PayrollService) standardWorkingDays(requested *int) *int {
	if requested != nil {
		return requested
	}
	if s.config == nil || s.config.Business.StandardWorkingDays <= 0 {
		return nil
	}
	days := s.config.Business.StandardWorkingDays
	return &days
}

// RunPayrollPeriod attaches loan deduction lines to every entry of a
// payroll period. Driven by the scheduler at period close.
func (s *PayrollService) RunPayrollPeriod(ctx context.Context, start, end time.Time) error {
	entries, err := s.PayrollRepo.GetEntriesByPeriod(ctx, start, end)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	for _, entry := range entries {
		lines, err := s.buildDeductionLines(ctx, entry.ID, entry.EmployeeID, start, end)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			continue
		}
		if err = s.PayrollRepo.CreateDeductionLines(ctx, lines); err != nil {
			return customError.WrapDatabaseError(err)
		}
	}

	log.Printf("payroll run %s..%s processed %d entries", start.Format("2006-01-02"), end.Format("2006-01-02"), len(entries))
	return nil
}

// buildDeductionLines emits one line per active loan. When an approved
// vacation with the pause directive overlaps the period, the line is
// kept with a zero amount and the paused marker so payslips show why
// nothing was deducted.
func (s *PayrollService) buildDeductionLines(ctx context.Context, entryID uuid.UUID, employeeID string, start, end time.Time) ([]*domain.DeductionLine, error) {
	loans, err := s.LoanRepo.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(loans) == 0 {
		return []*domain.DeductionLine{}, nil
	}

	paused, err := s.IsLoanPaused(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	lines := make([]*domain.DeductionLine, 0, len(loans))
	for _, loan := range loans {
		amount := loan.MonthlyDeduction
		if paused {
			amount = decimal.Zero
		}
		lines = append(lines, &domain.DeductionLine{
			ID:      uuid.New(),
			EntryID: entryID,
			LoanID:  loan.LoanID,
			Amount:  amount,
			Paused:  paused,
		})
	}

	return lines, nil
}
