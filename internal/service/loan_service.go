package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/peoplehub/loan-engine/internal/amortization"
	"github.com/peoplehub/loan-engine/internal/config"
	"github.com/peoplehub/loan-engine/internal/domain"
	"github.com/peoplehub/loan-engine/internal/policy"
	"github.com/peoplehub/loan-engine/internal/repository"
	customError "github.com/peoplehub/loan-engine/pkg/errors"
	"github.com/peoplehub/loan-engine/pkg/utils"
)

type LoanService struct {
	LoanRepo     repository.LoanRepository
	EmployeeRepo repository.EmployeeRepository
	redis        *redis.Client
	config       *config.Config
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	employeeRepo repository.EmployeeRepository,
	redis *redis.Client,
	config *config.Config,
) *LoanService {
	return &LoanService{
		LoanRepo:     loanRepo,
		EmployeeRepo: employeeRepo,
		redis:        redis,
		config:       config,
	}
}

// CreateLoan creates a new loan together with its amortization schedule.
// Schedule generation failures (invalid input, insufficient payment)
// reject the whole request, and loan and schedule rows are persisted in
// one transaction; no loan survives without a schedule.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, []domain.AmortizationEntry, error) {
	existingLoan, err := s.LoanRepo.GetByLoanID(ctx, request.LoanID)
	if err == nil && existingLoan != nil {
		return nil, nil, customError.WrapLoanAlreadyExists(request.LoanID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	if _, err = s.EmployeeRepo.GetByID(ctx, request.EmployeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, customError.WrapEmployeeNotFound(request.EmployeeID)
		}
		return nil, nil, customError.WrapDatabaseError(err)
	}

	schedule, err := amortization.Generate(amortization.GenerateInput{
		Amount:         request.Amount,
		MonthlyPayment: request.MonthlyDeduction,
		InterestRate:   request.InterestRate,
		StartDate:      request.StartDate,
	})
	if err != nil {
		return nil, nil, err
	}

	loan := &domain.Loan{
		ID:               uuid.New(),
		LoanID:           request.LoanID,
		EmployeeID:       request.EmployeeID,
		Amount:           request.Amount,
		MonthlyDeduction: request.MonthlyDeduction,
		InterestRate:     request.InterestRate,
		StartDate:        request.StartDate,
		Status:           domain.LoanStatusPending,
	}

	rows := amortization.MapScheduleToInsert(loan.LoanID, schedule)
	if err = s.LoanRepo.CreateWithSchedule(ctx, loan, rows); err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	s.invalidateScheduleCache(ctx, loan.LoanID)

	return loan, schedule, nil
}

// GetSchedule returns a loan's amortization schedule, read through a
// redis cache. Cache failures degrade to the database.
func (s *LoanService) GetSchedule(ctx context.Context, loanID string) ([]domain.AmortizationEntry, error) {
	cacheKey := scheduleCacheKey(loanID)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var schedule []domain.AmortizationEntry
			if err = json.Unmarshal([]byte(cached), &schedule); err == nil {
				return schedule, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("%v", customError.WrapCacheError(err))
		}
	}

	rows, err := s.LoanRepo.GetScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	schedule := make([]domain.AmortizationEntry, 0, len(rows))
	for _, row := range rows {
		schedule = append(schedule, row.Entry())
	}

	if s.redis != nil {
		if payload, err := json.Marshal(schedule); err == nil {
			if err = s.redis.Set(ctx, cacheKey, payload, s.config.GetScheduleCacheTTL()).Err(); err != nil {
				log.Printf("%v", customError.WrapCacheError(err))
			}
		}
	}

	return schedule, nil
}

// ValidateLoan gathers the loan's snapshot and runs the policy rules
// against it. The result is advisory; nothing is mutated here.
func (s *LoanService) ValidateLoan(ctx context.Context, loanID string, strict bool) (domain.ComplianceResult, error) {
	loan, err := s.LoanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ComplianceResult{}, customError.WrapLoanNotFound(loanID)
		}
		return domain.ComplianceResult{}, customError.WrapDatabaseError(err)
	}

	stages, err := s.LoanRepo.GetApprovalStages(ctx, loanID)
	if err != nil {
		return domain.ComplianceResult{}, customError.WrapDatabaseError(err)
	}

	documents, err := s.LoanRepo.GetDocuments(ctx, loanID)
	if err != nil {
		return domain.ComplianceResult{}, customError.WrapDatabaseError(err)
	}

	schedule, err := s.GetSchedule(ctx, loanID)
	if err != nil {
		return domain.ComplianceResult{}, err
	}

	var salary decimal.Decimal
	employee, err := s.EmployeeRepo.GetByID(ctx, loan.EmployeeID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return domain.ComplianceResult{}, customError.WrapDatabaseError(err)
		}
	} else {
		salary = employee.Salary
	}

	return policy.Validate(policy.Input{
		Loan:           *loan,
		Stages:         stages,
		Documents:      documents,
		Schedule:       schedule,
		EmployeeSalary: salary,
		Strict:         strict,
	}), nil
}

// ActivateLoan moves a loan into active status after a strict policy
// check. Violations block activation; warnings do not.
func (s *LoanService) ActivateLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if loan.IsTerminal() {
		return nil, customError.WrapLoanTerminal(loan.LoanID, loan.Status)
	}

	result, err := s.ValidateLoan(ctx, loanID, true)
	if err != nil {
		return nil, err
	}
	if !result.IsCompliant {
		return nil, customError.WrapLoanNotCompliant(loanID, result.Violations)
	}

	if err = s.LoanRepo.UpdateStatus(ctx, loanID, domain.LoanStatusActive); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loan.Status = domain.LoanStatusActive
	return loan, nil
}

// RegenerateSchedule recomputes a loan's schedule from its current
// terms and swaps it wholesale. Terminal loans are immutable except
// by explicit correction, which this is not.
func (s *LoanService) RegenerateSchedule(ctx context.Context, loanID string) ([]domain.AmortizationEntry, error) {
	loan, err := s.LoanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if loan.IsTerminal() {
		return nil, customError.WrapLoanTerminal(loan.LoanID, loan.Status)
	}

	schedule, err := amortization.Generate(amortization.GenerateInput{
		Amount:         loan.Amount,
		MonthlyPayment: loan.MonthlyDeduction,
		InterestRate:   loan.InterestRate,
		StartDate:      loan.StartDate,
	})
	if err != nil {
		return nil, err
	}

	if err = s.LoanRepo.ReplaceSchedule(ctx, loanID, amortization.MapScheduleToInsert(loanID, schedule)); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateScheduleCache(ctx, loanID)

	return schedule, nil
}

// MarkOverdueSchedules flips pending installments of active loans to
// overdue once their due date has passed. Driven by the scheduler's
// daily sweep. Returns the number of rows marked.
func (s *LoanService) MarkOverdueSchedules(ctx context.Context, now time.Time) (int, error) {
	rows, err := s.LoanRepo.GetPendingSchedulesDueBy(ctx, now)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	overdueIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if utils.IsDateOverdue(row.DueDate, now) {
			overdueIDs = append(overdueIDs, row.ID)
		}
	}
	if len(overdueIDs) == 0 {
		return 0, nil
	}

	if err = s.LoanRepo.MarkSchedulesOverdue(ctx, overdueIDs); err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	return len(overdueIDs), nil
}

func (s *LoanService) invalidateScheduleCache(ctx context.Context, loanID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, scheduleCacheKey(loanID)).Err(); err != nil {
		log.Printf("%v", customError.WrapCacheError(err))
	}
}

func scheduleCacheKey(loanID string) string {
	return fmt.Sprintf("loan:schedule:%s", loanID)
}
