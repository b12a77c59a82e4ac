package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peoplehub/loan-engine/internal/domain"
)

type payrollRepository struct {
	db *sqlx.DB
}

func NewPayrollRepository(db *sqlx.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

// CreateEntryWithLines inserts a payroll entry and its deduction lines
// in one transaction. A line insert failure rolls the entry back too.
func (r *payrollRepository) CreateEntryWithLines(ctx context.Context, entry *domain.PayrollEntry, lines []*domain.DeductionLine) error {
	query := `
		INSERT INTO payroll_entries (id, employee_id, period_start, period_end, base_salary, working_days, actual_working_days, allowances, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	allowances, err := entry.Allowances.MarshalJSON()
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.PeriodStart,
		entry.PeriodEnd,
		entry.BaseSalary,
		entry.WorkingDays,
		entry.ActualWorkingDays,
		allowances,
		entry.Status,
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = insertDeductionLines(ctx, tx, lines); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *payrollRepository) CreateDeductionLines(ctx context.Context, lines []*domain.DeductionLine) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err = insertDeductionLines(ctx, tx, lines); err != nil {
		return err
	}

	return tx.Commit()
}

func insertDeductionLines(ctx context.Context, tx *sqlx.Tx, lines []*domain.DeductionLine) error {
	query := `
		INSERT INTO payroll_deduction_lines (id, entry_id, loan_id, amount, paused, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	for _, line := range lines {
		_, err := tx.ExecContext(ctx, query,
			line.ID,
			line.EntryID,
			line.LoanID,
			line.Amount,
			line.Paused,
			now,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *payrollRepository) GetEntriesByPeriod(ctx context.Context, start, end time.Time) ([]*domain.PayrollEntry, error) {
	query := `
		SELECT id, employee_id, period_start, period_end, base_salary, working_days, actual_working_days, status, created_at
		FROM payroll_entries
		WHERE period_start >= $1 AND period_end <= $2
		ORDER BY employee_id
	`

	var entries []*domain.PayrollEntry
	err := r.db.SelectContext(ctx, &entries, query, start, end)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
