package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/peoplehub/loan-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

// CreateWithSchedule inserts the loan and all of its schedule rows in
// one transaction. A schedule insert failure rolls the loan back too,
// so no loan row ever exists without its schedule.
func (r *loanRepository) CreateWithSchedule(ctx context.Context, loan *domain.Loan, rows []*domain.LoanScheduleRow) error {
	query := `
		INSERT INTO loans (id, loan_id, employee_id, amount, monthly_deduction, interest_rate, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.ExecContext(ctx, query,
		loan.ID,
		loan.LoanID,
		loan.EmployeeID,
		loan.Amount,
		loan.MonthlyDeduction,
		loan.InterestRate,
		loan.StartDate,
		loan.EndDate,
		loan.Status,
		now,
		now,
	)
	if err != nil {
		return err
	}

	if err = insertScheduleRows(ctx, tx, rows); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *loanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_id, employee_id, amount, monthly_deduction, interest_rate, start_date, end_date, status, created_at, updated_at
		FROM loans
		WHERE loan_id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) GetActiveByEmployee(ctx context.Context, employeeID string) ([]*domain.Loan, error) {
	query := `
		SELECT id, loan_id, employee_id, amount, monthly_deduction, interest_rate, start_date, end_date, status, created_at, updated_at
		FROM loans
		WHERE employee_id = $1 AND status = $2
		ORDER BY start_date
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, employeeID, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, loanID string, status string) error {
	query := `
		UPDATE loans
		SET status = $2, updated_at = $3
		WHERE loan_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, loanID, status, time.Now())
	return err
}

// ReplaceSchedule implements the wholesale-recompute rule: a loan's
// schedule is never patched row by row, it is dropped and re-inserted
// inside one transaction.
func (r *loanRepository) ReplaceSchedule(ctx context.Context, loanID string, rows []*domain.LoanScheduleRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM loan_schedule WHERE loan_id = $1`, loanID); err != nil {
		return err
	}

	if err = insertScheduleRows(ctx, tx, rows); err != nil {
		return err
	}

	return tx.Commit()
}

func insertScheduleRows(ctx context.Context, tx *sqlx.Tx, rows []*domain.LoanScheduleRow) error {
	query := `
		INSERT INTO loan_schedule (id, loan_id, installment_number, due_date, payment_amount, principal_amount, interest_amount, remaining_balance, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	for _, row := range rows {
		_, err := tx.ExecContext(ctx, query,
			row.ID,
			row.LoanID,
			row.InstallmentNumber,
			row.DueDate,
			row.PaymentAmount,
			row.PrincipalAmount,
			row.InterestAmount,
			row.RemainingBalance,
			row.Status,
			now,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *loanRepository) GetScheduleByLoanID(ctx context.Context, loanID string) ([]*domain.LoanScheduleRow, error) {
	query := `
		SELECT id, loan_id, installment_number, due_date, payment_amount, principal_amount, interest_amount, remaining_balance, status, created_at
		FROM loan_schedule
		WHERE loan_id = $1
		ORDER BY installment_number
	`

	var rows []*domain.LoanScheduleRow
	err := r.db.SelectContext(ctx, &rows, query, loanID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *loanRepository) GetPendingSchedulesDueBy(ctx context.Context, asOf time.Time) ([]*domain.LoanScheduleRow, error) {
	query := `
		SELECT s.id, s.loan_id, s.installment_number, s.due_date, s.payment_amount, s.principal_amount, s.interest_amount, s.remaining_balance, s.status, s.created_at
		FROM loan_schedule s
		JOIN loans l ON l.loan_id = s.loan_id
		WHERE s.status = $1 AND s.due_date <= $2 AND l.status = $3
		ORDER BY s.due_date
	`

	var rows []*domain.LoanScheduleRow
	err := r.db.SelectContext(ctx, &rows, query, domain.ScheduleStatusPending, asOf, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *loanRepository) MarkSchedulesOverdue(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE loan_schedule
		SET status = $1
		WHERE id = ANY($2)
	`

	_, err := r.db.ExecContext(ctx, query, domain.ScheduleStatusOverdue, pq.Array(ids))
	return err
}

func (r *loanRepository) GetApprovalStages(ctx context.Context, loanID string) ([]domain.ApprovalStage, error) {
	query := `
		SELECT id, loan_id, stage_name, stage_order, status, decided_at
		FROM loan_approval_stages
		WHERE loan_id = $1
		ORDER BY stage_order
	`

	var stages []domain.ApprovalStage
	err := r.db.SelectContext(ctx, &stages, query, loanID)
	if err != nil {
		return nil, err
	}

	return stages, nil
}

func (r *loanRepository) GetDocuments(ctx context.Context, loanID string) ([]domain.SupportingDocument, error) {
	query := `
		SELECT id, loan_id, file_name, uploaded_at
		FROM loan_documents
		WHERE loan_id = $1
		ORDER BY uploaded_at
	`

	var documents []domain.SupportingDocument
	err := r.db.SelectContext(ctx, &documents, query, loanID)
	if err != nil {
		return nil, err
	}

	return documents, nil
}
