package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peoplehub/loan-engine/internal/domain"
)

type vacationRepository struct {
	db *sqlx.DB
}

func NewVacationRepository(db *sqlx.DB) VacationRepository {
	return &vacationRepository{db: db}
}

// GetByEmployeeOverlapping returns the employee's vacation requests
// touching [start, end]. Status filtering is left to the caller so
// the pause evaluator stays the single place that decides what counts.
func (r *vacationRepository) GetByEmployeeOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]domain.VacationRequest, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, status, reason, pause_associated_loans, created_at
		FROM vacation_requests
		WHERE employee_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	var vacations []domain.VacationRequest
	err := r.db.SelectContext(ctx, &vacations, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	return vacations, nil
}
