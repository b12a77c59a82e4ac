package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/peoplehub/loan-engine/internal/domain"
)

type employeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT id, full_name, salary, created_at
		FROM employees
		WHERE id = $1
	`

	var employee domain.Employee
	err := r.db.GetContext(ctx, &employee, query, employeeID)
	if err != nil {
		return nil, err
	}

	return &employee, nil
}
