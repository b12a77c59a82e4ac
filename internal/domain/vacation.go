package domain

import "time"

const (
	VacationStatusPending  = "pending"
	VacationStatusApproved = "approved"
	VacationStatusRejected = "rejected"
)

// LoanPauseTag is the legacy pause directive embedded in a vacation's
// free-text reason. Matched as an exact substring; newer records set
// PauseAssociatedLoans instead.
const LoanPauseTag = "[pause-loans]"

// VacationRequest is an employee leave interval, read-only to the
// loan core.
type VacationRequest struct {
	ID                   string    `json:"id" db:"id"`
	EmployeeID           string    `json:"employee_id" db:"employee_id"`
	StartDate            time.Time `json:"start_date" db:"start_date"`
	EndDate              time.Time `json:"end_date" db:"end_date"`
	Status               string    `json:"status" db:"status"`
	Reason               string    `json:"reason" db:"reason"`
	PauseAssociatedLoans bool      `json:"pause_associated_loans" db:"pause_associated_loans"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}
