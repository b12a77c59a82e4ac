package domain

import "time"

const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// ApprovalStage is one step in a loan's approval chain. A loan is
// fully approved only when every stage is approved.
type ApprovalStage struct {
	ID         string     `json:"id" db:"id"`
	LoanID     string     `json:"loan_id" db:"loan_id"`
	StageName  string     `json:"stage_name" db:"stage_name"`
	StageOrder int        `json:"stage_order" db:"stage_order"`
	Status     string     `json:"status" db:"status"`
	DecidedAt  *time.Time `json:"decided_at" db:"decided_at"`
}

// SupportingDocument is evidence attached to a loan. Content is
// opaque here; only its existence matters to policy checks.
type SupportingDocument struct {
	ID         string    `json:"id" db:"id"`
	LoanID     string    `json:"loan_id" db:"loan_id"`
	FileName   string    `json:"file_name" db:"file_name"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}
