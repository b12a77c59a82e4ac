package policy

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/peoplehub/loan-engine/internal/domain"
)

// These strings are surfaced verbatim through the API and keyed on by
// clients; do not reword them.
const (
	msgDeductionExceedsHalf = "Monthly deduction exceeds 50% of employee salary."
	msgDocumentRequired     = "At least one supporting document must be uploaded before activation."
	msgScheduleShortfall    = "Amortization schedule does not cover the full loan amount."
)

// coverageTolerance absorbs the per-installment rounding a generated
// schedule accumulates against the nominal principal.
var coverageTolerance = decimal.NewFromFloat(0.01)

var half = decimal.NewFromFloat(0.5)

// Input is the consistent snapshot the validator evaluates. Strict
// mode turns the affordability, approval and documentation gaps into
// blocking violations; outside strict mode they stay advisory.
type Input struct {
	Loan           domain.Loan
	Stages         []domain.ApprovalStage
	Documents      []domain.SupportingDocument
	Schedule       []domain.AmortizationEntry
	EmployeeSalary decimal.Decimal
	Strict         bool
}

// Validate runs every policy rule and accumulates the outcome. Rules
// never short-circuit; callers get the full list of gaps in one pass.
// The result is advisory data, the caller decides whether anything
// blocks.
func Validate(in Input) domain.ComplianceResult {
	result := domain.ComplianceResult{
		Violations: []string{},
		Warnings:   []string{},
	}

	flag := func(msg string) {
		if in.Strict {
			result.Violations = append(result.Violations, msg)
		} else {
			result.Warnings = append(result.Warnings, msg)
		}
	}

	// Affordability: the deduction may not exceed half the salary.
	if in.Loan.MonthlyDeduction.GreaterThan(in.EmployeeSalary.Mul(half)) {
		flag(msgDeductionExceedsHalf)
	}

	// Approval completeness: one message per unapproved stage, in
	// stage order.
	stages := make([]domain.ApprovalStage, len(in.Stages))
	copy(stages, in.Stages)
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].StageOrder < stages[j].StageOrder
	})
	for _, stage := range stages {
		if stage.Status != domain.ApprovalStatusApproved {
			flag(fmt.Sprintf("Approval stage %q is not approved (%s).", stage.StageName, stage.Status))
		}
	}

	// Documentation: some supporting evidence must exist.
	if len(in.Documents) == 0 {
		flag(msgDocumentRequired)
	}

	// Principal coverage stays a warning in every mode: an undersized
	// schedule is a data-quality signal, not an activation gate.
	var covered decimal.Decimal
	for _, entry := range in.Schedule {
		covered = covered.Add(entry.PrincipalAmount)
	}
	if in.Loan.Amount.Sub(covered).GreaterThan(coverageTolerance) {
		result.Warnings = append(result.Warnings, msgScheduleShortfall)
	}

	result.IsCompliant = len(result.Violations) == 0
	return result
}
