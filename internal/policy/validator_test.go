package policy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/peoplehub/loan-engine/internal/domain"
)

func strictInput() Input {
	return Input{
		Loan: domain.Loan{
			LoanID:           "LN-1",
			Amount:           decimal.NewFromInt(1000),
			MonthlyDeduction: decimal.NewFromInt(100),
		},
		Stages: []domain.ApprovalStage{
			{StageName: "HR", StageOrder: 1, Status: domain.ApprovalStatusApproved},
		},
		Documents: []domain.SupportingDocument{
			{ID: "doc-1", LoanID: "LN-1", FileName: "contract.pdf"},
		},
		Schedule: []domain.AmortizationEntry{
			{InstallmentNumber: 1, PrincipalAmount: decimal.NewFromInt(500)},
			{InstallmentNumber: 2, PrincipalAmount: decimal.NewFromInt(500)},
		},
		EmployeeSalary: decimal.NewFromInt(1000),
		Strict:         true,
	}
}

func TestValidate_CompliantLoan(t *testing.T) {
	result := Validate(strictInput())

	assert.True(t, result.IsCompliant)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Warnings)
}

func TestValidate_AffordabilityViolation(t *testing.T) {
	in := strictInput()
	in.Loan.MonthlyDeduction = decimal.NewFromInt(600)
	in.EmployeeSalary = decimal.NewFromInt(800)

	result := Validate(in)

	assert.False(t, result.IsCompliant)
	assert.Contains(t, result.Violations, "Monthly deduction exceeds 50% of employee salary.")
}

func TestValidate_DeductionAtExactlyHalfSalary(t *testing.T) {
	in := strictInput()
	in.Loan.MonthlyDeduction = decimal.NewFromInt(400)
	in.EmployeeSalary = decimal.NewFromInt(800)

	result := Validate(in)

	assert.True(t, result.IsCompliant)
}

func TestValidate_ApprovalStageViolation(t *testing.T) {
	in := strictInput()
	in.Stages = []domain.ApprovalStage{
		{StageName: "Manager", StageOrder: 1, Status: domain.ApprovalStatusPending},
	}

	result := Validate(in)

	assert.False(t, result.IsCompliant)
	assert.Contains(t, result.Violations, `Approval stage "Manager" is not approved (pending).`)
}

func TestValidate_StageMessagesFollowStageOrder(t *testing.T) {
	in := strictInput()
	in.Stages = []domain.ApprovalStage{
		{StageName: "Finance", StageOrder: 2, Status: domain.ApprovalStatusPending},
		{StageName: "Manager", StageOrder: 1, Status: domain.ApprovalStatusRejected},
	}

	result := Validate(in)

	assert.Equal(t, []string{
		`Approval stage "Manager" is not approved (rejected).`,
		`Approval stage "Finance" is not approved (pending).`,
	}, result.Violations)
}

func TestValidate_DocumentationViolation(t *testing.T) {
	in := strictInput()
	in.Documents = nil

	result := Validate(in)

	assert.False(t, result.IsCompliant)
	assert.Contains(t, result.Violations, "At least one supporting document must be uploaded before activation.")
}

func TestValidate_ScheduleCoverageWarning(t *testing.T) {
	in := strictInput()
	in.Schedule = []domain.AmortizationEntry{
		{InstallmentNumber: 1, PrincipalAmount: decimal.NewFromInt(100)},
	}

	result := Validate(in)

	// Coverage shortfall is advisory, never blocking.
	assert.True(t, result.IsCompliant)
	assert.Empty(t, result.Violations)
	assert.Contains(t, result.Warnings, "Amortization schedule does not cover the full loan amount.")
}

func TestValidate_CoverageToleratesRounding(t *testing.T) {
	in := strictInput()
	in.Schedule = []domain.AmortizationEntry{
		{InstallmentNumber: 1, PrincipalAmount: decimal.NewFromFloat(999.99)},
	}

	result := Validate(in)

	assert.NotContains(t, result.Warnings, "Amortization schedule does not cover the full loan amount.")
}

func TestValidate_NonStrictDowngradesToWarnings(t *testing.T) {
	in := strictInput()
	in.Strict = false
	in.Loan.MonthlyDeduction = decimal.NewFromInt(600)
	in.EmployeeSalary = decimal.NewFromInt(800)
	in.Documents = nil

	result := Validate(in)

	assert.True(t, result.IsCompliant)
	assert.Empty(t, result.Violations)
	assert.Contains(t, result.Warnings, "Monthly deduction exceeds 50% of employee salary.")
	assert.Contains(t, result.Warnings, "At least one supporting document must be uploaded before activation.")
}

func TestValidate_AccumulatesAllRules(t *testing.T) {
	in := strictInput()
	in.Loan.MonthlyDeduction = decimal.NewFromInt(600)
	in.EmployeeSalary = decimal.NewFromInt(800)
	in.Stages = []domain.ApprovalStage{
		{StageName: "Manager", StageOrder: 1, Status: domain.ApprovalStatusPending},
	}
	in.Documents = nil
	in.Schedule = nil

	result := Validate(in)

	assert.False(t, result.IsCompliant)
	assert.Len(t, result.Violations, 3)
	assert.Len(t, result.Warnings, 1)
}
