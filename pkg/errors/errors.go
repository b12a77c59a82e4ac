package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound          = errors.New("loan not found")
	ErrLoanAlreadyExists     = errors.New("loan already exists")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrInvalidLoanAmount     = errors.New("loan amount must be greater than zero")
	ErrInvalidMonthlyPayment = errors.New("monthly payment must be greater than zero")
	ErrInvalidStartDate      = errors.New("loan start date is required")
	ErrInsufficientPayment   = errors.New("monthly payment is insufficient to cover accruing interest")
	ErrLoanNotCompliant      = errors.New("loan does not satisfy activation policies")
	ErrLoanTerminal          = errors.New("loan is in a terminal status")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound        = "LOAN_NOT_FOUND"
	ErrCodeLoanAlreadyExists   = "LOAN_ALREADY_EXISTS"
	ErrCodeEmployeeNotFound    = "EMPLOYEE_NOT_FOUND"
	ErrCodeInvalidLoanInput    = "INVALID_LOAN_INPUT"
	ErrCodeInsufficientPayment = "INSUFFICIENT_PAYMENT"
	ErrCodeLoanNotCompliant    = "LOAN_NOT_COMPLIANT"
	ErrCodeLoanTerminal        = "LOAN_TERMINAL_STATUS"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanAlreadyExists(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyExists,
		fmt.Sprintf("Loan with ID %s already exists", loanID),
		ErrLoanAlreadyExists,
	)
}

func WrapEmployeeNotFound(employeeID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEmployeeNotFound,
		fmt.Sprintf("Employee with ID %s not found", employeeID),
		ErrEmployeeNotFound,
	)
}

func WrapInvalidLoanInput(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanInput,
		"loan input failed validation",
		err,
	)
}

func WrapInsufficientPayment(payment, interest string) *BusinessError {
	return NewBusinessError(
		ErrCodeInsufficientPayment,
		fmt.Sprintf("Monthly payment %s is insufficient to cover monthly interest %s", payment, interest),
		ErrInsufficientPayment,
	)
}

func WrapLoanNotCompliant(loanID string, violations []string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotCompliant,
		fmt.Sprintf("Loan with ID %s has %d policy violation(s)", loanID, len(violations)),
		ErrLoanNotCompliant,
	)
}

func WrapLoanTerminal(loanID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanTerminal,
		fmt.Sprintf("Loan with ID %s is %s and can no longer be modified", loanID, status),
		ErrLoanTerminal,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
