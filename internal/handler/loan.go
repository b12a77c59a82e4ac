package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/peoplehub/loan-engine/internal/domain"
	"github.com/peoplehub/loan-engine/internal/service"
	customError "github.com/peoplehub/loan-engine/pkg/errors"
	"github.com/peoplehub/loan-engine/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "request validation failed", err)
		return
	}

	loan, schedule, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Created(w, domain.CreateLoanResponse{
		Loan:     loan,
		Schedule: schedule,
	})
}

// GetSchedule handles GET /api/v1/loans/{loanId}/schedule
func (h *LoanHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]

	schedule, err := h.service.GetSchedule(r.Context(), loanID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{
		LoanID:   loanID,
		Schedule: schedule,
	})
}

// GetCompliance handles GET /api/v1/loans/{loanId}/compliance?strict=true
func (h *LoanHandler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]
	strict := r.URL.Query().Get("strict") == "true"

	result, err := h.service.ValidateLoan(r.Context(), loanID, strict)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Success(w, domain.ComplianceResponse{
		LoanID:           loanID,
		ComplianceResult: result,
	})
}

// ActivateLoan handles POST /api/v1/loans/{loanId}/activate
func (h *LoanHandler) ActivateLoan(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]

	loan, err := h.service.ActivateLoan(r.Context(), loanID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Success(w, loan)
}

// RegenerateSchedule handles POST /api/v1/loans/{loanId}/schedule
func (h *LoanHandler) RegenerateSchedule(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]

	schedule, err := h.service.RegenerateSchedule(r.Context(), loanID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{
		LoanID:   loanID,
		Schedule: schedule,
	})
}

func (h *LoanHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customError.ErrLoanNotFound),
		errors.Is(err, customError.ErrEmployeeNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, customError.ErrLoanAlreadyExists),
		errors.Is(err, customError.ErrLoanTerminal):
		response.Conflict(w, "loan state conflict", err)
	case errors.Is(err, customError.ErrLoanNotCompliant):
		response.UnprocessableEntity(w, "loan failed policy validation", err)
	case errors.Is(err, customError.ErrInvalidLoanAmount),
		errors.Is(err, customError.ErrInvalidMonthlyPayment),
		errors.Is(err, customError.ErrInvalidStartDate),
		errors.Is(err, customError.ErrInsufficientPayment):
		response.BadRequest(w, "cannot generate schedule", err)
	default:
		response.InternalServerError(w, "internal server error", err)
	}
}
