package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/peoplehub/loan-engine/internal/domain"
	"github.com/peoplehub/loan-engine/internal/service"
	"github.com/peoplehub/loan-engine/pkg/response"
)

type PayrollHandler struct {
	service     *service.PayrollService
	loanHandler *LoanHandler
	validator   *validator.Validate
}

func NewPayrollHandler(service *service.PayrollService, loanHandler *LoanHandler) *PayrollHandler {
	return &PayrollHandler{
		service:     service,
		loanHandler: loanHandler,
		validator:   validator.New(),
	}
}

// PreviewEntry handles POST /api/v1/payroll/preview
func (h *PayrollHandler) PreviewEntry(w http.ResponseWriter, r *http.Request) {
	request, ok := h.decodeEntryRequest(w, r)
	if !ok {
		return
	}

	preview, err := h.service.PreviewEntry(r.Context(), request)
	if err != nil {
		h.loanHandler.writeServiceError(w, err)
		return
	}

	response.Success(w, preview)
}

// CommitEntry handles POST /api/v1/payroll/entries
func (h *PayrollHandler) CommitEntry(w http.ResponseWriter, r *http.Request) {
	request, ok := h.decodeEntryRequest(w, r)
	if !ok {
		return
	}

	entry, err := h.service.CommitEntry(r.Context(), request)
	if err != nil {
		h.loanHandler.writeServiceError(w, err)
		return
	}

	response.Created(w, entry)
}

// LoanPause handles GET /api/v1/employees/{employeeId}/loan-pause?start=2024-04-01&end=2024-04-30
func (h *PayrollHandler) LoanPause(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		response.BadRequest(w, "invalid start date", err)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		response.BadRequest(w, "invalid end date", err)
		return
	}

	paused, err := h.service.IsLoanPaused(r.Context(), employeeID, start, end)
	if err != nil {
		h.loanHandler.writeServiceError(w, err)
		return
	}

	response.Success(w, domain.LoanPauseResponse{
		EmployeeID: employeeID,
		Paused:     paused,
	})
}

func (h *PayrollHandler) decodeEntryRequest(w http.ResponseWriter, r *http.Request) (*domain.PreviewEntryRequest, bool) {
	var request domain.PreviewEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return nil, false
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "request validation failed", err)
		return nil, false
	}

	return &request, true
}
