package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/closing"
	"github.com/pickprod/pickprod-backend-go/internal/handler/http/response"
)

type ClosingHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type ClosingHandlerImpl struct {
	closingService closing.ClosingService
}

func NewClosingHandler(closingService closing.ClosingService) ClosingHandler {
	return &ClosingHandlerImpl{closingService: closingService}
}

func (h *ClosingHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var req closing.RunClosingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.closingService.Run(r.Context(), req)
	if err != nil {
		slog.Error("Closing run failed", "error", err, "month", req.PeriodMonth, "year", req.PeriodYear)
		response.HandleError(w, err)
		return
	}

	slog.Info("Closing run finished", "month", req.PeriodMonth, "year", req.PeriodYear,
		"processed", result.Processed, "skipped", result.Skipped, "failures", len(result.Failures))
	response.SuccessWithMessage(w, "Closing run finished", result)
}

func (h *ClosingHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.closingService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *ClosingHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := closing.ClosingFilter{
		PeriodMonth: intQuery(r, "month"),
		PeriodYear:  intQuery(r, "year"),
		EmployeeID:  r.URL.Query().Get("employee_id"),
		BranchID:    r.URL.Query().Get("branch_id"),
	}

	records, err := h.closingService.ListRecords(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list closing records", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *ClosingHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	report, err := h.closingService.Report(r.Context(), month, year)
	if err != nil {
		slog.Error("Failed to build period report", "error", err, "month", month, "year", year)
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
