package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/handler/http/response"
)

type ProductionHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	ListLines(w http.ResponseWriter, r *http.Request)
	CollectionMetrics(w http.ResponseWriter, r *http.Request)
	EmployeeProduction(w http.ResponseWriter, r *http.Request)
	AssignEmployee(w http.ResponseWriter, r *http.Request)
	UpdateLineErrors(w http.ResponseWriter, r *http.Request)
}

type ProductionHandlerImpl struct {
	ingestService  production.IngestService
	metricsService production.MetricsService
}

func NewProductionHandler(ingestService production.IngestService, metricsService production.MetricsService) ProductionHandler {
	return &ProductionHandlerImpl{
		ingestService:  ingestService,
		metricsService: metricsService,
	}
}

// Upload accepts either a multipart form with a "file" .xlsx and a "kind"
// field, or a JSON body carrying the table directly.
func (h *ProductionHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	var req production.IngestRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(20 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		defer file.Close()

		table, err := tableFromWorkbook(file)
		if err != nil {
			slog.Error("Failed to read workbook", "error", err)
			response.HandleError(w, err)
			return
		}

		req.Kind = production.IngestKind(r.FormValue("kind"))
		req.Table = table
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Upload decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ingestService.Ingest(r.Context(), req)
	if err != nil {
		slog.Error("Ingest service error", "error", err, "kind", req.Kind)
		response.HandleError(w, err)
		return
	}

	slog.Info("Spreadsheet ingested", "kind", req.Kind, "inserted", result.Inserted, "duplicates", result.Duplicates, "rejected", len(result.Rejected))
	response.Created(w, "Spreadsheet ingested successfully", result)
}

func (h *ProductionHandlerImpl) ListLines(w http.ResponseWriter, r *http.Request) {
	filter, err := productionFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	lines, err := h.metricsService.ListLines(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list receiving lines", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, lines)
}

func (h *ProductionHandlerImpl) CollectionMetrics(w http.ResponseWriter, r *http.Request) {
	filter, err := productionFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	metrics, err := h.metricsService.CollectionMetrics(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to derive collection metrics", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, metrics)
}

func (h *ProductionHandlerImpl) EmployeeProduction(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	totals, err := h.metricsService.EmployeeProduction(r.Context(), month, year)
	if err != nil {
		slog.Error("Failed to aggregate employee production", "error", err, "month", month, "year", year)
		response.HandleError(w, err)
		return
	}

	response.Success(w, totals)
}

func (h *ProductionHandlerImpl) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	var req production.AssignEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LineID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	line, err := h.metricsService.AssignEmployee(r.Context(), req)
	if err != nil {
		slog.Error("Failed to assign employee", "error", err, "line_id", req.LineID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee assigned successfully", line)
}

func (h *ProductionHandlerImpl) UpdateLineErrors(w http.ResponseWriter, r *http.Request) {
	var req production.UpdateLineErrorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LineID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	line, err := h.metricsService.UpdateLineErrors(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update line errors", "error", err, "line_id", req.LineID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Line errors updated successfully", line)
}

func productionFilterFromQuery(r *http.Request) (production.ProductionFilter, error) {
	filter := production.ProductionFilter{
		BranchID: r.URL.Query().Get("branch_id"),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, fmt.Errorf("invalid 'from' date, expected YYYY-MM-DD")
		}
		filter.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, fmt.Errorf("invalid 'to' date, expected YYYY-MM-DD")
		}
		filter.To = t
	}

	return filter, nil
}
