package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/discount"
	"github.com/pickprod/pickprod-backend-go/internal/handler/http/response"
)

type DiscountHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type DiscountHandlerImpl struct {
	discountService discount.DiscountService
}

func NewDiscountHandler(discountService discount.DiscountService) DiscountHandler {
	return &DiscountHandlerImpl{discountService: discountService}
}

func (h *DiscountHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req discount.CreateDiscountRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.discountService.CreateRecord(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create discount record", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Discount record created successfully", record)
}

func (h *DiscountHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	record, err := h.discountService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *DiscountHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := discount.DiscountRecordFilter{
		EmployeeID:  r.URL.Query().Get("employee_id"),
		PeriodMonth: intQuery(r, "month"),
		PeriodYear:  intQuery(r, "year"),
		Page:        intQuery(r, "page"),
		Limit:       intQuery(r, "limit"),
	}

	records, total, err := h.discountService.ListRecords(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list discount records", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
	})
}

func (h *DiscountHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req discount.UpdateDiscountRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.discountService.UpdateRecord(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update discount record", "error", err, "id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Discount record updated successfully", record)
}

func (h *DiscountHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.discountService.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Discount record deleted successfully", nil)
}

func (h *DiscountHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req discount.PreviewDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.discountService.Preview(r.Context(), req)
	if err != nil {
		slog.Error("Failed to preview discount", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
