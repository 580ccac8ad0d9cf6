package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/branch"
	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/handler/http/response"
)

type BranchHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type BranchHandlerImpl struct {
	branchService branch.BranchService
}

func NewBranchHandler(branchService branch.BranchService) BranchHandler {
	return &BranchHandlerImpl{branchService: branchService}
}

func (h *BranchHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.branchService.CreateBranch(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create branch", "error", err, "code", req.Code)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created successfully", created)
}

func (h *BranchHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	b, err := h.branchService.GetBranch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, b)
}

func (h *BranchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	branches, err := h.branchService.ListBranches(r.Context(), activeOnly)
	if err != nil {
		slog.Error("Failed to list branches", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, branches)
}

func (h *BranchHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req branch.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.branchService.UpdateBranch(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update branch", "error", err, "id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch updated successfully", updated)
}

func (h *BranchHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.branchService.DeleteBranch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted successfully", nil)
}

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create employee", "error", err, "registration", req.Registration)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

func (h *EmployeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	e, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, e)
}

func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		BranchID:   r.URL.Query().Get("branch_id"),
		Role:       r.URL.Query().Get("role"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
		Search:     r.URL.Query().Get("search"),
		Page:       intQuery(r, "page"),
		Limit:      intQuery(r, "limit"),
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list employees", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.Total,
	})
}

func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update employee", "error", err, "id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
