package employee

import "github.com/pickprod/pickprod-backend-go/internal/pkg/validator"

type CreateEmployeeRequest struct {
	Registration string `json:"registration"`
	FullName     string `json:"full_name"`
	BranchID     string `json:"branch_id"`
	Role         string `json:"role"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Registration) {
		errs = append(errs, validator.ValidationError{Field: "registration", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "is required"})
	}
	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'separator' or 'driver'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string
	Registration *string `json:"registration,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	BranchID     *string `json:"branch_id,omitempty"`
	Role         *string `json:"role,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Registration != nil && validator.IsEmpty(*r.Registration) {
		errs = append(errs, validator.ValidationError{Field: "registration", Message: "must not be empty"})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Role != nil && !Role(*r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'separator' or 'driver'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	BranchID   string
	Role       string
	ActiveOnly bool
	Search     string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	Registration string  `json:"registration"`
	FullName     string  `json:"full_name"`
	BranchID     string  `json:"branch_id"`
	BranchName   *string `json:"branch_name,omitempty"`
	BranchCode   *string `json:"branch_code,omitempty"`
	Role         string  `json:"role"`
	IsActive     bool    `json:"is_active"`
}

type ListEmployeeResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Registration: e.Registration,
		FullName:     e.FullName,
		BranchID:     e.BranchID,
		BranchName:   e.BranchName,
		BranchCode:   e.BranchCode,
		Role:         string(e.Role),
		IsActive:     e.IsActive,
	}
}
