package branch

import "github.com/pickprod/pickprod-backend-go/internal/pkg/validator"

type CreateBranchRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBranchRequest struct {
	ID       string
	Code     *string `json:"code,omitempty"`
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Code != nil && validator.IsEmpty(*r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "must not be empty"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BranchResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func ToBranchResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:       b.ID,
		Code:     b.Code,
		Name:     b.Name,
		IsActive: b.IsActive,
	}
}
