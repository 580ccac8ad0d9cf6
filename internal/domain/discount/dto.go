package discount

import (
	"github.com/pickprod/pickprod-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateDiscountRecordRequest struct {
	EmployeeID  string           `json:"employee_id"`
	PeriodMonth int              `json:"period_month"`
	PeriodYear  int              `json:"period_year"`
	Counts      OccurrenceCounts `json:"counts"`
}

func (r *CreateDiscountRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year in a plausible range"})
	}
	errs = append(errs, validateCounts(r.Counts)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDiscountRecordRequest struct {
	ID     string
	Counts OccurrenceCounts `json:"counts"`
}

func (r *UpdateDiscountRecordRequest) Validate() error {
	errs := validateCounts(r.Counts)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCounts(c OccurrenceCounts) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if c.UnexcusedAbsences < 0 {
		errs = append(errs, validator.ValidationError{Field: "counts.unexcused_absences", Message: "must be non-negative"})
	}
	if c.Warnings < 0 {
		errs = append(errs, validator.ValidationError{Field: "counts.warnings", Message: "must be non-negative"})
	}
	if c.Suspensions < 0 {
		errs = append(errs, validator.ValidationError{Field: "counts.suspensions", Message: "must be non-negative"})
	}
	if c.MedicalLeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "counts.medical_leave_days", Message: "must be non-negative"})
	}

	return errs
}

type DiscountRecordFilter struct {
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	Page        int
	Limit       int
}

type DiscountRecordResponse struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	EmployeeName *string          `json:"employee_name,omitempty"`
	Registration *string          `json:"registration,omitempty"`
	PeriodMonth  int              `json:"period_month"`
	PeriodYear   int              `json:"period_year"`
	Counts       OccurrenceCounts `json:"counts"`
	PercentTotal decimal.Decimal  `json:"percent_total"`
}

func ToDiscountRecordResponse(r DiscountRecord) DiscountRecordResponse {
	return DiscountRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Registration: r.Registration,
		PeriodMonth:  r.PeriodMonth,
		PeriodYear:   r.PeriodYear,
		Counts:       r.Counts,
		PercentTotal: r.PercentTotal,
	}
}

// PreviewDiscountRequest feeds the pure discount computation without
// touching stored records.
type PreviewDiscountRequest struct {
	Counts OccurrenceCounts `json:"counts"`
}

type PreviewDiscountResponse struct {
	PercentTotal decimal.Decimal `json:"percent_total"`
}
