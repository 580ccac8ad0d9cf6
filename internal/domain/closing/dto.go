package closing

import (
	"github.com/pickprod/pickprod-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RunClosingRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *RunClosingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year in a plausible range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeFailure reports one employee whose closing row could not be
// written. The rest of the batch is unaffected.
type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type RunClosingResponse struct {
	PeriodMonth int               `json:"period_month"`
	PeriodYear  int               `json:"period_year"`
	Processed   int               `json:"processed"`
	Skipped     int               `json:"skipped"`
	Failures    []EmployeeFailure `json:"failures,omitempty"`
}

type ClosingFilter struct {
	PeriodMonth int
	PeriodYear  int
	EmployeeID  string
	BranchID    string
}

type ClosingRecordResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`

	Collections int             `json:"collections"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	TotalBoxes  int             `json:"total_boxes"`
	PalletCount float64         `json:"pallet_count"`
	TotalHours  float64         `json:"total_hours"`

	WeightPerHour  *float64 `json:"weight_per_hour"`
	VolumePerHour  *float64 `json:"volume_per_hour"`
	PalletsPerHour *float64 `json:"pallets_per_hour"`

	GrossValue         decimal.Decimal `json:"gross_value"`
	DiscountPercent    decimal.Decimal `json:"discount_percent"`
	DiscountValue      decimal.Decimal `json:"discount_value"`
	ErrorPercent       decimal.Decimal `json:"error_percent"`
	ErrorDiscountValue decimal.Decimal `json:"error_discount_value"`
	FinalValue         decimal.Decimal `json:"final_value"`
	Target             decimal.Decimal `json:"target"`
	AttainmentPercent  decimal.Decimal `json:"attainment_percent"`

	EmployeeName *string `json:"employee_name,omitempty"`
	Registration *string `json:"registration,omitempty"`
	BranchName   *string `json:"branch_name,omitempty"`
}

func ToClosingRecordResponse(r ClosingRecord) ClosingRecordResponse {
	return ClosingRecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		PeriodMonth:        r.PeriodMonth,
		PeriodYear:         r.PeriodYear,
		Collections:        r.Collections,
		TotalWeight:        r.TotalWeight,
		TotalBoxes:         r.TotalBoxes,
		PalletCount:        r.PalletCount,
		TotalHours:         r.TotalHours,
		WeightPerHour:      r.WeightPerHour,
		VolumePerHour:      r.VolumePerHour,
		PalletsPerHour:     r.PalletsPerHour,
		GrossValue:         r.GrossValue,
		DiscountPercent:    r.DiscountPercent,
		DiscountValue:      r.DiscountValue,
		ErrorPercent:       r.ErrorPercent,
		ErrorDiscountValue: r.ErrorDiscountValue,
		FinalValue:         r.FinalValue,
		Target:             r.Target,
		AttainmentPercent:  r.AttainmentPercent,
		EmployeeName:       r.EmployeeName,
		Registration:       r.Registration,
		BranchName:         r.BranchName,
	}
}

// PeriodSummary - Report aggregates for one closed period.
type PeriodSummary struct {
	PeriodMonth       int             `json:"period_month"`
	PeriodYear        int             `json:"period_year"`
	Employees         int             `json:"employees"`
	TotalGross        decimal.Decimal `json:"total_gross"`
	TotalDiscounts    decimal.Decimal `json:"total_discounts"`
	TotalFinal        decimal.Decimal `json:"total_final"`
	AverageAttainment decimal.Decimal `json:"average_attainment"`
}

type PeriodReportResponse struct {
	Summary PeriodSummary           `json:"summary"`
	Records []ClosingRecordResponse `json:"records"`
}
