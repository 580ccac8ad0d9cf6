package closing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingRecord - The persisted monthly outcome for one employee: period
// aggregates, derived rates, valuation and discount results, and the final
// capped bonus. One row per (employee, month, year), overwritten on re-run.
type ClosingRecord struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	// Production aggregates
	Collections int
	TotalWeight decimal.Decimal
	TotalBoxes  int
	PalletCount float64
	TotalHours  float64

	// Derived rates, null when no valid duration existed in the period
	WeightPerHour  *float64
	VolumePerHour  *float64
	PalletsPerHour *float64

	// Valuation and discounts
	GrossValue         decimal.Decimal
	DiscountPercent    decimal.Decimal
	DiscountValue      decimal.Decimal
	ErrorPercent       decimal.Decimal
	ErrorDiscountValue decimal.Decimal
	FinalValue         decimal.Decimal
	Target             decimal.Decimal
	AttainmentPercent  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	Registration *string
	BranchName   *string
}
