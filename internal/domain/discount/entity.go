package discount

import (
	"time"

	"github.com/shopspring/decimal"
)

// OccurrenceCounts - Raw disciplinary/absence inputs for one employee/month.
type OccurrenceCounts struct {
	UnexcusedAbsences int  `json:"unexcused_absences"`
	OnVacation        bool `json:"on_vacation"`
	Warnings          int  `json:"warnings"`
	Suspensions       int  `json:"suspensions"`
	MedicalLeaveDays  int  `json:"medical_leave_days"`
}

// DiscountRecord - One per (employee, month, year): the raw counts plus the
// total percentage precomputed through the discount engine at write time.
type DiscountRecord struct {
	ID           string
	EmployeeID   string
	PeriodMonth  int
	PeriodYear   int
	Counts       OccurrenceCounts
	PercentTotal decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
	Registration *string
}
