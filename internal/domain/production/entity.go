package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptFloat distinguishes a missing measurement from a true zero. Rates
// derived from a null or non-positive duration stay invalid all the way
// through valuation instead of collapsing to 0.
type OptFloat struct {
	Float64 float64
	Valid   bool
}

func SomeFloat(v float64) OptFloat {
	return OptFloat{Float64: v, Valid: true}
}

func NoFloat() OptFloat {
	return OptFloat{}
}

// Or returns the value, or the fallback when the measurement is missing.
func (o OptFloat) Or(fallback float64) float64 {
	if o.Valid {
		return o.Float64
	}
	return fallback
}

func (o OptFloat) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Float64
	return &v
}

// ReceivingLine - One goods-receiving spreadsheet row. Immutable after
// ingestion except for the note, error counts and the employee assignment.
type ReceivingLine struct {
	ID               string
	CollectionID     string
	BranchID         string
	CollectionCode   string
	Supplier         string
	InvoiceNumber    string
	ClientCode       string
	ReceiptDate      *time.Time
	ReceivedBy       string
	EmployeeID       *string
	BoxCount         int
	NetWeight        decimal.Decimal
	SeparationErrors int
	DeliveryErrors   int
	Note             string
	CreatedAt        time.Time
}

// LineKey is the natural dedup key for a receiving line. Re-uploading the
// same file produces the same key and surfaces as a duplicate, not an error.
func (l ReceivingLine) LineKey() string {
	return l.CollectionCode + "|" + l.InvoiceNumber + "|" + l.ClientCode + "|" + l.Supplier
}

// TimeWindow - One time-log spreadsheet row per collection. CollectionID is
// null when the collection code matched no persisted receiving record.
type TimeWindow struct {
	ID             string
	BranchID       string
	CollectionCode string
	CollectionID   *string
	StartedAt      *time.Time
	EndedAt        *time.Time
	DurationHours  OptFloat
	CreatedAt      time.Time
}

// CollectionMetrics - Aggregates for one collection: every receiving line
// sharing the collection identifier plus at most one time window.
type CollectionMetrics struct {
	CollectionID   string
	CollectionCode string
	BranchID       string
	TotalWeight    decimal.Decimal
	TotalBoxes     int
	PalletCount    float64
	DurationHours  OptFloat
	WeightPerHour  OptFloat
	VolumePerHour  OptFloat
	PalletsPerHour OptFloat
}

// EmployeeProduction - Period aggregates for one employee across all
// collections they received.
type EmployeeProduction struct {
	EmployeeID       string
	Collections      int
	TotalWeight      decimal.Decimal
	TotalBoxes       int
	PalletCount      float64
	TotalHours       float64
	WeightPerHour    OptFloat
	VolumePerHour    OptFloat
	PalletsPerHour   OptFloat
	SeparationErrors int
	DeliveryErrors   int
}
