package production

import (
	"time"

	"github.com/pickprod/pickprod-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// IngestKind enum
type IngestKind string

const (
	KindReceivingDetail IngestKind = "receiving-detail"
	KindTimeWindow      IngestKind = "time-window"
)

func (k IngestKind) Valid() bool {
	return k == KindReceivingDetail || k == KindTimeWindow
}

// Table - In-memory spreadsheet contents handed to ingestion. The upload
// handler builds it from xlsx or JSON; ingestion never touches file formats.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type IngestRequest struct {
	Kind  IngestKind `json:"kind"`
	Table Table      `json:"table"`
}

func (r *IngestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'receiving-detail' or 'time-window'"})
	}
	if len(r.Table.Header) == 0 {
		errs = append(errs, validator.ValidationError{Field: "table.header", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type IngestResult struct {
	Inserted   int           `json:"inserted"`
	Duplicates int           `json:"duplicates"`
	Rejected   []RejectedRow `json:"rejected"`
}

type ProductionFilter struct {
	BranchID string
	From     time.Time
	To       time.Time
}

type AssignEmployeeRequest struct {
	LineID     string
	EmployeeID string `json:"employee_id"`
}

func (r *AssignEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLineErrorsRequest struct {
	LineID           string
	SeparationErrors *int    `json:"separation_errors,omitempty"`
	DeliveryErrors   *int    `json:"delivery_errors,omitempty"`
	Note             *string `json:"note,omitempty"`
}

func (r *UpdateLineErrorsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SeparationErrors != nil && *r.SeparationErrors < 0 {
		errs = append(errs, validator.ValidationError{Field: "separation_errors", Message: "must be non-negative"})
	}
	if r.DeliveryErrors != nil && *r.DeliveryErrors < 0 {
		errs = append(errs, validator.ValidationError{Field: "delivery_errors", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReceivingLineResponse struct {
	ID               string          `json:"id"`
	CollectionID     string          `json:"collection_id"`
	BranchID         string          `json:"branch_id"`
	CollectionCode   string          `json:"collection_code"`
	Supplier         string          `json:"supplier"`
	InvoiceNumber    string          `json:"invoice_number"`
	ClientCode       string          `json:"client_code,omitempty"`
	ReceiptDate      *time.Time      `json:"receipt_date,omitempty"`
	ReceivedBy       string          `json:"received_by"`
	EmployeeID       *string         `json:"employee_id,omitempty"`
	BoxCount         int             `json:"box_count"`
	NetWeight        decimal.Decimal `json:"net_weight"`
	SeparationErrors int             `json:"separation_errors"`
	DeliveryErrors   int             `json:"delivery_errors"`
	Note             string          `json:"note,omitempty"`
}

func ToReceivingLineResponse(l ReceivingLine) ReceivingLineResponse {
	return ReceivingLineResponse{
		ID:               l.ID,
		CollectionID:     l.CollectionID,
		BranchID:         l.BranchID,
		CollectionCode:   l.CollectionCode,
		Supplier:         l.Supplier,
		InvoiceNumber:    l.InvoiceNumber,
		ClientCode:       l.ClientCode,
		ReceiptDate:      l.ReceiptDate,
		ReceivedBy:       l.ReceivedBy,
		EmployeeID:       l.EmployeeID,
		BoxCount:         l.BoxCount,
		NetWeight:        l.NetWeight,
		SeparationErrors: l.SeparationErrors,
		DeliveryErrors:   l.DeliveryErrors,
		Note:             l.Note,
	}
}

type CollectionMetricsResponse struct {
	CollectionID   string          `json:"collection_id"`
	CollectionCode string          `json:"collection_code"`
	BranchID       string          `json:"branch_id"`
	TotalWeight    decimal.Decimal `json:"total_weight"`
	TotalBoxes     int             `json:"total_boxes"`
	PalletCount    float64         `json:"pallet_count"`
	DurationHours  *float64        `json:"duration_hours"`
	WeightPerHour  *float64        `json:"weight_per_hour"`
	VolumePerHour  *float64        `json:"volume_per_hour"`
	PalletsPerHour *float64        `json:"pallets_per_hour"`
}

func ToCollectionMetricsResponse(m CollectionMetrics) CollectionMetricsResponse {
	return CollectionMetricsResponse{
		CollectionID:   m.CollectionID,
		CollectionCode: m.CollectionCode,
		BranchID:       m.BranchID,
		TotalWeight:    m.TotalWeight,
		TotalBoxes:     m.TotalBoxes,
		PalletCount:    m.PalletCount,
		DurationHours:  m.DurationHours.Ptr(),
		WeightPerHour:  m.WeightPerHour.Ptr(),
		VolumePerHour:  m.VolumePerHour.Ptr(),
		PalletsPerHour: m.PalletsPerHour.Ptr(),
	}
}
