package discount

import "context"

// DiscountService manages discount records. Writes recompute the stored
// percent total through the discount engine under the current rules.
type DiscountService interface {
	CreateRecord(ctx context.Context, req CreateDiscountRecordRequest) (DiscountRecordResponse, error)
	GetRecord(ctx context.Context, id string) (DiscountRecordResponse, error)
	ListRecords(ctx context.Context, filter DiscountRecordFilter) ([]DiscountRecordResponse, int64, error)
	UpdateRecord(ctx context.Context, req UpdateDiscountRecordRequest) (DiscountRecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error

	// Preview runs the pure counts-to-percent computation under the current
	// rules without persisting anything.
	Preview(ctx context.Context, req PreviewDiscountRequest) (PreviewDiscountResponse, error)
}
