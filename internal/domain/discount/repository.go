package discount

import "context"

// DiscountRepository defines data access for discount records.
type DiscountRepository interface {
	Create(ctx context.Context, record DiscountRecord) (DiscountRecord, error)
	GetByID(ctx context.Context, id string) (DiscountRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (DiscountRecord, error)
	List(ctx context.Context, filter DiscountRecordFilter) ([]DiscountRecord, int64, error)
	Update(ctx context.Context, record DiscountRecord) error
	Delete(ctx context.Context, id string) error
}
