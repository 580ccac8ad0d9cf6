package closing

import "context"

// ClosingRepository defines data access for closing records. Upsert is keyed
// by (employee, month, year); re-running a period overwrites rows in place.
type ClosingRepository interface {
	Upsert(ctx context.Context, record ClosingRecord) (ClosingRecord, error)
	GetByID(ctx context.Context, id string) (ClosingRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (ClosingRecord, error)
	List(ctx context.Context, filter ClosingFilter) ([]ClosingRecord, error)
	Delete(ctx context.Context, id string) error
}
