package production

import (
	"context"
	"time"
)

// ProductionRepository defines data access for receiving lines and time
// windows. Both tables are append-only from ingestion; inserts return
// ErrLineExists/ErrWindowExists on natural-key conflicts so the caller can
// count duplicates instead of aborting.
type ProductionRepository interface {
	InsertReceivingLine(ctx context.Context, line ReceivingLine) error
	InsertTimeWindow(ctx context.Context, w TimeWindow) error

	// FindCollectionID resolves a collection code against already-persisted
	// receiving lines. Returns ErrLineNotFound when no line carries the code.
	FindCollectionID(ctx context.Context, collectionCode string) (string, error)

	GetLineByID(ctx context.Context, id string) (ReceivingLine, error)
	ListLines(ctx context.Context, filter ProductionFilter) ([]ReceivingLine, error)
	ListWindows(ctx context.Context, filter ProductionFilter) ([]TimeWindow, error)
	ListLinesByPeriod(ctx context.Context, from, to time.Time) ([]ReceivingLine, error)
	ListWindowsByPeriod(ctx context.Context, from, to time.Time) ([]TimeWindow, error)

	AssignEmployee(ctx context.Context, lineID, employeeID string) error
	UpdateLineErrors(ctx context.Context, req UpdateLineErrorsRequest) error
}
