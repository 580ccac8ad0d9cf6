package closing

import "context"

// ClosingService runs the monthly closing batch and serves its results.
type ClosingService interface {
	// Run closes the period for every active employee. Employees with zero
	// production rows are skipped; per-employee failures are reported without
	// aborting the batch. Safe to re-run, rows are upserted.
	Run(ctx context.Context, req RunClosingRequest) (RunClosingResponse, error)

	GetRecord(ctx context.Context, id string) (ClosingRecordResponse, error)
	ListRecords(ctx context.Context, filter ClosingFilter) ([]ClosingRecordResponse, error)

	// Report joins a period's closing rows with employee and branch names and
	// computes the period summary.
	Report(ctx context.Context, month, year int) (PeriodReportResponse, error)
}
