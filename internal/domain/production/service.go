package production

import "context"

// IngestService turns parsed spreadsheet tables into persisted rows.
type IngestService interface {
	// Ingest validates the table structure, resolves branches, and persists
	// every row of the declared kind. Structural and referential failures
	// abort the whole batch; duplicate rows are counted, not fatal.
	Ingest(ctx context.Context, req IngestRequest) (IngestResult, error)
}

// MetricsService derives per-collection and per-employee throughput.
type MetricsService interface {
	// CollectionMetrics groups receiving lines by collection for the filter
	// range, joins the first matching time window, and derives rates.
	CollectionMetrics(ctx context.Context, filter ProductionFilter) ([]CollectionMetrics, error)

	// EmployeeProduction aggregates a calendar month per assigned employee.
	// Employees with no lines in the period are absent from the result.
	EmployeeProduction(ctx context.Context, month, year int) ([]EmployeeProduction, error)

	// UpdateLineErrors records separation/delivery errors observed after
	// receiving, appending any note text to the line.
	UpdateLineErrors(ctx context.Context, req UpdateLineErrorsRequest) (ReceivingLineResponse, error)

	// AssignEmployee links a receiving line to the employee who worked it.
	AssignEmployee(ctx context.Context, req AssignEmployeeRequest) (ReceivingLineResponse, error)

	// ListLines returns raw receiving lines for review screens.
	ListLines(ctx context.Context, filter ProductionFilter) ([]ReceivingLineResponse, error)
}
