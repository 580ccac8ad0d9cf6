package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/database"
)

type productionRepository struct {
	db *database.DB
}

func NewProductionRepository(db *database.DB) production.ProductionRepository {
	return &productionRepository{db: db}
}

// ========== RECEIVING LINES ==========

const lineColumns = `
	id, collection_id, branch_id, collection_code, supplier, invoice_number,
	client_code, receipt_date, received_by, employee_id, box_count, net_weight,
	separation_errors, delivery_errors, note, created_at
`

func scanLine(row pgx.Row) (production.ReceivingLine, error) {
	var l production.ReceivingLine
	err := row.Scan(
		&l.ID, &l.CollectionID, &l.BranchID, &l.CollectionCode, &l.Supplier, &l.InvoiceNumber,
		&l.ClientCode, &l.ReceiptDate, &l.ReceivedBy, &l.EmployeeID, &l.BoxCount, &l.NetWeight,
		&l.SeparationErrors, &l.DeliveryErrors, &l.Note, &l.CreatedAt,
	)
	return l, err
}

func (r *productionRepository) InsertReceivingLine(ctx context.Context, line production.ReceivingLine) error {
	q := GetQuerier(ctx, r.db)

	// line_key is the natural dedup key; re-uploading the same file conflicts
	// here and surfaces as ErrLineExists.
	query := `
		INSERT INTO receiving_lines (
			id, collection_id, branch_id, collection_code, supplier, invoice_number,
			client_code, receipt_date, received_by, employee_id, box_count, net_weight,
			separation_errors, delivery_errors, note, line_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := q.Exec(ctx, query,
		line.ID, line.CollectionID, line.BranchID, line.CollectionCode, line.Supplier, line.InvoiceNumber,
		line.ClientCode, line.ReceiptDate, line.ReceivedBy, line.EmployeeID, line.BoxCount, line.NetWeight,
		line.SeparationErrors, line.DeliveryErrors, line.Note, line.LineKey(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return production.ErrLineExists
		}
		return fmt.Errorf("failed to insert receiving line: %w", err)
	}

	return nil
}

func (r *productionRepository) FindCollectionID(ctx context.Context, collectionCode string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT collection_id
		FROM receiving_lines
		WHERE collection_code = $1
		ORDER BY created_at
		LIMIT 1
	`

	var id string
	err := q.QueryRow(ctx, query, collectionCode).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", production.ErrLineNotFound
		}
		return "", fmt.Errorf("failed to find collection: %w", err)
	}

	return id, nil
}

func (r *productionRepository) GetLineByID(ctx context.Context, id string) (production.ReceivingLine, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM receiving_lines WHERE id = $1`, lineColumns)

	l, err := scanLine(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return production.ReceivingLine{}, production.ErrLineNotFound
		}
		return production.ReceivingLine{}, fmt.Errorf("failed to get receiving line: %w", err)
	}

	return l, nil
}

func (r *productionRepository) ListLines(ctx context.Context, filter production.ProductionFilter) ([]production.ReceivingLine, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.BranchID != "" {
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argPos))
		args = append(args, filter.BranchID)
		argPos++
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("receipt_date >= $%d", argPos))
		args = append(args, filter.From)
		argPos++
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("receipt_date < $%d", argPos))
		args = append(args, filter.To)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM receiving_lines
		WHERE %s
		ORDER BY created_at
	`, lineColumns, strings.Join(conditions, " AND "))

	return r.queryLines(ctx, q, query, args...)
}

func (r *productionRepository) ListLinesByPeriod(ctx context.Context, from, to time.Time) ([]production.ReceivingLine, error) {
	q := GetQuerier(ctx, r.db)

	// Lines without a parseable receipt date fall back to ingestion time so
	// they still land in some period instead of vanishing from every report.
	query := fmt.Sprintf(`
		SELECT %s
		FROM receiving_lines
		WHERE COALESCE(receipt_date, created_at) >= $1
		  AND COALESCE(receipt_date, created_at) < $2
		ORDER BY created_at
	`, lineColumns)

	return r.queryLines(ctx, q, query, from, to)
}

func (r *productionRepository) queryLines(ctx context.Context, q database.Querier, query string, args ...any) ([]production.ReceivingLine, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receiving lines: %w", err)
	}
	defer rows.Close()

	var lines []production.ReceivingLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receiving line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *productionRepository) AssignEmployee(ctx context.Context, lineID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE receiving_lines SET employee_id = $2 WHERE id = $1`, lineID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to assign employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return production.ErrLineNotFound
	}

	return nil
}

func (r *productionRepository) UpdateLineErrors(ctx context.Context, req production.UpdateLineErrorsRequest) error {
	q := GetQuerier(ctx, r.db)

	// Notes append; the original ingested text is never overwritten.
	query := `
		UPDATE receiving_lines SET
			separation_errors = COALESCE($2, separation_errors),
			delivery_errors = COALESCE($3, delivery_errors),
			note = CASE
				WHEN $4::text IS NULL OR $4 = '' THEN note
				WHEN note = '' THEN $4
				ELSE note || E'\n' || $4
			END
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.LineID, req.SeparationErrors, req.DeliveryErrors, req.Note)
	if err != nil {
		return fmt.Errorf("failed to update receiving line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return production.ErrLineNotFound
	}

	return nil
}

// ========== TIME WINDOWS ==========

const windowColumns = `
	id, branch_id, collection_code, collection_id, started_at, ended_at,
	duration_hours, created_at
`

func scanWindow(row pgx.Row) (production.TimeWindow, error) {
	var w production.TimeWindow
	var duration *float64
	err := row.Scan(
		&w.ID, &w.BranchID, &w.CollectionCode, &w.CollectionID, &w.StartedAt, &w.EndedAt,
		&duration, &w.CreatedAt,
	)
	if duration != nil {
		w.DurationHours = production.SomeFloat(*duration)
	}
	return w, err
}

func (r *productionRepository) InsertTimeWindow(ctx context.Context, w production.TimeWindow) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_windows (
			id, branch_id, collection_code, collection_id, started_at, ended_at, duration_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		w.ID, w.BranchID, w.CollectionCode, w.CollectionID, w.StartedAt, w.EndedAt,
		w.DurationHours.Ptr(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return production.ErrWindowExists
		}
		return fmt.Errorf("failed to insert time window: %w", err)
	}

	return nil
}

func (r *productionRepository) ListWindows(ctx context.Context, filter production.ProductionFilter) ([]production.TimeWindow, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.BranchID != "" {
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argPos))
		args = append(args, filter.BranchID)
		argPos++
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("started_at >= $%d", argPos))
		args = append(args, filter.From)
		argPos++
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("started_at < $%d", argPos))
		args = append(args, filter.To)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_windows
		WHERE %s
		ORDER BY created_at
	`, windowColumns, strings.Join(conditions, " AND "))

	return r.queryWindows(ctx, q, query, args...)
}

func (r *productionRepository) ListWindowsByPeriod(ctx context.Context, from, to time.Time) ([]production.TimeWindow, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_windows
		WHERE COALESCE(started_at, created_at) >= $1
		  AND COALESCE(started_at, created_at) < $2
		ORDER BY created_at
	`, windowColumns)

	return r.queryWindows(ctx, q, query, from, to)
}

func (r *productionRepository) queryWindows(ctx context.Context, q database.Querier, query string, args ...any) ([]production.TimeWindow, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time windows: %w", err)
	}
	defer rows.Close()

	var windows []production.TimeWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time window: %w", err)
		}
		windows = append(windows, w)
	}

	return windows, rows.Err()
}
