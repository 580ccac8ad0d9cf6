package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/closing"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/database"
)

type closingRepository struct {
	db *database.DB
}

func NewClosingRepository(db *database.DB) closing.ClosingRepository {
	return &closingRepository{db: db}
}

const closingColumns = `
	c.id, c.employee_id, c.period_month, c.period_year,
	c.collections, c.total_weight, c.total_boxes, c.pallet_count, c.total_hours,
	c.weight_per_hour, c.volume_per_hour, c.pallets_per_hour,
	c.gross_value, c.discount_percent, c.discount_value,
	c.error_percent, c.error_discount_value,
	c.final_value, c.target, c.attainment_percent,
	c.created_at, c.updated_at, e.full_name, e.registration, b.name
`

func scanClosingRecord(row pgx.Row) (closing.ClosingRecord, error) {
	var c closing.ClosingRecord
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.PeriodMonth, &c.PeriodYear,
		&c.Collections, &c.TotalWeight, &c.TotalBoxes, &c.PalletCount, &c.TotalHours,
		&c.WeightPerHour, &c.VolumePerHour, &c.PalletsPerHour,
		&c.GrossValue, &c.DiscountPercent, &c.DiscountValue,
		&c.ErrorPercent, &c.ErrorDiscountValue,
		&c.FinalValue, &c.Target, &c.AttainmentPercent,
		&c.CreatedAt, &c.UpdatedAt, &c.EmployeeName, &c.Registration, &c.BranchName,
	)
	return c, err
}

// Upsert writes the full recomputed row, keyed by (employee, month, year).
// The stored id survives re-runs so references stay stable.
func (r *closingRepository) Upsert(ctx context.Context, record closing.ClosingRecord) (closing.ClosingRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO closing_records (
			id, employee_id, period_month, period_year,
			collections, total_weight, total_boxes, pallet_count, total_hours,
			weight_per_hour, volume_per_hour, pallets_per_hour,
			gross_value, discount_percent, discount_value,
			error_percent, error_discount_value,
			final_value, target, attainment_percent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (employee_id, period_month, period_year) DO UPDATE SET
			collections = EXCLUDED.collections,
			total_weight = EXCLUDED.total_weight,
			total_boxes = EXCLUDED.total_boxes,
			pallet_count = EXCLUDED.pallet_count,
			total_hours = EXCLUDED.total_hours,
			weight_per_hour = EXCLUDED.weight_per_hour,
			volume_per_hour = EXCLUDED.volume_per_hour,
			pallets_per_hour = EXCLUDED.pallets_per_hour,
			gross_value = EXCLUDED.gross_value,
			discount_percent = EXCLUDED.discount_percent,
			discount_value = EXCLUDED.discount_value,
			error_percent = EXCLUDED.error_percent,
			error_discount_value = EXCLUDED.error_discount_value,
			final_value = EXCLUDED.final_value,
			target = EXCLUDED.target,
			attainment_percent = EXCLUDED.attainment_percent,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.Collections, record.TotalWeight, record.TotalBoxes, record.PalletCount, record.TotalHours,
		record.WeightPerHour, record.VolumePerHour, record.PalletsPerHour,
		record.GrossValue, record.DiscountPercent, record.DiscountValue,
		record.ErrorPercent, record.ErrorDiscountValue,
		record.FinalValue, record.Target, record.AttainmentPercent,
	).Scan(&id)
	if err != nil {
		return closing.ClosingRecord{}, fmt.Errorf("failed to upsert closing record: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *closingRepository) GetByID(ctx context.Context, id string) (closing.ClosingRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM closing_records c
		JOIN employees e ON e.id = c.employee_id
		JOIN branches b ON b.id = e.branch_id
		WHERE c.id = $1
	`, closingColumns)

	c, err := scanClosingRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return closing.ClosingRecord{}, closing.ErrRecordNotFound
		}
		return closing.ClosingRecord{}, fmt.Errorf("failed to get closing record: %w", err)
	}

	return c, nil
}

func (r *closingRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (closing.ClosingRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM closing_records c
		JOIN employees e ON e.id = c.employee_id
		JOIN branches b ON b.id = e.branch_id
		WHERE c.employee_id = $1 AND c.period_month = $2 AND c.period_year = $3
	`, closingColumns)

	c, err := scanClosingRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return closing.ClosingRecord{}, closing.ErrRecordNotFound
		}
		return closing.ClosingRecord{}, fmt.Errorf("failed to get closing record: %w", err)
	}

	return c, nil
}

func (r *closingRepository) List(ctx context.Context, filter closing.ClosingFilter) ([]closing.ClosingRecord, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.PeriodMonth != 0 {
		conditions = append(conditions, fmt.Sprintf("c.period_month = $%d", argPos))
		args = append(args, filter.PeriodMonth)
		argPos++
	}
	if filter.PeriodYear != 0 {
		conditions = append(conditions, fmt.Sprintf("c.period_year = $%d", argPos))
		args = append(args, filter.PeriodYear)
		argPos++
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("c.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.BranchID != "" {
		conditions = append(conditions, fmt.Sprintf("e.branch_id = $%d", argPos))
		args = append(args, filter.BranchID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM closing_records c
		JOIN employees e ON e.id = c.employee_id
		JOIN branches b ON b.id = e.branch_id
		WHERE %s
		ORDER BY c.period_year DESC, c.period_month DESC, e.full_name
	`, closingColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list closing records: %w", err)
	}
	defer rows.Close()

	var records []closing.ClosingRecord
	for rows.Next() {
		c, err := scanClosingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan closing record: %w", err)
		}
		records = append(records, c)
	}

	return records, rows.Err()
}

func (r *closingRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM closing_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete closing record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return closing.ErrRecordNotFound
	}

	return nil
}
