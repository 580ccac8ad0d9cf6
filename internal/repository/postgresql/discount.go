package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/discount"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/database"
)

type discountRepository struct {
	db *database.DB
}

func NewDiscountRepository(db *database.DB) discount.DiscountRepository {
	return &discountRepository{db: db}
}

const discountColumns = `
	d.id, d.employee_id, d.period_month, d.period_year,
	d.unexcused_absences, d.on_vacation, d.warnings, d.suspensions, d.medical_leave_days,
	d.percent_total, d.created_at, d.updated_at, e.full_name, e.registration
`

func scanDiscountRecord(row pgx.Row) (discount.DiscountRecord, error) {
	var d discount.DiscountRecord
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.PeriodMonth, &d.PeriodYear,
		&d.Counts.UnexcusedAbsences, &d.Counts.OnVacation, &d.Counts.Warnings,
		&d.Counts.Suspensions, &d.Counts.MedicalLeaveDays,
		&d.PercentTotal, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeName, &d.Registration,
	)
	return d, err
}

func (r *discountRepository) Create(ctx context.Context, record discount.DiscountRecord) (discount.DiscountRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO discount_records (
			id, employee_id, period_month, period_year,
			unexcused_absences, on_vacation, warnings, suspensions, medical_leave_days,
			percent_total
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.Counts.UnexcusedAbsences, record.Counts.OnVacation, record.Counts.Warnings,
		record.Counts.Suspensions, record.Counts.MedicalLeaveDays,
		record.PercentTotal,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return discount.DiscountRecord{}, discount.ErrRecordAlreadyExists
		}
		return discount.DiscountRecord{}, fmt.Errorf("failed to create discount record: %w", err)
	}

	return r.GetByID(ctx, record.ID)
}

func (r *discountRepository) GetByID(ctx context.Context, id string) (discount.DiscountRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM discount_records d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.id = $1
	`, discountColumns)

	d, err := scanDiscountRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return discount.DiscountRecord{}, discount.ErrRecordNotFound
		}
		return discount.DiscountRecord{}, fmt.Errorf("failed to get discount record: %w", err)
	}

	return d, nil
}

func (r *discountRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (discount.DiscountRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM discount_records d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1 AND d.period_month = $2 AND d.period_year = $3
	`, discountColumns)

	d, err := scanDiscountRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return discount.DiscountRecord{}, discount.ErrRecordNotFound
		}
		return discount.DiscountRecord{}, fmt.Errorf("failed to get discount record: %w", err)
	}

	return d, nil
}

func (r *discountRepository) List(ctx context.Context, filter discount.DiscountRecordFilter) ([]discount.DiscountRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("d.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.PeriodMonth != 0 {
		conditions = append(conditions, fmt.Sprintf("d.period_month = $%d", argPos))
		args = append(args, filter.PeriodMonth)
		argPos++
	}
	if filter.PeriodYear != 0 {
		conditions = append(conditions, fmt.Sprintf("d.period_year = $%d", argPos))
		args = append(args, filter.PeriodYear)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM discount_records d WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count discount records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM discount_records d
		JOIN employees e ON e.id = d.employee_id
		WHERE %s
		ORDER BY d.period_year DESC, d.period_month DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, discountColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list discount records: %w", err)
	}
	defer rows.Close()

	var records []discount.DiscountRecord
	for rows.Next() {
		d, err := scanDiscountRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan discount record: %w", err)
		}
		records = append(records, d)
	}

	return records, total, rows.Err()
}

func (r *discountRepository) Update(ctx context.Context, record discount.DiscountRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE discount_records SET
			unexcused_absences = $2,
			on_vacation = $3,
			warnings = $4,
			suspensions = $5,
			medical_leave_days = $6,
			percent_total = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.Counts.UnexcusedAbsences, record.Counts.OnVacation, record.Counts.Warnings,
		record.Counts.Suspensions, record.Counts.MedicalLeaveDays,
		record.PercentTotal,
	)
	if err != nil {
		return fmt.Errorf("failed to update discount record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return discount.ErrRecordNotFound
	}

	return nil
}

func (r *discountRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM discount_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete discount record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return discount.ErrRecordNotFound
	}

	return nil
}
