package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.registration, e.full_name, e.branch_id, e.role, e.is_active,
	e.created_at, e.updated_at, b.name, b.code
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Registration, &e.FullName, &e.BranchID, &e.Role, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt, &e.BranchName, &e.BranchCode,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, registration, full_name, branch_id, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query, e.ID, e.Registration, e.FullName, e.BranchID, e.Role, e.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrRegistrationExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return r.GetByID(ctx, e.ID)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.id = $1
	`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByRegistration(ctx context.Context, registration string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.registration = $1
	`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query, registration))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if filter.BranchID != "" {
		conditions = append(conditions, fmt.Sprintf("e.branch_id = $%d", argPos))
		args = append(args, filter.BranchID)
		argPos++
	}
	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("e.role = $%d", argPos))
		args = append(args, filter.Role)
		argPos++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "e.is_active = TRUE")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.full_name ILIKE $%d OR e.registration ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees e WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE %s
		ORDER BY e.full_name
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, total, rows.Err()
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.listActive(ctx, "")
}

func (r *employeeRepository) ListActiveByBranch(ctx context.Context, branchID string) ([]employee.Employee, error) {
	return r.listActive(ctx, branchID)
}

func (r *employeeRepository) listActive(ctx context.Context, branchID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.is_active = TRUE
	`, employeeColumns)

	args := []any{}
	if branchID != "" {
		query += ` AND e.branch_id = $1`
		args = append(args, branchID)
	}
	query += ` ORDER BY e.full_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			registration = COALESCE($2, registration),
			full_name = COALESCE($3, full_name),
			branch_id = COALESCE($4, branch_id),
			role = COALESCE($5, role),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Registration, req.FullName, req.BranchID, req.Role, req.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrRegistrationExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var closings int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM closing_records WHERE employee_id = $1`, id).Scan(&closings)
	if err != nil {
		return fmt.Errorf("failed to count closing records: %w", err)
	}
	if closings > 0 {
		return employee.ErrEmployeeHasClosingRecords
	}

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
