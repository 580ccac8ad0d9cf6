package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pickprod/pickprod-backend-go/internal/domain/branch"
	"github.com/pickprod/pickprod-backend-go/internal/pkg/database"
)

type branchRepository struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (id, code, name, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, name, is_active, created_at, updated_at
	`

	var created branch.Branch
	err := q.QueryRow(ctx, query, b.ID, b.Code, b.Name, b.IsActive).Scan(
		&created.ID, &created.Code, &created.Name, &created.IsActive,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return branch.Branch{}, branch.ErrBranchCodeExists
		}
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return created, nil
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	return r.getBy(ctx, "id", id)
}

func (r *branchRepository) GetByCode(ctx context.Context, code string) (branch.Branch, error) {
	return r.getBy(ctx, "code", code)
}

func (r *branchRepository) getBy(ctx context.Context, column, value string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, code, name, is_active, created_at, updated_at
		FROM branches
		WHERE %s = $1
	`, column)

	var b branch.Branch
	err := q.QueryRow(ctx, query, value).Scan(
		&b.ID, &b.Code, &b.Name, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return b, nil
}

func (r *branchRepository) List(ctx context.Context, activeOnly bool) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, is_active, created_at, updated_at
		FROM branches
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		var b branch.Branch
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	return branches, rows.Err()
}

func (r *branchRepository) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches SET
			code = COALESCE($2, code),
			name = COALESCE($3, name),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Code, req.Name, req.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return branch.ErrBranchCodeExists
		}
		return fmt.Errorf("failed to update branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

func (r *branchRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var employees int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE branch_id = $1`, id).Scan(&employees)
	if err != nil {
		return fmt.Errorf("failed to count branch employees: %w", err)
	}
	if employees > 0 {
		return branch.ErrBranchHasEmployees
	}

	var lines int
	err = q.QueryRow(ctx, `SELECT COUNT(*) FROM receiving_lines WHERE branch_id = $1`, id).Scan(&lines)
	if err != nil {
		return fmt.Errorf("failed to count branch production: %w", err)
	}
	if lines > 0 {
		return branch.ErrBranchHasProduction
	}

	tag, err := q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}
