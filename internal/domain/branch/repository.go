package branch

import "context"

// BranchRepository defines data access methods for branches.
type BranchRepository interface {
	Create(ctx context.Context, b Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	GetByCode(ctx context.Context, code string) (Branch, error)
	List(ctx context.Context, activeOnly bool) ([]Branch, error)
	Update(ctx context.Context, req UpdateBranchRequest) error
	Delete(ctx context.Context, id string) error
}
