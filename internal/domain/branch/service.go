package branch

import "context"

// BranchService defines business logic for branch operations
type BranchService interface {
	CreateBranch(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetBranch(ctx context.Context, id string) (BranchResponse, error)
	ListBranches(ctx context.Context, activeOnly bool) ([]BranchResponse, error)
	UpdateBranch(ctx context.Context, req UpdateBranchRequest) (BranchResponse, error)
	DeleteBranch(ctx context.Context, id string) error
}
