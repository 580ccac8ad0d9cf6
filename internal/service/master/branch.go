package master

import (
	"context"

	"github.com/google/uuid"
	"github.com/pickprod/pickprod-backend-go/internal/domain/branch"
)

type BranchServiceImpl struct {
	branchRepo branch.BranchRepository
}

func NewBranchService(branchRepo branch.BranchRepository) branch.BranchService {
	return &BranchServiceImpl{branchRepo: branchRepo}
}

func (s *BranchServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.branchRepo.Create(ctx, branch.Branch{
		ID:       uuid.New().String(),
		Code:     req.Code,
		Name:     req.Name,
		IsActive: true,
	})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return branch.ToBranchResponse(created), nil
}

func (s *BranchServiceImpl) GetBranch(ctx context.Context, id string) (branch.BranchResponse, error) {
	b, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToBranchResponse(b), nil
}

func (s *BranchServiceImpl) ListBranches(ctx context.Context, activeOnly bool) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, branch.ToBranchResponse(b))
	}
	return responses, nil
}

func (s *BranchServiceImpl) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	if err := s.branchRepo.Update(ctx, req); err != nil {
		return branch.BranchResponse{}, err
	}

	return s.GetBranch(ctx, req.ID)
}

func (s *BranchServiceImpl) DeleteBranch(ctx context.Context, id string) error {
	return s.branchRepo.Delete(ctx, id)
}
