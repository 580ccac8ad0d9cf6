package discount

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pickprod/pickprod-backend-go/internal/domain/discount"
	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
)

type DiscountServiceImpl struct {
	discountRepo discount.DiscountRepository
	employeeRepo employee.EmployeeRepository
	rulesService rules.RulesService
}

func NewDiscountService(
	discountRepo discount.DiscountRepository,
	employeeRepo employee.EmployeeRepository,
	rulesService rules.RulesService,
) discount.DiscountService {
	return &DiscountServiceImpl{
		discountRepo: discountRepo,
		employeeRepo: employeeRepo,
		rulesService: rulesService,
	}
}

func (s *DiscountServiceImpl) CreateRecord(ctx context.Context, req discount.CreateDiscountRecordRequest) (discount.DiscountRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return discount.DiscountRecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return discount.DiscountRecordResponse{}, err
	}

	snap, err := s.rulesService.Snapshot(ctx)
	if err != nil {
		return discount.DiscountRecordResponse{}, fmt.Errorf("failed to load rules snapshot: %w", err)
	}

	record := discount.DiscountRecord{
		ID:           uuid.New().String(),
		EmployeeID:   req.EmployeeID,
		PeriodMonth:  req.PeriodMonth,
		PeriodYear:   req.PeriodYear,
		Counts:       req.Counts,
		PercentTotal: Percent(req.Counts, snap.Discounts),
	}

	created, err := s.discountRepo.Create(ctx, record)
	if err != nil {
		return discount.DiscountRecordResponse{}, err
	}

	return discount.ToDiscountRecordResponse(created), nil
}

func (s *DiscountServiceImpl) GetRecord(ctx context.Context, id string) (discount.DiscountRecordResponse, error) {
	record, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return discount.DiscountRecordResponse{}, err
	}
	return discount.ToDiscountRecordResponse(record), nil
}

func (s *DiscountServiceImpl) ListRecords(ctx context.Context, filter discount.DiscountRecordFilter) ([]discount.DiscountRecordResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.discountRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]discount.DiscountRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, discount.ToDiscountRecordResponse(record))
	}
	return responses, total, nil
}

func (s *DiscountServiceImpl) UpdateRecord(ctx context.Context, req discount.UpdateDiscountRecordRequest) (discount.DiscountRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return discount.DiscountRecordResponse{}, err
	}

	record, err := s.discountRepo.GetByID(ctx, req.ID)
	if err != nil {
		return discount.DiscountRecordResponse{}, err
	}

	snap, err := s.rulesService.Snapshot(ctx)
	if err != nil {
		return discount.DiscountRecordResponse{}, fmt.Errorf("failed to load rules snapshot: %w", err)
	}

	record.Counts = req.Counts
	record.PercentTotal = Percent(req.Counts, snap.Discounts)

	if err := s.discountRepo.Update(ctx, record); err != nil {
		return discount.DiscountRecordResponse{}, err
	}

	return discount.ToDiscountRecordResponse(record), nil
}

func (s *DiscountServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	return s.discountRepo.Delete(ctx, id)
}

func (s *DiscountServiceImpl) Preview(ctx context.Context, req discount.PreviewDiscountRequest) (discount.PreviewDiscountResponse, error) {
	snap, err := s.rulesService.Snapshot(ctx)
	if err != nil {
		return discount.PreviewDiscountResponse{}, fmt.Errorf("failed to load rules snapshot: %w", err)
	}

	return discount.PreviewDiscountResponse{
		PercentTotal: Percent(req.Counts, snap.Discounts),
	}, nil
}
