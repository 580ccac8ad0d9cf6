// Package closing runs the monthly batch that turns aggregated production
// into one persisted bonus record per employee.
package closing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pickprod/pickprod-backend-go/internal/domain/closing"
	"github.com/pickprod/pickprod-backend-go/internal/domain/discount"
	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	discountsvc "github.com/pickprod/pickprod-backend-go/internal/service/discount"
	"github.com/pickprod/pickprod-backend-go/internal/service/valuation"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type ClosingServiceImpl struct {
	closingRepo    closing.ClosingRepository
	discountRepo   discount.DiscountRepository
	employeeRepo   employee.EmployeeRepository
	metricsService production.MetricsService
	rulesService   rules.RulesService

	// The continuous model is authoritative for persisted records; the
	// threshold model is only served through the preview endpoint.
	strategy valuation.Strategy
}

func NewClosingService(
	closingRepo closing.ClosingRepository,
	discountRepo discount.DiscountRepository,
	employeeRepo employee.EmployeeRepository,
	metricsService production.MetricsService,
	rulesService rules.RulesService,
) closing.ClosingService {
	return &ClosingServiceImpl{
		closingRepo:    closingRepo,
		discountRepo:   discountRepo,
		employeeRepo:   employeeRepo,
		metricsService: metricsService,
		rulesService:   rulesService,
		strategy:       valuation.Continuous{},
	}
}

func (s *ClosingServiceImpl) Run(ctx context.Context, req closing.RunClosingRequest) (closing.RunClosingResponse, error) {
	if err := req.Validate(); err != nil {
		return closing.RunClosingResponse{}, err
	}

	// One snapshot for the whole batch: every employee is scored under the
	// same rule version no matter how long the run takes.
	snap, err := s.rulesService.Snapshot(ctx)
	if err != nil {
		return closing.RunClosingResponse{}, fmt.Errorf("failed to load rules snapshot: %w", err)
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return closing.RunClosingResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	productionByEmployee, err := s.metricsService.EmployeeProduction(ctx, req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return closing.RunClosingResponse{}, fmt.Errorf("failed to aggregate production: %w", err)
	}
	byEmployee := make(map[string]production.EmployeeProduction, len(productionByEmployee))
	for _, p := range productionByEmployee {
		byEmployee[p.EmployeeID] = p
	}

	result := closing.RunClosingResponse{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
	}

	for _, emp := range employees {
		prod, ok := byEmployee[emp.ID]
		if !ok {
			// No production rows: no closing row at all, not a zero row.
			result.Skipped++
			continue
		}

		record, err := s.closeEmployee(ctx, emp, prod, req, snap)
		if err != nil {
			result.Failures = append(result.Failures, closing.EmployeeFailure{
				EmployeeID: emp.ID,
				Error:      err.Error(),
			})
			continue
		}

		if _, err := s.closingRepo.Upsert(ctx, record); err != nil {
			result.Failures = append(result.Failures, closing.EmployeeFailure{
				EmployeeID: emp.ID,
				Error:      fmt.Sprintf("failed to persist closing record: %v", err),
			})
			continue
		}
		result.Processed++
	}

	return result, nil
}

// closeEmployee computes the full closing row for one employee. It touches
// no shared state, so failures stay contained to that employee.
func (s *ClosingServiceImpl) closeEmployee(ctx context.Context, emp employee.Employee, prod production.EmployeeProduction, req closing.RunClosingRequest, snap rules.Snapshot) (closing.ClosingRecord, error) {
	discountPercent := decimal.Zero
	discountRecord, err := s.discountRepo.GetByEmployeePeriod(ctx, emp.ID, req.PeriodMonth, req.PeriodYear)
	switch {
	case err == nil:
		// Recompute from the raw counts under this run's snapshot, so every
		// row in the batch reflects one rule version.
		discountPercent = discountsvc.Percent(discountRecord.Counts, snap.Discounts)
	case errors.Is(err, discount.ErrRecordNotFound):
		// No record means no discount.
	default:
		return closing.ClosingRecord{}, fmt.Errorf("failed to fetch discount record: %w", err)
	}

	branchCode := ""
	if emp.BranchCode != nil {
		branchCode = *emp.BranchCode
	}

	gross := s.strategy.Gross(valuation.Input{
		WeightPerHour:  prod.WeightPerHour,
		VolumePerHour:  prod.VolumePerHour,
		PalletsPerHour: prod.PalletsPerHour,
		Role:           emp.Role,
		BranchCode:     branchCode,
	}, snap)

	errorPercent := discountsvc.ErrorPercent(prod.SeparationErrors, prod.DeliveryErrors, snap.Discounts)

	discountValue := gross.Mul(discountPercent).Div(hundred).Round(2)
	errorDiscountValue := gross.Mul(errorPercent).Div(hundred).Round(2)

	final := gross.Sub(discountValue).Sub(errorDiscountValue)
	if final.IsNegative() {
		final = decimal.Zero
	}
	final = valuation.ClampCeiling(final, snap)

	target := snap.MonthlyTarget
	if !target.IsPositive() {
		target = rules.DefaultMonthlyTarget()
	}
	attainment := final.Div(target).Mul(hundred).Round(2)

	return closing.ClosingRecord{
		ID:          uuid.New().String(),
		EmployeeID:  emp.ID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,

		Collections: prod.Collections,
		TotalWeight: prod.TotalWeight,
		TotalBoxes:  prod.TotalBoxes,
		PalletCount: prod.PalletCount,
		TotalHours:  prod.TotalHours,

		WeightPerHour:  prod.WeightPerHour.Ptr(),
		VolumePerHour:  prod.VolumePerHour.Ptr(),
		PalletsPerHour: prod.PalletsPerHour.Ptr(),

		GrossValue:         gross,
		DiscountPercent:    discountPercent,
		DiscountValue:      discountValue,
		ErrorPercent:       errorPercent,
		ErrorDiscountValue: errorDiscountValue,
		FinalValue:         final,
		Target:             target,
		AttainmentPercent:  attainment,
	}, nil
}

func (s *ClosingServiceImpl) GetRecord(ctx context.Context, id string) (closing.ClosingRecordResponse, error) {
	record, err := s.closingRepo.GetByID(ctx, id)
	if err != nil {
		return closing.ClosingRecordResponse{}, err
	}
	return closing.ToClosingRecordResponse(record), nil
}

func (s *ClosingServiceImpl) ListRecords(ctx context.Context, filter closing.ClosingFilter) ([]closing.ClosingRecordResponse, error) {
	records, err := s.closingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]closing.ClosingRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, closing.ToClosingRecordResponse(record))
	}
	return responses, nil
}

func (s *ClosingServiceImpl) Report(ctx context.Context, month, year int) (closing.PeriodReportResponse, error) {
	records, err := s.closingRepo.List(ctx, closing.ClosingFilter{PeriodMonth: month, PeriodYear: year})
	if err != nil {
		return closing.PeriodReportResponse{}, err
	}

	summary := closing.PeriodSummary{
		PeriodMonth:       month,
		PeriodYear:        year,
		Employees:         len(records),
		TotalGross:        decimal.Zero,
		TotalDiscounts:    decimal.Zero,
		TotalFinal:        decimal.Zero,
		AverageAttainment: decimal.Zero,
	}

	responses := make([]closing.ClosingRecordResponse, 0, len(records))
	attainmentSum := decimal.Zero
	for _, record := range records {
		summary.TotalGross = summary.TotalGross.Add(record.GrossValue)
		summary.TotalDiscounts = summary.TotalDiscounts.Add(record.DiscountValue).Add(record.ErrorDiscountValue)
		summary.TotalFinal = summary.TotalFinal.Add(record.FinalValue)
		attainmentSum = attainmentSum.Add(record.AttainmentPercent)
		responses = append(responses, closing.ToClosingRecordResponse(record))
	}
	if len(records) > 0 {
		summary.AverageAttainment = attainmentSum.Div(decimal.NewFromInt(int64(len(records)))).Round(2)
	}

	return closing.PeriodReportResponse{Summary: summary, Records: responses}, nil
}
