// Package metrics turns raw receiving lines and time windows into
// per-collection and per-employee throughput aggregates.
package metrics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
)

type MetricsServiceImpl struct {
	productionRepo production.ProductionRepository
	employeeRepo   employee.EmployeeRepository
	rulesService   rules.RulesService
}

func NewMetricsService(
	productionRepo production.ProductionRepository,
	employeeRepo employee.EmployeeRepository,
	rulesService rules.RulesService,
) production.MetricsService {
	return &MetricsServiceImpl{
		productionRepo: productionRepo,
		employeeRepo:   employeeRepo,
		rulesService:   rulesService,
	}
}

func (s *MetricsServiceImpl) CollectionMetrics(ctx context.Context, filter production.ProductionFilter) ([]production.CollectionMetrics, error) {
	lines, err := s.productionRepo.ListLines(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list receiving lines: %w", err)
	}
	windows, err := s.productionRepo.ListWindows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list time windows: %w", err)
	}
	snap, err := s.rulesService.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules snapshot: %w", err)
	}

	return DeriveCollections(lines, windows, snap.Pallet), nil
}

// DeriveCollections groups lines by collection identifier, joins the first
// matching time window per collection code, and derives the three rates.
// Totals are always recomputed from the full line set.
func DeriveCollections(lines []production.ReceivingLine, windows []production.TimeWindow, palletRule rules.PalletRule) []production.CollectionMetrics {
	durations := firstWindowDurations(windows)

	type group struct {
		metrics   production.CollectionMetrics
		boxCounts []int
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, line := range lines {
		g, ok := groups[line.CollectionID]
		if !ok {
			g = &group{metrics: production.CollectionMetrics{
				CollectionID:   line.CollectionID,
				CollectionCode: line.CollectionCode,
				BranchID:       line.BranchID,
				TotalWeight:    decimal.Zero,
			}}
			groups[line.CollectionID] = g
			order = append(order, line.CollectionID)
		}
		g.metrics.TotalWeight = g.metrics.TotalWeight.Add(line.NetWeight)
		g.metrics.TotalBoxes += line.BoxCount
		g.boxCounts = append(g.boxCounts, line.BoxCount)
	}

	result := make([]production.CollectionMetrics, 0, len(order))
	for _, id := range order {
		g := groups[id]
		m := g.metrics
		m.PalletCount = palletRule.Pallets(g.boxCounts)
		m.DurationHours = durations[m.CollectionCode]

		if m.DurationHours.Valid && m.DurationHours.Float64 > 0 {
			hours := m.DurationHours.Float64
			m.WeightPerHour = production.SomeFloat(round2(m.TotalWeight.InexactFloat64() / hours))
			m.VolumePerHour = production.SomeFloat(round2(float64(m.TotalBoxes) / hours))
			m.PalletsPerHour = production.SomeFloat(round2(m.PalletCount / hours))
		}

		result = append(result, m)
	}
	return result
}

// firstWindowDurations keeps the first window seen per collection code.
// Later duplicates for the same code are ignored.
func firstWindowDurations(windows []production.TimeWindow) map[string]production.OptFloat {
	durations := make(map[string]production.OptFloat)
	for _, w := range windows {
		if _, seen := durations[w.CollectionCode]; !seen {
			durations[w.CollectionCode] = w.DurationHours
		}
	}
	return durations
}

func (s *MetricsServiceImpl) EmployeeProduction(ctx context.Context, month, year int) ([]production.EmployeeProduction, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	lines, err := s.productionRepo.ListLinesByPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list receiving lines: %w", err)
	}
	windows, err := s.productionRepo.ListWindowsByPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time windows: %w", err)
	}
	snap, err := s.rulesService.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules snapshot: %w", err)
	}

	return DeriveEmployeeProduction(lines, windows, snap.Pallet), nil
}

// DeriveEmployeeProduction aggregates per assigned employee. A collection's
// duration counts once per employee no matter how many of its lines they
// worked; lines without an employee assignment are left out entirely.
func DeriveEmployeeProduction(lines []production.ReceivingLine, windows []production.TimeWindow, palletRule rules.PalletRule) []production.EmployeeProduction {
	durations := firstWindowDurations(windows)

	type agg struct {
		prod      production.EmployeeProduction
		boxCounts []int
		codes     map[string]bool
	}
	byEmployee := make(map[string]*agg)

	for _, line := range lines {
		if line.EmployeeID == nil {
			continue
		}
		id := *line.EmployeeID

		a, ok := byEmployee[id]
		if !ok {
			a = &agg{
				prod:  production.EmployeeProduction{EmployeeID: id, TotalWeight: decimal.Zero},
				codes: make(map[string]bool),
			}
			byEmployee[id] = a
		}

		a.prod.TotalWeight = a.prod.TotalWeight.Add(line.NetWeight)
		a.prod.TotalBoxes += line.BoxCount
		a.prod.SeparationErrors += line.SeparationErrors
		a.prod.DeliveryErrors += line.DeliveryErrors
		a.boxCounts = append(a.boxCounts, line.BoxCount)

		if !a.codes[line.CollectionCode] {
			a.codes[line.CollectionCode] = true
			a.prod.Collections++
			if d := durations[line.CollectionCode]; d.Valid && d.Float64 > 0 {
				a.prod.TotalHours += d.Float64
			}
		}
	}

	ids := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]production.EmployeeProduction, 0, len(ids))
	for _, id := range ids {
		a := byEmployee[id]
		p := a.prod
		p.PalletCount = palletRule.Pallets(a.boxCounts)

		if p.TotalHours > 0 {
			p.WeightPerHour = production.SomeFloat(round2(p.TotalWeight.InexactFloat64() / p.TotalHours))
			p.VolumePerHour = production.SomeFloat(round2(float64(p.TotalBoxes) / p.TotalHours))
			p.PalletsPerHour = production.SomeFloat(round2(p.PalletCount / p.TotalHours))
		}

		result = append(result, p)
	}
	return result
}

func (s *MetricsServiceImpl) UpdateLineErrors(ctx context.Context, req production.UpdateLineErrorsRequest) (production.ReceivingLineResponse, error) {
	if err := req.Validate(); err != nil {
		return production.ReceivingLineResponse{}, err
	}

	if err := s.productionRepo.UpdateLineErrors(ctx, req); err != nil {
		return production.ReceivingLineResponse{}, err
	}

	line, err := s.productionRepo.GetLineByID(ctx, req.LineID)
	if err != nil {
		return production.ReceivingLineResponse{}, err
	}
	return production.ToReceivingLineResponse(line), nil
}

func (s *MetricsServiceImpl) AssignEmployee(ctx context.Context, req production.AssignEmployeeRequest) (production.ReceivingLineResponse, error) {
	if err := req.Validate(); err != nil {
		return production.ReceivingLineResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return production.ReceivingLineResponse{}, err
	}
	if !emp.IsActive {
		return production.ReceivingLineResponse{}, employee.ErrEmployeeInactive
	}

	if err := s.productionRepo.AssignEmployee(ctx, req.LineID, req.EmployeeID); err != nil {
		return production.ReceivingLineResponse{}, err
	}

	line, err := s.productionRepo.GetLineByID(ctx, req.LineID)
	if err != nil {
		return production.ReceivingLineResponse{}, err
	}
	return production.ToReceivingLineResponse(line), nil
}

func (s *MetricsServiceImpl) ListLines(ctx context.Context, filter production.ProductionFilter) ([]production.ReceivingLineResponse, error) {
	lines, err := s.productionRepo.ListLines(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list receiving lines: %w", err)
	}

	responses := make([]production.ReceivingLineResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, production.ToReceivingLineResponse(line))
	}
	return responses, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
