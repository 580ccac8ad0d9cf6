package master

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
)

type RulesServiceImpl struct {
	rulesRepo rules.RulesRepository
}

func NewRulesService(rulesRepo rules.RulesRepository) rules.RulesService {
	return &RulesServiceImpl{rulesRepo: rulesRepo}
}

var snapshotKeys = []string{
	rules.KeyRateWeightPerHour,
	rules.KeyRateVolumePerHour,
	rules.KeyRatePalletsPerHour,
	rules.KeyMetricWeights,
	rules.KeyDiscountRules,
	rules.KeyThresholdRules,
	rules.KeyMonthlyTarget,
	rules.KeyMonthlyCeiling,
	rules.KeyPalletRule,
}

// Snapshot reads all rule documents in one round trip. Absent documents and
// absent fields inside documents fall back to defaults; rule evaluation
// never fails on missing configuration.
func (s *RulesServiceImpl) Snapshot(ctx context.Context) (rules.Snapshot, error) {
	docs, err := s.rulesRepo.GetDocuments(ctx, snapshotKeys)
	if err != nil {
		return rules.Snapshot{}, fmt.Errorf("failed to load rule documents: %w", err)
	}

	snap := rules.Snapshot{
		Discounts:      rules.DefaultDiscountRules(),
		Pallet:         rules.DefaultPalletRule(),
		MonthlyTarget:  rules.DefaultMonthlyTarget(),
		MonthlyCeiling: rules.DefaultMonthlyCeiling(),
	}

	snap.Rates.WeightPerHour = decodeTiers(docs[rules.KeyRateWeightPerHour])
	snap.Rates.VolumePerHour = decodeTiers(docs[rules.KeyRateVolumePerHour])
	snap.Rates.PalletsPerHour = decodeTiers(docs[rules.KeyRatePalletsPerHour])

	if raw, ok := docs[rules.KeyMetricWeights]; ok {
		_ = json.Unmarshal(raw, &snap.Rates.Weights)
	}
	if raw, ok := docs[rules.KeyDiscountRules]; ok {
		snap.Discounts = decodeDiscountRules(raw, snap.Discounts)
	}
	if raw, ok := docs[rules.KeyThresholdRules]; ok {
		_ = json.Unmarshal(raw, &snap.Thresholds)
	}
	if raw, ok := docs[rules.KeyPalletRule]; ok {
		var rule rules.PalletRule
		if json.Unmarshal(raw, &rule) == nil && rule.BoxesPerPallet > 0 {
			snap.Pallet = rule
		}
	}
	if raw, ok := docs[rules.KeyMonthlyTarget]; ok {
		if v := decodeDecimal(raw); v.IsPositive() {
			snap.MonthlyTarget = v
		}
	}
	if raw, ok := docs[rules.KeyMonthlyCeiling]; ok {
		if v := decodeDecimal(raw); v.IsPositive() {
			snap.MonthlyCeiling = v
		}
	}

	return snap, nil
}

func decodeTiers(raw json.RawMessage) []rules.Tier {
	if raw == nil {
		return nil
	}
	var tiers []rules.Tier
	if err := json.Unmarshal(raw, &tiers); err != nil {
		return nil
	}
	rules.SortTiers(tiers)
	return tiers
}

// decodeDiscountRules overlays a possibly-partial document onto the
// defaults, so a document that only sets one percentage keeps the documented
// fallbacks for the rest.
func decodeDiscountRules(raw json.RawMessage, base rules.DiscountRules) rules.DiscountRules {
	var doc struct {
		AbsencePercent         *decimal.Decimal        `json:"absence_percent"`
		VacationPercent        *decimal.Decimal        `json:"vacation_percent"`
		WarningPercent         *decimal.Decimal        `json:"warning_percent"`
		SuspensionPercent      *decimal.Decimal        `json:"suspension_percent"`
		SeparationErrorPercent *decimal.Decimal        `json:"separation_error_percent"`
		DeliveryErrorPercent   *decimal.Decimal        `json:"delivery_error_percent"`
		MedicalLeave           *rules.MedicalLeaveRule `json:"medical_leave"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return base
	}

	if doc.AbsencePercent != nil {
		base.AbsencePercent = *doc.AbsencePercent
	}
	if doc.VacationPercent != nil {
		base.VacationPercent = *doc.VacationPercent
	}
	if doc.WarningPercent != nil {
		base.WarningPercent = *doc.WarningPercent
	}
	if doc.SuspensionPercent != nil {
		base.SuspensionPercent = *doc.SuspensionPercent
	}
	if doc.SeparationErrorPercent != nil {
		base.SeparationErrorPercent = *doc.SeparationErrorPercent
	}
	if doc.DeliveryErrorPercent != nil {
		base.DeliveryErrorPercent = *doc.DeliveryErrorPercent
	}
	if doc.MedicalLeave != nil && len(doc.MedicalLeave.Bands) > 0 {
		base.MedicalLeave = *doc.MedicalLeave
	}
	return base
}

func decodeDecimal(raw json.RawMessage) decimal.Decimal {
	var v decimal.Decimal
	if err := json.Unmarshal(raw, &v); err != nil {
		return decimal.Zero
	}
	return v
}

func (s *RulesServiceImpl) GetRules(ctx context.Context) (rules.RulesResponse, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return rules.RulesResponse{}, err
	}
	return rules.ToRulesResponse(snap), nil
}

func (s *RulesServiceImpl) UpdateRateTiers(ctx context.Context, req rules.UpdateRateTiersRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.upsert(ctx, req.Metric.Key(), req.Tiers)
}

func (s *RulesServiceImpl) UpdateMetricWeights(ctx context.Context, req rules.UpdateMetricWeightsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.upsert(ctx, rules.KeyMetricWeights, rules.MetricWeights{
		Weight:  req.Weight,
		Volume:  req.Volume,
		Pallets: req.Pallets,
	})
}

func (s *RulesServiceImpl) UpdateDiscountRules(ctx context.Context, req rules.UpdateDiscountRulesRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.upsert(ctx, rules.KeyDiscountRules, req.Rules)
}

func (s *RulesServiceImpl) UpdateThresholdRules(ctx context.Context, req rules.UpdateThresholdRulesRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.upsert(ctx, rules.KeyThresholdRules, req.Rules)
}

func (s *RulesServiceImpl) UpdateTargets(ctx context.Context, req rules.UpdateTargetsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.MonthlyTarget != nil {
		if err := s.upsert(ctx, rules.KeyMonthlyTarget, req.MonthlyTarget); err != nil {
			return err
		}
	}
	if req.MonthlyCeiling != nil {
		if err := s.upsert(ctx, rules.KeyMonthlyCeiling, req.MonthlyCeiling); err != nil {
			return err
		}
	}
	return nil
}

func (s *RulesServiceImpl) UpdatePalletRule(ctx context.Context, req rules.UpdatePalletRuleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.upsert(ctx, rules.KeyPalletRule, rules.PalletRule{BoxesPerPallet: req.BoxesPerPallet})
}

func (s *RulesServiceImpl) upsert(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", key, err)
	}
	if err := s.rulesRepo.UpsertDocument(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to store %s document: %w", key, err)
	}
	return nil
}
