package rules

import (
	"github.com/pickprod/pickprod-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RateMetric enum
type RateMetric string

const (
	MetricWeight  RateMetric = "weight_per_hour"
	MetricVolume  RateMetric = "volume_per_hour"
	MetricPallets RateMetric = "pallets_per_hour"
)

func (m RateMetric) Valid() bool {
	return m == MetricWeight || m == MetricVolume || m == MetricPallets
}

// Key returns the configuration document key backing this metric's tiers.
func (m RateMetric) Key() string {
	switch m {
	case MetricWeight:
		return KeyRateWeightPerHour
	case MetricVolume:
		return KeyRateVolumePerHour
	default:
		return KeyRatePalletsPerHour
	}
}

type UpdateRateTiersRequest struct {
	Metric RateMetric `json:"metric"`
	Tiers  []Tier     `json:"tiers"`
}

func (r *UpdateRateTiersRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Metric.Valid() {
		errs = append(errs, validator.ValidationError{Field: "metric", Message: "must be 'weight_per_hour', 'volume_per_hour' or 'pallets_per_hour'"})
	}
	if len(r.Tiers) == 0 {
		errs = append(errs, validator.ValidationError{Field: "tiers", Message: "at least one tier is required"})
	}
	for i, tier := range r.Tiers {
		if tier.Threshold < 0 {
			errs = append(errs, validator.ValidationError{Field: "tiers", Message: "thresholds must be non-negative"})
			break
		}
		if i > 0 && tier.Threshold <= r.Tiers[i-1].Threshold {
			errs = append(errs, validator.ValidationError{Field: "tiers", Message: "thresholds must be strictly increasing"})
			break
		}
	}
	for _, tier := range r.Tiers {
		if tier.Value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "tiers", Message: "values must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateMetricWeightsRequest struct {
	Weight  float64 `json:"weight"`
	Volume  float64 `json:"volume"`
	Pallets float64 `json:"pallets"`
}

func (r *UpdateMetricWeightsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Weight < 0 || r.Volume < 0 || r.Pallets < 0 {
		errs = append(errs, validator.ValidationError{Field: "weights", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDiscountRulesRequest struct {
	Rules DiscountRules `json:"rules"`
}

func (r *UpdateDiscountRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	percents := []decimal.Decimal{
		r.Rules.AbsencePercent, r.Rules.VacationPercent,
		r.Rules.WarningPercent, r.Rules.SuspensionPercent,
		r.Rules.SeparationErrorPercent, r.Rules.DeliveryErrorPercent,
		r.Rules.MedicalLeave.AbovePercent,
	}
	for _, p := range percents {
		if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, validator.ValidationError{Field: "rules", Message: "percentages must be between 0 and 100"})
			break
		}
	}
	for i, band := range r.Rules.MedicalLeave.Bands {
		if band.UpToDays <= 0 {
			errs = append(errs, validator.ValidationError{Field: "rules.medical_leave", Message: "band day bounds must be positive"})
			break
		}
		if i > 0 && band.UpToDays <= r.Rules.MedicalLeave.Bands[i-1].UpToDays {
			errs = append(errs, validator.ValidationError{Field: "rules.medical_leave", Message: "band day bounds must be strictly increasing"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateThresholdRulesRequest struct {
	Rules ThresholdRules `json:"rules"`
}

func (r *UpdateThresholdRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	indicators := []ThresholdIndicator{r.Rules.Accuracy, r.Rules.Checklist, r.Rules.PalletsPerHour, r.Rules.Loss}
	for _, ind := range indicators {
		if ind.Minimum < 0 || ind.Payout.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "rules", Message: "minimums and payouts must be non-negative"})
			break
		}
	}
	for _, min := range r.Rules.PalletsPerHourByBranch {
		if min < 0 {
			errs = append(errs, validator.ValidationError{Field: "rules.pallets_per_hour_by_branch", Message: "overrides must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTargetsRequest struct {
	MonthlyTarget  *decimal.Decimal `json:"monthly_target,omitempty"`
	MonthlyCeiling *decimal.Decimal `json:"monthly_ceiling,omitempty"`
}

func (r *UpdateTargetsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MonthlyTarget != nil && !r.MonthlyTarget.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "monthly_target", Message: "must be positive"})
	}
	if r.MonthlyCeiling != nil && !r.MonthlyCeiling.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "monthly_ceiling", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePalletRuleRequest struct {
	BoxesPerPallet float64 `json:"boxes_per_pallet"`
}

func (r *UpdatePalletRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BoxesPerPallet <= 0 {
		errs = append(errs, validator.ValidationError{Field: "boxes_per_pallet", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RulesResponse struct {
	Rates          RateRules       `json:"rates"`
	Discounts      DiscountRules   `json:"discounts"`
	Thresholds     ThresholdRules  `json:"thresholds"`
	Pallet         PalletRule      `json:"pallet"`
	MonthlyTarget  decimal.Decimal `json:"monthly_target"`
	MonthlyCeiling decimal.Decimal `json:"monthly_ceiling"`
}

func ToRulesResponse(s Snapshot) RulesResponse {
	return RulesResponse{
		Rates:          s.Rates,
		Discounts:      s.Discounts,
		Thresholds:     s.Thresholds,
		Pallet:         s.Pallet,
		MonthlyTarget:  s.MonthlyTarget,
		MonthlyCeiling: s.MonthlyCeiling,
	}
}
