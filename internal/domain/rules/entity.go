package rules

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Configuration document keys. Each key maps to one structured JSON document
// in the config store.
const (
	KeyRateWeightPerHour  = "rate_weight_per_hour"
	KeyRateVolumePerHour  = "rate_volume_per_hour"
	KeyRatePalletsPerHour = "rate_pallets_per_hour"
	KeyMetricWeights      = "metric_weights"
	KeyDiscountRules      = "discount_rules"
	KeyThresholdRules     = "threshold_rules"
	KeyMonthlyTarget      = "monthly_target"
	KeyMonthlyCeiling     = "monthly_ceiling"
	KeyPalletRule         = "pallet_rule"
)

// Tier - One step of a rate table: rates at or above Threshold (and below the
// next tier's threshold) are worth Value.
type Tier struct {
	Threshold float64         `json:"threshold"`
	Value     decimal.Decimal `json:"value"`
}

// SortTiers orders tiers ascending by threshold. Tier lookup assumes this
// order; rule writes enforce it, loads re-sort defensively.
func SortTiers(tiers []Tier) {
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Threshold < tiers[j].Threshold })
}

// MetricWeights - Parallel weighting triple for the continuous model. Values
// at or above 1 are read as percentages and divided by 100 before use.
type MetricWeights struct {
	Weight  float64 `json:"weight"`
	Volume  float64 `json:"volume"`
	Pallets float64 `json:"pallets"`
}

// RateRules - The three ordered tier tables plus their weighting triple.
type RateRules struct {
	WeightPerHour  []Tier        `json:"weight_per_hour"`
	VolumePerHour  []Tier        `json:"volume_per_hour"`
	PalletsPerHour []Tier        `json:"pallets_per_hour"`
	Weights        MetricWeights `json:"weights"`
}

// MedicalBand - One day-tiered medical leave step: day counts up to
// UpToDays deduct Percent.
type MedicalBand struct {
	UpToDays int             `json:"up_to_days"`
	Percent  decimal.Decimal `json:"percent"`
}

// MedicalLeaveRule - Ordered bands plus the catch-all for day counts above
// every band.
type MedicalLeaveRule struct {
	Bands        []MedicalBand   `json:"bands"`
	AbovePercent decimal.Decimal `json:"above_percent"`
}

// DiscountRules - Fixed deduction percentages per occurrence category.
type DiscountRules struct {
	AbsencePercent         decimal.Decimal  `json:"absence_percent"`
	VacationPercent        decimal.Decimal  `json:"vacation_percent"`
	WarningPercent         decimal.Decimal  `json:"warning_percent"`
	SuspensionPercent      decimal.Decimal  `json:"suspension_percent"`
	SeparationErrorPercent decimal.Decimal  `json:"separation_error_percent"`
	DeliveryErrorPercent   decimal.Decimal  `json:"delivery_error_percent"`
	MedicalLeave           MedicalLeaveRule `json:"medical_leave"`
}

// ThresholdIndicator - All-or-nothing indicator for the fixed-bonus model:
// meeting or exceeding Minimum pays the full Payout.
type ThresholdIndicator struct {
	Minimum float64         `json:"minimum"`
	Payout  decimal.Decimal `json:"payout"`
}

// ThresholdRules - The four fixed-bonus indicators. PalletsPerHourByBranch
// overrides the pallets/hour minimum per branch code; which of pallets/hour
// or loss applies is decided by employee role.
type ThresholdRules struct {
	Accuracy               ThresholdIndicator `json:"accuracy"`
	Checklist              ThresholdIndicator `json:"checklist"`
	PalletsPerHour         ThresholdIndicator `json:"pallets_per_hour"`
	Loss                   ThresholdIndicator `json:"loss"`
	PalletsPerHourByBranch map[string]float64 `json:"pallets_per_hour_by_branch,omitempty"`
}

// PalletsPerHourMinimum returns the branch override when one exists.
func (t ThresholdRules) PalletsPerHourMinimum(branchCode string) float64 {
	if min, ok := t.PalletsPerHourByBranch[branchCode]; ok {
		return min
	}
	return t.PalletsPerHour.Minimum
}

// PalletRule - Box to pallet conversion, applied to each line's box count
// before summing so the result is sensitive to how boxes split across lines.
type PalletRule struct {
	BoxesPerPallet float64 `json:"boxes_per_pallet"`
}

// Pallets converts a list of per-line box counts to a pallet count.
func (p PalletRule) Pallets(boxCounts []int) float64 {
	per := p.BoxesPerPallet
	if per <= 0 {
		per = DefaultPalletRule().BoxesPerPallet
	}
	var total float64
	for _, boxes := range boxCounts {
		total += float64(boxes) / per
	}
	return total
}

// Snapshot - Immutable rule state read once per batch run and passed into
// every unit of work, so two employees in one closing never see different
// rule versions.
type Snapshot struct {
	Rates          RateRules
	Discounts      DiscountRules
	Thresholds     ThresholdRules
	Pallet         PalletRule
	MonthlyTarget  decimal.Decimal
	MonthlyCeiling decimal.Decimal
}
