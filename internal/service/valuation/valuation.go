// Package valuation converts throughput/quality metrics into gross monetary
// value. Two strategies coexist: the continuous tiered model used by the
// monthly closing, and the threshold fixed-bonus model served on demand.
package valuation

import (
	"fmt"

	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
)

const (
	ModelContinuous = "continuous"
	ModelThreshold  = "threshold"
)

// Input carries everything either strategy may need. Rates are optional so a
// period without a valid duration stays distinguishable from zero throughput.
type Input struct {
	WeightPerHour  production.OptFloat
	VolumePerHour  production.OptFloat
	PalletsPerHour production.OptFloat

	// Quality indicators for the threshold model. Missing means the
	// indicator was not measured and pays nothing.
	Accuracy  production.OptFloat
	Checklist production.OptFloat
	Loss      production.OptFloat

	Role       employee.Role
	BranchCode string
}

// Strategy is one valuation model. Gross returns the raw monetary value;
// callers apply ClampCeiling after any discounting, never before, so a
// deduction percentage always acts on the full gross.
type Strategy interface {
	Name() string
	Gross(in Input, snap rules.Snapshot) decimal.Decimal
}

// ByName resolves a strategy from its wire name.
func ByName(name string) (Strategy, error) {
	switch name {
	case ModelContinuous:
		return Continuous{}, nil
	case ModelThreshold:
		return Threshold{}, nil
	default:
		return nil, fmt.Errorf("unknown valuation model %q", name)
	}
}

// ClampCeiling applies the monthly cap. It is a hard business cap and must
// run after all other arithmetic for the value in question.
func ClampCeiling(v decimal.Decimal, snap rules.Snapshot) decimal.Decimal {
	ceiling := snap.MonthlyCeiling
	if !ceiling.IsPositive() {
		ceiling = rules.DefaultMonthlyCeiling()
	}
	if v.GreaterThan(ceiling) {
		return ceiling
	}
	return v
}

// Continuous implements the tiered step-function model: each rate is looked
// up in its tier table, the three values are weighted and summed.
type Continuous struct{}

func (Continuous) Name() string { return ModelContinuous }

func (Continuous) Gross(in Input, snap rules.Snapshot) decimal.Decimal {
	weightValue := tierValue(snap.Rates.WeightPerHour, in.WeightPerHour)
	volumeValue := tierValue(snap.Rates.VolumePerHour, in.VolumePerHour)
	palletValue := tierValue(snap.Rates.PalletsPerHour, in.PalletsPerHour)

	return weightValue.Mul(normalizeWeight(snap.Rates.Weights.Weight)).
		Add(volumeValue.Mul(normalizeWeight(snap.Rates.Weights.Volume))).
		Add(palletValue.Mul(normalizeWeight(snap.Rates.Weights.Pallets))).
		Round(2)
}

// tierValue evaluates the step function: the value of the highest tier whose
// threshold does not exceed the rate, 0 below the lowest tier, 0 when the
// rate itself is missing.
func tierValue(tiers []rules.Tier, rate production.OptFloat) decimal.Decimal {
	if !rate.Valid || len(tiers) == 0 {
		return decimal.Zero
	}

	sorted := make([]rules.Tier, len(tiers))
	copy(sorted, tiers)
	rules.SortTiers(sorted)

	value := decimal.Zero
	for _, tier := range sorted {
		if rate.Float64 >= tier.Threshold {
			value = tier.Value
		} else {
			break
		}
	}
	return value
}

// normalizeWeight tolerates both fractional (0.5) and percent (50)
// configuration formats.
func normalizeWeight(w float64) decimal.Decimal {
	if w >= 1 {
		w = w / 100
	}
	return decimal.NewFromFloat(w)
}

// Threshold implements the fixed-bonus model: each indicator pays its full
// amount when its minimum is met, nothing otherwise. The pallets/hour and
// loss indicators are mutually exclusive by role.
type Threshold struct{}

func (Threshold) Name() string { return ModelThreshold }

func (Threshold) Gross(in Input, snap rules.Snapshot) decimal.Decimal {
	t := snap.Thresholds

	gross := indicatorPayout(t.Accuracy, in.Accuracy)
	gross = gross.Add(indicatorPayout(t.Checklist, in.Checklist))

	switch in.Role {
	case employee.RoleDriver:
		gross = gross.Add(indicatorPayout(t.Loss, in.Loss))
	default:
		ind := t.PalletsPerHour
		ind.Minimum = t.PalletsPerHourMinimum(in.BranchCode)
		gross = gross.Add(indicatorPayout(ind, in.PalletsPerHour))
	}

	return gross.Round(2)
}

func indicatorPayout(ind rules.ThresholdIndicator, value production.OptFloat) decimal.Decimal {
	if !value.Valid || value.Float64 < ind.Minimum {
		return decimal.Zero
	}
	return ind.Payout
}
