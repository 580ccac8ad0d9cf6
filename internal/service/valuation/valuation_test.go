package valuation

import (
	"testing"

	"github.com/pickprod/pickprod-backend-go/internal/domain/employee"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() rules.Snapshot {
	return rules.Snapshot{
		Rates: rules.RateRules{
			WeightPerHour: []rules.Tier{
				{Threshold: 100, Value: decimal.NewFromInt(50)},
				{Threshold: 200, Value: decimal.NewFromInt(100)},
				{Threshold: 300, Value: decimal.NewFromInt(150)},
			},
			VolumePerHour: []rules.Tier{
				{Threshold: 50, Value: decimal.NewFromInt(40)},
				{Threshold: 100, Value: decimal.NewFromInt(80)},
			},
			PalletsPerHour: []rules.Tier{
				{Threshold: 1, Value: decimal.NewFromInt(60)},
				{Threshold: 2, Value: decimal.NewFromInt(120)},
			},
			Weights: rules.MetricWeights{Weight: 50, Volume: 30, Pallets: 20},
		},
		Thresholds: rules.ThresholdRules{
			Accuracy:       rules.ThresholdIndicator{Minimum: 95, Payout: decimal.NewFromInt(100)},
			Checklist:      rules.ThresholdIndicator{Minimum: 90, Payout: decimal.NewFromInt(50)},
			PalletsPerHour: rules.ThresholdIndicator{Minimum: 1.5, Payout: decimal.NewFromInt(80)},
			Loss:           rules.ThresholdIndicator{Minimum: 98, Payout: decimal.NewFromInt(80)},
			PalletsPerHourByBranch: map[string]float64{
				"POA": 1.0,
			},
		},
		MonthlyTarget:  decimal.NewFromInt(300),
		MonthlyCeiling: decimal.NewFromInt(250),
	}
}

func TestContinuousTierBoundaryInclusive(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	// Only the weight metric carries weight so the tier value passes through.
	snap.Rates.Weights = rules.MetricWeights{Weight: 100, Volume: 0, Pallets: 0}

	gross := Continuous{}.Gross(Input{WeightPerHour: production.SomeFloat(200)}, snap)
	assert.True(t, decimal.NewFromInt(100).Equal(gross), "rate exactly at threshold must pay that tier: got %s", gross)

	gross = Continuous{}.Gross(Input{WeightPerHour: production.SomeFloat(199.99)}, snap)
	assert.True(t, decimal.NewFromInt(50).Equal(gross))
}

func TestContinuousBelowLowestTierPaysZero(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	gross := Continuous{}.Gross(Input{
		WeightPerHour:  production.SomeFloat(99),
		VolumePerHour:  production.SomeFloat(49),
		PalletsPerHour: production.SomeFloat(0.5),
	}, snap)
	assert.True(t, gross.IsZero())
}

func TestContinuousWeightNormalization(t *testing.T) {
	t.Parallel()

	in := Input{
		WeightPerHour:  production.SomeFloat(100),
		VolumePerHour:  production.SomeFloat(50),
		PalletsPerHour: production.SomeFloat(1),
	}

	percentSnap := testSnapshot()
	percentSnap.Rates.Weights = rules.MetricWeights{Weight: 50, Volume: 30, Pallets: 20}

	fractionSnap := testSnapshot()
	fractionSnap.Rates.Weights = rules.MetricWeights{Weight: 0.5, Volume: 0.3, Pallets: 0.2}

	a := Continuous{}.Gross(in, percentSnap)
	b := Continuous{}.Gross(in, fractionSnap)
	assert.True(t, a.Equal(b), "weight 50 and 0.5 must value identically: %s vs %s", a, b)

	// 50*0.5 + 40*0.3 + 60*0.2 = 25 + 12 + 12 = 49
	assert.True(t, decimal.NewFromInt(49).Equal(a))
}

func TestContinuousMissingRatePaysZeroForThatMetric(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	gross := Continuous{}.Gross(Input{
		WeightPerHour: production.SomeFloat(100),
		// volume and pallet rates are missing, not zero
	}, snap)

	// Only 50 * 0.5 = 25 contributes.
	assert.True(t, decimal.NewFromInt(25).Equal(gross))
}

func TestGrossIsNotPreClamped(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	snap.Rates.Weights = rules.MetricWeights{Weight: 100, Volume: 100, Pallets: 100}

	gross := Continuous{}.Gross(Input{
		WeightPerHour:  production.SomeFloat(300),
		VolumePerHour:  production.SomeFloat(100),
		PalletsPerHour: production.SomeFloat(2),
	}, snap)

	// Raw 150+80+120=350: discounts apply to the full gross, the ceiling
	// only caps what is ultimately paid.
	assert.True(t, decimal.NewFromInt(350).Equal(gross))
	assert.True(t, snap.MonthlyCeiling.Equal(ClampCeiling(gross, snap)))
}

func TestClampCeiling(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	assert.True(t, decimal.NewFromInt(200).Equal(ClampCeiling(decimal.NewFromInt(200), snap)))
	assert.True(t, decimal.NewFromInt(250).Equal(ClampCeiling(decimal.NewFromInt(900), snap)))

	// A missing ceiling falls back to the documented default.
	snap.MonthlyCeiling = decimal.Zero
	assert.True(t, rules.DefaultMonthlyCeiling().Equal(ClampCeiling(decimal.NewFromInt(900), snap)))
}

func TestContinuousUnsortedTiersStillStepFunction(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	snap.Rates.Weights = rules.MetricWeights{Weight: 100, Volume: 0, Pallets: 0}
	snap.Rates.WeightPerHour = []rules.Tier{
		{Threshold: 300, Value: decimal.NewFromInt(150)},
		{Threshold: 100, Value: decimal.NewFromInt(50)},
		{Threshold: 200, Value: decimal.NewFromInt(100)},
	}

	gross := Continuous{}.Gross(Input{WeightPerHour: production.SomeFloat(250)}, snap)
	assert.True(t, decimal.NewFromInt(100).Equal(gross))
}

func TestThresholdAllOrNothing(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()

	// Separator meets accuracy and pallets/hour, misses checklist.
	gross := Threshold{}.Gross(Input{
		Role:           employee.RoleSeparator,
		Accuracy:       production.SomeFloat(96),
		Checklist:      production.SomeFloat(89.9),
		PalletsPerHour: production.SomeFloat(1.5),
	}, snap)
	assert.True(t, decimal.NewFromInt(180).Equal(gross), "got %s", gross)
}

func TestThresholdRoleSelectsIndicator(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	in := Input{
		Accuracy:       production.SomeFloat(100),
		Checklist:      production.SomeFloat(100),
		PalletsPerHour: production.SomeFloat(10),
		Loss:           production.SomeFloat(100),
	}

	in.Role = employee.RoleSeparator
	separator := Threshold{}.Gross(in, snap)

	in.Role = employee.RoleDriver
	driver := Threshold{}.Gross(in, snap)

	// Both pay accuracy+checklist+one role indicator, never both indicators.
	assert.True(t, decimal.NewFromInt(230).Equal(separator))
	assert.True(t, decimal.NewFromInt(230).Equal(driver))
}

func TestThresholdBranchOverride(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	in := Input{
		Role:           employee.RoleSeparator,
		PalletsPerHour: production.SomeFloat(1.2),
	}

	// Default minimum 1.5: no payout.
	gross := Threshold{}.Gross(in, snap)
	assert.True(t, gross.IsZero())

	// POA override lowers the minimum to 1.0.
	in.BranchCode = "POA"
	gross = Threshold{}.Gross(in, snap)
	assert.True(t, decimal.NewFromInt(80).Equal(gross))
}

func TestThresholdMissingIndicatorPaysNothing(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	gross := Threshold{}.Gross(Input{Role: employee.RoleDriver}, snap)
	assert.True(t, gross.IsZero())
}

func TestByName(t *testing.T) {
	t.Parallel()

	s, err := ByName(ModelContinuous)
	require.NoError(t, err)
	assert.Equal(t, ModelContinuous, s.Name())

	s, err = ByName(ModelThreshold)
	require.NoError(t, err)
	assert.Equal(t, ModelThreshold, s.Name())

	_, err = ByName("linear")
	assert.Error(t, err)
}
