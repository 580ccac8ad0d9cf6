package discount

import (
	"testing"

	"github.com/pickprod/pickprod-backend-go/internal/domain/discount"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentSingleCategories(t *testing.T) {
	t.Parallel()

	r := rules.DefaultDiscountRules()

	tests := []struct {
		name   string
		counts discount.OccurrenceCounts
		want   int64
	}{
		{"no occurrences", discount.OccurrenceCounts{}, 0},
		{"one absence", discount.OccurrenceCounts{UnexcusedAbsences: 1}, 100},
		{"many absences still flat", discount.OccurrenceCounts{UnexcusedAbsences: 3}, 100},
		{"vacation", discount.OccurrenceCounts{OnVacation: true}, 100},
		{"one warning", discount.OccurrenceCounts{Warnings: 1}, 50},
		{"two warnings", discount.OccurrenceCounts{Warnings: 2}, 100},
		{"one suspension", discount.OccurrenceCounts{Suspensions: 1}, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Percent(tt.counts, r)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestPercentCappedAt100(t *testing.T) {
	t.Parallel()

	r := rules.DefaultDiscountRules()

	// 1 absence (100) + 2 warnings (50 each) would be 200 uncapped.
	got := Percent(discount.OccurrenceCounts{UnexcusedAbsences: 1, Warnings: 2}, r)
	assert.True(t, decimal.NewFromInt(100).Equal(got))

	// All-maximal counts stay capped.
	got = Percent(discount.OccurrenceCounts{
		UnexcusedAbsences: 10,
		OnVacation:        true,
		Warnings:          10,
		Suspensions:       10,
		MedicalLeaveDays:  30,
	}, r)
	assert.True(t, decimal.NewFromInt(100).Equal(got))
}

func TestMedicalLeaveBands(t *testing.T) {
	t.Parallel()

	r := rules.DefaultDiscountRules()

	tests := []struct {
		days int
		want int64
	}{
		{1, 25}, {2, 25},
		{3, 50}, {5, 50},
		{6, 70}, {7, 70},
		{8, 100}, {30, 100},
	}

	for _, tt := range tests {
		got := Percent(discount.OccurrenceCounts{MedicalLeaveDays: tt.days}, r)
		assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "days=%d got %s", tt.days, got)
	}
}

func TestMedicalLeaveMonotonic(t *testing.T) {
	t.Parallel()

	r := rules.DefaultDiscountRules()

	prev := decimal.Zero
	for days := 1; days <= 40; days++ {
		got := Percent(discount.OccurrenceCounts{MedicalLeaveDays: days}, r)
		assert.True(t, got.GreaterThanOrEqual(prev), "percent decreased at %d days: %s < %s", days, got, prev)
		prev = got
	}
}

func TestMedicalLeaveUnsortedBands(t *testing.T) {
	t.Parallel()

	r := rules.DefaultDiscountRules()
	r.MedicalLeave.Bands = []rules.MedicalBand{
		{UpToDays: 7, Percent: decimal.NewFromInt(70)},
		{UpToDays: 2, Percent: decimal.NewFromInt(25)},
		{UpToDays: 5, Percent: decimal.NewFromInt(50)},
	}

	got := Percent(discount.OccurrenceCounts{MedicalLeaveDays: 4}, r)
	assert.True(t, decimal.NewFromInt(50).Equal(got))
}

func TestErrorPercent(t *testing.T) {
	t.Parallel()

	r := rules.DefaultDiscountRules()

	got := ErrorPercent(0, 0, r)
	assert.True(t, got.IsZero())

	// Default 1% per error, both categories linear.
	got = ErrorPercent(3, 7, r)
	assert.True(t, decimal.NewFromInt(10).Equal(got))

	// Capped independently of the main total.
	got = ErrorPercent(80, 80, r)
	assert.True(t, decimal.NewFromInt(100).Equal(got))
}

func TestPercentNeverNegative(t *testing.T) {
	t.Parallel()

	r := rules.DefaultDiscountRules()
	r.WarningPercent = decimal.NewFromInt(-10)

	got := Percent(discount.OccurrenceCounts{Warnings: 5}, r)
	assert.False(t, got.IsNegative(), "got %s", got)
}
