// Package discount converts occurrence counts into deduction percentages
// and manages the stored per-period discount records.
package discount

import (
	"sort"

	"github.com/pickprod/pickprod-backend-go/internal/domain/discount"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent computes the total deduction for one employee/month from the
// disciplinary and absence counts. The result is always in [0, 100].
// Separation/delivery errors are not part of this total; they come from
// production data and are composed by the closing run via ErrorPercent.
func Percent(c discount.OccurrenceCounts, r rules.DiscountRules) decimal.Decimal {
	total := decimal.Zero

	if c.UnexcusedAbsences > 0 {
		total = total.Add(r.AbsencePercent)
	}
	if c.OnVacation {
		total = total.Add(r.VacationPercent)
	}
	if c.Warnings > 0 {
		total = total.Add(r.WarningPercent.Mul(decimal.NewFromInt(int64(c.Warnings))))
	}
	if c.Suspensions > 0 {
		total = total.Add(r.SuspensionPercent.Mul(decimal.NewFromInt(int64(c.Suspensions))))
	}
	if c.MedicalLeaveDays > 0 {
		total = total.Add(medicalPercent(c.MedicalLeaveDays, r.MedicalLeave))
	}

	return capPercent(total)
}

// ErrorPercent computes the production-sourced deduction from separation and
// delivery error counts, capped at 100 independently of Percent.
func ErrorPercent(separationErrors, deliveryErrors int, r rules.DiscountRules) decimal.Decimal {
	total := decimal.Zero

	if separationErrors > 0 {
		total = total.Add(r.SeparationErrorPercent.Mul(decimal.NewFromInt(int64(separationErrors))))
	}
	if deliveryErrors > 0 {
		total = total.Add(r.DeliveryErrorPercent.Mul(decimal.NewFromInt(int64(deliveryErrors))))
	}

	return capPercent(total)
}

// medicalPercent finds the smallest band whose day bound covers the count;
// day counts above every band take the catch-all percentage.
func medicalPercent(days int, rule rules.MedicalLeaveRule) decimal.Decimal {
	bands := make([]rules.MedicalBand, len(rule.Bands))
	copy(bands, rule.Bands)
	sort.Slice(bands, func(i, j int) bool { return bands[i].UpToDays < bands[j].UpToDays })

	for _, band := range bands {
		if days <= band.UpToDays {
			return band.Percent
		}
	}
	return rule.AbovePercent
}

func capPercent(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}
