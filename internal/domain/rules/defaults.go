package rules

import "github.com/shopspring/decimal"

// Fallbacks used when a configuration document is absent or partial. Rule
// evaluation never fails on missing configuration, it degrades to these.

func DefaultDiscountRules() DiscountRules {
	return DiscountRules{
		AbsencePercent:         decimal.NewFromInt(100),
		VacationPercent:        decimal.NewFromInt(100),
		WarningPercent:         decimal.NewFromInt(50),
		SuspensionPercent:      decimal.NewFromInt(100),
		SeparationErrorPercent: decimal.NewFromInt(1),
		DeliveryErrorPercent:   decimal.NewFromInt(1),
		MedicalLeave: MedicalLeaveRule{
			Bands: []MedicalBand{
				{UpToDays: 2, Percent: decimal.NewFromInt(25)},
				{UpToDays: 5, Percent: decimal.NewFromInt(50)},
				{UpToDays: 7, Percent: decimal.NewFromInt(70)},
			},
			AbovePercent: decimal.NewFromInt(100),
		},
	}
}

func DefaultPalletRule() PalletRule {
	return PalletRule{BoxesPerPallet: 10}
}

func DefaultMonthlyTarget() decimal.Decimal {
	return decimal.NewFromInt(300)
}

func DefaultMonthlyCeiling() decimal.Decimal {
	return decimal.NewFromInt(300)
}
