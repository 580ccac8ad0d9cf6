package metrics

import (
	"testing"
	"time"

	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func window(code string, hours float64) production.TimeWindow {
	start := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return production.TimeWindow{
		CollectionCode: code,
		StartedAt:      &start,
		EndedAt:        &end,
		DurationHours:  production.SomeFloat(hours),
	}
}

func TestDeriveCollections(t *testing.T) {
	t.Parallel()

	lines := []production.ReceivingLine{
		{CollectionID: "id1", CollectionCode: "C1", BranchID: "b1", BoxCount: 10, NetWeight: decimal.NewFromInt(300)},
		{CollectionID: "id1", CollectionCode: "C1", BranchID: "b1", BoxCount: 8, NetWeight: decimal.NewFromInt(200)},
	}
	windows := []production.TimeWindow{window("C1", 2)}

	result := DeriveCollections(lines, windows, rules.PalletRule{BoxesPerPallet: 10})
	require.Len(t, result, 1)

	m := result[0]
	assert.True(t, decimal.NewFromInt(500).Equal(m.TotalWeight))
	assert.Equal(t, 18, m.TotalBoxes)
	assert.InDelta(t, 1.8, m.PalletCount, 0.0001)

	require.True(t, m.WeightPerHour.Valid)
	assert.Equal(t, 250.0, m.WeightPerHour.Float64)
	require.True(t, m.VolumePerHour.Valid)
	assert.Equal(t, 9.0, m.VolumePerHour.Float64)
	require.True(t, m.PalletsPerHour.Valid)
	assert.Equal(t, 0.9, m.PalletsPerHour.Float64)
}

func TestDeriveCollectionsPalletRulePerLine(t *testing.T) {
	t.Parallel()

	// The rule divides each line's boxes before summing, so [10 8] at 12
	// boxes per pallet is 10/12 + 8/12, not 18/12 computed once.
	lines := []production.ReceivingLine{
		{CollectionID: "id1", CollectionCode: "C1", BoxCount: 10, NetWeight: decimal.Zero},
		{CollectionID: "id1", CollectionCode: "C1", BoxCount: 8, NetWeight: decimal.Zero},
	}

	result := DeriveCollections(lines, nil, rules.PalletRule{BoxesPerPallet: 12})
	require.Len(t, result, 1)
	assert.InDelta(t, 10.0/12+8.0/12, result[0].PalletCount, 0.0001)
}

func TestDeriveCollectionsNullDurationNullRates(t *testing.T) {
	t.Parallel()

	lines := []production.ReceivingLine{
		{CollectionID: "id1", CollectionCode: "C1", BoxCount: 10, NetWeight: decimal.NewFromInt(300)},
		{CollectionID: "id2", CollectionCode: "C2", BoxCount: 5, NetWeight: decimal.NewFromInt(100)},
	}
	// C1 has no window at all; C2 has a window with an invalid duration.
	windows := []production.TimeWindow{
		{CollectionCode: "C2", DurationHours: production.NoFloat()},
	}

	result := DeriveCollections(lines, windows, rules.DefaultPalletRule())
	require.Len(t, result, 2)
	for _, m := range result {
		assert.False(t, m.WeightPerHour.Valid, "rates must be null, not zero, for %s", m.CollectionCode)
		assert.False(t, m.VolumePerHour.Valid)
		assert.False(t, m.PalletsPerHour.Valid)
	}
}

func TestDeriveCollectionsFirstWindowWins(t *testing.T) {
	t.Parallel()

	lines := []production.ReceivingLine{
		{CollectionID: "id1", CollectionCode: "C1", BoxCount: 10, NetWeight: decimal.NewFromInt(100)},
	}
	windows := []production.TimeWindow{window("C1", 2), window("C1", 4)}

	result := DeriveCollections(lines, windows, rules.DefaultPalletRule())
	require.Len(t, result, 1)
	require.True(t, result[0].DurationHours.Valid)
	assert.Equal(t, 2.0, result[0].DurationHours.Float64)
}

func TestDeriveEmployeeProduction(t *testing.T) {
	t.Parallel()

	lines := []production.ReceivingLine{
		{CollectionID: "id1", CollectionCode: "C1", EmployeeID: strPtr("e1"), BoxCount: 10, NetWeight: decimal.NewFromInt(300), SeparationErrors: 1},
		{CollectionID: "id1", CollectionCode: "C1", EmployeeID: strPtr("e1"), BoxCount: 8, NetWeight: decimal.NewFromInt(200)},
		{CollectionID: "id2", CollectionCode: "C2", EmployeeID: strPtr("e1"), BoxCount: 10, NetWeight: decimal.NewFromInt(500), DeliveryErrors: 2},
		{CollectionID: "id3", CollectionCode: "C3", EmployeeID: strPtr("e2"), BoxCount: 20, NetWeight: decimal.NewFromInt(400)},
		{CollectionID: "id4", CollectionCode: "C4", BoxCount: 99, NetWeight: decimal.NewFromInt(999)}, // unassigned
	}
	windows := []production.TimeWindow{window("C1", 2), window("C2", 3), window("C3", 4)}

	result := DeriveEmployeeProduction(lines, windows, rules.DefaultPalletRule())
	require.Len(t, result, 2)

	e1 := result[0]
	assert.Equal(t, "e1", e1.EmployeeID)
	assert.Equal(t, 2, e1.Collections)
	assert.True(t, decimal.NewFromInt(1000).Equal(e1.TotalWeight))
	assert.Equal(t, 28, e1.TotalBoxes)
	assert.Equal(t, 5.0, e1.TotalHours) // C1 duration counted once
	assert.Equal(t, 1, e1.SeparationErrors)
	assert.Equal(t, 2, e1.DeliveryErrors)
	require.True(t, e1.WeightPerHour.Valid)
	assert.Equal(t, 200.0, e1.WeightPerHour.Float64)

	e2 := result[1]
	assert.Equal(t, "e2", e2.EmployeeID)
	assert.Equal(t, 1, e2.Collections)
	require.True(t, e2.WeightPerHour.Valid)
	assert.Equal(t, 100.0, e2.WeightPerHour.Float64)
}

func TestDeriveEmployeeProductionNoHours(t *testing.T) {
	t.Parallel()

	lines := []production.ReceivingLine{
		{CollectionID: "id1", CollectionCode: "C1", EmployeeID: strPtr("e1"), BoxCount: 10, NetWeight: decimal.NewFromInt(300)},
	}

	result := DeriveEmployeeProduction(lines, nil, rules.DefaultPalletRule())
	require.Len(t, result, 1)
	assert.False(t, result[0].WeightPerHour.Valid)
	assert.False(t, result[0].VolumePerHour.Valid)
	assert.False(t, result[0].PalletsPerHour.Valid)
	assert.True(t, decimal.NewFromInt(300).Equal(result[0].TotalWeight))
}
