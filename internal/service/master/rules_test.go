package master

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRulesRepo struct {
	docs map[string]json.RawMessage
}

func newFakeRulesRepo() *fakeRulesRepo {
	return &fakeRulesRepo{docs: make(map[string]json.RawMessage)}
}

func (f *fakeRulesRepo) GetDocument(ctx context.Context, key string) (json.RawMessage, error) {
	raw, ok := f.docs[key]
	if !ok {
		return nil, rules.ErrDocumentNotFound
	}
	return raw, nil
}

func (f *fakeRulesRepo) GetDocuments(ctx context.Context, keys []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	for _, key := range keys {
		if raw, ok := f.docs[key]; ok {
			out[key] = raw
		}
	}
	return out, nil
}

func (f *fakeRulesRepo) UpsertDocument(ctx context.Context, key string, value json.RawMessage) error {
	f.docs[key] = value
	return nil
}

func TestSnapshotDefaultsWhenEmpty(t *testing.T) {
	t.Parallel()

	svc := NewRulesService(newFakeRulesRepo())
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Rates.WeightPerHour)
	assert.True(t, decimal.NewFromInt(100).Equal(snap.Discounts.AbsencePercent))
	assert.True(t, decimal.NewFromInt(50).Equal(snap.Discounts.WarningPercent))
	assert.Len(t, snap.Discounts.MedicalLeave.Bands, 3)
	assert.Equal(t, 10.0, snap.Pallet.BoxesPerPallet)
	assert.True(t, rules.DefaultMonthlyTarget().Equal(snap.MonthlyTarget))
	assert.True(t, rules.DefaultMonthlyCeiling().Equal(snap.MonthlyCeiling))
}

func TestSnapshotPartialDiscountDocKeepsDefaults(t *testing.T) {
	t.Parallel()

	repo := newFakeRulesRepo()
	repo.docs[rules.KeyDiscountRules] = json.RawMessage(`{"warning_percent":"30"}`)

	svc := NewRulesService(repo)
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(30).Equal(snap.Discounts.WarningPercent))
	// Everything the document does not mention keeps its default.
	assert.True(t, decimal.NewFromInt(100).Equal(snap.Discounts.AbsencePercent))
	assert.Len(t, snap.Discounts.MedicalLeave.Bands, 3)
}

func TestSnapshotSortsTiers(t *testing.T) {
	t.Parallel()

	repo := newFakeRulesRepo()
	repo.docs[rules.KeyRateWeightPerHour] = json.RawMessage(
		`[{"threshold":300,"value":"150"},{"threshold":100,"value":"50"}]`)

	svc := NewRulesService(repo)
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Rates.WeightPerHour, 2)
	assert.Equal(t, 100.0, snap.Rates.WeightPerHour[0].Threshold)
	assert.Equal(t, 300.0, snap.Rates.WeightPerHour[1].Threshold)
}

func TestUpdateRateTiersRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newFakeRulesRepo()
	svc := NewRulesService(repo)

	err := svc.UpdateRateTiers(context.Background(), rules.UpdateRateTiersRequest{
		Metric: rules.MetricWeight,
		Tiers: []rules.Tier{
			{Threshold: 100, Value: decimal.NewFromInt(50)},
			{Threshold: 200, Value: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Rates.WeightPerHour, 2)
	assert.True(t, decimal.NewFromInt(100).Equal(snap.Rates.WeightPerHour[1].Value))
}

func TestUpdateRateTiersRejectsUnsorted(t *testing.T) {
	t.Parallel()

	svc := NewRulesService(newFakeRulesRepo())

	err := svc.UpdateRateTiers(context.Background(), rules.UpdateRateTiersRequest{
		Metric: rules.MetricWeight,
		Tiers: []rules.Tier{
			{Threshold: 200, Value: decimal.NewFromInt(100)},
			{Threshold: 100, Value: decimal.NewFromInt(50)},
		},
	})
	assert.Error(t, err)
}

func TestUpdateTargets(t *testing.T) {
	t.Parallel()

	repo := newFakeRulesRepo()
	svc := NewRulesService(repo)

	target := decimal.NewFromInt(400)
	err := svc.UpdateTargets(context.Background(), rules.UpdateTargetsRequest{MonthlyTarget: &target})
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, target.Equal(snap.MonthlyTarget))
	// Ceiling untouched, stays at the default.
	assert.True(t, rules.DefaultMonthlyCeiling().Equal(snap.MonthlyCeiling))
}
