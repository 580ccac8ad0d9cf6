package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pickprod/pickprod-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRulesService struct {
	rules.RulesService
	snap rules.Snapshot
}

func (s *stubRulesService) Snapshot(ctx context.Context) (rules.Snapshot, error) {
	return s.snap, nil
}

func previewSnapshot() rules.Snapshot {
	return rules.Snapshot{
		Rates: rules.RateRules{
			WeightPerHour: []rules.Tier{
				{Threshold: 100, Value: decimal.NewFromInt(200)},
				{Threshold: 200, Value: decimal.NewFromInt(400)},
			},
			Weights: rules.MetricWeights{Weight: 100, Volume: 100, Pallets: 100},
		},
		MonthlyCeiling: decimal.NewFromInt(300),
		MonthlyTarget:  decimal.NewFromInt(300),
	}
}

func TestValuationPreview(t *testing.T) {
	t.Parallel()

	handler := NewValuationHandler(&stubRulesService{snap: previewSnapshot()})

	rate := 150.0
	body, err := json.Marshal(map[string]any{
		"model":           "continuous",
		"weight_per_hour": rate,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Model      string          `json:"model"`
			GrossValue decimal.Decimal `json:"gross_value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "continuous", resp.Data.Model)
	assert.True(t, resp.Data.GrossValue.Equal(decimal.NewFromInt(200)), "got %s", resp.Data.GrossValue)
}

func TestValuationPreviewAppliesCeiling(t *testing.T) {
	t.Parallel()

	handler := NewValuationHandler(&stubRulesService{snap: previewSnapshot()})

	// 400 from the top tier, capped to the 300 ceiling.
	body, err := json.Marshal(map[string]any{
		"model":           "continuous",
		"weight_per_hour": 250.0,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			GrossValue decimal.Decimal `json:"gross_value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.GrossValue.Equal(decimal.NewFromInt(300)), "got %s", resp.Data.GrossValue)
}

func TestValuationPreviewRejectsUnknownModel(t *testing.T) {
	t.Parallel()

	handler := NewValuationHandler(&stubRulesService{snap: previewSnapshot()})

	body := []byte(`{"model":"quadratic"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
