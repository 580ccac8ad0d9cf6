package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIngestService struct {
	gotReq production.IngestRequest
	result production.IngestResult
	err    error
}

func (s *stubIngestService) Ingest(ctx context.Context, req production.IngestRequest) (production.IngestResult, error) {
	s.gotReq = req
	return s.result, s.err
}

func TestUploadJSONTable(t *testing.T) {
	t.Parallel()

	ingest := &stubIngestService{result: production.IngestResult{Inserted: 2, Duplicates: 1}}
	handler := NewProductionHandler(ingest, nil)

	body, err := json.Marshal(production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: []string{"Filial", "Fornecedor", "Coleta", "Nota Fiscal", "Caixas", "Peso Liquido"},
			Rows: [][]string{
				{"CD POA", "Fazenda Sul", "C1", "NF-1", "10", "500"},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/production/uploads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, production.KindReceivingDetail, ingest.gotReq.Kind)
	assert.Len(t, ingest.gotReq.Table.Rows, 1)

	var resp struct {
		Success bool                    `json:"success"`
		Data    production.IngestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Inserted)
	assert.Equal(t, 1, resp.Data.Duplicates)
}

func TestUploadRejectsInvalidKind(t *testing.T) {
	t.Parallel()

	handler := NewProductionHandler(&stubIngestService{}, nil)

	body := []byte(`{"kind":"inventory","table":{"header":["Filial"],"rows":[]}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/production/uploads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadReportsMissingColumn(t *testing.T) {
	t.Parallel()

	ingest := &stubIngestService{err: &production.MissingColumnError{Column: "peso liquido"}}
	handler := NewProductionHandler(ingest, nil)

	body, err := json.Marshal(production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: []string{"Filial", "Coleta"},
			Rows:   [][]string{{"CD POA", "C1"}},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/production/uploads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "peso liquido")
}
