package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/pickprod/pickprod-backend-go/internal/domain/branch"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBranchRepo serves a fixed branch list; only List is exercised by
// ingestion.
type fakeBranchRepo struct {
	branches []branch.Branch
}

func (f *fakeBranchRepo) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	return b, nil
}
func (f *fakeBranchRepo) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	return branch.Branch{}, branch.ErrBranchNotFound
}
func (f *fakeBranchRepo) GetByCode(ctx context.Context, code string) (branch.Branch, error) {
	return branch.Branch{}, branch.ErrBranchNotFound
}
func (f *fakeBranchRepo) List(ctx context.Context, activeOnly bool) ([]branch.Branch, error) {
	return f.branches, nil
}
func (f *fakeBranchRepo) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	return nil
}
func (f *fakeBranchRepo) Delete(ctx context.Context, id string) error { return nil }

// fakeProductionRepo stores lines and windows in memory, deduplicating on
// the same natural keys the real schema enforces.
type fakeProductionRepo struct {
	lines   []production.ReceivingLine
	windows []production.TimeWindow
}

func (f *fakeProductionRepo) InsertReceivingLine(ctx context.Context, line production.ReceivingLine) error {
	for _, existing := range f.lines {
		if existing.LineKey() == line.LineKey() {
			return production.ErrLineExists
		}
	}
	f.lines = append(f.lines, line)
	return nil
}

func (f *fakeProductionRepo) InsertTimeWindow(ctx context.Context, w production.TimeWindow) error {
	for _, existing := range f.windows {
		if existing.CollectionCode == w.CollectionCode && timeEqual(existing.StartedAt, w.StartedAt) {
			return production.ErrWindowExists
		}
	}
	f.windows = append(f.windows, w)
	return nil
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (f *fakeProductionRepo) FindCollectionID(ctx context.Context, code string) (string, error) {
	for _, line := range f.lines {
		if line.CollectionCode == code {
			return line.CollectionID, nil
		}
	}
	return "", production.ErrLineNotFound
}

func (f *fakeProductionRepo) GetLineByID(ctx context.Context, id string) (production.ReceivingLine, error) {
	return production.ReceivingLine{}, production.ErrLineNotFound
}
func (f *fakeProductionRepo) ListLines(ctx context.Context, filter production.ProductionFilter) ([]production.ReceivingLine, error) {
	return f.lines, nil
}
func (f *fakeProductionRepo) ListWindows(ctx context.Context, filter production.ProductionFilter) ([]production.TimeWindow, error) {
	return f.windows, nil
}
func (f *fakeProductionRepo) ListLinesByPeriod(ctx context.Context, from, to time.Time) ([]production.ReceivingLine, error) {
	return f.lines, nil
}
func (f *fakeProductionRepo) ListWindowsByPeriod(ctx context.Context, from, to time.Time) ([]production.TimeWindow, error) {
	return f.windows, nil
}
func (f *fakeProductionRepo) AssignEmployee(ctx context.Context, lineID, employeeID string) error {
	return nil
}
func (f *fakeProductionRepo) UpdateLineErrors(ctx context.Context, req production.UpdateLineErrorsRequest) error {
	return nil
}

func testBranches() []branch.Branch {
	return []branch.Branch{
		{ID: "b1", Code: "POA", Name: "Porto Alegre", IsActive: true},
		{ID: "b2", Code: "CXS", Name: "Caxias do Sul", IsActive: true},
	}
}

func receivingHeader() []string {
	return []string{"Filial", "Fornecedor", "Coleta", "NF", "Cliente", "Data", "Caixas", "Peso"}
}

func TestIngestReceivingDetail(t *testing.T) {
	t.Parallel()

	repo := &fakeProductionRepo{}
	svc := NewIngestService(repo, &fakeBranchRepo{branches: testBranches()})

	result, err := svc.Ingest(context.Background(), production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: receivingHeader(),
			Rows: [][]string{
				{"CD POA", "Frutas Sul", "C1", "1001", "Mercado Central (000082 - 85)", "15/6/2025", "10", "300,5"},
				{"CD POA", "Frutas Sul", "C1", "1002", "Outro Cliente", "15/6/2025", "8", "199,5"},
				{"Caxias do Sul", "Hortifruti Serra", "C2", "1003", "", "", "12", "240"},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 0, result.Duplicates)
	assert.Empty(t, result.Rejected)

	// Both C1 rows share one minted collection identifier; C2 gets its own.
	require.Len(t, repo.lines, 3)
	assert.Equal(t, repo.lines[0].CollectionID, repo.lines[1].CollectionID)
	assert.NotEqual(t, repo.lines[0].CollectionID, repo.lines[2].CollectionID)

	assert.Equal(t, "b1", repo.lines[0].BranchID)
	assert.Equal(t, "b2", repo.lines[2].BranchID)
	assert.Equal(t, "000082-85", repo.lines[0].ClientCode)
	assert.Equal(t, 10, repo.lines[0].BoxCount)
	assert.True(t, repo.lines[0].NetWeight.Equal(decimal.NewFromFloat(300.5)))
	require.NotNil(t, repo.lines[0].ReceiptDate)
	assert.Nil(t, repo.lines[2].ReceiptDate)
}

func TestIngestMissingColumnWritesNothing(t *testing.T) {
	t.Parallel()

	repo := &fakeProductionRepo{}
	svc := NewIngestService(repo, &fakeBranchRepo{branches: testBranches()})

	_, err := svc.Ingest(context.Background(), production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: []string{"Filial", "Fornecedor", "NF", "Caixas", "Peso"},
			Rows:   [][]string{{"CD POA", "Frutas Sul", "1001", "10", "300"}},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, production.ErrMissingColumn)
	assert.Empty(t, repo.lines)
}

func TestIngestUnknownBranchFailsBatch(t *testing.T) {
	t.Parallel()

	repo := &fakeProductionRepo{}
	svc := NewIngestService(repo, &fakeBranchRepo{branches: testBranches()})

	_, err := svc.Ingest(context.Background(), production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: receivingHeader(),
			Rows: [][]string{
				{"CD POA", "Frutas Sul", "C1", "1001", "", "", "10", "300"},
				{"CD Pelotas", "Frutas Sul", "C2", "1002", "", "", "8", "200"},
				{"CD Pelotas", "Frutas Sul", "C3", "1003", "", "", "8", "200"},
			},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, production.ErrUnknownBranch)

	var unknown *production.UnknownBranchError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"CD Pelotas"}, unknown.Names)

	// Fail-closed: even the resolvable row was not written.
	assert.Empty(t, repo.lines)
}

func TestIngestDuplicatesCountedSoftly(t *testing.T) {
	t.Parallel()

	repo := &fakeProductionRepo{}
	svc := NewIngestService(repo, &fakeBranchRepo{branches: testBranches()})

	req := production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: receivingHeader(),
			Rows: [][]string{
				{"CD POA", "Frutas Sul", "C1", "1001", "Cliente (01 - 2)", "", "10", "300"},
			},
		},
	}

	result, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	// Re-uploading the same file reports duplicates instead of failing.
	result, err = svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Duplicates)
	assert.Len(t, repo.lines, 1)
}

func TestIngestRejectsRowsWithoutCollectionCode(t *testing.T) {
	t.Parallel()

	repo := &fakeProductionRepo{}
	svc := NewIngestService(repo, &fakeBranchRepo{branches: testBranches()})

	result, err := svc.Ingest(context.Background(), production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: receivingHeader(),
			Rows: [][]string{
				{"CD POA", "Frutas Sul", "", "1001", "", "", "10", "300"},
				{"CD POA", "Frutas Sul", "C1", "1002", "", "", "8", "200"},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 2, result.Rejected[0].Row)
}

func TestIngestTimeWindows(t *testing.T) {
	t.Parallel()

	repo := &fakeProductionRepo{}
	svc := NewIngestService(repo, &fakeBranchRepo{branches: testBranches()})

	// Persist a receiving line first so C1 resolves.
	_, err := svc.Ingest(context.Background(), production.IngestRequest{
		Kind: production.KindReceivingDetail,
		Table: production.Table{
			Header: receivingHeader(),
			Rows:   [][]string{{"CD POA", "Frutas Sul", "C1", "1001", "", "", "10", "300"}},
		},
	})
	require.NoError(t, err)

	result, err := svc.Ingest(context.Background(), production.IngestRequest{
		Kind: production.KindTimeWindow,
		Table: production.Table{
			Header: []string{"Filial", "Coleta", "Início", "Fim"},
			Rows: [][]string{
				{"CD POA", "C1", "2025-06-15 08:00:00", "2025-06-15 10:30:00"},
				{"CD POA", "C9", "2025-06-15 08:00:00", "2025-06-15 09:00:00"},
				{"CD POA", "C1", "2025-06-15 11:00:00", "2025-06-15 09:00:00"},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Inserted)
	require.Len(t, repo.windows, 3)

	// Known code links to the persisted collection.
	require.NotNil(t, repo.windows[0].CollectionID)
	assert.Equal(t, repo.lines[0].CollectionID, *repo.windows[0].CollectionID)
	assert.True(t, repo.windows[0].DurationHours.Valid)
	assert.Equal(t, 2.5, repo.windows[0].DurationHours.Float64)

	// Unknown code stores a null link, not a rejection.
	assert.Nil(t, repo.windows[1].CollectionID)

	// Negative duration stays null.
	assert.False(t, repo.windows[2].DurationHours.Valid)
}
