package ingest

import (
	"testing"
	"time"

	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "codigo coleta", normalizeHeader("  Código   Coleta "))
	assert.Equal(t, "peso liquido", normalizeHeader("PESO LÍQUIDO"))
	assert.Equal(t, "filial", normalizeHeader("Filial"))
}

func TestResolveColumnsAliases(t *testing.T) {
	t.Parallel()

	header := []string{"FILIAL", "Fornecedor", "Código Coleta", "NF", "Cliente", "Data", "Conferente", "Qtd Caixas", "Peso Líquido"}
	columns, err := resolveColumns(production.KindReceivingDetail, header)
	require.NoError(t, err)

	assert.Equal(t, 0, columns[colBranch])
	assert.Equal(t, 2, columns[colCollection])
	assert.Equal(t, 3, columns[colInvoice])
	assert.Equal(t, 7, columns[colBoxes])
	assert.Equal(t, 8, columns[colWeight])
}

func TestResolveColumnsMissingRequired(t *testing.T) {
	t.Parallel()

	header := []string{"Filial", "Fornecedor", "NF", "Caixas", "Peso"}
	_, err := resolveColumns(production.KindReceivingDetail, header)
	require.Error(t, err)
	assert.ErrorIs(t, err, production.ErrMissingColumn)

	var missing *production.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, colCollection, missing.Column)
}

func TestParseDateSerialNumber(t *testing.T) {
	t.Parallel()

	// Serial 45474 is 2024-07-01.
	parsed := parseDate("45474")
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), *parsed)

	// Fractional part carries the time of day.
	parsed = parseDate("45474.5")
	require.NotNil(t, parsed)
	assert.Equal(t, 12, parsed.Hour())
}

func TestParseDateFormats(t *testing.T) {
	t.Parallel()

	parsed := parseDate("15/6/2025")
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *parsed)

	parsed = parseDate("2025-6-15")
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *parsed)

	parsed = parseDate("2025-06-15 08:30:00")
	require.NotNil(t, parsed)
	assert.Equal(t, 8, parsed.Hour())

	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("not a date"))
	assert.Nil(t, parseDate("32/13/2025"))
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, parseNumber(""))
	assert.Equal(t, 0.0, parseNumber("abc"))
	assert.Equal(t, 12.0, parseNumber("12"))
	assert.Equal(t, 12.5, parseNumber("12.5"))
	assert.Equal(t, 12.5, parseNumber("12,5"))
	assert.Equal(t, 1234.56, parseNumber("1.234,56"))
}

func TestExtractClientCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "000082-85", extractClientCode("Mercado Central (000082 - 85)"))
	assert.Equal(t, "000082-85", extractClientCode("Mercado Central (000082-85)"))
	assert.Equal(t, "", extractClientCode("Mercado Central"))
	assert.Equal(t, "", extractClientCode(""))
}

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, round2(2.0))
	assert.Equal(t, 2.35, round2(2.346))
	assert.Equal(t, 2.34, round2(2.344))
	assert.Equal(t, 0.33, round2(1.0/3.0))
}
