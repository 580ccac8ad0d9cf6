package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
)

// Logical spreadsheet columns. Each maps to a list of accepted header
// aliases; files from different branches caption the same data differently.
const (
	colBranch     = "branch"
	colSupplier   = "supplier"
	colCollection = "collection_code"
	colInvoice    = "invoice_number"
	colClient     = "client"
	colDate       = "receipt_date"
	colReceivedBy = "received_by"
	colBoxes      = "box_count"
	colWeight     = "net_weight"
	colStart      = "started_at"
	colEnd        = "ended_at"
)

// Aliases are stored normalized (lowercase, accents stripped). Matching a
// header means normalizing it and comparing against this list.
var headerAliases = map[string][]string{
	colBranch:     {"filial", "unidade", "branch"},
	colSupplier:   {"fornecedor", "supplier"},
	colCollection: {"coleta", "cod coleta", "codigo coleta", "cod. coleta", "collection"},
	colInvoice:    {"nota fiscal", "nf", "nota", "numero nf", "invoice"},
	colClient:     {"cliente", "razao social", "destinatario"},
	colDate:       {"data recebimento", "data de recebimento", "data", "dt recebimento"},
	colReceivedBy: {"recebido por", "conferente", "recebedor"},
	colBoxes:      {"caixas", "qtd caixas", "quantidade caixas", "volumes", "qtde caixas"},
	colWeight:     {"peso liquido", "peso liq", "peso"},
	colStart:      {"inicio", "hora inicio", "inicio descarga", "hr inicio"},
	colEnd:        {"fim", "termino", "hora fim", "fim descarga", "hr fim"},
}

var requiredColumns = map[production.IngestKind][]string{
	production.KindReceivingDetail: {colBranch, colCollection, colSupplier, colInvoice, colBoxes, colWeight},
	production.KindTimeWindow:      {colBranch, colCollection, colStart, colEnd},
}

var optionalColumns = map[production.IngestKind][]string{
	production.KindReceivingDetail: {colClient, colDate, colReceivedBy},
	production.KindTimeWindow:      {},
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = accentReplacer.Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// resolveColumns maps each logical column to its index in the header row.
// A required column with no alias present fails the whole file.
func resolveColumns(kind production.IngestKind, header []string) (map[string]int, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	find := func(column string) (int, bool) {
		for _, alias := range headerAliases[column] {
			for i, h := range normalized {
				if h == alias {
					return i, true
				}
			}
		}
		return 0, false
	}

	columns := make(map[string]int)
	for _, column := range requiredColumns[kind] {
		idx, ok := find(column)
		if !ok {
			return nil, &production.MissingColumnError{Column: column}
		}
		columns[column] = idx
	}
	for _, column := range optionalColumns[kind] {
		if idx, ok := find(column); ok {
			columns[column] = idx
		}
	}
	return columns, nil
}

func cell(row []string, columns map[string]int, column string) string {
	idx, ok := columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Spreadsheet serial dates count days since 1899-12-30; 25569 is the offset
// to the Unix epoch in days.
const serialEpochOffsetDays = 25569

var (
	dmyRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	ymdRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

var freeFormLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
}

// parseDate accepts serial numbers, D/M/YYYY, YYYY-M-D and a few free-form
// layouts, in that order. Unparseable input yields nil, never an error.
func parseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && serial > 0 {
		ms := (serial - serialEpochOffsetDays) * 86400 * 1000
		parsed := time.UnixMilli(int64(ms)).UTC()
		return &parsed
	}

	if m := dmyRegex.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if valid, parsed := buildDate(year, month, day); valid {
			return &parsed
		}
		return nil
	}

	if m := ymdRegex.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if valid, parsed := buildDate(year, month, day); valid {
			return &parsed
		}
		return nil
	}

	for _, layout := range freeFormLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

func buildDate(year, month, day int) (bool, time.Time) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false, time.Time{}
	}
	return true, time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// parseNumber tolerates Brazilian decimal commas and thousand separators.
// Blank or unparseable cells yield 0.
func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

var clientCodeRegex = regexp.MustCompile(`\((\d+)\s*-\s*(\d+)\)`)

// extractClientCode pulls the numeric code pair out of a free-text customer
// caption: "Some Name (000082 - 85)" yields "000082-85".
func extractClientCode(raw string) string {
	m := clientCodeRegex.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2]
}

// round2 keeps derived durations at two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
