package http

import (
	"fmt"
	"io"

	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/xuri/excelize/v2"
)

// tableFromWorkbook reads the first sheet of an uploaded .xlsx into the
// in-memory table the ingestion service consumes. RawCellValue keeps dates
// as their serial numbers, which the row parser understands.
func tableFromWorkbook(r io.Reader) (production.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return production.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return production.Table{}, production.ErrEmptyTable
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return production.Table{}, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return production.Table{}, production.ErrEmptyTable
	}

	return production.Table{
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}
