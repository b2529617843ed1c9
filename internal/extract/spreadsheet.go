package extract

import (
	"github.com/xuri/excelize/v2"

	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

// spreadsheetRows reads the first sheet of a workbook as rows of raw
// cell values, header row included.
func spreadsheetRows(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewValidationError("open workbook: " + err.Error())
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, apperrors.NewValidationError("workbook has no sheets")
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewInternalError("read sheet rows", err)
	}

	rows := make([]Row, 0, len(raw))
	for _, cells := range raw {
		rows = append(rows, normalizeRow(cells))
	}
	return rows, nil
}
