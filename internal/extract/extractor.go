package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

// Row is one extracted table row of cell strings.
type Row []string

// Rows reads a price-list document and returns its ordered rows of
// trimmed, whitespace-normalized cells. The container format is chosen
// by file extension; files over maxBytes are rejected outright rather
// than partially read.
func Rows(path string, maxBytes int64) ([]Row, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.NewInternalError("stat file", err)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, apperrors.NewTooLargeError(fmt.Sprintf("file too large: %s is %d bytes (limit %d)", filepath.Base(path), info.Size(), maxBytes))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewInternalError("read file", err)
		}
		return delimitedRows(string(data)), nil
	case ".docx":
		return wordTableRows(path)
	case ".xlsx":
		return spreadsheetRows(path)
	default:
		return nil, apperrors.NewUnsupportedError(fmt.Sprintf("unsupported file extension: %s", filepath.Ext(path)))
	}
}

// normalizeCell trims a cell and collapses runs of horizontal whitespace,
// preserving the line breaks that separate stacked values.
func normalizeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func normalizeRow(cells []string) Row {
	row := make(Row, len(cells))
	for i, c := range cells {
		row[i] = normalizeCell(c)
	}
	return row
}
