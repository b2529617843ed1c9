package extract

import (
	"strings"
)

// delimitedRows splits raw delimited text into rows of cells. It differs
// from a standard CSV reader in two ways the source documents require:
// a comma directly between a digit and a three-digit group is treated as
// a thousands separator, not a field break, and quoted fields may span
// physical lines with "" as the quote escape.
func delimitedRows(data string) []Row {
	var rows []Row
	var cells []string
	var cell strings.Builder
	inQuotes := false

	runes := []rune(data)
	endCell := func() {
		cells = append(cells, cell.String())
		cell.Reset()
	}
	endRow := func() {
		endCell()
		rows = append(rows, normalizeRow(cells))
		cells = nil
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cell.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			if isThousandsComma(runes, i) {
				cell.WriteRune(ch)
				continue
			}
			endCell()
		case ch == '\r':
			// swallowed; the following \n ends the row
		case ch == '\n' && !inQuotes:
			endRow()
		default:
			cell.WriteRune(ch)
		}
	}
	if cell.Len() > 0 || len(cells) > 0 {
		endRow()
	}

	return rows
}

// isThousandsComma reports whether the comma at position i sits inside a
// grouped number: preceded by a digit and followed by exactly three
// digits (a fourth digit would make the grouping invalid).
func isThousandsComma(runes []rune, i int) bool {
	if i == 0 || !isDigit(runes[i-1]) {
		return false
	}
	if i+3 >= len(runes) {
		return false
	}
	for j := i + 1; j <= i+3; j++ {
		if !isDigit(runes[j]) {
			return false
		}
	}
	if i+4 < len(runes) && isDigit(runes[i+4]) {
		return false
	}
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
