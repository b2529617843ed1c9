package pricelist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zatekoja/pricelist-ingestion/internal/extract"
)

// LogicalRow is one reconstructed record row after continuation merging:
// multi-line cells split across physical rows are folded back together.
type LogicalRow struct {
	Description string
	PriceText   string
	Area        string

	// RowNumber is the physical row the record started on, 1-based
	RowNumber int
}

var (
	letterPattern  = regexp.MustCompile(`[A-Za-z]`)
	numericPattern = regexp.MustCompile(`\d`)
)

func hasLetters(s string) bool {
	return letterPattern.MatchString(s)
}

// isPriceLike reports whether a cell carries price signal: a number or an
// explicit free marker.
func isPriceLike(s string) bool {
	if strings.Contains(strings.ToLower(s), "free") {
		return true
	}
	return numericPattern.MatchString(s)
}

// isBareIndex reports whether a cell is nothing but a row counter.
func isBareIndex(s string) bool {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "."))
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func rowBlank(row extract.Row) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row extract.Row, col *int) string {
	if col == nil || *col >= len(row) {
		return ""
	}
	return row[*col]
}

// MergeContinuations walks the rows after the header and folds
// continuation rows into the record they belong to. A row starts a new
// record when it opens with a bare index, or has letters in the
// description column, or price signal in the price column; anything else
// is stacked cell overflow and is appended to the open record. A blank
// row closes the open record.
func MergeContinuations(rows []extract.Row, header *HeaderMap) []LogicalRow {
	if !header.HasColumns() {
		return nil
	}

	var merged []LogicalRow
	var current *LogicalRow

	flush := func() {
		if current != nil {
			merged = append(merged, *current)
			current = nil
		}
	}

	for i := header.Row + 1; i < len(rows); i++ {
		row := rows[i]
		if rowBlank(row) {
			flush()
			continue
		}

		desc := cellAt(row, header.Description)
		price := cellAt(row, header.Price)

		startsRecord := (len(row) > 0 && isBareIndex(row[0])) ||
			hasLetters(desc) || isPriceLike(price)

		if startsRecord {
			flush()
			current = &LogicalRow{
				Description: desc,
				PriceText:   price,
				Area:        cellAt(row, header.Area),
				RowNumber:   i + 1,
			}
			continue
		}

		if current == nil {
			continue
		}
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if isPriceLike(cell) && (!hasLetters(cell) || strings.EqualFold(cell, "free")) {
				current.PriceText = joinFragment(current.PriceText, cell)
			} else if hasLetters(cell) {
				current.Description = joinFragment(current.Description, cell)
			}
		}
	}
	flush()

	return merged
}

func joinFragment(base, fragment string) string {
	if base == "" {
		return fragment
	}
	return base + "\n" + fragment
}
