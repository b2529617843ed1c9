package pricelist

import (
	"strings"

	"github.com/zatekoja/pricelist-ingestion/internal/extract"
)

var (
	descriptionHeaderWords = []string{"description", "procedures", "procedure", "service", "revenue"}
	priceHeaderWords       = []string{"price", "amount", "rate", "fee"}
	areaHeaderWords        = []string{"area", "category", "department", "unit", "section"}
)

func containsAny(s string, words []string) bool {
	s = strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// DetectHeader scans rows for the first one that names both a
// description-like and a price-like column with at least two header-ish
// cells, and maps its column indices. Returns nil when the document has
// no recognizable header, which switches downstream steps to per-row
// heuristics.
func DetectHeader(rows []extract.Row) *HeaderMap {
	for idx, row := range rows {
		var descCol, priceCol, areaCol *int
		headerish := 0

		for col, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			c := col
			switch {
			case descCol == nil && containsAny(cell, descriptionHeaderWords):
				descCol = &c
				headerish++
			case priceCol == nil && containsAny(cell, priceHeaderWords):
				priceCol = &c
				headerish++
			case areaCol == nil && containsAny(cell, areaHeaderWords):
				areaCol = &c
				headerish++
			}
		}

		if descCol != nil && priceCol != nil && headerish >= 2 {
			return &HeaderMap{
				Row:         idx,
				Description: descCol,
				Price:       priceCol,
				Area:        areaCol,
			}
		}
	}
	return nil
}
