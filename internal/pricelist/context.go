package pricelist

import (
	"time"
)

// ParseContext carries the per-invocation settings for one document
// parse. It is immutable for the duration of a parse call.
type ParseContext struct {
	// FacilityName, when set, bypasses facility inference entirely
	FacilityName string

	// SourceFile is the document's base name, used for facility
	// fallback and record provenance
	SourceFile string

	Currency      string
	EffectiveDate time.Time

	// FileFacilityNames maps source file names to operator-curated
	// facility names; a hit wins over every inference stage, including
	// the resolver's own overrides
	FileFacilityNames map[string]string

	// ConfidenceThreshold, when positive, replaces the resolver's
	// threshold for the filename-derived facility fallback
	ConfidenceThreshold float64

	// Provider identifies the ingestion source on emitted records
	Provider string
}

// HeaderMap holds the detected column indices of a tabular document.
// A nil index means the column was not found and per-row heuristics
// apply downstream.
type HeaderMap struct {
	Row         int
	Description *int
	Price       *int
	Area        *int
}

// HasColumns reports whether both a description and a price column are
// known, the precondition for continuation merging.
func (h *HeaderMap) HasColumns() bool {
	return h != nil && h.Description != nil && h.Price != nil
}
