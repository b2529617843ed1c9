package entities

import (
	"time"
)

// SummaryItem is one priced line extracted by the LLM path.
type SummaryItem struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Tier        string  `json:"tier,omitempty"`
	Category    string  `json:"category,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	RawRow      string  `json:"rawRow,omitempty"`
}

// SummaryMetadata describes how and when a summary was produced.
type SummaryMetadata struct {
	SourceFile  string    `json:"sourceFile"`
	ExtractedAt time.Time `json:"extractedAt"`
	Model       string    `json:"model"`
	TokensUsed  int       `json:"tokensUsed,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// DocumentSummary is the structured extraction of one price-list document.
// Summaries are content-addressed: one summary per distinct file hash,
// never mutated after it is cached.
type DocumentSummary struct {
	FacilityName  string          `json:"facilityName"`
	Currency      string          `json:"currency,omitempty"`
	EffectiveDate time.Time       `json:"effectiveDate,omitempty"`
	Items         []SummaryItem   `json:"items"`
	Metadata      SummaryMetadata `json:"documentMetadata"`
}
