package entities

import (
	"time"
)

// PriceUnit qualifies a price as recurring over a billing period.
type PriceUnit string

const (
	UnitPerDay   PriceUnit = "per_day"
	UnitPerHour  PriceUnit = "per_hour"
	UnitPerWeek  PriceUnit = "per_week"
	UnitPerMonth PriceUnit = "per_month"
)

// PriceTier qualifies a price as applying to a sub-population.
type PriceTier string

const (
	TierAdult      PriceTier = "adult"
	TierPaediatric PriceTier = "paediatric"
	TierExecutive  PriceTier = "executive"
	TierPrivate    PriceTier = "private"
	TierGeneral    PriceTier = "general"
	TierFree       PriceTier = "free"
)

// BreakdownItem is one labeled sub-amount reconstructed from a price cell
// that carried a running total. Only the total is emitted as the record
// price; the breakdown is retained for audit.
type BreakdownItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// RecordMetadata carries provenance and parse detail for a price record.
type RecordMetadata struct {
	SourceFile     string          `json:"sourceFile"`
	Area           string          `json:"area,omitempty"`
	Category       string          `json:"category,omitempty"`
	Unit           *PriceUnit      `json:"unit,omitempty"`
	PriceTier      *PriceTier      `json:"priceTier,omitempty"`
	RawPriceText   string          `json:"rawPriceText,omitempty"`
	PriceQualifier string          `json:"priceQualifier,omitempty"`
	RowNumber      int             `json:"rowNumber"`
	Breakdown      []BreakdownItem `json:"breakdown,omitempty"`
}

// TagProvenance records where each hydrated tag came from so re-running
// hydration can merge rather than overwrite.
type TagProvenance struct {
	FacilityTags []string `json:"facilityTags,omitempty"`
	RuleIDs      []string `json:"ruleIds,omitempty"`
	MetadataTags []string `json:"metadataTags,omitempty"`
	Citations    []string `json:"citations,omitempty"`
}

// PriceRecord is one priced procedure at one facility, the unit of output
// for every ingestion path. Field names follow the provider wire format
// consumed downstream.
type PriceRecord struct {
	ID                   string         `json:"id" db:"id"`
	FacilityName         string         `json:"facilityName" db:"facility_name"`
	FacilityID           string         `json:"facilityId" db:"facility_id"`
	ProcedureCode        string         `json:"procedureCode" db:"procedure_code"`
	ProcedureDescription string         `json:"procedureDescription" db:"procedure_description"`
	ProcedureCategory    string         `json:"procedureCategory,omitempty" db:"procedure_category"`
	Price                float64        `json:"price" db:"price"`
	Currency             string         `json:"currency" db:"currency"`
	EffectiveDate        time.Time      `json:"effectiveDate" db:"effective_date"`
	LastUpdated          time.Time      `json:"lastUpdated" db:"last_updated"`
	Source               string         `json:"source" db:"source"`
	Tags                 []string       `json:"tags,omitempty" db:"-"`
	Provenance           *TagProvenance `json:"tagProvenance,omitempty" db:"-"`
	Metadata             RecordMetadata `json:"metadata" db:"-"`
}
