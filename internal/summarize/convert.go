package summarize

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
	"github.com/zatekoja/pricelist-ingestion/internal/facility"
	"github.com/zatekoja/pricelist-ingestion/internal/pricelist"
)

// ToPriceRecords converts a document summary into the same record shape
// the row parser emits, so both ingestion paths feed one sink.
func ToPriceRecords(summary *entities.DocumentSummary, provider string, effectiveDate time.Time) []entities.PriceRecord {
	if summary == nil || summary.FacilityName == "" {
		return nil
	}

	now := time.Now().UTC()
	effective := effectiveDate
	if effective.IsZero() {
		if !summary.EffectiveDate.IsZero() {
			effective = summary.EffectiveDate
		} else {
			effective = now
		}
	}

	facilityID := facility.BuildID(provider, summary.FacilityName)

	records := make([]entities.PriceRecord, 0, len(summary.Items))
	for i, item := range summary.Items {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			continue
		}

		currency := item.Currency
		if currency == "" {
			currency = summary.Currency
		}

		parentArea, subCategory := pricelist.ParseAreaHierarchy(item.Category)
		category := subCategory
		if category == "" {
			category = parentArea
		}

		rec := entities.PriceRecord{
			ID:                   uuid.NewString(),
			FacilityName:         summary.FacilityName,
			FacilityID:           facilityID,
			ProcedureCode:        pricelist.BuildProcedureCode(desc, i+1),
			ProcedureDescription: desc,
			ProcedureCategory:    category,
			Price:                item.Price,
			Currency:             currency,
			EffectiveDate:        effective,
			LastUpdated:          now,
			Source:               provider,
			Metadata: entities.RecordMetadata{
				SourceFile:     summary.Metadata.SourceFile,
				Area:           parentArea,
				Category:       category,
				PriceQualifier: item.Notes,
				RowNumber:      i + 1,
			},
		}
		if unit, ok := parseUnit(item.Unit); ok {
			rec.Metadata.Unit = &unit
		}
		if tier, ok := parseTier(item.Tier); ok {
			rec.Metadata.PriceTier = &tier
		}
		records = append(records, rec)
	}
	return records
}

func parseUnit(raw string) (entities.PriceUnit, bool) {
	switch entities.PriceUnit(strings.ToLower(strings.TrimSpace(raw))) {
	case entities.UnitPerDay:
		return entities.UnitPerDay, true
	case entities.UnitPerHour:
		return entities.UnitPerHour, true
	case entities.UnitPerWeek:
		return entities.UnitPerWeek, true
	case entities.UnitPerMonth:
		return entities.UnitPerMonth, true
	}
	return "", false
}

func parseTier(raw string) (entities.PriceTier, bool) {
	switch entities.PriceTier(strings.ToLower(strings.TrimSpace(raw))) {
	case entities.TierAdult:
		return entities.TierAdult, true
	case entities.TierPaediatric:
		return entities.TierPaediatric, true
	case entities.TierExecutive:
		return entities.TierExecutive, true
	case entities.TierPrivate:
		return entities.TierPrivate, true
	case entities.TierGeneral:
		return entities.TierGeneral, true
	case entities.TierFree:
		return entities.TierFree, true
	}
	return "", false
}
