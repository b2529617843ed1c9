package summarize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
)

func TestToPriceRecords(t *testing.T) {
	summary := &entities.DocumentSummary{
		FacilityName: "Lagos State University Teaching Hospital (LASUTH)",
		Currency:     "NGN",
		Items: []entities.SummaryItem{
			{Description: "Consultation", Price: 2000, Category: "OPD"},
			{Description: "Ward Admission", Price: 5000, Tier: "adult", Unit: "per_day", Notes: "excludes feeding"},
			{Description: "", Price: 100},
		},
		Metadata: entities.SummaryMetadata{SourceFile: "lasuth.csv"},
	}

	effective := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := ToPriceRecords(summary, "pricelist", effective)

	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Lagos State University Teaching Hospital (LASUTH)", first.FacilityName)
	assert.Equal(t, "pricelist_lagos_state_university_teaching_hospital_lasuth", first.FacilityID)
	assert.Equal(t, "CONSULTATION", first.ProcedureCode)
	assert.Equal(t, 2000.0, first.Price)
	assert.Equal(t, "NGN", first.Currency)
	assert.Equal(t, "OPD", first.ProcedureCategory)
	assert.Equal(t, effective, first.EffectiveDate)
	assert.Equal(t, "lasuth.csv", first.Metadata.SourceFile)
	assert.NotEmpty(t, first.ID)

	second := records[1]
	require.NotNil(t, second.Metadata.PriceTier)
	assert.Equal(t, entities.TierAdult, *second.Metadata.PriceTier)
	require.NotNil(t, second.Metadata.Unit)
	assert.Equal(t, entities.UnitPerDay, *second.Metadata.Unit)
	assert.Equal(t, "excludes feeding", second.Metadata.PriceQualifier)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestToPriceRecords_CategoryHierarchy(t *testing.T) {
	summary := &entities.DocumentSummary{
		FacilityName: "EKO Hospital",
		Items: []entities.SummaryItem{
			{Description: "CT Scan", Price: 50000, Category: "RADIOLOGY: IMAGING"},
		},
	}

	records := ToPriceRecords(summary, "pricelist", time.Time{})
	require.Len(t, records, 1)
	assert.Equal(t, "RADIOLOGY", records[0].Metadata.Area)
	assert.Equal(t, "IMAGING", records[0].ProcedureCategory)
}

func TestToPriceRecords_NilSummary(t *testing.T) {
	assert.Nil(t, ToPriceRecords(nil, "pricelist", time.Time{}))
	assert.Nil(t, ToPriceRecords(&entities.DocumentSummary{}, "pricelist", time.Time{}))
}

func TestToPriceRecords_IgnoresUnknownTierAndUnit(t *testing.T) {
	summary := &entities.DocumentSummary{
		FacilityName: "EKO Hospital",
		Items: []entities.SummaryItem{
			{Description: "Scan", Price: 100, Tier: "vip", Unit: "per_scan"},
		},
	}

	records := ToPriceRecords(summary, "pricelist", time.Time{})
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Metadata.PriceTier)
	assert.Nil(t, records[0].Metadata.Unit)
}
