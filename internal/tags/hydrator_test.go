package tags

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
)

func sampleRecord() *entities.PriceRecord {
	tier := entities.TierAdult
	return &entities.PriceRecord{
		FacilityName:         "Lagos State University Teaching Hospital (LASUTH)",
		ProcedureCode:        "X_RAY_CHEST",
		ProcedureDescription: "X-Ray Chest",
		ProcedureCategory:    "RADIOLOGY",
		Price:                5000,
		Metadata: entities.RecordMetadata{
			Area:      "RADIOLOGY",
			Category:  "RADIOLOGY",
			PriceTier: &tier,
		},
	}
}

func TestHydrate_UnionsAllSources(t *testing.T) {
	h := NewHydrator(nil, nil)
	rec := sampleRecord()

	h.Hydrate(rec)

	// curated facility tags
	assert.Contains(t, rec.Tags, "teaching_hospital")
	assert.Contains(t, rec.Tags, "public")

	// rule tags from the imaging pattern
	assert.Contains(t, rec.Tags, "imaging")
	assert.Contains(t, rec.Tags, "radiology")

	// metadata tags
	assert.Contains(t, rec.Tags, "adult")

	require.NotNil(t, rec.Provenance)
	assert.Contains(t, rec.Provenance.RuleIDs, "imaging")
	assert.Contains(t, rec.Provenance.FacilityTags, "teaching_hospital")
	assert.Contains(t, rec.Provenance.MetadataTags, "adult")
	assert.NotEmpty(t, rec.Provenance.Citations)
}

func TestHydrate_TagsAreSortedAndDeduplicated(t *testing.T) {
	h := NewHydrator(nil, nil)
	rec := sampleRecord()
	rec.Tags = []string{"radiology", "Radiology", "zzz custom"}

	h.Hydrate(rec)

	assert.True(t, sort.StringsAreSorted(rec.Tags))
	count := 0
	for _, tag := range rec.Tags {
		if tag == "radiology" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, rec.Tags, "zzz_custom")
}

func TestHydrate_FreeTagOnZeroPrice(t *testing.T) {
	h := NewHydrator(nil, nil)
	rec := sampleRecord()
	rec.Price = 0

	h.Hydrate(rec)

	assert.Contains(t, rec.Tags, "free")
	assert.Contains(t, rec.Provenance.MetadataTags, "free")
}

func TestHydrate_Idempotent(t *testing.T) {
	h := NewHydrator(nil, nil)
	rec := sampleRecord()

	h.Hydrate(rec)
	firstTags := append([]string(nil), rec.Tags...)
	firstRuleIDs := append([]string(nil), rec.Provenance.RuleIDs...)

	h.Hydrate(rec)

	assert.Equal(t, firstTags, rec.Tags)
	assert.Equal(t, firstRuleIDs, rec.Provenance.RuleIDs)
}

func TestHydrate_PreservesExistingTags(t *testing.T) {
	h := NewHydrator(nil, nil)
	rec := sampleRecord()
	rec.Tags = []string{"operator_curated"}

	h.Hydrate(rec)

	assert.Contains(t, rec.Tags, "operator_curated")
}

func TestHydrate_UnknownFacilityStillGetsRuleTags(t *testing.T) {
	h := NewHydrator(nil, nil)
	rec := sampleRecord()
	rec.FacilityName = "Some Unknown Clinic"

	h.Hydrate(rec)

	assert.Contains(t, rec.Tags, "imaging")
	assert.Empty(t, rec.Provenance.FacilityTags)
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Teaching Hospital", "teaching_hospital"},
		{"  X-Ray / CT  ", "x_ray_ct"},
		{"already_normal", "already_normal"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeTag(tt.input), tt.input)
	}
}

func TestHydrate_InfersFacilityTypeTag(t *testing.T) {
	h := NewHydrator(nil, nil)
	rec := sampleRecord()
	rec.FacilityName = "Blue Cross Specialist Hospital"

	h.Hydrate(rec)

	assert.Contains(t, rec.Tags, "specialty_hospital")
	assert.Contains(t, rec.Provenance.MetadataTags, "specialty_hospital")
}
