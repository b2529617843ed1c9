package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
)

func TestExpandVariants_SingleNumber(t *testing.T) {
	res := ExpandVariants("5,000", "Consultation")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 5000.0, res.Variants[0].Price)
	assert.Empty(t, res.Variants[0].Tier)
	assert.Nil(t, res.Unit)
	assert.Empty(t, res.Breakdown)
}

func TestExpandVariants_TierSplit(t *testing.T) {
	res := ExpandVariants("Adult: 10,000\nPaediatric: 5,000", "Ward Admission")

	require.Len(t, res.Variants, 2)
	assert.Equal(t, 10000.0, res.Variants[0].Price)
	assert.Equal(t, entities.TierAdult, res.Variants[0].Tier)
	assert.Equal(t, 5000.0, res.Variants[1].Price)
	assert.Equal(t, entities.TierPaediatric, res.Variants[1].Tier)
}

func TestExpandVariants_Free(t *testing.T) {
	res := ExpandVariants("Free", "Immunization")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 0.0, res.Variants[0].Price)
	assert.Equal(t, entities.TierFree, res.Variants[0].Tier)
}

func TestExpandVariants_FreeKeepsExplicitTier(t *testing.T) {
	res := ExpandVariants("Paediatric: Free", "Malaria Test")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 0.0, res.Variants[0].Price)
	assert.Equal(t, entities.TierPaediatric, res.Variants[0].Tier)
}

func TestExpandVariants_TotalCollapse(t *testing.T) {
	cell := "Theatre fee: 20,000\nWard fee: 10,000\nTOTAL: 30,000"
	res := ExpandVariants(cell, "Caesarean Section")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 30000.0, res.Variants[0].Price)

	require.Len(t, res.Breakdown, 2)
	assert.Equal(t, "Theatre fee", res.Breakdown[0].Label)
	assert.Equal(t, 20000.0, res.Breakdown[0].Amount)
	assert.Equal(t, "Ward fee", res.Breakdown[1].Label)
	assert.Equal(t, 10000.0, res.Breakdown[1].Amount)
}

func TestExpandVariants_AgeTokenIsNotAPrice(t *testing.T) {
	res := ExpandVariants("18YRS & ABOVE: 5,000", "Adult Registration")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 5000.0, res.Variants[0].Price)
}

func TestExpandVariants_NoNumbersNoFree(t *testing.T) {
	res := ExpandVariants("18YRS", "Age Bracket")
	assert.Empty(t, res.Variants)

	res = ExpandVariants("", "Heading Only")
	assert.Empty(t, res.Variants)
}

func TestExpandVariants_NairaShorthand(t *testing.T) {
	res := ExpandVariants("N5,000", "Dressing")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 5000.0, res.Variants[0].Price)
}

func TestExpandVariants_Unit(t *testing.T) {
	res := ExpandVariants("5,000 per day", "Oxygen")

	require.NotNil(t, res.Unit)
	assert.Equal(t, entities.UnitPerDay, *res.Unit)
	require.Len(t, res.Variants, 1)
	assert.Equal(t, entities.UnitPerDay, res.Variants[0].Unit)
}

func TestExpandVariants_Qualifier(t *testing.T) {
	res := ExpandVariants("10,000 (depending on distance)", "Ambulance")

	assert.Equal(t, "depending on distance", res.Qualifier)
	require.Len(t, res.Variants, 1)
	assert.Equal(t, 10000.0, res.Variants[0].Price)
}

func TestExpandVariants_StripsDuplicateDescriptionPrefix(t *testing.T) {
	res := ExpandVariants("X-Ray Chest 5,000", "X-Ray Chest")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 5000.0, res.Variants[0].Price)
}

func TestExpandVariants_MultipleNumbersInSegment(t *testing.T) {
	res := ExpandVariants("5,000 7,500", "Scan")

	require.Len(t, res.Variants, 2)
	assert.Equal(t, 5000.0, res.Variants[0].Price)
	assert.Equal(t, 7500.0, res.Variants[1].Price)
}

func TestExpandVariants_Decimal(t *testing.T) {
	res := ExpandVariants("1,250.50", "Lab Test")

	require.Len(t, res.Variants, 1)
	assert.Equal(t, 1250.50, res.Variants[0].Price)
}
