package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/pricelist-ingestion/internal/extract"
)

func intPtr(v int) *int { return &v }

func testHeader() *HeaderMap {
	return &HeaderMap{
		Row:         0,
		Description: intPtr(1),
		Price:       intPtr(2),
		Area:        intPtr(3),
	}
}

func TestMergeContinuations_SimpleRows(t *testing.T) {
	rows := []extract.Row{
		{"S/N", "DESCRIPTION", "PRICE", "AREA"},
		{"1", "Consultation", "2,000", "OPD"},
		{"2", "X-Ray Chest", "5,000", ""},
	}

	logical := MergeContinuations(rows, testHeader())
	require.Len(t, logical, 2)
	assert.Equal(t, "Consultation", logical[0].Description)
	assert.Equal(t, "2,000", logical[0].PriceText)
	assert.Equal(t, "OPD", logical[0].Area)
	assert.Equal(t, 2, logical[0].RowNumber)
	assert.Equal(t, 3, logical[1].RowNumber)
}

func TestMergeContinuations_PriceOverflowRows(t *testing.T) {
	// stacked price cell split across physical rows by a raw scan;
	// the overflow lands in the wrong column
	rows := []extract.Row{
		{"S/N", "DESCRIPTION", "PRICE"},
		{"1", "Ward Admission", "Adult: 5,000"},
		{"", "3,000", ""},
		{"2", "Consultation", "2,000"},
	}

	logical := MergeContinuations(rows, testHeader())
	require.Len(t, logical, 2)
	assert.Equal(t, "Ward Admission", logical[0].Description)
	assert.Equal(t, "Adult: 5,000\n3,000", logical[0].PriceText)
	assert.Equal(t, "Consultation", logical[1].Description)
}

func TestMergeContinuations_FreeFragmentJoinsPrice(t *testing.T) {
	rows := []extract.Row{
		{"S/N", "DESCRIPTION", "PRICE"},
		{"1", "Immunization", "Adult: 2,000"},
		{"", "", "", "Free"},
	}

	logical := MergeContinuations(rows, testHeader())
	require.Len(t, logical, 1)
	assert.Equal(t, "Adult: 2,000\nFree", logical[0].PriceText)
}

func TestMergeContinuations_BlankRowClosesRecord(t *testing.T) {
	rows := []extract.Row{
		{"S/N", "DESCRIPTION", "PRICE"},
		{"1", "Dialysis", "30,000"},
		{"", "", ""},
		{"", "", "5,000"},
	}

	logical := MergeContinuations(rows, testHeader())
	// the orphan price after the blank row starts its own record
	require.Len(t, logical, 2)
	assert.Equal(t, "Dialysis", logical[0].Description)
	assert.Equal(t, "30,000", logical[0].PriceText)
	assert.Equal(t, "", logical[1].Description)
	assert.Equal(t, "5,000", logical[1].PriceText)
}

func TestMergeContinuations_NoColumnsMeansNoRows(t *testing.T) {
	rows := []extract.Row{{"a", "b"}}
	assert.Nil(t, MergeContinuations(rows, &HeaderMap{}))
	assert.Nil(t, MergeContinuations(rows, nil))
}
