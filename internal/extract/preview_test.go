package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPreview_JoinsCells(t *testing.T) {
	rows := []Row{
		{"DESCRIPTION", "PRICE"},
		{"Consultation", "2,000"},
	}

	preview := BuildPreview(rows, 10, 1000)
	assert.Equal(t, "DESCRIPTION | PRICE\nConsultation | 2,000", preview)
}

func TestBuildPreview_RowCap(t *testing.T) {
	rows := make([]Row, 5)
	for i := range rows {
		rows[i] = Row{"service", "100"}
	}

	preview := BuildPreview(rows, 3, 1000)
	assert.Equal(t, 4, len(strings.Split(preview, "\n")))
	assert.True(t, strings.HasSuffix(preview, TruncationMarker))
}

func TestBuildPreview_CharCap(t *testing.T) {
	rows := []Row{
		{strings.Repeat("a", 30)},
		{strings.Repeat("b", 30)},
	}

	preview := BuildPreview(rows, 10, 40)
	assert.Contains(t, preview, strings.Repeat("a", 30))
	assert.NotContains(t, preview, "b")
	assert.True(t, strings.HasSuffix(preview, TruncationMarker))
}

func TestBuildPreview_NoTruncationMarkerWhenWithinCaps(t *testing.T) {
	preview := BuildPreview([]Row{{"a", "b"}}, 10, 1000)
	assert.NotContains(t, preview, TruncationMarker)
}
