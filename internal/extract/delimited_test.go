package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelimitedRows_ThousandsSeparator(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Row
	}{
		{
			name:     "grouped number stays one cell",
			input:    "X-Ray Chest,N5,000",
			expected: Row{"X-Ray Chest", "N5,000"},
		},
		{
			name:     "multiple groups",
			input:    "Dialysis,1,250,000",
			expected: Row{"Dialysis", "1,250,000"},
		},
		{
			name:     "comma between words is a field break",
			input:    "Consultation, Adult,2000",
			expected: Row{"Consultation", "Adult", "2000"},
		},
		{
			name:     "four digits after comma break the grouping",
			input:    "A,1,2345,B",
			expected: Row{"A", "1", "2345", "B"},
		},
		{
			name:     "grouped decimal",
			input:    "Scan,12,500.50",
			expected: Row{"Scan", "12,500.50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := delimitedRows(tt.input)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.expected, rows[0])
		})
	}
}

func TestDelimitedRows_QuotedMultilineField(t *testing.T) {
	input := "Ward Fees,\"Adult: 5,000\nPaediatric: 3,000\"\nNext,100\n"

	rows := delimitedRows(input)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"Ward Fees", "Adult: 5,000\nPaediatric: 3,000"}, rows[0])
	assert.Equal(t, Row{"Next", "100"}, rows[1])
}

func TestDelimitedRows_QuoteEscape(t *testing.T) {
	rows := delimitedRows(`"said ""free""",200`)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{`said "free"`, "200"}, rows[0])
}

func TestDelimitedRows_CRLFAndTrailingRow(t *testing.T) {
	rows := delimitedRows("a,b\r\nc,d")
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"a", "b"}, rows[0])
	assert.Equal(t, Row{"c", "d"}, rows[1])
}

func TestNormalizeCell(t *testing.T) {
	assert.Equal(t, "a b\nc d", normalizeCell("  a\t b \r\n\n c  d "))
}
