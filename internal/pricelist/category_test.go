package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAreaHierarchy(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedParent string
		expectedSub    string
	}{
		{"colon split", "SURGERY: ORTHOPAEDICS", "SURGERY", "ORTHOPAEDICS"},
		{"trailing parenthetical", "RADIOLOGY (CT SCAN)", "RADIOLOGY", "CT SCAN"},
		{"colon wins over parenthetical", "A: B (C)", "A", "B (C)"},
		{"plain string unchanged", "LABORATORY", "LABORATORY", ""},
		{"empty", "", "", ""},
		{"colon without child falls through", "SURGERY:", "SURGERY:", ""},
		{"leading colon is not a split", ": CHILD", ": CHILD", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, sub := ParseAreaHierarchy(tt.input)
			assert.Equal(t, tt.expectedParent, parent)
			assert.Equal(t, tt.expectedSub, sub)
		})
	}
}

func TestBuildProcedureCode(t *testing.T) {
	assert.Equal(t, "PAD", BuildProcedureCode("PAD", 1))
	assert.Equal(t, "X_RAY_CHEST", BuildProcedureCode("X-Ray Chest", 4))
	assert.Equal(t, "", BuildProcedureCode("  --  ", 9))
}

func TestBuildProcedureCode_Deterministic(t *testing.T) {
	a := BuildProcedureCode("Abdominal Ultrasound Scan", 7)
	b := BuildProcedureCode("Abdominal Ultrasound Scan", 7)
	assert.Equal(t, a, b)
}

func TestBuildProcedureCode_LongDescriptionsDoNotCollide(t *testing.T) {
	first := BuildProcedureCode("Comprehensive metabolic panel with liver function", 12)
	second := BuildProcedureCode("Comprehensive metabolic panel with lipid profile", 13)

	assert.NotEqual(t, first, second)
	assert.Contains(t, first, "_12")
	assert.Contains(t, second, "_13")
}
