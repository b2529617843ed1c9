package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRows_CSV(t *testing.T) {
	path := writeTempFile(t, "list.csv", "DESCRIPTION,PRICE\nConsultation,2,000\n")

	rows, err := Rows(path, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"DESCRIPTION", "PRICE"}, rows[0])
	assert.Equal(t, Row{"Consultation", "2,000"}, rows[1])
}

func TestRows_FileTooLarge(t *testing.T) {
	path := writeTempFile(t, "big.csv", "DESCRIPTION,PRICE\nConsultation,2000\n")

	_, err := Rows(path, 4)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTooLarge))
}

func TestRows_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "list.pdf", "not a table")

	_, err := Rows(path, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnsupported))
}

func TestRows_MissingFile(t *testing.T) {
	_, err := Rows(filepath.Join(t.TempDir(), "missing.csv"), 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}
