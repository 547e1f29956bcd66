package directory

import (
	"bytes"
	"testing"

	"github.com/Govind-Kandale-1/3Tier-website/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	employees := seed.StandardEmployees()

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, employees))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{exportSheet}, f.GetSheetList())

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(employees)+1)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "EMP001", rows[1][0])
	assert.Equal(t, "john.smith@company.com", rows[1][2])

	salary, err := f.GetCellValue(exportSheet, "H2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "75000", salary)
}

func TestExportXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
