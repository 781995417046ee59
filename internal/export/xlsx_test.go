package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() domain.NormalizedData {
	duration, bed, wake := "7h56", "10:59 PM", "07:56 AM"
	hr, score := 54.0, 82.0
	return normalizer.Normalize(domain.RawSleepData{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Sleep: map[string]domain.RawNightEntry{
			"11/05/2025": {Duration: &duration, MeanHeartRate: &hr, Bedtime: &bed, Waketime: &wake, Score: &score},
			"12/05/2025": {},
		},
	})
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SleepsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sleepHeaders, rows[0])
	assert.Equal(t, []string{"11/05/2025", "7h56", "476", "54", "10:59 PM", "07:56 AM", "82", "2025-05-11T22:59:00", "2025-05-12T07:56:00"}, rows[1])
	// Trailing empty cells are not returned by GetRows.
	assert.Equal(t, []string{"12/05/2025"}, rows[2])

	name, err := f.GetCellValue(SummarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
	complete, err := f.GetCellValue(SummarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", complete)
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleeps.xlsx")
	require.NoError(t, SaveXLSX(path, sample()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SleepsSheet, SummarySheet}, f.GetSheetList())
}
