package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prodbylino/shiftflow/internal/schedule/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthWindow(t *testing.T) {
	w, err := domain.MonthWindow(2024, 3)
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.March, 1), w.Start)
	assert.Equal(t, date(2024, time.April, 1), w.End)

	// Half-open: the last day of March is in, April 1 is out.
	assert.True(t, w.Contains(date(2024, time.March, 1)))
	assert.True(t, w.Contains(date(2024, time.March, 31)))
	assert.False(t, w.Contains(date(2024, time.April, 1)))
	assert.False(t, w.Contains(date(2024, time.February, 29)))
}

func TestMonthWindow_December(t *testing.T) {
	w, err := domain.MonthWindow(2024, 12)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 1), w.End)
}

func TestMonthWindow_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, err := domain.MonthWindow(2024, month)
		assert.Error(t, err, "month %d should be rejected", month)
	}
}

func TestFinancialYearWindow(t *testing.T) {
	w, err := domain.FinancialYearWindow(2023)
	require.NoError(t, err)

	assert.Equal(t, date(2023, time.July, 1), w.Start)
	assert.Equal(t, date(2024, time.July, 1), w.End)

	// June 30 belongs to the year, July 1 of the next year does not.
	assert.True(t, w.Contains(date(2023, time.July, 1)))
	assert.True(t, w.Contains(date(2024, time.June, 30)))
	assert.False(t, w.Contains(date(2024, time.July, 1)))
	assert.False(t, w.Contains(date(2023, time.June, 30)))
}

func TestWindow_Bounds(t *testing.T) {
	w, err := domain.FinancialYearWindow(2024)
	require.NoError(t, err)

	start, end := w.Bounds()
	assert.Equal(t, "2024-07-01", start)
	assert.Equal(t, "2025-07-01", end)
}

func TestWindow_Label(t *testing.T) {
	fy, err := domain.FinancialYearWindow(2024)
	require.NoError(t, err)
	assert.Equal(t, "FY2024-25", fy.Label())

	m, err := domain.MonthWindow(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", m.Label())
}
