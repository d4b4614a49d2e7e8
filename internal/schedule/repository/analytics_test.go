package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prodbylino/shiftflow/internal/schedule/domain"
	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/testutil"
)

const orgID2 = "c1d2e3f4-0000-4000-8000-000000000003"

func TestAnalyticsRepository_Summarize_MonthWindow(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewAnalyticsRepository(db)

	window, err := domain.MonthWindow(2024, 3)
	require.NoError(t, err)

	// Zero-shift organizations still appear: the LEFT JOIN keeps them
	// with shift_count 0 and total_hours 0.
	rows := testutil.MockRows("org_id", "org_name", "org_color", "shift_count", "total_hours").
		AddRow(orgID, "Night Cafe", "#4F46E5", 2, 8.0).
		AddRow(orgID2, "Weekend Market", "#22C55E", 0, 0.0)

	mockDB.Mock.ExpectQuery(`LEFT JOIN shifts\s+ON s\.organization_id = o\.id AND s\.user_id = o\.user_id\s+AND s\.date >= \$2 AND s\.date < \$3\s+WHERE o\.user_id = \$1\s+GROUP BY o\.id, o\.name, o\.color\s+ORDER BY total_hours DESC, o\.name`).
		WithArgs(ownerA, "2024-03-01", "2024-04-01").
		WillReturnRows(rows)

	summaries, err := repo.Summarize(context.Background(), ownerA, window)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.EqualValues(t, 2, summaries[0].ShiftCount)
	assert.InDelta(t, 8.0, summaries[0].TotalHours, 1e-9)
	assert.EqualValues(t, 0, summaries[1].ShiftCount)
	assert.Zero(t, summaries[1].TotalHours)

	mockDB.ExpectationsWereMet(t)
}

func TestAnalyticsRepository_Summarize_FinancialYearBounds(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewAnalyticsRepository(db)

	window, err := domain.FinancialYearWindow(2023)
	require.NoError(t, err)

	// Half-open window parameters: July 1 2023 inclusive through
	// July 1 2024 exclusive, so a June 30 shift is in and a July 1
	// shift belongs to the next year.
	mockDB.Mock.ExpectQuery(`FROM organizations o`).
		WithArgs(ownerA, "2023-07-01", "2024-07-01").
		WillReturnRows(testutil.MockRows("org_id", "org_name", "org_color", "shift_count", "total_hours"))

	_, err = repo.Summarize(context.Background(), ownerA, window)
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestAnalyticsRepository_ListShifts(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewAnalyticsRepository(db)

	window, err := domain.FinancialYearWindow(2023)
	require.NoError(t, err)

	rows := testutil.MockRows(
		"shift_id", "org_id", "org_name", "org_color", "title", "date", "end_date",
		"start_time", "end_time", "hours_worked").
		AddRow(shiftID, orgID, "Night Cafe", "#4F46E5", "Overnight", "2024-03-10", "2024-03-11",
			"22:00:00", "06:00:00", 8.0)

	mockDB.Mock.ExpectQuery(`JOIN organizations o ON o\.id = s\.organization_id AND o\.user_id = s\.user_id\s+WHERE s\.user_id = \$1 AND s\.date >= \$2 AND s\.date < \$3\s+ORDER BY s\.date, s\.start_time`).
		WithArgs(ownerA, "2023-07-01", "2024-07-01").
		WillReturnRows(rows)

	shifts, err := repo.ListShifts(context.Background(), ownerA, window)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Night Cafe", shifts[0].OrgName)
	assert.InDelta(t, 8.0, shifts[0].HoursWorked, 1e-9)

	mockDB.ExpectationsWereMet(t)
}
