package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/errors"
	"github.com/Prodbylino/shiftflow/pkg/testutil"
)

const shiftID = "d4e5f6a7-0000-4000-8000-000000000002"

func TestShiftRepository_Create(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewShiftRepository(db)

	mockDB.Mock.ExpectQuery(`INSERT INTO shifts \(id, user_id, organization_id, title, date, end_date, start_time, end_time, notes\)`).
		WithArgs(testutil.AnyUUID{}, ownerA, orgID, "Evening service", "2024-03-10", nil, "17:00:00", "23:00:00", nil).
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now(t), now(t)))

	shift := &repository.Shift{
		OrganizationID: orgID,
		Title:          "Evening service",
		Date:           "2024-03-10",
		StartTime:      "17:00:00",
		EndTime:        "23:00:00",
	}
	err := repo.Create(context.Background(), ownerA, shift)
	require.NoError(t, err)
	assert.Equal(t, ownerA, shift.UserID)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_Create_RejectsInvalidIntervalBeforeQuerying(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewShiftRepository(db)

	// Same-day 22:00-06:00 has no implicit overnight reading; it never
	// reaches the database (no expectations are set on the mock).
	shift := &repository.Shift{
		OrganizationID: orgID,
		Title:          "Night shift",
		Date:           "2024-03-10",
		StartTime:      "22:00:00",
		EndTime:        "06:00:00",
	}
	err := repo.Create(context.Background(), ownerA, shift)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_GetByID_OwnerGuard(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewShiftRepository(db)

	mockDB.Mock.ExpectQuery(`FROM shifts WHERE id = \$1 AND user_id = \$2`).
		WithArgs(shiftID, ownerB).
		WillReturnRows(testutil.MockRows(
			"id", "user_id", "organization_id", "title", "date", "end_date",
			"start_time", "end_time", "notes", "created_at", "updated_at"))

	_, err := repo.GetByID(context.Background(), ownerB, shiftID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_List_FiltersAndOwnerGuard(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewShiftRepository(db)

	from, to := "2024-03-01", "2024-04-01"
	org := orgID

	mockDB.Mock.ExpectQuery(`SELECT COUNT\(\*\) FROM shifts WHERE user_id = \$1 AND organization_id = \$2 AND date >= \$3 AND date < \$4`).
		WithArgs(ownerA, orgID, from, to).
		WillReturnRows(testutil.MockRows("count").AddRow(1))

	rows := testutil.MockRows(
		"id", "user_id", "organization_id", "title", "date", "end_date",
		"start_time", "end_time", "notes", "created_at", "updated_at").
		AddRow(shiftID, ownerA, orgID, "Evening service", "2024-03-10", nil,
			"17:00:00", "23:00:00", nil, now(t), now(t))

	mockDB.Mock.ExpectQuery(`WHERE user_id = \$1 AND organization_id = \$2 AND date >= \$3 AND date < \$4 ORDER BY date, start_time LIMIT \$5 OFFSET \$6`).
		WithArgs(ownerA, orgID, from, to, 50, 0).
		WillReturnRows(rows)

	shifts, total, err := repo.List(context.Background(), ownerA, repository.ShiftListParams{
		OrganizationID: &org,
		From:           &from,
		To:             &to,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Evening service", shifts[0].Title)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_Update_StampsUpdatedAt(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewShiftRepository(db)

	endDate := "2024-03-11"
	mockDB.Mock.ExpectExec(`UPDATE shifts\s+SET organization_id = \$3, title = \$4, date = \$5, end_date = \$6,\s+start_time = \$7, end_time = \$8, notes = \$9, updated_at = NOW\(\)\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(shiftID, ownerA, orgID, "Overnight", "2024-03-10", &endDate, "22:00:00", "06:00:00", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	shift := &repository.Shift{
		ID:             shiftID,
		OrganizationID: orgID,
		Title:          "Overnight",
		Date:           "2024-03-10",
		EndDate:        &endDate,
		StartTime:      "22:00:00",
		EndTime:        "06:00:00",
	}
	err := repo.Update(context.Background(), ownerA, shift)
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_Delete_OtherOwnerIsNotFound(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewShiftRepository(db)

	mockDB.Mock.ExpectExec(`DELETE FROM shifts WHERE id = \$1 AND user_id = \$2`).
		WithArgs(shiftID, ownerB).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), ownerB, shiftID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}
