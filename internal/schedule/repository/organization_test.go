package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/database"
	"github.com/Prodbylino/shiftflow/pkg/errors"
	"github.com/Prodbylino/shiftflow/pkg/testutil"
)

const (
	ownerA = "3f6c1a52-8a50-4a60-9f18-0f6f9f1c2a01"
	ownerB = "9b8e2d41-1c3f-4f8a-8d2a-5e7b6c4d3e02"
	orgID  = "c1d2e3f4-0000-4000-8000-000000000001"
)

func newRepoDB(t *testing.T) (*testutil.MockDB, *database.DB) {
	mockDB := testutil.NewMockDB(t)
	db := &database.DB{DB: mockDB.DB}
	return mockDB, db
}

func TestOrganizationRepository_Create(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewOrganizationRepository(db)

	mockDB.Mock.ExpectQuery(`INSERT INTO organizations \(id, user_id, name, color, hourly_rate\)`).
		WithArgs(testutil.AnyUUID{}, ownerA, "Night Cafe", "#4F46E5", 31.5).
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now(t), now(t)))

	org := &repository.Organization{Name: "Night Cafe", HourlyRate: 31.5}
	err := repo.Create(context.Background(), ownerA, org)
	require.NoError(t, err)
	assert.NotEmpty(t, org.ID)
	assert.Equal(t, ownerA, org.UserID)
	assert.Equal(t, "#4F46E5", org.Color)

	mockDB.ExpectationsWereMet(t)
}

func TestOrganizationRepository_GetByID_OwnerGuard(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewOrganizationRepository(db)

	// The owner predicate travels with the query; another owner's ID
	// yields no rows, surfaced uniformly as not found.
	mockDB.Mock.ExpectQuery(`FROM organizations\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(orgID, ownerB).
		WillReturnRows(testutil.MockRows("id", "user_id", "name", "color", "hourly_rate", "created_at", "updated_at"))

	_, err := repo.GetByID(context.Background(), ownerB, orgID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestOrganizationRepository_List_ScopedToOwner(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewOrganizationRepository(db)

	rows := testutil.MockRows("id", "user_id", "name", "color", "hourly_rate", "created_at", "updated_at").
		AddRow(orgID, ownerA, "Night Cafe", "#4F46E5", 31.5, now(t), now(t))

	mockDB.Mock.ExpectQuery(`FROM organizations\s+WHERE user_id = \$1\s+ORDER BY name`).
		WithArgs(ownerA).
		WillReturnRows(rows)

	orgs, err := repo.List(context.Background(), ownerA)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Night Cafe", orgs[0].Name)

	mockDB.ExpectationsWereMet(t)
}

func TestOrganizationRepository_Update_StampsUpdatedAt(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewOrganizationRepository(db)

	mockDB.Mock.ExpectExec(`UPDATE organizations\s+SET name = \$3, color = \$4, hourly_rate = \$5, updated_at = NOW\(\)\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(orgID, ownerA, "Renamed", "#22C55E", 28.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	org := &repository.Organization{ID: orgID, Name: "Renamed", Color: "#22C55E", HourlyRate: 28.0}
	err := repo.Update(context.Background(), ownerA, org)
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestOrganizationRepository_Update_OtherOwnerIsNotFound(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewOrganizationRepository(db)

	mockDB.Mock.ExpectExec(`UPDATE organizations`).
		WithArgs(orgID, ownerB, "Hijacked", "#000000", 0.0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	org := &repository.Organization{ID: orgID, Name: "Hijacked", Color: "#000000"}
	err := repo.Update(context.Background(), ownerB, org)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestOrganizationRepository_Delete_OtherOwnerIsNotFound(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewOrganizationRepository(db)

	mockDB.Mock.ExpectExec(`DELETE FROM organizations WHERE id = \$1 AND user_id = \$2`).
		WithArgs(orgID, ownerB).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), ownerB, orgID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}
