package repository_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/testutil"
)

func TestPreflightRepository_Check_CleanData(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewPreflightRepository(db)

	mockDB.Mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(testutil.MockRows("exists").AddRow(true))
	mockDB.Mock.ExpectQuery(`cross_tenant_shifts`).
		WillReturnRows(testutil.MockRows("cross_tenant_shifts", "non_positive_shifts").AddRow(0, 0))

	violations, err := repo.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, violations.Any())

	mockDB.ExpectationsWereMet(t)
}

func TestPreflightRepository_Check_ReportsCounts(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewPreflightRepository(db)

	mockDB.Mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(testutil.MockRows("exists").AddRow(true))
	mockDB.Mock.ExpectQuery(`cross_tenant_shifts`).
		WillReturnRows(testutil.MockRows("cross_tenant_shifts", "non_positive_shifts").AddRow(3, 1))

	violations, err := repo.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, violations.Any())
	assert.EqualValues(t, 3, violations.CrossTenantShifts)
	assert.EqualValues(t, 1, violations.NonPositiveShifts)
	assert.True(t, strings.Contains(violations.Error(), "3 shift(s)"))
	assert.True(t, strings.Contains(violations.Error(), "repair or remove"))

	mockDB.ExpectationsWereMet(t)
}

func TestPreflightRepository_Check_FreshDatabase(t *testing.T) {
	mockDB, db := newRepoDB(t)
	defer mockDB.Close()

	repo := repository.NewPreflightRepository(db)

	mockDB.Mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(testutil.MockRows("exists").AddRow(false))

	violations, err := repo.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, violations.Any())

	mockDB.ExpectationsWereMet(t)
}
