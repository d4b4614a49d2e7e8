package service_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prodbylino/shiftflow/internal/schedule/events"
	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/internal/schedule/service"
	"github.com/Prodbylino/shiftflow/pkg/caller"
	"github.com/Prodbylino/shiftflow/pkg/database"
	"github.com/Prodbylino/shiftflow/pkg/errors"
	"github.com/Prodbylino/shiftflow/pkg/messaging"
	"github.com/Prodbylino/shiftflow/pkg/testutil"
)

const orgID = "c1d2e3f4-0000-4000-8000-000000000001"

func newShiftService(t *testing.T) (*testutil.MockDB, *testutil.MockPublisher, *service.ShiftService) {
	mockDB := testutil.NewMockDB(t)
	db := &database.DB{DB: mockDB.DB}
	sink := testutil.NewMockPublisher()
	publisher := events.NewSchedulePublisherFromSink(sink, testutil.NewTestLogger())
	svc := service.NewShiftService(repository.NewShiftRepository(db), publisher, testutil.NewTestLogger())
	return mockDB, sink, svc
}

func TestShiftService_Create_PublishesEvent(t *testing.T) {
	mockDB, sink, svc := newShiftService(t)
	defer mockDB.Close()

	ctx := caller.WithCaller(context.Background(), caller.Authenticated(ownerA))

	mockDB.Mock.ExpectQuery(`INSERT INTO shifts`).
		WithArgs(testutil.AnyUUID{}, ownerA, orgID, "Evening service", "2024-03-10", nil, "17:00:00", "23:00:00", nil).
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(nowStamp(), nowStamp()))

	shift := &repository.Shift{
		OrganizationID: orgID,
		Title:          "Evening service",
		Date:           "2024-03-10",
		StartTime:      "17:00:00",
		EndTime:        "23:00:00",
	}
	err := svc.Create(ctx, "", shift)
	require.NoError(t, err)

	sink.AssertEventPublished(t, messaging.EventShiftCreated)
	mockDB.ExpectationsWereMet(t)
}

func TestShiftService_Create_AnonymousRejected(t *testing.T) {
	mockDB, sink, svc := newShiftService(t)
	defer mockDB.Close()

	shift := &repository.Shift{
		OrganizationID: orgID,
		Title:          "Evening service",
		Date:           "2024-03-10",
		StartTime:      "17:00:00",
		EndTime:        "23:00:00",
	}
	err := svc.Create(context.Background(), "", shift)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	sink.AssertNoEventsPublished(t)
	mockDB.ExpectationsWereMet(t)
}

func TestShiftService_Create_InvalidIntervalNoEvent(t *testing.T) {
	mockDB, sink, svc := newShiftService(t)
	defer mockDB.Close()

	ctx := caller.WithCaller(context.Background(), caller.Authenticated(ownerA))

	shift := &repository.Shift{
		OrganizationID: orgID,
		Title:          "Zero length",
		Date:           "2024-03-10",
		StartTime:      "09:00:00",
		EndTime:        "09:00:00",
	}
	err := svc.Create(ctx, "", shift)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	sink.AssertNoEventsPublished(t)
	mockDB.ExpectationsWereMet(t)
}

func TestShiftService_Delete_MismatchedTargetRejected(t *testing.T) {
	mockDB, sink, svc := newShiftService(t)
	defer mockDB.Close()

	ctx := caller.WithCaller(context.Background(), caller.Authenticated(ownerA))

	err := svc.Delete(ctx, ownerB, "some-shift")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	sink.AssertNoEventsPublished(t)
	mockDB.ExpectationsWereMet(t)
}

func TestShiftService_Delete_PublishesEvent(t *testing.T) {
	mockDB, sink, svc := newShiftService(t)
	defer mockDB.Close()

	ctx := caller.WithCaller(context.Background(), caller.Authenticated(ownerA))

	mockDB.Mock.ExpectExec(`DELETE FROM shifts WHERE id = \$1 AND user_id = \$2`).
		WithArgs("shift-1", ownerA).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Delete(ctx, "", "shift-1")
	require.NoError(t, err)

	sink.AssertEventPublished(t, messaging.EventShiftDeleted)
	mockDB.ExpectationsWereMet(t)
}
