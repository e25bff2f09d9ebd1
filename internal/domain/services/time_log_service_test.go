package services

import (
	"context"
	"testing"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogSession(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewTimeLogService(db, cfg).(*TimeLogService)
	ctx := context.Background()
	user := seedUser(t, db, "SK-001", "maria@example.com", models.PositionStaff, "password1")

	login := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return login }

	_, err := svc.CreateTimeLog(ctx, 0)
	assert.Equal(t, "User ID is required", err.Error())
	_, err = svc.CreateTimeLog(ctx, user.ID+1)
	assert.True(t, code.Is(err, code.ErrUserNotFound))

	entry, err := svc.CreateTimeLog(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, entry.LoggedOut)

	early := login.Add(-time.Hour)
	_, err = svc.UpdateTimeLog(ctx, entry.ID, &early)
	assert.True(t, code.Is(err, code.ErrValidation))

	svc.now = func() time.Time { return login.Add(8 * time.Hour) }
	closed, err := svc.UpdateTimeLog(ctx, entry.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, closed.LoggedOut)
	assert.True(t, closed.LoggedOut.Equal(login.Add(8*time.Hour)))

	_, err = svc.UpdateTimeLog(ctx, entry.ID+1, nil)
	assert.True(t, code.Is(err, code.ErrTimeLogNotFound))

	got, err := svc.GetTimeLogByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "SK-001", got.EmployeeID)
	assert.Equal(t, "Maria", got.FirstName)
}

func TestGetTimeLogsFiltersAndOrders(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewTimeLogService(db, cfg).(*TimeLogService)
	ctx := context.Background()
	maria := seedUser(t, db, "SK-001", "maria@example.com", models.PositionStaff, "password1")
	jose := seedUser(t, db, "SK-002", "jose@example.com", models.PositionStaff, "password1")

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, u := range []models.User{maria, jose, maria} {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		_, err := svc.CreateTimeLog(ctx, u.ID)
		require.NoError(t, err)
	}

	all, err := svc.GetTimeLogs(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, maria.ID, all[0].UserID)
	assert.Equal(t, jose.ID, all[1].UserID)

	mine, err := svc.GetTimeLogs(ctx, maria.ID, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	limited, err := svc.GetTimeLogs(ctx, 0, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
