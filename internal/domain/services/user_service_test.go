package services

import (
	"context"
	"testing"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *fakeMailer) {
	db, cfg := newTestDB(t)
	mailer := &fakeMailer{}
	return NewUserService(db, cfg, mailer, newTestStore(t, cfg)).(*UserService), mailer
}

func accountInput() CreateAccountInput {
	return CreateAccountInput{
		EmployeeID:  "SK-002",
		FirstName:   "Jose",
		LastName:    "Rizal",
		Email:       "jose@example.com",
		PhoneNumber: strPtr("09171234567"),
		Position:    models.PositionStaff,
	}
}

func TestCreateAccountSendsTemporaryPassword(t *testing.T) {
	svc, mailer := newUserService(t)

	user, err := svc.CreateAccount(context.Background(), accountInput())
	require.NoError(t, err)
	assert.True(t, user.MustChangePassword)
	assert.Equal(t, models.StatusActive, user.Status)
	require.NotNil(t, user.ContactNumber)
	assert.Equal(t, "09171234567", *user.ContactNumber)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jose@example.com", mailer.last().To)
	assert.NotEmpty(t, user.Password)
}

func TestCreateAccountRejectsDuplicates(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.CreateAccount(ctx, accountInput())
	require.NoError(t, err)

	in := accountInput()
	in.EmployeeID = "SK-003"
	_, err = svc.CreateAccount(ctx, in)
	assert.True(t, code.Is(err, code.ErrUserAlreadyExist))
	assert.Equal(t, 409, code.GetStatus(code.ErrUserAlreadyExist))
}

func TestCreateAccountValidation(t *testing.T) {
	svc, mailer := newUserService(t)

	in := accountInput()
	in.LastName = " "
	_, err := svc.CreateAccount(context.Background(), in)
	assert.Equal(t, "All required fields must be provided", err.Error())

	in = accountInput()
	in.Position = "captain"
	_, err = svc.CreateAccount(context.Background(), in)
	assert.Equal(t, "Invalid position. Must be admin or staff", err.Error())
	assert.Empty(t, mailer.sent)
}

func TestUpdateUserPartial(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	user := seedUser(t, svc.DB, "SK-001", "maria@example.com", models.PositionStaff, "password1")

	_, err := svc.UpdateUser(ctx, user.ID, UserUpdate{})
	assert.Equal(t, "No fields to update", err.Error())

	updated, err := svc.UpdateUser(ctx, user.ID, UserUpdate{Status: strPtr(models.StatusInactive)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, updated.Status)
	assert.Equal(t, "Maria", updated.FirstName)

	_, err = svc.UpdateUser(ctx, user.ID, UserUpdate{Status: strPtr("gone")})
	assert.True(t, code.Is(err, code.ErrValidation))

	_, err = svc.UpdateUser(ctx, user.ID+100, UserUpdate{Status: strPtr(models.StatusActive)})
	assert.True(t, code.Is(err, code.ErrUserNotFound))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	user := seedUser(t, svc.DB, "SK-001", "maria@example.com", models.PositionStaff, "temporary1")
	require.NoError(t, svc.DB.Model(&user).Update("must_change_password", true).Error)

	_, err := svc.ChangePassword(ctx, user.ID, "wrong-one", "brand-new-pass")
	assert.True(t, code.Is(err, code.ErrPasswordIncorrect))

	_, err = svc.ChangePassword(ctx, user.ID, "temporary1", "short")
	assert.True(t, code.Is(err, code.ErrValidation))

	_, err = svc.ChangePassword(ctx, user.ID, "temporary1", "temporary1")
	assert.True(t, code.Is(err, code.ErrValidation))

	updated, err := svc.ChangePassword(ctx, user.ID, "temporary1", "brand-new-pass")
	require.NoError(t, err)
	assert.False(t, updated.MustChangePassword)
	assert.True(t, utils.CheckPasswordHash("brand-new-pass", updated.Password))
}

func TestResetPassword(t *testing.T) {
	svc, mailer := newUserService(t)
	ctx := context.Background()
	user := seedUser(t, svc.DB, "SK-001", "maria@example.com", models.PositionStaff, "password1")

	assert.True(t, code.Is(svc.ResetPassword(ctx, user.ID, "short"), code.ErrValidation))

	require.NoError(t, svc.ResetPassword(ctx, user.ID, ""))
	reloaded, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.MustChangePassword)
	assert.False(t, utils.CheckPasswordHash("password1", reloaded.Password))
	assert.Len(t, mailer.sent, 1)

	require.NoError(t, svc.ResetPassword(ctx, user.ID, "chosen-password"))
	reloaded, err = svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("chosen-password", reloaded.Password))
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	user := seedUser(t, svc.DB, "SK-001", "maria@example.com", models.PositionStaff, "password1")

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.True(t, code.Is(svc.DeleteUser(ctx, user.ID), code.ErrUserNotFound))
}

func TestEnsureAdmin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "ADMIN-001", "admin@example.com", "")
	require.NoError(t, err)
	assert.True(t, created)

	var admin models.User
	require.NoError(t, svc.DB.Where("employee_id = ?", "ADMIN-001").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.MustChangePassword)

	created, err = svc.EnsureAdmin(ctx, "ADMIN-002", "other@example.com", "password1")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestProfilePictureReplacesFile(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	user := seedUser(t, svc.DB, "SK-001", "maria@example.com", models.PositionStaff, "password1")

	_, err := svc.UpdateProfilePicture(ctx, user.ID, imageUpload(t, "notes.txt", "text/plain", []byte("hi")))
	assert.True(t, code.Is(err, code.ErrUploadInvalid))

	first, err := svc.UpdateProfilePicture(ctx, user.ID, pngUpload(t))
	require.NoError(t, err)
	require.NotNil(t, first.ProfilePicture)
	assert.Contains(t, *first.ProfilePicture, "/uploads/profiles/")
	assert.True(t, fileExists(storedPath(svc.Config.UploadDir, *first.ProfilePicture)))

	second, err := svc.UpdateProfilePicture(ctx, user.ID, pngUpload(t))
	require.NoError(t, err)
	assert.NotEqual(t, *first.ProfilePicture, *second.ProfilePicture)
	assert.False(t, fileExists(storedPath(svc.Config.UploadDir, *first.ProfilePicture)))
	assert.True(t, fileExists(storedPath(svc.Config.UploadDir, *second.ProfilePicture)))

	stored, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *second.ProfilePicture, *stored.ProfilePicture)

	cleared, err := svc.DeleteProfilePicture(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.ProfilePicture)
	assert.False(t, fileExists(storedPath(svc.Config.UploadDir, *second.ProfilePicture)))
}

func TestCheckActive(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	user := seedUser(t, svc.DB, "SK-001", "maria@example.com", models.PositionStaff, "password1")

	assert.NoError(t, svc.CheckActive(ctx, user.ID))

	require.NoError(t, svc.DB.Model(&user).Update("status", models.StatusInactive).Error)
	assert.True(t, code.Is(svc.CheckActive(ctx, user.ID), code.ErrAccountInactive))

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.True(t, code.Is(svc.CheckActive(ctx, user.ID), code.ErrUserNotFound))
}
