package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/database"
	"sk-barangay-service/internal/infrastructure/mail"
	"sk-barangay-service/internal/infrastructure/storage"
	"sk-barangay-service/internal/validation"
	Logger "sk-barangay-service/pkg/logger"
	"sk-barangay-service/pkg/utils"

	"gorm.io/gorm"
)

const minPasswordLength = 8

// CreateAccountInput is an admin's request for a new account
type CreateAccountInput struct {
	EmployeeID    string  `json:"employee_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	ContactNumber *string `json:"contact_number"`
	PhoneNumber   *string `json:"phone_number"`
	Position      string  `json:"position"`
}

// UserUpdate is a partial account update; nil fields are left alone
type UserUpdate struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contact_number"`
	Position      *string `json:"position"`
	Status        *string `json:"status"`
}

// InterfaceUserService defines the account management interface
type InterfaceUserService interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	CreateAccount(ctx context.Context, in CreateAccountInput) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, in UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	ResetPassword(ctx context.Context, id uint, newPassword string) error
	ChangePassword(ctx context.Context, id uint, current, next string) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, id uint, fh *multipart.FileHeader) (*models.User, error)
	DeleteProfilePicture(ctx context.Context, id uint) (*models.User, error)
	EnsureAdmin(ctx context.Context, employeeID, email, password string) (bool, error)
	CheckActive(ctx context.Context, id uint) error
}

// UserService manages staff and admin accounts
type UserService struct {
	DB      *gorm.DB
	Config  *config.Config
	Mailer  mail.Mailer
	Storage storage.Store
}

// NewUserService creates the user service
func NewUserService(db *gorm.DB, cfg *config.Config, mailer mail.Mailer, store storage.Store) InterfaceUserService {
	return &UserService{
		DB:      db,
		Config:  cfg,
		Mailer:  mailer,
		Storage: store,
	}
}

// 1 GetAllUsers lists accounts, newest first
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// 2 GetUserByID returns an account or ErrUserNotFound
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// 3 CreateAccount creates an account with a random temporary password and
// emails it. A failed welcome email does not undo the account.
func (s *UserService) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.User, error) {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.ContactNumber == nil {
		in.ContactNumber = in.PhoneNumber
	}

	if in.EmployeeID == "" || in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Position == "" {
		return nil, code.New(code.ErrValidation, "All required fields must be provided")
	}
	if in.Position != models.PositionAdmin && in.Position != models.PositionStaff {
		return nil, code.New(code.ErrValidation, "Invalid position. Must be admin or staff")
	}
	if !validation.IsEmail(in.Email) {
		return nil, code.New(code.ErrValidation, "Invalid email format")
	}

	var taken int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("employee_id = ? OR email = ?", in.EmployeeID, in.Email).
		Count(&taken).Error
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, code.From(code.ErrUserAlreadyExist)
	}

	temporary := utils.TemporaryPassword(temporaryPassLen)
	hash, err := utils.HashPassword(temporary)
	if err != nil {
		return nil, err
	}

	user := models.User{
		EmployeeID:         in.EmployeeID,
		Password:           hash,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Email:              in.Email,
		ContactNumber:      trimOptional(in.ContactNumber),
		Position:           in.Position,
		Status:             models.StatusActive,
		MustChangePassword: true,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, code.From(code.ErrUserAlreadyExist)
		}
		return nil, err
	}

	msg, err := mail.WelcomeMessage(user.FirstName, user.LastName, temporary)
	if err == nil {
		err = s.Mailer.Send(ctx, user.Email, msg.Subject, msg.HTML)
	}
	if err != nil {
		Logger.Error("send welcome email to %s: %v", user.Email, err)
	}
	return &user, nil
}

// 4 UpdateUser applies the supplied fields only
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UserUpdate) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	var errs validation.Errors
	if in.FirstName != nil {
		errs.Check(!validation.Blank(*in.FirstName), "First name cannot be empty")
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		errs.Check(!validation.Blank(*in.LastName), "Last name cannot be empty")
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		errs.Check(validation.IsEmail(strings.TrimSpace(*in.Email)), "Invalid email format")
		updates["email"] = strings.TrimSpace(*in.Email)
	}
	if in.ContactNumber != nil {
		updates["contact_number"] = trimOptional(in.ContactNumber)
	}
	if in.Position != nil {
		errs.Check(validation.OneOf(*in.Position, models.PositionAdmin, models.PositionStaff), "Invalid position. Must be admin or staff")
		updates["position"] = *in.Position
	}
	if in.Status != nil {
		errs.Check(validation.OneOf(*in.Status, models.StatusActive, models.StatusInactive), "Invalid status. Must be active or inactive")
		updates["status"] = *in.Status
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, code.New(code.ErrValidation, "No fields to update")
	}

	if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, code.From(code.ErrUserAlreadyExist)
		}
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

// 5 DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return code.From(code.ErrUserNotFound)
	}
	return nil
}

// 6 ResetPassword sets newPassword, or a random one when blank, flags the
// account for rotation and emails the credential
func (s *UserService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if newPassword == "" {
		newPassword = utils.TemporaryPassword(temporaryPassLen)
	} else if len(newPassword) < minPasswordLength {
		return code.New(code.ErrValidation, "Password must be at least 8 characters")
	}
	if err := setTemporaryPassword(ctx, s.DB, user, newPassword); err != nil {
		return err
	}

	msg, err := mail.PasswordResetMessage(user.FirstName, user.LastName, newPassword)
	if err == nil {
		err = s.Mailer.Send(ctx, user.Email, msg.Subject, msg.HTML)
	}
	if err != nil {
		Logger.Error("send password reset email to %s: %v", user.Email, err)
	}
	return nil
}

// 7 ChangePassword rotates the password of the account owner
func (s *UserService) ChangePassword(ctx context.Context, id uint, current, next string) (*models.User, error) {
	if current == "" || next == "" {
		return nil, code.New(code.ErrValidation, "Current and new password are required")
	}
	if len(next) < minPasswordLength {
		return nil, code.New(code.ErrValidation, "Password must be at least 8 characters")
	}
	if current == next {
		return nil, code.New(code.ErrValidation, "New password must differ from the current password")
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return nil, code.From(code.ErrPasswordIncorrect)
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"password":             hash,
		"must_change_password": false,
	}).Error
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

// 8 UpdateProfilePicture stores the upload and drops the previous picture
func (s *UserService) UpdateProfilePicture(ctx context.Context, id uint, fh *multipart.FileHeader) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := ""
	if user.ProfilePicture != nil {
		previous = *user.ProfilePicture
	}

	url, err := storage.SaveUpload(ctx, s.Storage, storage.FolderProfiles, fh, s.Config.UploadMaxBytes)
	if err != nil {
		return nil, err
	}
	// Update writes url back into user, so previous must be copied first
	if err := s.DB.WithContext(ctx).Model(user).Update("profile_picture", url).Error; err != nil {
		s.removeFile(ctx, url)
		return nil, err
	}
	if previous != "" {
		s.removeFile(ctx, previous)
	}
	return s.GetUserByID(ctx, id)
}

// 9 DeleteProfilePicture clears the picture and deletes the file
func (s *UserService) DeleteProfilePicture(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ProfilePicture == nil {
		return user, nil
	}

	previous := *user.ProfilePicture
	if err := s.DB.WithContext(ctx).Model(user).Update("profile_picture", nil).Error; err != nil {
		return nil, err
	}
	s.removeFile(ctx, previous)
	return s.GetUserByID(ctx, id)
}

// 10 EnsureAdmin creates the bootstrap admin when no admin account exists
func (s *UserService) EnsureAdmin(ctx context.Context, employeeID, email, password string) (bool, error) {
	var admins int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("position = ?", models.PositionAdmin).Count(&admins).Error; err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	mustChange := false
	if password == "" {
		password = utils.TemporaryPassword(temporaryPassLen)
		mustChange = true
		Logger.Warning("no admin password configured, generated temporary password for %s: %s", employeeID, password)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := models.User{
		EmployeeID:         employeeID,
		Password:           hash,
		FirstName:          "System",
		LastName:           "Administrator",
		Email:              email,
		Position:           models.PositionAdmin,
		Status:             models.StatusActive,
		MustChangePassword: mustChange,
	}
	if err := s.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}

// 11 CheckActive fails with ErrUserNotFound for a deleted account and
// ErrAccountInactive for a disabled one
func (s *UserService) CheckActive(ctx context.Context, id uint) error {
	var statuses []string
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Limit(1).Pluck("status", &statuses).Error
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		return code.From(code.ErrUserNotFound)
	}
	if statuses[0] != models.StatusActive {
		return code.From(code.ErrAccountInactive)
	}
	return nil
}

// removeFile deletes an uploaded file, logging failures
func (s *UserService) removeFile(ctx context.Context, url string) {
	if err := s.Storage.Delete(ctx, url); err != nil {
		Logger.Warning("delete file %s: %v", url, err)
	}
}
