package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/cache"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/mail"
	Logger "sk-barangay-service/pkg/logger"
	"sk-barangay-service/pkg/utils"

	"gorm.io/gorm"
)

const (
	otpLength         = 6
	temporaryPassLen  = 12
	defaultOTPTTL     = 10 * time.Minute
	defaultOTPRetries = 5
)

// LoginInput is the first login step
type LoginInput struct {
	Position string `json:"position"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginChallenge tells the client where the OTP was sent
type LoginChallenge struct {
	Email  string
	UserID uint
}

// LoginResult is a completed login
type LoginResult struct {
	Token string
	User  *models.User
}

// InterfaceAuthService defines the OTP-gated login and password reset flows
type InterfaceAuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginChallenge, error)
	VerifyOTP(ctx context.Context, email, otp string) (*LoginResult, error)
	ResendOTP(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, otp string) error
}

// AuthService issues and checks one-time codes
type AuthService struct {
	DB     *gorm.DB
	Config *config.Config
	OTP    cache.InterfaceOTPStore
	Mailer mail.Mailer
	JWT    InterfaceJWTService
	now    func() time.Time
}

// NewAuthService creates the auth service
func NewAuthService(db *gorm.DB, cfg *config.Config, store cache.InterfaceOTPStore, mailer mail.Mailer, jwtService InterfaceJWTService) InterfaceAuthService {
	return &AuthService{
		DB:     db,
		Config: cfg,
		OTP:    store,
		Mailer: mailer,
		JWT:    jwtService,
		now:    time.Now,
	}
}

// 1 Login checks credentials and emails a login code
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginChallenge, error) {
	username := strings.TrimSpace(in.Username)
	if in.Position == "" || username == "" || in.Password == "" {
		return nil, code.New(code.ErrValidation, "Position, username, and password are required")
	}
	if in.Position != models.PositionAdmin && in.Position != models.PositionStaff {
		return nil, code.New(code.ErrValidation, "Invalid position selected")
	}

	var user models.User
	err := s.DB.WithContext(ctx).
		Where("(employee_id = ? OR email = ?) AND position = ?", username, username, in.Position).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrInvalidCredentials)
		}
		return nil, err
	}
	if user.Status != models.StatusActive {
		return nil, code.From(code.ErrAccountInactive)
	}
	if !utils.CheckPasswordHash(in.Password, user.Password) {
		return nil, code.From(code.ErrInvalidCredentials)
	}

	if err := s.issue(ctx, &user, cache.ActionLogin); err != nil {
		return nil, err
	}
	return &LoginChallenge{Email: user.Email, UserID: user.ID}, nil
}

// 2 VerifyOTP consumes a login code and signs a session token
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(otp) == "" {
		return nil, code.New(code.ErrValidation, "Email and OTP are required")
	}

	entry, err := s.consume(ctx, email, otp, cache.ActionLogin)
	if err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, entry.UserID)
	if err != nil {
		return nil, err
	}
	// the account may have been disabled while the code was pending
	if user.Status != models.StatusActive {
		return nil, code.From(code.ErrAccountInactive)
	}
	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// 3 ResendOTP replaces a pending login code with a fresh one
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return code.New(code.ErrValidation, "Email is required")
	}

	entry, err := s.OTP.Get(ctx, email)
	if err != nil {
		if errors.Is(err, cache.ErrOTPNotFound) {
			return code.New(code.ErrOTPNotFound, "No pending OTP found for this email")
		}
		return err
	}
	if entry.Action != cache.ActionLogin {
		return code.New(code.ErrOTPNotFound, "No pending OTP found for this email")
	}

	user, err := s.findUser(ctx, entry.UserID)
	if err != nil {
		return err
	}
	return s.issue(ctx, user, cache.ActionLogin)
}

// 4 RequestPasswordReset emails a reset code
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return code.New(code.ErrValidation, "Email is required")
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.New(code.ErrUserNotFound, "Email not found")
		}
		return err
	}
	return s.issue(ctx, &user, cache.ActionPasswordReset)
}

// 5 ConfirmPasswordReset consumes a reset code and replaces the password with
// a random temporary one that must be changed at next login
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, otp string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(otp) == "" {
		return code.New(code.ErrValidation, "Email and OTP are required")
	}

	entry, err := s.consume(ctx, email, otp, cache.ActionPasswordReset)
	if err != nil {
		return err
	}
	user, err := s.findUser(ctx, entry.UserID)
	if err != nil {
		return err
	}

	temporary := utils.TemporaryPassword(temporaryPassLen)
	if err := setTemporaryPassword(ctx, s.DB, user, temporary); err != nil {
		return err
	}

	msg, err := mail.PasswordResetMessage(user.FirstName, user.LastName, temporary)
	if err == nil {
		err = s.Mailer.Send(ctx, user.Email, msg.Subject, msg.HTML)
	}
	if err != nil {
		Logger.Error("send password reset email to %s: %v", user.Email, err)
	}
	return nil
}

// issue stores a fresh code for user and emails it
func (s *AuthService) issue(ctx context.Context, user *models.User, action string) error {
	otp := utils.RandomDigits(otpLength)
	ttl := s.ttl()
	entry := cache.OTPEntry{
		Code:      otp,
		UserID:    user.ID,
		Position:  user.Position,
		Action:    action,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.OTP.Save(ctx, user.Email, entry); err != nil {
		return err
	}

	subject, purpose := "Login OTP Verification", "Your OTP code for login is:"
	if action == cache.ActionPasswordReset {
		subject, purpose = "Password Reset OTP", "Use this code to reset your password:"
	}
	msg, err := mail.OTPMessage(subject, purpose, otp, int(ttl/time.Minute))
	if err != nil {
		return err
	}
	if err := s.Mailer.Send(ctx, user.Email, msg.Subject, msg.HTML); err != nil {
		Logger.Error("send %s otp to %s: %v", action, user.Email, err)
		return code.From(code.ErrMailDelivery)
	}
	return nil
}

// consume checks a code for email and action. A match removes it, a miss
// counts an attempt and drops the code once the attempt limit is reached.
func (s *AuthService) consume(ctx context.Context, email, otp, action string) (*cache.OTPEntry, error) {
	entry, err := s.OTP.Get(ctx, email)
	if err != nil {
		if errors.Is(err, cache.ErrOTPNotFound) {
			return nil, code.From(code.ErrOTPNotFound)
		}
		return nil, err
	}
	if entry.Action != action {
		return nil, code.From(code.ErrOTPNotFound)
	}
	if entry.Expired(s.now()) {
		if err := s.OTP.Delete(ctx, email); err != nil {
			Logger.Warning("delete expired otp for %s: %v", email, err)
		}
		return nil, code.From(code.ErrOTPExpired)
	}

	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(strings.TrimSpace(otp))) != 1 {
		attempts, err := s.OTP.IncrementAttempts(ctx, email)
		if err == nil && attempts >= s.maxAttempts() {
			err = s.OTP.Delete(ctx, email)
		}
		if err != nil && !errors.Is(err, cache.ErrOTPNotFound) {
			Logger.Warning("record otp attempt for %s: %v", email, err)
		}
		return nil, code.From(code.ErrOTPInvalid)
	}

	if err := s.OTP.Delete(ctx, email); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *AuthService) findUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) ttl() time.Duration {
	if s.Config != nil && s.Config.OTPTTL > 0 {
		return s.Config.OTPTTL
	}
	return defaultOTPTTL
}

func (s *AuthService) maxAttempts() int {
	if s.Config != nil && s.Config.OTPMaxAttempts > 0 {
		return s.Config.OTPMaxAttempts
	}
	return defaultOTPRetries
}

// setTemporaryPassword stores the hash of password and flags the account for rotation
func setTemporaryPassword(ctx context.Context, db *gorm.DB, user *models.User, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	err = db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"password":             hash,
		"must_change_password": true,
	}).Error
	if err != nil {
		return err
	}
	user.Password = hash
	user.MustChangePassword = true
	return nil
}
