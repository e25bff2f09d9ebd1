package services

import (
	"context"
	"errors"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceTimeLogService defines the time log service interface
type InterfaceTimeLogService interface {
	CreateTimeLog(ctx context.Context, userID uint) (*models.TimeLog, error)
	UpdateTimeLog(ctx context.Context, id uint, loggedOut *time.Time) (*models.TimeLog, error)
	GetTimeLogs(ctx context.Context, userID uint, limit int) ([]models.TimeLogEntry, error)
	GetTimeLogByID(ctx context.Context, id uint) (*models.TimeLogEntry, error)
}

// TimeLogService records user work sessions
type TimeLogService struct {
	DB     *gorm.DB
	Config *config.Config
	now    func() time.Time
}

// NewTimeLogService creates the time log service
func NewTimeLogService(db *gorm.DB, cfg *config.Config) InterfaceTimeLogService {
	return &TimeLogService{
		DB:     db,
		Config: cfg,
		now:    time.Now,
	}
}

// 1 CreateTimeLog opens a session for userID
func (s *TimeLogService) CreateTimeLog(ctx context.Context, userID uint) (*models.TimeLog, error) {
	if userID == 0 {
		return nil, code.New(code.ErrValidation, "User ID is required")
	}

	var users int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&users).Error; err != nil {
		return nil, err
	}
	if users == 0 {
		return nil, code.From(code.ErrUserNotFound)
	}

	entry := models.TimeLog{UserID: userID, LoggedIn: s.now()}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// 2 UpdateTimeLog closes a session, at now when loggedOut is nil
func (s *TimeLogService) UpdateTimeLog(ctx context.Context, id uint, loggedOut *time.Time) (*models.TimeLog, error) {
	var entry models.TimeLog
	if err := s.DB.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrTimeLogNotFound)
		}
		return nil, err
	}

	out := s.now()
	if loggedOut != nil {
		out = *loggedOut
	}
	if out.Before(entry.LoggedIn) {
		return nil, code.New(code.ErrValidation, "Logout time cannot be before login time")
	}
	if err := s.DB.WithContext(ctx).Model(&entry).Update("logged_out", out).Error; err != nil {
		return nil, err
	}
	entry.LoggedOut = &out
	return &entry, nil
}

// 3 GetTimeLogs lists sessions, newest first, optionally for one user
func (s *TimeLogService) GetTimeLogs(ctx context.Context, userID uint, limit int) ([]models.TimeLogEntry, error) {
	query := s.joined(ctx)
	if userID != 0 {
		query = query.Where("tl.user_id = ?", userID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	logs := []models.TimeLogEntry{}
	if err := query.Order("tl.logged_in DESC, tl.id DESC").Scan(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// 4 GetTimeLogByID returns one session
func (s *TimeLogService) GetTimeLogByID(ctx context.Context, id uint) (*models.TimeLogEntry, error) {
	logs := []models.TimeLogEntry{}
	if err := s.joined(ctx).Where("tl.id = ?", id).Limit(1).Scan(&logs).Error; err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, code.From(code.ErrTimeLogNotFound)
	}
	return &logs[0], nil
}

func (s *TimeLogService) joined(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("time_log AS tl").
		Select("tl.id, tl.user_id, tl.logged_in, tl.logged_out, u.first_name, u.last_name, u.employee_id").
		Joins("JOIN users u ON tl.user_id = u.id")
}
