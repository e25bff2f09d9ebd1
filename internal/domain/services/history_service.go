package services

import (
	"context"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/infrastructure/config"
	Logger "sk-barangay-service/pkg/logger"

	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 1000
)

// HistoryRefs names the entities a history row points at
type HistoryRefs struct {
	ResidentID  *uint
	HouseholdID *uint
	IncidentID  *uint
	ServiceID   *uint
}

// InterfaceHistoryService defines the audit log service
type InterfaceHistoryService interface {
	Record(ctx context.Context, userID uint, refs HistoryRefs, description string) bool
	GetHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error)
}

// HistoryService writes and reads the append-only history table
type HistoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHistoryService creates the history service
func NewHistoryService(db *gorm.DB, cfg *config.Config) InterfaceHistoryService {
	return &HistoryService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Record inserts a history row. It never returns an error: a failed insert is
// logged and reported as false, and userID 0 means there is nobody to attribute.
func (s *HistoryService) Record(ctx context.Context, userID uint, refs HistoryRefs, description string) bool {
	if userID == 0 {
		return false
	}

	entry := models.History{
		UserID:      &userID,
		ResidentID:  refs.ResidentID,
		HouseholdID: refs.HouseholdID,
		IncidentID:  refs.IncidentID,
		ServiceID:   refs.ServiceID,
		Description: description,
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		Logger.Error("create history %q: %v", description, err)
		return false
	}
	return true
}

// 2 GetHistory returns the newest entries joined with display names
func (s *HistoryService) GetHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries := []models.HistoryEntry{}
	err := s.DB.WithContext(ctx).
		Table("history AS h").
		Select(`h.id, h.user_id, h.resident_id, h.household_id, h.incident_id, h.service_id,
			h.description, h.timestamp,
			u.first_name AS user_first_name, u.last_name AS user_last_name,
			r.f_name AS resident_f_name, r.m_name AS resident_m_name, r.l_name AS resident_l_name,
			r.suffix AS resident_suffix, hh.household_name, i.reference_number, sv.service_name`).
		Joins("LEFT JOIN users u ON h.user_id = u.id").
		Joins("LEFT JOIN residents r ON h.resident_id = r.id").
		Joins("LEFT JOIN households hh ON h.household_id = hh.id").
		Joins("LEFT JOIN incidents i ON h.incident_id = i.id").
		Joins("LEFT JOIN services sv ON h.service_id = sv.id").
		Order("h.timestamp DESC, h.id DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// uintRef returns a pointer to id, for HistoryRefs
func uintRef(id uint) *uint {
	return &id
}
