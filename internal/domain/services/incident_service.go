package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/database"
	"sk-barangay-service/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IncidentInput is the writable part of an incident. Blank reference number
// and status mean "generate" on create and "keep" on update.
type IncidentInput struct {
	ReferenceNumber string `json:"reference_number"`
	IncidentType    string `json:"incident_type"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Complainant     string `json:"complainant"`
	Respondent      string `json:"respondent"`
	Description     string `json:"description"`
	Status          string `json:"status"`
}

func (in *IncidentInput) normalize() {
	in.ReferenceNumber = strings.TrimSpace(in.ReferenceNumber)
	in.IncidentType = strings.TrimSpace(in.IncidentType)
	in.Location = strings.TrimSpace(in.Location)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Complainant = strings.TrimSpace(in.Complainant)
	in.Respondent = strings.TrimSpace(in.Respondent)
	in.Description = strings.TrimSpace(in.Description)
	in.Status = strings.TrimSpace(in.Status)
}

// Validate checks every field; the reference number is checked only when present
func (in *IncidentInput) Validate() error {
	var errs validation.Errors

	if validation.Length(in.ReferenceNumber) > 50 {
		errs.Add("Reference number must not exceed 50 characters")
	}
	if in.IncidentType == "" {
		errs.Add("Incident type is required")
	} else if validation.Length(in.IncidentType) > 100 {
		errs.Add("Incident type must not exceed 100 characters")
	}
	errs.Check(in.Location != "", "Location is required")
	if in.Date == "" {
		errs.Add("Date is required")
	} else if _, err := validation.ParseDate(in.Date); err != nil {
		errs.Add("Invalid date format")
	}
	if in.Time == "" {
		errs.Add("Time is required")
	} else if !validation.IsTime(in.Time) {
		errs.Add("Invalid time format")
	}
	if in.Complainant == "" {
		errs.Add("Complainant is required")
	} else if validation.Length(in.Complainant) > 150 {
		errs.Add("Complainant must not exceed 150 characters")
	}
	if in.Respondent == "" {
		errs.Add("Respondent is required")
	} else if validation.Length(in.Respondent) > 150 {
		errs.Add("Respondent must not exceed 150 characters")
	}
	errs.Check(in.Description != "", "Description is required")
	if in.Status != "" {
		errs.Check(validation.OneOf(in.Status, models.IncidentStatuses...), "Invalid status value")
	}
	return errs.Err()
}

// IncidentFilter narrows the incident list; empty or "all" means no filter
type IncidentFilter struct {
	Status string
	Month  string
	Year   string
}

// InterfaceIncidentService defines the incident service interface
type InterfaceIncidentService interface {
	GetAllIncidents(ctx context.Context, filter IncidentFilter) ([]models.Incident, error)
	GetIncidentByID(ctx context.Context, id uint) (*models.Incident, error)
	CreateIncident(ctx context.Context, actorID uint, in IncidentInput) (*models.Incident, error)
	UpdateIncident(ctx context.Context, actorID uint, id uint, in IncidentInput) (*models.Incident, error)
	DeleteIncident(ctx context.Context, actorID uint, id uint) error
	CountIncidents(ctx context.Context) (int64, error)
	GenerateReferenceNumber(ctx context.Context) (string, error)
}

// IncidentService manages the incident blotter
type IncidentService struct {
	DB      *gorm.DB
	Config  *config.Config
	History InterfaceHistoryService
	now     func() time.Time
}

// NewIncidentService creates the incident service
func NewIncidentService(db *gorm.DB, cfg *config.Config, history InterfaceHistoryService) InterfaceIncidentService {
	return &IncidentService{
		DB:      db,
		Config:  cfg,
		History: history,
		now:     time.Now,
	}
}

// 1 GetAllIncidents lists incidents, newest date and time first
func (s *IncidentService) GetAllIncidents(ctx context.Context, filter IncidentFilter) ([]models.Incident, error) {
	query := s.DB.WithContext(ctx).Model(&models.Incident{})

	if active(filter.Status) {
		query = query.Where("status = ?", filter.Status)
	}

	pattern, err := datePattern(filter.Year, filter.Month)
	if err != nil {
		return nil, err
	}
	if pattern != "" {
		query = query.Where("date LIKE ?", pattern)
	}

	incidents := []models.Incident{}
	if err := query.Order("date DESC, time DESC").Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

// 2 GetIncidentByID returns an incident or ErrIncidentNotFound
func (s *IncidentService) GetIncidentByID(ctx context.Context, id uint) (*models.Incident, error) {
	var incident models.Incident
	if err := s.DB.WithContext(ctx).First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrIncidentNotFound)
		}
		return nil, err
	}
	return &incident, nil
}

// 3 CreateIncident inserts an incident, numbering it when no reference is given
func (s *IncidentService) CreateIncident(ctx context.Context, actorID uint, in IncidentInput) (*models.Incident, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.IncidentPending
	}

	incident := models.Incident{
		ReferenceNumber: in.ReferenceNumber,
		IncidentType:    in.IncidentType,
		Location:        in.Location,
		Date:            in.Date,
		Time:            in.Time,
		Complainant:     in.Complainant,
		Respondent:      in.Respondent,
		Description:     in.Description,
		Status:          in.Status,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := s.now().Year()
		if incident.ReferenceNumber == "" {
			ref, err := s.nextReference(tx, year)
			if err != nil {
				return err
			}
			incident.ReferenceNumber = ref
		}

		// a taken number is replaced once; a second collision fails on the unique index
		taken, err := referenceTaken(tx, incident.ReferenceNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			ref, err := s.nextReference(tx, year)
			if err != nil {
				return err
			}
			incident.ReferenceNumber = ref
		}

		if err := tx.Create(&incident).Error; err != nil {
			return translateIncidentError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.History.Record(ctx, actorID, HistoryRefs{IncidentID: uintRef(incident.ID)},
		fmt.Sprintf("Added new incident: %s", incident.ReferenceNumber))
	return &incident, nil
}

// 4 UpdateIncident rewrites an incident, keeping reference and status when omitted
func (s *IncidentService) UpdateIncident(ctx context.Context, actorID uint, id uint, in IncidentInput) (*models.Incident, error) {
	incident, err := s.GetIncidentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.ReferenceNumber == "" {
		in.ReferenceNumber = incident.ReferenceNumber
	}
	if in.Status == "" {
		in.Status = incident.Status
	}

	if in.ReferenceNumber != incident.ReferenceNumber {
		taken, err := referenceTaken(s.DB.WithContext(ctx), in.ReferenceNumber, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, code.New(code.ErrIncidentDuplicate, "Reference number already exists")
		}
	}

	err = s.DB.WithContext(ctx).Model(incident).Updates(map[string]interface{}{
		"reference_number": in.ReferenceNumber,
		"incident_type":    in.IncidentType,
		"location":         in.Location,
		"date":             in.Date,
		"time":             in.Time,
		"complainant":      in.Complainant,
		"respondent":       in.Respondent,
		"description":      in.Description,
		"status":           in.Status,
	}).Error
	if err != nil {
		return nil, translateIncidentError(err)
	}

	s.History.Record(ctx, actorID, HistoryRefs{IncidentID: uintRef(id)},
		fmt.Sprintf("Updated incident: %s", in.ReferenceNumber))
	return s.GetIncidentByID(ctx, id)
}

// 5 DeleteIncident removes an incident
func (s *IncidentService) DeleteIncident(ctx context.Context, actorID uint, id uint) error {
	incident, err := s.GetIncidentByID(ctx, id)
	if err != nil {
		return err
	}

	s.History.Record(ctx, actorID, HistoryRefs{IncidentID: uintRef(id)},
		fmt.Sprintf("Deleted incident: %s", incident.ReferenceNumber))
	return s.DB.WithContext(ctx).Delete(&models.Incident{}, id).Error
}

// 6 CountIncidents returns the number of incidents
func (s *IncidentService) CountIncidents(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Incident{}).Count(&count).Error
	return count, err
}

// 7 GenerateReferenceNumber claims the next number of the current year
func (s *IncidentService) GenerateReferenceNumber(ctx context.Context) (string, error) {
	var ref string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		ref, err = s.nextReference(tx, s.now().Year())
		return err
	})
	return ref, err
}

// nextReference bumps the counter row of year and formats INC-<year>-<seq>.
// The row is seeded from the incidents already created that year.
func (s *IncidentService) nextReference(tx *gorm.DB, year int) (string, error) {
	bump := func() (int64, error) {
		res := tx.Model(&models.IncidentSequence{}).
			Where("year = ?", year).
			UpdateColumn("last_value", gorm.Expr("last_value + 1"))
		return res.RowsAffected, res.Error
	}

	affected, err := bump()
	if err != nil {
		return "", err
	}
	if affected == 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		var existing int64
		err := tx.Model(&models.Incident{}).
			Where("created_at >= ? AND created_at < ?", start, start.AddDate(1, 0, 0)).
			Count(&existing).Error
		if err != nil {
			return "", err
		}
		seed := models.IncidentSequence{Year: year, LastValue: int(existing)}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return "", err
		}
		if _, err := bump(); err != nil {
			return "", err
		}
	}

	var seq models.IncidentSequence
	if err := tx.Where("year = ?", year).First(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INC-%d-%04d", year, seq.LastValue), nil
}

func referenceTaken(db *gorm.DB, ref string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&models.Incident{}).Where("reference_number = ?", ref)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translateIncidentError(err error) error {
	if database.IsDuplicateKey(err) {
		return code.From(code.ErrIncidentDuplicate)
	}
	return err
}

// active reports whether a list filter value should be applied
func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "all"
}

// datePattern builds a LIKE pattern over YYYY-MM-DD strings
func datePattern(year, month string) (string, error) {
	if !active(year) && !active(month) {
		return "", nil
	}

	y := "____"
	if active(year) {
		n, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil || n < 1 || n > 9999 {
			return "", code.New(code.ErrValidation, "Invalid year filter")
		}
		y = fmt.Sprintf("%04d", n)
	}

	m := "__"
	if active(month) {
		n, err := strconv.Atoi(strings.TrimSpace(month))
		if err != nil || n < 1 || n > 12 {
			return "", code.New(code.ErrValidation, "Invalid month filter")
		}
		m = fmt.Sprintf("%02d", n)
	}
	return y + "-" + m + "-%", nil
}
