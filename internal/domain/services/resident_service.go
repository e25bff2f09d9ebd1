package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/database"
	"sk-barangay-service/internal/validation"

	"gorm.io/gorm"
)

const maxResidentAge = 150

// ResidentInput is the writable part of a resident
type ResidentInput struct {
	FName       string  `json:"f_name"`
	MName       *string `json:"m_name"`
	LName       string  `json:"l_name"`
	Suffix      string  `json:"suffix"`
	Sex         string  `json:"sex"`
	Birthdate   string  `json:"birthdate"`
	CivilStatus string  `json:"civil_status"`
	ContactNo   *string `json:"contact_no"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// Normalize trims fields, turns blank optionals into nil and defaults the suffix
func (in *ResidentInput) Normalize() {
	in.FName = strings.TrimSpace(in.FName)
	in.LName = strings.TrimSpace(in.LName)
	in.MName = trimOptional(in.MName)
	in.ContactNo = trimOptional(in.ContactNo)
	in.Email = trimOptional(in.Email)
	in.Address = trimOptional(in.Address)
	if strings.TrimSpace(in.Suffix) == "" {
		in.Suffix = "NA"
	}
}

// Validate checks field rules against the given clock
func (in *ResidentInput) Validate(now time.Time) error {
	var errs validation.Errors

	if validation.Blank(in.FName) {
		errs.Add("First name is required")
	} else if validation.Length(in.FName) > 100 {
		errs.Add("First name must not exceed 100 characters")
	}
	if in.MName != nil && validation.Length(*in.MName) > 100 {
		errs.Add("Middle name must not exceed 100 characters")
	}
	if validation.Blank(in.LName) {
		errs.Add("Last name is required")
	} else if validation.Length(in.LName) > 100 {
		errs.Add("Last name must not exceed 100 characters")
	}
	errs.Check(validation.OneOf(in.Suffix, models.ResidentSuffixes...), "Invalid suffix value")
	errs.Check(validation.OneOf(in.Sex, models.ResidentSexes...), "Sex is required and must be male or female")

	if validation.Blank(in.Birthdate) {
		errs.Add("Birthdate is required")
	} else if birth, err := validation.ParseDate(in.Birthdate); err != nil {
		errs.Add("Invalid birthdate")
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if birth.After(today) {
			errs.Add("Birthdate cannot be in the future")
		}
		if ageAt(birth, now) > maxResidentAge {
			errs.Add("Invalid birthdate")
		}
	}

	errs.Check(validation.OneOf(in.CivilStatus, models.ResidentCivilStatuses...), "Civil status is required")
	if in.ContactNo != nil {
		errs.Check(validation.IsContactNo(*in.ContactNo), "Invalid contact number format")
	}
	if in.Email != nil {
		errs.Check(validation.IsEmail(*in.Email), "Invalid email format")
	}
	return errs.Err()
}

// ageAt returns full years between birth and now
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	GetAllResidents(ctx context.Context) ([]models.Resident, error)
	GetResidentByID(ctx context.Context, id uint) (*models.Resident, error)
	CreateResident(ctx context.Context, actorID uint, in ResidentInput) (*models.Resident, error)
	UpdateResident(ctx context.Context, actorID uint, id uint, in ResidentInput) (*models.Resident, error)
	DeleteResident(ctx context.Context, actorID uint, id uint) error
	CountResidents(ctx context.Context) (int64, error)
}

// ResidentService manages resident records
type ResidentService struct {
	DB      *gorm.DB
	Config  *config.Config
	History InterfaceHistoryService
	now     func() time.Time
}

// NewResidentService creates the resident service
func NewResidentService(db *gorm.DB, cfg *config.Config, history InterfaceHistoryService) InterfaceResidentService {
	return &ResidentService{
		DB:      db,
		Config:  cfg,
		History: history,
		now:     time.Now,
	}
}

// 1 GetAllResidents lists residents by last then first name
func (s *ResidentService) GetAllResidents(ctx context.Context) ([]models.Resident, error) {
	residents := []models.Resident{}
	if err := s.DB.WithContext(ctx).Order("l_name ASC, f_name ASC").Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// 2 GetResidentByID returns a resident or ErrResidentNotFound
func (s *ResidentService) GetResidentByID(ctx context.Context, id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.WithContext(ctx).First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrResidentNotFound)
		}
		return nil, err
	}
	return &resident, nil
}

// 3 CreateResident validates and inserts a resident
func (s *ResidentService) CreateResident(ctx context.Context, actorID uint, in ResidentInput) (*models.Resident, error) {
	in.Normalize()
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}
	if err := s.checkContactUnique(ctx, in, 0); err != nil {
		return nil, err
	}

	resident := models.Resident{}
	applyResidentInput(&resident, in)
	if err := s.DB.WithContext(ctx).Create(&resident).Error; err != nil {
		return nil, translateResidentError(err)
	}

	s.History.Record(ctx, actorID, HistoryRefs{ResidentID: uintRef(resident.ID)},
		fmt.Sprintf("Added new resident: %s", resident.DisplayName()))
	return &resident, nil
}

// 4 UpdateResident replaces every writable field of a resident
func (s *ResidentService) UpdateResident(ctx context.Context, actorID uint, id uint, in ResidentInput) (*models.Resident, error) {
	resident, err := s.GetResidentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Normalize()
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}
	if err := s.checkContactUnique(ctx, in, id); err != nil {
		return nil, err
	}

	applyResidentInput(resident, in)
	// explicit columns so cleared optionals are written as NULL
	err = s.DB.WithContext(ctx).Model(resident).
		Select("f_name", "m_name", "l_name", "suffix", "sex", "birthdate", "civil_status", "contact_no", "email", "address").
		Updates(resident).Error
	if err != nil {
		return nil, translateResidentError(err)
	}

	s.History.Record(ctx, actorID, HistoryRefs{ResidentID: uintRef(resident.ID)},
		fmt.Sprintf("Updated resident: %s", resident.DisplayName()))
	return s.GetResidentByID(ctx, id)
}

// 5 DeleteResident removes the resident together with its memberships and beneficiary rows
func (s *ResidentService) DeleteResident(ctx context.Context, actorID uint, id uint) error {
	resident, err := s.GetResidentByID(ctx, id)
	if err != nil {
		return err
	}

	s.History.Record(ctx, actorID, HistoryRefs{ResidentID: uintRef(resident.ID)},
		fmt.Sprintf("Deleted resident: %s", resident.DisplayName()))

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resident_id = ?", id).Delete(&models.HouseholdMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resident_id = ?", id).Delete(&models.ServiceBeneficiary{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Resident{}, id).Error
	})
}

// 6 CountResidents returns the number of residents
func (s *ResidentService) CountResidents(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Resident{}).Count(&count).Error
	return count, err
}

// checkContactUnique gives the friendly message before the unique index would reject the row
func (s *ResidentService) checkContactUnique(ctx context.Context, in ResidentInput, excludeID uint) error {
	if in.ContactNo != nil {
		taken, err := s.exists(ctx, "contact_no = ?", *in.ContactNo, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return code.New(code.ErrResidentDuplicate, "Contact number already exists")
		}
	}
	if in.Email != nil {
		taken, err := s.exists(ctx, "email = ?", *in.Email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return code.New(code.ErrResidentDuplicate, "Email already exists")
		}
	}
	return nil
}

func (s *ResidentService) exists(ctx context.Context, cond string, value interface{}, excludeID uint) (bool, error) {
	var count int64
	query := s.DB.WithContext(ctx).Model(&models.Resident{}).Where(cond, value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyResidentInput(r *models.Resident, in ResidentInput) {
	r.FName = in.FName
	r.MName = in.MName
	r.LName = in.LName
	r.Suffix = in.Suffix
	r.Sex = in.Sex
	r.Birthdate = in.Birthdate
	r.CivilStatus = in.CivilStatus
	r.ContactNo = in.ContactNo
	r.Email = in.Email
	r.Address = in.Address
}

func translateResidentError(err error) error {
	if database.IsDuplicateKey(err) {
		return code.New(code.ErrResidentDuplicate, "Duplicate entry: Contact number or email already exists")
	}
	return err
}
