package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/database"
	"sk-barangay-service/internal/validation"

	"gorm.io/gorm"
)

// HouseholdMemberInput is one roster entry of a household request
type HouseholdMemberInput struct {
	ResidentID uint   `json:"resident_id"`
	Role       string `json:"role"`
}

// HouseholdInput is the writable part of a household. Members is nil when the
// request left the roster out, which keeps the current roster on update.
type HouseholdInput struct {
	HouseholdName string                  `json:"household_name"`
	Address       string                  `json:"address"`
	Members       *[]HouseholdMemberInput `json:"members"`
}

// Validate checks the household fields and every roster entry
func (in *HouseholdInput) Validate() error {
	in.HouseholdName = strings.TrimSpace(in.HouseholdName)
	in.Address = strings.TrimSpace(in.Address)

	var errs validation.Errors
	if in.HouseholdName == "" {
		errs.Add("Household name is required")
	} else if validation.Length(in.HouseholdName) > 150 {
		errs.Add("Household name must not exceed 150 characters")
	}
	errs.Check(in.Address != "", "Address is required")

	if in.Members != nil {
		seen := make(map[uint]bool, len(*in.Members))
		for i, m := range *in.Members {
			if m.ResidentID == 0 {
				errs.Add(fmt.Sprintf("Member %d: resident ID is required", i+1))
				continue
			}
			if !validation.OneOf(m.Role, models.HouseholdRoles...) {
				errs.Add(fmt.Sprintf("Member %d: role must be head, member or dependent", i+1))
			}
			if seen[m.ResidentID] {
				errs.Add(fmt.Sprintf("Member %d: resident is listed more than once", i+1))
			}
			seen[m.ResidentID] = true
		}
	}
	return errs.Err()
}

func (in *HouseholdInput) members() []HouseholdMemberInput {
	if in.Members == nil {
		return nil
	}
	return *in.Members
}

// InterfaceHouseholdService defines the household service interface
type InterfaceHouseholdService interface {
	GetAllHouseholds(ctx context.Context) ([]models.Household, error)
	GetHouseholdByID(ctx context.Context, id uint) (*models.HouseholdDetail, error)
	CreateHousehold(ctx context.Context, actorID uint, in HouseholdInput) (*models.Household, error)
	UpdateHousehold(ctx context.Context, actorID uint, id uint, in HouseholdInput) (*models.Household, error)
	DeleteHousehold(ctx context.Context, actorID uint, id uint) error
	CountHouseholds(ctx context.Context) (int64, error)
}

// HouseholdService manages households and their rosters
type HouseholdService struct {
	DB      *gorm.DB
	Config  *config.Config
	History InterfaceHistoryService
}

// NewHouseholdService creates the household service
func NewHouseholdService(db *gorm.DB, cfg *config.Config, history InterfaceHistoryService) InterfaceHouseholdService {
	return &HouseholdService{
		DB:      db,
		Config:  cfg,
		History: history,
	}
}

// 1 GetAllHouseholds lists households by name with their member counts
func (s *HouseholdService) GetAllHouseholds(ctx context.Context) ([]models.Household, error) {
	households := []models.Household{}
	err := s.DB.WithContext(ctx).
		Model(&models.Household{}).
		Select("households.*, (SELECT COUNT(*) FROM household_members hm WHERE hm.household_id = households.id) AS member_count").
		Order("households.household_name ASC").
		Find(&households).Error
	if err != nil {
		return nil, err
	}
	return households, nil
}

// 2 GetHouseholdByID returns the household and its roster, heads first
func (s *HouseholdService) GetHouseholdByID(ctx context.Context, id uint) (*models.HouseholdDetail, error) {
	household, err := s.find(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}

	members := []models.HouseholdMemberDetail{}
	err = s.DB.WithContext(ctx).
		Table("household_members AS hm").
		Select("hm.id, hm.resident_id, hm.role, hm.added_at, r.f_name, r.m_name, r.l_name, r.suffix, r.sex, r.birthdate, r.contact_no").
		Joins("JOIN residents r ON hm.resident_id = r.id").
		Where("hm.household_id = ?", id).
		Order("CASE hm.role WHEN 'head' THEN 1 WHEN 'member' THEN 2 ELSE 3 END, r.l_name ASC, r.f_name ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	household.MemberCount = int64(len(members))
	return &models.HouseholdDetail{Household: *household, Members: members}, nil
}

// 3 CreateHousehold inserts the household and its roster in one transaction
func (s *HouseholdService) CreateHousehold(ctx context.Context, actorID uint, in HouseholdInput) (*models.Household, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(ctx, in.HouseholdName, 0); err != nil {
		return nil, err
	}

	household := models.Household{HouseholdName: in.HouseholdName, Address: in.Address}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&household).Error; err != nil {
			return translateHouseholdError(err)
		}
		return s.insertMembers(tx, household.ID, in.members())
	})
	if err != nil {
		return nil, err
	}

	s.History.Record(ctx, actorID, HistoryRefs{HouseholdID: uintRef(household.ID)},
		fmt.Sprintf("Added new household: %s", household.HouseholdName))
	return &household, nil
}

// 4 UpdateHousehold updates name and address and, when members is supplied,
// replaces the roster. Everything rolls back on any conflict.
func (s *HouseholdService) UpdateHousehold(ctx context.Context, actorID uint, id uint, in HouseholdInput) (*models.Household, error) {
	household, err := s.find(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(ctx, in.HouseholdName, id); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(household).Updates(map[string]interface{}{
			"household_name": in.HouseholdName,
			"address":        in.Address,
		}).Error
		if err != nil {
			return translateHouseholdError(err)
		}
		if in.Members == nil {
			return nil
		}
		if err := tx.Where("household_id = ?", id).Delete(&models.HouseholdMember{}).Error; err != nil {
			return err
		}
		return s.insertMembers(tx, id, in.members())
	})
	if err != nil {
		return nil, err
	}

	s.History.Record(ctx, actorID, HistoryRefs{HouseholdID: uintRef(id)},
		fmt.Sprintf("Updated household: %s", in.HouseholdName))
	return s.find(ctx, s.DB, id)
}

// 5 DeleteHousehold records the deletion, then removes the household and its roster
func (s *HouseholdService) DeleteHousehold(ctx context.Context, actorID uint, id uint) error {
	household, err := s.find(ctx, s.DB, id)
	if err != nil {
		return err
	}

	s.History.Record(ctx, actorID, HistoryRefs{HouseholdID: uintRef(id)},
		fmt.Sprintf("Deleted household: %s", household.HouseholdName))

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("household_id = ?", id).Delete(&models.HouseholdMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Household{}, id).Error
	})
}

// 6 CountHouseholds returns the number of households
func (s *HouseholdService) CountHouseholds(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Household{}).Count(&count).Error
	return count, err
}

func (s *HouseholdService) find(ctx context.Context, db *gorm.DB, id uint) (*models.Household, error) {
	var household models.Household
	if err := db.WithContext(ctx).First(&household, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrHouseholdNotFound)
		}
		return nil, err
	}
	return &household, nil
}

func (s *HouseholdService) checkNameUnique(ctx context.Context, name string, excludeID uint) error {
	var count int64
	query := s.DB.WithContext(ctx).Model(&models.Household{}).Where("household_name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return code.From(code.ErrHouseholdDuplicate)
	}
	return nil
}

// insertMembers adds roster rows inside tx. A resident claimed by any other
// household aborts the whole transaction.
func (s *HouseholdService) insertMembers(tx *gorm.DB, householdID uint, members []HouseholdMemberInput) error {
	for _, m := range members {
		var residents int64
		if err := tx.Model(&models.Resident{}).Where("id = ?", m.ResidentID).Count(&residents).Error; err != nil {
			return err
		}
		if residents == 0 {
			return code.New(code.ErrValidation, fmt.Sprintf("Resident %d not found", m.ResidentID))
		}

		var claimed int64
		err := tx.Model(&models.HouseholdMember{}).
			Where("resident_id = ? AND household_id <> ?", m.ResidentID, householdID).
			Count(&claimed).Error
		if err != nil {
			return err
		}
		if claimed > 0 {
			return code.From(code.ErrHouseholdMemberConflict)
		}

		member := models.HouseholdMember{HouseholdID: householdID, ResidentID: m.ResidentID, Role: m.Role}
		if err := tx.Create(&member).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return code.From(code.ErrHouseholdMemberConflict)
			}
			return err
		}
	}
	return nil
}

func translateHouseholdError(err error) error {
	if database.IsDuplicateKey(err) {
		return code.New(code.ErrHouseholdDuplicate, "Duplicate entry: Household name already exists")
	}
	return err
}
