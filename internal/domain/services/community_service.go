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

// ServiceInput is the writable part of a community service
type ServiceInput struct {
	ServiceName string `json:"service_name"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Validate trims and checks the service fields
func (in *ServiceInput) Validate() error {
	in.ServiceName = strings.TrimSpace(in.ServiceName)
	in.Location = strings.TrimSpace(in.Location)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Status = strings.TrimSpace(in.Status)
	in.Description = strings.TrimSpace(in.Description)

	var errs validation.Errors
	if in.ServiceName == "" {
		errs.Add("Service name is required")
	} else if validation.Length(in.ServiceName) > 150 {
		errs.Add("Service name must not exceed 150 characters")
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
	errs.Check(in.Description != "", "Description is required")
	if in.Status != "" {
		errs.Check(validation.OneOf(in.Status, models.ServiceStatuses...), "Invalid status value")
	}
	return errs.Err()
}

// InterfaceCommunityService defines the community service and beneficiary interface
type InterfaceCommunityService interface {
	GetAllServices(ctx context.Context) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, actorID uint, in ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, actorID uint, id uint, in ServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, actorID uint, id uint) error
	CountServices(ctx context.Context) (int64, error)
	GetBeneficiaries(ctx context.Context, serviceID uint) ([]models.BeneficiaryDetail, error)
	AddBeneficiary(ctx context.Context, serviceID, residentID uint) (*models.ServiceBeneficiary, error)
	RemoveBeneficiary(ctx context.Context, serviceID, beneficiaryID uint) error
}

// CommunityService manages community services and their beneficiaries
type CommunityService struct {
	DB      *gorm.DB
	Config  *config.Config
	History InterfaceHistoryService
}

// NewCommunityService creates the community service
func NewCommunityService(db *gorm.DB, cfg *config.Config, history InterfaceHistoryService) InterfaceCommunityService {
	return &CommunityService{
		DB:      db,
		Config:  cfg,
		History: history,
	}
}

// 1 GetAllServices lists services with beneficiary counts, latest first
func (s *CommunityService) GetAllServices(ctx context.Context) ([]models.Service, error) {
	list := []models.Service{}
	err := s.DB.WithContext(ctx).
		Model(&models.Service{}).
		Select("services.*, (SELECT COUNT(*) FROM service_beneficiaries sb WHERE sb.service_id = services.id) AS beneficiary_count").
		Order("services.date DESC, services.time DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// 2 GetServiceByID returns a service or ErrServiceNotFound
func (s *CommunityService) GetServiceByID(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := s.DB.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.From(code.ErrServiceNotFound)
		}
		return nil, err
	}
	return &service, nil
}

// 3 CreateService validates and inserts a service
func (s *CommunityService) CreateService(ctx context.Context, actorID uint, in ServiceInput) (*models.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.ServiceScheduled
	}

	service := models.Service{
		ServiceName: in.ServiceName,
		Location:    in.Location,
		Date:        in.Date,
		Time:        in.Time,
		Status:      in.Status,
		Description: in.Description,
	}
	if err := s.DB.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, err
	}

	s.History.Record(ctx, actorID, HistoryRefs{ServiceID: uintRef(service.ID)},
		fmt.Sprintf("Added new service: %s", service.ServiceName))
	return &service, nil
}

// 4 UpdateService rewrites a service, keeping the status when omitted
func (s *CommunityService) UpdateService(ctx context.Context, actorID uint, id uint, in ServiceInput) (*models.Service, error) {
	service, err := s.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = service.Status
	}

	err = s.DB.WithContext(ctx).Model(service).Updates(map[string]interface{}{
		"service_name": in.ServiceName,
		"location":     in.Location,
		"date":         in.Date,
		"time":         in.Time,
		"status":       in.Status,
		"description":  in.Description,
	}).Error
	if err != nil {
		return nil, err
	}

	s.History.Record(ctx, actorID, HistoryRefs{ServiceID: uintRef(id)},
		fmt.Sprintf("Updated service: %s", in.ServiceName))
	return s.GetServiceByID(ctx, id)
}

// 5 DeleteService removes a service and its beneficiaries in one transaction
func (s *CommunityService) DeleteService(ctx context.Context, actorID uint, id uint) error {
	service, err := s.GetServiceByID(ctx, id)
	if err != nil {
		return err
	}

	s.History.Record(ctx, actorID, HistoryRefs{ServiceID: uintRef(id)},
		fmt.Sprintf("Deleted service: %s", service.ServiceName))

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.ServiceBeneficiary{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Service{}, id).Error
	})
}

// 6 CountServices returns the number of services
func (s *CommunityService) CountServices(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Service{}).Count(&count).Error
	return count, err
}

// 7 GetBeneficiaries lists the residents of a service, newest first
func (s *CommunityService) GetBeneficiaries(ctx context.Context, serviceID uint) ([]models.BeneficiaryDetail, error) {
	beneficiaries := []models.BeneficiaryDetail{}
	err := s.DB.WithContext(ctx).
		Table("service_beneficiaries AS sb").
		Select(`sb.id, sb.service_id, sb.resident_id, sb.added_at,
			r.f_name, r.m_name, r.l_name, r.suffix, r.sex, r.birthdate, r.contact_no, r.email, r.address`).
		Joins("JOIN residents r ON sb.resident_id = r.id").
		Where("sb.service_id = ?", serviceID).
		Order("sb.added_at DESC, sb.id DESC").
		Scan(&beneficiaries).Error
	if err != nil {
		return nil, err
	}
	return beneficiaries, nil
}

// 8 AddBeneficiary links a resident to a service once
func (s *CommunityService) AddBeneficiary(ctx context.Context, serviceID, residentID uint) (*models.ServiceBeneficiary, error) {
	if residentID == 0 {
		return nil, code.New(code.ErrValidation, "Resident ID is required")
	}
	if _, err := s.GetServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	var residents int64
	if err := db.Model(&models.Resident{}).Where("id = ?", residentID).Count(&residents).Error; err != nil {
		return nil, err
	}
	if residents == 0 {
		return nil, code.From(code.ErrResidentNotFound)
	}

	var linked int64
	err := db.Model(&models.ServiceBeneficiary{}).
		Where("service_id = ? AND resident_id = ?", serviceID, residentID).
		Count(&linked).Error
	if err != nil {
		return nil, err
	}
	if linked > 0 {
		return nil, code.From(code.ErrBeneficiaryDuplicate)
	}

	beneficiary := models.ServiceBeneficiary{ServiceID: serviceID, ResidentID: residentID}
	if err := db.Create(&beneficiary).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, code.From(code.ErrBeneficiaryDuplicate)
		}
		return nil, err
	}
	return &beneficiary, nil
}

// 9 RemoveBeneficiary unlinks a beneficiary row of the given service
func (s *CommunityService) RemoveBeneficiary(ctx context.Context, serviceID, beneficiaryID uint) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND service_id = ?", beneficiaryID, serviceID).
		Delete(&models.ServiceBeneficiary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return code.From(code.ErrBeneficiaryNotFound)
	}
	return nil
}
