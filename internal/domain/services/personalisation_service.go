package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/storage"
	"sk-barangay-service/internal/validation"
	Logger "sk-barangay-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PersonalisationUpdate is a partial branding update; nil fields are left alone
// and empty strings clear a value
type PersonalisationUpdate struct {
	HeaderTitle    *string `json:"header_title"`
	HeaderColor    *string `json:"header_color"`
	FooterTitle    *string `json:"footer_title"`
	FooterColor    *string `json:"footer_color"`
	LoginColor     *string `json:"login_color"`
	ProfileBg      *string `json:"profile_bg"`
	ActiveNavColor *string `json:"active_nav_color"`
	ButtonColor    *string `json:"button_color"`
}

func (in PersonalisationUpdate) columns() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	var errs validation.Errors

	text := map[string]*string{"header_title": in.HeaderTitle, "footer_title": in.FooterTitle}
	for _, col := range models.PersonalisationTextFields {
		if v := text[col]; v != nil {
			if validation.Length(*v) > 150 {
				errs.Add(col + " must not exceed 150 characters")
			}
			updates[col] = trimOptional(v)
		}
	}

	colors := map[string]*string{
		"header_color":     in.HeaderColor,
		"footer_color":     in.FooterColor,
		"login_color":      in.LoginColor,
		"profile_bg":       in.ProfileBg,
		"active_nav_color": in.ActiveNavColor,
		"button_color":     in.ButtonColor,
	}
	for _, col := range models.PersonalisationColorFields {
		v := colors[col]
		if v == nil {
			continue
		}
		value := trimOptional(v)
		if value != nil && !validation.IsHexColor(*value) {
			errs.Add("Invalid " + strings.ReplaceAll(col, "_", " ") + " value")
		}
		updates[col] = value
	}
	return updates, errs.Err()
}

// InterfacePersonalisationService defines the branding service interface
type InterfacePersonalisationService interface {
	GetPersonalisation(ctx context.Context) (*models.Personalisation, error)
	UpdatePersonalisation(ctx context.Context, in PersonalisationUpdate) (*models.Personalisation, error)
	UploadLogo(ctx context.Context, fh *multipart.FileHeader) (*models.Personalisation, error)
	UploadMainBg(ctx context.Context, fh *multipart.FileHeader) (*models.Personalisation, error)
}

// PersonalisationService manages the singleton branding row
type PersonalisationService struct {
	DB      *gorm.DB
	Config  *config.Config
	Storage storage.Store
}

// NewPersonalisationService creates the branding service
func NewPersonalisationService(db *gorm.DB, cfg *config.Config, store storage.Store) InterfacePersonalisationService {
	return &PersonalisationService{
		DB:      db,
		Config:  cfg,
		Storage: store,
	}
}

// 1 GetPersonalisation returns the branding row, creating it on first use
func (s *PersonalisationService) GetPersonalisation(ctx context.Context) (*models.Personalisation, error) {
	var p models.Personalisation
	err := s.DB.WithContext(ctx).First(&p, models.PersonalisationID).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = models.Personalisation{ID: models.PersonalisationID}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).First(&p, models.PersonalisationID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// 2 UpdatePersonalisation applies titles and colours
func (s *PersonalisationService) UpdatePersonalisation(ctx context.Context, in PersonalisationUpdate) (*models.Personalisation, error) {
	updates, err := in.columns()
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, code.New(code.ErrValidation, "No fields to update")
	}

	current, err := s.GetPersonalisation(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(current).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetPersonalisation(ctx)
}

// 3 UploadLogo replaces the logo image
func (s *PersonalisationService) UploadLogo(ctx context.Context, fh *multipart.FileHeader) (*models.Personalisation, error) {
	if fh == nil {
		return nil, code.New(code.ErrUploadInvalid, "Logo file is required")
	}
	return s.replaceImage(ctx, fh, storage.FolderLogos, "logo", func(p *models.Personalisation) *string { return p.Logo })
}

// 4 UploadMainBg replaces the main background image
func (s *PersonalisationService) UploadMainBg(ctx context.Context, fh *multipart.FileHeader) (*models.Personalisation, error) {
	if fh == nil {
		return nil, code.New(code.ErrUploadInvalid, "Main background file is required")
	}
	return s.replaceImage(ctx, fh, storage.FolderMainBG, "main_bg", func(p *models.Personalisation) *string { return p.MainBg })
}

// replaceImage stores fh, points column at it and drops the previous file
func (s *PersonalisationService) replaceImage(ctx context.Context, fh *multipart.FileHeader, folder, column string, previous func(*models.Personalisation) *string) (*models.Personalisation, error) {
	current, err := s.GetPersonalisation(ctx)
	if err != nil {
		return nil, err
	}

	old := ""
	if p := previous(current); p != nil {
		old = *p
	}

	url, err := storage.SaveUpload(ctx, s.Storage, folder, fh, s.Config.UploadMaxBytes)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(current).Update(column, url).Error; err != nil {
		deleteQuietly(ctx, s.Storage, url)
		return nil, err
	}
	if old != "" {
		deleteQuietly(ctx, s.Storage, old)
	}
	return s.GetPersonalisation(ctx)
}

// deleteQuietly removes an uploaded file, logging failures
func deleteQuietly(ctx context.Context, store storage.Store, url string) {
	if err := store.Delete(ctx, url); err != nil {
		Logger.Warning("delete file %s: %v", url, err)
	}
}
