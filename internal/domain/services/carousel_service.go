package services

import (
	"context"
	"errors"
	"mime/multipart"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/storage"

	"gorm.io/gorm"
)

// InterfaceCarouselService defines the login carousel interface
type InterfaceCarouselService interface {
	GetCarousel(ctx context.Context) ([]models.Carousel, error)
	AddImage(ctx context.Context, fh *multipart.FileHeader, position int) (*models.Carousel, error)
	UpdatePosition(ctx context.Context, id uint, position int) error
	DeleteImage(ctx context.Context, id uint) error
}

// CarouselService manages carousel images
type CarouselService struct {
	DB      *gorm.DB
	Config  *config.Config
	Storage storage.Store
}

// NewCarouselService creates the carousel service
func NewCarouselService(db *gorm.DB, cfg *config.Config, store storage.Store) InterfaceCarouselService {
	return &CarouselService{
		DB:      db,
		Config:  cfg,
		Storage: store,
	}
}

// 1 GetCarousel lists images by position, newest first within a position
func (s *CarouselService) GetCarousel(ctx context.Context) ([]models.Carousel, error) {
	images := []models.Carousel{}
	if err := s.DB.WithContext(ctx).Order("position ASC, posted_at DESC, id DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// 2 AddImage stores an upload as a new carousel image
func (s *CarouselService) AddImage(ctx context.Context, fh *multipart.FileHeader, position int) (*models.Carousel, error) {
	if fh == nil {
		return nil, code.New(code.ErrUploadInvalid, "Carousel image is required")
	}
	if position <= 0 {
		position = 1
	}

	url, err := storage.SaveUpload(ctx, s.Storage, storage.FolderCarousel, fh, s.Config.UploadMaxBytes)
	if err != nil {
		return nil, err
	}
	image := models.Carousel{Picture: url, Position: position}
	if err := s.DB.WithContext(ctx).Create(&image).Error; err != nil {
		deleteQuietly(ctx, s.Storage, url)
		return nil, err
	}
	return &image, nil
}

// 3 UpdatePosition moves an image
func (s *CarouselService) UpdatePosition(ctx context.Context, id uint, position int) error {
	res := s.DB.WithContext(ctx).Model(&models.Carousel{}).Where("id = ?", id).Update("position", position)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// the row may exist with the same position already
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Carousel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return code.From(code.ErrCarouselNotFound)
		}
	}
	return nil
}

// 4 DeleteImage removes an image row and its file
func (s *CarouselService) DeleteImage(ctx context.Context, id uint) error {
	var image models.Carousel
	if err := s.DB.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.From(code.ErrCarouselNotFound)
		}
		return err
	}

	if err := s.DB.WithContext(ctx).Delete(&image).Error; err != nil {
		return err
	}
	deleteQuietly(ctx, s.Storage, image.Picture)
	return nil
}
