// Package storage persists uploaded images on the local disk or in an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"sk-barangay-service/internal/infrastructure/config"

	"github.com/google/uuid"
)

// Folders used for uploads
const (
	FolderProfiles = "profiles"
	FolderLogos    = "logos"
	FolderMainBG   = "main-bg"
	FolderCarousel = "carousel"
)

// Store writes and removes uploaded objects
type Store interface {
	// Put stores r under key and returns the public URL
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	// Delete removes the object behind a URL previously returned by Put
	Delete(ctx context.Context, url string) error
}

// New builds the store selected by STORAGE_DRIVER
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalStore(cfg.UploadDir, "/uploads")
	case "s3":
		return NewS3Store(ctx, S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PathStyle:     cfg.S3PathStyle,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// NewKey returns folder/<uuid><ext> keeping the lowercased extension of filename
func NewKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}
