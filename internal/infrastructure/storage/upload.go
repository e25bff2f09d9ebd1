package storage

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"sk-barangay-service/internal/error/code"
)

var imageTypes = []string{"jpeg", "jpg", "png", "gif", "webp"}

// ValidateImage checks size, extension and content type of an uploaded image
func ValidateImage(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return code.New(code.ErrUploadInvalid, "No file uploaded")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return code.New(code.ErrUploadTooLarge, "File too large. Maximum size is 5MB")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	if !matchesImageType(ext) || !matchesImageType(fh.Header.Get("Content-Type")) {
		return code.New(code.ErrUploadInvalid, "Only image files are allowed (jpeg, jpg, png, gif, webp)")
	}
	return nil
}

func matchesImageType(s string) bool {
	s = strings.ToLower(s)
	for _, t := range imageTypes {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// SaveUpload validates fh and stores it under folder, returning its URL
func SaveUpload(ctx context.Context, store Store, folder string, fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if err := ValidateImage(fh, maxBytes); err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return store.Put(ctx, NewKey(folder, fh.Filename), f, fh.Header.Get("Content-Type"))
}
