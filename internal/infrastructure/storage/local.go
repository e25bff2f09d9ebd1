package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps files under Root and serves them below URLPrefix
type LocalStore struct {
	Root      string
	URLPrefix string
}

// NewLocalStore creates root if needed
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Put writes r to Root/key
func (s *LocalStore) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.Root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.URLPrefix + "/" + clean, nil
}

// Delete removes the file behind url; unknown urls are ignored
func (s *LocalStore) Delete(_ context.Context, url string) error {
	if !strings.HasPrefix(url, s.URLPrefix+"/") {
		return nil
	}
	clean, err := sanitizeKey(strings.TrimPrefix(url, s.URLPrefix+"/"))
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
