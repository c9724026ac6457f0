// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/filekko/internal/logger"
)

// LocalStorage writes files below a base directory which the HTTP layer
// serves under /uploads.
type LocalStorage struct {
	baseDir string
	baseURL string
	logger  *logger.Logger
}

// NewLocalStorage creates baseDir when missing.
func NewLocalStorage(baseDir, baseURL string, log *logger.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	log.Debug().Str("dir", baseDir).Msg("local file storage ready")
	return &LocalStorage{baseDir: baseDir, baseURL: baseURL, logger: log}, nil
}

// Dir returns the directory files are written to.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) Save(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	log := logger.FromContext(ctx)

	fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		log.Err(err).Str("func", "*LocalStorage.Save").Msg("failed to create directory")
		return "", fmt.Errorf("%w: %w", ErrSavingFile, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		log.Err(err).Str("func", "*LocalStorage.Save").Msg("failed to create file")
		return "", fmt.Errorf("%w: %w", ErrSavingFile, err)
	}
	defer file.Close()

	if _, err = io.Copy(file, r); err != nil {
		log.Err(err).Str("func", "*LocalStorage.Save").Msg("failed to write file")
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("%w: %w", ErrSavingFile, err)
	}

	return publicURL(s.baseURL, filepath.ToSlash(key)), nil
}

// resolve keeps keys inside baseDir.
func (s *LocalStorage) resolve(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrEmptyKey
	}

	clean := filepath.Clean(filepath.FromSlash("/" + key))
	return filepath.Join(s.baseDir, clean), nil
}
