// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package storage keeps uploaded user files (avatars) either on the local
// filesystem or in an S3-compatible bucket and hands back their public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"

	// AvatarPrefix is the key prefix of uploaded avatars.
	AvatarPrefix = "avatars"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported file storage driver")
	ErrEmptyKey          = errors.New("empty object key")
	ErrSavingFile        = errors.New("failed to save file")
)

// FileStorage saves an object under key and returns the URL it is
// publicly reachable at.
type FileStorage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// NewFileStorage returns the backend selected by cfg.Driver.
func NewFileStorage(ctx context.Context, cfg config.Files, log *logger.Logger) (FileStorage, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		return NewLocalStorage(cfg.UploadDir, cfg.PublicURL, log)
	case DriverS3:
		return NewS3Storage(ctx, cfg.S3, cfg.PublicURL, log)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
}

// AvatarKey builds a unique key for an uploaded avatar keeping the
// original file extension: avatars/avatar-<uuid>.png
func AvatarKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(AvatarPrefix, "avatar-"+uuid.NewString()+ext)
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
