// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MKhiriev/filekko/models"
)

// MaxAvatarSize is the upload limit for avatar images.
const MaxAvatarSize = 5 << 20

var (
	avatarExtensions = []string{".jpeg", ".jpg", ".png", ".gif"}
	avatarMIMETypes  = []string{"image/jpeg", "image/png", "image/gif"}
)

// ValidateAvatar accepts JPEG, PNG and GIF images up to [MaxAvatarSize].
// Both the file name extension and the sniffed content type must match.
// Content is rewound after sniffing.
func ValidateAvatar(upload *models.Upload) error {
	if upload == nil {
		return nil
	}

	if upload.Size > MaxAvatarSize {
		return &ValidationError{Field: "avatar", Message: ErrAvatarTooLarge.Error()}
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !slices.Contains(avatarExtensions, ext) {
		return &ValidationError{Field: "avatar", Message: ErrAvatarNotImage.Error()}
	}

	mtype, err := mimetype.DetectReader(upload.Content)
	if err != nil {
		return fmt.Errorf("failed to detect avatar type: %w", err)
	}
	if _, err = upload.Content.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind avatar: %w", err)
	}

	if !slices.Contains(avatarMIMETypes, mtype.String()) {
		return &ValidationError{Field: "avatar", Message: ErrAvatarNotImage.Error()}
	}
	upload.ContentType = mtype.String()

	return nil
}
