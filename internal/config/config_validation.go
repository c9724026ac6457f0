// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" || cfg.Auth.AccessTokenDuration <= 0 || cfg.Auth.RefreshTokenDuration <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.DSN() == "" {
		return fmt.Errorf("%w: database uri is empty (dev mode: %t)", ErrInvalidStorageConfigs, cfg.App.IsDev)
	}

	switch cfg.Storage.Files.Driver {
	case "local":
		if cfg.Storage.Files.UploadDir == "" {
			return fmt.Errorf("%w: upload dir is empty", ErrInvalidStorageConfigs)
		}
	case "s3":
		if cfg.Storage.Files.S3.Bucket == "" {
			return fmt.Errorf("%w: s3 bucket is empty", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown files driver %q", ErrInvalidStorageConfigs, cfg.Storage.Files.Driver)
	}

	if cfg.App.FrontendURL == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Mail.Host != "" && cfg.Mail.From == "" {
		return ErrInvalidMailConfigs
	}

	return nil
}
