// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied when no source sets the field.
const (
	DefaultHTTPAddress          = "localhost:8080"
	DefaultTokenIssuer          = "filekko"
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultBcryptCost           = 10
	DefaultFilesDriver          = "local"
	DefaultUploadDir            = "public/uploads"
	DefaultPublicURL            = "http://localhost:8080/uploads"
	DefaultMailPort             = 587
	DefaultIdentityTimeout      = 10 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			TokenIssuer:          DefaultTokenIssuer,
			AccessTokenDuration:  DefaultAccessTokenDuration,
			RefreshTokenDuration: DefaultRefreshTokenDuration,
			BcryptCost:           DefaultBcryptCost,
		},
		Storage: Storage{
			Files: Files{
				Driver:    DefaultFilesDriver,
				UploadDir: DefaultUploadDir,
				PublicURL: DefaultPublicURL,
			},
		},
		Server: Server{
			HTTPAddress: DefaultHTTPAddress,
		},
		Mail: Mail{
			Port: DefaultMailPort,
		},
		Identity: Identity{
			RequestTimeout: DefaultIdentityTimeout,
		},
	}
}
