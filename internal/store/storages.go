// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/filekko/internal/logger"
)

// Storages groups the repositories built on one database connection.
type Storages struct {
	UserRepository UserRepository
	DB             Pinger
}

// NewStorages constructs all repositories on db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
		DB:             db,
	}
}
