// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const usersTable = "users"

// userColumns is the column order shared by every SELECT and the INSERT.
var userColumns = []string{
	"id",
	"fullname",
	"username",
	"email",
	"avatar",
	"bio",
	"twitter",
	"github",
	"instagram",
	"role",
	"auth_type",
	"password_hash",
	"google_id",
	"github_id",
	"is_email_verified",
	"is_verified",
	"verification_token",
	"reset_password_token",
	"reset_password_expires",
	"total_resources",
	"total_views",
	"created_at",
	"updated_at",
}
