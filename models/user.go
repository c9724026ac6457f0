// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthMethod is the credential type bound to an account.
type AuthMethod string

const (
	AuthMethodPassword AuthMethod = "password"
	AuthMethodGoogle   AuthMethod = "google"
	AuthMethodGithub   AuthMethod = "github"
)

// Valid reports whether the method is one of the known credential types.
func (m AuthMethod) Valid() bool {
	switch m {
	case AuthMethodPassword, AuthMethodGoogle, AuthMethodGithub:
		return true
	}
	return false
}

// Role is the access level of an account.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// User represents a Filekko account.
//
// AccountInfo.AuthType is fixed at signup and selects which credential field
// is populated: Password for password accounts, GoogleID for google accounts.
// VerificationToken is non-nil only while email verification is pending.
type User struct {
	ID           string       `json:"_id"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	SocialLinks  SocialLinks  `json:"social_links"`
	AccountInfo  AccountInfo  `json:"account_info"`
	Activity     Activity     `json:"activity"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PersonalInfo holds the public identity of a user.
type PersonalInfo struct {
	Fullname string  `json:"fullname"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   string  `json:"avatar"`
	Bio      *string `json:"bio,omitempty"`
}

// SocialLinks holds optional profile links.
type SocialLinks struct {
	Twitter   *string `json:"twitter,omitempty"`
	Github    *string `json:"github,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// AccountInfo holds credential and verification state.
// Secret fields are never serialized.
type AccountInfo struct {
	Role                 Role       `json:"role"`
	AuthType             AuthMethod `json:"auth_type"`
	Password             string     `json:"-"`
	GoogleID             *string    `json:"-"`
	GithubID             *string    `json:"-"`
	IsEmailVerified      bool       `json:"isEmailVerified"`
	IsVerified           bool       `json:"isVerified"`
	VerificationToken    *string    `json:"-"`
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

// Activity holds usage counters.
type Activity struct {
	TotalResources int64 `json:"total_resources"`
	TotalViews     int64 `json:"total_views"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary returns the public part of the user returned after authentication.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.PersonalInfo.Username,
		Email:    u.PersonalInfo.Email,
		Avatar:   u.PersonalInfo.Avatar,
	}
}

// Snapshot returns the copy of the user embedded into session tokens.
func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:              u.ID,
		Fullname:        u.PersonalInfo.Fullname,
		Username:        u.PersonalInfo.Username,
		Email:           u.PersonalInfo.Email,
		Avatar:          u.PersonalInfo.Avatar,
		Role:            u.AccountInfo.Role,
		AuthType:        u.AccountInfo.AuthType,
		IsEmailVerified: u.AccountInfo.IsEmailVerified,
	}
}

// UserSummary is the user part of a successful authentication response.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// UserSnapshot is the user payload carried inside session tokens.
// It never contains credentials or pending tokens.
type UserSnapshot struct {
	ID              string     `json:"_id"`
	Fullname        string     `json:"fullname"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Avatar          string     `json:"avatar"`
	Role            Role       `json:"role"`
	AuthType        AuthMethod `json:"auth_type"`
	IsEmailVerified bool       `json:"isEmailVerified"`
}
