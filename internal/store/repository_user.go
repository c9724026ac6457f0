// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. Queries are built with squirrel using the placeholder
// format of the connection dialect.
//
// All methods obtain a context-scoped logger via [logger.FromContext].
type userRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser inserts a new user.
//
// Unique violations are mapped to [ErrEmailAlreadyExists],
// [ErrUsernameAlreadyExists] or [ErrUserAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Insert(usersTable).
		Columns(userColumns...).
		Values(userValues(user)...).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if column, ok := r.db.errorClassificator.UniqueViolation(err); ok {
			log.Warn().Str("func", "*userRepository.CreateUser").Str("column", column).Msg("unique violation")
			return uniqueViolationError(column)
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to insert user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

// FindUserByVerificationToken returns the user whose pending verification
// token equals token.
func (r *userRepository) FindUserByVerificationToken(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrUserNotFound
	}
	return r.findOne(ctx, sq.Eq{"verification_token": token})
}

// UsernameExists reports whether username is taken.
func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select("1").
		From(usersTable).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).Str("func", "*userRepository.UsernameExists").Msg("failed to check username")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// UpdateVerificationToken replaces the pending verification token.
func (r *userRepository) UpdateVerificationToken(ctx context.Context, userID, token string) error {
	return r.update(ctx, "*userRepository.UpdateVerificationToken",
		r.db.builder().
			Update(usersTable).
			Set("verification_token", token).
			Set("updated_at", r.now()).
			Where(sq.Eq{"id": userID}))
}

// MarkEmailVerified sets the email verified flag and clears the token in one
// statement. It matches only while the token is still pending, so a token
// can be redeemed once.
func (r *userRepository) MarkEmailVerified(ctx context.Context, userID, token string) error {
	return r.update(ctx, "*userRepository.MarkEmailVerified",
		r.db.builder().
			Update(usersTable).
			Set("is_email_verified", true).
			Set("verification_token", nil).
			Set("updated_at", r.now()).
			Where(sq.Eq{"id": userID, "verification_token": token}))
}

func (r *userRepository) update(ctx context.Context, fn string, builder sq.UpdateBuilder) error {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findOne").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findOne").Msg("failed to scan user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func userValues(u models.User) []any {
	return []any{
		u.ID,
		u.PersonalInfo.Fullname,
		u.PersonalInfo.Username,
		u.PersonalInfo.Email,
		u.PersonalInfo.Avatar,
		u.PersonalInfo.Bio,
		u.SocialLinks.Twitter,
		u.SocialLinks.Github,
		u.SocialLinks.Instagram,
		string(u.AccountInfo.Role),
		string(u.AccountInfo.AuthType),
		nullString(u.AccountInfo.Password),
		u.AccountInfo.GoogleID,
		u.AccountInfo.GithubID,
		u.AccountInfo.IsEmailVerified,
		u.AccountInfo.IsVerified,
		u.AccountInfo.VerificationToken,
		u.AccountInfo.ResetPasswordToken,
		u.AccountInfo.ResetPasswordExpires,
		u.Activity.TotalResources,
		u.Activity.TotalViews,
		u.CreatedAt,
		u.UpdatedAt,
	}
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		u        models.User
		role     string
		authType string
		password sql.NullString
	)

	err := row.Scan(
		&u.ID,
		&u.PersonalInfo.Fullname,
		&u.PersonalInfo.Username,
		&u.PersonalInfo.Email,
		&u.PersonalInfo.Avatar,
		&u.PersonalInfo.Bio,
		&u.SocialLinks.Twitter,
		&u.SocialLinks.Github,
		&u.SocialLinks.Instagram,
		&role,
		&authType,
		&password,
		&u.AccountInfo.GoogleID,
		&u.AccountInfo.GithubID,
		&u.AccountInfo.IsEmailVerified,
		&u.AccountInfo.IsVerified,
		&u.AccountInfo.VerificationToken,
		&u.AccountInfo.ResetPasswordToken,
		&u.AccountInfo.ResetPasswordExpires,
		&u.Activity.TotalResources,
		&u.Activity.TotalViews,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	u.AccountInfo.Role = models.Role(role)
	u.AccountInfo.AuthType = models.AuthMethod(authType)
	u.AccountInfo.Password = password.String

	return u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
