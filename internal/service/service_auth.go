// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/filekko/internal/avatar"
	"github.com/MKhiriev/filekko/internal/identity"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/mail"
	"github.com/MKhiriev/filekko/internal/storage"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/models"
)

const (
	avatarSize   = 128
	avatarRadius = 50
)

// authService coordinates the account flows over the user directory and
// its collaborators. All state is read-only after construction.
type authService struct {
	users     store.UserRepository
	hasher    PasswordHasher
	tokens    TokenService
	avatars   AvatarGenerator
	mailer    MailDispatcher
	identity  identity.Verifier
	files     storage.FileStorage
	ids       IDGenerator
	usernames *usernameGenerator
	now       func() time.Time
	logger    *logger.Logger
}

// AuthDependencies are the collaborators of [AuthService].
type AuthDependencies struct {
	Users    store.UserRepository
	Hasher   PasswordHasher
	Tokens   TokenService
	Avatars  AvatarGenerator
	Mailer   MailDispatcher
	Identity identity.Verifier
	Files    storage.FileStorage
	IDs      IDGenerator
}

func NewAuthService(deps AuthDependencies, logger *logger.Logger) AuthService {
	return &authService{
		users:     deps.Users,
		hasher:    deps.Hasher,
		tokens:    deps.Tokens,
		avatars:   deps.Avatars,
		mailer:    deps.Mailer,
		identity:  deps.Identity,
		files:     deps.Files,
		ids:       deps.IDs,
		usernames: newUsernameGenerator(deps.Users.UsernameExists),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

// Signup creates an account.
//
// An email already registered under another auth method is a conflict;
// accounts are never merged. A google signup for an existing google
// account logs that account in.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	switch req.AuthMethod {
	case models.AuthMethodPassword:
		return a.signupWithPassword(ctx, req)
	case models.AuthMethodGoogle:
		return a.signupWithGoogle(ctx, req)
	default:
		return models.AuthResult{}, newError(ErrUnsupportedAuthMethod, MsgInvalidAuthMethod)
	}
}

func (a *authService) signupWithPassword(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	existing, found, err := a.findByEmail(ctx, req.Email)
	if err != nil {
		return models.AuthResult{}, err
	}
	if found {
		if existing.AccountInfo.AuthType != models.AuthMethodPassword {
			return models.AuthResult{}, accountExistsError(existing.AccountInfo.AuthType)
		}
		return models.AuthResult{}, newError(ErrEmailTaken, MsgEmailTaken)
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.signupWithPassword").Msg("failed to hash password")
		return models.AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	fullname := req.Fullname
	if fullname == "" {
		fullname = req.Username
	}

	avatarURL, err := a.resolveAvatar(ctx, req.Avatar, fullname)
	if err != nil {
		return models.AuthResult{}, err
	}

	verificationToken := a.mailer.GenerateToken()
	user := a.newUser(fullname, req.Username, req.Email, avatarURL, models.AuthMethodPassword)
	user.AccountInfo.Password = hash
	user.AccountInfo.VerificationToken = &verificationToken

	if err = a.createUser(ctx, user); err != nil {
		return models.AuthResult{}, err
	}
	log.Info().Str("user_id", user.ID).Msg("password account created")

	if err = a.sendVerificationEmail(ctx, user.PersonalInfo.Email, verificationToken); err != nil {
		return models.AuthResult{}, err
	}

	return models.AuthResult{Created: true, Message: MsgSignupVerifyEmail, Data: nil}, nil
}

func (a *authService) signupWithGoogle(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	claims, err := a.verifyIdentity(ctx, req.Password)
	if err != nil {
		return models.AuthResult{}, err
	}
	if req.Email != "" && req.Email != claims.Email {
		return models.AuthResult{}, newError(ErrIdentityEmailMismatch, MsgIdentityEmailMismatch)
	}

	existing, found, err := a.findByEmail(ctx, claims.Email)
	if err != nil {
		return models.AuthResult{}, err
	}
	if found {
		if existing.AccountInfo.AuthType != models.AuthMethodGoogle {
			return models.AuthResult{}, accountExistsError(existing.AccountInfo.AuthType)
		}
		log.Info().Str("user_id", existing.ID).Msg("google account already registered, logging in")
		return a.session(existing, false, MsgLoginSuccess)
	}

	username, err := a.usernames.Generate(ctx, claims.Email)
	if err != nil {
		log.Err(err).Str("func", "*authService.signupWithGoogle").Msg("failed to generate username")
		return models.AuthResult{}, err
	}

	fullname := claims.Fullname
	if fullname == "" {
		fullname = username
	}

	avatarURL := claims.Avatar
	if avatarURL == "" {
		if avatarURL, err = a.generateAvatar(fullname); err != nil {
			return models.AuthResult{}, err
		}
	}

	googleID := claims.ExternalID
	user := a.newUser(fullname, username, claims.Email, avatarURL, models.AuthMethodGoogle)
	user.AccountInfo.GoogleID = &googleID
	user.AccountInfo.IsEmailVerified = true

	if err = a.createUser(ctx, user); err != nil {
		return models.AuthResult{}, err
	}
	log.Info().Str("user_id", user.ID).Msg("google account created")

	return a.session(user, true, MsgSignupSuccess)
}

// Login authenticates an existing account. An unknown email and a wrong
// password produce the same error.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	user, found, err := a.findByEmail(ctx, req.Email)
	if err != nil {
		return models.AuthResult{}, err
	}
	if !found {
		return models.AuthResult{}, newError(ErrInvalidCredentials, MsgInvalidCredentials)
	}

	if user.AccountInfo.AuthType != req.AuthMethod {
		return models.AuthResult{}, wrongAuthMethodError(user.AccountInfo.AuthType)
	}

	switch req.AuthMethod {
	case models.AuthMethodPassword:
		if !user.AccountInfo.IsEmailVerified {
			if err = a.reissueVerification(ctx, user); err != nil {
				return models.AuthResult{}, err
			}
			return models.AuthResult{}, newError(ErrEmailNotVerified, MsgEmailNotVerified)
		}

		match, err := a.hasher.Compare(user.AccountInfo.Password, req.Password)
		if err != nil {
			log.Err(err).Str("func", "*authService.Login").Str("user_id", user.ID).Msg("failed to compare password")
			return models.AuthResult{}, fmt.Errorf("failed to compare password: %w", err)
		}
		if !match {
			return models.AuthResult{}, newError(ErrInvalidCredentials, MsgInvalidCredentials)
		}

	case models.AuthMethodGoogle:
		if req.Password == "" {
			return models.AuthResult{}, newError(ErrIdentityTokenRequired, MsgIdentityTokenRequired)
		}

		claims, err := a.verifyIdentity(ctx, req.Password)
		if err != nil {
			return models.AuthResult{}, err
		}
		if claims.Email != user.PersonalInfo.Email {
			log.Warn().Str("user_id", user.ID).Msg("identity token issued for another email")
			return models.AuthResult{}, newError(ErrIdentityEmailMismatch, MsgIdentityEmailMismatch)
		}

	default:
		return models.AuthResult{}, newError(ErrUnsupportedAuthMethod, MsgInvalidAuthMethod)
	}

	return a.session(user, false, MsgLoginSuccess)
}

// VerifyEmail confirms the address the token was sent to and starts a
// session.
func (a *authService) VerifyEmail(ctx context.Context, token string) (models.AuthResult, error) {
	user, err := a.findByVerificationToken(ctx, token)
	if err != nil {
		return models.AuthResult{}, err
	}

	if err = a.users.MarkEmailVerified(ctx, user.ID, token); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.AuthResult{}, newError(ErrInvalidVerificationToken, MsgInvalidVerificationToken)
		}
		logger.FromContext(ctx).Err(err).Str("func", "*authService.VerifyEmail").Msg("failed to mark email verified")
		return models.AuthResult{}, fmt.Errorf("failed to mark email verified: %w", err)
	}

	user.AccountInfo.IsEmailVerified = true
	user.AccountInfo.VerificationToken = nil

	tokens, err := a.tokens.GenerateTokens(user)
	if err != nil {
		return models.AuthResult{}, err
	}

	return models.AuthResult{Message: MsgEmailVerified, Data: tokens}, nil
}

// ResendVerificationEmail replaces the pending token of the account and
// mails the new link.
func (a *authService) ResendVerificationEmail(ctx context.Context, token string) (models.AuthResult, error) {
	user, err := a.findByVerificationToken(ctx, token)
	if err != nil {
		return models.AuthResult{}, err
	}

	if err = a.reissueVerification(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.AuthResult{}, newError(ErrInvalidVerificationToken, MsgInvalidVerificationToken)
		}
		return models.AuthResult{}, err
	}

	return models.AuthResult{Message: MsgVerificationEmailSent}, nil
}

func (a *authService) RefreshToken(ctx context.Context, refreshToken string) (models.AuthResult, error) {
	access, err := a.tokens.RefreshAccessToken(refreshToken)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("refresh token rejected")
		return models.AuthResult{}, err
	}

	return models.AuthResult{Message: MsgTokenRefreshed, Data: models.AccessTokenData{AccessToken: access}}, nil
}

// ParseToken returns the claims of a valid access token.
func (a *authService) ParseToken(_ context.Context, accessToken string) (*models.TokenClaims, error) {
	claims, err := a.tokens.Verify(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != models.AccessToken {
		return nil, newError(ErrInvalidToken, MsgInvalidToken)
	}

	return claims, nil
}

func (a *authService) newUser(fullname, username, email, avatarURL string, method models.AuthMethod) models.User {
	now := a.now()
	return models.User{
		ID: a.ids.Generate(),
		PersonalInfo: models.PersonalInfo{
			Fullname: fullname,
			Username: username,
			Email:    email,
			Avatar:   avatarURL,
		},
		AccountInfo: models.AccountInfo{
			Role:     models.RoleUser,
			AuthType: method,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *authService) session(user models.User, created bool, message string) (models.AuthResult, error) {
	tokens, err := a.tokens.GenerateTokens(user)
	if err != nil {
		return models.AuthResult{}, err
	}

	return models.AuthResult{
		Created: created,
		Message: message,
		Data: models.AuthData{
			User:         user.Summary(),
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		},
	}, nil
}

func (a *authService) findByEmail(ctx context.Context, email string) (models.User, bool, error) {
	user, err := a.users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.findByEmail").Msg("user search by email failed")
		return models.User{}, false, fmt.Errorf("user search by email failed: %w", err)
	}
	return user, true, nil
}

func (a *authService) findByVerificationToken(ctx context.Context, token string) (models.User, error) {
	user, err := a.users.FindUserByVerificationToken(ctx, token)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, newError(ErrInvalidVerificationToken, MsgInvalidVerificationToken)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.findByVerificationToken").Msg("user search by token failed")
		return models.User{}, fmt.Errorf("user search by verification token failed: %w", err)
	}
	return user, nil
}

func (a *authService) createUser(ctx context.Context, user models.User) error {
	err := a.users.CreateUser(ctx, user)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return newError(store.ErrEmailAlreadyExists, MsgEmailTaken)
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return newError(store.ErrUsernameAlreadyExists, MsgUsernameTaken)
	default:
		logger.FromContext(ctx).Err(err).Str("func", "*authService.createUser").Msg("user creation ended with error")
		return fmt.Errorf("user creation ended with error: %w", err)
	}
}

// reissueVerification stores a fresh verification token and mails it.
func (a *authService) reissueVerification(ctx context.Context, user models.User) error {
	token := a.mailer.GenerateToken()
	if err := a.users.UpdateVerificationToken(ctx, user.ID, token); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.reissueVerification").Msg("failed to store verification token")
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	return a.sendVerificationEmail(ctx, user.PersonalInfo.Email, token)
}

func (a *authService) sendVerificationEmail(ctx context.Context, to, token string) error {
	if err := a.mailer.SendVerificationEmail(ctx, to, token); err != nil {
		if errors.Is(err, mail.ErrMailNotSent) {
			return newError(mail.ErrMailNotSent, MsgMailNotSent)
		}
		return err
	}
	return nil
}

func (a *authService) verifyIdentity(ctx context.Context, idToken string) (models.IdentityClaims, error) {
	claims, err := a.identity.Verify(ctx, idToken)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("google authentication failed")
		return models.IdentityClaims{}, newError(ErrIdentityVerification, MsgIdentityVerification)
	}
	return claims, nil
}

// resolveAvatar stores an uploaded avatar or generates one from seed.
func (a *authService) resolveAvatar(ctx context.Context, upload *models.Upload, seed string) (string, error) {
	if upload == nil {
		return a.generateAvatar(seed)
	}

	url, err := a.files.Save(ctx, storage.AvatarKey(upload.Filename), upload.Content, upload.Size, upload.ContentType)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.resolveAvatar").Msg("failed to store avatar")
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}
	return url, nil
}

func (a *authService) generateAvatar(seed string) (string, error) {
	url, err := a.avatars.Generate(avatar.Options{
		Seed:            seed,
		Size:            avatarSize,
		BackgroundColor: a.avatars.RandomColor(),
		Radius:          avatarRadius,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate avatar: %w", err)
	}
	return url, nil
}
