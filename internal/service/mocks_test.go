// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/filekko/internal/avatar"
	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/internal/utils"
	"github.com/MKhiriev/filekko/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository (in-memory by default)
// ─────────────────────────────────────────────

type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]models.User

	createFn          func(ctx context.Context, user models.User) error
	findByEmailFn     func(ctx context.Context, email string) (models.User, error)
	usernameExistsFn  func(ctx context.Context, username string) (bool, error)
	updateTokenFn     func(ctx context.Context, userID, token string) error
	markVerifiedFn    func(ctx context.Context, userID, token string) error
	usernameChecks    []string
	verificationSaves []string
}

func newMockUserRepository(users ...models.User) *mockUserRepository {
	m := &mockUserRepository{users: map[string]models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.PersonalInfo.Email == user.PersonalInfo.Email {
			return store.ErrEmailAlreadyExists
		}
		if u.PersonalInfo.Username == user.PersonalInfo.Username {
			return store.ErrUsernameAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) find(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return m.find(func(u models.User) bool { return u.PersonalInfo.Email == email })
}

func (m *mockUserRepository) FindUserByVerificationToken(_ context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, store.ErrUserNotFound
	}
	return m.find(func(u models.User) bool {
		return u.AccountInfo.VerificationToken != nil && *u.AccountInfo.VerificationToken == token
	})
}

func (m *mockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.usernameChecks = append(m.usernameChecks, username)
	if m.usernameExistsFn != nil {
		return m.usernameExistsFn(ctx, username)
	}
	_, err := m.find(func(u models.User) bool { return u.PersonalInfo.Username == username })
	return err == nil, nil
}

func (m *mockUserRepository) UpdateVerificationToken(ctx context.Context, userID, token string) error {
	if m.updateTokenFn != nil {
		return m.updateTokenFn(ctx, userID, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.AccountInfo.VerificationToken = &token
	m.users[userID] = u
	m.verificationSaves = append(m.verificationSaves, token)
	return nil
}

func (m *mockUserRepository) MarkEmailVerified(ctx context.Context, userID, token string) error {
	if m.markVerifiedFn != nil {
		return m.markVerifiedFn(ctx, userID, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.AccountInfo.VerificationToken == nil || *u.AccountInfo.VerificationToken != token {
		return store.ErrUserNotFound
	}
	u.AccountInfo.IsEmailVerified = true
	u.AccountInfo.VerificationToken = nil
	m.users[userID] = u
	return nil
}

func (m *mockUserRepository) byEmail(email string) models.User {
	u, _ := m.FindUserByEmail(context.Background(), email)
	return u
}

// ─────────────────────────────────────────────
// Mock: MailDispatcher
// ─────────────────────────────────────────────

type sentVerification struct {
	To    string
	Token string
}

type mockMailer struct {
	sendFn func(ctx context.Context, to, token string) error
	sent   []sentVerification
}

func (m *mockMailer) GenerateToken() string {
	return uuid.NewString()
}

func (m *mockMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	m.sent = append(m.sent, sentVerification{To: to, Token: token})
	if m.sendFn != nil {
		return m.sendFn(ctx, to, token)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: identity.Verifier
// ─────────────────────────────────────────────

type mockIdentity struct {
	verifyFn func(ctx context.Context, idToken string) (models.IdentityClaims, error)
}

func (m *mockIdentity) Verify(ctx context.Context, idToken string) (models.IdentityClaims, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, idToken)
	}
	return models.IdentityClaims{}, fmt.Errorf("token verification failed: no verifier")
}

func googleIdentity(email, name, picture string) *mockIdentity {
	return &mockIdentity{verifyFn: func(context.Context, string) (models.IdentityClaims, error) {
		return models.IdentityClaims{
			Provider:   models.AuthMethodGoogle,
			ExternalID: "google-uid-1",
			Fullname:   name,
			Email:      email,
			Avatar:     picture,
		}, nil
	}}
}

// ─────────────────────────────────────────────
// Mock: storage.FileStorage
// ─────────────────────────────────────────────

type mockFiles struct {
	saveFn func(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	keys   []string
}

func (m *mockFiles) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	m.keys = append(m.keys, key)
	if m.saveFn != nil {
		return m.saveFn(ctx, key, r, size, contentType)
	}
	return "http://localhost:8080/uploads/" + key, nil
}

// ─────────────────────────────────────────────
// Mock: IDGenerator
// ─────────────────────────────────────────────

type sequenceIDs struct {
	n int
}

func (s *sequenceIDs) Generate() string {
	s.n++
	return fmt.Sprintf("user-%d", s.n)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testSignKey = "test-sign-key"

func testAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:         testSignKey,
		TokenIssuer:          "filekko",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		BcryptCost:           bcrypt.MinCost,
	}
}

type authFixture struct {
	users    *mockUserRepository
	mailer   *mockMailer
	identity *mockIdentity
	files    *mockFiles
	tokens   TokenService
	svc      *authService
}

func newAuthFixture(users ...models.User) *authFixture {
	f := &authFixture{
		users:    newMockUserRepository(users...),
		mailer:   &mockMailer{},
		identity: &mockIdentity{},
		files:    &mockFiles{},
		tokens:   NewTokenService(testAuthConfig()),
	}

	f.svc = NewAuthService(AuthDependencies{
		Users:    f.users,
		Hasher:   utils.NewPasswordHasher(bcrypt.MinCost),
		Tokens:   f.tokens,
		Avatars:  avatar.NewGenerator(),
		Mailer:   f.mailer,
		Identity: f.identity,
		Files:    f.files,
		IDs:      &sequenceIDs{},
	}, logger.Nop()).(*authService)

	return f
}

func strPtr(s string) *string { return &s }

func passwordUser(t testing.TB, email, password string, verified bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	u := models.User{
		ID: "existing-" + email,
		PersonalInfo: models.PersonalInfo{
			Fullname: "Existing User",
			Username: "existing",
			Email:    email,
			Avatar:   "https://api.dicebear.com/9.x/initials/svg?seed=Existing",
		},
		AccountInfo: models.AccountInfo{
			Role:            models.RoleUser,
			AuthType:        models.AuthMethodPassword,
			Password:        string(hash),
			IsEmailVerified: verified,
		},
	}
	if !verified {
		u.AccountInfo.VerificationToken = strPtr("old-token")
	}
	return u
}

func googleUser(email string) models.User {
	return models.User{
		ID: "google-" + email,
		PersonalInfo: models.PersonalInfo{
			Fullname: "Google User",
			Username: "googler",
			Email:    email,
			Avatar:   "https://lh3.googleusercontent.com/a/g",
		},
		AccountInfo: models.AccountInfo{
			Role:            models.RoleUser,
			AuthType:        models.AuthMethodGoogle,
			GoogleID:        strPtr("google-uid-1"),
			IsEmailVerified: true,
		},
	}
}
