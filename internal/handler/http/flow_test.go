// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/filekko/internal/avatar"
	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/mail"
	"github.com/MKhiriev/filekko/internal/service"
	"github.com/MKhiriev/filekko/internal/storage"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/models"
)

// ─────────────────────────────────────────────
// Fakes for the outer collaborators
// ─────────────────────────────────────────────

type recordingSender struct {
	mu   sync.Mutex
	sent []models.Email
}

func (s *recordingSender) Send(_ context.Context, email models.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, email)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

// lastToken extracts the verification token from the last mailed link.
func (s *recordingSender) lastToken(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.sent)
	text := strings.TrimSpace(s.sent[len(s.sent)-1].Text)
	_, token, ok := strings.Cut(text, "/auth/verify-email/")
	require.True(t, ok, "no verification link in %q", text)
	return token
}

type fnVerifier func(ctx context.Context, idToken string) (models.IdentityClaims, error)

func (f fnVerifier) Verify(ctx context.Context, idToken string) (models.IdentityClaims, error) {
	return f(ctx, idToken)
}

type flowEnv struct {
	router    http.Handler
	mails     *recordingSender
	uploadDir string
}

func newFlowEnv(t *testing.T) *flowEnv {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()
	dir := t.TempDir()

	cfg := &config.StructuredConfig{
		App: config.App{FrontendURL: "http://localhost:5173", Version: "1.0.0"},
		Auth: config.Auth{
			TokenSignKey:         "flow-secret",
			TokenIssuer:          "filekko",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: time.Hour,
			BcryptCost:           bcrypt.MinCost,
		},
		Storage: config.Storage{Files: config.Files{
			Driver:    storage.DriverLocal,
			UploadDir: filepath.Join(dir, "uploads"),
			PublicURL: "http://localhost:8080/uploads",
		}},
	}

	db, err := store.NewConnection(ctx, "file:"+filepath.Join(dir, "filekko.db")+"?_busy_timeout=5000", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	files, err := storage.NewLocalStorage(cfg.Storage.Files.UploadDir, cfg.Storage.Files.PublicURL, log)
	require.NoError(t, err)

	mails := &recordingSender{}
	dispatcher, err := mail.NewDispatcher(mails, cfg.App.FrontendURL, false, log)
	require.NoError(t, err)

	verifier := fnVerifier(func(_ context.Context, idToken string) (models.IdentityClaims, error) {
		if idToken != "Googletoken1" {
			return models.IdentityClaims{}, errors.New("token verification failed")
		}
		return models.IdentityClaims{Provider: models.AuthMethodGoogle, ExternalID: "g-1", Fullname: "Alice", Email: "a@x.com"}, nil
	})

	svcs, err := service.NewServices(store.NewStorages(db, log), service.Dependencies{
		Avatars:  avatar.NewGenerator(),
		Mailer:   dispatcher,
		Identity: verifier,
		Files:    files,
	}, cfg, models.NewAppBuildInfo("dev", "", "abc123"), log)
	require.NoError(t, err)

	return &flowEnv{
		router:    NewHandler(svcs, cfg, log).Init(),
		mails:     mails,
		uploadDir: cfg.Storage.Files.UploadDir,
	}
}

func (e *flowEnv) post(t *testing.T, path string, body any, headers ...string) (int, envelope) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req, headers...)
}

func (e *flowEnv) get(t *testing.T, path string, headers ...string) (int, envelope) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil), headers...)
}

func (e *flowEnv) do(t *testing.T, req *http.Request, headers ...string) (int, envelope) {
	t.Helper()
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr.Code, decodeEnvelope(t, rr)
}

func signupBody(username string) map[string]string {
	return map[string]string{
		"email": "a@x.com", "username": username, "fullname": "Alice Doe", "password": "Abcdef12", "authMethod": "password",
	}
}

func loginBody(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password, "authMethod": "password"}
}

// ─────────────────────────────────────────────
// Password account lifecycle
// ─────────────────────────────────────────────

func TestFlow_PasswordAccount(t *testing.T) {
	env := newFlowEnv(t)

	code, resp := env.post(t, "/api/auth/signup", signupBody("ab"))
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username must be at least 3 characters", resp.Message)
	assert.Zero(t, env.mails.count())

	code, resp = env.post(t, "/api/auth/signup", signupBody("abc"))
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, resp.Status)
	assert.Equal(t, service.MsgSignupVerifyEmail, resp.Message)
	assert.JSONEq(t, "null", string(resp.Data))
	require.Equal(t, 1, env.mails.count())
	assert.Equal(t, "a@x.com", env.mails.sent[0].To)
	firstToken := env.mails.lastToken(t)

	code, resp = env.post(t, "/api/auth/signup", signupBody("abcd"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email is already taken", resp.Message)

	code, resp = env.post(t, "/api/auth/login", loginBody("a@x.com", "Abcdef12"))
	require.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, service.MsgEmailNotVerified, resp.Message)
	require.Equal(t, 2, env.mails.count())
	secondToken := env.mails.lastToken(t)
	assert.NotEqual(t, firstToken, secondToken)

	code, resp = env.post(t, "/api/auth/verify-email", map[string]string{"token": firstToken})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Invalid verification token", resp.Message)

	code, resp = env.post(t, "/api/auth/verify-email", map[string]string{"token": secondToken})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, service.MsgEmailVerified, resp.Message)
	var verified models.SessionTokens
	require.NoError(t, json.Unmarshal(resp.Data, &verified))
	assert.NotEmpty(t, verified.AccessToken)
	assert.NotEmpty(t, verified.RefreshToken)

	_, wrongPassword := env.post(t, "/api/auth/login", loginBody("a@x.com", "Wrongpass1"))
	_, unknownEmail := env.post(t, "/api/auth/login", loginBody("nobody@x.com", "Abcdef12"))
	assert.Equal(t, unknownEmail, wrongPassword)
	assert.Equal(t, service.MsgInvalidCredentials, wrongPassword.Message)

	code, resp = env.post(t, "/api/auth/login", loginBody("a@x.com", "Abcdef12"))
	require.Equal(t, http.StatusOK, code)
	var session models.AuthData
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	assert.Equal(t, "abc", session.User.Username)
	assert.Equal(t, "a@x.com", session.User.Email)
	assert.True(t, strings.HasPrefix(session.User.Avatar, "https://api.dicebear.com/9.x/"))

	code, resp = env.get(t, "/api/auth/me", "Authorization", "Bearer "+session.AccessToken)
	require.Equal(t, http.StatusOK, code)
	var me models.UserSnapshot
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, session.User.ID, me.ID)
	assert.True(t, me.IsEmailVerified)

	code, _ = env.get(t, "/api/auth/me", "Authorization", "Bearer "+session.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp = env.post(t, "/api/auth/refresh-token", map[string]string{"refreshToken": session.RefreshToken})
	require.Equal(t, http.StatusOK, code)
	var refreshed models.AccessTokenData
	require.NoError(t, json.Unmarshal(resp.Data, &refreshed))
	code, _ = env.get(t, "/api/auth/me", "Authorization", refreshed.AccessToken)
	assert.Equal(t, http.StatusOK, code)

	code, resp = env.post(t, "/api/auth/signup", map[string]string{"password": "Googletoken1", "authMethod": "google"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Account already exists with password authentication", resp.Message)

	code, resp = env.post(t, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "Googletoken1", "authMethod": "google"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Please login with password", resp.Message)
}

func TestFlow_PasswordSignupWithoutFullname(t *testing.T) {
	env := newFlowEnv(t)

	code, resp := env.post(t, "/api/auth/signup", map[string]string{
		"email": "a@x.com", "username": "abc", "password": "Abcdef12", "authMethod": "password",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	assert.Equal(t, service.MsgSignupVerifyEmail, resp.Message)
	assert.JSONEq(t, "null", string(resp.Data))
	require.Equal(t, 1, env.mails.count())

	code, resp = env.post(t, "/api/auth/verify-email", map[string]string{"token": env.mails.lastToken(t)})
	require.Equal(t, http.StatusOK, code)
	var tokens models.SessionTokens
	require.NoError(t, json.Unmarshal(resp.Data, &tokens))

	code, resp = env.get(t, "/api/auth/me", "Authorization", "Bearer "+tokens.AccessToken)
	require.Equal(t, http.StatusOK, code)
	var me models.UserSnapshot
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "abc", me.Username)
	assert.Equal(t, "abc", me.Fullname)
}

func TestFlow_ResendVerificationEmail(t *testing.T) {
	env := newFlowEnv(t)

	code, _ := env.post(t, "/api/auth/signup", signupBody("abc"))
	require.Equal(t, http.StatusCreated, code)
	first := env.mails.lastToken(t)

	code, resp := env.post(t, "/api/auth/resend-verification-email", map[string]string{"token": first})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Verification email sent", resp.Message)
	second := env.mails.lastToken(t)
	assert.NotEqual(t, first, second)

	code, _ = env.post(t, "/api/auth/resend-verification-email", map[string]string{"token": first})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = env.post(t, "/api/auth/verify-email", map[string]string{"token": second})
	assert.Equal(t, http.StatusOK, code)
}

// ─────────────────────────────────────────────
// Google account lifecycle
// ─────────────────────────────────────────────

func TestFlow_GoogleAccount(t *testing.T) {
	env := newFlowEnv(t)
	google := map[string]string{"password": "Googletoken1", "authMethod": "google"}

	code, resp := env.post(t, "/api/auth/signup", map[string]string{"password": "Forgedtoken1", "authMethod": "google"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, service.MsgIdentityVerification, resp.Message)

	code, resp = env.post(t, "/api/auth/signup", google)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, service.MsgSignupSuccess, resp.Message)
	var created models.AuthData
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "usera", created.User.Username)
	assert.Zero(t, env.mails.count())

	code, resp = env.post(t, "/api/auth/signup", google)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, service.MsgLoginSuccess, resp.Message)

	code, _ = env.post(t, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "Googletoken1", "authMethod": "google"})
	assert.Equal(t, http.StatusOK, code)

	code, resp = env.post(t, "/api/auth/signup", signupBody("abc"))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Account already exists with google authentication", resp.Message)
}

func TestFlow_PasswordSignupOverGoogleAccount(t *testing.T) {
	env := newFlowEnv(t)

	code, resp := env.post(t, "/api/auth/signup", map[string]string{"password": "Googletoken1", "authMethod": "google"})
	require.Equal(t, http.StatusCreated, code, resp.Message)

	// same email and same username as the google account
	code, resp = env.post(t, "/api/auth/signup", map[string]string{
		"email": "a@x.com", "username": "usera", "password": "Abcdef12", "authMethod": "password",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Account already exists with google authentication", resp.Message)
	assert.Zero(t, env.mails.count())
}

// ─────────────────────────────────────────────
// Avatar upload and static serving
// ─────────────────────────────────────────────

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestFlow_AvatarUpload(t *testing.T) {
	env := newFlowEnv(t)
	content := pngBytes(t)

	req := multipartSignup(t, signupBody("abc"), "Me.PNG", content)
	code, resp := env.do(t, req)
	require.Equal(t, http.StatusCreated, code, resp.Message)

	entries, err := os.ReadDir(filepath.Join(env.uploadDir, "avatars"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "avatar-"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/avatars/"+name, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, content, rr.Body.Bytes())
}

func TestFlow_AvatarRejected(t *testing.T) {
	env := newFlowEnv(t)

	req := multipartSignup(t, signupBody("abc"), "notes.txt", []byte("plain text"))
	code, resp := env.do(t, req)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Only image files are allowed for avatars!", resp.Message)
	assert.Zero(t, env.mails.count())
}

func TestFlow_Health(t *testing.T) {
	env := newFlowEnv(t)

	code, resp := env.get(t, "/api/health")

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"version":"1.0.0","commit":"abc123"}`, string(resp.Data))
}
