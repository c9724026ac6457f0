// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/utils"
	"github.com/MKhiriev/filekko/models"
)

var errEmptySubject = errors.New("token has an empty subject")

const (
	googleSignInProvider = "google.com"
	clockSkew            = 5 * time.Minute
)

// idTokenVerifier is the part of the Firebase auth client the verifier uses.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Google sign-in ID tokens minted by Firebase
// Authentication through the Firebase Admin SDK.
type FirebaseVerifier struct {
	client  idTokenVerifier
	timeout time.Duration
	now     func() time.Time
	logger  *logger.Logger
}

// NewFirebaseVerifier builds the Firebase app from cfg.CredentialsFile or,
// without one, from cfg.ProjectID alone. When neither is set the verifier
// is still returned but rejects every token with
// [ErrVerifierNotInitialized].
func NewFirebaseVerifier(ctx context.Context, cfg config.Identity, log *logger.Logger) (*FirebaseVerifier, error) {
	v := &FirebaseVerifier{
		timeout: cfg.RequestTimeout,
		now:     time.Now,
		logger:  log,
	}

	if cfg.ProjectID == "" && cfg.CredentialsFile == "" {
		log.Warn().Msg("identity project is not configured, google authentication is disabled")
		return v, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		// token verification needs only the public certificates
		opts = append(opts, option.WithHTTPClient(utils.NewHTTPClient(cfg.RequestTimeout).GetClient()))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	v.client = client
	return v, nil
}

// Verify delegates signature, audience, issuer, expiry and subject checks
// to the Firebase SDK, then requires a Google sign-in and an auth_time
// that is not in the future.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (models.IdentityClaims, error) {
	if v.client == nil {
		return models.IdentityClaims{}, fmt.Errorf("%w: %w", ErrTokenVerification, ErrVerifierNotInitialized)
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*FirebaseVerifier.Verify").Msg("id token rejected")
		return models.IdentityClaims{}, fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}

	if err = v.checkToken(token); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*FirebaseVerifier.Verify").Msg("id token rejected")
		return models.IdentityClaims{}, fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}

	return models.IdentityClaims{
		Provider:   models.AuthMethodGoogle,
		ExternalID: token.UID,
		Fullname:   stringClaim(token, "name"),
		Email:      stringClaim(token, "email"),
		Avatar:     stringClaim(token, "picture"),
	}, nil
}

func (v *FirebaseVerifier) checkToken(token *auth.Token) error {
	if token.UID == "" {
		return errEmptySubject
	}
	if token.Firebase.SignInProvider != googleSignInProvider {
		return fmt.Errorf("%w: %q", ErrUnexpectedProvider, token.Firebase.SignInProvider)
	}
	if token.AuthTime <= 0 || time.Unix(token.AuthTime, 0).After(v.now().Add(clockSkew)) {
		return ErrInvalidAuthTime
	}
	return nil
}

func stringClaim(token *auth.Token, name string) string {
	s, _ := token.Claims[name].(string)
	return s
}
