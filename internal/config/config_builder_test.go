// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Auth.TokenSignKey = "secret"
	cfg.App.FrontendURL = "http://localhost:5173"
	cfg.Storage.DB.ProdDSN = "postgres://localhost/filekko"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that an empty config does not pass validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidAuthConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that mergo only fills fields that are
// still zero, so the first source setting a field keeps it.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "env"}},
		&StructuredConfig{App: App{Version: "flags"}, Auth: Auth{TokenIssuer: "flags-issuer"}},
	)
	b.withDefaults()
	b.configs[2].Auth.TokenSignKey = "secret"
	b.configs[2].App.FrontendURL = "http://localhost:5173"
	b.configs[2].Storage.DB.ProdDSN = "postgres://localhost/filekko"

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "flags-issuer", cfg.Auth.TokenIssuer)
	assert.Equal(t, DefaultAccessTokenDuration, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, DefaultBcryptCost, cfg.Auth.BcryptCost)
}

// ── withEnv / withFlags ───────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	b := newConfigBuilder()
	b.environ = map[string]string{"APP_VERSION": "env-version", "AUTH_TOKEN_ISSUER": "env-issuer"}
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].Auth.TokenIssuer)
	assert.NoError(t, b.err)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	b := newConfigBuilder()
	b.environ = map[string]string{"AUTH_BCRYPT_COST": "high"}
	b.withEnv()

	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_UsesBuilderArgs(t *testing.T) {
	b := newConfigBuilder()
	b.args = []string{"-token-sign-key", "flag-key"}
	assert.Same(t, b, b.withFlags())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-key", b.configs[0].Auth.TokenSignKey)
}

func TestWithFlags_SetsErrorOnBadArgs(t *testing.T) {
	b := newConfigBuilder()
	b.args = []string{"-unknown"}
	b.withFlags()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Auth.TokenIssuer = "json-issuer"
	payload.Auth.AccessTokenDuration = Duration(time.Minute)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].Auth.TokenIssuer)
	assert.Equal(t, time.Minute, b.configs[1].Auth.AccessTokenDuration)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the env path beats the flag path.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	second := StructuredJSONConfig{}
	second.App.Version = "second"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "first", b.configs[3].App.Version)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.TokenSignKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "dev mode without dev dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.App.IsDev = true },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "dev mode with dev dsn",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.IsDev = true
				cfg.Storage.DB.DevDSN = "file:dev.db"
			},
		},
		{
			name:    "unknown files driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Files.Driver = "ftp" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "s3 without bucket",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Files.Driver = "s3" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing frontend url",
			mutate:  func(cfg *StructuredConfig) { cfg.App.FrontendURL = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing listen address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "smtp host without sender",
			mutate:  func(cfg *StructuredConfig) { cfg.Mail.Host = "smtp.example.com" },
			wantErr: ErrInvalidMailConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDSN_SwitchesOnDevMode(t *testing.T) {
	cfg := &StructuredConfig{Storage: Storage{DB: DB{DevDSN: "dev", ProdDSN: "prod"}}}
	assert.Equal(t, "prod", cfg.DSN())

	cfg.App.IsDev = true
	assert.Equal(t, "dev", cfg.DSN())
}
