// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		IsDev       bool   `json:"is_dev"`
		FrontendURL string `json:"frontend_url"`
		Version     string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		BcryptCost           int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DevDSN  string `json:"dev_dsn"`
			ProdDSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			Driver    string `json:"driver"`
			UploadDir string `json:"upload_dir"`
			PublicURL string `json:"public_url"`
			S3        S3     `json:"s3"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
		SSL      bool   `json:"ssl"`
		Strict   bool   `json:"strict"`
	} `json:"mail,omitempty"`

	Identity struct {
		ProjectID       string   `json:"project_id"`
		CredentialsFile string   `json:"credentials_file"`
		RequestTimeout  Duration `json:"request_timeout"`
	} `json:"identity,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			IsDev:       jsonCfg.App.IsDev,
			FrontendURL: jsonCfg.App.FrontendURL,
			Version:     jsonCfg.App.Version,
		},
		Auth: Auth{
			TokenSignKey:         jsonCfg.Auth.TokenSignKey,
			TokenIssuer:          jsonCfg.Auth.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.Auth.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.Auth.RefreshTokenDuration),
			BcryptCost:           jsonCfg.Auth.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				DevDSN:  jsonCfg.Storage.DB.DevDSN,
				ProdDSN: jsonCfg.Storage.DB.ProdDSN,
			},
			Files: Files{
				Driver:    jsonCfg.Storage.Files.Driver,
				UploadDir: jsonCfg.Storage.Files.UploadDir,
				PublicURL: jsonCfg.Storage.Files.PublicURL,
				S3:        jsonCfg.Storage.Files.S3,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Mail: Mail{
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
			SSL:      jsonCfg.Mail.SSL,
			Strict:   jsonCfg.Mail.Strict,
		},
		Identity: Identity{
			ProjectID:       jsonCfg.Identity.ProjectID,
			CredentialsFile: jsonCfg.Identity.CredentialsFile,
			RequestTimeout:  time.Duration(jsonCfg.Identity.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
