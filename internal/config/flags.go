// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d production database DSN
//	-dev-d development database DSN
//	-dev run in development mode
//	-c/-config json file path with configs
//	-frontend-url web client base URL
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-duration access token lifetime (e.g., "15m")
//	-refresh-token-duration refresh token lifetime (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-upload-dir directory for locally stored avatars
//	-smtp-host mail relay host
//	-smtp-port mail relay port
//	-firebase-project-id Firebase project id
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("filekko", flag.ContinueOnError)

	var serverAddress NetAddress
	var (
		databaseDSN, devDatabaseDSN string
		isDev                       bool
		jsonConfigPath              string
		frontendURL                 string
		tokenSignKey, tokenIssuer   string
		accessTokenDuration         time.Duration
		refreshTokenDuration        time.Duration
		requestTimeout              time.Duration
		uploadDir                   string
		smtpHost                    string
		smtpPort                    int
		projectID                   string
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Production database DSN")
	fs.StringVar(&devDatabaseDSN, "dev-d", "", "Development database DSN")
	fs.BoolVar(&isDev, "dev", false, "Run in development mode")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&frontendURL, "frontend-url", "", "Web client base URL")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token lifetime (e.g., 15m)")
	fs.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token lifetime (e.g., 168h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&uploadDir, "upload-dir", "", "Directory for locally stored avatars")
	fs.StringVar(&smtpHost, "smtp-host", "", "SMTP relay host")
	fs.IntVar(&smtpPort, "smtp-port", 0, "SMTP relay port")
	fs.StringVar(&projectID, "firebase-project-id", "", "Firebase project id")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			IsDev:       isDev,
			FrontendURL: frontendURL,
		},
		Auth: Auth{
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DevDSN:  devDatabaseDSN,
				ProdDSN: databaseDSN,
			},
			Files: Files{
				UploadDir: uploadDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mail: Mail{
			Host: smtpHost,
			Port: smtpPort,
		},
		Identity: Identity{
			ProjectID: projectID,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
