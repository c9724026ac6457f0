// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of Filekko.
//
// It wires the chi router, decodes JSON and multipart requests, and maps
// service errors to HTTP status codes. Every response uses the
// {status, message, data} envelope. Tracing, access logging, CORS,
// compression and panic recovery are applied here before requests reach
// the service layer.
package http
