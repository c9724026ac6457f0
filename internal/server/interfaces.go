// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle of the API server.
//
// RunServer blocks until SIGINT, SIGTERM or SIGQUIT is received and the
// server has drained. Shutdown stops it from another goroutine.
type Server interface {
	RunServer() error
	Shutdown()
}
