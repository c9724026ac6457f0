// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/filekko/internal/logger"
)

// traceRequest runs withTraceID and logs once from inside the handler.
func traceRequest(t *testing.T, incoming string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}
	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)

	return rr, buf.String()
}

func TestWithTraceID_ReusesIncomingID(t *testing.T) {
	rr, logs := traceRequest(t, "my-custom-trace-id")

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "my-custom-trace-id", rr.Header().Get(traceIDHeader))
	assert.Contains(t, logs, `"trace_id":"my-custom-trace-id"`)
}

func TestWithTraceID_GeneratesUUID(t *testing.T) {
	rr, logs := traceRequest(t, "")

	id := rr.Header().Get(traceIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err, "generated trace ID must be a UUID, got %q", id)
	assert.Contains(t, logs, `"trace_id":"`+id+`"`)
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		rr, _ := traceRequest(t, "")
		seen[rr.Header().Get(traceIDHeader)] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestWithTraceID_ParentLoggerUntouched(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	h.logger.Info().Msg("after")
	assert.NotContains(t, buf.String(), "trace_id")
}
