// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/utils"
)

// withRecovery turns a panic into a 500 envelope. The stack trace is
// returned as data in development mode only.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil || rec == http.ErrAbortHandler {
				if rec != nil {
					panic(rec)
				}
				return
			}

			stack := string(debug.Stack())
			logger.FromRequest(r).Error().
				Str("func", "*Handler.withRecovery").
				Str("panic", fmt.Sprint(rec)).
				Str("stack", stack).
				Msg("recovered from panic")

			var data any
			if h.isDev {
				data = stack
			}
			utils.WriteResponse(w, http.StatusInternalServerError, msgInternalError, data)
		}()

		next.ServeHTTP(w, r)
	})
}
