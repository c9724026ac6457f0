// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/utils"
)

// auth rejects requests without a valid access token and stores the
// token claims in the request context under [utils.ClaimsCtxKey].
//
// Both "Bearer <token>" and a bare token are accepted in the
// "Authorization" header.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteResponse(w, http.StatusUnauthorized, msgUnauthorized, msgNoTokenProvided)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("malformed authorization header")
			utils.WriteResponse(w, http.StatusUnauthorized, msgInvalidToken, nil)
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("error occurred during parsing token")
			utils.WriteResponse(w, http.StatusUnauthorized, msgInvalidToken, nil)
			return
		}

		ctx = context.WithValue(ctx, utils.ClaimsCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
