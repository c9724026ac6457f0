// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/filekko/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A method that is not registered for the matched route is answered with
// 404 instead of chi's 405, so the route is not disclosed. Only exact
// route patterns are compared.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var found chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				found = route
				break
			}
		}

		if _, ok := found.Handlers[r.Method]; !ok {
			utils.WriteResponse(w, http.StatusNotFound, msgRouteNotFound, nil)
			return
		}

		router.ServeHTTP(w, r)
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteResponse(w, http.StatusNotFound, msgRouteNotFound, nil)
}
