// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/filekko/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	data, err := h.services.HealthService.Health(r.Context())
	if err != nil {
		utils.WriteResponse(w, http.StatusServiceUnavailable, msgServiceUnhealthy, data)
		return
	}

	utils.WriteResponse(w, http.StatusOK, msgServiceHealthy, data)
}
