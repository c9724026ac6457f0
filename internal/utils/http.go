// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/filekko/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteResponse writes the API envelope {status, message, data}. The status
// flag is true for 2xx codes.
//
//	WriteResponse(w, http.StatusOK, "Login successful", authData)
func WriteResponse(w http.ResponseWriter, statusCode int, message string, data any) (int, error) {
	return WriteJSON(w, models.Response{
		Status:  statusCode >= 200 && statusCode < 300,
		Message: message,
		Data:    data,
	}, statusCode)
}
