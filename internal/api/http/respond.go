package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrRentalNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrItemNotAvailable),
		errors.Is(err, domain.ErrItemRented),
		errors.Is(err, domain.ErrRentalNotActive),
		errors.Is(err, domain.ErrDuplicateRental),
		errors.Is(err, domain.ErrAccountExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRental),
		errors.Is(err, domain.ErrInvalidMember),
		errors.Is(err, domain.ErrInvalidItem):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
